package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenewalReminderSubjectEscalates(t *testing.T) {
	subject, plain, html := RenewalReminder(30, "Acme Electric", "Tower One", "March 31, 2026")
	assert.Equal(t, "Insurance Expiring in 30 Days - Acme Electric", subject)
	assert.Contains(t, plain, "expires on March 31, 2026")
	assert.Contains(t, html, "Tower One")

	subject, _, _ = RenewalReminder(5, "Acme Electric", "Tower One", "March 6, 2026")
	assert.Equal(t, "URGENT: Insurance Expiring in 5 Days - Acme Electric", subject)
}

func TestMissingCOIReminderFinalNotice(t *testing.T) {
	subject, plain, _ := MissingCOIReminder(7, "Acme Electric", "Tower One", "https://portal.test/broker/coi/tok")
	assert.Equal(t, "Reminder: COI Still Needed for Tower One (7 days)", subject)
	assert.Contains(t, plain, "https://portal.test/broker/coi/tok")

	subject, _, _ = MissingCOIReminder(21, "Acme Electric", "Tower One", "https://portal.test/broker/coi/tok")
	assert.Equal(t, "FINAL NOTICE: COI Still Needed for Tower One", subject)
}

func TestExpiredNoticeMentionsGraceEnd(t *testing.T) {
	subject, plain, _ := ExpiredNotice("Acme Electric", "Tower One", "March 8, 2026")
	assert.Equal(t, "Insurance EXPIRED - Acme Electric", subject)
	assert.Contains(t, plain, "ending on March 8, 2026")
}

func TestApprovalNoticeWaiverLine(t *testing.T) {
	_, plain, _ := ApprovalNotice("Acme Electric", "Tower One", 0)
	assert.NotContains(t, plain, "waived")

	_, plain, _ = ApprovalNotice("Acme Electric", "Tower One", 2)
	assert.Contains(t, plain, "2 deficiency finding(s) were waived")
}

func TestBrokerRequestCarriesPortalLink(t *testing.T) {
	subject, plain, html := BrokerRequest("Jordan", "BuildCo", "Tower One", "https://portal.test/broker/coi/tok")
	assert.Equal(t, "Action Required: COI Request for Tower One", subject)
	assert.Contains(t, plain, "https://portal.test/broker/coi/tok")
	assert.Contains(t, html, `href="https://portal.test/broker/coi/tok"`)
}
