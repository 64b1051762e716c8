package email

import "fmt"

// Template helpers for the notification emails the platform sends.
// Subject and body wording follows the broker/renewal notices of the
// production mail flow; HTML bodies are intentionally simple inline
// styles so they render in every client.

const signOff = "\n\nBest regards,\nThe InsureTrack Team\n"

func htmlWrap(title, inner string) string {
	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<h2>%s</h2>
%s
<hr style="border: none; border-top: 1px solid #ddd; margin: 20px 0;">
<p style="color: #666; font-size: 12px;">This is an automated email from InsureTrack. Please do not reply.</p>
</body>
</html>`, title, inner)
}

// BrokerRequest is the initial "please submit a COI" notice sent to a
// broker when a subcontractor is added to a project.
func BrokerRequest(brokerName, gcName, projectName, portalLink string) (string, string, string) {
	subject := fmt.Sprintf("Action Required: COI Request for %s", projectName)

	plain := fmt.Sprintf(`Hello %s,

%s has requested a Certificate of Insurance for the following project:

Project: %s

Please review and submit the COI using the link below:
%s`+signOff, brokerName, gcName, projectName, portalLink)

	html := htmlWrap("Action Required: COI Request", fmt.Sprintf(`<p>Hello %s,</p>
<p><strong>%s</strong> has requested a Certificate of Insurance for:</p>
<div style="background-color: #f3f4f6; padding: 15px; border-radius: 4px; margin: 15px 0;">
<p style="margin: 5px 0;"><strong>Project:</strong> %s</p>
</div>
<p><a href="%s" style="background-color: #10b981; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; display: inline-block;">Review and Submit COI</a></p>`,
		brokerName, gcName, projectName, portalLink))

	return subject, plain, html
}

// RenewalReminder covers the 30/14/5-day pre-expiration notices.
func RenewalReminder(days int, companyName, projectName, expiresOn string) (string, string, string) {
	subject := fmt.Sprintf("Insurance Expiring in %d Days - %s", days, companyName)
	if days <= 5 {
		subject = fmt.Sprintf("URGENT: Insurance Expiring in %d Days - %s", days, companyName)
	}

	plain := fmt.Sprintf(`Hello,

The insurance coverage for %s on project %s expires on %s.

Please submit an updated Certificate of Insurance before the expiration
date to keep the subcontractor in compliance.`+signOff,
		companyName, projectName, expiresOn)

	html := htmlWrap("Insurance Renewal Reminder", fmt.Sprintf(`<p>The insurance coverage for <strong>%s</strong> on project <strong>%s</strong> expires on <strong>%s</strong>.</p>
<p>Please submit an updated Certificate of Insurance before the expiration date.</p>`,
		companyName, projectName, expiresOn))

	return subject, plain, html
}

// ExpiredNotice is sent the day coverage lapses; the 7-day grace
// period starts at the same time.
func ExpiredNotice(companyName, projectName, graceEndsOn string) (string, string, string) {
	subject := fmt.Sprintf("Insurance EXPIRED - %s", companyName)

	plain := fmt.Sprintf(`Hello,

The insurance coverage for %s on project %s has expired.

A 7-day grace period is now in effect, ending on %s. If updated
coverage is not received by then, the subcontractor will be marked
non-compliant and deactivated on all projects.`+signOff,
		companyName, projectName, graceEndsOn)

	html := htmlWrap("Insurance Expired", fmt.Sprintf(`<p>The insurance coverage for <strong>%s</strong> on project <strong>%s</strong> has <strong style="color:#dc2626;">expired</strong>.</p>
<p>A 7-day grace period is in effect, ending on <strong>%s</strong>.</p>`,
		companyName, projectName, graceEndsOn))

	return subject, plain, html
}

// GraceLapsedNotice is sent once the grace period has passed and the
// subcontractor is marked non-compliant.
func GraceLapsedNotice(companyName, projectName string) (string, string, string) {
	subject := fmt.Sprintf("Non-Compliant: Grace Period Ended - %s", companyName)

	plain := fmt.Sprintf(`Hello,

The grace period for %s on project %s has ended without updated
insurance coverage. The subcontractor has been marked non-compliant
and deactivated.

Submitting a valid Certificate of Insurance will restore compliance.`+signOff,
		companyName, projectName)

	html := htmlWrap("Grace Period Ended", fmt.Sprintf(`<p>The grace period for <strong>%s</strong> on project <strong>%s</strong> has ended without updated coverage.</p>
<p>The subcontractor has been marked <strong style="color:#dc2626;">non-compliant</strong> and deactivated.</p>`,
		companyName, projectName))

	return subject, plain, html
}

// MissingCOIReminder covers the 7/14/21-day escalation when the first
// certificate was never submitted.
func MissingCOIReminder(days int, companyName, projectName, portalLink string) (string, string, string) {
	subject := fmt.Sprintf("Reminder: COI Still Needed for %s (%d days)", projectName, days)
	if days >= 21 {
		subject = fmt.Sprintf("FINAL NOTICE: COI Still Needed for %s", projectName)
	}

	plain := fmt.Sprintf(`Hello,

It has been %d days since a Certificate of Insurance was requested for
%s on project %s, and none has been received.

Please submit the COI as soon as possible:
%s`+signOff, days, companyName, projectName, portalLink)

	html := htmlWrap("Certificate of Insurance Still Needed", fmt.Sprintf(`<p>It has been <strong>%d days</strong> since a Certificate of Insurance was requested for <strong>%s</strong> on project <strong>%s</strong>.</p>
<p><a href="%s" style="background-color: #3b82f6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; display: inline-block;">Submit COI</a></p>`,
		days, companyName, projectName, portalLink))

	return subject, plain, html
}

// ApprovalNotice is sent after an admin approves a COI, including when
// deficiencies were waived by manual override.
func ApprovalNotice(companyName, projectName string, waived int) (string, string, string) {
	subject := fmt.Sprintf("COI Approved - %s on %s", companyName, projectName)

	extra := ""
	if waived > 0 {
		extra = fmt.Sprintf("\n\n%d deficiency finding(s) were waived by the administrator.", waived)
	}

	plain := fmt.Sprintf(`Hello,

The Certificate of Insurance for %s on project %s has been reviewed and
approved. The subcontractor is now compliant.%s`+signOff,
		companyName, projectName, extra)

	html := htmlWrap("COI Approved", fmt.Sprintf(`<p>The Certificate of Insurance for <strong>%s</strong> on project <strong>%s</strong> has been approved.</p>
<p>The subcontractor is now <strong style="color:#10b981;">compliant</strong>.</p>`,
		companyName, projectName))

	return subject, plain, html
}
