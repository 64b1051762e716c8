package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"insuretrack/internal/domain/entity"
	"insuretrack/internal/infrastructure/email"
	"insuretrack/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCOIRepo struct {
	cois    []*entity.GeneratedCOI
	saveErr error
	saves   int
}

func (f *fakeCOIRepo) FindAll() ([]*entity.GeneratedCOI, error) { return f.cois, nil }

func (f *fakeCOIRepo) Save(coi *entity.GeneratedCOI) error {
	f.saves++
	return f.saveErr
}

type fakeSubRepo struct {
	subs []*entity.ProjectSubcontractor
}

func (f *fakeSubRepo) FindAll() ([]*entity.ProjectSubcontractor, error) { return f.subs, nil }
func (f *fakeSubRepo) Save(sub *entity.ProjectSubcontractor) error     { return nil }

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func (f *fakeProjectRepo) FindByID(id string) (*entity.Project, error) {
	return f.projects[id], nil
}

type fakeContractorRepo struct {
	contractors map[string]*entity.Contractor
}

func (f *fakeContractorRepo) FindByID(id string) (*entity.Contractor, error) {
	return f.contractors[id], nil
}

type captureMailer struct {
	sent    []*email.Message
	sendErr error
}

func (m *captureMailer) Send(_ context.Context, msg *email.Message) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *captureMailer) recipients() []string {
	var out []string
	for _, msg := range m.sent {
		out = append(out, msg.To...)
	}
	return out
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func daysFromNow(days int) int64 {
	return testNow.Add(time.Duration(days) * 24 * time.Hour).UnixMilli()
}

func testAssociation() *entity.ProjectSubcontractor {
	return &entity.ProjectSubcontractor{
		ID:               "ps1",
		ProjectID:        "p1",
		SubcontractorID:  "co1",
		CompanyName:      "Acme Electric",
		Email:            "sub@acme.test",
		ComplianceStatus: entity.ComplianceCompliant,
	}
}

func newTestReminder(cois []*entity.GeneratedCOI, subs []*entity.ProjectSubcontractor) (*ReminderService, *captureMailer, *fakeCOIRepo, *fakeSubRepo) {
	coiRepo := &fakeCOIRepo{cois: cois}
	subRepo := &fakeSubRepo{subs: subs}
	projectRepo := &fakeProjectRepo{projects: map[string]*entity.Project{
		"p1": {ID: "p1", ProjectName: "Tower One", GCID: "gc1"},
	}}
	contractorRepo := &fakeContractorRepo{contractors: map[string]*entity.Contractor{
		"gc1": {ID: "gc1", CompanyName: "BuildCo", Email: "gc@buildco.test"},
	}}
	mailer := &captureMailer{}

	svc := NewReminderService(coiRepo, subRepo, projectRepo, contractorRepo, mailer, "https://portal.test")
	svc.Now = func() time.Time { return testNow }
	return svc, mailer, coiRepo, subRepo
}

func TestRunRenewal30DayWindow(t *testing.T) {
	coi := &entity.GeneratedCOI{
		ID:               "c1",
		ProjectID:        "p1",
		SubcontractorID:  "ps1",
		Status:           entity.COIStatusActive,
		FirstCOIUploaded: true,
		BrokerEmail:      "broker@ins.test",
		GLExpirationDate: daysFromNow(30),
	}

	svc, mailer, coiRepo, _ := newTestReminder([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{testAssociation()})

	report, apierr := svc.Run(context.Background())
	require.Nil(t, apierr)
	require.Len(t, report.Actions, 1)

	action := report.Actions[0]
	assert.Equal(t, "renewal_30day", action.Tier)
	assert.Equal(t, "c1", action.COIID)
	assert.ElementsMatch(t, []string{"broker@ins.test", "sub@acme.test"}, action.EmailsSent)
	assert.True(t, coi.Renewal30DaySent)
	assert.False(t, coi.Renewal14DaySent)
	assert.Equal(t, 1, coiRepo.saves)
	assert.Len(t, mailer.sent, 2)
}

func TestRunRenewalIsIdempotent(t *testing.T) {
	coi := &entity.GeneratedCOI{
		ID:               "c1",
		ProjectID:        "p1",
		SubcontractorID:  "ps1",
		Status:           entity.COIStatusActive,
		FirstCOIUploaded: true,
		Renewal30DaySent: true,
		GLExpirationDate: daysFromNow(30),
	}

	svc, mailer, coiRepo, _ := newTestReminder([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{testAssociation()})

	report, apierr := svc.Run(context.Background())
	require.Nil(t, apierr)
	assert.Equal(t, 1, report.Scanned)
	assert.Empty(t, report.Actions)
	assert.Empty(t, mailer.sent)
	assert.Zero(t, coiRepo.saves)
}

func TestRunCatchesUpToNearestWindow(t *testing.T) {
	// 10 days out with no flag set: only the 14-day tier fires, the
	// missed 30-day email is not sent retroactively.
	coi := &entity.GeneratedCOI{
		ID:               "c1",
		ProjectID:        "p1",
		SubcontractorID:  "ps1",
		Status:           entity.COIStatusActive,
		FirstCOIUploaded: true,
		WCExpirationDate: daysFromNow(10),
	}

	svc, _, _, _ := newTestReminder([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{testAssociation()})

	report, apierr := svc.Run(context.Background())
	require.Nil(t, apierr)
	require.Len(t, report.Actions, 1)
	assert.Equal(t, "renewal_14day", report.Actions[0].Tier)
	assert.True(t, coi.Renewal14DaySent)
	assert.False(t, coi.Renewal30DaySent)
}

func TestRunJustExpired(t *testing.T) {
	coi := &entity.GeneratedCOI{
		ID:               "c1",
		ProjectID:        "p1",
		SubcontractorID:  "ps1",
		Status:           entity.COIStatusActive,
		FirstCOIUploaded: true,
		BrokerEmail:      "broker@ins.test",
		GLExpirationDate: daysFromNow(-2),
	}
	assoc := testAssociation()

	svc, mailer, _, _ := newTestReminder([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{assoc})

	report, apierr := svc.Run(context.Background())
	require.Nil(t, apierr)
	require.Len(t, report.Actions, 1)

	assert.Equal(t, "expired", report.Actions[0].Tier)
	assert.Equal(t, entity.COIStatusExpired, coi.Status)
	assert.Equal(t, daysFromNow(-2+7), coi.GracePeriodExpiry)
	assert.Equal(t, entity.CompliancePendingRenewal, assoc.ComplianceStatus)
	assert.ElementsMatch(t, []string{"broker@ins.test", "sub@acme.test", "gc@buildco.test"}, mailer.recipients())
}

func TestRunExpiredDoesNotRefire(t *testing.T) {
	coi := &entity.GeneratedCOI{
		ID:                "c1",
		ProjectID:         "p1",
		SubcontractorID:   "ps1",
		Status:            entity.COIStatusExpired,
		FirstCOIUploaded:  true,
		GLExpirationDate:  daysFromNow(-2),
		GracePeriodExpiry: daysFromNow(5),
	}

	svc, mailer, _, _ := newTestReminder([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{testAssociation()})

	report, apierr := svc.Run(context.Background())
	require.Nil(t, apierr)
	assert.Empty(t, report.Actions)
	assert.Empty(t, mailer.sent)
}

func TestRunGracePeriodLapsed(t *testing.T) {
	coi := &entity.GeneratedCOI{
		ID:                "c1",
		ProjectID:         "p1",
		SubcontractorID:   "ps1",
		Status:            entity.COIStatusExpired,
		FirstCOIUploaded:  true,
		GLExpirationDate:  daysFromNow(-9),
		GracePeriodExpiry: daysFromNow(-1),
	}
	assoc := testAssociation()
	assoc.ComplianceStatus = entity.CompliancePendingRenewal

	svc, mailer, _, _ := newTestReminder([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{assoc})

	report, apierr := svc.Run(context.Background())
	require.Nil(t, apierr)
	require.Len(t, report.Actions, 1)

	assert.Equal(t, "grace_lapsed", report.Actions[0].Tier)
	assert.Equal(t, entity.COIStatusPendingRenewal, coi.Status)
	assert.True(t, coi.IsSubDeactivated)
	assert.Equal(t, testNow.UnixMilli(), coi.MarkedNonCompliantDate)
	assert.Equal(t, entity.ComplianceNonCompliant, assoc.ComplianceStatus)
	// Grace-lapsed notices go to the sub and the GC, not the broker.
	assert.ElementsMatch(t, []string{"sub@acme.test", "gc@buildco.test"}, mailer.recipients())
}

func TestRunGraceLapsedOnlyOnce(t *testing.T) {
	coi := &entity.GeneratedCOI{
		ID:                     "c1",
		ProjectID:              "p1",
		SubcontractorID:        "ps1",
		Status:                 entity.COIStatusPendingRenewal,
		FirstCOIUploaded:       true,
		GLExpirationDate:       daysFromNow(-9),
		GracePeriodExpiry:      daysFromNow(-1),
		MarkedNonCompliantDate: daysFromNow(-1),
	}
	assoc := testAssociation()
	assoc.ComplianceStatus = entity.CompliancePendingRenewal

	svc, mailer, _, _ := newTestReminder([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{assoc})

	report, apierr := svc.Run(context.Background())
	require.Nil(t, apierr)
	assert.Empty(t, report.Actions)
	assert.Empty(t, mailer.sent)
}

func TestRunMissingCOIFiresHighestOverdueTierOnly(t *testing.T) {
	coi := &entity.GeneratedCOI{
		ID:              "c1",
		ProjectID:       "p1",
		SubcontractorID: "ps1",
		Status:          entity.COIStatusAwaitingBrokerUpload,
		BrokerEmail:     "broker@ins.test",
		AccessToken:     "tok123",
		SubNotifiedDate: daysFromNow(-10),
	}

	svc, mailer, _, _ := newTestReminder([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{testAssociation()})

	report, apierr := svc.Run(context.Background())
	require.Nil(t, apierr)
	require.Len(t, report.Actions, 1)

	assert.Equal(t, "missing_7day", report.Actions[0].Tier)
	assert.True(t, coi.Missing7DaySent)
	assert.False(t, coi.Missing14DaySent)
	// The GC is only pulled in at the 21-day tier.
	assert.ElementsMatch(t, []string{"broker@ins.test", "sub@acme.test"}, mailer.recipients())
}

func TestRunMissingCOILongNeglected(t *testing.T) {
	coi := &entity.GeneratedCOI{
		ID:              "c1",
		ProjectID:       "p1",
		SubcontractorID: "ps1",
		Status:          entity.COIStatusAwaitingBrokerInfo,
		BrokerEmail:     "broker@ins.test",
		AccessToken:     "tok123",
		SubNotifiedDate: daysFromNow(-25),
	}

	svc, mailer, _, _ := newTestReminder([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{testAssociation()})

	report, apierr := svc.Run(context.Background())
	require.Nil(t, apierr)
	require.Len(t, report.Actions, 1)

	// A single 21-day escalation, with the lower tiers marked sent so
	// the next pass stays quiet.
	assert.Equal(t, "missing_21day", report.Actions[0].Tier)
	assert.True(t, coi.Missing7DaySent)
	assert.True(t, coi.Missing14DaySent)
	assert.True(t, coi.Missing21DaySent)
	assert.ElementsMatch(t, []string{"broker@ins.test", "sub@acme.test", "gc@buildco.test"}, mailer.recipients())
}

func TestRunSkipsFullyNonCompliantSubs(t *testing.T) {
	coi := &entity.GeneratedCOI{
		ID:              "c1",
		ProjectID:       "p1",
		SubcontractorID: "ps1",
		Status:          entity.COIStatusAwaitingBrokerUpload,
		SubNotifiedDate: daysFromNow(-10),
	}
	assoc := testAssociation()
	assoc.ComplianceStatus = entity.ComplianceNonCompliant

	svc, mailer, _, _ := newTestReminder([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{assoc})

	report, apierr := svc.Run(context.Background())
	require.Nil(t, apierr)
	assert.Equal(t, 1, report.Scanned)
	assert.Empty(t, report.Actions)
	assert.Empty(t, mailer.sent)
}

func TestRunFansOutToCompanySiblings(t *testing.T) {
	coi := &entity.GeneratedCOI{
		ID:               "c1",
		ProjectID:        "p1",
		SubcontractorID:  "ps1",
		Status:           entity.COIStatusActive,
		FirstCOIUploaded: true,
		GLExpirationDate: daysFromNow(-2),
	}
	direct := testAssociation()
	sibling := &entity.ProjectSubcontractor{
		ID:               "ps2",
		ProjectID:        "p2",
		SubcontractorID:  "co1",
		CompanyName:      "Acme Electric",
		ComplianceStatus: entity.ComplianceCompliant,
	}

	svc, _, _, _ := newTestReminder([]*entity.GeneratedCOI{coi}, []*entity.ProjectSubcontractor{direct, sibling})

	report, apierr := svc.Run(context.Background())
	require.Nil(t, apierr)
	require.Len(t, report.Actions, 1)

	assert.Equal(t, entity.CompliancePendingRenewal, direct.ComplianceStatus)
	assert.Equal(t, entity.CompliancePendingRenewal, sibling.ComplianceStatus)
}

func TestRunEmailFailureDoesNotAbortPass(t *testing.T) {
	coiA := &entity.GeneratedCOI{
		ID:               "c1",
		ProjectID:        "p1",
		SubcontractorID:  "ps1",
		Status:           entity.COIStatusActive,
		FirstCOIUploaded: true,
		GLExpirationDate: daysFromNow(30),
	}
	coiB := &entity.GeneratedCOI{
		ID:               "c2",
		ProjectID:        "p1",
		SubcontractorID:  "ps1",
		Status:           entity.COIStatusActive,
		FirstCOIUploaded: true,
		GLExpirationDate: daysFromNow(12),
	}

	svc, mailer, _, _ := newTestReminder([]*entity.GeneratedCOI{coiA, coiB}, []*entity.ProjectSubcontractor{testAssociation()})
	mailer.sendErr = errors.New("ses throttled")

	report, apierr := svc.Run(context.Background())
	require.Nil(t, apierr)
	require.Len(t, report.Actions, 2)
	assert.Equal(t, 2, report.Errors)
	assert.NotEmpty(t, report.Actions[0].Error)
	// Flags still advance so the pass stays idempotent.
	assert.True(t, coiA.Renewal30DaySent)
	assert.True(t, coiB.Renewal14DaySent)
}

func TestRunRefusesConcurrentPass(t *testing.T) {
	svc, _, _, _ := newTestReminder(nil, nil)

	require.True(t, svc.runLock.TryLock())
	defer svc.runLock.Unlock()

	report, apierr := svc.Run(context.Background())
	assert.Nil(t, report)
	assert.Equal(t, apierror.ReminderRunBusyError, apierr)
}
