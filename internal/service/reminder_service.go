package service

import (
	"context"
	"fmt"
	"insuretrack/internal/contract"
	"insuretrack/internal/domain/entity"
	"insuretrack/internal/infrastructure/email"
	"insuretrack/internal/utils"
	"insuretrack/internal/utils/apierror"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
)

const gracePeriodDays = 7

type ReminderCOIRepository interface {
	FindAll() ([]*entity.GeneratedCOI, error)
	Save(coi *entity.GeneratedCOI) error
}

type ReminderProjectSubRepository interface {
	FindAll() ([]*entity.ProjectSubcontractor, error)
	Save(sub *entity.ProjectSubcontractor) error
}

type ReminderProjectRepository interface {
	FindByID(id string) (*entity.Project, error)
}

type ReminderContractorRepository interface {
	FindByID(id string) (*entity.Contractor, error)
}

// ReminderService is the renewal engine: one pass scans every COI,
// sends the due renewal and missing-COI reminders, and applies the
// compliance consequences (expiration, grace period, deactivation) to
// the affected project associations.
//
// A pass is sequential and not transactional: each record's flags are
// persisted right after its emails go out, and an error on one record
// is reported in the run log without aborting the rest.
type ReminderService struct {
	COIRepo        ReminderCOIRepository
	SubRepo        ReminderProjectSubRepository
	ProjectRepo    ReminderProjectRepository
	ContractorRepo ReminderContractorRepository
	Mailer         email.Mailer
	PortalBaseURL  string

	// Now is swappable for tests.
	Now func() time.Time

	// Only one pass may run at a time; concurrent triggers would race
	// on the sent flags and duplicate notifications.
	runLock sync.Mutex
}

func NewReminderService(
	coiRepo ReminderCOIRepository,
	subRepo ReminderProjectSubRepository,
	projectRepo ReminderProjectRepository,
	contractorRepo ReminderContractorRepository,
	mailer email.Mailer,
	portalBaseURL string,
) *ReminderService {
	return &ReminderService{
		COIRepo:        coiRepo,
		SubRepo:        subRepo,
		ProjectRepo:    projectRepo,
		ContractorRepo: contractorRepo,
		Mailer:         mailer,
		PortalBaseURL:  portalBaseURL,
		Now:            time.Now,
	}
}

// Run executes one reminder pass and returns the run report. It
// returns 409 when another pass is already in flight.
func (r *ReminderService) Run(ctx context.Context) (*contract.ReminderRunReport, apierror.ErrorResponse) {
	if !r.runLock.TryLock() {
		return nil, apierror.ReminderRunBusyError
	}
	defer r.runLock.Unlock()

	started := r.Now()
	report := &contract.ReminderRunReport{
		StartedAt: started.UTC().Format(time.RFC3339),
	}

	cois, err := r.COIRepo.FindAll()
	if err != nil {
		log.Errorf("reminder run: failed to fetch COIs: %v", err)
		return nil, apierror.InternalServerError
	}

	subs, err := r.SubRepo.FindAll()
	if err != nil {
		log.Errorf("reminder run: failed to fetch project subcontractors: %v", err)
		return nil, apierror.InternalServerError
	}

	subsByID := make(map[string]*entity.ProjectSubcontractor, len(subs))
	subsByCompany := make(map[string][]*entity.ProjectSubcontractor)
	for _, sub := range subs {
		subsByID[sub.ID] = sub
		if sub.SubcontractorID != "" {
			subsByCompany[sub.SubcontractorID] = append(subsByCompany[sub.SubcontractorID], sub)
		}
	}

	for _, coi := range cois {
		report.Scanned++

		assocs := r.associations(coi, subsByID, subsByCompany)
		if !hasQualifyingAssociation(assocs) {
			continue
		}

		var action *contract.ReminderAction
		if coi.FirstCOIUploaded {
			action = r.processRenewal(ctx, coi, assocs)
		} else {
			action = r.processMissing(ctx, coi, assocs)
		}

		if action == nil {
			continue
		}

		action.COIID = coi.ID
		action.SubcontractorID = coi.SubcontractorID
		if action.Error != "" {
			report.Errors++
		}
		report.Actions = append(report.Actions, *action)
	}

	report.FinishedAt = r.Now().UTC().Format(time.RFC3339)
	log.Infof("reminder run finished: %d scanned, %d actions, %d errors",
		report.Scanned, len(report.Actions), report.Errors)
	return report, nil
}

// associations resolves every project association affected by a COI:
// the directly linked row plus, when the row carries a company id, all
// other rows of the same subcontractor company.
func (r *ReminderService) associations(
	coi *entity.GeneratedCOI,
	subsByID map[string]*entity.ProjectSubcontractor,
	subsByCompany map[string][]*entity.ProjectSubcontractor,
) []*entity.ProjectSubcontractor {
	direct, ok := subsByID[coi.SubcontractorID]
	if !ok {
		return nil
	}

	if direct.SubcontractorID == "" {
		return []*entity.ProjectSubcontractor{direct}
	}
	return subsByCompany[direct.SubcontractorID]
}

// hasQualifyingAssociation reports whether the subcontractor still has
// a project worth reminding about. Rows already non-compliant do not
// count.
func hasQualifyingAssociation(assocs []*entity.ProjectSubcontractor) bool {
	for _, a := range assocs {
		if a.ComplianceStatus != entity.ComplianceNonCompliant {
			return true
		}
	}
	return false
}

// processRenewal handles COIs whose first certificate was uploaded:
// pre-expiration reminder windows, the just-expired transition and the
// end of the grace period.
func (r *ReminderService) processRenewal(ctx context.Context, coi *entity.GeneratedCOI, assocs []*entity.ProjectSubcontractor) *contract.ReminderAction {
	nearest := coi.NearestExpiration()
	if nearest == 0 {
		return nil
	}

	now := r.Now().UTC()
	days := utils.DaysBetween(now.UnixMilli(), nearest)

	// Grace period first: once it lapses the record is done regardless
	// of anything else.
	if coi.GracePeriodExpiry > 0 && now.UnixMilli() > coi.GracePeriodExpiry && coi.MarkedNonCompliantDate == 0 {
		return r.fireGraceLapsed(ctx, coi, assocs, now)
	}

	switch {
	case days < 0:
		if coi.Status == entity.COIStatusExpired || coi.Status == entity.COIStatusPendingRenewal {
			return nil
		}
		return r.fireExpired(ctx, coi, assocs, nearest)

	case days <= 5:
		if coi.RenewalNotificationSent || coi.Status != entity.COIStatusActive {
			return nil
		}
		coi.RenewalNotificationSent = true
		coi.Status = entity.COIStatusExpiringSoon
		return r.fireRenewalTier(ctx, coi, assocs, days, nearest, "renewal_5day")

	case days <= 14:
		if coi.Renewal14DaySent {
			return nil
		}
		coi.Renewal14DaySent = true
		return r.fireRenewalTier(ctx, coi, assocs, days, nearest, "renewal_14day")

	case days <= 30:
		if coi.Renewal30DaySent {
			return nil
		}
		coi.Renewal30DaySent = true
		return r.fireRenewalTier(ctx, coi, assocs, days, nearest, "renewal_30day")
	}

	return nil
}

func (r *ReminderService) fireRenewalTier(ctx context.Context, coi *entity.GeneratedCOI, assocs []*entity.ProjectSubcontractor, days int, nearest int64, tier string) *contract.ReminderAction {
	action := &contract.ReminderAction{Tier: tier}
	companyName, projectName := r.recordContext(coi, assocs)
	expiresOn := time.UnixMilli(nearest).UTC().Format("January 2, 2006")

	subject, plain, html := email.RenewalReminder(days, companyName, projectName, expiresOn)
	r.sendTo(ctx, action, coi.BrokerEmail, subject, plain, html)
	r.sendTo(ctx, action, contactEmail(coi, assocs), subject, plain, html)

	r.persistCOI(coi, action)
	return action
}

func (r *ReminderService) fireExpired(ctx context.Context, coi *entity.GeneratedCOI, assocs []*entity.ProjectSubcontractor, nearest int64) *contract.ReminderAction {
	action := &contract.ReminderAction{Tier: "expired"}

	coi.Status = entity.COIStatusExpired
	coi.GracePeriodExpiry = time.UnixMilli(nearest).Add(gracePeriodDays * 24 * time.Hour).UnixMilli()

	companyName, projectName := r.recordContext(coi, assocs)
	graceEndsOn := time.UnixMilli(coi.GracePeriodExpiry).UTC().Format("January 2, 2006")

	subject, plain, html := email.ExpiredNotice(companyName, projectName, graceEndsOn)
	r.sendTo(ctx, action, coi.BrokerEmail, subject, plain, html)
	r.sendTo(ctx, action, contactEmail(coi, assocs), subject, plain, html)
	r.sendTo(ctx, action, r.gcEmail(coi), subject, plain, html)

	r.persistCOI(coi, action)
	r.fanOutCompliance(assocs, entity.CompliancePendingRenewal, action)
	return action
}

func (r *ReminderService) fireGraceLapsed(ctx context.Context, coi *entity.GeneratedCOI, assocs []*entity.ProjectSubcontractor, now time.Time) *contract.ReminderAction {
	action := &contract.ReminderAction{Tier: "grace_lapsed"}

	coi.Status = entity.COIStatusPendingRenewal
	coi.MarkedNonCompliantDate = now.UnixMilli()
	coi.IsSubDeactivated = true

	companyName, projectName := r.recordContext(coi, assocs)
	subject, plain, html := email.GraceLapsedNotice(companyName, projectName)
	r.sendTo(ctx, action, contactEmail(coi, assocs), subject, plain, html)
	r.sendTo(ctx, action, r.gcEmail(coi), subject, plain, html)

	r.persistCOI(coi, action)
	r.fanOutCompliance(assocs, entity.ComplianceNonCompliant, action)
	return action
}

// processMissing escalates COIs whose first certificate never arrived.
// Only the highest overdue unsent tier fires; lower overdue tiers are
// marked sent in the same write so a long-neglected record does not
// get three emails at once.
func (r *ReminderService) processMissing(ctx context.Context, coi *entity.GeneratedCOI, assocs []*entity.ProjectSubcontractor) *contract.ReminderAction {
	if coi.Status != entity.COIStatusAwaitingBrokerInfo && coi.Status != entity.COIStatusAwaitingBrokerUpload {
		return nil
	}

	base := coi.SubNotifiedDate
	if base == 0 {
		base = coi.BrokerNotifiedDate
	}
	if base == 0 {
		return nil
	}

	elapsed := utils.DaysBetween(base, r.Now().UTC().UnixMilli())

	var tier string
	var days int
	switch {
	case elapsed >= 21 && !coi.Missing21DaySent:
		coi.Missing21DaySent = true
		coi.Missing14DaySent = true
		coi.Missing7DaySent = true
		tier, days = "missing_21day", 21

	case elapsed >= 14 && !coi.Missing14DaySent:
		coi.Missing14DaySent = true
		coi.Missing7DaySent = true
		tier, days = "missing_14day", 14

	case elapsed >= 7 && !coi.Missing7DaySent:
		coi.Missing7DaySent = true
		tier, days = "missing_7day", 7

	default:
		return nil
	}

	action := &contract.ReminderAction{Tier: tier}
	companyName, projectName := r.recordContext(coi, assocs)
	portalLink := fmt.Sprintf("%s/broker/coi/%s", r.PortalBaseURL, coi.AccessToken)

	subject, plain, html := email.MissingCOIReminder(days, companyName, projectName, portalLink)
	r.sendTo(ctx, action, coi.BrokerEmail, subject, plain, html)
	r.sendTo(ctx, action, contactEmail(coi, assocs), subject, plain, html)
	if days >= 21 {
		r.sendTo(ctx, action, r.gcEmail(coi), subject, plain, html)
	}

	r.persistCOI(coi, action)
	return action
}

// sendTo sends one email, recording either the recipient or the error
// on the action. A failed send never aborts the record's remaining
// notifications.
func (r *ReminderService) sendTo(ctx context.Context, action *contract.ReminderAction, to, subject, plain, html string) {
	if to == "" {
		return
	}

	err := r.Mailer.Send(ctx, &email.Message{
		To:      []string{to},
		Subject: subject,
		Body:    plain,
		HTML:    html,
	})
	if err != nil {
		log.Errorf("reminder: failed to email %s: %v", to, err)
		action.Error = appendErr(action.Error, fmt.Sprintf("email to %s: %v", to, err))
		return
	}
	action.EmailsSent = append(action.EmailsSent, to)
}

func (r *ReminderService) persistCOI(coi *entity.GeneratedCOI, action *contract.ReminderAction) {
	coi.UpdatedAt = utils.NowUTC()
	if err := r.COIRepo.Save(coi); err != nil {
		log.Errorf("reminder: failed to save COI %s: %v", coi.ID, err)
		action.Error = appendErr(action.Error, fmt.Sprintf("save coi: %v", err))
	}
}

// fanOutCompliance writes the new compliance status to every affected
// association, one row at a time. Partial failure leaves the rest of
// the rows updated and is reported on the action.
func (r *ReminderService) fanOutCompliance(assocs []*entity.ProjectSubcontractor, status entity.ComplianceStatus, action *contract.ReminderAction) {
	for _, sub := range assocs {
		sub.ComplianceStatus = status
		sub.UpdatedAt = utils.NowUTC()
		if err := r.SubRepo.Save(sub); err != nil {
			log.Errorf("reminder: failed to update association %s: %v", sub.ID, err)
			action.Error = appendErr(action.Error, fmt.Sprintf("association %s: %v", sub.ID, err))
		}
	}
}

// recordContext resolves display names for email bodies; lookups that
// fail fall back to neutral placeholders rather than blocking the send.
func (r *ReminderService) recordContext(coi *entity.GeneratedCOI, assocs []*entity.ProjectSubcontractor) (string, string) {
	companyName := "Subcontractor"
	for _, a := range assocs {
		if a.ID == coi.SubcontractorID && a.CompanyName != "" {
			companyName = a.CompanyName
			break
		}
	}

	projectName := "the project"
	if project, err := r.ProjectRepo.FindByID(coi.ProjectID); err == nil && project != nil {
		projectName = project.ProjectName
	}
	return companyName, projectName
}

func (r *ReminderService) gcEmail(coi *entity.GeneratedCOI) string {
	project, err := r.ProjectRepo.FindByID(coi.ProjectID)
	if err != nil || project == nil || project.GCID == "" {
		return ""
	}

	gc, err := r.ContractorRepo.FindByID(project.GCID)
	if err != nil || gc == nil {
		return ""
	}
	return gc.Email
}

func contactEmail(coi *entity.GeneratedCOI, assocs []*entity.ProjectSubcontractor) string {
	for _, a := range assocs {
		if a.ID == coi.SubcontractorID && a.Email != "" {
			return a.Email
		}
	}
	for _, a := range assocs {
		if a.Email != "" {
			return a.Email
		}
	}
	return ""
}

func appendErr(existing, next string) string {
	if existing == "" {
		return next
	}
	return existing + "; " + next
}
