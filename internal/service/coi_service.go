package service

import (
	"context"
	"encoding/json"
	"fmt"
	"insuretrack/internal/contract"
	"insuretrack/internal/domain/entity"
	"insuretrack/internal/infrastructure/aws/storage"
	"insuretrack/internal/infrastructure/email"
	"insuretrack/internal/utils"
	"insuretrack/internal/utils/apierror"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type COIRepository interface {
	FindAll() ([]*entity.GeneratedCOI, error)
	FindByID(id string) (*entity.GeneratedCOI, error)
	FindByAccessToken(token string) (*entity.GeneratedCOI, error)
	FindByProject(projectID string) ([]*entity.GeneratedCOI, error)
	Save(coi *entity.GeneratedCOI) error
	Delete(coi *entity.GeneratedCOI) error
}

type ProjectSubRepository interface {
	FindAll() ([]*entity.ProjectSubcontractor, error)
	FindByID(id string) (*entity.ProjectSubcontractor, error)
	FindByProject(projectID string) ([]*entity.ProjectSubcontractor, error)
	FindBySubcontractor(subcontractorID string) ([]*entity.ProjectSubcontractor, error)
	Save(sub *entity.ProjectSubcontractor) error
	Delete(sub *entity.ProjectSubcontractor) error
}

type DefaultCOIService struct {
	COIRepo        COIRepository
	SubRepo        ProjectSubRepository
	ProjectRepo    ProjectRepository
	ContractorRepo ContractorRepository
	S3             storage.S3Client
	Mailer         email.Mailer
	Validate       *validator.Validate
	PortalBaseURL  string
}

func NewCOIService(
	coiRepo COIRepository,
	subRepo ProjectSubRepository,
	projectRepo ProjectRepository,
	contractorRepo ContractorRepository,
	s3 storage.S3Client,
	mailer email.Mailer,
	validate *validator.Validate,
	portalBaseURL string,
) *DefaultCOIService {
	return &DefaultCOIService{
		COIRepo:        coiRepo,
		SubRepo:        subRepo,
		ProjectRepo:    projectRepo,
		ContractorRepo: contractorRepo,
		S3:             s3,
		Mailer:         mailer,
		Validate:       validate,
		PortalBaseURL:  portalBaseURL,
	}
}

func (s *DefaultCOIService) GetAllCOIs() ([]*contract.COIResponse, apierror.ErrorResponse) {
	cois, err := s.COIRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch COIs: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.COIResponse, len(cois))
	for i, coi := range cois {
		resp[i] = toCOIResponse(coi)
	}
	return resp, nil
}

func (s *DefaultCOIService) GetCOIByID(id string) (*contract.COIResponse, apierror.ErrorResponse) {
	coi, err := s.COIRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch COI: %v", err)
		return nil, apierror.InternalServerError
	}

	if coi == nil {
		return nil, apierror.NotFoundError
	}
	return toCOIResponse(coi), nil
}

// CreateCOI starts a certificate lifecycle for a project
// subcontractor and notifies the broker when an address is known.
func (s *DefaultCOIService) CreateCOI(ctx context.Context, actor *entity.User, req *contract.CreateCOIRequest) (*contract.COIResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	sub, err := s.SubRepo.FindByID(req.SubcontractorID)
	if err != nil {
		log.Errorf("failed to fetch project subcontractor: %v", err)
		return nil, apierror.InternalServerError
	}
	if sub == nil {
		return nil, apierror.NotFoundError
	}

	now := utils.NowUTC()
	coi := &entity.GeneratedCOI{
		ID:              uuid.NewString(),
		ProjectID:       req.ProjectID,
		SubcontractorID: req.SubcontractorID,
		Status:          entity.COIStatusAwaitingBrokerInfo,
		AccessToken:     uuid.NewString(),
		BrokerName:      req.BrokerName,
		BrokerEmail:     req.BrokerEmail,
		SubNotifiedDate: now,
		CreatedBy:       actor.Email,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.COIRepo.Save(coi); err != nil {
		log.Errorf("failed to create COI: %v", err)
		return nil, apierror.InternalServerError
	}

	if coi.BrokerEmail != "" {
		s.notifyBroker(ctx, coi)
	}
	return toCOIResponse(coi), nil
}

// notifyBroker sends the initial COI request and stamps
// BrokerNotifiedDate; a failed send is logged and the stamp skipped so
// the escalator's clock does not start on an email that never left.
func (s *DefaultCOIService) notifyBroker(ctx context.Context, coi *entity.GeneratedCOI) {
	gcName := "The general contractor"
	projectName := "the project"
	if project, err := s.ProjectRepo.FindByID(coi.ProjectID); err == nil && project != nil {
		projectName = project.ProjectName
		if gc, err := s.ContractorRepo.FindByID(project.GCID); err == nil && gc != nil {
			gcName = gc.CompanyName
		}
	}

	link := fmt.Sprintf("%s/broker/coi/%s", s.PortalBaseURL, coi.AccessToken)
	subject, plain, html := email.BrokerRequest(coi.BrokerName, gcName, projectName, link)

	err := s.Mailer.Send(ctx, &email.Message{
		To:      []string{coi.BrokerEmail},
		Subject: subject,
		Body:    plain,
		HTML:    html,
	})
	if err != nil {
		log.Errorf("failed to send broker request for COI %s: %v", coi.ID, err)
		return
	}

	coi.BrokerNotifiedDate = utils.NowUTC()
	coi.UpdatedAt = coi.BrokerNotifiedDate
	if err := s.COIRepo.Save(coi); err != nil {
		log.Errorf("failed to stamp broker notification on COI %s: %v", coi.ID, err)
	}
}

// GetCOIByToken is the public broker-portal read. Unknown tokens are a
// plain 404; no detail leaks about whether the certificate exists.
func (s *DefaultCOIService) GetCOIByToken(token string) (*contract.BrokerCOIView, apierror.ErrorResponse) {
	coi, err := s.COIRepo.FindByAccessToken(token)
	if err != nil {
		log.Errorf("failed to fetch COI by token: %v", err)
		return nil, apierror.InternalServerError
	}
	if coi == nil {
		return nil, apierror.InvalidTokenError
	}

	view := &contract.BrokerCOIView{
		Status:           string(coi.Status),
		GeneralLiability: toCoverageLine(coi.GLCarrier, coi.GLPolicyNumber, coi.GLEachOccurrence, coi.GLEffectiveDate, coi.GLExpirationDate),
		Umbrella:         toCoverageLine(coi.UmbrellaCarrier, coi.UmbrellaPolicyNumber, coi.UmbrellaEachOccurrence, coi.UmbrellaEffectiveDate, coi.UmbrellaExpirationDate),
		WorkersComp:      toCoverageLine(coi.WCCarrier, coi.WCPolicyNumber, coi.WCEachAccident, coi.WCEffectiveDate, coi.WCExpirationDate),
		Auto:             toCoverageLine(coi.AutoCarrier, coi.AutoPolicyNumber, coi.AutoCombinedLimit, coi.AutoEffectiveDate, coi.AutoExpirationDate),
	}

	if sub, err := s.SubRepo.FindByID(coi.SubcontractorID); err == nil && sub != nil {
		view.SubcontractorName = sub.CompanyName
	}
	if project, err := s.ProjectRepo.FindByID(coi.ProjectID); err == nil && project != nil {
		view.ProjectName = project.ProjectName
		if gc, err := s.ContractorRepo.FindByID(project.GCID); err == nil && gc != nil {
			view.GCName = gc.CompanyName
		}
	}
	return view, nil
}

// SubmitByToken is the public broker-portal write: the broker fills in
// policy details per coverage line. The record moves on to awaiting
// the certificate upload.
func (s *DefaultCOIService) SubmitByToken(token string, req *contract.BrokerSubmitRequest) (*contract.BrokerCOIView, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	coi, err := s.COIRepo.FindByAccessToken(token)
	if err != nil {
		log.Errorf("failed to fetch COI by token: %v", err)
		return nil, apierror.InternalServerError
	}
	if coi == nil {
		return nil, apierror.InvalidTokenError
	}

	if req.BrokerName != "" {
		coi.BrokerName = req.BrokerName
	}
	if req.BrokerEmail != "" {
		coi.BrokerEmail = req.BrokerEmail
	}

	applyCoverageLine(req.GeneralLiability, &coi.GLCarrier, &coi.GLPolicyNumber, &coi.GLEachOccurrence, &coi.GLEffectiveDate, &coi.GLExpirationDate)
	applyCoverageLine(req.Umbrella, &coi.UmbrellaCarrier, &coi.UmbrellaPolicyNumber, &coi.UmbrellaEachOccurrence, &coi.UmbrellaEffectiveDate, &coi.UmbrellaExpirationDate)
	applyCoverageLine(req.WorkersComp, &coi.WCCarrier, &coi.WCPolicyNumber, &coi.WCEachAccident, &coi.WCEffectiveDate, &coi.WCExpirationDate)
	applyCoverageLine(req.Auto, &coi.AutoCarrier, &coi.AutoPolicyNumber, &coi.AutoCombinedLimit, &coi.AutoEffectiveDate, &coi.AutoExpirationDate)

	if coi.Status == entity.COIStatusAwaitingBrokerInfo {
		coi.Status = entity.COIStatusAwaitingBrokerUpload
	}

	coi.UpdatedAt = utils.NowUTC()
	if err := s.COIRepo.Save(coi); err != nil {
		log.Errorf("failed to update COI %s: %v", coi.ID, err)
		return nil, apierror.InternalServerError
	}
	return s.GetCOIByToken(token)
}

// UploadByToken stores the broker's certificate PDF and moves the
// record to admin review.
func (s *DefaultCOIService) UploadByToken(token string, fileHeader *multipart.FileHeader) (*contract.BrokerCOIView, apierror.ErrorResponse) {
	coi, err := s.COIRepo.FindByAccessToken(token)
	if err != nil {
		log.Errorf("failed to fetch COI by token: %v", err)
		return nil, apierror.InternalServerError
	}
	if coi == nil {
		return nil, apierror.InvalidTokenError
	}

	if apierr := checkCertificateFile(fileHeader); apierr != nil {
		return nil, apierr
	}

	data, apierr := readCertificateFile(fileHeader)
	if apierr != nil {
		return nil, apierr
	}

	filename := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	key, err := s.S3.UploadFile(data, filename)
	if err != nil {
		log.Errorf("failed to upload certificate: %v", err)
		return nil, apierror.InternalServerError
	}

	coi.FirstCOIUploaded = true
	coi.FirstCOIKey = key
	coi.FirstCOIFilename = fileHeader.Filename
	coi.Status = entity.COIStatusAwaitingAdminReview
	coi.UpdatedAt = utils.NowUTC()

	if err := s.COIRepo.Save(coi); err != nil {
		log.Errorf("failed to save COI %s: %v", coi.ID, err)
		return nil, apierror.InternalServerError
	}
	return s.GetCOIByToken(token)
}

// ApproveCOI finishes admin review. Every deficiency from the policy
// analysis must be waived by an override; otherwise the record lands
// in deficiency_pending. Approval flips the linked associations to
// compliant and notifies broker, subcontractor and GC, each send in
// its own error scope.
func (s *DefaultCOIService) ApproveCOI(ctx context.Context, actor *entity.User, id string, req *contract.ApproveCOIRequest) (*contract.COIResponse, apierror.ErrorResponse) {
	if !actor.IsAdmin() {
		return nil, apierror.AdminOnlyError
	}

	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	coi, err := s.COIRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch COI: %v", err)
		return nil, apierror.InternalServerError
	}
	if coi == nil {
		return nil, apierror.NotFoundError
	}

	if coi.Status != entity.COIStatusAwaitingAdminReview && coi.Status != entity.COIStatusDeficiencyPending {
		return nil, apierror.COINotReviewableError
	}

	analysis := parseAnalysis(coi.PolicyAnalysis)
	unwaived := 0
	for _, d := range analysis.Deficiencies {
		if _, ok := req.Overrides[d.ID]; !ok {
			unwaived++
		}
	}

	now := utils.NowUTC()
	if len(req.Overrides) > 0 {
		raw, merr := json.Marshal(req.Overrides)
		if merr != nil {
			log.Errorf("failed to marshal overrides: %v", merr)
			return nil, apierror.InternalServerError
		}
		coi.ManualOverrides = string(raw)
	}

	if unwaived > 0 {
		coi.Status = entity.COIStatusDeficiencyPending
		coi.UpdatedAt = now
		if err := s.COIRepo.Save(coi); err != nil {
			log.Errorf("failed to save COI %s: %v", coi.ID, err)
			return nil, apierror.InternalServerError
		}
		return toCOIResponse(coi), nil
	}

	coi.Status = entity.COIStatusActive
	coi.GracePeriodExpiry = 0
	coi.MarkedNonCompliantDate = 0
	coi.IsSubDeactivated = false
	coi.UpdatedAt = now

	if err := s.COIRepo.Save(coi); err != nil {
		log.Errorf("failed to save COI %s: %v", coi.ID, err)
		return nil, apierror.InternalServerError
	}

	sub, err := s.SubRepo.FindByID(coi.SubcontractorID)
	if err == nil && sub != nil {
		sub.ComplianceStatus = entity.ComplianceCompliant
		sub.UpdatedAt = now
		if err := s.SubRepo.Save(sub); err != nil {
			log.Errorf("failed to update association %s: %v", sub.ID, err)
		}
	}

	s.sendApprovalNotices(ctx, coi, sub, len(req.Overrides))
	return toCOIResponse(coi), nil
}

func (s *DefaultCOIService) DeleteCOI(actor *entity.User, id string) apierror.ErrorResponse {
	if !actor.IsAdmin() {
		return apierror.AdminOnlyError
	}

	coi, err := s.COIRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch COI: %v", err)
		return apierror.InternalServerError
	}
	if coi == nil {
		return apierror.NotFoundError
	}

	if coi.FirstCOIKey != "" {
		if err := s.S3.DeleteFile(coi.FirstCOIKey); err != nil {
			log.Errorf("failed to delete certificate object %s: %v", coi.FirstCOIKey, err)
			return apierror.InternalServerError
		}
	}

	if err := s.COIRepo.Delete(coi); err != nil {
		log.Errorf("failed to delete COI %s: %v", coi.ID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *DefaultCOIService) sendApprovalNotices(ctx context.Context, coi *entity.GeneratedCOI, sub *entity.ProjectSubcontractor, waived int) {
	companyName := "the subcontractor"
	var subEmail string
	if sub != nil {
		companyName = sub.CompanyName
		subEmail = sub.Email
	}

	projectName := "the project"
	var gcEmail string
	if project, err := s.ProjectRepo.FindByID(coi.ProjectID); err == nil && project != nil {
		projectName = project.ProjectName
		if gc, err := s.ContractorRepo.FindByID(project.GCID); err == nil && gc != nil {
			gcEmail = gc.Email
		}
	}

	subject, plain, html := email.ApprovalNotice(companyName, projectName, waived)
	for _, to := range []string{coi.BrokerEmail, subEmail, gcEmail} {
		if to == "" {
			continue
		}
		err := s.Mailer.Send(ctx, &email.Message{To: []string{to}, Subject: subject, Body: plain, HTML: html})
		if err != nil {
			log.Errorf("failed to send approval notice to %s: %v", to, err)
		}
	}
}

func checkCertificateFile(fileHeader *multipart.FileHeader) apierror.ErrorResponse {
	if fileHeader.Size > contract.MaxCOIFileSizeBytes {
		return apierror.NewSimple(400, "Certificate file exceeds %d bytes", contract.MaxCOIFileSizeBytes)
	}

	if strings.TrimSpace(fileHeader.Filename) == "" {
		return apierror.NewSimple(400, "Certificate file name is required")
	}

	if ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")); ext != "pdf" {
		return apierror.NewSimple(400, "Certificates must be PDF files, got: %s", ext)
	}
	return nil
}

func readCertificateFile(fileHeader *multipart.FileHeader) ([]byte, apierror.ErrorResponse) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open file: %v", err)
		return nil, apierror.InternalServerError
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("failed to read file: %v", err)
		return nil, apierror.InternalServerError
	}
	return data, nil
}

func parseAnalysis(raw string) *contract.PolicyAnalysis {
	analysis := &contract.PolicyAnalysis{}
	if raw == "" {
		return analysis
	}
	if err := json.Unmarshal([]byte(raw), analysis); err != nil {
		log.Warnf("unparseable policy analysis payload: %v", err)
	}
	return analysis
}

func toCoverageLine(carrier, policy string, limit float64, effective, expiration int64) *contract.CoverageLine {
	if carrier == "" && policy == "" && limit == 0 && effective == 0 && expiration == 0 {
		return nil
	}

	line := &contract.CoverageLine{
		Carrier:      carrier,
		PolicyNumber: policy,
		Limit:        limit,
	}
	if effective > 0 {
		line.EffectiveDate = time.UnixMilli(effective).UTC().Format("2006-01-02")
	}
	if expiration > 0 {
		line.ExpirationDate = time.UnixMilli(expiration).UTC().Format("2006-01-02")
	}
	return line
}

func applyCoverageLine(line *contract.CoverageLine, carrier, policy *string, limit *float64, effective, expiration *int64) {
	if line == nil {
		return
	}

	if line.Carrier != "" {
		*carrier = line.Carrier
	}
	if line.PolicyNumber != "" {
		*policy = line.PolicyNumber
	}
	if line.Limit > 0 {
		*limit = line.Limit
	}
	if line.EffectiveDate != "" {
		if t, err := time.Parse("2006-01-02", line.EffectiveDate); err == nil {
			*effective = t.UnixMilli()
		}
	}
	if line.ExpirationDate != "" {
		if t, err := time.Parse("2006-01-02", line.ExpirationDate); err == nil {
			*expiration = t.UnixMilli()
		}
	}
}

func toCOIResponse(coi *entity.GeneratedCOI) *contract.COIResponse {
	resp := &contract.COIResponse{
		ID:               coi.ID,
		ProjectID:        coi.ProjectID,
		SubcontractorID:  coi.SubcontractorID,
		Status:           string(coi.Status),
		BrokerName:       coi.BrokerName,
		BrokerEmail:      coi.BrokerEmail,
		GeneralLiability: toCoverageLine(coi.GLCarrier, coi.GLPolicyNumber, coi.GLEachOccurrence, coi.GLEffectiveDate, coi.GLExpirationDate),
		Umbrella:         toCoverageLine(coi.UmbrellaCarrier, coi.UmbrellaPolicyNumber, coi.UmbrellaEachOccurrence, coi.UmbrellaEffectiveDate, coi.UmbrellaExpirationDate),
		WorkersComp:      toCoverageLine(coi.WCCarrier, coi.WCPolicyNumber, coi.WCEachAccident, coi.WCEffectiveDate, coi.WCExpirationDate),
		Auto:             toCoverageLine(coi.AutoCarrier, coi.AutoPolicyNumber, coi.AutoCombinedLimit, coi.AutoEffectiveDate, coi.AutoExpirationDate),
		FirstCOIUploaded: coi.FirstCOIUploaded,
		FirstCOIFilename: coi.FirstCOIFilename,
		IsSubDeactivated: coi.IsSubDeactivated,
		CreatedAt:        utils.FormatEpoch(coi.CreatedAt),
		UpdatedAt:        utils.FormatEpoch(coi.UpdatedAt),
	}

	if nearest := coi.NearestExpiration(); nearest > 0 {
		resp.NearestExpiration = utils.FormatEpoch(nearest)
	}
	if coi.GracePeriodExpiry > 0 {
		resp.GracePeriodExpiry = utils.FormatEpoch(coi.GracePeriodExpiry)
	}

	if coi.PolicyAnalysis != "" {
		resp.PolicyAnalysis = parseAnalysis(coi.PolicyAnalysis)
	}
	if coi.ManualOverrides != "" {
		overrides := map[string]contract.ManualOverride{}
		if err := json.Unmarshal([]byte(coi.ManualOverrides), &overrides); err == nil {
			resp.ManualOverrides = overrides
		}
	}
	return resp
}
