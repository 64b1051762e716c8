package service

import (
	"context"
	"insuretrack/internal/contract"
	"insuretrack/internal/domain/entity"
	"insuretrack/internal/utils"
	"insuretrack/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type ProjectRepository interface {
	FindAll() ([]*entity.Project, error)
	FindByID(id string) (*entity.Project, error)
	FindByGC(gcID string) ([]*entity.Project, error)
	Save(project *entity.Project) error
	Delete(project *entity.Project) error
}

// COICreator is the slice of the COI service the project service needs
// when a subcontractor joins a project.
type COICreator interface {
	CreateCOI(ctx context.Context, actor *entity.User, req *contract.CreateCOIRequest) (*contract.COIResponse, apierror.ErrorResponse)
}

type DefaultProjectService struct {
	ProjectRepo    ProjectRepository
	SubRepo        ProjectSubRepository
	ContractorRepo ContractorRepository
	BrokerRepo     BrokerRepository
	COIService     COICreator
	Validate       *validator.Validate
}

func NewProjectService(
	projectRepo ProjectRepository,
	subRepo ProjectSubRepository,
	contractorRepo ContractorRepository,
	brokerRepo BrokerRepository,
	coiService COICreator,
	validate *validator.Validate,
) *DefaultProjectService {
	return &DefaultProjectService{
		ProjectRepo:    projectRepo,
		SubRepo:        subRepo,
		ContractorRepo: contractorRepo,
		BrokerRepo:     brokerRepo,
		COIService:     coiService,
		Validate:       validate,
	}
}

func (s *DefaultProjectService) GetAllProjects() ([]*contract.ProjectResponse, apierror.ErrorResponse) {
	projects, err := s.ProjectRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch projects: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.ProjectResponse, len(projects))
	for i, p := range projects {
		resp[i] = toProjectResponse(p)
	}
	return resp, nil
}

func (s *DefaultProjectService) GetProjectByID(id string) (*contract.ProjectResponse, apierror.ErrorResponse) {
	p, err := s.ProjectRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch project: %v", err)
		return nil, apierror.InternalServerError
	}

	if p == nil {
		return nil, apierror.NotFoundError
	}
	return toProjectResponse(p), nil
}

func (s *DefaultProjectService) CreateProject(req *contract.CreateProjectRequest) (*contract.ProjectResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	gc, err := s.ContractorRepo.FindByID(req.GCID)
	if err != nil {
		log.Errorf("failed to fetch GC: %v", err)
		return nil, apierror.InternalServerError
	}
	if gc == nil || gc.ContractorType != entity.ContractorTypeGC {
		return nil, apierror.NewSimple(400, "gc_id must reference a general contractor")
	}

	now := utils.NowUTC()
	p := &entity.Project{
		ID:            uuid.NewString(),
		ProjectName:   req.ProjectName,
		ProjectNumber: req.ProjectNumber,
		GCID:          req.GCID,
		OwnerName:     req.OwnerName,
		Location:      req.Location,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Status:        "active",
		Budget:        req.Budget,
		Description:   req.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.ProjectRepo.Save(p); err != nil {
		log.Errorf("failed to create project: %v", err)
		return nil, apierror.InternalServerError
	}
	return toProjectResponse(p), nil
}

func (s *DefaultProjectService) UpdateProject(id string, req *contract.UpdateProjectRequest) (*contract.ProjectResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	p, err := s.ProjectRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch project: %v", err)
		return nil, apierror.InternalServerError
	}
	if p == nil {
		return nil, apierror.NotFoundError
	}

	if req.ProjectName != nil {
		p.ProjectName = *req.ProjectName
	}
	if req.OwnerName != nil {
		p.OwnerName = *req.OwnerName
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.State != nil {
		p.State = *req.State
	}
	if req.ZipCode != nil {
		p.ZipCode = *req.ZipCode
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Description != nil {
		p.Description = *req.Description
	}

	p.UpdatedAt = utils.NowUTC()
	if err := s.ProjectRepo.Save(p); err != nil {
		log.Errorf("failed to update project: %v", err)
		return nil, apierror.InternalServerError
	}
	return toProjectResponse(p), nil
}

// GetProjectSubs lists the subcontractor associations of a project.
func (s *DefaultProjectService) GetProjectSubs(projectID string) ([]*contract.ProjectSubResponse, apierror.ErrorResponse) {
	subs, err := s.SubRepo.FindByProject(projectID)
	if err != nil {
		log.Errorf("failed to fetch project subcontractors: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.ProjectSubResponse, len(subs))
	for i, sub := range subs {
		resp[i] = toProjectSubResponse(sub)
	}
	return resp, nil
}

// AddSubcontractor links a subcontractor company to a project. The
// association starts pending_broker and a COI record is opened in the
// same step, which kicks off the broker request flow when the company
// has an assigned broker.
func (s *DefaultProjectService) AddSubcontractor(ctx context.Context, actor *entity.User, projectID string, req *contract.AddProjectSubRequest) (*contract.ProjectSubResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	project, err := s.ProjectRepo.FindByID(projectID)
	if err != nil {
		log.Errorf("failed to fetch project: %v", err)
		return nil, apierror.InternalServerError
	}
	if project == nil {
		return nil, apierror.NotFoundError
	}

	company, err := s.ContractorRepo.FindByID(req.SubcontractorID)
	if err != nil {
		log.Errorf("failed to fetch subcontractor: %v", err)
		return nil, apierror.InternalServerError
	}
	if company == nil || company.ContractorType != entity.ContractorTypeSub {
		return nil, apierror.NewSimple(400, "subcontractor_id must reference a subcontractor")
	}

	trades := req.Trades
	if trades == "" {
		trades = company.Trades
	}

	contactEmail := req.Email
	if contactEmail == "" {
		contactEmail = company.Email
	}

	now := utils.NowUTC()
	sub := &entity.ProjectSubcontractor{
		ID:               uuid.NewString(),
		ProjectID:        projectID,
		SubcontractorID:  company.ID,
		CompanyName:      company.CompanyName,
		ContactName:      req.ContactName,
		Email:            contactEmail,
		Phone:            req.Phone,
		Trades:           trades,
		Status:           "pending",
		ComplianceStatus: entity.CompliancePendingBroker,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.SubRepo.Save(sub); err != nil {
		log.Errorf("failed to create project subcontractor: %v", err)
		return nil, apierror.InternalServerError
	}

	coiReq := &contract.CreateCOIRequest{
		ProjectID:       projectID,
		SubcontractorID: sub.ID,
	}
	if company.BrokerID != "" {
		if broker, err := s.BrokerRepo.FindByID(company.BrokerID); err == nil && broker != nil {
			coiReq.BrokerName = broker.CompanyName
			coiReq.BrokerEmail = broker.Email
		}
	}

	if _, apierr := s.COIService.CreateCOI(ctx, actor, coiReq); apierr != nil {
		// The association stands even when the COI record could not be
		// opened; an admin can retry from the COI screen.
		log.Errorf("failed to open COI for association %s", sub.ID)
	}
	return toProjectSubResponse(sub), nil
}

func (s *DefaultProjectService) DeleteProject(actor *entity.User, id string) apierror.ErrorResponse {
	if !actor.IsAdmin() {
		return apierror.AdminOnlyError
	}

	p, err := s.ProjectRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch project: %v", err)
		return apierror.InternalServerError
	}
	if p == nil {
		return apierror.NotFoundError
	}

	if err := s.ProjectRepo.Delete(p); err != nil {
		log.Errorf("failed to delete project: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func toProjectResponse(p *entity.Project) *contract.ProjectResponse {
	return &contract.ProjectResponse{
		ID:            p.ID,
		ProjectName:   p.ProjectName,
		ProjectNumber: p.ProjectNumber,
		GCID:          p.GCID,
		OwnerName:     p.OwnerName,
		Location:      p.Location,
		City:          p.City,
		State:         p.State,
		ZipCode:       p.ZipCode,
		Status:        p.Status,
		Budget:        p.Budget,
		Description:   p.Description,
		CreatedAt:     utils.FormatEpoch(p.CreatedAt),
		UpdatedAt:     utils.FormatEpoch(p.UpdatedAt),
	}
}

func toProjectSubResponse(sub *entity.ProjectSubcontractor) *contract.ProjectSubResponse {
	return &contract.ProjectSubResponse{
		ID:               sub.ID,
		ProjectID:        sub.ProjectID,
		SubcontractorID:  sub.SubcontractorID,
		CompanyName:      sub.CompanyName,
		ContactName:      sub.ContactName,
		Email:            sub.Email,
		Phone:            sub.Phone,
		Trades:           sub.Trades,
		Status:           sub.Status,
		ComplianceStatus: string(sub.ComplianceStatus),
		CreatedAt:        utils.FormatEpoch(sub.CreatedAt),
		UpdatedAt:        utils.FormatEpoch(sub.UpdatedAt),
	}
}
