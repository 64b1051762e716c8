package service

import (
	"insuretrack/internal/contract"
	"insuretrack/internal/domain/entity"
	"insuretrack/internal/utils"
	"insuretrack/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type ProgramRepository interface {
	FindAll() ([]*entity.InsuranceProgram, error)
	FindByID(id string) (*entity.InsuranceProgram, error)
	FindByGC(gcID string) ([]*entity.InsuranceProgram, error)
	Save(program *entity.InsuranceProgram) error
	Delete(program *entity.InsuranceProgram) error
}

type RequirementRepository interface {
	FindByProgram(programID string) ([]*entity.SubInsuranceRequirement, error)
	FindByID(id string) (*entity.SubInsuranceRequirement, error)
	Save(req *entity.SubInsuranceRequirement) error
	Delete(req *entity.SubInsuranceRequirement) error
	FindStateRequirements(stateCode string) ([]*entity.StateRequirement, error)
}

type DefaultProgramService struct {
	ProgramRepo ProgramRepository
	ReqRepo     RequirementRepository
	SubRepo     ProjectSubRepository
	ProjectRepo ProjectRepository
	Validate    *validator.Validate
}

func NewProgramService(
	programRepo ProgramRepository,
	reqRepo RequirementRepository,
	subRepo ProjectSubRepository,
	projectRepo ProjectRepository,
	validate *validator.Validate,
) *DefaultProgramService {
	return &DefaultProgramService{
		ProgramRepo: programRepo,
		ReqRepo:     reqRepo,
		SubRepo:     subRepo,
		ProjectRepo: projectRepo,
		Validate:    validate,
	}
}

func (s *DefaultProgramService) GetPrograms(gcID string) ([]*contract.ProgramResponse, apierror.ErrorResponse) {
	var programs []*entity.InsuranceProgram
	var err error

	if gcID == "" {
		programs, err = s.ProgramRepo.FindAll()
	} else {
		programs, err = s.ProgramRepo.FindByGC(gcID)
	}
	if err != nil {
		log.Errorf("failed to fetch programs: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.ProgramResponse, len(programs))
	for i, p := range programs {
		resp[i] = toProgramResponse(p)
	}
	return resp, nil
}

func (s *DefaultProgramService) CreateProgram(req *contract.CreateProgramRequest) (*contract.ProgramResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	now := utils.NowUTC()
	p := &entity.InsuranceProgram{
		ID:          uuid.NewString(),
		ProgramName: req.ProgramName,
		GCID:        req.GCID,
		Description: req.Description,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.ProgramRepo.Save(p); err != nil {
		log.Errorf("failed to create program: %v", err)
		return nil, apierror.InternalServerError
	}
	return toProgramResponse(p), nil
}

func (s *DefaultProgramService) GetRequirements(programID string) ([]*contract.RequirementResponse, apierror.ErrorResponse) {
	rows, err := s.ReqRepo.FindByProgram(programID)
	if err != nil {
		log.Errorf("failed to fetch requirements: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.RequirementResponse, len(rows))
	for i, row := range rows {
		resp[i] = toRequirementResponse(row)
	}
	return resp, nil
}

func (s *DefaultProgramService) CreateRequirement(req *contract.CreateRequirementRequest) (*contract.RequirementResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	program, err := s.ProgramRepo.FindByID(req.ProgramID)
	if err != nil {
		log.Errorf("failed to fetch program: %v", err)
		return nil, apierror.InternalServerError
	}
	if program == nil {
		return nil, apierror.NotFoundError
	}

	now := utils.NowUTC()
	row := &entity.SubInsuranceRequirement{
		ID:               uuid.NewString(),
		ProgramID:        req.ProgramID,
		Tier:             req.Tier,
		TradeName:        req.TradeName,
		InsuranceType:    req.InsuranceType,
		ApplicableTrades: req.ApplicableTrades,
		Scope:            req.Scope,
		LimitAmount:      req.LimitAmount,
		Required:         req.Required,
		StateMandated:    req.StateMandated,
		Notes:            req.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.ReqRepo.Save(row); err != nil {
		log.Errorf("failed to create requirement: %v", err)
		return nil, apierror.InternalServerError
	}
	return toRequirementResponse(row), nil
}

func (s *DefaultProgramService) DeleteRequirement(actor *entity.User, id string) apierror.ErrorResponse {
	if !actor.IsAdmin() {
		return apierror.AdminOnlyError
	}

	row, err := s.ReqRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch requirement: %v", err)
		return apierror.InternalServerError
	}
	if row == nil {
		return apierror.NotFoundError
	}

	if err := s.ReqRepo.Delete(row); err != nil {
		log.Errorf("failed to delete requirement: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

// MatchForSubcontractor runs the trade-matching rules of a program
// against one project subcontractor and reduces the result to the
// highest-priority tier.
func (s *DefaultProgramService) MatchForSubcontractor(programID, subID string) (*contract.MatchedRequirementsResponse, apierror.ErrorResponse) {
	sub, err := s.SubRepo.FindByID(subID)
	if err != nil {
		log.Errorf("failed to fetch project subcontractor: %v", err)
		return nil, apierror.InternalServerError
	}
	if sub == nil {
		return nil, apierror.NotFoundError
	}

	rows, err := s.ReqRepo.FindByProgram(programID)
	if err != nil {
		log.Errorf("failed to fetch requirements: %v", err)
		return nil, apierror.InternalServerError
	}

	matched := HighestTierRequirements(MatchRequirements(sub.Trades, rows))

	resp := &contract.MatchedRequirementsResponse{
		SubcontractorID: subID,
		ProgramID:       programID,
		Requirements:    make([]*contract.RequirementResponse, len(matched)),
	}
	for i, row := range matched {
		resp.Requirements[i] = toRequirementResponse(row)
	}

	// State minimums stack on top of whatever tier matched.
	project, err := s.ProjectRepo.FindByID(sub.ProjectID)
	if err != nil {
		log.Errorf("failed to fetch project: %v", err)
		return nil, apierror.InternalServerError
	}
	if project != nil && project.State != "" {
		stateRows, err := s.ReqRepo.FindStateRequirements(project.State)
		if err != nil {
			log.Errorf("failed to fetch state requirements: %v", err)
			return nil, apierror.InternalServerError
		}
		for _, row := range stateRows {
			resp.StateRequirements = append(resp.StateRequirements, &contract.StateRequirementResponse{
				ID:           row.ID,
				StateCode:    row.StateCode,
				CoverageType: row.CoverageType,
				MinimumLimit: row.MinimumLimit,
				Description:  row.Description,
			})
		}
	}
	return resp, nil
}

func toProgramResponse(p *entity.InsuranceProgram) *contract.ProgramResponse {
	return &contract.ProgramResponse{
		ID:          p.ID,
		ProgramName: p.ProgramName,
		GCID:        p.GCID,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   utils.FormatEpoch(p.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(p.UpdatedAt),
	}
}

func toRequirementResponse(row *entity.SubInsuranceRequirement) *contract.RequirementResponse {
	return &contract.RequirementResponse{
		ID:               row.ID,
		ProgramID:        row.ProgramID,
		Tier:             row.Tier,
		TradeName:        row.TradeName,
		InsuranceType:    row.InsuranceType,
		ApplicableTrades: row.ApplicableTrades,
		Scope:            row.Scope,
		LimitAmount:      row.LimitAmount,
		Required:         row.Required,
		StateMandated:    row.StateMandated,
		Notes:            row.Notes,
	}
}
