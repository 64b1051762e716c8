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

type ContractorRepository interface {
	FindAll() ([]*entity.Contractor, error)
	FindByID(id string) (*entity.Contractor, error)
	FindByType(ctype entity.ContractorType) ([]*entity.Contractor, error)
	Save(contractor *entity.Contractor) error
	Delete(contractor *entity.Contractor) error
}

type DefaultContractorService struct {
	ContractorRepo ContractorRepository
	Validate       *validator.Validate
}

func NewContractorService(repo ContractorRepository, validate *validator.Validate) *DefaultContractorService {
	return &DefaultContractorService{
		ContractorRepo: repo,
		Validate:       validate,
	}
}

// GetContractors lists company profiles, optionally filtered by type
// (general_contractor, subcontractor, broker).
func (s *DefaultContractorService) GetContractors(ctype string) ([]*contract.ContractorResponse, apierror.ErrorResponse) {
	var contractors []*entity.Contractor
	var err error

	if ctype == "" {
		contractors, err = s.ContractorRepo.FindAll()
	} else {
		contractors, err = s.ContractorRepo.FindByType(entity.ContractorType(ctype))
	}
	if err != nil {
		log.Errorf("failed to fetch contractors: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.ContractorResponse, len(contractors))
	for i, c := range contractors {
		resp[i] = toContractorResponse(c)
	}
	return resp, nil
}

func (s *DefaultContractorService) GetContractorByID(id string) (*contract.ContractorResponse, apierror.ErrorResponse) {
	c, err := s.ContractorRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch contractor: %v", err)
		return nil, apierror.InternalServerError
	}

	if c == nil {
		return nil, apierror.NotFoundError
	}
	return toContractorResponse(c), nil
}

func (s *DefaultContractorService) CreateContractor(req *contract.CreateContractorRequest) (*contract.ContractorResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	now := utils.NowUTC()
	c := &entity.Contractor{
		ID:             uuid.NewString(),
		CompanyName:    req.CompanyName,
		ContractorType: entity.ContractorType(req.ContractorType),
		ContactName:    req.ContactName,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		ZipCode:        req.ZipCode,
		Status:         "active",
		Trades:         req.Trades,
		BrokerID:       req.BrokerID,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.ContractorRepo.Save(c); err != nil {
		log.Errorf("failed to create contractor: %v", err)
		return nil, apierror.InternalServerError
	}
	return toContractorResponse(c), nil
}

func (s *DefaultContractorService) UpdateContractor(id string, req *contract.UpdateContractorRequest) (*contract.ContractorResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	c, err := s.ContractorRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch contractor: %v", err)
		return nil, apierror.InternalServerError
	}
	if c == nil {
		return nil, apierror.NotFoundError
	}

	if req.CompanyName != nil {
		c.CompanyName = *req.CompanyName
	}
	if req.ContactName != nil {
		c.ContactName = *req.ContactName
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.City != nil {
		c.City = *req.City
	}
	if req.State != nil {
		c.State = *req.State
	}
	if req.ZipCode != nil {
		c.ZipCode = *req.ZipCode
	}
	if req.Trades != nil {
		c.Trades = *req.Trades
	}
	if req.BrokerID != nil {
		c.BrokerID = *req.BrokerID
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}

	c.UpdatedAt = utils.NowUTC()
	if err := s.ContractorRepo.Save(c); err != nil {
		log.Errorf("failed to update contractor: %v", err)
		return nil, apierror.InternalServerError
	}
	return toContractorResponse(c), nil
}

func (s *DefaultContractorService) DeleteContractor(actor *entity.User, id string) apierror.ErrorResponse {
	if !actor.IsAdmin() {
		return apierror.AdminOnlyError
	}

	c, err := s.ContractorRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch contractor: %v", err)
		return apierror.InternalServerError
	}
	if c == nil {
		return apierror.NotFoundError
	}

	if err := s.ContractorRepo.Delete(c); err != nil {
		log.Errorf("failed to delete contractor: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func toContractorResponse(c *entity.Contractor) *contract.ContractorResponse {
	return &contract.ContractorResponse{
		ID:                c.ID,
		CompanyName:       c.CompanyName,
		ContractorType:    string(c.ContractorType),
		ContactName:       c.ContactName,
		Email:             c.Email,
		Phone:             c.Phone,
		Address:           c.Address,
		City:              c.City,
		State:             c.State,
		ZipCode:           c.ZipCode,
		Status:            c.Status,
		Trades:            c.Trades,
		InsuranceVerified: c.InsuranceVerified,
		ComplianceStatus:  c.ComplianceStatus,
		BrokerID:          c.BrokerID,
		CreatedAt:         utils.FormatEpoch(c.CreatedAt),
		UpdatedAt:         utils.FormatEpoch(c.UpdatedAt),
	}
}
