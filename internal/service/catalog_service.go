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

type TradeRepository interface {
	FindAll() ([]*entity.Trade, error)
	FindByID(id string) (*entity.Trade, error)
	Save(trade *entity.Trade) error
	Delete(trade *entity.Trade) error
}

type BrokerRepository interface {
	FindAll() ([]*entity.Broker, error)
	FindByID(id string) (*entity.Broker, error)
	Save(broker *entity.Broker) error
	Delete(broker *entity.Broker) error
}

// DefaultCatalogService serves the lookup tables the portals build
// dropdowns from: the trade list and the brokerage directory.
type DefaultCatalogService struct {
	TradeRepo  TradeRepository
	BrokerRepo BrokerRepository
	Validate   *validator.Validate
}

func NewCatalogService(tradeRepo TradeRepository, brokerRepo BrokerRepository, validate *validator.Validate) *DefaultCatalogService {
	return &DefaultCatalogService{
		TradeRepo:  tradeRepo,
		BrokerRepo: brokerRepo,
		Validate:   validate,
	}
}

func (s *DefaultCatalogService) GetTrades() ([]*contract.TradeResponse, apierror.ErrorResponse) {
	trades, err := s.TradeRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch trades: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.TradeResponse, len(trades))
	for i, t := range trades {
		resp[i] = toTradeResponse(t)
	}
	return resp, nil
}

func (s *DefaultCatalogService) CreateTrade(actor *entity.User, req *contract.CreateTradeRequest) (*contract.TradeResponse, apierror.ErrorResponse) {
	if !actor.IsAdmin() {
		return nil, apierror.AdminOnlyError
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	now := utils.NowUTC()
	t := &entity.Trade{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.TradeRepo.Save(t); err != nil {
		log.Errorf("failed to create trade: %v", err)
		return nil, apierror.InternalServerError
	}
	return toTradeResponse(t), nil
}

func (s *DefaultCatalogService) DeleteTrade(actor *entity.User, id string) apierror.ErrorResponse {
	if !actor.IsAdmin() {
		return apierror.AdminOnlyError
	}

	t, err := s.TradeRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch trade: %v", err)
		return apierror.InternalServerError
	}
	if t == nil {
		return apierror.NotFoundError
	}

	if err := s.TradeRepo.Delete(t); err != nil {
		log.Errorf("failed to delete trade: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *DefaultCatalogService) GetBrokers() ([]*contract.BrokerResponse, apierror.ErrorResponse) {
	brokers, err := s.BrokerRepo.FindAll()
	if err != nil {
		log.Errorf("failed to fetch brokers: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.BrokerResponse, len(brokers))
	for i, b := range brokers {
		resp[i] = toBrokerResponse(b)
	}
	return resp, nil
}

func (s *DefaultCatalogService) CreateBroker(req *contract.CreateBrokerRequest) (*contract.BrokerResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	now := utils.NowUTC()
	b := &entity.Broker{
		ID:          uuid.NewString(),
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.BrokerRepo.Save(b); err != nil {
		log.Errorf("failed to create broker: %v", err)
		return nil, apierror.InternalServerError
	}
	return toBrokerResponse(b), nil
}

func (s *DefaultCatalogService) DeleteBroker(actor *entity.User, id string) apierror.ErrorResponse {
	if !actor.IsAdmin() {
		return apierror.AdminOnlyError
	}

	b, err := s.BrokerRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch broker: %v", err)
		return apierror.InternalServerError
	}
	if b == nil {
		return apierror.NotFoundError
	}

	if err := s.BrokerRepo.Delete(b); err != nil {
		log.Errorf("failed to delete broker: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func toTradeResponse(t *entity.Trade) *contract.TradeResponse {
	return &contract.TradeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		CreatedAt:   utils.FormatEpoch(t.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(t.UpdatedAt),
	}
}

func toBrokerResponse(b *entity.Broker) *contract.BrokerResponse {
	return &contract.BrokerResponse{
		ID:          b.ID,
		CompanyName: b.CompanyName,
		ContactName: b.ContactName,
		Email:       b.Email,
		Phone:       b.Phone,
		Address:     b.Address,
		City:        b.City,
		State:       b.State,
		ZipCode:     b.ZipCode,
		Status:      b.Status,
		CreatedAt:   utils.FormatEpoch(b.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(b.UpdatedAt),
	}
}
