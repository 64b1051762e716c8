package handler

import (
	"net/http"
	"strings"

	"insuretrack/internal/contract"
	"insuretrack/internal/domain/entity"
	"insuretrack/internal/utils"
	"insuretrack/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type CatalogService interface {
	GetTrades() ([]*contract.TradeResponse, apierror.ErrorResponse)
	CreateTrade(actor *entity.User, req *contract.CreateTradeRequest) (*contract.TradeResponse, apierror.ErrorResponse)
	DeleteTrade(actor *entity.User, id string) apierror.ErrorResponse
	GetBrokers() ([]*contract.BrokerResponse, apierror.ErrorResponse)
	CreateBroker(req *contract.CreateBrokerRequest) (*contract.BrokerResponse, apierror.ErrorResponse)
	DeleteBroker(actor *entity.User, id string) apierror.ErrorResponse
}

type DefaultCatalogRoute struct {
	CatalogService CatalogService
}

func NewCatalogDefault(catalogService CatalogService) *DefaultCatalogRoute {
	return &DefaultCatalogRoute{CatalogService: catalogService}
}

func (h *DefaultCatalogRoute) GetTrades(c echo.Context) error {
	trades, err := h.CatalogService.GetTrades()
	if err != nil {
		return c.JSON(err.Code(), err)
	}

	resp := echo.Map{"trades": trades}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultCatalogRoute) CreateTrade(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateTradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	trade, apierr := h.CatalogService.CreateTrade(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, trade)
}

func (h *DefaultCatalogRoute) DeleteTrade(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id := strings.TrimSpace(c.Param("id"))

	serr := h.CatalogService.DeleteTrade(user, id)
	if serr != nil {
		return c.JSON(serr.Code(), serr)
	}
	return c.NoContent(http.StatusOK)
}

func (h *DefaultCatalogRoute) GetBrokers(c echo.Context) error {
	brokers, err := h.CatalogService.GetBrokers()
	if err != nil {
		return c.JSON(err.Code(), err)
	}

	resp := echo.Map{"brokers": brokers}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultCatalogRoute) CreateBroker(c echo.Context) error {
	var req contract.CreateBrokerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	broker, apierr := h.CatalogService.CreateBroker(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, broker)
}

func (h *DefaultCatalogRoute) DeleteBroker(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id := strings.TrimSpace(c.Param("id"))

	serr := h.CatalogService.DeleteBroker(user, id)
	if serr != nil {
		return c.JSON(serr.Code(), serr)
	}
	return c.NoContent(http.StatusOK)
}
