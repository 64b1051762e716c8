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

type ContractorService interface {
	GetContractors(ctype string) ([]*contract.ContractorResponse, apierror.ErrorResponse)
	GetContractorByID(id string) (*contract.ContractorResponse, apierror.ErrorResponse)
	CreateContractor(req *contract.CreateContractorRequest) (*contract.ContractorResponse, apierror.ErrorResponse)
	UpdateContractor(id string, req *contract.UpdateContractorRequest) (*contract.ContractorResponse, apierror.ErrorResponse)
	DeleteContractor(actor *entity.User, id string) apierror.ErrorResponse
}

type DefaultContractorRoute struct {
	ContractorService ContractorService
}

func NewContractorDefault(contractorService ContractorService) *DefaultContractorRoute {
	return &DefaultContractorRoute{ContractorService: contractorService}
}

func (h *DefaultContractorRoute) GetContractors(c echo.Context) error {
	ctype := strings.TrimSpace(c.QueryParam("type"))

	contractors, err := h.ContractorService.GetContractors(ctype)
	if err != nil {
		return c.JSON(err.Code(), err)
	}

	resp := echo.Map{"contractors": contractors}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultContractorRoute) GetContractor(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))

	contractor, apierr := h.ContractorService.GetContractorByID(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contractor)
}

func (h *DefaultContractorRoute) CreateContractor(c echo.Context) error {
	var req contract.CreateContractorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	contractor, apierr := h.ContractorService.CreateContractor(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, contractor)
}

func (h *DefaultContractorRoute) UpdateContractor(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))

	var req contract.UpdateContractorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	contractor, apierr := h.ContractorService.UpdateContractor(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, contractor)
}

func (h *DefaultContractorRoute) DeleteContractor(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id := strings.TrimSpace(c.Param("id"))

	serr := h.ContractorService.DeleteContractor(user, id)
	if serr != nil {
		return c.JSON(serr.Code(), serr)
	}
	return c.NoContent(http.StatusOK)
}
