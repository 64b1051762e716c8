package handler

import (
	"context"
	"net/http"
	"strings"

	"insuretrack/internal/contract"
	"insuretrack/internal/domain/entity"
	"insuretrack/internal/utils"
	"insuretrack/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type COIService interface {
	GetAllCOIs() ([]*contract.COIResponse, apierror.ErrorResponse)
	GetCOIByID(id string) (*contract.COIResponse, apierror.ErrorResponse)
	CreateCOI(ctx context.Context, actor *entity.User, req *contract.CreateCOIRequest) (*contract.COIResponse, apierror.ErrorResponse)
	ApproveCOI(ctx context.Context, actor *entity.User, id string, req *contract.ApproveCOIRequest) (*contract.COIResponse, apierror.ErrorResponse)
	DeleteCOI(actor *entity.User, id string) apierror.ErrorResponse
}

type DefaultCOIRoute struct {
	COIService COIService
}

func NewCOIDefault(coiService COIService) *DefaultCOIRoute {
	return &DefaultCOIRoute{COIService: coiService}
}

func (h *DefaultCOIRoute) GetCOIs(c echo.Context) error {
	cois, err := h.COIService.GetAllCOIs()
	if err != nil {
		return c.JSON(err.Code(), err)
	}

	resp := echo.Map{"cois": cois}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultCOIRoute) GetCOI(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))

	coi, apierr := h.COIService.GetCOIByID(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, coi)
}

func (h *DefaultCOIRoute) CreateCOI(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateCOIRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	coi, apierr := h.COIService.CreateCOI(c.Request().Context(), user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, coi)
}

func (h *DefaultCOIRoute) ApproveCOI(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id := strings.TrimSpace(c.Param("id"))

	var req contract.ApproveCOIRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	coi, apierr := h.COIService.ApproveCOI(c.Request().Context(), user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, coi)
}

func (h *DefaultCOIRoute) DeleteCOI(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id := strings.TrimSpace(c.Param("id"))

	serr := h.COIService.DeleteCOI(user, id)
	if serr != nil {
		return c.JSON(serr.Code(), serr)
	}
	return c.NoContent(http.StatusOK)
}
