package handler

import (
	"mime/multipart"
	"net/http"
	"strings"

	"insuretrack/internal/contract"
	"insuretrack/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

// BrokerPortalService is the token-scoped slice of the COI service.
// These routes are reached through the emailed access link and carry
// no user session.
type BrokerPortalService interface {
	GetCOIByToken(token string) (*contract.BrokerCOIView, apierror.ErrorResponse)
	SubmitByToken(token string, req *contract.BrokerSubmitRequest) (*contract.BrokerCOIView, apierror.ErrorResponse)
	UploadByToken(token string, fileHeader *multipart.FileHeader) (*contract.BrokerCOIView, apierror.ErrorResponse)
}

type DefaultPublicRoute struct {
	PortalService BrokerPortalService
}

func NewPublicDefault(portalService BrokerPortalService) *DefaultPublicRoute {
	return &DefaultPublicRoute{PortalService: portalService}
}

func (h *DefaultPublicRoute) GetCOI(c echo.Context) error {
	token := strings.TrimSpace(c.Param("token"))

	view, apierr := h.PortalService.GetCOIByToken(token)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *DefaultPublicRoute) SubmitCOI(c echo.Context) error {
	token := strings.TrimSpace(c.Param("token"))

	var req contract.BrokerSubmitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	view, apierr := h.PortalService.SubmitByToken(token, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *DefaultPublicRoute) UploadCOI(c echo.Context) error {
	token := strings.TrimSpace(c.Param("token"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewSimple(400, "Form field 'file' is required"))
	}

	view, apierr := h.PortalService.UploadByToken(token, fileHeader)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, view)
}
