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

type ProgramService interface {
	GetPrograms(gcID string) ([]*contract.ProgramResponse, apierror.ErrorResponse)
	CreateProgram(req *contract.CreateProgramRequest) (*contract.ProgramResponse, apierror.ErrorResponse)
	GetRequirements(programID string) ([]*contract.RequirementResponse, apierror.ErrorResponse)
	CreateRequirement(req *contract.CreateRequirementRequest) (*contract.RequirementResponse, apierror.ErrorResponse)
	DeleteRequirement(actor *entity.User, id string) apierror.ErrorResponse
	MatchForSubcontractor(programID, subID string) (*contract.MatchedRequirementsResponse, apierror.ErrorResponse)
}

type DefaultProgramRoute struct {
	ProgramService ProgramService
}

func NewProgramDefault(programService ProgramService) *DefaultProgramRoute {
	return &DefaultProgramRoute{ProgramService: programService}
}

func (h *DefaultProgramRoute) GetPrograms(c echo.Context) error {
	gcID := strings.TrimSpace(c.QueryParam("gc_id"))

	programs, err := h.ProgramService.GetPrograms(gcID)
	if err != nil {
		return c.JSON(err.Code(), err)
	}

	resp := echo.Map{"programs": programs}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultProgramRoute) CreateProgram(c echo.Context) error {
	var req contract.CreateProgramRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	program, apierr := h.ProgramService.CreateProgram(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, program)
}

func (h *DefaultProgramRoute) GetRequirements(c echo.Context) error {
	programID := strings.TrimSpace(c.Param("id"))

	reqs, err := h.ProgramService.GetRequirements(programID)
	if err != nil {
		return c.JSON(err.Code(), err)
	}

	resp := echo.Map{"requirements": reqs}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultProgramRoute) CreateRequirement(c echo.Context) error {
	programID := strings.TrimSpace(c.Param("id"))

	var req contract.CreateRequirementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}
	req.ProgramID = programID

	row, apierr := h.ProgramService.CreateRequirement(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, row)
}

func (h *DefaultProgramRoute) DeleteRequirement(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id := strings.TrimSpace(c.Param("reqId"))

	serr := h.ProgramService.DeleteRequirement(user, id)
	if serr != nil {
		return c.JSON(serr.Code(), serr)
	}
	return c.NoContent(http.StatusOK)
}

// MatchRequirements resolves which requirement rows of a program apply
// to a given project subcontractor, based on its declared trades.
func (h *DefaultProgramRoute) MatchRequirements(c echo.Context) error {
	programID := strings.TrimSpace(c.Param("id"))
	subID := strings.TrimSpace(c.QueryParam("subcontractor_id"))
	if subID == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewSimple(400, "Query parameter 'subcontractor_id' is required"))
	}

	matched, apierr := h.ProgramService.MatchForSubcontractor(programID, subID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, matched)
}
