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

type ProjectService interface {
	GetAllProjects() ([]*contract.ProjectResponse, apierror.ErrorResponse)
	GetProjectByID(id string) (*contract.ProjectResponse, apierror.ErrorResponse)
	CreateProject(req *contract.CreateProjectRequest) (*contract.ProjectResponse, apierror.ErrorResponse)
	UpdateProject(id string, req *contract.UpdateProjectRequest) (*contract.ProjectResponse, apierror.ErrorResponse)
	GetProjectSubs(projectID string) ([]*contract.ProjectSubResponse, apierror.ErrorResponse)
	AddSubcontractor(ctx context.Context, actor *entity.User, projectID string, req *contract.AddProjectSubRequest) (*contract.ProjectSubResponse, apierror.ErrorResponse)
	DeleteProject(actor *entity.User, id string) apierror.ErrorResponse
}

type DefaultProjectRoute struct {
	ProjectService ProjectService
}

func NewProjectDefault(projectService ProjectService) *DefaultProjectRoute {
	return &DefaultProjectRoute{ProjectService: projectService}
}

func (h *DefaultProjectRoute) GetProjects(c echo.Context) error {
	projects, err := h.ProjectService.GetAllProjects()
	if err != nil {
		return c.JSON(err.Code(), err)
	}

	resp := echo.Map{"projects": projects}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultProjectRoute) GetProject(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))

	project, apierr := h.ProjectService.GetProjectByID(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *DefaultProjectRoute) CreateProject(c echo.Context) error {
	var req contract.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	project, apierr := h.ProjectService.CreateProject(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, project)
}

func (h *DefaultProjectRoute) UpdateProject(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))

	var req contract.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	project, apierr := h.ProjectService.UpdateProject(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *DefaultProjectRoute) GetProjectSubs(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))

	subs, err := h.ProjectService.GetProjectSubs(id)
	if err != nil {
		return c.JSON(err.Code(), err)
	}

	resp := echo.Map{"subcontractors": subs}
	return c.JSON(http.StatusOK, &resp)
}

func (h *DefaultProjectRoute) AddSubcontractor(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id := strings.TrimSpace(c.Param("id"))

	var req contract.AddProjectSubRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	sub, apierr := h.ProjectService.AddSubcontractor(c.Request().Context(), user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, sub)
}

func (h *DefaultProjectRoute) DeleteProject(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id := strings.TrimSpace(c.Param("id"))

	serr := h.ProjectService.DeleteProject(user, id)
	if serr != nil {
		return c.JSON(serr.Code(), serr)
	}
	return c.NoContent(http.StatusOK)
}
