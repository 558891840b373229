package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

// ProjectHandler handles HTTP requests for construction sites.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List handles GET /v1/projects.
//
// @Summary      List projects, newest first
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending, in_progress, finished or cancelled"
// @Success      200     {object}  listResponse[domain.Project]
// @Failure      400     {object}  errorResponse
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	var q listProjectsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	projects, err := h.service.List(c.Request().Context(), ports.ListProjectsFilter{
		Status: domain.ProjectStatus(q.Status),
		Order:  ports.ProjectsNewestFirst,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(projects))
}

// Get handles GET /v1/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /v1/projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), ports.CreateProjectInput{
		Name:           req.Name,
		Description:    req.Description,
		Location:       req.Location,
		Status:         domain.ProjectStatus(req.Status),
		Color:          req.Color,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		WazeLink:       req.WazeLink,
		GoogleMapsLink: req.GoogleMapsLink,
		ActorID:        id.UserID,
	})
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/v1/projects/"+p.ID)
	return c.JSON(http.StatusCreated, p)
}

// Update handles PATCH /v1/projects/:id.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Project id"
// @Param        body  body      updateProjectRequest  true  "Fields to change"
// @Success      200   {object}  domain.Project
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/projects/{id} [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.UpdateProjectInput{
		Name:           req.Name,
		Description:    req.Description,
		Location:       req.Location,
		Color:          req.Color,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		WazeLink:       req.WazeLink,
		GoogleMapsLink: req.GoogleMapsLink,
		ActorID:        id.UserID,
	}
	if req.Status != nil {
		s := domain.ProjectStatus(*req.Status)
		in.Status = &s
	}

	p, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /v1/projects/:id. Its assignments are removed too.
//
// @Summary      Delete a project
// @Tags         projects
// @Security     BearerAuth
// @Param        id   path  string  true  "Project id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), id.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Mine handles GET /v1/me/projects: the projects the caller may browse.
//
// @Summary      Accessible projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[domain.Project]
// @Router       /v1/me/projects [get]
func (h *ProjectHandler) Mine(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	projects, err := h.service.Accessible(c.Request().Context(), id.UserID, id.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(projects))
}
