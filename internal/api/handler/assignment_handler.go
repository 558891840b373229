package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

// AssignmentHandler exposes the scheduling commands of the admin calendar.
type AssignmentHandler struct {
	service ports.AssignmentService
}

func NewAssignmentHandler(service ports.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

// Create handles POST /v1/assignments.
//
// @Summary      Assign one user to a project for a day
// @Description  Rejected with 409 when the user already has an assignment that day.
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAssignmentRequest  true  "Assignment"
// @Success      201   {object}  domain.Assignment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/assignments [post]
func (h *AssignmentHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	a, err := h.service.Create(c.Request().Context(), ports.CreateAssignmentInput{
		UserID:    req.UserID,
		ProjectID: req.ProjectID,
		Date:      req.Date,
		Notes:     req.Notes,
		ActorID:   id.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// CreateBatch handles POST /v1/assignments/batch.
//
// @Summary      Assign several users to a project for a day
// @Description  Users already working elsewhere that day are not blocked.
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      batchAssignmentRequest  true  "Batch"
// @Success      201   {object}  batchAssignmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/assignments/batch [post]
func (h *AssignmentHandler) CreateBatch(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req batchAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	batch, err := h.service.CreateBatch(c.Request().Context(), ports.BatchAssignmentInput{
		ProjectID: req.ProjectID,
		Date:      req.Date,
		UserIDs:   req.UserIDs,
		Notes:     req.Notes,
		ActorID:   id.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, batchAssignmentResponse{Count: len(batch), Assignments: batch})
}

// Move handles POST /v1/assignments/move, the drag-and-drop command.
// Dropping onto a cell the user already occupies answers 200 with
// created=false.
//
// @Summary      Drop a user onto a project and day
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      moveRequest  true  "Source user and target cell"
// @Success      200   {object}  moveResponse
// @Success      201   {object}  moveResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/assignments/move [post]
func (h *AssignmentHandler) Move(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.service.MoveUserToProject(c.Request().Context(), req.UserID, ports.MoveTarget{
		ProjectID: req.ProjectID,
		Date:      req.Date,
	}, id.UserID)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, moveResponse{Created: res.Created, Assignment: res.Assignment, Message: res.Message})
}

// Update handles PATCH /v1/assignments/:id. Only the note can change.
//
// @Summary      Update an assignment note
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Assignment id"
// @Param        body  body      updateAssignmentRequest  true  "Note"
// @Success      200   {object}  domain.Assignment
// @Failure      404   {object}  errorResponse
// @Router       /v1/assignments/{id} [patch]
func (h *AssignmentHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	a, err := h.service.UpdateNotes(c.Request().Context(), c.Param("id"), req.Notes, id.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Delete handles DELETE /v1/assignments/:id.
//
// @Summary      Delete an assignment
// @Tags         assignments
// @Security     BearerAuth
// @Param        id   path  string  true  "Assignment id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), id.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
