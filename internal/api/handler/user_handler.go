package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sitecrew/workforce-scheduler/internal/core/calendar"
	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

// UserHandler serves the admin user management endpoints.
type UserHandler struct {
	service ports.UserService
	now     func() time.Time
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service, now: time.Now}
}

// List handles GET /v1/users.
//
// @Summary      List users, newest first
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Case-insensitive match on first name, last name or email"
// @Param        role    query     string  false  "worker, supervisor or admin"
// @Param        status  query     string  false  "present or absent"
// @Success      200     {object}  listResponse[domain.User]
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	var q listUsersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	users, err := h.service.List(c.Request().Context(), ports.ListUsersFilter{
		Search: q.Search,
		Role:   domain.Role(q.Role),
		Status: domain.PresenceStatus(q.Status),
		Order:  ports.UsersNewestFirst,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(users))
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PATCH /v1/users/:id. Omitted fields are left untouched.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		ActorID:   id.UserID,
	}
	if req.Role != nil {
		r := domain.Role(*req.Role)
		in.Role = &r
	}
	if req.Status != nil {
		s := domain.PresenceStatus(*req.Status)
		in.Status = &s
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// TogglePresence handles POST /v1/users/:id/presence.
//
// @Summary      Toggle present/absent
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id}/presence [post]
func (h *UserHandler) TogglePresence(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	user, err := h.service.TogglePresence(c.Request().Context(), c.Param("id"), id.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/:id. The user's assignments and sessions
// go with it.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "User id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), id.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Available handles GET /v1/users/available, the scheduling panel of the
// admin calendar.
//
// @Summary      Users available for scheduling
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        date              query     string  false  "YYYY-MM-DD, defaults to today"
// @Param        search            query     string  false  "Case-insensitive first or last name substring"
// @Param        role              query     string  false  "all, worker, supervisor or admin"
// @Param        status            query     string  false  "all, present or absent (default present)"
// @Param        exclude_assigned  query     bool    false  "Hide users already assigned on date"
// @Success      200               {object}  listResponse[domain.User]
// @Failure      400               {object}  errorResponse
// @Failure      422               {object}  errorResponse
// @Router       /v1/users/available [get]
func (h *UserHandler) Available(c echo.Context) error {
	var q availableUsersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	date, err := calendar.ParseDateOr(q.Date, h.now())
	if err != nil {
		return err
	}

	users, err := h.service.Available(c.Request().Context(), ports.AvailableUsersInput{
		Search:          q.Search,
		Role:            q.Role,
		Status:          q.Status,
		Date:            date,
		ExcludeAssigned: q.ExcludeAssigned,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(users))
}
