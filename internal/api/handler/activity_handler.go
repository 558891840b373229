package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// Recent handles GET /v1/activity.
//
// @Summary      Recent audit trail
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "1-200, default 50"
// @Success      200    {object}  listResponse[domain.Activity]
// @Failure      400    {object}  errorResponse
// @Router       /v1/activity [get]
func (h *ActivityHandler) Recent(c echo.Context) error {
	var q activityQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	entries, err := h.service.Recent(c.Request().Context(), q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(entries))
}
