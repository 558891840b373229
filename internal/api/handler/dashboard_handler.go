package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sitecrew/workforce-scheduler/internal/core/calendar"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
	now     func() time.Time
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service, now: time.Now}
}

// Stats handles GET /v1/dashboard/stats.
//
// @Summary      Admin dashboard counters
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "Day counted as today, YYYY-MM-DD"
// @Success      200   {object}  ports.AdminStats
// @Router       /v1/dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	today, err := h.today(c)
	if err != nil {
		return err
	}
	stats, err := h.service.AdminStats(c.Request().Context(), today)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Mine handles GET /v1/me/dashboard.
//
// @Summary      Employee dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "Day counted as today, YYYY-MM-DD"
// @Success      200   {object}  ports.EmployeeDashboard
// @Router       /v1/me/dashboard [get]
func (h *DashboardHandler) Mine(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	today, err := h.today(c)
	if err != nil {
		return err
	}
	dash, err := h.service.Employee(c.Request().Context(), id.UserID, today)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dash)
}

func (h *DashboardHandler) today(c echo.Context) (time.Time, error) {
	var q dashboardQuery
	if err := c.Bind(&q); err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	return calendar.ParseDateOr(q.Date, h.now())
}
