package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sitecrew/workforce-scheduler/internal/core/calendar"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

// CalendarHandler serves the day/week/month boards. Every board carries a
// generation; clients keep only the response with the highest one.
type CalendarHandler struct {
	service ports.CalendarService
	now     func() time.Time
}

func NewCalendarHandler(service ports.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: service, now: time.Now}
}

// Board handles GET /v1/calendar.
//
// @Summary      Admin calendar board
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "Reference date YYYY-MM-DD, defaults to today"
// @Param        view  query     string  false  "day, week or month (default day)"
// @Success      200   {object}  ports.Board
// @Failure      422   {object}  errorResponse
// @Router       /v1/calendar [get]
func (h *CalendarHandler) Board(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	in, err := h.boardInput(c)
	if err != nil {
		return err
	}
	in.Scope = id.SessionID

	board, err := h.service.AdminBoard(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, board)
}

// Mine handles GET /v1/me/calendar: the caller's own assignments.
//
// @Summary      Employee calendar
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "Reference date YYYY-MM-DD, defaults to today"
// @Param        view  query     string  false  "day, week or month (default day)"
// @Success      200   {object}  ports.Board
// @Failure      422   {object}  errorResponse
// @Router       /v1/me/calendar [get]
func (h *CalendarHandler) Mine(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	in, err := h.boardInput(c)
	if err != nil {
		return err
	}
	in.UserID = id.UserID
	in.Scope = id.SessionID

	board, err := h.service.EmployeeBoard(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, board)
}

// Navigate handles GET /v1/calendar/navigate. It only does the date
// arithmetic; callers fetch the board for the returned date.
//
// @Summary      Step the calendar one view backwards or forwards
// @Tags         calendar
// @Produce      json
// @Security     BearerAuth
// @Param        date       query     string  false  "Reference date YYYY-MM-DD, defaults to today"
// @Param        view       query     string  false  "day, week or month (default day)"
// @Param        direction  query     string  true   "previous or next"
// @Success      200        {object}  navigateResponse
// @Failure      400        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/calendar/navigate [get]
func (h *CalendarHandler) Navigate(c echo.Context) error {
	var q navigateQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	ref, err := calendar.ParseDateOr(q.Date, h.now())
	if err != nil {
		return err
	}
	view, err := calendar.ParseGranularity(q.View)
	if err != nil {
		return err
	}
	dir, err := calendar.ParseDirection(q.Direction)
	if err != nil {
		return err
	}

	next := calendar.Navigate(ref, view, dir)
	r := calendar.ComputeRange(next, view)
	return c.JSON(http.StatusOK, navigateResponse{
		Date:  calendar.Format(next),
		View:  string(view),
		Start: r.StartDate(),
		End:   r.EndDate(),
	})
}

func (h *CalendarHandler) boardInput(c echo.Context) (ports.BoardInput, error) {
	var q boardQuery
	if err := c.Bind(&q); err != nil {
		return ports.BoardInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	ref, err := calendar.ParseDateOr(q.Date, h.now())
	if err != nil {
		return ports.BoardInput{}, err
	}
	view, err := calendar.ParseGranularity(q.View)
	if err != nil {
		return ports.BoardInput{}, err
	}
	return ports.BoardInput{Date: ref, View: view}, nil
}
