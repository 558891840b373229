package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sitecrew/workforce-scheduler/docs"
	"github.com/sitecrew/workforce-scheduler/internal/api/handler"
	"github.com/sitecrew/workforce-scheduler/internal/api/middleware"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

const metricsSubsystem = "scheduler"

// Deps is everything the router needs. The application root builds it.
type Deps struct {
	Log       zerolog.Logger
	JWTSecret string
	Sessions  middleware.SessionResolver

	Auth        ports.AuthService
	Users       ports.UserService
	Projects    ports.ProjectService
	Assignments ports.AssignmentService
	Calendar    ports.CalendarService
	Dashboard   ports.DashboardService
	Activity    ports.ActivityService

	// Probes back /health/ready.
	Probes []handler.Probe
	// DisableMetrics skips the Prometheus middleware and /metrics.
	DisableMetrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	if !d.DisableMetrics {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem: metricsSubsystem,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	projectHandler := handler.NewProjectHandler(d.Projects)
	assignmentHandler := handler.NewAssignmentHandler(d.Assignments)
	calendarHandler := handler.NewCalendarHandler(d.Calendar)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)
	activityHandler := handler.NewActivityHandler(d.Activity)

	authMiddleware := middleware.Auth(d.JWTSecret, d.Sessions)
	adminOnly := middleware.AdminOnly()

	// --- Health probes and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Probes...).Readiness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/sign-in", authHandler.SignIn)
	auth.POST("/sign-up", authHandler.SignUp, authMiddleware, adminOnly)
	auth.POST("/sign-out", authHandler.SignOut, authMiddleware)
	auth.GET("/session", authHandler.Session, authMiddleware)

	v1 := e.Group("/v1", authMiddleware)

	// --- Any signed-in role ---
	me := v1.Group("/me")
	me.GET("/calendar", calendarHandler.Mine)
	me.GET("/dashboard", dashboardHandler.Mine)
	me.GET("/projects", projectHandler.Mine)
	v1.GET("/calendar/navigate", calendarHandler.Navigate)

	// --- Admin back office ---
	users := v1.Group("/users", adminOnly)
	users.GET("", userHandler.List)
	users.GET("/available", userHandler.Available)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update)
	users.POST("/:id/presence", userHandler.TogglePresence)
	users.DELETE("/:id", userHandler.Delete)

	projects := v1.Group("/projects", adminOnly)
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create)
	projects.GET("/:id", projectHandler.Get)
	projects.PATCH("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	assignments := v1.Group("/assignments", adminOnly)
	assignments.POST("", assignmentHandler.Create)
	assignments.POST("/batch", assignmentHandler.CreateBatch)
	assignments.POST("/move", assignmentHandler.Move)
	assignments.PATCH("/:id", assignmentHandler.Update)
	assignments.DELETE("/:id", assignmentHandler.Delete)

	v1.GET("/calendar", calendarHandler.Board, adminOnly)
	v1.GET("/dashboard/stats", dashboardHandler.Stats, adminOnly)
	v1.GET("/activity", activityHandler.Recent, adminOnly)

	return e
}

// requestLogger writes one structured access log line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				ev = log.Warn()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

