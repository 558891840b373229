// @title           Workforce Scheduler API
// @version         1.0
// @description     Projects, employees and the day/week/month assignment calendar of a construction crew.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/sitecrew/workforce-scheduler/internal/api"
	"github.com/sitecrew/workforce-scheduler/internal/api/handler"
	"github.com/sitecrew/workforce-scheduler/internal/core/service"
	"github.com/sitecrew/workforce-scheduler/internal/core/session"
	"github.com/sitecrew/workforce-scheduler/internal/infrastructure/config"
	"github.com/sitecrew/workforce-scheduler/internal/infrastructure/db/mongo"
	"github.com/sitecrew/workforce-scheduler/internal/infrastructure/db/redis"
	"github.com/sitecrew/workforce-scheduler/internal/infrastructure/queue"
	"github.com/sitecrew/workforce-scheduler/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)
	log := logger.Init(logger.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		File:   cfg.Log.File,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Datastores ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "workforce-scheduler",
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	br := mongo.NewBreaker("mongo", mongo.BreakerConfig{
		MaxFailures: cfg.Breaker.MaxFailures,
		OpenTimeout: cfg.Breaker.OpenTimeout,
	}, log)
	userRepo := mongo.NewUserRepository(db, br)
	projectRepo := mongo.NewProjectRepository(db, br)
	assignmentRepo := mongo.NewAssignmentRepository(db, br)
	activityRepo := mongo.NewActivityRepository(db, br)
	if err := mongo.EnsureIndexes(ctx, userRepo, projectRepo, assignmentRepo, activityRepo); err != nil {
		return err
	}

	// --- Sessions ---
	sessions := session.NewManager(redis.NewSessionStore(rdb), cfg.TokenTTL, log)
	for _, l := range sessionListeners(log) {
		unsubscribe := sessions.Subscribe(l)
		defer unsubscribe()
	}

	// --- Audit trail ---
	activity := service.NewActivityService(activityRepo, log)
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activity, log)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	// --- Services ---
	authService := service.NewAuthService(userRepo, sessions, dispatcher, cfg.JWTSecret, log)
	userService := service.NewUserService(userRepo, assignmentRepo, sessions, dispatcher, log)
	projectService := service.NewProjectService(projectRepo, assignmentRepo, dispatcher, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, userRepo, projectRepo, dispatcher, log)
	calendarService := service.NewCalendarService(assignmentRepo, userRepo, projectRepo, redis.NewGenerationStore(rdb), log)
	dashboardService := service.NewDashboardService(userRepo, projectRepo, assignmentRepo, projectService, log)

	e := api.NewRouter(api.Deps{
		Log:         log,
		JWTSecret:   cfg.JWTSecret,
		Sessions:    sessions,
		Auth:        authService,
		Users:       userService,
		Projects:    projectService,
		Assignments: assignmentService,
		Calendar:    calendarService,
		Dashboard:   dashboardService,
		Activity:    activity,
		Probes:      []handler.Probe{handler.MongoProbe(db), handler.RedisProbe(rdb)},
	})

	// --- Serve ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
