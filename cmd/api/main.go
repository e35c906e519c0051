// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

// Command api is the entry point for the Four Eyed Gems admin API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foureyedgems/admin-api/internal/activity"
	"github.com/foureyedgems/admin-api/internal/api"
	"github.com/foureyedgems/admin-api/internal/auth"
	"github.com/foureyedgems/admin-api/internal/clients"
	"github.com/foureyedgems/admin-api/internal/inquiries"
	"github.com/foureyedgems/admin-api/internal/platform/config"
	"github.com/foureyedgems/admin-api/internal/platform/constants"
	"github.com/foureyedgems/admin-api/internal/platform/middleware"
	"github.com/foureyedgems/admin-api/internal/platform/migration"
	"github.com/foureyedgems/admin-api/internal/platform/obs"
	pgstore "github.com/foureyedgems/admin-api/internal/platform/postgres"
	redisstore "github.com/foureyedgems/admin-api/internal/platform/redis"
	"github.com/foureyedgems/admin-api/internal/platform/sec"
	"github.com/foureyedgems/admin-api/internal/projects"
	"github.com/foureyedgems/admin-api/internal/settings"
	"github.com/foureyedgems/admin-api/internal/users"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security Services ──────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL())
	must(log, err, "initialize token service")

	obs.Init()

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	activityRepository := activity.NewPostgresRepository(pool)
	recorder := activity.NewRecorder(activityRepository, log)
	activityHandler := activity.NewHandler(recorder)

	userService := users.NewService(users.NewPostgresRepository(pool), log)
	userHandler := users.NewHandler(userService, recorder)

	authService := auth.NewService(userService, tokenService, auth.BootstrapConfig{
		AdminEmail:    cfg.DefaultAdminEmail,
		AdminPassword: cfg.DefaultAdminPassword,
	}, log)
	authHandler := auth.NewHandler(authService, recorder)

	clientService := clients.NewService(clients.NewPostgresRepository(pool), log)
	clientHandler := clients.NewHandler(clientService, recorder)

	inquiryService := inquiries.NewService(inquiries.NewPostgresRepository(pool), log)
	inquiryHandler := inquiries.NewHandler(inquiryService, recorder)

	projectService := projects.NewService(projects.NewPostgresRepository(pool), log)
	projectHandler := projects.NewHandler(projectService, recorder)

	settingsService := settings.NewService(
		settings.NewPostgresRepository(pool),
		settings.NewCache(rdb, log),
		log,
	)
	settingsHandler := settings.NewHandler(settingsService, recorder)

	// ── 9. Middleware State ───────────────────────────────────────────────
	authenticator := middleware.NewAuthenticator(tokenService, userService, log)

	// The sweeper goroutine lives for the whole process; its context is
	// cancelled by process exit, not by the startup deadline.
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	limiter.StartSweeper(sweepCtx, constants.RateLimitSweepInterval)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		User:      userHandler,
		Client:    clientHandler,
		Inquiry:   inquiryHandler,
		Project:   projectHandler,
		Settings:  settingsHandler,
		Activity:  activityHandler,
	}

	server := api.NewServer(cfg, log, authenticator, limiter, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
