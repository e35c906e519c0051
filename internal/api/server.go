// Copyright (c) 2026 Four Eyed Gems. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/foureyedgems/admin-api/internal/activity"
	"github.com/foureyedgems/admin-api/internal/auth"
	"github.com/foureyedgems/admin-api/internal/clients"
	"github.com/foureyedgems/admin-api/internal/inquiries"
	"github.com/foureyedgems/admin-api/internal/platform/config"
	"github.com/foureyedgems/admin-api/internal/platform/constants"
	"github.com/foureyedgems/admin-api/internal/platform/middleware"
	"github.com/foureyedgems/admin-api/internal/platform/obs"
	"github.com/foureyedgems/admin-api/internal/platform/sec"
	"github.com/foureyedgems/admin-api/internal/projects"
	"github.com/foureyedgems/admin-api/internal/settings"
	"github.com/foureyedgems/admin-api/internal/users"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles login, refresh, logout, profile, and first-run setup.
	Auth *auth.Handler

	// User handles admin-gated account management.
	User *users.Handler

	// Client handles the CRM client records.
	Client *clients.Handler

	// Inquiry handles contact-form submissions and triage.
	Inquiry *inquiries.Handler

	// Project handles client engagements.
	Project *projects.Handler

	// Settings handles the singleton configuration document.
	Settings *settings.Handler

	// Activity handles the audit trail listing.
	Activity *activity.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, authenticator *middleware.Authenticator, limiter *middleware.RateLimiter, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg, splitOrigins(cfg.ExtraOrigins)))
	r.Use(obs.Instrument)
	r.Use(limiter.Middleware())
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", obs.Handler())

	// Role allow-lists. There is no hierarchy; each gate names its roles.
	anyRole := authenticator.Require(sec.RoleSuperAdmin, sec.RoleAdmin, sec.RoleStaff)
	adminOnly := authenticator.Require(sec.RoleSuperAdmin, sec.RoleAdmin)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", func(authRoutes chi.Router) {
			h.Auth.RegisterPublicRoutes(authRoutes)
			authRoutes.Group(func(private chi.Router) {
				private.Use(anyRole)
				h.Auth.RegisterProfileRoutes(private)
			})
		})

		api.Route("/setup", h.Auth.RegisterSetupRoutes)

		api.Route("/inquiries", func(inquiryRoutes chi.Router) {
			// The website contact form posts here without a token.
			h.Inquiry.RegisterPublicRoutes(inquiryRoutes)
			inquiryRoutes.Group(func(staff chi.Router) {
				staff.Use(anyRole)
				h.Inquiry.RegisterRoutes(staff)
			})
			inquiryRoutes.Group(func(admin chi.Router) {
				admin.Use(adminOnly)
				h.Inquiry.RegisterAdminRoutes(admin)
			})
		})

		api.Route("/clients", func(clientRoutes chi.Router) {
			clientRoutes.Group(func(staff chi.Router) {
				staff.Use(anyRole)
				h.Client.RegisterRoutes(staff)
			})
			clientRoutes.Group(func(admin chi.Router) {
				admin.Use(adminOnly)
				h.Client.RegisterAdminRoutes(admin)
			})
		})

		api.Route("/projects", func(projectRoutes chi.Router) {
			projectRoutes.Group(func(staff chi.Router) {
				staff.Use(anyRole)
				h.Project.RegisterRoutes(staff)
			})
			projectRoutes.Group(func(admin chi.Router) {
				admin.Use(adminOnly)
				h.Project.RegisterAdminRoutes(admin)
			})
		})

		api.Route("/admin/users", func(userRoutes chi.Router) {
			userRoutes.Use(adminOnly)
			h.User.RegisterRoutes(userRoutes)
		})

		api.Route("/settings", func(settingsRoutes chi.Router) {
			settingsRoutes.Use(adminOnly)
			h.Settings.RegisterRoutes(settingsRoutes)
		})

		api.Route("/activity", func(activityRoutes chi.Router) {
			activityRoutes.Use(adminOnly)
			h.Activity.RegisterRoutes(activityRoutes)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

// splitOrigins parses the comma-separated EXTRA_ORIGINS value.
func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
