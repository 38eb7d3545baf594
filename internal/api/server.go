// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

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
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/enniomrk/wendessen-api/internal/admin"
	"github.com/enniomrk/wendessen-api/internal/auth"
	"github.com/enniomrk/wendessen-api/internal/event"
	"github.com/enniomrk/wendessen-api/internal/gallery"
	"github.com/enniomrk/wendessen-api/internal/news"
	"github.com/enniomrk/wendessen-api/internal/platform/config"
	"github.com/enniomrk/wendessen-api/internal/platform/constants"
	"github.com/enniomrk/wendessen-api/internal/platform/middleware"
	"github.com/enniomrk/wendessen-api/internal/portrait"
	"github.com/enniomrk/wendessen-api/internal/verein"
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

	// Auth handles login and password changes.
	Auth *auth.Handler

	// Gallery handles the shared photo gallery and its reports.
	Gallery *gallery.Handler

	// Portrait handles the "Gesichter des Dorfes" series.
	Portrait *portrait.Handler

	// News handles village news articles.
	News *news.Handler

	// Event handles the village calendar.
	Event *event.Handler

	// Verein handles the club directory.
	Verein *verein.Handler

	// Admin handles administrator accounts, roles, and permissions.
	Admin *admin.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// The authorizer gates every route below /api/v1/admin with a per-request
// permission check against the live user record.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, authorizer middleware.Authorizer, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		// Public village site.
		api.Mount("/gallery", h.Gallery.Routes())
		api.Mount("/portraits", h.Portrait.Routes())
		api.Mount("/news", h.News.Routes())
		api.Mount("/events", h.Event.Routes())
		api.Mount("/vereine", h.Verein.Routes())

		// Administration area. Routes are additionally gated per permission
		// inside each handler's AdminRoutes.
		api.Route("/admin", func(adminAPI chi.Router) {
			adminAPI.Use(middleware.RequireAuth)

			adminAPI.Mount("/gallery", h.Gallery.AdminRoutes(authorizer))
			adminAPI.Mount("/portraits", h.Portrait.AdminRoutes(authorizer))
			adminAPI.Mount("/news", h.News.AdminRoutes(authorizer))
			adminAPI.Mount("/events", h.Event.AdminRoutes(authorizer))
			adminAPI.Mount("/vereine", h.Verein.AdminRoutes(authorizer))
			adminAPI.Mount("/", h.Admin.Routes(authorizer))
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
