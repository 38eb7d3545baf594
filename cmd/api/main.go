// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

// Command api is the entry point for the Wendessen portal HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (.env in development).
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

	"github.com/joho/godotenv"

	"github.com/enniomrk/wendessen-api/internal/admin"
	"github.com/enniomrk/wendessen-api/internal/api"
	"github.com/enniomrk/wendessen-api/internal/auth"
	"github.com/enniomrk/wendessen-api/internal/event"
	"github.com/enniomrk/wendessen-api/internal/gallery"
	"github.com/enniomrk/wendessen-api/internal/news"
	"github.com/enniomrk/wendessen-api/internal/platform/cache"
	"github.com/enniomrk/wendessen-api/internal/platform/config"
	"github.com/enniomrk/wendessen-api/internal/platform/constants"
	"github.com/enniomrk/wendessen-api/internal/platform/migration"
	pgstore "github.com/enniomrk/wendessen-api/internal/platform/postgres"
	redisstore "github.com/enniomrk/wendessen-api/internal/platform/redis"
	"github.com/enniomrk/wendessen-api/internal/platform/sec"
	"github.com/enniomrk/wendessen-api/internal/portrait"
	"github.com/enniomrk/wendessen-api/internal/verein"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "wendessen-api"))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A .env file is optional; real environments inject variables directly.
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment")
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "wendessen-api"))
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

	// ── 6. Shared Platform Services ───────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	readCache := cache.New(rdb, log)

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
	adminRepository := admin.NewPostgresRepository(pool)
	adminService := admin.NewService(adminRepository, log)
	adminHandler := admin.NewHandler(adminService)

	authService := auth.NewService(adminRepository, jwtSvc, log)
	authHandler := auth.NewHandler(authService)

	galleryRepository := gallery.NewPostgresRepository(pool)
	galleryService := gallery.NewService(galleryRepository, galleryRepository, readCache, log)
	galleryHandler := gallery.NewHandler(galleryService)

	portraitRepository := portrait.NewPostgresRepository(pool)
	portraitService := portrait.NewService(portraitRepository, readCache, log)
	portraitHandler := portrait.NewHandler(portraitService)

	newsRepository := news.NewPostgresRepository(pool)
	newsService := news.NewService(newsRepository, readCache, log)
	newsHandler := news.NewHandler(newsService)

	eventRepository := event.NewPostgresRepository(pool)
	eventService := event.NewService(eventRepository, readCache, log)
	eventHandler := event.NewHandler(eventService)

	vereinRepository := verein.NewPostgresRepository(pool)
	vereinService := verein.NewService(vereinRepository, readCache, log)
	vereinHandler := verein.NewHandler(vereinService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Gallery:   galleryHandler,
		Portrait:  portraitHandler,
		News:      newsHandler,
		Event:     eventHandler,
		Verein:    vereinHandler,
		Admin:     adminHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, adminService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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
