// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Tsundoku HTTP API server.
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

	"github.com/taibuivan/tsundoku/internal/api"
	"github.com/taibuivan/tsundoku/internal/catalog/book"
	"github.com/taibuivan/tsundoku/internal/catalog/progress"
	"github.com/taibuivan/tsundoku/internal/catalog/review"
	"github.com/taibuivan/tsundoku/internal/catalog/shelf"
	"github.com/taibuivan/tsundoku/internal/media"
	"github.com/taibuivan/tsundoku/internal/platform/config"
	"github.com/taibuivan/tsundoku/internal/platform/constants"
	"github.com/taibuivan/tsundoku/internal/platform/migration"
	pgstore "github.com/taibuivan/tsundoku/internal/platform/postgres"
	redisstore "github.com/taibuivan/tsundoku/internal/platform/redis"
	"github.com/taibuivan/tsundoku/internal/platform/sec"
	"github.com/taibuivan/tsundoku/internal/search"
	"github.com/taibuivan/tsundoku/internal/search/openlibrary"
	"github.com/taibuivan/tsundoku/internal/social/activity"
	"github.com/taibuivan/tsundoku/internal/social/follow"
	"github.com/taibuivan/tsundoku/internal/users/auth"
	"github.com/taibuivan/tsundoku/internal/users/settings"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "tsundoku"))
	slog.SetDefault(log)

	log.Info("[Tsundoku] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "tsundoku"))
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

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

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
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, resetTokenRepository, jwtSvc)

	settingsRepository := settings.NewPostgresRepository(pool)
	settingsService := settings.NewService(settingsRepository)

	followRepository := follow.NewPostgresRepository(pool)
	followService := follow.NewService(followRepository, userRepository)

	activityRepository := activity.NewPostgresRepository(pool)
	activityService := activity.NewService(activityRepository, followRepository, log)

	shelfRepository := shelf.NewPostgresRepository(pool)
	shelfService := shelf.NewService(shelfRepository)

	bookRepository := book.NewPostgresRepository(pool)
	reviewRepository := review.NewPostgresRepository(pool)
	progressRepository := progress.NewPostgresRepository(pool)

	bookService := book.NewService(bookRepository, shelfRepository, reviewRepository, progressRepository, followService)
	progressService := progress.NewService(progressRepository, book.NewProgressBooks(bookRepository), followService, settingsService, activityService)
	reviewService := review.NewService(reviewRepository, reviewRepository, book.NewReviewBooks(bookRepository), followService, settingsService, activityService)

	openLibraryClient := openlibrary.NewClient(cfg.OpenLibraryBaseURL, cfg.OpenLibraryTimeout, rdb, log)
	searchService := search.NewService(bookService, openLibraryClient, log)

	blobStore, err := media.NewDiskStore(cfg.UploadDir, cfg.UploadBaseURL)
	must(log, err, "initialize upload store")
	mediaRepository := media.NewPostgresRepository(pool)
	mediaService := media.NewService(mediaRepository, blobStore, bookRepository, shelfRepository)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Settings:  settings.NewHandler(settingsService),
		Users:     follow.NewHandler(followService),
		Shelves:   shelf.NewHandler(shelfService),
		Books:     book.NewHandler(bookService),
		Reading:   progress.NewHandler(progressService),
		Reviews:   review.NewHandler(reviewService),
		Activity:  activity.NewHandler(activityService),
		Search:    search.NewHandler(searchService),
		Upload:    media.NewHandler(mediaService),
	}

	server := api.NewServer(startupCtx, cfg, log, jwtSvc, handlers)

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
