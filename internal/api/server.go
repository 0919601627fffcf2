// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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

	"github.com/taibuivan/tsundoku/internal/catalog/book"
	"github.com/taibuivan/tsundoku/internal/catalog/progress"
	"github.com/taibuivan/tsundoku/internal/catalog/review"
	"github.com/taibuivan/tsundoku/internal/catalog/shelf"
	"github.com/taibuivan/tsundoku/internal/media"
	"github.com/taibuivan/tsundoku/internal/platform/config"
	"github.com/taibuivan/tsundoku/internal/platform/constants"
	"github.com/taibuivan/tsundoku/internal/platform/middleware"
	"github.com/taibuivan/tsundoku/internal/search"
	"github.com/taibuivan/tsundoku/internal/social/activity"
	"github.com/taibuivan/tsundoku/internal/social/follow"
	"github.com/taibuivan/tsundoku/internal/users/auth"
	"github.com/taibuivan/tsundoku/internal/users/settings"
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

	// Auth handles authentication routes (login, register, password flows).
	Auth *auth.Handler

	// Settings handles per-account sharing defaults.
	Settings *settings.Handler

	// Users handles user search and the follow graph.
	Users *follow.Handler

	// Shelves handles shelf CRUD.
	Shelves *shelf.Handler

	// Books handles the book catalog.
	Books *book.Handler

	// Reading handles reading progress records.
	Reading *progress.Handler

	// Reviews handles reviews and their comment threads.
	Reviews *review.Handler

	// Activity handles the followed-users activity feed.
	Activity *activity.Handler

	// Search handles combined local and Open Library book search.
	Search *search.Handler

	// Upload handles cover image uploads.
	Upload *media.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
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

	// # Static Media
	// Uploaded images are served straight off the local store.
	fileServer := http.StripPrefix(cfg.UploadBaseURL+"/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.Handle(cfg.UploadBaseURL+"/*", fileServer)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/settings", h.Settings.Routes())
		api.Mount("/users", h.Users.Routes())
		api.Mount("/shelves", h.Shelves.Routes())

		books := h.Books.Routes()
		books.Mount("/search", h.Search.Routes())
		api.Mount("/books", books)

		api.Mount("/reading", h.Reading.Routes())
		api.Mount("/reviews", h.Reviews.Routes())
		api.Mount("/activity", h.Activity.Routes())
		api.Mount("/upload", h.Upload.Routes())
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
