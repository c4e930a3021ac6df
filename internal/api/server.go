// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and the mock
gateway handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary of the server.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/mockapi are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/mockapi"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/config"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/constants"
	"github.com/NguyenDinhVu2003/FileManageSystem/internal/platform/middleware"
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

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// mounts the mock gateway under /api.
func NewServer(ctx context.Context, cfg *config.ServerConfig, log *slog.Logger, verifier middleware.TokenVerifier, gatewayHandler *mockapi.Handler) *Server {
	router := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(log))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	router.Use(middleware.PanicRecovery(log))
	router.Use(middleware.Authenticate(verifier))
	router.Use(middleware.CORS(cfg))
	router.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	liveness, readiness := NewHealthHandlers()
	router.Get("/health", liveness)
	router.Get("/ready", readiness)

	// # Application API
	router.Route("/api", gatewayHandler.RegisterRoutes)

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler returns the assembled router, letting tests drive the full
// middleware chain through httptest without opening a socket.
func (s *Server) Handler() http.Handler {
	return s.router
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
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
