// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the "composition root": the one place where the repository, the
// five services, and the handlers are created and wired together. Each layer
// only receives what it needs — services get repository interfaces, handlers
// get services, and nothing below this package knows the HTTP routes.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/goober-garden/internal/config"
	"github.com/sakif/goober-garden/internal/handler"
	"github.com/sakif/goober-garden/internal/metrics"
	"github.com/sakif/goober-garden/internal/middleware"
	sqliteRepo "github.com/sakif/goober-garden/internal/repository/sqlite"
	"github.com/sakif/goober-garden/internal/service"
)

// Server owns the router, the configuration, and the database connection.
// The connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the whole dependency chain:
//
//	sqlite.DB → services (fingerprint, event, history, goober, session)
//	          → handlers → routes
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures middleware, builds the services, and mounts the
// API under /v1.
//
// ROUTES:
//
//	GET  /healthz                     → liveness probe
//	GET  /metrics                     → Prometheus exposition
//	GET  /v1/goobers                  → list goobers
//	POST /v1/goobers                  → register a goober
//	GET  /v1/goobers/{fingerprint}    → full profile (6-day touch)
//	GET  /v1/session                  → resolve active session (30s touch)
//	POST /v1/checkin                  → record a check-in
//	POST /v1/events                   → define a catalog event
//	GET  /v1/fingerprints/fresh       → allocate an unused token
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics())

	// Services. The shared sqlite.DB implements all five repository
	// interfaces; each service only sees its own slice of it.
	fingerprints := service.NewFingerprintService(s.db, s.logger)
	events := service.NewEventService(s.db, s.logger)
	history := service.NewHistoryService(s.db, events, s.logger)
	goobers := service.NewGooberService(s.db, fingerprints, history, s.logger, s.config.ReengageCooldown)
	sessions := service.NewSessionService(s.db, fingerprints, goobers, history, s.logger,
		s.config.SessionWindow, s.config.AdventureCooldown)

	gooberHandler := handler.NewGooberHandler(goobers, s.logger)
	sessionHandler := handler.NewSessionHandler(sessions, s.logger, s.config.BaseURL)
	eventHandler := handler.NewEventHandler(events, s.logger)
	fingerprintHandler := handler.NewFingerprintHandler(fingerprints, s.logger)

	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Handle("/metrics", metrics.Handler())

	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/goobers", gooberHandler.HandleList)
		r.Post("/goobers", gooberHandler.HandleCreate)
		r.Get("/goobers/{fingerprint}", gooberHandler.HandleProfile)
		r.Get("/session", sessionHandler.HandleCurrent)
		r.Post("/checkin", sessionHandler.HandleCheckIn)
		r.Post("/events", eventHandler.HandleCreate)
		r.Get("/fingerprints/fresh", fingerprintHandler.HandleAllocateFresh)
	})
}

// Router exposes the configured router, mainly for tests that want to drive
// the full stack through httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("addr", s.config.Addr),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
