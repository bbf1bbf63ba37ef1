// Package server builds the HTTP router and runs the listener with
// graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/wordwell/wordwell/internal/config"
	"github.com/wordwell/wordwell/internal/handler"
	"github.com/wordwell/wordwell/internal/openapi"
	"github.com/wordwell/wordwell/internal/server/middleware"
	"github.com/wordwell/wordwell/internal/service"
	"github.com/wordwell/wordwell/internal/store"
)

// Server is the top-level HTTP server. It owns the Chi router, the word
// store, and the authentication service.
type Server struct {
	cfg        *config.Config
	router     chi.Router
	store      *store.Store
	authSvc    *service.AuthService
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a new Server, wires up all routes and middleware, and returns
// it ready to listen. Call ListenAndServe to start accepting connections.
func New(cfg *config.Config, s *store.Store, authSvc *service.AuthService, logger *slog.Logger) *Server {
	srv := &Server{
		cfg:     cfg,
		store:   s,
		authSvc: authSvc,
		logger:  logger,
	}
	srv.setupRouter()
	return srv
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(s.cfg.Server.MaxBodySize))
	r.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(chimw.Compress(5))

	healthHandler := handler.NewHealthHandler(s.store)
	authHandler := handler.NewAuthHandler(s.authSvc)
	wordHandler := handler.NewWordHandler(s.store)
	adminHandler := handler.NewAdminHandler(s.store)

	// --- Health checks (no auth required) ---
	r.Get("/health/alive", healthHandler.Alive)
	r.Get("/health/ready", healthHandler.Ready)

	// --- OpenAPI document (no auth required) ---
	r.Get("/openapi.json", openapi.Handler())

	// --- Login ---
	r.Post("/auth/login", authHandler.Login)

	// --- Admin word management ---
	r.Route("/admin/{lang}/words", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.cfg.Auth.JWTSecret, s.logger))
		r.Use(middleware.RequireAdmin())

		r.Get("/", adminHandler.List)
		r.Post("/", adminHandler.Create)
		r.Get("/{id}", adminHandler.Get)
		r.Put("/{id}", adminHandler.Update)
		r.Delete("/{id}", adminHandler.Delete)
	})

	// --- Public word endpoints, rate limited ---
	// Static routes above take precedence over these wildcard patterns.
	r.Group(func(r chi.Router) {
		if s.cfg.Server.RateLimit > 0 {
			r.Use(middleware.RateLimit(s.cfg.Server.RateLimit, s.cfg.Server.RateLimitWindow))
		}
		r.Get("/{lang}/random", wordHandler.Random)
		r.Get("/{lang}/{type}", wordHandler.RandomByType)
	})

	s.router = r
}

// ListenAndServe starts the HTTP server and blocks until a SIGINT or SIGTERM
// is received. It then performs a graceful shutdown, draining in-flight
// requests before closing the database.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing store", "error", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying Chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
