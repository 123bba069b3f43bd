// Package server exposes the storefront engine over a local HTTP API.
//
// The API is JSON over chi: price quoting, size validation, basket CRUD,
// and checkout. It serves the same engine the CLI drives, so a browser
// frontend and the terminal see identical prices and basket state.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/artprint-il/artprint/pkg/basket"
	"github.com/artprint-il/artprint/pkg/config"
	"github.com/artprint-il/artprint/pkg/pricing"
)

// shutdownTimeout bounds graceful shutdown on context cancellation.
const shutdownTimeout = 5 * time.Second

// Server holds the HTTP API state.
type Server struct {
	cfg    config.Config
	calc   *pricing.Calculator
	basket *basket.Store
	logger *log.Logger
}

// New creates a server around an already-loaded basket store.
func New(cfg config.Config, bs *basket.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:    cfg,
		calc:   pricing.New(cfg.Pricing.Tiers),
		basket: bs,
		logger: logger,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/price", s.handlePrice)
		r.Get("/price/size", s.handleSizeForPrice)
		r.Get("/size/validate", s.handleValidateSize)
		r.Get("/colors", s.handleColors)

		r.Route("/basket", func(r chi.Router) {
			r.Get("/", s.handleGetBasket)
			r.Delete("/", s.handleClearBasket)
			r.Post("/items", s.handleAddItem)
			r.Patch("/items/{id}", s.handleUpdateItem)
			r.Delete("/items/{id}", s.handleRemoveItem)
		})

		r.Post("/checkout", s.handleCheckout)
	})

	return r
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// logRequests logs each request with method, path, status, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}
