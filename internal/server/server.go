// Package server exposes the diagram pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                  liveness and build info
//	GET  /metrics                  Prometheus metrics
//	GET  /v1/gates                 supported gate kinds and formats
//	POST /v1/diagrams?format=svg   render a gate (JSON body) in one format
//
// Errors are returned as {"code": ..., "message": ...} with 400 for
// malformed requests, 422 for gates the builders reject and 500 otherwise.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/zxdraw/pkg/pipeline"
)

// maxBodyBytes bounds request bodies; a gate description is tiny.
const maxBodyBytes = 64 << 10

// Server serves the diagram API.
type Server struct {
	runner  *pipeline.Runner
	metrics *Metrics
	logger  *log.Logger
	router  chi.Router
}

// New creates a server around runner. A nil metrics disables /metrics.
func New(runner *pipeline.Runner, metrics *Metrics, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, metrics: metrics, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}
	r.Route("/v1", func(r chi.Router) {
		r.Get("/gates", s.handleGates)
		r.Post("/diagrams", s.handleDiagram)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
