// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                  liveness probe
//	GET  /metrics                  hook counters, when configured
//	GET  /v1/patterns              catalog summary
//	POST /v1/layout                compute a layout from pipeline.Options
//	POST /v1/layout/trace          lattice walk as DOT or SVG (?format=)
//	GET  /v1/walls                 walls with a stored layout
//	GET  /v1/walls/{wall}/layout   last good layout of a wall
//	PUT  /v1/walls/{wall}/layout   recompute a wall, keeping the old layout on failure
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// with the error code and a user-facing message.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tilelay/pkg/observability"
	"github.com/matzehuels/tilelay/pkg/pipeline"
)

// maxBodyBytes bounds request bodies. Surfaces with many holes stay far
// below it.
const maxBodyBytes = 1 << 20

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	walls    *pipeline.Walls
	logger   *log.Logger
	counters *observability.Counters
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. The default discards everything.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithWalls shares a wall store with other callers.
func WithWalls(w *pipeline.Walls) Option { return func(s *Server) { s.walls = w } }

// WithCounters serves c on /metrics. The caller registers c as hooks.
func WithCounters(c *observability.Counters) Option { return func(s *Server) { s.counters = c } }

// New creates a server over runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{runner: runner}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if s.walls == nil {
		s.walls = pipeline.NewWalls(runner)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.counters != nil {
		r.Get("/metrics", s.handleMetrics)
	}
	r.Route("/v1", func(r chi.Router) {
		r.Get("/patterns", s.handlePatterns)
		r.Post("/layout", s.handleLayout)
		r.Post("/layout/trace", s.handleTrace)
		r.Get("/walls", s.handleWalls)
		r.Get("/walls/{wall}/layout", s.handleGetWall)
		r.Put("/walls/{wall}/layout", s.handlePutWall)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
