// Package server exposes hierarchy comparison over HTTP.
//
// Routes:
//
//	GET  /healthz      liveness and build information
//	POST /v1/compare   compare two trees
//	POST /v1/show      list the modules and statistics of one tree
//
// Trees travel as the JSON document of [hpio.Document]. Errors are returned
// as {"error": {"code": ..., "message": ...}, "request_id": ...} with a
// status derived from the error code.
//
// [hpio.Document]: github.com/matzehuels/hierpart/pkg/io
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/hierpart/pkg/pipeline"
)

// DefaultMaxBodyBytes caps request bodies when Options.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 8 << 20

const shutdownTimeout = 10 * time.Second

// Options configures a [Server].
type Options struct {
	Addr         string
	MaxBodyBytes int64
	ReadTimeout  time.Duration
	// Mean is used when a request does not name one.
	Mean   string
	Logger *log.Logger
}

// Server serves the comparison API backed by a [pipeline.Runner].
type Server struct {
	runner *pipeline.Runner
	opts   Options
	logger *log.Logger
	router chi.Router
}

// New creates a server. Zero options take their defaults.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Mean == "" {
		opts.Mean = pipeline.DefaultMean
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{runner: runner, opts: opts, logger: opts.Logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/compare", s.handleCompare)
		r.Post("/show", s.handleShow)
	})
	return r
}

// Handler returns the root handler, for embedding or tests.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on opts.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.opts.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
