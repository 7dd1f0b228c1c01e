// Package server exposes the gatesketch pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz            liveness and build version
//	GET  /v1/render          render ?expr=…&format=svg&type=circuit
//	POST /v1/render          render a JSON request body
//	GET  /v1/layout          layout JSON for ?expr=…
//	GET  /v1/renders/{id}    stored render record
//
// Every successful render is saved to the configured [store.Store] and its
// ID returned in the X-Render-ID header. Failures are answered with a JSON
// body {code, message, position}; position is present for parse errors
// only.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/valyala/fastjson"

	"github.com/matzehuels/gatesketch/pkg/buildinfo"
	"github.com/matzehuels/gatesketch/pkg/pipeline"
	"github.com/matzehuels/gatesketch/pkg/store"
)

const (
	// HeaderRenderID carries the stored record ID of a render response.
	HeaderRenderID = "X-Render-ID"

	// MaxBodyBytes bounds POST /v1/render request bodies.
	MaxBodyBytes = 64 << 10

	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	defaults pipeline.Options
	parser   fastjson.ParserPool
}

// New creates a server. defaults seeds every request's options before
// request parameters are applied; its Expression and Formats are ignored.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, defaults pipeline.Options) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	defaults.Expression = ""
	defaults.Formats = nil
	return &Server{runner: runner, store: st, logger: logger, defaults: defaults}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/render", s.handleRenderQuery)
		r.Post("/render", s.handleRenderBody)
		r.Get("/layout", s.handleLayout)
		r.Get("/renders", s.handleListRenders)
		r.Get("/renders/{id}", s.handleGetRender)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "version", buildinfo.Short())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
	})
}
