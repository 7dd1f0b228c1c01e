package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gatesketch/pkg/errors"
	"github.com/matzehuels/gatesketch/pkg/pipeline"
	"github.com/matzehuels/gatesketch/pkg/store"
)

func (s *Server) handleRenderQuery(w http.ResponseWriter, r *http.Request) {
	req, err := s.fromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, req)
}

func (s *Server) handleRenderBody(w http.ResponseWriter, r *http.Request) {
	req, err := s.fromBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, req)
}

// render runs the pipeline for one format, records the run, and writes the
// artifact.
func (s *Server) render(w http.ResponseWriter, r *http.Request, req renderRequest) {
	if err := pipeline.ValidateFormat(req.format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := req.opts
	opts.Formats = []string{req.format}
	opts.Logger = s.logger

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.store.Save(r.Context(), store.NewRecord(res)); err != nil {
		s.logger.Warn("store render failed", "id", res.ID, "err", err)
	}

	w.Header().Set(HeaderRenderID, res.ID)
	w.Header().Set("Content-Type", contentType(req.format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[req.format])
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := s.fromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := req.opts
	opts.Logger = s.logger

	compiled, err := pipeline.Parse(opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	layout, err := s.runner.GenerateLayout(r.Context(), compiled, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handleGetRender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateRecordID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListRenders(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer, got %q", v))
			return
		}
		limit = n
	}
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}
