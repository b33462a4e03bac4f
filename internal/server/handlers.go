package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tilelay/pkg/errors"
	"github.com/matzehuels/tilelay/pkg/observability"
	"github.com/matzehuels/tilelay/pkg/pattern"
	"github.com/matzehuels/tilelay/pkg/pipeline"
)

// PatternInfo summarises one catalog entry.
type PatternInfo struct {
	Name        string               `json:"name"`
	Proportions []pattern.Proportion `json:"proportions"`
	Tiles       int                  `json:"tiles"`
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Code      errors.Code      `json:"code"`
	Error     string           `json:"error"`
	RequestID string           `json:"request_id,omitempty"`
	Previous  *pipeline.Result `json:"previous,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.counters.Snapshot())
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	out := make([]PatternInfo, 0, len(s.runner.Catalog.Patterns))
	for _, d := range s.runner.Catalog.Patterns {
		out = append(out, PatternInfo{
			Name:        d.Name,
			Proportions: d.TileProportion,
			Tiles:       len(d.TileVertices),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	res, err := s.runner.Layout(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	data, err := s.runner.Trace(r.Context(), opts, format)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	contentType := "text/vnd.graphviz; charset=utf-8"
	if format == pipeline.FormatSVG {
		contentType = "image/svg+xml"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleWalls(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"walls": s.walls.Names()})
}

func (s *Server) handleGetWall(w http.ResponseWriter, r *http.Request) {
	res, err := s.walls.Get(r.Context(), chi.URLParam(r, "wall"))
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePutWall(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	opts.Wall = chi.URLParam(r, "wall")
	res, err := s.walls.Update(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"), nil)
		return opts, false
	}
	opts.Logger = s.logger
	return opts, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, previous *pipeline.Result) {
	ctx := r.Context()
	observability.HTTP().OnError(ctx, r.Method, r.URL.Path, err)

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(ctx), "path", r.URL.Path, "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{
		Code:      code,
		Error:     errors.UserMessage(err),
		RequestID: RequestID(ctx),
		Previous:  previous,
	})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	if errors.IsNotFound(err) {
		return http.StatusNotFound
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeMissingInput, errors.ErrCodeInvalidGeometry,
		errors.ErrCodeInvalidPlacement, errors.ErrCodeInvalidPath, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidCatalog, errors.ErrCodeInvalidConfig:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
