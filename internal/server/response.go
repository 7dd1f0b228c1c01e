package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/gatesketch/pkg/errors"
	"github.com/matzehuels/gatesketch/pkg/observability"
	"github.com/matzehuels/gatesketch/pkg/pipeline"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Code     errors.Code `json:"code"`
	Message  string      `json:"message"`
	Position *int        `json:"position,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatYAML: "application/yaml",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

func contentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// statusFor maps an error code onto an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeEmptyExpression, errors.ErrCodeUnmatchedParen,
		errors.ErrCodeInsufficientOperands, errors.ErrCodeMalformedExpression,
		errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidVizType, errors.ErrCodeInvalidLayout, errors.ErrCodeLayoutTooDeep:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)

	body := errorBody{Code: code, Message: errors.UserMessage(err)}
	if errors.IsParseError(err) {
		pos := errors.Position(err)
		body.Position = &pos
	}
	if status >= http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	}
	if status == http.StatusInternalServerError {
		body.Message = "internal error"
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
