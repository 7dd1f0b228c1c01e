package server

import (
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/valyala/fastjson"

	"github.com/matzehuels/gatesketch/pkg/errors"
	"github.com/matzehuels/gatesketch/pkg/pipeline"
)

// renderRequest is a decoded render or layout request.
type renderRequest struct {
	opts   pipeline.Options
	format string
}

// fromQuery reads request options from URL parameters:
// expr, format, type, style, center, labels, group, detailed, scale.
func (s *Server) fromQuery(q url.Values) (renderRequest, error) {
	req := renderRequest{opts: s.defaults, format: pipeline.FormatSVG}
	req.opts.Expression = q.Get("expr")
	if v := q.Get("format"); v != "" {
		req.format = v
	}
	if v := q.Get("type"); v != "" {
		req.opts.VizType = v
	}
	if v := q.Get("style"); v != "" {
		req.opts.Style = v
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"center", &req.opts.Center},
		{"labels", &req.opts.Labels},
		{"group", &req.opts.GroupProducts},
		{"detailed", &req.opts.Detailed},
	}
	for _, b := range bools {
		v := q.Get(b.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return req, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", b.key, v)
		}
		*b.dst = parsed
	}

	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return req, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number, got %q", v)
		}
		req.opts.Scale = f
	}
	return req, nil
}

// fromBody reads request options from a JSON object:
//
//	{"expression": "a+b", "format": "png", "type": "circuit", "style": "dark",
//	 "center": true, "labels": false, "group_products": false, "scale": 2}
func (s *Server) fromBody(r *http.Request) (renderRequest, error) {
	req := renderRequest{opts: s.defaults, format: pipeline.FormatSVG}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(body) > MaxBodyBytes {
		return req, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", MaxBodyBytes)
	}

	p := s.parser.Get()
	defer s.parser.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON")
	}
	if v.Type() != fastjson.TypeObject {
		return req, errors.New(errors.ErrCodeInvalidInput, "request body must be a JSON object")
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"expression", &req.opts.Expression},
		{"format", &req.format},
		{"type", &req.opts.VizType},
		{"style", &req.opts.Style},
	}
	for _, f := range strs {
		field := v.Get(f.key)
		if field == nil {
			continue
		}
		b, err := field.StringBytes()
		if err != nil {
			return req, errors.New(errors.ErrCodeInvalidInput, "%s must be a string", f.key)
		}
		if len(b) > 0 || f.key == "expression" {
			*f.dst = string(b)
		}
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"center", &req.opts.Center},
		{"labels", &req.opts.Labels},
		{"group_products", &req.opts.GroupProducts},
		{"detailed", &req.opts.Detailed},
	}
	for _, f := range bools {
		field := v.Get(f.key)
		if field == nil {
			continue
		}
		b, err := field.Bool()
		if err != nil {
			return req, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean", f.key)
		}
		*f.dst = b
	}

	if field := v.Get("scale"); field != nil {
		f, err := field.Float64()
		if err != nil || f <= 0 {
			return req, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number")
		}
		req.opts.Scale = f
	}
	return req, nil
}
