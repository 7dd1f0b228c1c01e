package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/gatesketch/pkg/diagram"
	"github.com/matzehuels/gatesketch/pkg/errors"
	"github.com/matzehuels/gatesketch/pkg/expr"
	"github.com/matzehuels/gatesketch/pkg/gate"
	"github.com/matzehuels/gatesketch/pkg/render"
	"github.com/matzehuels/gatesketch/pkg/render/circuit"
	"github.com/matzehuels/gatesketch/pkg/render/nodelink"
)

// RenderFromLayout renders output from a diagram.Layout. Options left unset
// take the layout's own style and visualization type.
//
// tree may be nil: the DOT format then re-parses the layout's normalized
// expression, which yields the same tree regardless of compiler options.
func RenderFromLayout(ctx context.Context, l diagram.Layout, tree *gate.Gate, opts Options) (map[string][]byte, error) {
	opts = applyLayoutMetadata(opts, l)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	opts.Logger.Debug("rendering layout", "type", l.VizType, "formats", opts.Formats)
	if l.IsNodelink() {
		return renderNodelink(ctx, l, opts)
	}
	return renderCircuit(ctx, l, tree, opts)
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(ctx context.Context, data []byte, opts Options) (map[string][]byte, error) {
	l, err := diagram.UnmarshalLayout(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "parse layout")
	}
	return RenderFromLayout(ctx, l, nil, opts)
}

// renderCircuit generates circuit outputs.
func renderCircuit(ctx context.Context, l diagram.Layout, tree *gate.Gate, opts Options) (map[string][]byte, error) {
	p, err := circuit.Parse(l)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "convert layout")
	}
	style, ok := circuit.StyleByName(opts.Style)
	if !ok {
		return nil, ValidateStyle(opts.Style)
	}

	svgOpts := []circuit.SVGOption{circuit.WithStyle(style), circuit.WithTitle(l.Expression)}
	if opts.Labels {
		svgOpts = append(svgOpts, circuit.WithLabels())
	}
	var svg []byte
	getSVG := func() []byte {
		if svg == nil {
			svg = circuit.RenderSVG(p, svgOpts...)
		}
		return svg
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = getSVG()
		case FormatPNG:
			if opts.PNGEngine == PNGEngineRsvg {
				data, err = render.ToPNG(ctx, getSVG(), opts.Scale)
				break
			}
			pngOpts := []circuit.PNGOption{circuit.WithPNGStyle(style), circuit.WithPNGScale(opts.Scale)}
			if opts.Labels {
				pngOpts = append(pngOpts, circuit.WithPNGLabels())
			}
			data, err = circuit.RenderPNG(p, pngOpts...)
		case FormatPDF:
			data, err = render.ToPDF(ctx, getSVG())
		case FormatJSON:
			data, err = diagram.MarshalLayout(l)
		case FormatYAML:
			data, err = diagram.MarshalLayoutYAML(l)
		case FormatDOT:
			data, err = circuitDOT(l, tree, opts)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// circuitDOT emits the Graphviz source for a circuit layout's tree.
func circuitDOT(l diagram.Layout, tree *gate.Gate, opts Options) ([]byte, error) {
	if tree == nil {
		src := l.Normalized
		if src == "" {
			src = l.Expression
		}
		if src == "" {
			return nil, errors.New(errors.ErrCodeUnsupported, "layout has no expression to build DOT from")
		}
		var err error
		if tree, err = expr.Parse(src); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "re-parse layout expression")
		}
	}
	return []byte(nodelink.ToDOT(tree, nodelinkOptions(opts))), nil
}

// renderNodelink generates nodelink outputs. PNG always goes through
// rsvg-convert since the native rasterizer only draws circuits.
func renderNodelink(ctx context.Context, l diagram.Layout, opts Options) (map[string][]byte, error) {
	dot, err := nodelink.Parse(l)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "convert layout")
	}

	var svg []byte
	getSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = nodelink.RenderSVG(ctx, dot)
		return svg, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = getSVG()
		case FormatPNG:
			if opts.PNGEngine == PNGEngineNative {
				opts.Logger.Debug("native PNG engine draws circuits only, using rsvg-convert")
			}
			if data, err = getSVG(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		case FormatPDF:
			if data, err = getSVG(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatJSON:
			data, err = diagram.MarshalLayout(l)
		case FormatYAML:
			data, err = diagram.MarshalLayoutYAML(l)
		case FormatDOT:
			data = []byte(dot)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// applyLayoutMetadata applies layout metadata to options if not already set.
// This ensures that serialized layouts preserve their original rendering settings.
func applyLayoutMetadata(opts Options, l diagram.Layout) Options {
	if opts.Style == "" && l.Style != "" {
		opts.Style = l.Style
	}
	if opts.VizType == "" {
		opts.VizType = l.VizType
	}
	return opts
}
