package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gatesketch/pkg/diagram"
	"github.com/matzehuels/gatesketch/pkg/gate"
	"github.com/matzehuels/gatesketch/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed labels operator gates with the sub-expression they compute.
	// When false, operator gates show only their type.
	Detailed bool

	// Style selects the color scheme (diagram.StyleSimple or diagram.StyleDark).
	Style string
}

type palette struct {
	background, fill, stroke, font string
}

var palettes = map[string]palette{
	diagram.StyleSimple: {background: "transparent", fill: "white", stroke: "black", font: "black"},
	diagram.StyleDark:   {background: "#1e1e2e", fill: "#313244", stroke: "#cdd6f4", font: "#cdd6f4"},
}

var shapes = map[gate.Type]string{
	gate.And:   "box",
	gate.Or:    "ellipse",
	gate.Not:   "invtriangle",
	gate.Input: "plaintext",
}

// ToDOT converts a gate tree to Graphviz DOT format for node-link visualization.
// Inputs flow left to right into the root; node IDs match the circuit
// placement (pre-order, "g0" is the root).
func ToDOT(g *gate.Gate, opts Options) string {
	pal, ok := palettes[opts.Style]
	if !ok {
		pal = palettes[diagram.StyleSimple]
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", pal.background)
	fmt.Fprintf(&buf, "  node [style=filled, fillcolor=%q, color=%q, fontcolor=%q, fontsize=18, margin=\"0.15,0.08\"];\n",
		pal.fill, pal.stroke, pal.font)
	fmt.Fprintf(&buf, "  edge [color=%q, arrowsize=0.7];\n", pal.stroke)
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	nodes := flatten(g)
	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.id, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, n := range nodes {
		for _, in := range n.inputs {
			fmt.Fprintf(&buf, "  %q -> %q;\n", in, n.id)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

type node struct {
	id     string
	g      *gate.Gate
	inputs []string
}

// flatten lists the gates of g in pre-order with their input IDs.
func flatten(g *gate.Gate) []node {
	var out []node
	var visit func(g *gate.Gate) string
	visit = func(g *gate.Gate) string {
		idx := len(out)
		out = append(out, node{id: diagram.NodeID(idx), g: g})
		for _, in := range g.Inputs() {
			id := visit(in)
			out[idx].inputs = append(out[idx].inputs, id)
		}
		return out[idx].id
	}
	visit(g)
	return out
}

func fmtLabel(g *gate.Gate, detailed bool) string {
	if g.Type() == gate.Input {
		return g.Name()
	}
	if !detailed {
		return g.Type().String()
	}
	return g.Type().String() + "\n" + g.Name()
}

func fmtAttrs(n node, detailed bool) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(n.g, detailed)),
		"shape=" + shapes[n.g.Type()],
	}
	if n.g.Type() == gate.Input {
		attrs = append(attrs, "fontsize=24")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// Size reads the frame size from an SVG's viewBox, or zero when absent.
func Size(svg []byte) (width, height uint32) {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return 0, 0
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	return uint32(w + 0.5), uint32(h + 0.5)
}

// normalizeViewBox replaces Graphviz's pt-sized svg tag with a unitless one
// anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
