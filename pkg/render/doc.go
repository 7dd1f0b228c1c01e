// Package render provides visualization rendering for gate trees.
//
// # Overview
//
// This package contains the rendering pipeline that transforms gate trees
// into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Circuit diagrams (in [circuit] subpackage)
//   - Node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Circuit diagrams can also
// be rasterized natively with [circuit.RenderPNG]; PDF always goes through
// rsvg-convert.
//
//	svg := circuit.RenderSVG(p)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Circuit Diagrams
//
// The [circuit] subpackage draws the classic gate-symbol diagram: the root
// on the right, inputs to the left, each level one 90-unit column apart and
// spread vertically with the tree's layout queries.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the same tree as a Graphviz digraph.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [circuit]: github.com/matzehuels/gatesketch/pkg/render/circuit
// [circuit.RenderPNG]: github.com/matzehuels/gatesketch/pkg/render/circuit#RenderPNG
// [nodelink]: github.com/matzehuels/gatesketch/pkg/render/nodelink
package render
