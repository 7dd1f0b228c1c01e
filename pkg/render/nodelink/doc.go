// Package nodelink renders gate trees as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// every gate is a node and every wire is an arrow from an input to the gate
// consuming it. It's an alternative to the circuit visualization when gate
// symbols matter less than the tree's shape.
//
// # Usage
//
// Convert a gate tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The generated DOT uses left-to-right layout (rankdir=LR) so the root ends
// up on the right, as in the circuit diagram. Shapes follow the gate type:
// AND is a box, OR an ellipse, NOT an inverted triangle and INPUT plain text.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
