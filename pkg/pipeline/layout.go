package pipeline

import (
	"github.com/matzehuels/gatesketch/pkg/diagram"
	"github.com/matzehuels/gatesketch/pkg/expr"
	"github.com/matzehuels/gatesketch/pkg/render/circuit"
	"github.com/matzehuels/gatesketch/pkg/render/nodelink"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout generates a complete layout for any visualization type.
// This is the unified entry point for generating serializable layout data.
//
// Both circuit and nodelink layouts include:
//   - The expression with its normalized and postfix forms
//   - Layout metrics of the tree (depth, column sizes, extent)
//   - Visualization-specific data (placed gates and wires for circuit, DOT for nodelink)
//
// Trees deeper than MaxDepth fail with LAYOUT_TOO_DEEP before any layout runs.
func GenerateLayout(c *expr.Compiled, opts Options) (diagram.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return diagram.Layout{}, err
	}
	if err := ValidateDepth(c.Tree.Depth()); err != nil {
		return diagram.Layout{}, err
	}

	var l diagram.Layout
	if opts.IsNodelink() {
		l = generateNodelinkLayout(c, opts)
	} else {
		l = generateCircuitLayout(c, opts)
	}
	l.Expression = c.Input
	l.Normalized = c.NormalizedString()
	l.Postfix = c.PostfixString()
	l.Style = opts.Style
	return l, nil
}

// =============================================================================
// Circuit
// =============================================================================

func generateCircuitLayout(c *expr.Compiled, opts Options) diagram.Layout {
	var placeOpts []circuit.Option
	if opts.Center {
		placeOpts = append(placeOpts, circuit.WithCentering())
	}
	p := circuit.Place(c.Tree, placeOpts...)
	return circuit.Export(p, c.Tree.Metrics())
}

// =============================================================================
// Nodelink
// =============================================================================

// generateNodelinkLayout packages the DOT source. Graphviz computes the
// frame size at render time, so Width and Height stay zero.
func generateNodelinkLayout(c *expr.Compiled, opts Options) diagram.Layout {
	dot := nodelink.ToDOT(c.Tree, nodelinkOptions(opts))
	return nodelink.Export(dot, c.Tree, 0, 0, opts.Style)
}

func nodelinkOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: opts.Detailed, Style: opts.Style}
}
