package nodelink

import (
	"fmt"

	"github.com/matzehuels/gatesketch/pkg/diagram"
	"github.com/matzehuels/gatesketch/pkg/gate"
)

// Export packages a DOT string and its gate tree into the serialization format.
//
// Unlike circuit layouts, nodelink layouts don't carry positions: Graphviz
// computes them during rendering. Nodes list the gates without coordinates
// and width/height are whatever the caller measured (see [Size]).
func Export(dot string, g *gate.Gate, width, height uint32, style string) diagram.Layout {
	l := diagram.Layout{
		VizType: diagram.VizTypeNodelink,
		DOT:     dot,
		Engine:  "dot",
		Width:   width,
		Height:  height,
		Style:   style,
	}
	if g != nil {
		l.Metrics = diagram.FromMetrics(g.Metrics())
		for _, n := range flatten(g) {
			l.Nodes = append(l.Nodes, diagram.Node{
				ID:     n.id,
				Type:   n.g.Type().String(),
				Name:   n.g.Name(),
				Inputs: n.inputs,
			})
		}
	}
	return l
}

// Parse extracts the DOT string from a serialized nodelink layout.
//
// Returns an error if the layout is not a nodelink type or is missing the DOT string.
func Parse(layout diagram.Layout) (string, error) {
	if layout.VizType != "" && !layout.IsNodelink() {
		return "", fmt.Errorf("invalid viz_type for nodelink layout: %q", layout.VizType)
	}
	if layout.DOT == "" {
		return "", fmt.Errorf("nodelink layout must contain DOT string")
	}
	return layout.DOT, nil
}
