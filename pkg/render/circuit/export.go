package circuit

import (
	"fmt"

	"github.com/matzehuels/gatesketch/pkg/diagram"
	"github.com/matzehuels/gatesketch/pkg/gate"
)

// Export converts a placement into the serialization format. Source fields
// (Expression, Normalized, Postfix) and Style are left for the caller.
func Export(p Placement, m gate.Metrics) diagram.Layout {
	l := diagram.Layout{
		VizType:  diagram.VizTypeCircuit,
		Width:    p.Width,
		Height:   p.Height,
		Metrics:  diagram.FromMetrics(m),
		Origin:   p.Origin,
		Centered: p.Centered,
		Nodes:    make([]diagram.Node, len(p.Cells)),
		Wires:    make([]diagram.Wire, len(p.Wires)),
	}
	for i, c := range p.Cells {
		l.Nodes[i] = diagram.Node{
			ID: c.ID, Type: c.Type.String(), Name: c.Name,
			X: c.X, Y: c.Y, Inputs: c.Inputs,
		}
	}
	for i, w := range p.Wires {
		l.Wires[i] = diagram.Wire{
			From: w.From, To: w.To, Input: w.Input,
			X1: w.X1, Y1: w.Y1, X2: w.X2, Y2: w.Y2,
		}
	}
	return l
}

// Parse rebuilds a placement from a serialized circuit layout so it can be
// rendered again without the original expression.
func Parse(l diagram.Layout) (Placement, error) {
	if l.VizType != "" && !l.IsCircuit() {
		return Placement{}, fmt.Errorf("invalid viz_type for circuit layout: %q", l.VizType)
	}
	if len(l.Nodes) == 0 {
		return Placement{}, fmt.Errorf("circuit layout must contain nodes")
	}

	p := Placement{
		Width:    l.Width,
		Height:   l.Height,
		Origin:   l.Origin,
		Centered: l.Centered,
		Cells:    make([]Cell, len(l.Nodes)),
		Wires:    make([]Wire, len(l.Wires)),
	}
	for i, n := range l.Nodes {
		t, err := gate.ParseType(n.Type)
		if err != nil {
			return Placement{}, fmt.Errorf("node %s: %w", n.ID, err)
		}
		p.Cells[i] = Cell{ID: n.ID, Type: t, Name: n.Name, X: n.X, Y: n.Y, Inputs: n.Inputs}
	}
	for i, w := range l.Wires {
		p.Wires[i] = Wire{From: w.From, To: w.To, Input: w.Input, X1: w.X1, Y1: w.Y1, X2: w.X2, Y2: w.Y2}
	}
	return p, nil
}
