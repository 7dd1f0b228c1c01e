package circuit

import (
	"github.com/matzehuels/gatesketch/pkg/diagram"
	"github.com/matzehuels/gatesketch/pkg/gate"
)

// Cell is a placed gate. X and Y are the top-left corner of its sprite cell.
type Cell struct {
	ID     string
	Type   gate.Type
	Name   string
	X, Y   uint32
	Inputs []string
}

// Wire runs from a child's output anchor (X1, Y1) to its parent's input
// anchor (X2, Y2): vertically along X1, then horizontally along Y2.
type Wire struct {
	From, To       string
	Input          int
	X1, Y1, X2, Y2 uint32
}

// Placement is a circuit diagram with every gate and wire positioned.
type Placement struct {
	Width, Height uint32
	Origin        uint32
	Centered      bool
	Cells         []Cell
	Wires         []Wire
}

// Option configures placement.
type Option func(*options)

type options struct {
	center bool
}

// WithCentering shifts the root so the vertical extent of the tree is
// centered in the image instead of hanging from its midpoint.
func WithCentering() Option {
	return func(o *options) { o.center = true }
}

// Place positions every gate of g. The image is g.Width() by g.Height().
// The root sits at g.AdjustedOrigin(height/2) in the rightmost column; each
// level of inputs moves one cell to the left and is spread vertically with
// ChildYOffset. Cells are listed in pre-order, so Cells[0] is the root.
func Place(g *gate.Gate, opts ...Option) Placement {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	p := Placement{Width: g.Width(), Height: g.Height()}
	origin := g.AdjustedOrigin(p.Height / 2)
	if o.center {
		origin = uint32(int64(origin) - int64(g.CenteringDelta()))
		p.Centered = true
	}
	p.Origin = origin

	pl := placer{p: &p}
	pl.place(g, origin, g.Depth(), nil)
	return p
}

type placer struct {
	p *Placement
}

// target is the parent input a subtree's output connects to.
type target struct {
	id    string
	input int
	x, y  uint32
}

func (pl *placer) place(g *gate.Gate, y uint32, depth int, to *target) string {
	idx := len(pl.p.Cells)
	id := diagram.NodeID(idx)
	x := uint32(CellWidth * (depth - 1))
	s := SpriteFor(g.Type())

	pl.p.Cells = append(pl.p.Cells, Cell{ID: id, Type: g.Type(), Name: g.Name(), X: x, Y: y})

	if to != nil {
		pl.p.Wires = append(pl.p.Wires, Wire{
			From: id, To: to.id, Input: to.input,
			X1: x + CellWidth, Y1: y + s.Output,
			X2: to.x, Y2: to.y,
		})
	}

	n := g.NumInputs()
	for i := range n {
		in := g.Input(i)
		childID := pl.place(in, in.ChildYOffset(y, i, n), depth-1, &target{
			id: id, input: i, x: x, y: y + s.InputAnchor(i, n),
		})
		pl.p.Cells[idx].Inputs = append(pl.p.Cells[idx].Inputs, childID)
	}
	return id
}
