package circuit

import "github.com/matzehuels/gatesketch/pkg/gate"

// Cell dimensions shared by every sprite.
const (
	CellWidth  = 90
	CellHeight = 40
)

// Sprite is the geometry of one gate symbol within its cell. Anchors are
// vertical offsets from the top of the cell; inputs sit on the left edge and
// the output on the right edge.
type Sprite struct {
	Width, Height uint32
	Inputs        []uint32
	Output        uint32
}

var sprites = map[gate.Type]Sprite{
	gate.And:   {Width: CellWidth, Height: CellHeight, Inputs: []uint32{9, 29}, Output: 19},
	gate.Or:    {Width: CellWidth, Height: CellHeight, Inputs: []uint32{9, 29}, Output: 19},
	gate.Not:   {Width: CellWidth, Height: CellHeight, Inputs: []uint32{21}, Output: 21},
	gate.Input: {Width: CellWidth, Height: CellHeight, Output: 21},
}

// SpriteFor returns the sprite geometry of a gate type.
func SpriteFor(t gate.Type) Sprite {
	return sprites[t]
}

// InputAnchor returns the offset of input i when the gate has n inputs.
// Gates with more inputs than the sprite declares spread them evenly
// between the first and last declared anchors.
func (s Sprite) InputAnchor(i, n int) uint32 {
	if len(s.Inputs) == 0 {
		return s.Output
	}
	if n <= len(s.Inputs) || len(s.Inputs) == 1 {
		return s.Inputs[min(i, len(s.Inputs)-1)]
	}
	first, last := s.Inputs[0], s.Inputs[len(s.Inputs)-1]
	return first + (last-first)*uint32(i)/uint32(n-1)
}
