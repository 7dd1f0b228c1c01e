package gate

import "slices"

// Layout constants shared with renderers.
const (
	// Step is the vertical spread unit applied per column entry.
	Step = 40

	// LevelPadding is added to the maximum y once per internal level.
	LevelPadding = 40

	// ColumnWidth is the horizontal advance per depth level used for the
	// drawn image width.
	ColumnWidth = 100

	// WidthMargin is added to the drawn image width.
	WidthMargin = 30

	// HeightMargin is added to the drawn image height.
	HeightMargin = 20

	// SeedUnit scales 2^depth into the seed origin for extent queries.
	SeedUnit = 50

	// MaxDepth is the deepest tree whose seed origin fits in 32 bits.
	// Extent queries on deeper trees wrap and are meaningless.
	MaxDepth = 26
)

// Metrics is a snapshot of every layout query for one tree.
type Metrics struct {
	Depth         int
	Columns       []int
	LargestColumn int
	Width         uint32
	Height        uint32
	Seed          uint32
	MinY          uint32
	MaxY          uint32
}

// Depth returns 1 for a leaf and 1 + the deepest input otherwise.
func (g *Gate) Depth() int {
	d := 0
	for _, in := range g.inputs {
		d = max(d, in.Depth())
	}
	return d + 1
}

// ColumnSizes counts gates per breadth-first frontier, leaf-most level first.
//
// A level is complete once every node enqueued for it has been dequeued; the
// children enqueued meanwhile form the next frontier. Renderers size their
// vertical spread from these counts, so the traversal order is part of the
// output contract.
func (g *Gate) ColumnSizes() []int {
	queue := []*Gate{g}
	columns := []int{0}

	thisLayer, nextLayer := 1, 0
	for len(queue) > 0 {
		columns[len(columns)-1]++
		thisLayer--

		n := queue[0]
		queue = queue[1:]
		for _, in := range n.inputs {
			queue = append(queue, in)
			nextLayer++
		}

		if thisLayer == 0 {
			thisLayer, nextLayer = nextLayer, 0
			if len(queue) > 0 {
				columns = append(columns, 0)
			}
		}
	}

	slices.Reverse(columns)
	return columns
}

// LargestColumn returns the maximum of ColumnSizes.
func (g *Gate) LargestColumn() int {
	return slices.Max(g.ColumnSizes())
}

// ChildYOffset returns the vertical origin of g when it is the index-th of
// siblings inputs of a parent placed at parentOrigin. A sole input keeps the
// parent's origin. Otherwise the signed index 2*index-1 is scaled by g's
// largest column times Step. The sum is computed signed and converted back
// to the unsigned coordinate space, wrapping on underflow.
func (g *Gate) ChildYOffset(parentOrigin uint32, index, siblings int) uint32 {
	if siblings == 1 {
		return parentOrigin
	}
	signed := int64(2*index - 1)
	offset := signed * int64(g.LargestColumn()) * Step
	return uint32(int64(parentOrigin) + offset)
}

// MinY returns the smallest y origin reached by g or any descendant when g is
// placed via ChildYOffset(prevOrigin, index, siblings).
func (g *Gate) MinY(prevOrigin uint32, index, siblings int) uint32 {
	y := g.ChildYOffset(prevOrigin, index, siblings)
	if g.IsLeaf() {
		return y
	}
	m := y
	for i, in := range g.inputs {
		m = min(m, in.MinY(y, i, len(g.inputs)))
	}
	return m
}

// MaxY returns the largest y origin reached by g or any descendant, plus
// LevelPadding for every internal level on the way back up.
func (g *Gate) MaxY(prevOrigin uint32, index, siblings int) uint32 {
	y := g.ChildYOffset(prevOrigin, index, siblings)
	if g.IsLeaf() {
		return y
	}
	m := y
	for i, in := range g.inputs {
		m = max(m, in.MaxY(y, i, len(g.inputs)))
	}
	return m + LevelPadding
}

// Seed returns the origin used to measure the tree's vertical extent,
// 2^depth * SeedUnit. It keeps intermediate offsets non-negative. Beyond
// MaxDepth the seed does not fit in a uint32 and is truncated, so MinY,
// MaxY and Height are only defined for trees up to MaxDepth.
func (g *Gate) Seed() uint32 {
	return uint32((uint64(1) << uint(g.Depth())) * SeedUnit)
}

// extent returns MaxY and MinY measured from the seed origin. The root is
// placed with zero siblings, matching the drawn image height.
func (g *Gate) extent() (maxY, minY uint32) {
	seed := g.Seed()
	return g.MaxY(seed, 0, 0), g.MinY(seed, 0, 0)
}

// Width returns the drawn image width: ColumnWidth*depth + WidthMargin.
func (g *Gate) Width() uint32 {
	return ColumnWidth*uint32(g.Depth()) + WidthMargin
}

// Height returns the drawn image height: 2*(maxY-minY) + HeightMargin.
// Trees deeper than MaxDepth fall outside the coordinate space.
func (g *Gate) Height() uint32 {
	maxY, minY := g.extent()
	return 2*(maxY-minY) + HeightMargin
}

// AdjustedOrigin returns the vertical origin at which to draw the root.
// It is a passthrough: renderers that want the layout centered on the
// origin apply CenteringDelta themselves.
func (g *Gate) AdjustedOrigin(initial uint32) uint32 {
	return initial
}

// CenteringDelta returns how far the midpoint of the tree's vertical extent
// sits from the seed origin. Subtracting it from an origin centers the tree.
func (g *Gate) CenteringDelta() int {
	maxY, minY := g.extent()
	return int((maxY+minY)/2) - int(g.Seed())
}

// Metrics computes every layout query in one pass over the API.
func (g *Gate) Metrics() Metrics {
	maxY, minY := g.extent()
	cols := g.ColumnSizes()
	return Metrics{
		Depth:         g.Depth(),
		Columns:       cols,
		LargestColumn: slices.Max(cols),
		Width:         g.Width(),
		Height:        2*(maxY-minY) + HeightMargin,
		Seed:          g.Seed(),
		MinY:          minY,
		MaxY:          maxY,
	}
}
