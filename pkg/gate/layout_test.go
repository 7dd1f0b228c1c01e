package gate

import (
	"slices"
	"sync"
	"testing"
)

// perfect builds a perfect binary AND tree of the given depth.
func perfect(t *testing.T, depth int) *Gate {
	t.Helper()
	if depth == 1 {
		return NewInput("x")
	}
	return mustNew(t, And, perfect(t, depth-1), perfect(t, depth-1))
}

func TestDepth(t *testing.T) {
	a, b, c := NewInput("a"), NewInput("b"), NewInput("c")

	tests := []struct {
		name string
		gate *Gate
		want int
	}{
		{"leaf", a, 1},
		{"and", mustNew(t, And, a, b), 2},
		{"not", mustNew(t, Not, a), 2},
		{"lopsided", mustNew(t, Or, a, mustNew(t, And, b, mustNew(t, Not, c))), 4},
		{"perfect 4", perfect(t, 4), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.gate.Depth(); got != tt.want {
				t.Errorf("Depth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestColumnSizes(t *testing.T) {
	a, b, c := NewInput("a"), NewInput("b"), NewInput("c")

	tests := []struct {
		name string
		gate *Gate
		want []int
	}{
		{"leaf", a, []int{1}},
		{"and", mustNew(t, And, a, b), []int{2, 1}},
		{"not", mustNew(t, Not, a), []int{1, 1}},
		{"or of and", mustNew(t, Or, a, mustNew(t, And, b, c)), []int{2, 2, 1}},
		{"chain", mustNew(t, Not, mustNew(t, Not, mustNew(t, Not, a))), []int{1, 1, 1, 1}},
		{"perfect 3", perfect(t, 3), []int{4, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.gate.ColumnSizes(); !slices.Equal(got, tt.want) {
				t.Errorf("ColumnSizes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColumnSizesPerfectTree(t *testing.T) {
	for d := 1; d <= 6; d++ {
		g := perfect(t, d)
		cols := g.ColumnSizes()

		if len(cols) != d {
			t.Fatalf("depth %d: len(ColumnSizes()) = %d, want %d", d, len(cols), d)
		}
		if cols[len(cols)-1] != 1 {
			t.Errorf("depth %d: last column = %d, want 1", d, cols[len(cols)-1])
		}

		leaves := len(g.Leaves())
		nonRootInternal := g.Count() - leaves - 1
		sum := 0
		for _, n := range cols[:len(cols)-1] {
			sum += n
		}
		if sum != leaves+nonRootInternal {
			t.Errorf("depth %d: sum of non-root columns = %d, want %d", d, sum, leaves+nonRootInternal)
		}
	}
}

func TestLargestColumn(t *testing.T) {
	if got := perfect(t, 4).LargestColumn(); got != 8 {
		t.Errorf("LargestColumn() = %d, want 8", got)
	}
	if got := NewInput("a").LargestColumn(); got != 1 {
		t.Errorf("leaf LargestColumn() = %d, want 1", got)
	}
}

func TestChildYOffset(t *testing.T) {
	a := NewInput("a")
	and := mustNew(t, And, NewInput("b"), NewInput("c"))

	tests := []struct {
		name     string
		gate     *Gate
		origin   uint32
		index    int
		siblings int
		want     uint32
	}{
		{"only child keeps origin", a, 500, 0, 1, 500},
		{"first of two", a, 500, 0, 2, 460},
		{"second of two", a, 500, 1, 2, 540},
		{"third of three", a, 500, 2, 3, 620},
		{"wide subtree spreads further", and, 500, 0, 2, 420},
		{"root placement", and, 200, 0, 0, 120},
		{"underflow wraps", a, 0, 0, 2, 1<<32 - 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.gate.ChildYOffset(tt.origin, tt.index, tt.siblings)
			if got != tt.want {
				t.Errorf("ChildYOffset(%d, %d, %d) = %d, want %d",
					tt.origin, tt.index, tt.siblings, got, tt.want)
			}
		})
	}
}

func TestExtent(t *testing.T) {
	a, b := NewInput("a"), NewInput("b")

	tests := []struct {
		name   string
		gate   *Gate
		seed   uint32
		minY   uint32
		maxY   uint32
		width  uint32
		height uint32
		delta  int
	}{
		// root at 100-40; no padding on leaves
		{"leaf", a, 100, 60, 60, 130, 20, -40},
		// root at 200-80, inputs at 80 and 160, padding 40
		{"and", mustNew(t, And, a, b), 200, 80, 200, 230, 260, -60},
		// sole input shares the root origin
		{"not", mustNew(t, Not, a), 200, 160, 200, 230, 100, -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.gate
			if got := g.Seed(); got != tt.seed {
				t.Errorf("Seed() = %d, want %d", got, tt.seed)
			}
			if got := g.MinY(tt.seed, 0, 0); got != tt.minY {
				t.Errorf("MinY() = %d, want %d", got, tt.minY)
			}
			if got := g.MaxY(tt.seed, 0, 0); got != tt.maxY {
				t.Errorf("MaxY() = %d, want %d", got, tt.maxY)
			}
			if got := g.Width(); got != tt.width {
				t.Errorf("Width() = %d, want %d", got, tt.width)
			}
			if got := g.Height(); got != tt.height {
				t.Errorf("Height() = %d, want %d", got, tt.height)
			}
			if got := g.CenteringDelta(); got != tt.delta {
				t.Errorf("CenteringDelta() = %d, want %d", got, tt.delta)
			}
		})
	}
}

// chain builds a left-deep OR chain of the given depth.
func chain(t *testing.T, depth int) *Gate {
	t.Helper()
	g := NewInput("a")
	for range depth - 1 {
		g = mustNew(t, Or, g, NewInput("b"))
	}
	return g
}

func TestExtentAtMaxDepth(t *testing.T) {
	g := chain(t, MaxDepth)
	if g.Depth() != MaxDepth {
		t.Fatalf("Depth() = %d, want %d", g.Depth(), MaxDepth)
	}
	if got, want := g.Seed(), uint32(SeedUnit<<MaxDepth); got != want {
		t.Errorf("Seed() = %d, want %d", got, want)
	}

	m := g.Metrics()
	if m.MinY >= m.Seed || m.MaxY <= m.Seed {
		t.Errorf("extent [%d, %d] does not straddle seed %d", m.MinY, m.MaxY, m.Seed)
	}
	if m.MaxY-m.MinY > 1<<20 {
		t.Errorf("extent %d wrapped", m.MaxY-m.MinY)
	}
	if m.Height != 2*(m.MaxY-m.MinY)+HeightMargin {
		t.Errorf("Height = %d, want %d", m.Height, 2*(m.MaxY-m.MinY)+HeightMargin)
	}
}

func TestAdjustedOriginIsPassthrough(t *testing.T) {
	g := perfect(t, 3)
	for _, origin := range []uint32{0, 130, 1 << 20} {
		if got := g.AdjustedOrigin(origin); got != origin {
			t.Errorf("AdjustedOrigin(%d) = %d, want %d", origin, got, origin)
		}
	}
}

func TestMetricsMatchesQueries(t *testing.T) {
	g := mustNew(t, Or, NewInput("a"), mustNew(t, And, NewInput("b"), mustNew(t, Not, NewInput("c"))))
	m := g.Metrics()

	if m.Depth != g.Depth() {
		t.Errorf("Depth = %d, want %d", m.Depth, g.Depth())
	}
	if !slices.Equal(m.Columns, g.ColumnSizes()) {
		t.Errorf("Columns = %v, want %v", m.Columns, g.ColumnSizes())
	}
	if m.LargestColumn != g.LargestColumn() {
		t.Errorf("LargestColumn = %d, want %d", m.LargestColumn, g.LargestColumn())
	}
	if m.Width != g.Width() || m.Height != g.Height() {
		t.Errorf("Width/Height = %d/%d, want %d/%d", m.Width, m.Height, g.Width(), g.Height())
	}
	if m.MinY != g.MinY(g.Seed(), 0, 0) || m.MaxY != g.MaxY(g.Seed(), 0, 0) {
		t.Errorf("MinY/MaxY = %d/%d", m.MinY, m.MaxY)
	}
}

func TestLayoutQueriesArePure(t *testing.T) {
	g := perfect(t, 5)
	want := g.Metrics()

	for range 3 {
		got := g.Metrics()
		if got.Depth != want.Depth || got.Width != want.Width || got.Height != want.Height ||
			!slices.Equal(got.Columns, want.Columns) {
			t.Fatalf("Metrics() changed between calls: %+v vs %+v", got, want)
		}
	}
}

func TestLayoutQueriesConcurrent(t *testing.T) {
	g := perfect(t, 6)
	want := g.Height()

	var wg sync.WaitGroup
	errs := make(chan uint32, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if h := g.Height(); h != want {
				errs <- h
			}
		}()
	}
	wg.Wait()
	close(errs)

	for h := range errs {
		t.Errorf("concurrent Height() = %d, want %d", h, want)
	}
}
