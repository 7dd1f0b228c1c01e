package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/gatesketch/pkg/cache"
	"github.com/matzehuels/gatesketch/pkg/diagram"
	"github.com/matzehuels/gatesketch/pkg/errors"
	"github.com/matzehuels/gatesketch/pkg/observability"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestExecuteCircuit(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{
		Expression: "a + b'c",
		Formats:    []string{FormatSVG, FormatPNG, FormatJSON, FormatYAML, FormatDOT},
	}

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if _, err := uuid.Parse(res.ID); err != nil {
		t.Errorf("Result.ID %q is not a UUID", res.ID)
	}
	if res.Tree().String() != "OR(a, AND(NOT(b), c))" {
		t.Errorf("Tree = %s", res.Tree())
	}
	if res.Stats.GateCount != 6 || res.Stats.Depth != 4 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if len(res.Stats.Columns) != 4 {
		t.Errorf("Columns = %v", res.Stats.Columns)
	}
	if res.Layout.Normalized != "a+b'*c" || res.Layout.Postfix != "ab'c*+" {
		t.Errorf("Layout source = %q / %q", res.Layout.Normalized, res.Layout.Postfix)
	}
	if res.LayoutHash == "" {
		t.Error("LayoutHash is empty")
	}

	if svg := string(res.Artifacts[FormatSVG]); !strings.HasPrefix(svg, "<svg") {
		t.Error("svg artifact is not an SVG")
	}
	if _, err := png.Decode(bytes.NewReader(res.Artifacts[FormatPNG])); err != nil {
		t.Errorf("png artifact does not decode: %v", err)
	}
	if l, err := diagram.UnmarshalLayout(res.Artifacts[FormatJSON]); err != nil || len(l.Nodes) != 6 {
		t.Errorf("json artifact: %d nodes, err %v", len(l.Nodes), err)
	}
	if l, err := diagram.UnmarshalLayoutYAML(res.Artifacts[FormatYAML]); err != nil || l.Expression != "a + b'c" {
		t.Errorf("yaml artifact: expression %q, err %v", l.Expression, err)
	}
	if dot := string(res.Artifacts[FormatDOT]); !strings.Contains(dot, "digraph G") {
		t.Error("dot artifact is not a digraph")
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses atomic.Int32
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)  { h.hits.Add(1) }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string) { h.misses.Add(1) }

func TestExecuteUsesCache(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Expression: "ab+c", Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run hit the cache: %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run missed the cache: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}
	if first.ID == second.ID {
		t.Error("runs share an ID")
	}
	if hooks.hits.Load() != 2 || hooks.misses.Load() != 2 {
		t.Errorf("hooks: %d hits, %d misses; want 2 and 2", hooks.hits.Load(), hooks.misses.Load())
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute() error: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh run hit the cache: %+v", third.CacheInfo)
	}
}

func TestExecuteCacheSeparatesOptions(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Expression: "ab"}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Expression: "ab", Center: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("centered layout served from uncentered cache entry")
	}
	if !res.Layout.Centered {
		t.Error("layout is not centered")
	}
}

func TestExecuteParseError(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Expression: "a+"})
	if !errors.Is(err, errors.ErrCodeMalformedExpression) {
		t.Fatalf("Execute() error = %v, want MALFORMED_EXPRESSION", err)
	}
	if pos := errors.Position(err); pos != 2 {
		t.Errorf("Position = %d, want 2", pos)
	}
}

func TestExecuteTooDeep(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	deep := "a" + strings.Repeat("'", MaxDepth)
	_, err := r.Execute(context.Background(), Options{Expression: deep})
	if !errors.Is(err, errors.ErrCodeLayoutTooDeep) {
		t.Errorf("Execute(depth %d) error = %v, want LAYOUT_TOO_DEEP", MaxDepth+1, err)
	}

	ok := "a" + strings.Repeat("'", MaxDepth-1)
	if _, err := r.Execute(context.Background(), Options{Expression: ok}); err != nil {
		t.Errorf("Execute(depth %d) error = %v", MaxDepth, err)
	}
}

func TestExecuteNodelink(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Expression: "(a+b)c",
		VizType:    diagram.VizTypeNodelink,
		Detailed:   true,
		Formats:    []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !res.Layout.IsNodelink() || res.Layout.DOT == "" {
		t.Errorf("Layout = %+v", res.Layout)
	}
	if string(res.Artifacts[FormatDOT]) != res.Layout.DOT {
		t.Error("dot artifact differs from layout DOT")
	}
	if !strings.Contains(res.Layout.DOT, `label="OR\na+b"`) {
		t.Errorf("detailed labels missing:\n%s", res.Layout.DOT)
	}
}

func TestRenderFromLayoutData(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	res, err := r.Execute(ctx, Options{
		Expression: "ab'+c",
		Style:      diagram.StyleDark,
		Formats:    []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Style comes back from the layout when the caller leaves it unset.
	again, err := RenderFromLayoutData(ctx, res.Artifacts[FormatJSON], Options{Formats: []string{FormatSVG, FormatDOT}})
	if err != nil {
		t.Fatalf("RenderFromLayoutData() error: %v", err)
	}
	if !bytes.Equal(again[FormatSVG], res.Artifacts[FormatSVG]) {
		t.Error("re-rendered svg differs from original")
	}
	if !strings.Contains(string(again[FormatDOT]), `"g0" [label="OR"`) {
		t.Errorf("dot from re-parsed layout:\n%s", again[FormatDOT])
	}

	if _, err := RenderFromLayoutData(ctx, []byte(`{"viz_type":"circuit"}`), Options{}); !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("RenderFromLayoutData(empty) error = %v, want INVALID_LAYOUT", err)
	}
}

func TestRunnerRenderLayoutFile(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	res, err := r.Execute(ctx, Options{Expression: "ab", Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}

	path := t.TempDir() + "/ab.yaml"
	if err := diagram.WriteLayoutFile(res.Layout, path); err != nil {
		t.Fatal(err)
	}
	l, err := diagram.ReadLayoutFile(path)
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := r.Render(ctx, l, nil, Options{Formats: []string{FormatSVG}, Labels: true})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(string(artifacts[FormatSVG]), ">ab</text>") {
		t.Error("labels option ignored on re-render")
	}
}
