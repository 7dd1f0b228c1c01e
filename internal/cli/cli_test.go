package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gatesketch/pkg/diagram"
	"github.com/matzehuels/gatesketch/pkg/errors"
)

// testCLI isolates config and cache directories for one test.
type testCLI struct {
	*CLI
	out, errOut bytes.Buffer
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return &testCLI{CLI: New(io.Discard, LogInfo)}
}

func (tc *testCLI) run(args ...string) error {
	root := tc.RootCommand()
	root.SetOut(&tc.out)
	root.SetErr(&tc.errOut)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestParseCommand(t *testing.T) {
	tc := newTestCLI(t)
	if err := tc.run("parse", "(a+b)c'"); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	out := tc.out.String()
	for _, want := range []string{"(a+b)*c'", "ab+c'*", "AND", "OR", "NOT"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestParseCommandStdin(t *testing.T) {
	tc := newTestCLI(t)
	tc.In = strings.NewReader("a + b\n")
	if err := tc.run("parse"); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !strings.Contains(tc.out.String(), "ab+") {
		t.Errorf("output = %s", tc.out.String())
	}
}

func TestParseCommandError(t *testing.T) {
	tc := newTestCLI(t)
	err := tc.run("parse", "a+")
	if !errors.Is(err, errors.ErrCodeMalformedExpression) {
		t.Fatalf("error = %v, want MALFORMED_EXPRESSION", err)
	}
	lines := strings.Split(strings.TrimRight(tc.errOut.String(), "\n"), "\n")
	if len(lines) != 2 || strings.TrimSpace(lines[0]) != "a+" {
		t.Fatalf("stderr = %q", tc.errOut.String())
	}
	if got := strings.Index(lines[1], "^") - strings.Index(lines[0], "a"); got != 1 {
		t.Errorf("caret at offset %d, want 1", got)
	}
}

func TestRenderCommand(t *testing.T) {
	tc := newTestCLI(t)
	base := filepath.Join(t.TempDir(), "out")

	if err := tc.run("render", "-f", "svg,json", "-o", base, "a+b'c"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	svg, err := os.ReadFile(base + ".svg")
	if err != nil || !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("out.svg: %v %.20s", err, svg)
	}
	l, err := diagram.ReadLayoutFile(base + ".json")
	if err != nil {
		t.Fatalf("out.json: %v", err)
	}
	if l.Normalized != "a+b'*c" || len(l.Nodes) != 6 {
		t.Errorf("layout = %+v", l)
	}
}

func TestRenderStdout(t *testing.T) {
	tc := newTestCLI(t)
	if err := tc.run("render", "-f", "dot", "-o", "-", "--no-cache", "ab"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !strings.HasPrefix(tc.out.String(), "digraph") {
		t.Errorf("stdout = %q", tc.out.String())
	}

	err := tc.run("render", "-f", "svg,png", "-o", "-", "ab")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("two formats to stdout: error = %v", err)
	}
}

func TestRenderFromLayout(t *testing.T) {
	tc := newTestCLI(t)
	dir := t.TempDir()

	if err := tc.run("render", "-f", "yaml", "--style", "dark", "-o", filepath.Join(dir, "saved"), "ab+c"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	err := tc.run("render", "--layout", filepath.Join(dir, "saved.yaml"), "-f", "svg", "-o", filepath.Join(dir, "again.svg"))
	if err != nil {
		t.Fatalf("render --layout error: %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "again.svg"))
	if err != nil {
		t.Fatal(err)
	}
	// The saved dark style carries over.
	if !bytes.Contains(svg, []byte("#1e1e2e")) {
		t.Error("re-rendered SVG lost the dark style")
	}

	err = tc.run("render", "--layout", filepath.Join(dir, "saved.yaml"), "ab")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("--layout with expression: error = %v", err)
	}
	err = tc.run("render", "--layout", filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("missing layout: error = %v", err)
	}
}

func TestRenderInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"format", []string{"render", "-f", "gif", "a"}, errors.ErrCodeInvalidFormat},
		{"style", []string{"render", "--style", "neon", "-o", "-", "a"}, errors.ErrCodeInvalidStyle},
		{"type", []string{"render", "-t", "tower", "-o", "-", "a"}, errors.ErrCodeInvalidVizType},
		{"empty", []string{"render", "-o", "-", " "}, errors.ErrCodeEmptyExpression},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestCLI(t)
			if err := tc.run(tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLayoutCommand(t *testing.T) {
	tc := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := tc.run("layout", "-o", path, "(a+b)c'"); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	out := tc.out.String()
	for _, want := range []string{"largest column", "3 2 1", "330", "500"} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics table missing %q:\n%s", want, out)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var l diagram.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		t.Fatal(err)
	}
	if l.Width != 330 || l.Height != 500 {
		t.Errorf("layout size = %dx%d, want 330x500", l.Width, l.Height)
	}
}

func TestConfigFile(t *testing.T) {
	tc := newTestCLI(t)
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("style = \"dark\"\nformats = [\"png\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// The flag overrides the configured formats; the style comes from the file.
	if err := tc.run("--config", cfg, "render", "-f", "json", "-o", "-", "ab"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	var l diagram.Layout
	if err := json.Unmarshal(tc.out.Bytes(), &l); err != nil {
		t.Fatalf("stdout is not a layout: %v", err)
	}
	if l.Style != "dark" {
		t.Errorf("Style = %q, want dark", l.Style)
	}

	if err := os.WriteFile(cfg, []byte("style = \"neon\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := tc.run("--config", cfg, "parse", "a"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("bad config: error = %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	tc := newTestCLI(t)
	cacheHome := os.Getenv("XDG_CACHE_HOME")

	if err := tc.run("cache", "path"); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(cacheHome, appName)
	if got := strings.TrimSpace(tc.out.String()); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}

	if err := tc.run("render", "-f", "svg", "-o", filepath.Join(t.TempDir(), "c"), "ab"); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(want)
	if len(entries) == 0 {
		t.Fatal("render left the cache empty")
	}

	if err := tc.run("cache", "clear"); err != nil {
		t.Fatal(err)
	}
	entries, _ = os.ReadDir(want)
	if len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}

func TestCompletion(t *testing.T) {
	tc := newTestCLI(t)
	if err := tc.run("completion", "bash"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tc.out.String(), appName) {
		t.Error("bash completion does not mention the command")
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, vizType, want string
	}{
		{"", "", "circuit"},
		{"", "nodelink", "nodelink"},
		{"adder", "circuit", "adder"},
		{"adder.svg", "circuit", "adder"},
		{"out/adder.png", "circuit", "out/adder"},
		{"adder.v2", "circuit", "adder.v2"},
		{"-", "circuit", "-"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.vizType); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.vizType, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg, png,dot", []string{"svg", "png", "dot"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCaretLine(t *testing.T) {
	tests := []struct {
		expr string
		pos  int
		want string
	}{
		{"a+", 2, " ^"},
		{"(a", 1, "^"},
		{"a\t+", 3, " \t^"},
	}
	for _, tt := range tests {
		if got := caretLine(tt.expr, tt.pos); got != tt.want {
			t.Errorf("caretLine(%q, %d) = %q, want %q", tt.expr, tt.pos, got, tt.want)
		}
	}
}
