// Package pkg provides the core libraries for Gatesketch circuit diagrams.
//
// # Overview
//
// Gatesketch compiles boolean expressions such as "a + b'c" into trees of
// logic gates and draws them as circuit diagrams: the output gate on the
// right, its inputs fanning out to the left one column per level. The pkg
// directory is organized into four main areas:
//
//  1. [expr], [gate] - Domain logic (lexing, normalization, postfix, gate trees)
//  2. [render], [diagram] - Layout serialization and visualization
//  3. [pipeline] - Orchestration (parse → layout → render)
//  4. [cache], [store], [config], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow through Gatesketch:
//
//	Expression text
//	         ↓
//	    [expr] package (lex → normalize → postfix → build)
//	         ↓
//	    [gate] package (tree + layout queries)
//	         ↓
//	    [render] package (placement + visualization)
//	         ↓
//	    SVG/PNG/PDF/DOT/JSON/YAML output
//
// # Quick Start
//
// Compile an expression and draw it:
//
//	g, err := expr.Parse("a + b'c")
//	if err != nil {
//	    return err // carries a code and a 1-based column
//	}
//	p := circuit.Place(g)
//	svg := circuit.RenderSVG(p, circuit.WithTitle("a + b'c"))
//
// Or run the whole cached pipeline, as the CLI and HTTP server do:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), cache.NewDefaultKeyer(), logger)
//	defer runner.Close()
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Expression: "(a+b)c'",
//	    Formats:    []string{"svg", "json"},
//	})
//
// # Main Packages
//
// [expr] - The expression compiler. Letters are variables, "+" is OR, "*" or
// juxtaposition is AND, a trailing "'" is NOT. Errors carry an
// [errors.Code] and the column of the offending character.
//
// [gate] - Immutable gate trees with the layout queries the renderers need:
// depth, per-column sizes, vertical extents and the child y offsets.
//
// [render/circuit] - Places gates on a grid and draws them as SVG or,
// without external tools, as PNG.
//
// [render/nodelink] - The same tree as a Graphviz digraph.
//
// [diagram] - The serialized layout shared by the CLI, the HTTP API and the
// caches.
//
// [pipeline] - The parse → layout → render pipeline used by every entry
// point, with two-level caching of layouts and artifacts.
//
// [cache] - File (zstd compressed) and Redis cache backends.
//
// [store] - Render history, in memory or in MongoDB.
//
// # Testing
//
// Run tests:
//
//	go test ./...                   # All tests
//	go test ./pkg/expr/...          # Specific package
//	go test -run Example ./pkg/...  # Examples only
//
// Backends that need a running service skip unless GATESKETCH_TEST_REDIS or
// GATESKETCH_TEST_MONGO is set.
//
// [expr]: https://pkg.go.dev/github.com/matzehuels/gatesketch/pkg/expr
// [gate]: https://pkg.go.dev/github.com/matzehuels/gatesketch/pkg/gate
// [render]: https://pkg.go.dev/github.com/matzehuels/gatesketch/pkg/render
// [render/circuit]: https://pkg.go.dev/github.com/matzehuels/gatesketch/pkg/render/circuit
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/gatesketch/pkg/render/nodelink
// [diagram]: https://pkg.go.dev/github.com/matzehuels/gatesketch/pkg/diagram
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gatesketch/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gatesketch/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/gatesketch/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/gatesketch/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/gatesketch/pkg/observability
// [errors.Code]: https://pkg.go.dev/github.com/matzehuels/gatesketch/pkg/errors#Code
package pkg
