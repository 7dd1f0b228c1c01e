// Package pipeline provides the core rendering pipeline for gatesketch.
//
// This package implements the complete parse → layout → render pipeline that
// is shared by the CLI and the HTTP API. By centralizing this logic, both
// entry points validate options, cache results and report errors the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Compile the expression into a gate tree
//  2. Layout: Place the tree as a circuit or emit it as a Graphviz digraph
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, YAML, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Expression: "a + b'c",
//	    Formats:    []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Re-render a saved layout without the expression's parse and layout stages:
//
//	l, err := diagram.ReadLayoutFile("circuit.json")
//	artifacts, err := runner.Render(ctx, l, nil, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gatesketch/pkg/cache"
	"github.com/matzehuels/gatesketch/pkg/diagram"
	"github.com/matzehuels/gatesketch/pkg/errors"
	"github.com/matzehuels/gatesketch/pkg/expr"
	"github.com/matzehuels/gatesketch/pkg/gate"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// MaxDepth is the deepest tree the pipeline will lay out. The layout
	// seed is 2^depth·50, so deeper trees leave the 32-bit coordinate space.
	MaxDepth = gate.MaxDepth

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0

	// DefaultVizType is the default visualization type.
	DefaultVizType = diagram.VizTypeCircuit

	// DefaultStyle is the default visual style.
	DefaultStyle = diagram.StyleSimple

	// DefaultPNGEngine is the default PNG rasterizer.
	DefaultPNGEngine = PNGEngineNative
)

// PNG rasterizers.
const (
	PNGEngineNative = "native" // in-process rasterizer, circuits only
	PNGEngineRsvg   = "rsvg"   // rsvg-convert
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatYAML: true,
	FormatDOT:  true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	diagram.StyleSimple: true,
	diagram.StyleDark:   true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	diagram.VizTypeCircuit:  true,
	diagram.VizTypeNodelink: true,
}

// ValidPNGEngines is the set of supported PNG rasterizers.
var ValidPNGEngines = map[string]bool{
	PNGEngineNative: true,
	PNGEngineRsvg:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Expression    string `json:"expression"`
	GroupProducts bool   `json:"group_products,omitempty"` // also read ")(" and "'(" as AND

	// Layout options
	VizType  string `json:"viz_type,omitempty"`
	Center   bool   `json:"center,omitempty"`   // center the tree's vertical extent
	Detailed bool   `json:"detailed,omitempty"` // nodelink: label gates with their sub-expression

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	Labels    bool     `json:"labels,omitempty"`
	PNGEngine string   `json:"png_engine,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"` // bypass cache reads

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID uniquely identifies this run (a random UUID).
	ID string

	// Compiled holds the normalized and postfix forms and the gate tree.
	Compiled *expr.Compiled

	// Layout is the serializable layout.
	Layout diagram.Layout

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Tree returns the parsed gate tree.
func (r *Result) Tree() *gate.Gate {
	if r.Compiled == nil {
		return nil
	}
	return r.Compiled.Tree
}

// Stats contains pipeline execution statistics.
type Stats struct {
	GateCount  int
	Depth      int
	Columns    []int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, keys(ValidFormats))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: %s)", style, keys(ValidStyles))
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType,
			"invalid viz_type: %q (must be one of: %s)", vizType, keys(ValidVizTypes))
	}
	return nil
}

// ValidatePNGEngine checks that a PNG engine is valid.
func ValidatePNGEngine(engine string) error {
	if !ValidPNGEngines[engine] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid png_engine: %q (must be one of: %s)", engine, keys(ValidPNGEngines))
	}
	return nil
}

// ValidateDepth rejects trees too deep for the 32-bit layout space.
func ValidateDepth(depth int) error {
	if depth > MaxDepth {
		return errors.New(errors.ErrCodeLayoutTooDeep,
			"expression nests %d levels deep (max %d)", depth, MaxDepth)
	}
	return nil
}

func keys(m map[string]bool) string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return strings.Join(out, ", ")
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks the expression input.
func (o *Options) ValidateForParse() error {
	if err := errors.ValidateExpressionInput(o.Expression); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	o.SetLayoutDefaults()
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.PNGEngine == "" {
		o.PNGEngine = DefaultPNGEngine
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return ValidatePNGEngine(o.PNGEngine)
}

// IsCircuit returns true if this is a circuit visualization.
func (o *Options) IsCircuit() bool {
	return o.VizType == "" || o.VizType == diagram.VizTypeCircuit
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == diagram.VizTypeNodelink
}

// ExprOptions returns the compiler options selected by o.
func (o *Options) ExprOptions() []expr.Option {
	if o.GroupProducts {
		return []expr.Option{expr.WithGroupProducts()}
	}
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VizType:       o.VizType,
		GroupProducts: o.GroupProducts,
		Center:        o.Center,
		Detailed:      o.Detailed,
		Style:         o.Style,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Labels: o.Labels,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
		k.PNGEngine = o.PNGEngine
	}
	return k
}
