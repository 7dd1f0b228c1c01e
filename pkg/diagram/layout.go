package diagram

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gatesketch/pkg/gate"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeCircuit  = "circuit"
	VizTypeNodelink = "nodelink"
)

// Visual styles for rendering.
const (
	StyleSimple = "simple"
	StyleDark   = "dark"
)

// NodeID returns the identifier of the i-th gate in pre-order.
func NodeID(i int) string { return fmt.Sprintf("g%d", i) }

// =============================================================================
// Layout - Unified Visualization Format
// =============================================================================

// Layout is the serialization format for rendered diagrams.
//
// This is a discriminated union type - check VizType to determine which
// fields are populated:
//
//	Circuit ("circuit"):
//	  - Nodes: gates with their cell coordinates
//	  - Wires: routed connections between output and input anchors
//	  - Origin: vertical origin the root was placed at
//
//	Nodelink ("nodelink"):
//	  - DOT: Graphviz DOT string for rendering
//	  - Engine: Graphviz layout engine (e.g., "dot")
//
// Shared fields (both types):
//   - Expression, Normalized, Postfix: the source text and its compiled forms
//   - Width, Height: frame dimensions
//   - Metrics: layout query results for the tree
type Layout struct {
	// Discriminator
	VizType string `json:"viz_type" yaml:"viz_type" bson:"viz_type"`

	// Source
	Expression string `json:"expression" yaml:"expression" bson:"expression"`
	Normalized string `json:"normalized,omitempty" yaml:"normalized,omitempty" bson:"normalized,omitempty"`
	Postfix    string `json:"postfix,omitempty" yaml:"postfix,omitempty" bson:"postfix,omitempty"`

	// Common dimensions and style
	Width  uint32 `json:"width" yaml:"width" bson:"width"`
	Height uint32 `json:"height" yaml:"height" bson:"height"`
	Style  string `json:"style,omitempty" yaml:"style,omitempty" bson:"style,omitempty"`

	Metrics *Metrics `json:"metrics,omitempty" yaml:"metrics,omitempty" bson:"metrics,omitempty"`

	// Circuit-specific
	Origin   uint32 `json:"origin,omitempty" yaml:"origin,omitempty" bson:"origin,omitempty"`
	Centered bool   `json:"centered,omitempty" yaml:"centered,omitempty" bson:"centered,omitempty"`
	Nodes    []Node `json:"nodes,omitempty" yaml:"nodes,omitempty" bson:"nodes,omitempty"`
	Wires    []Wire `json:"wires,omitempty" yaml:"wires,omitempty" bson:"wires,omitempty"`

	// Nodelink-specific
	DOT    string `json:"dot,omitempty" yaml:"dot,omitempty" bson:"dot,omitempty"`
	Engine string `json:"engine,omitempty" yaml:"engine,omitempty" bson:"engine,omitempty"`
}

// IsCircuit returns true if this is a circuit layout.
func (l *Layout) IsCircuit() bool { return l.VizType == VizTypeCircuit }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// Metrics mirrors gate.Metrics for serialization.
type Metrics struct {
	Depth         int    `json:"depth" yaml:"depth" bson:"depth"`
	Columns       []int  `json:"columns" yaml:"columns" bson:"columns"`
	LargestColumn int    `json:"largest_column" yaml:"largest_column" bson:"largest_column"`
	Seed          uint32 `json:"seed" yaml:"seed" bson:"seed"`
	MinY          uint32 `json:"min_y" yaml:"min_y" bson:"min_y"`
	MaxY          uint32 `json:"max_y" yaml:"max_y" bson:"max_y"`
}

// FromMetrics converts gate layout metrics for serialization.
func FromMetrics(m gate.Metrics) *Metrics {
	return &Metrics{
		Depth:         m.Depth,
		Columns:       m.Columns,
		LargestColumn: m.LargestColumn,
		Seed:          m.Seed,
		MinY:          m.MinY,
		MaxY:          m.MaxY,
	}
}

// =============================================================================
// Node, Wire - Circuit Elements
// =============================================================================

// Node is a placed gate. X and Y are the top-left corner of its cell.
type Node struct {
	ID     string   `json:"id" yaml:"id" bson:"id"`
	Type   string   `json:"type" yaml:"type" bson:"type"`
	Name   string   `json:"name" yaml:"name" bson:"name"`
	X      uint32   `json:"x" yaml:"x" bson:"x"`
	Y      uint32   `json:"y" yaml:"y" bson:"y"`
	Inputs []string `json:"inputs,omitempty" yaml:"inputs,omitempty" bson:"inputs,omitempty"`
}

// Wire connects a child's output anchor (X1, Y1) to input Input of its
// parent at (X2, Y2). It is drawn vertically at X1, then horizontally at Y2.
type Wire struct {
	From  string `json:"from" yaml:"from" bson:"from"`
	To    string `json:"to" yaml:"to" bson:"to"`
	Input int    `json:"input" yaml:"input" bson:"input"`
	X1    uint32 `json:"x1" yaml:"x1" bson:"x1"`
	Y1    uint32 `json:"y1" yaml:"y1" bson:"y1"`
	X2    uint32 `json:"x2" yaml:"x2" bson:"x2"`
	Y2    uint32 `json:"y2" yaml:"y2" bson:"y2"`
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// MarshalLayoutYAML serializes a Layout to YAML bytes.
func MarshalLayoutYAML(l Layout) ([]byte, error) {
	return yaml.Marshal(l)
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present for the viz type.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if err := validate(&l); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// UnmarshalLayoutYAML deserializes YAML bytes into a Layout.
func UnmarshalLayoutYAML(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if err := validate(&l); err != nil {
		return Layout{}, err
	}
	return l, nil
}

func validate(l *Layout) error {
	if l.VizType == "" {
		l.VizType = VizTypeCircuit
	}
	switch {
	case l.IsCircuit() && len(l.Nodes) == 0:
		return fmt.Errorf("circuit layout must contain nodes")
	case l.IsNodelink() && l.DOT == "":
		return fmt.Errorf("nodelink layout must contain DOT string")
	case !l.IsCircuit() && !l.IsNodelink():
		return fmt.Errorf("unknown viz_type %q", l.VizType)
	}
	return nil
}

// isYAML reports whether path names a YAML file.
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// WriteLayoutFile writes a Layout to a JSON or YAML file, chosen by extension.
func WriteLayoutFile(l Layout, path string) error {
	marshal := MarshalLayout
	if isYAML(path) {
		marshal = MarshalLayoutYAML
	}
	data, err := marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON or YAML file, chosen by extension.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	if isYAML(path) {
		return UnmarshalLayoutYAML(data)
	}
	return UnmarshalLayout(data)
}
