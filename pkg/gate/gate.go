package gate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/gatesketch/pkg/errors"
)

// Type identifies the kind of a gate.
type Type uint8

const (
	And Type = iota
	Or
	Not
	Input
)

// typeSpec is the per-type lookup row: arity, display glyph and operator rune.
// MinArity == MaxArity for fixed-arity gates; MaxArity < 0 means unbounded.
type typeSpec struct {
	name     string
	minArity int
	maxArity int
	glyph    string
	op       rune
}

var specs = [...]typeSpec{
	And:   {name: "AND", minArity: 2, maxArity: -1, glyph: "", op: '*'},
	Or:    {name: "OR", minArity: 2, maxArity: -1, glyph: "+", op: '+'},
	Not:   {name: "NOT", minArity: 1, maxArity: 1, glyph: "'", op: '\''},
	Input: {name: "INPUT", minArity: 0, maxArity: 0},
}

// Types lists every gate type in declaration order.
var Types = []Type{And, Or, Not, Input}

// String returns the upper-case gate name ("AND", "OR", "NOT", "INPUT").
func (t Type) String() string {
	if int(t) < len(specs) {
		return specs[t].name
	}
	return fmt.Sprintf("Type(%d)", t)
}

// Valid reports whether t is one of the declared gate types.
func (t Type) Valid() bool { return int(t) < len(specs) }

// Arity returns the number of inputs the parser consumes for t:
// 2 for AND and OR, 1 for NOT, 0 for INPUT.
func (t Type) Arity() int {
	if !t.Valid() {
		return 0
	}
	return specs[t].minArity
}

// Glyph returns the symbol used when composing display names.
func (t Type) Glyph() string {
	if !t.Valid() {
		return ""
	}
	return specs[t].glyph
}

// Operator returns the operator rune for t, or 0 for INPUT.
func (t Type) Operator() rune {
	if !t.Valid() {
		return 0
	}
	return specs[t].op
}

// acceptsArity reports whether t may own n inputs.
func (t Type) acceptsArity(n int) bool {
	s := specs[t]
	if n < s.minArity {
		return false
	}
	return s.maxArity < 0 || n <= s.maxArity
}

// ParseType converts a gate name ("AND", "or", ...) back into a Type.
func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if strings.EqualFold(s, specs[t].name) {
			return t, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown gate type %q", s)
}

// TypeForOperator returns the gate type an operator rune builds.
func TypeForOperator(op rune) (Type, bool) {
	switch op {
	case '*':
		return And, true
	case '+':
		return Or, true
	case '\'':
		return Not, true
	}
	return 0, false
}

// Gate is a node of an immutable gate tree. A gate exclusively owns its
// inputs: trees never share subtrees and never contain cycles.
type Gate struct {
	typ    Type
	inputs []*Gate
	name   string
}

// NewInput creates a leaf gate for a variable.
func NewInput(name string) *Gate {
	return &Gate{typ: Input, name: name}
}

// New creates an operator gate owning inputs in left-to-right order.
// AND and OR accept two or more inputs, NOT exactly one. The display name
// joins the input names with the type's glyph; a single input gets the
// glyph appended once (NOT a → "a'").
func New(t Type, inputs ...*Gate) (*Gate, error) {
	if !t.Valid() {
		return nil, errors.New(errors.ErrCodeMalformedExpression, "unknown gate type %d", t)
	}
	if t == Input {
		return nil, errors.New(errors.ErrCodeMalformedExpression, "INPUT gates are created with NewInput")
	}
	if !t.acceptsArity(len(inputs)) {
		return nil, errors.New(errors.ErrCodeInsufficientOperands,
			"%s gate cannot take %d input(s)", t, len(inputs))
	}

	names := make([]string, len(inputs))
	for i, in := range inputs {
		if in == nil {
			return nil, errors.New(errors.ErrCodeMalformedExpression, "%s gate input %d is nil", t, i)
		}
		names[i] = in.name
	}

	name := strings.Join(names, t.Glyph())
	if len(inputs) == 1 {
		name += t.Glyph()
	}

	return &Gate{typ: t, inputs: slices.Clone(inputs), name: name}, nil
}

// Type returns the gate type.
func (g *Gate) Type() Type { return g.typ }

// Name returns the display name.
func (g *Gate) Name() string { return g.name }

// Inputs returns the gate's inputs in left-to-right order. The returned
// slice is a copy; the gates themselves are shared read-only.
func (g *Gate) Inputs() []*Gate { return slices.Clone(g.inputs) }

// NumInputs returns len(g.Inputs()) without copying.
func (g *Gate) NumInputs() int { return len(g.inputs) }

// Input returns the i-th input.
func (g *Gate) Input(i int) *Gate { return g.inputs[i] }

// IsLeaf reports whether g has no inputs.
func (g *Gate) IsLeaf() bool { return len(g.inputs) == 0 }

// Walk visits g and its descendants in pre-order. depth is 0 at g.
// Returning false from fn skips the node's subtree.
func (g *Gate) Walk(fn func(n *Gate, depth int) bool) {
	g.walk(fn, 0)
}

func (g *Gate) walk(fn func(n *Gate, depth int) bool, depth int) {
	if !fn(g, depth) {
		return
	}
	for _, in := range g.inputs {
		in.walk(fn, depth+1)
	}
}

// Count returns the number of gates in the tree rooted at g.
func (g *Gate) Count() int {
	n := 0
	g.Walk(func(*Gate, int) bool { n++; return true })
	return n
}

// Leaves returns the INPUT gates in left-to-right order. Repeated variables
// appear once per occurrence.
func (g *Gate) Leaves() []*Gate {
	var out []*Gate
	g.Walk(func(n *Gate, _ int) bool {
		if n.IsLeaf() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// String renders the tree in prefix form, e.g. "OR(a, AND(b, c))".
func (g *Gate) String() string {
	if g.IsLeaf() {
		return g.name
	}
	var b strings.Builder
	b.WriteString(g.typ.String())
	b.WriteByte('(')
	for i, in := range g.inputs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(in.String())
	}
	b.WriteByte(')')
	return b.String()
}
