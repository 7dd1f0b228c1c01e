package expr

import (
	"github.com/matzehuels/gatesketch/pkg/gate"
)

// Compiled holds every intermediate form of a parsed expression.
type Compiled struct {
	Input      string
	Normalized []Token
	Postfix    []Token
	Tree       *gate.Gate
}

// NormalizedString returns the normalized expression as text.
func (c *Compiled) NormalizedString() string { return String(c.Normalized) }

// PostfixString returns the postfix expression as text.
func (c *Compiled) PostfixString() string { return String(c.Postfix) }

// Compile runs the full front end on input: lex, normalize, convert to
// postfix and build the tree.
func Compile(input string, opts ...Option) (*Compiled, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	norm, err := Normalize(tokens, opts...)
	if err != nil {
		return nil, err
	}
	post, err := ToPostfix(norm)
	if err != nil {
		return nil, err
	}
	tree, err := Build(post)
	if err != nil {
		return nil, err
	}
	return &Compiled{Input: input, Normalized: norm, Postfix: post, Tree: tree}, nil
}

// Parse compiles input and returns only the gate tree.
func Parse(input string, opts ...Option) (*gate.Gate, error) {
	c, err := Compile(input, opts...)
	if err != nil {
		return nil, err
	}
	return c.Tree, nil
}
