package expr

import "github.com/matzehuels/gatesketch/pkg/errors"

// Option configures normalization.
type Option func(*options)

type options struct {
	groupProducts bool
}

// WithGroupProducts also treats a group followed by a group as a product:
// ")(" and "'(" get an implicit AND, so "(a+b)(c+d)" and "a'(b)" parse.
func WithGroupProducts() Option {
	return func(o *options) { o.groupProducts = true }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Normalize inserts an explicit AND between every adjacent pair of tokens
// that implies conjunction:
//
//	operand operand    ab   -> a*b
//	operand '('        a(b) -> a*(b)
//	')' operand        (a)b -> (a)*b
//	'\'' operand       a'b  -> a'*b
//
// Pairs are classified on the input stream, so an insertion never affects
// the next pair. An empty stream fails with EMPTY_EXPRESSION.
func Normalize(tokens []Token, opts ...Option) ([]Token, error) {
	if len(tokens) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyExpression, "expression is empty")
	}
	if len(tokens) == 1 {
		return []Token{tokens[0]}, nil
	}

	o := buildOptions(opts)
	out := make([]Token, 0, 2*len(tokens))
	for i := 0; i < len(tokens)-1; i++ {
		c1, c2 := tokens[i], tokens[i+1]
		out = append(out, c1)
		if impliesAnd(c1, c2, o) {
			out = append(out, Token{Char: OpAnd, Kind: Operator, Pos: c2.Pos, Implicit: true})
		}
	}
	return append(out, tokens[len(tokens)-1]), nil
}

func impliesAnd(c1, c2 Token, o options) bool {
	p1, p2 := c1.Precedence(), c2.Precedence()
	switch {
	case p1 == RankOperand && p2 == RankOperand:
		return true
	case p1 == RankOperand && c2.Is(OpOpen):
		return true
	case c1.Is(OpClose) && p2 == RankOperand:
		return true
	case c1.Is(OpNot) && p2 == RankOperand:
		return true
	}
	if o.groupProducts && c2.Is(OpOpen) {
		return c1.Is(OpClose) || c1.Is(OpNot)
	}
	return false
}

// NormalizeString lexes and normalizes s and renders the result as text,
// e.g. "a b'c" -> "a*b'*c".
func NormalizeString(s string, opts ...Option) (string, error) {
	tokens, err := Lex(s)
	if err != nil {
		return "", err
	}
	norm, err := Normalize(tokens, opts...)
	if err != nil {
		return "", err
	}
	return String(norm), nil
}
