package expr

import "strings"

// Kind classifies a token.
type Kind uint8

const (
	Operand Kind = iota
	Operator
)

func (k Kind) String() string {
	if k == Operand {
		return "operand"
	}
	return "operator"
}

// Operator characters.
const (
	OpAnd   = '*'
	OpOr    = '+'
	OpNot   = '\''
	OpOpen  = '('
	OpClose = ')'
)

// Precedence ranks. Grouping characters rank below everything so they are
// never popped by the precedence rule.
const (
	RankGroup   = -1
	RankOperand = 0
	RankOr      = 2
	RankAnd     = 3
	RankNot     = 4
)

// Precedence returns the rank of a character: -1 for parentheses, 2 for OR,
// 3 for AND, 4 for NOT, and 0 for anything else (operands).
func Precedence(r rune) int {
	switch r {
	case OpOpen, OpClose:
		return RankGroup
	case OpOr:
		return RankOr
	case OpAnd:
		return RankAnd
	case OpNot:
		return RankNot
	}
	return RankOperand
}

// Token is a single classified character of an expression.
type Token struct {
	Char rune
	Kind Kind

	// Pos is the 1-based column in the raw input, counted in runes. An
	// implicit AND takes the column of the token that follows it.
	Pos int

	// Implicit marks an AND inserted by Normalize.
	Implicit bool
}

// Precedence returns the token's rank.
func (t Token) Precedence() int {
	if t.Kind == Operand {
		return RankOperand
	}
	return Precedence(t.Char)
}

// Is reports whether t is the operator r.
func (t Token) Is(r rune) bool { return t.Kind == Operator && t.Char == r }

func (t Token) String() string { return string(t.Char) }

// String renders tokens back into expression text without separators.
func String(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteRune(t.Char)
	}
	return b.String()
}
