package expr

import (
	"strings"
	"testing"

	"github.com/matzehuels/gatesketch/pkg/errors"
	"github.com/matzehuels/gatesketch/pkg/gate"
)

// toks classifies each rune of s without lexing, numbering columns from 1.
func toks(s string) []Token {
	var out []Token
	for i, r := range []rune(s) {
		k := Operand
		if strings.ContainsRune("*+'()", r) {
			k = Operator
		}
		out = append(out, Token{Char: r, Kind: k, Pos: i + 1})
	}
	return out
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'(', -1}, {')', -1}, {'a', 0}, {'Z', 0}, {'+', 2}, {'*', 3}, {'\'', 4},
	}
	for _, tt := range tests {
		if got := Precedence(tt.r); got != tt.want {
			t.Errorf("Precedence(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestLex(t *testing.T) {
	tokens, err := Lex(" a +b'")
	if err != nil {
		t.Fatalf("Lex() error: %v", err)
	}

	want := []Token{
		{Char: 'a', Kind: Operand, Pos: 2},
		{Char: '+', Kind: Operator, Pos: 4},
		{Char: 'b', Kind: Operand, Pos: 5},
		{Char: '\'', Kind: Operator, Pos: 6},
	}
	if len(tokens) != len(want) {
		t.Fatalf("Lex() = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, tokens[i], want[i])
		}
	}
}

func TestLexUnicodeColumns(t *testing.T) {
	tokens, err := Lex("äb")
	if err != nil {
		t.Fatalf("Lex() error: %v", err)
	}
	if len(tokens) != 2 || tokens[0].Char != 'ä' || tokens[1].Pos != 2 {
		t.Errorf("Lex(äb) = %+v", tokens)
	}
}

func TestLexInvalid(t *testing.T) {
	tests := []struct {
		input string
		pos   int
	}{
		{"a+1", 3},
		{"a & b", 3},
		{"ab-c", 3},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Lex(tt.input)
			if !errors.Is(err, errors.ErrCodeMalformedExpression) {
				t.Fatalf("Lex(%q) error = %v, want MALFORMED_EXPRESSION", tt.input, err)
			}
			if got := errors.Position(err); got != tt.pos {
				t.Errorf("Position = %d, want %d", got, tt.pos)
			}
		})
	}
}

func TestLexEmpty(t *testing.T) {
	tokens, err := Lex(" \t ")
	if err != nil || len(tokens) != 0 {
		t.Errorf("Lex(whitespace) = %v, %v; want no tokens", tokens, err)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		opts  []Option
		want  string
	}{
		{"a", nil, "a"},
		{"ab", nil, "a*b"},
		{"abc", nil, "a*b*c"},
		{"a(b)", nil, "a*(b)"},
		{"(a)b", nil, "(a)*b"},
		{"a'b", nil, "a'*b"},
		{"a b + c", nil, "a*b+c"},
		{"a''", nil, "a''"},
		{"a*b", nil, "a*b"},
		{"(a)(b)", nil, "(a)(b)"},
		{"a'(b)", nil, "a'(b)"},
		{"(a)(b)", []Option{WithGroupProducts()}, "(a)*(b)"},
		{"a'(b)", []Option{WithGroupProducts()}, "a'*(b)"},
		{"(a+b)(c+d)", []Option{WithGroupProducts()}, "(a+b)*(c+d)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeString(tt.input, tt.opts...)
			if err != nil {
				t.Fatalf("NormalizeString(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeImplicitToken(t *testing.T) {
	out, err := Normalize(toks("ab"))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("Normalize(ab) = %v, want 3 tokens", out)
	}
	and := out[1]
	if !and.Implicit || !and.Is(OpAnd) || and.Pos != 2 {
		t.Errorf("implicit AND = %+v, want Implicit '*' at column 2", and)
	}
	if out[0].Implicit || out[2].Implicit {
		t.Error("source tokens must not be marked implicit")
	}
}

func TestNormalizeEmpty(t *testing.T) {
	_, err := Normalize(nil)
	if !errors.Is(err, errors.ErrCodeEmptyExpression) {
		t.Errorf("Normalize(nil) error = %v, want EMPTY_EXPRESSION", err)
	}
}

func TestToPostfix(t *testing.T) {
	tests := []struct {
		infix string
		want  string
	}{
		{"a", "a"},
		{"a+b", "ab+"},
		{"a*b", "ab*"},
		{"a+b*c", "abc*+"},
		{"a*b+c", "ab*c+"},
		{"(a+b)*c", "ab+c*"},
		{"a'*b", "a'b*"},
		{"(a*b)'", "ab*'"},
		{"a''", "a''"},
		{"a+b+c", "ab+c+"},
		{"a*b*c", "ab*c*"},
		{"a*(b+c)'", "abc+'*"},
	}

	for _, tt := range tests {
		t.Run(tt.infix, func(t *testing.T) {
			got, err := ToPostfix(toks(tt.infix))
			if err != nil {
				t.Fatalf("ToPostfix(%q) error: %v", tt.infix, err)
			}
			if String(got) != tt.want {
				t.Errorf("ToPostfix(%q) = %q, want %q", tt.infix, String(got), tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	g, err := Build(toks("ab*c+"))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got, want := g.String(), "OR(AND(a, b), c)"; got != want {
		t.Errorf("Build() = %s, want %s", got, want)
	}
	if got, want := g.Name(), "ab+c"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		postfix []Token
		code    errors.Code
	}{
		{"empty", nil, errors.ErrCodeEmptyExpression},
		{"or missing operand", toks("a+"), errors.ErrCodeInsufficientOperands},
		{"not alone", toks("'"), errors.ErrCodeInsufficientOperands},
		{"disconnected", toks("ab"), errors.ErrCodeMalformedExpression},
		{"grouping in postfix", toks("a("), errors.ErrCodeMalformedExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.postfix)
			if g != nil {
				t.Errorf("Build() returned partial tree %s", g)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
		name  string
	}{
		{"ab", "AND(a, b)", "ab"},
		{"a+b", "OR(a, b)", "a+b"},
		{"a'", "NOT(a)", "a'"},
		{"a+bc", "OR(a, AND(b, c))", "a+bc"},
		{"(a+b)c", "AND(OR(a, b), c)", "a+bc"},
		{"a'b", "AND(NOT(a), b)", "a'b"},
		{"(ab)'", "NOT(AND(a, b))", "ab'"},
		{"abc", "AND(AND(a, b), c)", "abc"},
		{"a+b+c", "OR(OR(a, b), c)", "a+b+c"},
		{" a + b ", "OR(a, b)", "a+b"},
		{"((a))", "a", "a"},
		{"a''", "NOT(NOT(a))", "a''"},
		{"aa", "AND(a, a)", "aa"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			g, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got := g.String(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
			if got := g.Name(); got != tt.name {
				t.Errorf("Parse(%q).Name() = %q, want %q", tt.input, got, tt.name)
			}
		})
	}
}

func TestParseGroupProducts(t *testing.T) {
	g, err := Parse("(a+b)(c+d)", WithGroupProducts())
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got, want := g.String(), "AND(OR(a, b), OR(c, d))"; got != want {
		t.Errorf("Parse() = %s, want %s", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		code  errors.Code
		pos   int
	}{
		{"", errors.ErrCodeEmptyExpression, 0},
		{"   ", errors.ErrCodeEmptyExpression, 0},
		{"(a", errors.ErrCodeUnmatchedParen, 1},
		{"((a)", errors.ErrCodeUnmatchedParen, 1},
		{"a)", errors.ErrCodeUnmatchedParen, 2},
		{"a+b)", errors.ErrCodeUnmatchedParen, 4},
		{"a++b", errors.ErrCodeMalformedExpression, 3},
		{"+a", errors.ErrCodeMalformedExpression, 1},
		{"a+", errors.ErrCodeMalformedExpression, 2},
		{"()", errors.ErrCodeMalformedExpression, 2},
		{"(a+)", errors.ErrCodeMalformedExpression, 4},
		{"'a", errors.ErrCodeMalformedExpression, 1},
		{"(a)(b)", errors.ErrCodeMalformedExpression, 4},
		{"a(+b)", errors.ErrCodeMalformedExpression, 3},
		{"a+1", errors.ErrCodeMalformedExpression, 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			g, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) = %s, want error", tt.input, g)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse(%q) code = %v, want %v (%v)", tt.input, errors.GetCode(err), tt.code, err)
			}
			if got := errors.Position(err); got != tt.pos {
				t.Errorf("Parse(%q) position = %d, want %d", tt.input, got, tt.pos)
			}
			if !errors.IsParseError(err) {
				t.Errorf("IsParseError(%v) = false", err)
			}
		})
	}
}

// For sums and products of plain variables every operator becomes one gate
// and every variable occurrence one leaf.
func TestParseCountsOperatorsAndLeaves(t *testing.T) {
	inputs := []string{"a", "ab", "a+b", "abc", "a+b+c+d", "ab+cd", "a+bcd+e", "aab+a"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			c, err := Compile(in)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", in, err)
			}
			norm := c.NormalizedString()
			ops := strings.Count(norm, "*") + strings.Count(norm, "+")
			operands := len(norm) - ops

			leaves := len(c.Tree.Leaves())
			if leaves != operands {
				t.Errorf("leaves = %d, want %d", leaves, operands)
			}
			if gates := c.Tree.Count() - leaves; gates != ops {
				t.Errorf("operator gates = %d, want %d", gates, ops)
			}
		})
	}
}

// A chain of one operator is left-deep: each application adds a level.
func TestParseChainDepth(t *testing.T) {
	for _, in := range []string{"abcd", "a+b+c+d", "abcdefg"} {
		g, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", in, err)
		}
		ops := len(in) - 1
		if in[1] == '+' {
			ops = strings.Count(in, "+")
		}
		if g.Depth()-1 != ops {
			t.Errorf("Parse(%q).Depth() = %d, want %d", in, g.Depth(), ops+1)
		}
	}
}

func TestCompileStrings(t *testing.T) {
	c, err := Compile("a'(b+c)", WithGroupProducts())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if got := c.NormalizedString(); got != "a'*(b+c)" {
		t.Errorf("NormalizedString() = %q", got)
	}
	if got := c.PostfixString(); got != "a'bc+*" {
		t.Errorf("PostfixString() = %q", got)
	}
	if c.Tree.Type() != gate.And {
		t.Errorf("root type = %v, want AND", c.Tree.Type())
	}
}
