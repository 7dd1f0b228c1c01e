package expr

import (
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/gatesketch/pkg/errors"
)

// exprLexer splits raw text into single-rune tokens. Rules are tried in
// order; Invalid catches anything that is neither a letter, an operator nor
// whitespace so the error can point at it.
var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Operand", Pattern: `\p{L}`},
	{Name: "Operator", Pattern: `[*+'()]`},
	{Name: "Whitespace", Pattern: `[\s\p{Z}]+`},
	{Name: "Invalid", Pattern: `.`},
})

var (
	operandType  = exprLexer.Symbols()["Operand"]
	operatorType = exprLexer.Symbols()["Operator"]
	spaceType    = exprLexer.Symbols()["Whitespace"]
)

// Lex classifies every non-whitespace character of input. Whitespace is
// dropped; its columns still count toward Pos. Characters that are neither
// single letters nor operators fail with MALFORMED_EXPRESSION at their
// column. An input with no tokens yields an empty slice and no error.
func Lex(input string) ([]Token, error) {
	lex, err := exprLexer.LexString("", input)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedExpression, err, "cannot tokenize expression")
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		if lerr, ok := err.(*lexer.Error); ok {
			return nil, errors.At(errors.ErrCodeMalformedExpression, lerr.Pos.Column, "%s", lerr.Msg)
		}
		return nil, errors.Wrap(errors.ErrCodeMalformedExpression, err, "cannot tokenize expression")
	}

	tokens := make([]Token, 0, len(raw))
	for _, t := range raw {
		switch t.Type {
		case lexer.EOF, spaceType:
			continue
		case operandType:
			r, _ := utf8.DecodeRuneInString(t.Value)
			tokens = append(tokens, Token{Char: r, Kind: Operand, Pos: t.Pos.Column})
		case operatorType:
			r, _ := utf8.DecodeRuneInString(t.Value)
			tokens = append(tokens, Token{Char: r, Kind: Operator, Pos: t.Pos.Column})
		default:
			return nil, errors.At(errors.ErrCodeMalformedExpression, t.Pos.Column,
				"unexpected character %q: variables are single letters", t.Value)
		}
	}
	return tokens, nil
}
