// Package expr compiles boolean-algebra text into gate trees.
//
// # Syntax
//
// Variables are single letters. Operators, from loosest to tightest:
//
//	a+b    OR
//	ab     AND by juxtaposition (a*b is also accepted)
//	a'     NOT, postfix
//	(a+b)  grouping
//
// Whitespace carries no meaning. "a+bc" is OR(a, AND(b, c)) and "a'b" is
// AND(NOT(a), b).
//
// # Stages
//
// [Parse] and [Compile] chain four stages, each usable on its own:
//
//  1. [Lex] classifies characters and records their columns
//  2. [Normalize] makes implicit ANDs explicit
//  3. [ToPostfix] reorders tokens with the shunting-yard algorithm
//  4. [Build] assembles the [gate.Gate] tree from postfix
//
// Failures are *errors.Error values with one of the parse codes
// EMPTY_EXPRESSION, UNMATCHED_PARENTHESIS, INSUFFICIENT_OPERANDS or
// MALFORMED_EXPRESSION, and carry the column of the offending character when
// one exists:
//
//	_, err := expr.Parse("(a+b")
//	errors.GetCode(err)  // UNMATCHED_PARENTHESIS
//	errors.Position(err) // 1
//
// By default two adjacent groups are not multiplied: "(a)(b)" is rejected.
// [WithGroupProducts] enables that form.
package expr
