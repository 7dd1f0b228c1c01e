package expr

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/matzehuels/gatesketch/pkg/errors"
)

// ref: https://en.wikipedia.org/wiki/Shunting-yard_algorithm

// ToPostfix converts a normalized infix token stream into postfix order
// using Dijkstra's shunting-yard algorithm.
//
// Operators of equal rank are popped before the new one is pushed, so AND
// and OR chains stay left-associative. Parentheses never appear in the
// output.
//
// The conversion tracks whether an operand is expected next. Operators with
// nothing to apply to ("a++b", "+a", "a+", "()", "'a") fail here with
// MALFORMED_EXPRESSION rather than leaving the builder to find a short
// stack. Unbalanced parentheses fail with UNMATCHED_PARENTHESIS.
func ToPostfix(tokens []Token) ([]Token, error) {
	if len(tokens) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyExpression, "expression is empty")
	}

	out := make([]Token, 0, len(tokens))
	ops := arraystack.New()
	expectOperand := true

	for _, t := range tokens {
		if t.Kind == Operand {
			if !expectOperand {
				return nil, errors.At(errors.ErrCodeMalformedExpression, t.Pos,
					"missing operator before %q", t.Char)
			}
			out = append(out, t)
			expectOperand = false
			continue
		}

		var err error
		switch t.Char {
		case OpOpen:
			if !expectOperand {
				return nil, errors.At(errors.ErrCodeMalformedExpression, t.Pos,
					"missing operator before '('")
			}
			ops.Push(t)

		case OpClose:
			if out, err = popGroup(out, ops, t); err != nil {
				return nil, err
			}
			if expectOperand {
				return nil, errors.At(errors.ErrCodeMalformedExpression, t.Pos,
					"missing operand before ')'")
			}

		case OpNot:
			if expectOperand {
				return nil, errors.At(errors.ErrCodeMalformedExpression, t.Pos,
					"NOT must follow a variable or a group")
			}
			out = popHigher(out, ops, t)
			ops.Push(t)

		case OpAnd, OpOr:
			if expectOperand {
				return nil, errors.At(errors.ErrCodeMalformedExpression, t.Pos,
					"operator %q is missing its left operand", t.Char)
			}
			out = popHigher(out, ops, t)
			ops.Push(t)
			expectOperand = true

		default:
			return nil, errors.At(errors.ErrCodeMalformedExpression, t.Pos,
				"unknown operator %q", t.Char)
		}
	}

	if expectOperand {
		last := tokens[len(tokens)-1]
		return nil, errors.At(errors.ErrCodeMalformedExpression, last.Pos,
			"expression ends with %q and is missing an operand", last.Char)
	}

	for !ops.Empty() {
		v, _ := ops.Pop()
		top := v.(Token)
		if top.Is(OpOpen) {
			return nil, errors.At(errors.ErrCodeUnmatchedParen, top.Pos, "no matching ')' for '('")
		}
		out = append(out, top)
	}
	return out, nil
}

// popGroup pops operators to out until the '(' matching closer is found and
// discarded.
func popGroup(out []Token, ops *arraystack.Stack, closer Token) ([]Token, error) {
	for {
		v, ok := ops.Pop()
		if !ok {
			return nil, errors.At(errors.ErrCodeUnmatchedParen, closer.Pos, "no matching '(' for ')'")
		}
		top := v.(Token)
		if top.Is(OpOpen) {
			return out, nil
		}
		out = append(out, top)
	}
}

// popHigher pops operators whose rank is at least t's to out, stopping at
// the innermost '('.
func popHigher(out []Token, ops *arraystack.Stack, t Token) []Token {
	rank := t.Precedence()
	for {
		v, ok := ops.Peek()
		if !ok {
			return out
		}
		top := v.(Token)
		if top.Is(OpOpen) || top.Precedence() < rank {
			return out
		}
		ops.Pop()
		out = append(out, top)
	}
}
