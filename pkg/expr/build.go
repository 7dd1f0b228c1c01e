package expr

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/matzehuels/gatesketch/pkg/errors"
	"github.com/matzehuels/gatesketch/pkg/gate"
)

// Build assembles a gate tree from postfix tokens.
//
// Operands push INPUT leaves. Operators pop as many subtrees as their arity
// (AND and OR two, NOT one) and push the combined gate with its inputs in
// left-to-right order. Exactly one tree must remain at the end. On failure
// no partial tree is returned.
func Build(postfix []Token) (*gate.Gate, error) {
	if len(postfix) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyExpression, "expression is empty")
	}

	stack := arraystack.New()
	for _, t := range postfix {
		if t.Kind == Operand {
			stack.Push(gate.NewInput(string(t.Char)))
			continue
		}

		typ, ok := gate.TypeForOperator(t.Char)
		if !ok {
			return nil, errors.At(errors.ErrCodeMalformedExpression, t.Pos,
				"operator %q has no arity", t.Char)
		}

		n := typ.Arity()
		if stack.Size() < n {
			return nil, errors.At(errors.ErrCodeInsufficientOperands, t.Pos,
				"%s needs %d operand(s), found %d", typ, n, stack.Size())
		}

		inputs := make([]*gate.Gate, n)
		for i := n - 1; i >= 0; i-- {
			v, _ := stack.Pop()
			inputs[i] = v.(*gate.Gate)
		}

		g, err := gate.New(typ, inputs...)
		if err != nil {
			return nil, err
		}
		stack.Push(g)
	}

	if stack.Size() != 1 {
		return nil, errors.New(errors.ErrCodeMalformedExpression,
			"expression forms %d disconnected parts", stack.Size())
	}
	v, _ := stack.Pop()
	return v.(*gate.Gate), nil
}
