package pipeline

import (
	"github.com/matzehuels/gatesketch/pkg/expr"
)

// Parse validates the raw expression and compiles it.
//
// Parse errors keep their code and column (see package errors), so callers
// can point at the offending character.
func Parse(opts Options) (*expr.Compiled, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}
	return expr.Compile(opts.Expression, opts.ExprOptions()...)
}
