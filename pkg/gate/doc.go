// Package gate provides the immutable logic-gate tree produced by the
// expression compiler, together with the layout queries a circuit renderer
// consumes.
//
// # Overview
//
// A [Gate] is either an INPUT leaf named after a variable or an operator
// (AND, OR, NOT) that exclusively owns its ordered inputs. Trees never share
// subtrees and are read-only once built, so any number of goroutines may
// query the same tree concurrently.
//
// Gate types form a closed set. Arity, display glyph and operator rune come
// from a lookup table rather than per-type behavior:
//
//	Type   Arity  Glyph  Operator
//	AND    2+     ""     '*'
//	OR     2+     "+"    '+'
//	NOT    1      "'"    '\''
//	INPUT  0
//
// # Building Trees
//
// Trees are normally produced by the expr package. They can also be built by
// hand:
//
//	a, b := gate.NewInput("a"), gate.NewInput("b")
//	and, _ := gate.New(gate.And, a, b)      // name "ab"
//	not, _ := gate.New(gate.Not, and)       // name "ab'"
//
// # Layout Queries
//
// Layout is derived on demand and never stored:
//
//   - [Gate.Depth]: longest root-to-leaf path, counted in gates
//   - [Gate.ColumnSizes]: gates per breadth-first level, leaf-most first
//   - [Gate.ChildYOffset]: vertical origin of an input relative to its parent
//   - [Gate.MinY], [Gate.MaxY]: vertical extent of a subtree
//   - [Gate.Width], [Gate.Height]: dimensions of the drawn image
//
// Vertical spread is scaled by the placed gate's widest column times
// [Step]. It is a coarse heuristic rather than an optimal tree drawing, and
// the arithmetic is kept bit-for-bit stable so diagrams stay reproducible.
// Coordinates are unsigned 32-bit values; the seed origin 2^depth*50 keeps
// intermediate offsets non-negative. Trees deeper than [MaxDepth] overflow
// that space, so callers bound depth before laying out.
package gate
