package render

import "github.com/arborsql/arbor/internal/ast"

// Converter bridges native Go values and the expression tree / bound-value
// representation used by the writer. It is long-lived and shared across
// renders; a single render only ever calls its two methods.
type Converter interface {
	// ToExpression is used while parsing a Raw template's placeholders.
	// If value is nil, the result is ast.Null. If value already
	// implements ast.Expression, it passes through unchanged. Otherwise
	// the type hint (if any) selects the expression constructor; an
	// absent hint yields an untyped ast.Value.
	ToExpression(value interface{}, typeHint string) (ast.Expression, error)

	// ToSQL is used when an ArgumentBag is drained for execution. If typ
	// is empty, the native Go type of value drives inference.
	ToSQL(value interface{}, typ string) (interface{}, error)
}

// WriterContext is the per-render scratch threaded through every Format
// call: it carries the ArgumentBag being filled and a reference to the
// shared Converter. It is created fresh by Writer.Prepare and discarded
// once the SqlString is produced.
type WriterContext struct {
	Args      *ArgumentBag
	Converter Converter
	depth     int
}

// NewWriterContext creates a WriterContext bound to converter.
func NewWriterContext(converter Converter) *WriterContext {
	return &WriterContext{Args: &ArgumentBag{}, Converter: converter}
}

// BindValue appends value (with optional type) to the argument bag and
// returns the dialect placeholder token for it, using esc to render the
// token for the assigned index.
func (c *WriterContext) BindValue(esc Escaper, value interface{}, typ string) string {
	idx := c.Args.Append(value, typ)
	return esc.WritePlaceholder(idx)
}

// depthGuard bounds recursive subquery nesting; MaxDepth mirrors the
// teacher's MaxSubqueryDepth guard against pathological trees.
const MaxDepth = 16

// EnterSubquery returns a child context sharing the same argument bag and
// converter but with an incremented depth counter, erroring if MaxDepth is
// exceeded.
func (c *WriterContext) EnterSubquery() (*WriterContext, error) {
	if c.depth >= MaxDepth {
		return nil, NewQueryBuilderError("subquery", "maximum nesting depth exceeded")
	}
	return &WriterContext{Args: c.Args, Converter: c.Converter, depth: c.depth + 1}, nil
}
