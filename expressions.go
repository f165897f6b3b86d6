package arbor

import (
	"github.com/arborsql/arbor/internal/ast"
	"github.com/arborsql/arbor/internal/render"
)

// Val creates an untyped bound value.
func Val(payload interface{}) Expression { return ast.NewValue(payload) }

// TypedVal creates a bound value carrying an explicit type hint consulted
// by the Converter (e.g. "json", "uuid", "blob").
func TypedVal(payload interface{}, typ string) Expression { return ast.NewTypedValue(payload, typ) }

// Null is the shared NULL literal.
var Null = ast.Null

// Row builds a parenthesized, comma-separated tuple.
func Row(values ...Expression) Expression { return ast.NewRow(values...) }

// Array builds an ARRAY[...] literal of the given element type.
func Array(elemType string, cast bool, values ...Expression) Expression {
	return ast.NewArrayValue(elemType, cast, values...)
}

// Ident builds a bare identifier, optionally namespaced.
func Ident(name string, namespace ...string) Expression {
	return ast.NewIdentifier(name, namespace...)
}

// Col builds a column reference. name == "*" renders unquoted.
func Col(name string, namespace ...string) ast.ColumnName {
	return ast.NewColumnName(name, namespace...)
}

// Tbl builds a table reference, optionally schema-namespaced.
func Tbl(name string, namespace ...string) ast.TableName {
	return ast.NewTableName(name, namespace...)
}

// Raw builds an escape-hatch SQL fragment with positional placeholders.
func Raw(template string, args ...interface{}) Expression { return ast.NewRaw(template, args...) }

// RawQuery builds a Raw fragment flagged as a full statement, always
// parenthesized in a value position.
func RawQuery(template string, args ...interface{}) Expression {
	return ast.NewRawQuery(template, args...)
}

// As wraps inner with a rendering alias.
func As(inner Expression, alias string) Expression { return ast.NewAliased(inner, alias) }

// Cmp builds a binary comparison.
func Cmp(left Expression, operator string, right Expression) Expression {
	return ast.NewComparison(left, operator, right)
}

// Between builds a "column between from and to" predicate.
func Between(column, from, to Expression) Expression { return ast.NewBetween(column, from, to) }

// Not negates inner.
func Not(inner Expression) Expression { return ast.NewNot(inner) }

// When builds a single WHEN/THEN clause for use with Case.
func When(condition, then Expression) ast.IfThen { return ast.NewIfThen(condition, then) }

// Case builds a CASE expression from one or more WHEN clauses; chain
// .Else(...) on the result to add a default branch.
func Case(cases ...ast.IfThen) CaseWhenExpr { return CaseWhenExpr{ast.NewCaseWhen(cases...)} }

// CaseWhenExpr wraps ast.CaseWhen to expose a fluent Else method without
// letting callers reach into internal/ast directly.
type CaseWhenExpr struct{ ast.CaseWhen }

// Else returns a copy of c with the else branch set.
func (c CaseWhenExpr) Else(e Expression) CaseWhenExpr { return CaseWhenExpr{c.CaseWhen.WithElse(e)} }

// Render implements render.CustomExpression by formatting the wrapped
// ast.CaseWhen.
func (c CaseWhenExpr) Render(w *Writer, ctx *render.WriterContext) (string, error) {
	return w.Format(c.CaseWhen, ctx, false)
}

// Concat joins its arguments with the dialect's string-concatenation
// operator.
func Concat(args ...Expression) Expression { return ast.NewConcat(args...) }

// Cast renders "cast(inner as typ)".
func Cast(inner Expression, typ string) Expression { return ast.NewCast(inner, typ) }

// Func builds a bare function call.
func Func(name string, args ...Expression) Expression { return ast.NewFunctionCall(name, args...) }

// Agg builds an aggregate function call over column (nil for COUNT(*));
// chain .Filter(where)/.Over(window) for FILTER/OVER clauses.
func Agg(function string, column Expression) AggregateExpr {
	return AggregateExpr{ast.NewAggregate(function, column)}
}

// AggregateExpr wraps ast.Aggregate to expose fluent Filter/Over methods.
type AggregateExpr struct{ ast.Aggregate }

// Filter returns a copy of a with the FILTER (WHERE ...) clause set.
func (a AggregateExpr) Filter(where ast.Where) AggregateExpr {
	return AggregateExpr{a.Aggregate.WithFilter(where)}
}

// Over returns a copy of a with the OVER window clause set.
func (a AggregateExpr) Over(win ast.Window) AggregateExpr {
	return AggregateExpr{a.Aggregate.WithOver(win)}
}

// Render implements render.CustomExpression by formatting the wrapped
// ast.Aggregate.
func (a AggregateExpr) Render(w *Writer, ctx *render.WriterContext) (string, error) {
	return w.Format(a.Aggregate, ctx, false)
}

// MakeWindow builds a window specification for use inline via Over or
// declared once in a named WINDOW clause.
func MakeWindow(partitionBy []Expression, orderBy []ast.OrderByStatement) ast.Window {
	return ast.NewWindow(partitionBy, orderBy)
}

// Asc builds an ascending ORDER BY item.
func Asc(column Expression) ast.OrderByStatement { return ast.NewOrderByStatement(column, "asc") }

// Desc builds a descending ORDER BY item.
func Desc(column Expression) ast.OrderByStatement { return ast.NewOrderByStatement(column, "desc") }

// Now renders the dialect's current-timestamp token.
var Now Expression = ast.CurrentTimestamp{}

// Rand renders the dialect's random() call.
var Rand Expression = ast.Random{}

// RandomInt renders an integer random value in [min, max].
func RandomInt(min, max Expression) Expression { return ast.NewRandomInt(min, max) }

// Like builds a LIKE predicate, substituting an escaped value into
// template (e.g. "%?%").
func Like(column, raw Expression, template string, reserved ...rune) Expression {
	return ast.NewLikePattern(column, raw, template, reserved...)
}

// SimilarTo builds a SIMILAR TO / regex-flavored predicate.
func SimilarTo(column, raw Expression, template string, caseSensitive, regex bool, reserved ...rune) Expression {
	return ast.NewSimilarToPattern(column, raw, template, caseSensitive, regex, reserved...)
}

// ConstTable builds a standalone "values (...), (...)" expression.
func ConstTable(rows ...ast.Row) ast.ConstantTable { return ast.NewConstantTable(rows...) }

// And builds a Where group joined by AND. A Where passed directly to
// Builder.Where already behaves this way; And is for composing nested
// groups inside a larger condition.
func And(conditions ...Expression) ast.Where { return ast.NewWhere("and", conditions...) }

// Or builds a Where group joined by OR.
func Or(conditions ...Expression) ast.Where { return ast.NewWhere("or", conditions...) }

// With builds a single CTE entry for use with Builder.With.
func With(alias string, expr Expression, columns ...string) ast.WithStatement {
	return ast.NewWithStatement(alias, expr, columns...)
}

// SelectCol builds a single projected item for use with Builder.Columns.
func SelectCol(expr Expression, alias ...string) ast.SelectColumn {
	return ast.NewSelectColumn(expr, alias...)
}
