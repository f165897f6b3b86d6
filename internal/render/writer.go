// Package render implements the dialect-neutral core of the query
// builder: the recursive Format dispatch, the clause-level renderers for
// every statement kind, the raw-placeholder parser, and the argument-bag
// bookkeeping threaded through a single Prepare call. Dialect packages
// (postgres, mysql, mariadb, sqlite, mssql) supply a DialectOps value that
// customizes the handful of hooks documented in capabilities.go; this
// package never imports any of them.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arborsql/arbor/internal/ast"
)

// QueryOptions carries the pagination window of the query a SqlString was
// produced from, when the root expression was a Select. Kept separate from
// SqlString's SQL text/arguments so a caller can inspect it without
// re-parsing the rendered string.
type QueryOptions struct {
	Limit  *int
	Offset *int
}

// SqlString is the result of a Prepare call: rendered SQL text paired with
// its bound-argument bag.
type SqlString struct {
	Text       string
	Arguments  *ArgumentBag
	Identifier string
	Options    *QueryOptions
}

// Writer formats an expression tree into dialect-specific SQL. It is
// stateless and safe for concurrent use by multiple Prepare calls, each of
// which builds its own WriterContext.
type Writer struct {
	Ops DialectOps
	raw *rawPlaceholderParser
}

// NewWriter builds a Writer from a fully-populated DialectOps, filling in
// standard defaults for any hook left nil.
func NewWriter(ops DialectOps) *Writer {
	ops = withDefaults(ops)
	return &Writer{Ops: ops, raw: newRawPlaceholderParser(ops.Escaper.EscapeSequences())}
}

func withDefaults(ops DialectOps) DialectOps {
	if ops.FormatCurrentTimestamp == nil {
		ops.FormatCurrentTimestamp = func() string { return "current_timestamp" }
	}
	if ops.FormatInsertDefaultValues == nil {
		ops.FormatInsertDefaultValues = func() string { return "default values" }
	}
	if ops.FormatLimitOffset == nil {
		ops.FormatLimitOffset = standardLimitOffset
	}
	if ops.FormatConstantTableRow == nil {
		ops.FormatConstantTableRow = func(rendered string) string { return rendered }
	}
	if ops.FormatCast == nil {
		ops.FormatCast = func(inner, typ string) string { return "cast(" + inner + " as " + typ + ")" }
	}
	if ops.RandomFunc == nil {
		ops.RandomFunc = func() string { return "random()" }
	}
	if ops.RandomIntExpr == nil {
		ops.RandomIntExpr = func(minSQL, maxSQL string) string {
			castMax := ops.FormatCast(maxSQL, "integer")
			return "floor(random() * (" + castMax + " - " + minSQL + " + 1) + " + minSQL + ")"
		}
	}
	if ops.FormatReturning == nil {
		ops.FormatReturning = func(cols []string, _ string) string {
			return "\nreturning " + strings.Join(cols, ", ")
		}
	}
	return ops
}

// standardLimitOffset implements spec.md's range rule: range(0,0) emits
// nothing, range(10,0) emits "limit 10", range(0,5) emits "offset 5",
// range(10,5) emits "limit 10 offset 5". A nil or zero value counts as
// absent.
func standardLimitOffset(limit, offset *int) string {
	if limit != nil && *limit == 0 {
		limit = nil
	}
	if offset != nil && *offset == 0 {
		offset = nil
	}
	switch {
	case limit != nil && offset != nil:
		return "limit " + strconv.Itoa(*limit) + " offset " + strconv.Itoa(*offset)
	case limit != nil:
		return "limit " + strconv.Itoa(*limit)
	case offset != nil:
		return "offset " + strconv.Itoa(*offset)
	default:
		return ""
	}
}

// Prepare accepts a string (promoted to a Raw expression), an
// ast.Expression, or an already-prepared *SqlString (returned unchanged),
// and renders it into a fresh SqlString.
func (w *Writer) Prepare(input interface{}, converter Converter) (*SqlString, error) {
	if sq, ok := input.(*SqlString); ok {
		return sq, nil
	}

	var expr ast.Expression
	switch v := input.(type) {
	case string:
		expr = ast.NewRaw(v)
	case ast.Expression:
		expr = v
	default:
		return nil, NewQueryBuilderError("prepare", fmt.Sprintf("unsupported input type %T", input))
	}

	ctx := NewWriterContext(converter)
	text, err := w.Format(expr, ctx, false)
	if err != nil {
		return nil, err
	}

	result := &SqlString{Text: text, Arguments: ctx.Args}
	if sel, ok := expr.(*ast.Select); ok {
		result.Options = &QueryOptions{Limit: sel.Limit, Offset: sel.Offset}
	}
	return result, nil
}

// needsParens reports whether expr belongs to the class of node that is
// wrapped in parentheses when a caller enforces it.
func needsParens(expr ast.Expression) bool {
	switch expr.(type) {
	case ast.ConstantTable, ast.RawQuery, *ast.Select, ast.Where:
		return true
	}
	return false
}

// FormatParen formats expr and, if enforce is true and expr belongs to the
// enforced-parenthesization class, wraps the result in parentheses. This
// is the helper used at every "value position" call site (row elements,
// function/aggregate arguments, comparison operands, Aliased's inner).
func (w *Writer) FormatParen(expr ast.Expression, ctx *WriterContext, enforce bool) (string, error) {
	s, err := w.Format(expr, ctx, enforce)
	if err != nil {
		return "", err
	}
	if enforce && needsParens(expr) {
		return "(" + s + ")", nil
	}
	return s, nil
}

// sub is shorthand for the common case: format a sub-expression with
// enforced parenthesization.
func (w *Writer) sub(expr ast.Expression, ctx *WriterContext) (string, error) {
	return w.FormatParen(expr, ctx, true)
}

func (w *Writer) subList(exprs []ast.Expression, ctx *WriterContext) ([]string, error) {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		s, err := w.sub(e, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Format is the writer's single recursive dispatch point: a closed match
// over the known Expression variants, falling back to two last-resort
// checks (FunctionCall, Comparison, covering user subclasses in the
// language this was ported from) and then a Custom escape-hatch variant
// before failing with UnsupportedExpressionError.
func (w *Writer) Format(expr ast.Expression, ctx *WriterContext, enforceParens bool) (string, error) {
	esc := w.Ops.Escaper

	switch v := expr.(type) {
	case nil:
		return "null", nil
	case ast.NullValue:
		return "null", nil
	case ast.Value:
		if v.Type == "blob" {
			if b, ok := v.Payload.([]byte); ok {
				return esc.EscapeBlob(b), nil
			}
		}
		return ctx.BindValue(esc, v.Payload, v.Type), nil
	case ast.Row:
		return w.formatRow(v, ctx)
	case ast.ArrayValue:
		return w.formatArrayValue(v, ctx)
	case ast.Identifier:
		return escapeQualified(esc, v.Namespace, v.Name), nil
	case ast.ColumnName:
		return w.formatColumnName(v), nil
	case ast.TableName:
		return escapeQualified(esc, v.Namespace, v.Name), nil
	case ast.Raw:
		return w.raw.Parse(ctx, esc, v.Template, v.Args, func(e ast.Expression, c *WriterContext) (string, error) {
			return w.Format(e, c, false)
		})
	case ast.RawQuery:
		return w.raw.Parse(ctx, esc, v.Template, v.Args, func(e ast.Expression, c *WriterContext) (string, error) {
			return w.Format(e, c, false)
		})
	case ast.Aliased:
		return w.formatAliased(v, ctx)
	case ast.Comparison:
		return w.formatComparison(v, ctx)
	case ast.Between:
		return w.formatBetween(v, ctx)
	case ast.Not:
		inner, err := w.Format(v.Inner, ctx, false)
		if err != nil {
			return "", err
		}
		return "not (" + inner + ")", nil
	case ast.CaseWhen:
		return w.formatCaseWhen(v, ctx)
	case ast.IfThen:
		return w.Format(ast.NewCaseWhen(v), ctx, enforceParens)
	case ast.Concat:
		return w.formatConcat(v, ctx)
	case ast.Cast:
		inner, err := w.sub(v.Inner, ctx)
		if err != nil {
			return "", err
		}
		return w.Ops.FormatCast(inner, v.Type), nil
	case ast.FunctionCall:
		return w.formatFunctionCall(v, ctx)
	case ast.Aggregate:
		return w.formatAggregate(v, ctx)
	case ast.Window:
		return w.formatWindow(v, ctx)
	case ast.CurrentTimestamp:
		return w.Ops.FormatCurrentTimestamp(), nil
	case ast.Random:
		return w.Ops.RandomFunc(), nil
	case ast.RandomInt:
		return w.formatRandomInt(v, ctx)
	case ast.LikePattern:
		return w.formatLikePattern(v, ctx)
	case ast.SimilarToPattern:
		return w.formatSimilarToPattern(v, ctx)
	case ast.ConstantTable:
		return w.formatConstantTable(v, ctx)
	case ast.Where:
		return w.formatWhere(v, ctx)
	case *ast.Select:
		return w.formatSelect(v, ctx)
	case *ast.Insert:
		return w.formatInsert(v, ctx)
	case *ast.Update:
		return w.formatUpdate(v, ctx)
	case *ast.Delete:
		return w.formatDelete(v, ctx)
	case *ast.Merge:
		return w.formatMerge(v, ctx)
	}

	// Last-resort checks for expression classes defined outside this
	// package (the "Custom" escape hatch, design note §9): an Expression
	// that also implements one of these small rendering interfaces is
	// honored even though its concrete type wasn't in the switch above.
	if fc, ok := expr.(interface{ AsFunctionCall() ast.FunctionCall }); ok {
		return w.formatFunctionCall(fc.AsFunctionCall(), ctx)
	}
	if cmp, ok := expr.(interface{ AsComparison() ast.Comparison }); ok {
		return w.formatComparison(cmp.AsComparison(), ctx)
	}
	if custom, ok := expr.(CustomExpression); ok {
		return custom.Render(w, ctx)
	}

	return "", NewUnsupportedExpressionError(fmt.Sprintf("%T", expr))
}

// CustomExpression is the escape hatch for expression classes defined
// outside this module: anything implementing it renders itself, given the
// Writer (to recurse via FormatParen) and the active WriterContext.
type CustomExpression interface {
	ast.Expression
	Render(w *Writer, ctx *WriterContext) (string, error)
}

func escapeQualified(esc Escaper, namespace, name string) string {
	if namespace == "" {
		return esc.EscapeIdentifier(name)
	}
	return esc.EscapeIdentifier(namespace) + "." + esc.EscapeIdentifier(name)
}

func (w *Writer) formatColumnName(v ast.ColumnName) string {
	esc := w.Ops.Escaper
	if v.Name == "*" {
		if v.Namespace != "" {
			return esc.EscapeIdentifier(v.Namespace) + ".*"
		}
		return "*"
	}
	return escapeQualified(esc, v.Namespace, v.Name)
}

func (w *Writer) formatRow(v ast.Row, ctx *WriterContext) (string, error) {
	parts, err := w.subList(v.Values, ctx)
	if err != nil {
		return "", err
	}
	rendered := "(" + strings.Join(parts, ", ") + ")"
	if v.Cast != "" {
		return w.Ops.FormatCast(rendered, v.Cast), nil
	}
	return rendered, nil
}

func (w *Writer) formatArrayValue(v ast.ArrayValue, ctx *WriterContext) (string, error) {
	parts, err := w.subList(v.Values, ctx)
	if err != nil {
		return "", err
	}
	rendered := "array[" + strings.Join(parts, ", ") + "]"
	if v.CastArray {
		return w.Ops.FormatCast(rendered, v.ElemType+"[]"), nil
	}
	return rendered, nil
}

func (w *Writer) formatAliased(v ast.Aliased, ctx *WriterContext) (string, error) {
	inner, err := w.sub(v.Inner, ctx)
	if err != nil {
		return "", err
	}
	if ct, ok := v.Inner.(ast.ConstantTable); ok && len(ct.Columns) > 0 {
		names := make([]string, len(ct.Columns))
		copy(names, ct.Columns)
		inner += " (" + w.Ops.Escaper.EscapeIdentifierList(names) + ")"
	}

	alias := v.Alias
	if alias == "" || isNumeric(alias) || alias == inner {
		return inner, nil
	}
	return inner + " as " + w.Ops.Escaper.EscapeIdentifier(alias), nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func (w *Writer) formatComparison(v ast.Comparison, ctx *WriterContext) (string, error) {
	var parts []string
	if v.Left != nil {
		s, err := w.Format(v.Left, ctx, false)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	if v.Operator != "" {
		parts = append(parts, v.Operator)
	}
	if v.Right != nil {
		s, err := w.sub(v.Right, ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " "), nil
}

func (w *Writer) formatBetween(v ast.Between, ctx *WriterContext) (string, error) {
	col, err := w.Format(v.Column, ctx, false)
	if err != nil {
		return "", err
	}
	from, err := w.sub(v.From, ctx)
	if err != nil {
		return "", err
	}
	to, err := w.sub(v.To, ctx)
	if err != nil {
		return "", err
	}
	return col + " between " + from + " and " + to, nil
}

func (w *Writer) formatCaseWhen(v ast.CaseWhen, ctx *WriterContext) (string, error) {
	if len(v.Cases) == 0 {
		if v.Else == nil {
			return "null", nil
		}
		return w.sub(v.Else, ctx)
	}

	var b strings.Builder
	b.WriteString("case")
	for _, c := range v.Cases {
		cond, err := w.Format(c.Condition, ctx, false)
		if err != nil {
			return "", err
		}
		then, err := w.sub(c.Then, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(" when ")
		b.WriteString(cond)
		b.WriteString(" then ")
		b.WriteString(then)
	}
	if v.Else != nil {
		elseSQL, err := w.sub(v.Else, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(" else ")
		b.WriteString(elseSQL)
	}
	b.WriteString(" end")
	return b.String(), nil
}

func (w *Writer) formatConcat(v ast.Concat, ctx *WriterContext) (string, error) {
	parts, err := w.subList(v.Args, ctx)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, " || "), nil
}

func isAlphanumericName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_') {
			return false
		}
	}
	return true
}

func (w *Writer) formatFunctionCall(v ast.FunctionCall, ctx *WriterContext) (string, error) {
	name := v.Name
	if !isAlphanumericName(name) {
		name = w.Ops.Escaper.EscapeIdentifier(name)
	}
	args, err := w.subList(v.Args, ctx)
	if err != nil {
		return "", err
	}
	return name + "(" + strings.Join(args, ", ") + ")", nil
}

func (w *Writer) formatRandomInt(v ast.RandomInt, ctx *WriterContext) (string, error) {
	minSQL, err := w.sub(v.Min, ctx)
	if err != nil {
		return "", err
	}
	maxSQL, err := w.sub(v.Max, ctx)
	if err != nil {
		return "", err
	}
	return w.Ops.RandomIntExpr(minSQL, maxSQL), nil
}

func (w *Writer) formatConstantTable(v ast.ConstantTable, ctx *WriterContext) (string, error) {
	rows := make([]string, len(v.Rows))
	for i, row := range v.Rows {
		s, err := w.formatRow(row, ctx)
		if err != nil {
			return "", err
		}
		rows[i] = w.Ops.FormatConstantTableRow(s)
	}
	return "values " + strings.Join(rows, "\n,"), nil
}
