package render

import (
	"strings"

	"github.com/arborsql/arbor/internal/ast"
)

// formatWhere renders a Where group's conditions joined by its logical
// operator. A nested empty Where is skipped; a nested non-empty Where is
// wrapped in parentheses to preserve AND/OR precedence. An entirely empty
// group renders "1" (spec.md's "empty Where" law), matching every row.
func (w *Writer) formatWhere(wh ast.Where, ctx *WriterContext) (string, error) {
	if wh.IsEmpty() {
		return "1", nil
	}

	op := " and "
	if strings.EqualFold(wh.Operator, "or") {
		op = " or "
	}

	var parts []string
	for _, c := range wh.Conditions {
		if nested, ok := c.(ast.Where); ok {
			if nested.IsEmpty() {
				continue
			}
			s, err := w.formatWhere(nested, ctx)
			if err != nil {
				return "", err
			}
			parts = append(parts, "("+s+")")
			continue
		}
		s, err := w.Format(c, ctx, false)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return "1", nil
	}
	return strings.Join(parts, op), nil
}

func (w *Writer) formatOrderByList(items []ast.OrderByStatement, ctx *WriterContext) (string, error) {
	parts := make([]string, len(items))
	for i, o := range items {
		col, err := w.Format(o.Column, ctx, false)
		if err != nil {
			return "", err
		}
		part := col
		if o.Order != "" {
			part += " " + o.Order
		}
		switch o.Nulls {
		case "first":
			part += " nulls first"
		case "last":
			part += " nulls last"
		}
		parts[i] = part
	}
	return strings.Join(parts, ", "), nil
}

// formatWithList renders a statement's leading WITH clause, or "" when
// there are no entries.
func (w *Writer) formatWithList(with []ast.WithStatement, ctx *WriterContext) (string, error) {
	if len(with) == 0 {
		return "", nil
	}
	parts := make([]string, len(with))
	for i, cte := range with {
		body, err := w.Format(cte.Expr, ctx, false)
		if err != nil {
			return "", err
		}
		entry := w.Ops.Escaper.EscapeIdentifier(cte.Alias)
		if len(cte.Columns) > 0 {
			entry += " (" + w.Ops.Escaper.EscapeIdentifierList(cte.Columns) + ")"
		}
		entry += " as (" + body + ")"
		parts[i] = entry
	}
	return "with " + strings.Join(parts, ", ") + "\n", nil
}

// formatJoins renders a sequence of JoinStatements, used by Select as well
// as the joins that remain after UPDATE/DELETE's first-join promotion.
func (w *Writer) formatJoins(joins []ast.JoinStatement, ctx *WriterContext) (string, error) {
	var b strings.Builder
	for _, j := range joins {
		table, err := w.Format(j.Table, ctx, false)
		if err != nil {
			return "", err
		}
		b.WriteString("\n")
		b.WriteString(joinKeyword(j.Mode, j.Condition))
		b.WriteString(" ")
		b.WriteString(table)
		if j.Condition != nil {
			cond, err := w.Format(j.Condition, ctx, false)
			if err != nil {
				return "", err
			}
			b.WriteString(" on ")
			b.WriteString(cond)
		}
	}
	return b.String(), nil
}

func joinKeyword(mode string, condition ast.Expression) string {
	if condition == nil && mode != "natural" {
		return "cross join"
	}
	switch mode {
	case "left", "left_outer":
		return "left outer join"
	case "right", "right_outer":
		return "right outer join"
	case "natural":
		return "natural join"
	case "inner":
		return "inner join"
	default:
		return "join"
	}
}

func (w *Writer) formatProjection(cols []ast.SelectColumn, ctx *WriterContext) (string, error) {
	if len(cols) == 0 {
		return "*", nil
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		s, err := w.Format(c.Expr, ctx, false)
		if err != nil {
			return "", err
		}
		if c.Alias != "" && !isNumeric(c.Alias) && c.Alias != s {
			s += " as " + w.Ops.Escaper.EscapeIdentifier(c.Alias)
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

func (w *Writer) formatReturning(cols []ast.Expression, kind string, ctx *WriterContext) (string, error) {
	if len(cols) == 0 {
		return "", nil
	}
	if !w.Ops.Caps.Returning {
		return "", NewUnsupportedFeatureError(w.Ops.Name, "returning")
	}
	parts, err := w.subList(cols, ctx)
	if err != nil {
		return "", err
	}
	return w.Ops.FormatReturning(parts, kind), nil
}
