package render

import (
	"strings"

	"github.com/arborsql/arbor/internal/ast"
)

// formatWindow renders a window specification's body, "(partition by ...
// order by ...)", used both inline in an Aggregate's OVER clause and in a
// named WINDOW list entry.
func (w *Writer) formatWindow(v ast.Window, ctx *WriterContext) (string, error) {
	var parts []string
	if len(v.PartitionBy) > 0 {
		cols, err := w.subList(v.PartitionBy, ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, "partition by "+strings.Join(cols, ", "))
	}
	if len(v.OrderBy) > 0 {
		ob, err := w.formatOrderByList(v.OrderBy, ctx)
		if err != nil {
			return "", err
		}
		parts = append(parts, "order by "+ob)
	}
	return "(" + strings.Join(parts, " ") + ")", nil
}

// formatAggregate renders a Aggregate function call, with FILTER rewritten
// to a CASE WHEN wrapper around the aggregated column when the dialect's
// Capabilities.FilterClause is false.
func (w *Writer) formatAggregate(v ast.Aggregate, ctx *WriterContext) (string, error) {
	column := v.Column
	if v.Filter != nil && !v.Filter.IsEmpty() && !w.Ops.Caps.FilterClause {
		if column == nil {
			column = ast.NewValue(1)
		}
		column = ast.NewCaseWhen(ast.NewIfThen(*v.Filter, column)).WithElse(ast.Null)
	}

	var colSQL string
	if column == nil {
		colSQL = "*"
	} else {
		s, err := w.sub(column, ctx)
		if err != nil {
			return "", err
		}
		colSQL = s
	}

	rendered := v.Function + "(" + colSQL + ")"

	if v.Filter != nil && !v.Filter.IsEmpty() && w.Ops.Caps.FilterClause {
		filterSQL, err := w.formatWhere(*v.Filter, ctx)
		if err != nil {
			return "", err
		}
		rendered += " filter (where " + filterSQL + ")"
	}

	if v.Over != nil {
		overSQL, err := w.formatWindow(*v.Over, ctx)
		if err != nil {
			return "", err
		}
		if v.Over.Alias != "" {
			rendered += " over " + w.Ops.Escaper.EscapeIdentifier(v.Over.Alias)
		} else {
			rendered += " over " + overSQL
		}
	}

	return rendered, nil
}
