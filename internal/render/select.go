package render

import (
	"strings"

	"github.com/arborsql/arbor/internal/ast"
)

func (w *Writer) formatSelect(v *ast.Select, ctx *WriterContext) (string, error) {
	var b strings.Builder

	withSQL, err := w.formatWithList(v.With, ctx)
	if err != nil {
		return "", err
	}
	b.WriteString(withSQL)

	b.WriteString("select ")
	if v.Distinct {
		b.WriteString("distinct ")
	}

	projection, err := w.formatProjection(v.Columns, ctx)
	if err != nil {
		return "", err
	}
	b.WriteString(projection)

	if v.From != nil {
		fromSQL, err := w.sub(v.From, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString("\nfrom ")
		b.WriteString(fromSQL)
	}

	joinSQL, err := w.formatJoins(v.Joins, ctx)
	if err != nil {
		return "", err
	}
	b.WriteString(joinSQL)

	if v.Where != nil && !v.Where.IsEmpty() {
		whereSQL, err := w.formatWhere(*v.Where, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString("\nwhere ")
		b.WriteString(whereSQL)
	}

	if len(v.GroupBy) > 0 {
		cols, err := w.subList(v.GroupBy, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString("\ngroup by ")
		b.WriteString(strings.Join(cols, ", "))
	}

	if v.Having != nil && !v.Having.IsEmpty() {
		havingSQL, err := w.formatWhere(*v.Having, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString("\nhaving ")
		b.WriteString(havingSQL)
	}

	if len(v.Windows) > 0 {
		parts := make([]string, len(v.Windows))
		for i, win := range v.Windows {
			spec, ok := win.Expr.(ast.Window)
			if !ok {
				return "", NewQueryBuilderError("select", "windows entry is not a Window expression")
			}
			body, err := w.formatWindow(spec, ctx)
			if err != nil {
				return "", err
			}
			parts[i] = w.Ops.Escaper.EscapeIdentifier(win.Alias) + " as " + body
		}
		b.WriteString("\nwindow ")
		b.WriteString(strings.Join(parts, ", "))
	}

	if len(v.OrderBy) > 0 {
		ob, err := w.formatOrderByList(v.OrderBy, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString("\norder by ")
		b.WriteString(ob)
	}

	if limitOffset := w.Ops.FormatLimitOffset(v.Limit, v.Offset); limitOffset != "" {
		b.WriteString("\n")
		b.WriteString(limitOffset)
	}

	for _, u := range v.Unions {
		opSQL, err := w.sub(u.Query, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString("\n")
		b.WriteString(u.Operator)
		b.WriteString(" ")
		b.WriteString(opSQL)
	}

	if v.ForUpdate && w.Ops.Caps.RowLocking != RowLockingNone {
		b.WriteString("\nfor update")
	}

	return b.String(), nil
}
