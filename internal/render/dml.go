package render

import (
	"strings"

	"github.com/arborsql/arbor/internal/ast"
)

// promoteFirstJoin implements the first-join promotion rule: UPDATE and
// DELETE have no native JOIN syntax, so the first JOIN attached to either
// statement is promoted to the leading FROM/USING source, with its
// condition pushed into the WHERE clause. Only INNER and NATURAL joins are
// legal in that leading position, since anything else would change which
// rows the statement affects once it's no longer filtering a result set.
func promoteFirstJoin(joins []ast.JoinStatement, where *ast.Where) (ast.Expression, []ast.JoinStatement, *ast.Where, error) {
	if len(joins) == 0 {
		return nil, nil, where, nil
	}

	first := joins[0]
	if first.Mode != "inner" && first.Mode != "natural" {
		return nil, nil, nil, NewQueryBuilderError("join promotion",
			"leading join of an UPDATE/DELETE must be inner or natural, got "+first.Mode)
	}

	var conds []ast.Expression
	if where != nil {
		conds = append(conds, *where)
	}
	if first.Condition != nil {
		conds = append(conds, first.Condition)
	}
	combined := ast.NewWhere("and", conds...)
	return first.Table, joins[1:], &combined, nil
}

func (w *Writer) formatInsert(v *ast.Insert, ctx *WriterContext) (string, error) {
	var b strings.Builder

	withSQL, err := w.formatWithList(v.With, ctx)
	if err != nil {
		return "", err
	}
	b.WriteString(withSQL)

	b.WriteString("insert into ")
	tableSQL, err := w.Format(v.Table, ctx, false)
	if err != nil {
		return "", err
	}
	b.WriteString(tableSQL)

	if len(v.Columns) > 0 {
		b.WriteString("\n(")
		b.WriteString(w.Ops.Escaper.EscapeIdentifierList(v.Columns))
		b.WriteString(")")
	}

	if v.Source == nil {
		b.WriteString("\n")
		b.WriteString(w.Ops.FormatInsertDefaultValues())
	} else {
		sourceSQL, err := w.Format(v.Source, ctx, false)
		if err != nil {
			return "", err
		}
		b.WriteString("\n")
		b.WriteString(sourceSQL)
	}

	returningSQL, err := w.formatReturning(v.Returning, "insert", ctx)
	if err != nil {
		return "", err
	}
	b.WriteString(returningSQL)

	return b.String(), nil
}

func (w *Writer) formatUpdate(v *ast.Update, ctx *WriterContext) (string, error) {
	if len(v.Set) == 0 {
		return "", NewQueryBuilderError("update", "no SET assignments")
	}

	leadTable, remainingJoins, where, err := promoteFirstJoin(v.Joins, v.Where)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	withSQL, err := w.formatWithList(v.With, ctx)
	if err != nil {
		return "", err
	}
	b.WriteString(withSQL)

	b.WriteString("update ")
	tableSQL, err := w.Format(v.Table, ctx, false)
	if err != nil {
		return "", err
	}
	b.WriteString(tableSQL)

	b.WriteString("\nset ")
	setSQL, err := w.formatSetClauses(v.Set, ctx)
	if err != nil {
		return "", err
	}
	b.WriteString(setSQL)

	fromList := v.From
	if leadTable != nil {
		fromList = append([]ast.Expression{leadTable}, fromList...)
	}
	if len(fromList) > 0 {
		parts, err := w.subList(fromList, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString("\nfrom ")
		b.WriteString(strings.Join(parts, ", "))
	}

	joinSQL, err := w.formatJoins(remainingJoins, ctx)
	if err != nil {
		return "", err
	}
	b.WriteString(joinSQL)

	if where != nil && !where.IsEmpty() {
		whereSQL, err := w.formatWhere(*where, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString("\nwhere ")
		b.WriteString(whereSQL)
	}

	returningSQL, err := w.formatReturning(v.Returning, "update", ctx)
	if err != nil {
		return "", err
	}
	b.WriteString(returningSQL)

	return b.String(), nil
}

func (w *Writer) formatSetClauses(set []ast.SetClause, ctx *WriterContext) (string, error) {
	parts := make([]string, len(set))
	for i, s := range set {
		valueSQL, err := w.sub(s.Value, ctx)
		if err != nil {
			return "", err
		}
		parts[i] = w.Ops.Escaper.EscapeIdentifier(s.Column) + " = " + valueSQL
	}
	return strings.Join(parts, ", "), nil
}

func (w *Writer) formatDelete(v *ast.Delete, ctx *WriterContext) (string, error) {
	leadTable, remainingJoins, where, err := promoteFirstJoin(v.Joins, v.Where)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	withSQL, err := w.formatWithList(v.With, ctx)
	if err != nil {
		return "", err
	}
	b.WriteString(withSQL)

	b.WriteString("delete from ")
	tableSQL, err := w.Format(v.Table, ctx, false)
	if err != nil {
		return "", err
	}
	b.WriteString(tableSQL)

	usingList := v.Using
	if leadTable != nil {
		usingList = append([]ast.Expression{leadTable}, usingList...)
	}
	if len(usingList) > 0 {
		parts, err := w.subList(usingList, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString("\nusing ")
		b.WriteString(strings.Join(parts, ", "))
	}

	joinSQL, err := w.formatJoins(remainingJoins, ctx)
	if err != nil {
		return "", err
	}
	b.WriteString(joinSQL)

	if where != nil && !where.IsEmpty() {
		whereSQL, err := w.formatWhere(*where, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString("\nwhere ")
		b.WriteString(whereSQL)
	}

	returningSQL, err := w.formatReturning(v.Returning, "delete", ctx)
	if err != nil {
		return "", err
	}
	b.WriteString(returningSQL)

	return b.String(), nil
}

func (w *Writer) formatMerge(v *ast.Merge, ctx *WriterContext) (string, error) {
	if !w.Ops.Caps.Upsert {
		return "", NewUnsupportedFeatureError(w.Ops.Name, "merge")
	}

	var b strings.Builder

	withSQL, err := w.formatWithList(v.With, ctx)
	if err != nil {
		return "", err
	}
	b.WriteString(withSQL)

	b.WriteString("merge into ")
	tableSQL, err := w.Format(v.Table, ctx, false)
	if err != nil {
		return "", err
	}
	b.WriteString(tableSQL)

	usingSQL, err := w.sub(v.Using, ctx)
	if err != nil {
		return "", err
	}
	b.WriteString("\nusing ")
	b.WriteString(usingSQL)
	if v.UsingAlias != "" {
		b.WriteString(" as ")
		b.WriteString(w.Ops.Escaper.EscapeIdentifier(v.UsingAlias))
	}

	onSQL, err := w.Format(v.On, ctx, false)
	if err != nil {
		return "", err
	}
	b.WriteString("\non ")
	b.WriteString(onSQL)

	switch v.Action {
	case ast.ConflictIgnore:
		b.WriteString("\nwhen not matched then insert")
		if len(v.InsertColumns) > 0 {
			b.WriteString(" (")
			b.WriteString(w.Ops.Escaper.EscapeIdentifierList(v.InsertColumns))
			b.WriteString(")")
		}
		if len(v.InsertValues) > 0 {
			values, err := w.subList(v.InsertValues, ctx)
			if err != nil {
				return "", err
			}
			b.WriteString("\nvalues (")
			b.WriteString(strings.Join(values, ", "))
			b.WriteString(")")
		}
	case ast.ConflictUpdate:
		b.WriteString("\nwhen matched then update set ")
		setSQL, err := w.formatSetClauses(v.UpdateSet, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(setSQL)
		b.WriteString("\nwhen not matched then insert")
		if len(v.InsertColumns) > 0 {
			b.WriteString(" (")
			b.WriteString(w.Ops.Escaper.EscapeIdentifierList(v.InsertColumns))
			b.WriteString(")")
		}
		if len(v.InsertValues) > 0 {
			values, err := w.subList(v.InsertValues, ctx)
			if err != nil {
				return "", err
			}
			b.WriteString("\nvalues (")
			b.WriteString(strings.Join(values, ", "))
			b.WriteString(")")
		}
	default:
		return "", NewQueryBuilderError("merge", "unknown conflict action")
	}

	return b.String(), nil
}
