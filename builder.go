package arbor

import (
	"fmt"

	"github.com/arborsql/arbor/internal/ast"
)

// Builder provides a fluent API for constructing one of the five statement
// kinds. A method called against the wrong kind (e.g. GroupBy on an
// Insert) sets a sticky error instead of panicking; every later call on
// the same Builder becomes a no-op, and Build/Prepare surfaces the error.
type Builder struct {
	sel    *ast.Select
	ins    *ast.Insert
	upd    *ast.Update
	del    *ast.Delete
	mrg    *ast.Merge
	err    error
}

// Select starts a SELECT query against table.
func Select(table ast.TableName) *Builder {
	sel := ast.NewSelect()
	sel.From = table
	return &Builder{sel: sel}
}

// Insert starts an INSERT into table.
func Insert(table ast.TableName) *Builder {
	return &Builder{ins: ast.NewInsert(table)}
}

// Update starts an UPDATE of table.
func Update(table ast.TableName) *Builder {
	return &Builder{upd: ast.NewUpdate(table)}
}

// Delete starts a DELETE from table.
func Delete(table ast.TableName) *Builder {
	return &Builder{del: ast.NewDelete(table)}
}

// Merge starts a MERGE into table.
func Merge(table ast.TableName) *Builder {
	return &Builder{mrg: ast.NewMerge(table)}
}

// Build returns the constructed expression tree, or the first error set by
// a misused method.
func (b *Builder) Build() (Expression, error) {
	if b.err != nil {
		return nil, b.err
	}
	switch {
	case b.sel != nil:
		return b.sel, nil
	case b.ins != nil:
		return b.ins, nil
	case b.upd != nil:
		if len(b.upd.Set) == 0 {
			return nil, fmt.Errorf("arbor: UPDATE requires at least one Set() call")
		}
		return b.upd, nil
	case b.del != nil:
		return b.del, nil
	case b.mrg != nil:
		return b.mrg, nil
	default:
		return nil, fmt.Errorf("arbor: empty builder")
	}
}

// MustBuild returns the expression tree or panics on error.
func (b *Builder) MustBuild() Expression {
	expr, err := b.Build()
	if err != nil {
		panic(err)
	}
	return expr
}

// Prepare builds the tree and renders it for the given dialect Writer.
func (b *Builder) Prepare(w *Writer, converter Converter) (*SqlString, error) {
	expr, err := b.Build()
	if err != nil {
		return nil, err
	}
	return w.Prepare(expr, converter)
}

// MustPrepare is Prepare but panics on error.
func (b *Builder) MustPrepare(w *Writer, converter Converter) *SqlString {
	sq, err := b.Prepare(w, converter)
	if err != nil {
		panic(err)
	}
	return sq
}

// With adds a CTE, valid on every statement kind.
func (b *Builder) With(cte ast.WithStatement) *Builder {
	if b.err != nil {
		return b
	}
	switch {
	case b.sel != nil:
		b.sel.With = append(b.sel.With, cte)
	case b.ins != nil:
		b.ins.With = append(b.ins.With, cte)
	case b.upd != nil:
		b.upd.With = append(b.upd.With, cte)
	case b.del != nil:
		b.del.With = append(b.del.With, cte)
	case b.mrg != nil:
		b.mrg.With = append(b.mrg.With, cte)
	default:
		b.err = fmt.Errorf("arbor: With() called on empty builder")
	}
	return b
}

// Columns sets the SELECT projection list.
func (b *Builder) Columns(cols ...ast.SelectColumn) *Builder {
	if b.err != nil {
		return b
	}
	if b.sel == nil {
		b.err = fmt.Errorf("arbor: Columns() can only be used with SELECT queries")
		return b
	}
	b.sel.Columns = cols
	return b
}

// Distinct sets the DISTINCT flag on a SELECT.
func (b *Builder) Distinct() *Builder {
	if b.err != nil {
		return b
	}
	if b.sel == nil {
		b.err = fmt.Errorf("arbor: Distinct() can only be used with SELECT queries")
		return b
	}
	b.sel.Distinct = true
	return b
}

// ForUpdate sets the row-locking flag on a SELECT.
func (b *Builder) ForUpdate() *Builder {
	if b.err != nil {
		return b
	}
	if b.sel == nil {
		b.err = fmt.Errorf("arbor: ForUpdate() can only be used with SELECT queries")
		return b
	}
	b.sel.ForUpdate = true
	return b
}

// Where adds a filter condition, combining with any existing one via AND.
// Valid on SELECT, UPDATE, and DELETE.
func (b *Builder) Where(condition Expression) *Builder {
	if b.err != nil {
		return b
	}
	combine := func(existing *ast.Where) *ast.Where {
		if existing == nil || existing.IsEmpty() {
			w := ast.NewWhere("and", condition)
			return &w
		}
		w := ast.NewWhere("and", *existing, condition)
		return &w
	}
	switch {
	case b.sel != nil:
		b.sel.Where = combine(b.sel.Where)
	case b.upd != nil:
		b.upd.Where = combine(b.upd.Where)
	case b.del != nil:
		b.del.Where = combine(b.del.Where)
	default:
		b.err = fmt.Errorf("arbor: Where() can only be used with SELECT, UPDATE, or DELETE")
	}
	return b
}

// Join adds a JOIN, valid on SELECT, UPDATE, and DELETE (the latter two via
// spec's first-join promotion rule at render time).
func (b *Builder) Join(mode string, table Expression, on Expression) *Builder {
	if b.err != nil {
		return b
	}
	join := ast.NewJoinStatement(mode, table, on)
	switch {
	case b.sel != nil:
		b.sel.Joins = append(b.sel.Joins, join)
	case b.upd != nil:
		b.upd.Joins = append(b.upd.Joins, join)
	case b.del != nil:
		b.del.Joins = append(b.del.Joins, join)
	default:
		b.err = fmt.Errorf("arbor: Join() can only be used with SELECT, UPDATE, or DELETE")
	}
	return b
}

// InnerJoin adds an INNER JOIN.
func (b *Builder) InnerJoin(table, on Expression) *Builder { return b.Join("inner", table, on) }

// LeftJoin adds a LEFT JOIN.
func (b *Builder) LeftJoin(table, on Expression) *Builder { return b.Join("left", table, on) }

// RightJoin adds a RIGHT JOIN.
func (b *Builder) RightJoin(table, on Expression) *Builder { return b.Join("right", table, on) }

// CrossJoin adds a CROSS JOIN (no ON clause).
func (b *Builder) CrossJoin(table Expression) *Builder { return b.Join("cross", table, nil) }

// GroupBy adds GROUP BY columns to a SELECT.
func (b *Builder) GroupBy(cols ...Expression) *Builder {
	if b.err != nil {
		return b
	}
	if b.sel == nil {
		b.err = fmt.Errorf("arbor: GroupBy() can only be used with SELECT queries")
		return b
	}
	b.sel.GroupBy = append(b.sel.GroupBy, cols...)
	return b
}

// Having adds a HAVING condition to a SELECT; requires a prior GroupBy.
func (b *Builder) Having(condition Expression) *Builder {
	if b.err != nil {
		return b
	}
	if b.sel == nil {
		b.err = fmt.Errorf("arbor: Having() can only be used with SELECT queries")
		return b
	}
	if len(b.sel.GroupBy) == 0 {
		b.err = fmt.Errorf("arbor: Having() requires GroupBy()")
		return b
	}
	if b.sel.Having == nil || b.sel.Having.IsEmpty() {
		w := ast.NewWhere("and", condition)
		b.sel.Having = &w
	} else {
		w := ast.NewWhere("and", *b.sel.Having, condition)
		b.sel.Having = &w
	}
	return b
}

// OrderBy adds an ORDER BY item to a SELECT.
func (b *Builder) OrderBy(item ast.OrderByStatement) *Builder {
	if b.err != nil {
		return b
	}
	if b.sel == nil {
		b.err = fmt.Errorf("arbor: OrderBy() can only be used with SELECT queries")
		return b
	}
	b.sel.OrderBy = append(b.sel.OrderBy, item)
	return b
}

// Limit sets the LIMIT on a SELECT.
func (b *Builder) Limit(n int) *Builder {
	if b.err != nil {
		return b
	}
	if b.sel == nil {
		b.err = fmt.Errorf("arbor: Limit() can only be used with SELECT queries")
		return b
	}
	b.sel.Limit = &n
	return b
}

// Offset sets the OFFSET on a SELECT.
func (b *Builder) Offset(n int) *Builder {
	if b.err != nil {
		return b
	}
	if b.sel == nil {
		b.err = fmt.Errorf("arbor: Offset() can only be used with SELECT queries")
		return b
	}
	b.sel.Offset = &n
	return b
}

// Union adds a compound-query operand to a SELECT.
func (b *Builder) Union(operator string, query Expression) *Builder {
	if b.err != nil {
		return b
	}
	if b.sel == nil {
		b.err = fmt.Errorf("arbor: Union() can only be used with SELECT queries")
		return b
	}
	b.sel.Unions = append(b.sel.Unions, ast.UnionClause{Operator: operator, Query: query})
	return b
}

// InsertColumns sets the target column list for an INSERT.
func (b *Builder) InsertColumns(names ...string) *Builder {
	if b.err != nil {
		return b
	}
	if b.ins == nil {
		b.err = fmt.Errorf("arbor: InsertColumns() can only be used with INSERT queries")
		return b
	}
	b.ins.Columns = names
	return b
}

// Values appends a row to an INSERT's literal VALUES source.
func (b *Builder) Values(values ...Expression) *Builder {
	if b.err != nil {
		return b
	}
	if b.ins == nil {
		b.err = fmt.Errorf("arbor: Values() can only be used with INSERT queries")
		return b
	}
	row := ast.NewRow(values...)
	ct, ok := b.ins.Source.(ast.ConstantTable)
	if !ok {
		ct = ast.NewConstantTable()
	}
	ct.Rows = append(ct.Rows, row)
	b.ins.Source = ct
	return b
}

// From sets an INSERT ... SELECT source.
func (b *Builder) From(source Expression) *Builder {
	if b.err != nil {
		return b
	}
	if b.ins == nil {
		b.err = fmt.Errorf("arbor: From() can only be used with INSERT queries")
		return b
	}
	b.ins.Source = source
	return b
}

// Set adds a "column = value" assignment to an UPDATE, or to a MERGE's
// WHEN MATCHED THEN UPDATE SET list.
func (b *Builder) Set(column string, value Expression) *Builder {
	if b.err != nil {
		return b
	}
	switch {
	case b.upd != nil:
		b.upd.Set = append(b.upd.Set, ast.SetClause{Column: column, Value: value})
	case b.mrg != nil:
		b.mrg.UpdateSet = append(b.mrg.UpdateSet, ast.SetClause{Column: column, Value: value})
	default:
		b.err = fmt.Errorf("arbor: Set() can only be used with UPDATE or MERGE queries")
	}
	return b
}

// UpdateFrom adds an additional FROM source to an UPDATE.
func (b *Builder) UpdateFrom(source Expression) *Builder {
	if b.err != nil {
		return b
	}
	if b.upd == nil {
		b.err = fmt.Errorf("arbor: UpdateFrom() can only be used with UPDATE queries")
		return b
	}
	b.upd.From = append(b.upd.From, source)
	return b
}

// Using adds a USING source to a DELETE, or sets the source table/query a
// MERGE joins against.
func (b *Builder) Using(source Expression) *Builder {
	if b.err != nil {
		return b
	}
	switch {
	case b.del != nil:
		b.del.Using = append(b.del.Using, source)
	case b.mrg != nil:
		b.mrg.Using = source
	default:
		b.err = fmt.Errorf("arbor: Using() can only be used with DELETE or MERGE queries")
	}
	return b
}

// UsingAs names the alias a MERGE's Using source is referenced by.
func (b *Builder) UsingAs(alias string) *Builder {
	if b.err != nil {
		return b
	}
	if b.mrg == nil {
		b.err = fmt.Errorf("arbor: UsingAs() can only be used with MERGE queries")
		return b
	}
	b.mrg.UsingAlias = alias
	return b
}

// On sets a MERGE's join condition.
func (b *Builder) On(condition Expression) *Builder {
	if b.err != nil {
		return b
	}
	if b.mrg == nil {
		b.err = fmt.Errorf("arbor: On() can only be used with MERGE queries")
		return b
	}
	b.mrg.On = condition
	return b
}

// WhenNotMatchedInsert sets a MERGE's unmatched-row insert branch. Calling
// it without a prior WhenMatchedUpdate produces an INSERT-only MERGE
// (ast.ConflictIgnore); calling it after WhenMatchedUpdate produces the
// full upsert form (ast.ConflictUpdate).
func (b *Builder) WhenNotMatchedInsert(columns []string, values ...Expression) *Builder {
	if b.err != nil {
		return b
	}
	if b.mrg == nil {
		b.err = fmt.Errorf("arbor: WhenNotMatchedInsert() can only be used with MERGE queries")
		return b
	}
	if b.mrg.Action == "" {
		b.mrg.Action = ast.ConflictIgnore
	}
	b.mrg.InsertColumns = columns
	b.mrg.InsertValues = values
	return b
}

// WhenMatchedUpdate marks a MERGE as the full upsert form; pair it with
// Set() calls for the matched-row update assignments.
func (b *Builder) WhenMatchedUpdate() *Builder {
	if b.err != nil {
		return b
	}
	if b.mrg == nil {
		b.err = fmt.Errorf("arbor: WhenMatchedUpdate() can only be used with MERGE queries")
		return b
	}
	b.mrg.Action = ast.ConflictUpdate
	return b
}

// Returning adds RETURNING columns to an INSERT, UPDATE, or DELETE.
func (b *Builder) Returning(cols ...Expression) *Builder {
	if b.err != nil {
		return b
	}
	switch {
	case b.ins != nil:
		b.ins.Returning = append(b.ins.Returning, cols...)
	case b.upd != nil:
		b.upd.Returning = append(b.upd.Returning, cols...)
	case b.del != nil:
		b.del.Returning = append(b.del.Returning, cols...)
	default:
		b.err = fmt.Errorf("arbor: Returning() can only be used with INSERT, UPDATE, or DELETE")
	}
	return b
}
