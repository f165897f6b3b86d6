package ast

// ConstantTable is a "values (...), (...)" literal, usable as a scalar
// table expression, an INSERT source, or (aliased, with column names) a
// FROM-clause derived table.
type ConstantTable struct {
	scalar
	Rows    []Row
	Columns []string
}

// NewConstantTable builds a ConstantTable from the given rows.
func NewConstantTable(rows ...Row) ConstantTable {
	return ConstantTable{Rows: rows}
}

// WithColumns returns a copy of c carrying explicit column names, used when
// the table is aliased in a FROM clause.
func (c ConstantTable) WithColumns(columns ...string) ConstantTable {
	c.Columns = columns
	return c
}
