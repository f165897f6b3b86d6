package postgres

import (
	"strings"
	"testing"

	"github.com/arborsql/arbor/convert"
	"github.com/arborsql/arbor/internal/ast"
)

func prepare(t *testing.T, expr ast.Expression) string {
	t.Helper()
	w := New()
	sq, err := w.Prepare(expr, convert.NewDefaultConverter())
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return sq.Text
}

func TestSelectQuotesWithDoubleQuotes(t *testing.T) {
	sel := ast.NewSelect()
	sel.From = ast.NewTableName("users")
	sel.Columns = []ast.SelectColumn{ast.NewSelectColumn(ast.NewColumnName("id"))}

	got := prepare(t, sel)
	want := "select \"id\"\nfrom \"users\""
	if got != want {
		t.Errorf("Prepare() = %q, want %q", got, want)
	}
}

func TestPlaceholdersAreNumberedDollar(t *testing.T) {
	sel := ast.NewSelect()
	sel.From = ast.NewTableName("users")
	where := ast.NewWhere("and",
		ast.NewComparison(ast.NewColumnName("id"), "=", ast.NewValue(1)),
		ast.NewComparison(ast.NewColumnName("active"), "=", ast.NewValue(true)),
	)
	sel.Where = &where

	got := prepare(t, sel)
	if !strings.Contains(got, "$1") || !strings.Contains(got, "$2") {
		t.Errorf("Prepare() = %q, want $1 and $2 placeholders", got)
	}
}

func TestInsertReturningSupported(t *testing.T) {
	ins := ast.NewInsert(ast.NewTableName("users"))
	ins.Columns = []string{"name"}
	ins.Source = ast.NewConstantTable(ast.NewRow(ast.NewValue("ada")))
	ins.Returning = []ast.Expression{ast.NewColumnName("id")}

	got := prepare(t, ins)
	if !strings.Contains(got, `returning "id"`) {
		t.Errorf("Prepare() = %q, want to contain returning clause", got)
	}
}

func TestMergeSupported(t *testing.T) {
	w := New()
	m := ast.NewMerge(ast.NewTableName("users"))
	m.Using = ast.NewTableName("staging")
	m.On = ast.NewComparison(ast.NewColumnName("id"), "=", ast.NewColumnName("id", "staging"))
	m.Action = ast.ConflictIgnore

	sq, err := w.Prepare(m, convert.NewDefaultConverter())
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(sq.Text, "merge into") {
		t.Errorf("Prepare() = %q, want a MERGE statement", sq.Text)
	}
}

func TestAggregateFilterClauseSupported(t *testing.T) {
	agg := ast.NewAggregate("count", ast.NewColumnName("id")).
		WithFilter(ast.NewWhere("and", ast.NewComparison(ast.NewColumnName("active"), "=", ast.NewValue(true))))

	got := prepare(t, agg)
	if !strings.Contains(got, "filter (where") {
		t.Errorf("Prepare() = %q, want a native FILTER clause", got)
	}
}

func TestSelectDistinct(t *testing.T) {
	sel := ast.NewSelect()
	sel.From = ast.NewTableName("posts")
	sel.Distinct = true
	sel.Columns = []ast.SelectColumn{ast.NewSelectColumn(ast.NewColumnName("user_id"))}

	got := prepare(t, sel)
	if !strings.Contains(got, "select distinct ") {
		t.Errorf("Prepare() = %q, want DISTINCT", got)
	}
}
