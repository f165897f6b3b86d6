package mariadb

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

func TestSelectQuotesWithBackticks(t *testing.T) {
	sel := ast.NewSelect()
	sel.From = ast.NewTableName("users")
	sel.Columns = []ast.SelectColumn{ast.NewSelectColumn(ast.NewColumnName("id"))}

	got := prepare(t, sel)
	want := "select `id`\nfrom `users`"
	if got != want {
		t.Errorf("Prepare() = %q, want %q", got, want)
	}
}

func TestInsertReturningSupported(t *testing.T) {
	ins := ast.NewInsert(ast.NewTableName("users"))
	ins.Columns = []string{"name"}
	ins.Source = ast.NewConstantTable(ast.NewRow(ast.NewValue("ada")))
	ins.Returning = []ast.Expression{ast.NewColumnName("id")}

	got := prepare(t, ins)
	if !strings.Contains(got, "returning `id`") {
		t.Errorf("Prepare() = %q, want to contain returning clause", got)
	}
}

func TestMergeUnsupported(t *testing.T) {
	w := New()
	m := ast.NewMerge(ast.NewTableName("users"))
	m.Using = ast.NewTableName("staging")
	m.On = ast.NewComparison(ast.NewColumnName("id"), "=", ast.NewColumnName("id", "staging"))
	m.Action = ast.ConflictIgnore

	_, err := w.Prepare(m, convert.NewDefaultConverter())
	if err == nil {
		t.Fatal("Prepare() error = nil, want unsupported-feature error")
	}
}

func TestAggregateFilterRewrittenToCase(t *testing.T) {
	agg := ast.NewAggregate("count", ast.NewColumnName("id")).
		WithFilter(ast.NewWhere("and", ast.NewComparison(ast.NewColumnName("active"), "=", ast.NewValue(true))))

	got := prepare(t, agg)
	if !strings.Contains(got, "case when") {
		t.Errorf("Prepare() = %q, want FILTER rewritten to CASE WHEN", got)
	}
	if strings.Contains(got, "filter") {
		t.Errorf("Prepare() = %q, want no FILTER clause", got)
	}
}
