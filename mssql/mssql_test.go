package mssql

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

func TestSelectQuotesWithBrackets(t *testing.T) {
	sel := ast.NewSelect()
	sel.From = ast.NewTableName("users")
	sel.Columns = []ast.SelectColumn{ast.NewSelectColumn(ast.NewColumnName("id"))}

	got := prepare(t, sel)
	want := "select [id]\nfrom [users]"
	if got != want {
		t.Errorf("Prepare() = %q, want %q", got, want)
	}
}

func TestPlaceholdersAreNumbered(t *testing.T) {
	sel := ast.NewSelect()
	sel.From = ast.NewTableName("users")
	sel.Columns = []ast.SelectColumn{ast.NewSelectColumn(ast.NewColumnName("id"))}
	where := ast.NewWhere("and",
		ast.NewComparison(ast.NewColumnName("a"), "=", ast.NewValue(1)),
		ast.NewComparison(ast.NewColumnName("b"), "=", ast.NewValue(2)),
	)
	sel.Where = &where

	got := prepare(t, sel)
	if !strings.Contains(got, "@p1") || !strings.Contains(got, "@p2") {
		t.Errorf("Prepare() = %q, want numbered @p placeholders", got)
	}
}

func TestInsertReturningUsesOutputInserted(t *testing.T) {
	ins := ast.NewInsert(ast.NewTableName("users"))
	ins.Columns = []string{"name"}
	ins.Source = ast.NewConstantTable(ast.NewRow(ast.NewValue("ada")))
	ins.Returning = []ast.Expression{ast.NewColumnName("id")}

	got := prepare(t, ins)
	if !strings.Contains(got, "output inserted.[id]") {
		t.Errorf("Prepare() = %q, want OUTPUT INSERTED clause", got)
	}
}

func TestDeleteReturningUsesOutputDeleted(t *testing.T) {
	del := ast.NewDelete(ast.NewTableName("users"))
	del.Returning = []ast.Expression{ast.NewColumnName("id")}

	got := prepare(t, del)
	if !strings.Contains(got, "output deleted.[id]") {
		t.Errorf("Prepare() = %q, want OUTPUT DELETED clause", got)
	}
}

func TestLimitOffsetUsesFetchNext(t *testing.T) {
	sel := ast.NewSelect()
	sel.From = ast.NewTableName("users")
	sel.Columns = []ast.SelectColumn{ast.NewSelectColumn(ast.NewColumnName("id"))}
	limit, offset := 10, 20
	sel.Limit = &limit
	sel.Offset = &offset

	got := prepare(t, sel)
	want := "select [id]\nfrom [users]\noffset 20 rows fetch next 10 rows only"
	if got != want {
		t.Errorf("Prepare() = %q, want %q", got, want)
	}
}

func TestLimitOnlyIncludesOffsetZero(t *testing.T) {
	sel := ast.NewSelect()
	sel.From = ast.NewTableName("users")
	sel.Columns = []ast.SelectColumn{ast.NewSelectColumn(ast.NewColumnName("id"))}
	limit := 5
	sel.Limit = &limit

	got := prepare(t, sel)
	want := "select [id]\nfrom [users]\noffset 0 rows fetch next 5 rows only"
	if got != want {
		t.Errorf("Prepare() = %q, want %q", got, want)
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
		t.Errorf("Prepare() = %q, want merge statement", sq.Text)
	}
}
