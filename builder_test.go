package arbor_test

import (
	"strings"
	"testing"

	"github.com/arborsql/arbor"
	"github.com/arborsql/arbor/convert"
	"github.com/arborsql/arbor/mariadb"
	"github.com/arborsql/arbor/postgres"
)

func mustPrepare(t *testing.T, b *arbor.Builder) *arbor.SqlString {
	t.Helper()
	sq, err := b.Prepare(postgres.New(), convert.NewDefaultConverter())
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	return sq
}

func TestSelectBasic(t *testing.T) {
	sq := mustPrepare(t, arbor.Select(arbor.Tbl("users")).
		Where(arbor.Cmp(arbor.Col("active"), "=", arbor.Val(true))).
		OrderBy(arbor.Desc(arbor.Col("created_at"))).
		Limit(10))

	if !strings.HasPrefix(sq.Text, "select *\nfrom ") {
		t.Errorf("unexpected prefix: %q", sq.Text)
	}
	if !strings.Contains(sq.Text, "order by") || !strings.Contains(sq.Text, "limit") {
		t.Errorf("expected ORDER BY and LIMIT in %q", sq.Text)
	}
	if sq.Arguments.Len() != 1 {
		t.Errorf("expected 1 bound argument, got %d", sq.Arguments.Len())
	}
}

func TestSelectJoinGroupHaving(t *testing.T) {
	sq := mustPrepare(t, arbor.Select(arbor.Tbl("users", "u")).
		InnerJoin(arbor.Tbl("orders", "o"), arbor.Cmp(arbor.Col("id", "u"), "=", arbor.Col("user_id", "o"))).
		GroupBy(arbor.Col("id", "u")).
		Having(arbor.Cmp(arbor.Agg("count", nil), ">", arbor.Val(0))))

	if !strings.Contains(sq.Text, "\ninner join ") {
		t.Errorf("expected an exact inner join clause in %q", sq.Text)
	}
	if !strings.Contains(sq.Text, "group by") || !strings.Contains(sq.Text, "having") {
		t.Errorf("expected GROUP BY and HAVING in %q", sq.Text)
	}
}

func TestHavingWithoutGroupByFails(t *testing.T) {
	_, err := arbor.Select(arbor.Tbl("users")).
		Having(arbor.Cmp(arbor.Col("id"), ">", arbor.Val(0))).
		Build()
	if err == nil {
		t.Error("expected Having() without GroupBy() to fail")
	}
}

func TestGroupByOnNonSelectFails(t *testing.T) {
	_, err := arbor.Insert(arbor.Tbl("users")).GroupBy(arbor.Col("id")).Build()
	if err == nil {
		t.Error("expected GroupBy() on an INSERT builder to fail")
	}
}

func TestInsertReturning(t *testing.T) {
	sq := mustPrepare(t, arbor.Insert(arbor.Tbl("users")).
		InsertColumns("email", "active").
		Values(arbor.Val("a@example.com"), arbor.Val(true)).
		Returning(arbor.Col("id")))

	if !strings.HasPrefix(sq.Text, "insert into ") {
		t.Errorf("unexpected prefix: %q", sq.Text)
	}
	if !strings.Contains(sq.Text, "returning") {
		t.Errorf("expected RETURNING in %q", sq.Text)
	}
}

func TestUpdateRequiresSet(t *testing.T) {
	_, err := arbor.Update(arbor.Tbl("users")).
		Where(arbor.Cmp(arbor.Col("id"), "=", arbor.Val(1))).
		Build()
	if err == nil {
		t.Error("expected UPDATE without Set() to fail")
	}
}

func TestDeleteUsing(t *testing.T) {
	sq := mustPrepare(t, arbor.Delete(arbor.Tbl("orders")).
		Using(arbor.Tbl("users")).
		Where(arbor.Cmp(arbor.Col("user_id"), "=", arbor.Col("id"))))

	if !strings.HasPrefix(sq.Text, "delete from ") {
		t.Errorf("unexpected prefix: %q", sq.Text)
	}
	if !strings.Contains(sq.Text, "using") {
		t.Errorf("expected USING in %q", sq.Text)
	}
}

func TestMergeUpsert(t *testing.T) {
	sq := mustPrepare(t, arbor.Merge(arbor.Tbl("users")).
		Using(arbor.Tbl("staged_users")).
		UsingAs("s").
		On(arbor.Cmp(arbor.Col("id"), "=", arbor.Col("id", "s"))).
		WhenMatchedUpdate().
		Set("email", arbor.Col("email", "s")).
		WhenNotMatchedInsert([]string{"id", "email"}, arbor.Col("id", "s"), arbor.Col("email", "s")))

	if !strings.Contains(sq.Text, "merge into") {
		t.Errorf("expected MERGE in %q", sq.Text)
	}
	if !strings.Contains(sq.Text, "when matched") || !strings.Contains(sq.Text, "when not matched") {
		t.Errorf("expected both MERGE branches in %q", sq.Text)
	}
}

func TestMergeUnsupportedOnMariaDB(t *testing.T) {
	_, err := arbor.Merge(arbor.Tbl("users")).
		Using(arbor.Tbl("staged_users")).
		On(arbor.Cmp(arbor.Col("id"), "=", arbor.Col("id", "staged_users"))).
		WhenNotMatchedInsert([]string{"id"}, arbor.Col("id", "staged_users")).
		Prepare(mariadb.New(), convert.NewDefaultConverter())
	if err == nil {
		t.Error("expected MERGE to fail on a dialect without upsert support")
	}
}

func TestMisusedMethodSticksError(t *testing.T) {
	_, err := arbor.Insert(arbor.Tbl("users")).
		Distinct().
		InsertColumns("email").
		Values(arbor.Val("a@example.com")).
		Build()
	if err == nil {
		t.Error("expected Distinct() on an INSERT builder to produce a sticky error")
	}
}
