//go:build arbor_integration

package integration

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/arborsql/arbor"
	"github.com/arborsql/arbor/convert"
	"github.com/arborsql/arbor/postgres"
)

func TestPostgresSelectExecutes(t *testing.T) {
	dsn := connString("ARBOR_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("ARBOR_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, "create temporary table arbor_it_users (id serial primary key, email text not null, active boolean not null default true)"); err != nil {
		t.Fatalf("create table: %v", err)
	}

	ins, err := arbor.Insert(arbor.Tbl("arbor_it_users")).
		InsertColumns("email", "active").
		Values(arbor.Val("a@example.com"), arbor.Val(true)).
		Returning(arbor.Col("id")).
		Prepare(postgres.New(), convert.NewDefaultConverter())
	if err != nil {
		t.Fatalf("prepare insert: %v", err)
	}

	var id int
	if err := conn.QueryRow(ctx, ins.Text, values(ins.Arguments)...).Scan(&id); err != nil {
		t.Fatalf("exec insert: %v\nsql: %s", err, ins.Text)
	}

	sel, err := arbor.Select(arbor.Tbl("arbor_it_users")).
		Where(arbor.Cmp(arbor.Col("id"), "=", arbor.Val(id))).
		Prepare(postgres.New(), convert.NewDefaultConverter())
	if err != nil {
		t.Fatalf("prepare select: %v", err)
	}

	rows, err := conn.Query(ctx, sel.Text, values(sel.Arguments)...)
	if err != nil {
		t.Fatalf("exec select: %v\nsql: %s", err, sel.Text)
	}
	defer rows.Close()

	if !rows.Next() {
		t.Fatal("expected one row back")
	}
}
