//go:build arbor_integration

package integration

import (
	"database/sql"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/arborsql/arbor"
	"github.com/arborsql/arbor/convert"
	"github.com/arborsql/arbor/mysql"
)

func TestMySQLSelectExecutes(t *testing.T) {
	dsn := connString("ARBOR_MYSQL_DSN")
	if dsn == "" {
		t.Skip("ARBOR_MYSQL_DSN not set")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("create temporary table arbor_it_users (id bigint primary key auto_increment, email varchar(255) not null, active bool not null default true)"); err != nil {
		t.Fatalf("create table: %v", err)
	}

	ins, err := arbor.Insert(arbor.Tbl("arbor_it_users")).
		InsertColumns("email", "active").
		Values(arbor.Val("a@example.com"), arbor.Val(true)).
		Prepare(mysql.New(), convert.NewDefaultConverter())
	if err != nil {
		t.Fatalf("prepare insert: %v", err)
	}

	res, err := db.Exec(ins.Text, values(ins.Arguments)...)
	if err != nil {
		t.Fatalf("exec insert: %v\nsql: %s", err, ins.Text)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}

	sel, err := arbor.Select(arbor.Tbl("arbor_it_users")).
		Where(arbor.Cmp(arbor.Col("id"), "=", arbor.Val(id))).
		Prepare(mysql.New(), convert.NewDefaultConverter())
	if err != nil {
		t.Fatalf("prepare select: %v", err)
	}

	rows, err := db.Query(sel.Text, values(sel.Arguments)...)
	if err != nil {
		t.Fatalf("exec select: %v\nsql: %s", err, sel.Text)
	}
	defer rows.Close()

	if !rows.Next() {
		t.Fatal("expected one row back")
	}
}
