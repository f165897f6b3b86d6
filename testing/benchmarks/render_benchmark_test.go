// Package benchmarks measures arbor's build-and-render cost across dialects.
package benchmarks

import (
	"testing"

	"github.com/arborsql/arbor"
	"github.com/arborsql/arbor/convert"
	"github.com/arborsql/arbor/postgres"
)

var conv = convert.NewDefaultConverter()

func BenchmarkSimpleSelect(b *testing.B) {
	w := postgres.New()
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		q, err := arbor.Select(arbor.Tbl("users")).Build()
		if err != nil {
			b.Fatal(err)
		}
		if _, err := arbor.Prepare(w, q, conv); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSelectWithWhere(b *testing.B) {
	w := postgres.New()
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		q, err := arbor.Select(arbor.Tbl("users")).
			Where(arbor.Cmp(arbor.Col("active"), "=", arbor.Val(true))).
			Build()
		if err != nil {
			b.Fatal(err)
		}
		if _, err := arbor.Prepare(w, q, conv); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSelectWithJoin(b *testing.B) {
	w := postgres.New()
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		q, err := arbor.Select(arbor.Tbl("users", "u")).
			InnerJoin(arbor.Tbl("posts", "p"), arbor.Cmp(arbor.Col("id", "u"), "=", arbor.Col("user_id", "p"))).
			Build()
		if err != nil {
			b.Fatal(err)
		}
		if _, err := arbor.Prepare(w, q, conv); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSelectWithAggregate(b *testing.B) {
	w := postgres.New()
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		q, err := arbor.Select(arbor.Tbl("orders")).
			Columns(
				arbor.SelectCol(arbor.Col("user_id")),
				arbor.SelectCol(arbor.Agg("sum", arbor.Col("total")), "total_spent"),
			).
			GroupBy(arbor.Col("user_id")).
			Build()
		if err != nil {
			b.Fatal(err)
		}
		if _, err := arbor.Prepare(w, q, conv); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInsert(b *testing.B) {
	w := postgres.New()
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		q, err := arbor.Insert(arbor.Tbl("users")).
			InsertColumns("username", "email", "age").
			Values(arbor.Val("bob"), arbor.Val("bob@example.com"), arbor.Val(30)).
			Returning(arbor.Col("id")).
			Build()
		if err != nil {
			b.Fatal(err)
		}
		if _, err := arbor.Prepare(w, q, conv); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUpdate(b *testing.B) {
	w := postgres.New()
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		q, err := arbor.Update(arbor.Tbl("users")).
			Set("email", arbor.Val("new@example.com")).
			Where(arbor.Cmp(arbor.Col("id"), "=", arbor.Val(1))).
			Build()
		if err != nil {
			b.Fatal(err)
		}
		if _, err := arbor.Prepare(w, q, conv); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkComplexQuery(b *testing.B) {
	w := postgres.New()
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		q, err := arbor.Select(arbor.Tbl("users", "u")).
			Columns(
				arbor.SelectCol(arbor.Col("id", "u")),
				arbor.SelectCol(arbor.Col("username", "u")),
				arbor.SelectCol(arbor.Agg("sum", arbor.Col("total", "o")), "total_spent"),
			).
			InnerJoin(arbor.Tbl("orders", "o"), arbor.Cmp(arbor.Col("id", "u"), "=", arbor.Col("user_id", "o"))).
			Where(arbor.And(
				arbor.Cmp(arbor.Col("active", "u"), "=", arbor.Val(true)),
				arbor.Cmp(arbor.Col("status", "o"), "=", arbor.Val("paid")),
			)).
			GroupBy(arbor.Col("id", "u"), arbor.Col("username", "u")).
			OrderBy(arbor.Asc(arbor.Col("username", "u"))).
			Limit(10).
			Build()
		if err != nil {
			b.Fatal(err)
		}
		if _, err := arbor.Prepare(w, q, conv); err != nil {
			b.Fatal(err)
		}
	}
}
