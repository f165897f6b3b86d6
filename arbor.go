// Package arbor provides a dialect-aware SQL query builder.
//
// A query starts from a fluent Builder (Select, Insert, Update, Delete,
// Merge) and ends with Build, which returns the assembled expression tree,
// or Prepare, which renders that tree into SQL text and a bound-argument
// bag for a chosen dialect:
//
//	import "github.com/arborsql/arbor/postgres"
//
//	result, err := arbor.Select(arbor.Tbl("users")).
//		Where(arbor.Cmp(arbor.Col("active"), "=", arbor.Val(true))).
//		OrderBy(arbor.Desc(arbor.Col("created_at"))).
//		Limit(10).
//		Prepare(postgres.New(), convert.NewDefaultConverter())
//
// Five dialects are available out of the box: postgres, mysql, mariadb,
// sqlite, and mssql, each a package exposing New() *render.Writer. A
// Writer never opens a connection; Prepare only renders text and collects
// bound values, leaving execution to the caller's driver of choice.
//
// # Schema validation
//
// Callers who have a DBML project or Sentinel-scanned structs on hand can
// use the schema package to build ast.TableName/ast.ColumnName values that
// are guaranteed to reference real tables and columns, catching a typoed
// identifier before it ever reaches a Builder.
package arbor

import (
	"github.com/arborsql/arbor/internal/ast"
	"github.com/arborsql/arbor/internal/render"
)

// Re-export the render package's public surface so callers never need to
// import internal/render directly.
type (
	SqlString    = render.SqlString
	ArgumentBag  = render.ArgumentBag
	Arg          = render.Arg
	Converter    = render.Converter
	Writer       = render.Writer
	QueryOptions = render.QueryOptions
)

// Re-export the error taxonomy.
type (
	QueryBuilderError          = render.QueryBuilderError
	UnsupportedExpressionError = render.UnsupportedExpressionError
	ValueConversionError       = render.ValueConversionError
	UnsupportedFeatureError    = render.UnsupportedFeatureError
)

// Prepare renders expr (an ast.Expression produced by Build, a raw SQL
// string, or an already-prepared *SqlString) into SQL text for the given
// dialect Writer.
func Prepare(w *Writer, expr interface{}, converter Converter) (*SqlString, error) {
	return w.Prepare(expr, converter)
}

// MustPrepare is Prepare but panics on error, for callers who have already
// validated their tree and want to skip the error check.
func MustPrepare(w *Writer, expr interface{}, converter Converter) *SqlString {
	sq, err := Prepare(w, expr, converter)
	if err != nil {
		panic(err)
	}
	return sq
}

// Expression is the type every constructor in this package returns: the
// same closed algebra the Writer formats, re-exported so callers never
// import internal/ast directly.
type Expression = ast.Expression
