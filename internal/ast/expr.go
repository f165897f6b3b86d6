// Package ast defines the closed set of expression variants that make up
// the query builder's abstract syntax tree. Every variant is a plain data
// struct: nothing in this package renders SQL, and nothing in this package
// imports the render package, so the tree can be built and shared freely
// without pulling in a dialect.
//
// This mirrors the teacher's internal/types package: exported so the
// root-level builder package can construct and inspect these nodes, but
// kept under internal/ so external callers always go through the builder
// constructors instead of poking at the tree directly.
package ast

// Expression is the single capability every AST node implements: it can be
// formatted by a Writer, and it reports whether evaluating it produces a
// value. Scalar expressions (Value, FunctionCall, Comparison, ...) return
// true; clause-only nodes (Where, JoinStatement, OrderByStatement, ...)
// return false.
type Expression interface {
	Returns() bool
}

// scalar is embedded by every variant that always yields a value, so the
// Returns() method doesn't have to be repeated on each struct.
type scalar struct{}

func (scalar) Returns() bool { return true }

// clauseOnly is embedded by variants that are clause-holders, not values.
type clauseOnly struct{}

func (clauseOnly) Returns() bool { return false }

// NullValue renders the SQL NULL literal.
type NullValue struct{ scalar }

// Null is the single shared NullValue instance; NullValue carries no state.
var Null = NullValue{}

// Value holds an arbitrary native payload that is bound into the
// ArgumentBag and rendered as a dialect placeholder. Type is an optional
// type hint (e.g. "int", "json", "uuid") consulted by the Converter.
type Value struct {
	scalar
	Payload interface{}
	Type    string
}

// NewValue creates an untyped Value.
func NewValue(payload interface{}) Value {
	return Value{Payload: payload}
}

// NewTypedValue creates a Value carrying an explicit type hint.
func NewTypedValue(payload interface{}, typ string) Value {
	return Value{Payload: payload, Type: typ}
}

// Row is a parenthesized, comma-separated list of expressions, optionally
// cast to a target type: "(a, b, c)" or "cast((a, b, c) as T)".
type Row struct {
	scalar
	Values []Expression
	Cast   string
}

// NewRow builds a Row from the given values.
func NewRow(values ...Expression) Row {
	return Row{Values: values}
}

// ArrayValue renders "array[...]", optionally cast to "T[]".
type ArrayValue struct {
	scalar
	Values    []Expression
	ElemType  string
	CastArray bool
}

// NewArrayValue builds an ArrayValue of the given element type.
func NewArrayValue(elemType string, cast bool, values ...Expression) ArrayValue {
	return ArrayValue{Values: values, ElemType: elemType, CastArray: cast}
}

// Identifier is a bare, escaper-quoted name with no special casing (unlike
// ColumnName, which treats "*" specially).
type Identifier struct {
	scalar
	Name      string
	Namespace string
}

// NewIdentifier builds an Identifier, optionally namespaced.
func NewIdentifier(name string, namespace ...string) Identifier {
	i := Identifier{Name: name}
	if len(namespace) > 0 {
		i.Namespace = namespace[0]
	}
	return i
}

// ColumnName is a column reference. Name == "*" is rendered unquoted.
type ColumnName struct {
	scalar
	Name      string
	Namespace string
}

// NewColumnName builds a ColumnName, optionally namespaced ("t.col").
func NewColumnName(name string, namespace ...string) ColumnName {
	c := ColumnName{Name: name}
	if len(namespace) > 0 {
		c.Namespace = namespace[0]
	}
	return c
}

// TableName is a table reference, optionally namespaced by schema.
type TableName struct {
	scalar
	Name      string
	Namespace string
}

// NewTableName builds a TableName, optionally schema-namespaced.
func NewTableName(name string, namespace ...string) TableName {
	t := TableName{Name: name}
	if len(namespace) > 0 {
		t.Namespace = namespace[0]
	}
	return t
}

// Raw is an escape-hatch expression: a user-supplied SQL template with
// positional arguments, subject to placeholder parsing.
type Raw struct {
	scalar
	Template string
	Args     []interface{}
}

// NewRaw builds a Raw fragment.
func NewRaw(template string, args ...interface{}) Raw {
	return Raw{Template: template, Args: args}
}

// RawQuery is a Raw fragment flagged as a full statement; it is always
// parenthesized when it appears in a value position.
type RawQuery struct {
	scalar
	Template string
	Args     []interface{}
}

// NewRawQuery builds a RawQuery fragment.
func NewRawQuery(template string, args ...interface{}) RawQuery {
	return RawQuery{Template: template, Args: args}
}

// Aliased wraps an inner expression with a rendering alias: "inner as
// \"alias\"". Nothing checks the alias at construction; the writer drops a
// numeric or empty alias (or one equal to the rendered inner fragment) and
// renders the inner expression alone.
type Aliased struct {
	scalar
	Inner Expression
	Alias string
}

// NewAliased wraps inner with the given alias.
func NewAliased(inner Expression, alias string) Aliased {
	return Aliased{Inner: inner, Alias: alias}
}
