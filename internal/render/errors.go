package render

import "fmt"

// QueryBuilderError is the general structural error: a required clause is
// missing, or a construction is otherwise illegal independent of dialect
// (no SET list on UPDATE, an unknown MERGE conflict action, an illegal
// first-join mode, subquery nesting beyond MaxDepth). An empty table name
// on INSERT/UPDATE/DELETE is not checked and does not produce this error.
type QueryBuilderError struct {
	Op     string // the clause or operation being rendered, e.g. "insert"
	Reason string
}

func (e *QueryBuilderError) Error() string {
	return fmt.Sprintf("query builder: %s: %s", e.Op, e.Reason)
}

// NewQueryBuilderError creates a QueryBuilderError.
func NewQueryBuilderError(op, reason string) error {
	return &QueryBuilderError{Op: op, Reason: reason}
}

// UnsupportedExpressionError indicates the writer's dispatch encountered an
// expression class it does not recognize, after exhausting the two
// last-resort checks (FunctionCall, Comparison) for user-defined subclasses.
type UnsupportedExpressionError struct {
	Class string
}

func (e *UnsupportedExpressionError) Error() string {
	return fmt.Sprintf("query builder: unsupported expression: %s", e.Class)
}

// NewUnsupportedExpressionError creates an UnsupportedExpressionError.
func NewUnsupportedExpressionError(class string) error {
	return &UnsupportedExpressionError{Class: class}
}

// ValueConversionError indicates the Converter could not coerce a value to
// the requested type. Cause, if present, is the underlying reason from the
// built-in conversion (for example a JSON encoding failure). An error
// returned by a converter plugin reaches the caller as is, not wrapped in
// this type.
type ValueConversionError struct {
	Value interface{}
	Type  string
	Cause error
}

func (e *ValueConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("query builder: cannot convert value of type %T to %q: %v", e.Value, e.Type, e.Cause)
	}
	return fmt.Sprintf("query builder: cannot convert value of type %T to %q", e.Value, e.Type)
}

func (e *ValueConversionError) Unwrap() error { return e.Cause }

// NewValueConversionError creates a ValueConversionError.
func NewValueConversionError(value interface{}, typ string, cause error) error {
	return &ValueConversionError{Value: value, Type: typ, Cause: cause}
}

// UnsupportedFeatureError indicates a feature not supported by the dialect
// (e.g. MERGE or RETURNING on a backend that lacks it).
type UnsupportedFeatureError struct {
	Feature string
	Dialect string
	Hint    string
}

func (e UnsupportedFeatureError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s is not supported: %s", e.Dialect, e.Feature, e.Hint)
	}
	return fmt.Sprintf("%s: %s is not supported", e.Dialect, e.Feature)
}

// NewUnsupportedFeatureError creates a new unsupported feature error.
func NewUnsupportedFeatureError(dialect, feature string, hint ...string) error {
	err := UnsupportedFeatureError{Feature: feature, Dialect: dialect}
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	return err
}
