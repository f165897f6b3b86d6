package ast

// Concat renders its arguments joined by the dialect's string-concatenation
// operator (by default "||").
type Concat struct {
	scalar
	Args []Expression
}

// NewConcat builds a Concat expression.
func NewConcat(args ...Expression) Concat {
	return Concat{Args: args}
}

// Cast renders "cast(inner as type)".
type Cast struct {
	scalar
	Inner Expression
	Type  string
}

// NewCast builds a Cast expression.
func NewCast(inner Expression, typ string) Cast {
	return Cast{Inner: inner, Type: typ}
}

// FunctionCall renders "name(arg, arg, ...)". The function name is
// identifier-escaped only when it contains non-alphanumeric characters.
type FunctionCall struct {
	scalar
	Name string
	Args []Expression
}

// NewFunctionCall builds a FunctionCall.
func NewFunctionCall(name string, args ...Expression) FunctionCall {
	return FunctionCall{Name: name, Args: args}
}

// Aggregate renders an aggregate function, optionally with a FILTER clause
// and/or an OVER window.
type Aggregate struct {
	scalar
	Function string
	Column   Expression
	Filter   *Where
	Over     *Window
}

// NewAggregate builds an Aggregate over column (which may be nil, e.g. for
// COUNT(*)).
func NewAggregate(function string, column Expression) Aggregate {
	return Aggregate{Function: function, Column: column}
}

// WithFilter returns a copy of a with the FILTER clause set.
func (a Aggregate) WithFilter(w Where) Aggregate {
	a.Filter = &w
	return a
}

// WithOver returns a copy of a with the OVER window set.
func (a Aggregate) WithOver(win Window) Aggregate {
	a.Over = &win
	return a
}

// Window represents a window specification, usable inline (OVER (...)) or
// named via Alias and declared once in a WINDOW clause.
type Window struct {
	clauseOnly
	Alias       string
	PartitionBy []Expression
	OrderBy     []OrderByStatement
}

// NewWindow builds a Window specification.
func NewWindow(partitionBy []Expression, orderBy []OrderByStatement) Window {
	return Window{PartitionBy: partitionBy, OrderBy: orderBy}
}

// CurrentTimestamp renders "current_timestamp" by default; dialects may
// override the token.
type CurrentTimestamp struct{ scalar }

// Random renders a dialect-specific random() call.
type Random struct{ scalar }

// RandomInt renders an integer random value in [Min, Max].
type RandomInt struct {
	scalar
	Min Expression
	Max Expression
}

// NewRandomInt builds a RandomInt. Neither this constructor nor the writer
// checks that Max >= Min; the operands are rendered in the order given.
func NewRandomInt(min, max Expression) RandomInt {
	return RandomInt{Min: min, Max: max}
}

// LikePattern substitutes an escaped value into a LIKE pattern template,
// e.g. template "%?%" with reserved chars neutralized in the value.
type LikePattern struct {
	scalar
	Column    Expression
	Raw       Expression
	Template  string
	Reserved  []rune
}

// NewLikePattern builds a LikePattern.
func NewLikePattern(column, raw Expression, template string, reserved ...rune) LikePattern {
	return LikePattern{Column: column, Raw: raw, Template: template, Reserved: reserved}
}

// SimilarToPattern is like LikePattern but for SIMILAR TO / regex-flavored
// matching, with case sensitivity controlled by CaseSensitive.
type SimilarToPattern struct {
	scalar
	Column        Expression
	Raw           Expression
	Template      string
	Reserved      []rune
	CaseSensitive bool
	Regex         bool
}

// NewSimilarToPattern builds a SimilarToPattern.
func NewSimilarToPattern(column, raw Expression, template string, caseSensitive, regex bool, reserved ...rune) SimilarToPattern {
	return SimilarToPattern{
		Column:        column,
		Raw:           raw,
		Template:      template,
		Reserved:      reserved,
		CaseSensitive: caseSensitive,
		Regex:         regex,
	}
}
