package ast

// Comparison is a binary predicate. All three parts are optional; a
// formatter omits whichever are missing (used by callers building a
// comparison incrementally, e.g. via a fluent builder).
type Comparison struct {
	scalar
	Left     Expression
	Operator string
	Right    Expression
}

// NewComparison builds a full left/operator/right comparison.
func NewComparison(left Expression, operator string, right Expression) Comparison {
	return Comparison{Left: left, Operator: operator, Right: right}
}

// Between renders "column between from and to".
type Between struct {
	scalar
	Column Expression
	From   Expression
	To     Expression
}

// NewBetween builds a Between predicate.
func NewBetween(column, from, to Expression) Between {
	return Between{Column: column, From: from, To: to}
}

// Not renders "not (inner)"; parenthesization around inner is forced.
type Not struct {
	scalar
	Inner Expression
}

// NewNot negates inner.
func NewNot(inner Expression) Not {
	return Not{Inner: inner}
}

// IfThen is a single WHEN ... THEN ... pair. A lone IfThen reduces to a
// CaseWhen with one clause and no else.
type IfThen struct {
	scalar
	Condition Expression
	Then      Expression
}

// NewIfThen builds an IfThen pair.
func NewIfThen(condition, then Expression) IfThen {
	return IfThen{Condition: condition, Then: then}
}

// CaseWhen is a SQL CASE expression. With no clauses it degenerates to its
// Else expression (or NULL if Else is also nil).
type CaseWhen struct {
	scalar
	Cases []IfThen
	Else  Expression
}

// NewCaseWhen builds a CaseWhen from the given clauses.
func NewCaseWhen(cases ...IfThen) CaseWhen {
	return CaseWhen{Cases: cases}
}

// WithElse returns a copy of c with the else branch set.
func (c CaseWhen) WithElse(e Expression) CaseWhen {
	c.Else = e
	return c
}

// Where is a logical grouping of conditions joined by AND/OR. An empty
// Where renders "1"; nested empty Wheres are skipped rather than emitting
// an empty parenthesized group.
type Where struct {
	clauseOnly
	Operator   string // "and" or "or"
	Conditions []Expression
}

// NewWhere builds a Where group with the given logical operator.
func NewWhere(operator string, conditions ...Expression) Where {
	return Where{Operator: operator, Conditions: conditions}
}

// IsEmpty reports whether this Where carries no meaningful conditions,
// i.e. it is empty or every nested condition is itself an empty Where.
func (w Where) IsEmpty() bool {
	for _, c := range w.Conditions {
		if nested, ok := c.(Where); ok {
			if !nested.IsEmpty() {
				return false
			}
			continue
		}
		return false
	}
	return true
}
