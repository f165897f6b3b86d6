package render

// RowLockingLevel indicates the level of row-level locking support.
type RowLockingLevel int

const (
	RowLockingNone  RowLockingLevel = iota // No row locking
	RowLockingBasic                        // FOR UPDATE, FOR SHARE
	RowLockingFull                         // + FOR NO KEY UPDATE, FOR KEY SHARE
)

// Capabilities describes the SQL features supported by a dialect. The base
// Writer consults these flags to decide whether it can emit a construct
// directly or must fall back to a dialect-neutral rewrite (e.g. Aggregate
// FILTER rewritten to CASE WHEN when FilterClause is false).
type Capabilities struct {
	DistinctOn          bool            // DISTINCT ON (field, ...)
	Upsert              bool            // ON CONFLICT / ON DUPLICATE KEY
	Returning           bool            // RETURNING clause
	CaseInsensitiveLike bool            // ILIKE operator
	RegexOperators      bool            // ~, ~*, !~, !~*
	ArrayOperators      bool            // @>, <@, &&
	InArray             bool            // IN (:array_param)
	FilterClause        bool            // FILTER (WHERE ...) on aggregates
	RowLocking          RowLockingLevel // FOR UPDATE/SHARE support
}

// DialectOps is the composition seam a concrete dialect package supplies to
// the shared base Writer (design note: "dialect specialization via method
// overriding becomes composition"). Every hook has a default the base
// Writer falls back to when a dialect leaves the field nil, so a dialect
// package only needs to implement the hooks where it actually diverges.
type DialectOps struct {
	// Name is used in error messages ("postgresql", "mysql", ...).
	Name string

	// Caps describes this dialect's feature support.
	Caps Capabilities

	// Escaper is the dialect's quoting/placeholder primitive set.
	Escaper Escaper

	// FormatCurrentTimestamp renders the CurrentTimestamp expression.
	// Defaults to "current_timestamp".
	FormatCurrentTimestamp func() string

	// FormatInsertDefaultValues renders the token used for "INSERT INTO t
	// DEFAULT VALUES" equivalents. Defaults to "default values".
	FormatInsertDefaultValues func() string

	// FormatLimitOffset renders the LIMIT/OFFSET (or dialect equivalent)
	// suffix given a possibly-nil limit/offset pair. Defaults to the
	// standard "limit N" / "offset N" / "limit N offset N" form.
	FormatLimitOffset func(limit, offset *int) string

	// FormatConstantTableRow renders a single VALUES row. MySQL's
	// historical divergence (ROW(...) prefix) is expressed here.
	FormatConstantTableRow func(rendered string) string

	// FormatCast renders a CAST(expr AS type) construct given the already
	// rendered inner expression. Defaults to "cast(<inner> as <type>)".
	FormatCast func(inner, typ string) string

	// RandomFunc returns the dialect's random() call, and RandomIntExpr
	// builds a RandomInt rendering from already-rendered min/max operands.
	RandomFunc    func() string
	RandomIntExpr func(minSQL, maxSQL string) string

	// FormatReturning renders a statement's "give back the affected rows"
	// clause given its already-escaped column fragments and the statement
	// kind ("insert", "update", or "delete"). Defaults to a standard
	// "\nreturning col, col" clause; SQL Server overrides this to emit
	// "\noutput inserted.col, ..." / "\noutput deleted.col, ...".
	FormatReturning func(cols []string, kind string) string
}
