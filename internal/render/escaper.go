package render

// EscapeSequence is a delimiter pair whose interior the raw-placeholder
// parser must skip over verbatim (e.g. the pair {"'", "'"} for single-quoted
// string literals, or {"$tag$", "$tag$"} for Postgres dollar-quoting).
type EscapeSequence struct {
	Open  string
	Close string
}

// Escaper is the dialect's sole source of quoting and placeholder truth.
// The Writer never constructs a quoted token itself; every identifier,
// literal, LIKE pattern, or blob passes through one of these methods.
type Escaper interface {
	// EscapeIdentifier quotes a single identifier.
	EscapeIdentifier(name string) string

	// EscapeIdentifierList quotes and comma-joins a list of identifiers.
	EscapeIdentifierList(names []string) string

	// EscapeLiteral quotes a string for direct inclusion in SQL text. Used
	// only for the one spec-sanctioned literal-inlining case: a raw string
	// passed as the value of an UPDATE SET clause.
	EscapeLiteral(s string) string

	// EscapeLike neutralizes LIKE/SIMILAR TO special characters in s.
	// reserved, if non-empty, names additional characters to escape;
	// implementations may ignore it if their escaping scheme does not
	// support per-call reserved characters.
	EscapeLike(s string, reserved []rune) string

	// EscapeBlob renders bytes as the dialect's binary literal.
	EscapeBlob(b []byte) string

	// WritePlaceholder returns the placeholder token for the i-th bound
	// argument (0-based). The standard implementation returns "?";
	// others return "$1", ":p1", "@p1", and so on.
	WritePlaceholder(index int) string

	// UnescapePlaceholderChar returns what a "??" token in a Raw template
	// must become once parsed. Usually "?"; for drivers that themselves
	// perform substitution of doubled markers, this may be "??".
	UnescapePlaceholderChar() string

	// EscapeSequences enumerates the string-delimiter pairs whose interior
	// the raw-placeholder parser must not interpret as placeholders.
	EscapeSequences() []EscapeSequence
}
