// Package mysql provides the MySQL dialect for arbor: backtick-quoted
// identifiers, unnumbered "?" placeholders, no RETURNING, no MERGE (the
// writer returns an unsupported-feature error; no ON DUPLICATE KEY form is
// rendered in its place), and no FILTER clause on aggregates (rewritten to
// CASE WHEN by the shared writer).
package mysql

import (
	"strings"

	"github.com/arborsql/arbor/internal/render"
)

// New builds the MySQL dialect Writer.
func New() *render.Writer {
	return render.NewWriter(render.DialectOps{
		Name:    "mysql",
		Escaper: escaper{},
		Caps: render.Capabilities{
			Returning:  false,
			RowLocking: render.RowLockingBasic,
		},
		FormatConstantTableRow: formatConstantTableRow,
	})
}

type escaper struct{}

// EscapeIdentifier quotes with backticks, doubling any embedded backtick.
func (escaper) EscapeIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (e escaper) EscapeIdentifierList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = e.EscapeIdentifier(n)
	}
	return strings.Join(quoted, ", ")
}

func (escaper) EscapeLiteral(s string) string {
	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), "'", `\'`) + "'"
}

func (escaper) EscapeLike(s string, reserved []rune) string {
	chars := []rune{'\\', '%', '_'}
	chars = append(chars, reserved...)
	for _, c := range chars {
		s = strings.ReplaceAll(s, string(c), `\`+string(c))
	}
	return s
}

func (escaper) EscapeBlob(b []byte) string {
	return "0x" + hexEncode(b)
}

// WritePlaceholder ignores index: MySQL's driver binds "?" placeholders
// positionally, by order of appearance, not by number.
func (escaper) WritePlaceholder(int) string { return "?" }

func (escaper) UnescapePlaceholderChar() string { return "?" }

func (escaper) EscapeSequences() []render.EscapeSequence {
	return []render.EscapeSequence{
		{Open: "'", Close: "'"},
		{Open: `"`, Close: `"`},
		{Open: "`", Close: "`"},
		{Open: "#", Close: "\n"},
		{Open: "/*", Close: "*/"},
	}
}

const hexDigits = "0123456789abcdef"

func hexEncode(b []byte) string {
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0x0f]
	}
	return string(out)
}

// formatConstantTableRow expresses MySQL/MariaDB's historical divergence
// (spec.md §4.6): a VALUES row is wrapped in ROW(...) rather than left as a
// bare parenthesized tuple. The writer applies it to every VALUES row,
// including the rows of an INSERT's source.
func formatConstantTableRow(rendered string) string {
	return "row" + rendered
}
