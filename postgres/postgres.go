// Package postgres provides the PostgreSQL dialect for arbor: double-quoted
// identifiers, "$N" positional placeholders, RETURNING, FILTER, the ~ and
// ~* regex operators, and MERGE support (Postgres 15+). The DistinctOn
// capability is set, but the writer renders only a plain DISTINCT; DISTINCT
// ON is not rendered.
package postgres

import (
	"strconv"
	"strings"

	"github.com/arborsql/arbor/internal/render"
)

// New builds the PostgreSQL dialect Writer.
func New() *render.Writer {
	return render.NewWriter(render.DialectOps{
		Name:    "postgresql",
		Escaper: escaper{},
		Caps: render.Capabilities{
			DistinctOn:          true,
			Upsert:              true,
			Returning:           true,
			CaseInsensitiveLike: true,
			RegexOperators:      true,
			ArrayOperators:      true,
			InArray:             true,
			FilterClause:        true,
			RowLocking:          render.RowLockingFull,
		},
	})
}

type escaper struct{}

// EscapeIdentifier quotes a PostgreSQL identifier with double quotes,
// doubling any embedded quote.
func (escaper) EscapeIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (e escaper) EscapeIdentifierList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = e.EscapeIdentifier(n)
	}
	return strings.Join(quoted, ", ")
}

func (escaper) EscapeLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
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
	return `'\x` + hexEncode(b) + "'"
}

func (escaper) WritePlaceholder(index int) string {
	return "$" + strconv.Itoa(index+1)
}

func (escaper) UnescapePlaceholderChar() string { return "?" }

func (escaper) EscapeSequences() []render.EscapeSequence {
	return []render.EscapeSequence{
		{Open: "'", Close: "'"},
		{Open: `"`, Close: `"`},
		{Open: "--", Close: "\n"},
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
