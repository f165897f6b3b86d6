// Package sqlite provides the SQLite dialect for arbor: double-quoted
// identifiers, unnumbered "?" placeholders, RETURNING (3.35+), and no
// FILTER clause on aggregates.
package sqlite

import (
	"strings"

	"github.com/arborsql/arbor/internal/render"
)

// New builds the SQLite dialect Writer.
func New() *render.Writer {
	return render.NewWriter(render.DialectOps{
		Name:    "sqlite",
		Escaper: escaper{},
		Caps: render.Capabilities{
			Upsert:     true,
			Returning:  true,
			RowLocking: render.RowLockingNone,
		},
	})
}

type escaper struct{}

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
	return "x'" + hexEncode(b) + "'"
}

func (escaper) WritePlaceholder(int) string { return "?" }

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
