// Package mariadb provides the MariaDB dialect for arbor. It shares MySQL's
// backtick quoting and unnumbered "?" placeholders, but diverges from it in
// one capability that matters to this builder: MariaDB (10.5+) supports a
// real RETURNING clause on INSERT and DELETE.
package mariadb

import (
	"strings"

	"github.com/arborsql/arbor/internal/render"
)

// New builds the MariaDB dialect Writer.
func New() *render.Writer {
	return render.NewWriter(render.DialectOps{
		Name:    "mariadb",
		Escaper: escaper{},
		Caps: render.Capabilities{
			Returning:  true,
			RowLocking: render.RowLockingBasic,
		},
		FormatConstantTableRow: formatConstantTableRow,
	})
}

type escaper struct{}

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

// formatConstantTableRow mirrors MySQL's ROW(...) wrapping for VALUES rows
// (spec.md §4.6). The writer applies it to every VALUES row, including the
// rows of an INSERT's source.
func formatConstantTableRow(rendered string) string {
	return "row" + rendered
}
