// Package mssql provides the SQL Server dialect for arbor: square-bracket
// identifiers, "@pN" numbered placeholders, an OUTPUT-based RETURNING
// equivalent (INSERTED./DELETED. prefixed columns), and native MERGE.
package mssql

import (
	"strconv"
	"strings"

	"github.com/arborsql/arbor/internal/render"
)

// New builds the SQL Server dialect Writer.
func New() *render.Writer {
	return render.NewWriter(render.DialectOps{
		Name:    "mssql",
		Escaper: escaper{},
		Caps: render.Capabilities{
			Upsert:     true,
			Returning:  true,
			RowLocking: render.RowLockingNone,
		},
		FormatReturning:   formatReturning,
		FormatLimitOffset: formatLimitOffset,
	})
}

// formatReturning renders SQL Server's OUTPUT clause: INSERT/UPDATE expose
// the new row as INSERTED.col, DELETE exposes the removed row as
// DELETED.col.
func formatReturning(cols []string, kind string) string {
	prefix := "inserted."
	if kind == "delete" {
		prefix = "deleted."
	}
	prefixed := make([]string, len(cols))
	for i, c := range cols {
		prefixed[i] = prefix + c
	}
	return "\noutput " + strings.Join(prefixed, ", ")
}

// formatLimitOffset renders T-SQL's OFFSET/FETCH pagination, the only form
// SQL Server accepts: FETCH NEXT is illegal without a preceding OFFSET, so
// a limit with no offset still emits "offset 0 rows".
func formatLimitOffset(limit, offset *int) string {
	switch {
	case limit != nil && offset != nil:
		return "offset " + strconv.Itoa(*offset) + " rows fetch next " + strconv.Itoa(*limit) + " rows only"
	case limit != nil:
		return "offset 0 rows fetch next " + strconv.Itoa(*limit) + " rows only"
	case offset != nil:
		return "offset " + strconv.Itoa(*offset) + " rows"
	default:
		return ""
	}
}

type escaper struct{}

// EscapeIdentifier quotes with square brackets, doubling any embedded "]".
func (escaper) EscapeIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
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
	chars := []rune{'[', '%', '_'}
	chars = append(chars, reserved...)
	for _, c := range chars {
		s = strings.ReplaceAll(s, string(c), "["+string(c)+"]")
	}
	return s
}

func (escaper) EscapeBlob(b []byte) string {
	return "0x" + hexEncode(b)
}

func (escaper) WritePlaceholder(index int) string {
	return "@p" + strconv.Itoa(index+1)
}

func (escaper) UnescapePlaceholderChar() string { return "?" }

func (escaper) EscapeSequences() []render.EscapeSequence {
	return []render.EscapeSequence{
		{Open: "'", Close: "'"},
		{Open: "[", Close: "]"},
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
