package render

import (
	"regexp"
	"strings"

	"github.com/arborsql/arbor/internal/ast"
)

// formatFunc renders an expression within the given context. The Writer
// passes a closure over its Format method, so the parser itself holds no
// reference to the Writer type.
type formatFunc func(ast.Expression, *WriterContext) (string, error)

// rawPlaceholderParser recognizes the placeholder grammar documented in
// spec.md §6.2:
//
//	token := ESC_SPAN | "??" | "?" TYPE? | other
//	TYPE   := "::" IDENT
//	IDENT  := [A-Za-z_][A-Za-z0-9_]*
//
// The pattern is compiled once per dialect, from that dialect's Escaper's
// declared EscapeSequences, and reused for every Raw/RawQuery rendered
// through writers built with it.
type rawPlaceholderParser struct {
	re *regexp.Regexp
}

// newRawPlaceholderParser builds the parser's regex from seqs. Alternation
// order is: escape-sequence spans, then "??", then "?" with an optional
// "::IDENT" suffix, matching spec.md §4.4's stated ordering.
func newRawPlaceholderParser(seqs []EscapeSequence) *rawPlaceholderParser {
	var spans []string
	for _, s := range seqs {
		spans = append(spans, escapeSequencePattern(s))
	}

	var pattern strings.Builder
	pattern.WriteString("(")
	if len(spans) > 0 {
		pattern.WriteString(strings.Join(spans, "|"))
	} else {
		// No escape sequences declared: a pattern that never matches.
		pattern.WriteString("$.^")
	}
	pattern.WriteString(")|(\\?\\?)|\\?(?:::([A-Za-z_][A-Za-z0-9_]*))?")

	return &rawPlaceholderParser{re: regexp.MustCompile(pattern.String())}
}

// escapeSequencePattern builds the regex fragment matching one escape span.
// A single-character delimiter that opens and closes the same way (quoted
// strings: ', ", `) supports the doubled-delimiter escaping convention
// ('' inside a '...' literal); any other pair is matched lazily between its
// open and close tokens, with no interior escaping.
func escapeSequencePattern(s EscapeSequence) string {
	open := regexp.QuoteMeta(s.Open)
	closeTok := regexp.QuoteMeta(s.Close)
	if s.Open == s.Close && len(s.Open) == 1 {
		return open + "(?:[^" + open + "]|" + open + open + ")*" + closeTok
	}
	return open + "(?:.|\n)*?" + closeTok
}

// fastPath reports whether template needs no placeholder parsing at all:
// no "?" present and no arguments supplied.
func (p *rawPlaceholderParser) fastPath(template string, args []interface{}) bool {
	return len(args) == 0 && !strings.Contains(template, "?")
}

// Parse walks template, replacing each real placeholder with the formatted
// rendering of its corresponding argument (resolved through the context's
// Converter), and copying escape-sequence spans and "??" through according
// to the escaper's rules. Extra "?"/"?::T" tokens beyond len(args) resolve
// to a null argument, per spec.md §6.2.
func (p *rawPlaceholderParser) Parse(ctx *WriterContext, esc Escaper, template string, args []interface{}, format formatFunc) (string, error) {
	if p.fastPath(template, args) {
		return template, nil
	}

	matches := p.re.FindAllStringSubmatchIndex(template, -1)
	var out strings.Builder
	last := 0
	argIdx := 0

	for _, m := range matches {
		out.WriteString(template[last:m[0]])
		last = m[1]

		switch {
		case m[2] != -1:
			// Escape-sequence span: emit verbatim, placeholders inside ignored.
			out.WriteString(template[m[0]:m[1]])
		case m[4] != -1:
			// "??"
			out.WriteString(esc.UnescapePlaceholderChar())
		default:
			var typeHint string
			if m[6] != -1 {
				typeHint = template[m[6]:m[7]]
			}
			var value interface{}
			if argIdx < len(args) {
				value = args[argIdx]
			}
			argIdx++

			expr, err := ctx.Converter.ToExpression(value, typeHint)
			if err != nil {
				return "", err
			}
			rendered, err := format(expr, ctx)
			if err != nil {
				return "", err
			}
			out.WriteString(rendered)
		}
	}
	out.WriteString(template[last:])
	return out.String(), nil
}
