package render

import (
	"strings"

	"github.com/arborsql/arbor/internal/ast"
)

// formatLikePattern substitutes an escaped value into v.Template and, if
// v.Column is set, renders the full "column like pattern" predicate rather
// than just the pattern fragment.
func (w *Writer) formatLikePattern(v ast.LikePattern, ctx *WriterContext) (string, error) {
	patternSQL, err := w.buildPatternValue(v.Raw, v.Template, v.Reserved, ctx)
	if err != nil {
		return "", err
	}
	if v.Column == nil {
		return patternSQL, nil
	}
	colSQL, err := w.Format(v.Column, ctx, false)
	if err != nil {
		return "", err
	}
	return colSQL + " like " + patternSQL, nil
}

// formatSimilarToPattern is LikePattern's regex-flavored sibling: a literal
// template substitution (SIMILAR TO) or, when Regex is set and the dialect
// advertises RegexOperators, one of the ~ operator family.
func (w *Writer) formatSimilarToPattern(v ast.SimilarToPattern, ctx *WriterContext) (string, error) {
	if v.Regex && w.Ops.Caps.RegexOperators {
		rawSQL, err := w.Format(v.Raw, ctx, false)
		if err != nil {
			return "", err
		}
		op := "~"
		if !v.CaseSensitive {
			op = "~*"
		}
		if v.Column == nil {
			return rawSQL, nil
		}
		colSQL, err := w.Format(v.Column, ctx, false)
		if err != nil {
			return "", err
		}
		return colSQL + " " + op + " " + rawSQL, nil
	}

	patternSQL, err := w.buildPatternValue(v.Raw, v.Template, v.Reserved, ctx)
	if err != nil {
		return "", err
	}
	if v.Column == nil {
		return patternSQL, nil
	}
	colSQL, err := w.Format(v.Column, ctx, false)
	if err != nil {
		return "", err
	}
	return colSQL + " similar to " + patternSQL, nil
}

// buildPatternValue escapes raw's native string value (when it is a literal
// ast.Value) and substitutes it into template's single "?" marker at compile
// time. When raw isn't a literal string, it falls back to a dialect-side
// concatenation of the template's literal pieces around the formatted
// expression, since the escaping can't happen client-side.
func (w *Writer) buildPatternValue(raw ast.Expression, template string, reserved []rune, ctx *WriterContext) (string, error) {
	esc := w.Ops.Escaper

	if lit, ok := raw.(ast.Value); ok {
		if s, ok := lit.Payload.(string); ok {
			escaped := esc.EscapeLike(s, reserved)
			pattern := strings.Replace(template, "?", escaped, 1)
			return ctx.BindValue(esc, pattern, lit.Type), nil
		}
	}

	rawSQL, err := w.Format(raw, ctx, false)
	if err != nil {
		return "", err
	}
	before, after, found := strings.Cut(template, "?")
	if !found {
		return ctx.BindValue(esc, template, ""), nil
	}

	var parts []string
	if before != "" {
		parts = append(parts, ctx.BindValue(esc, before, ""))
	}
	parts = append(parts, rawSQL)
	if after != "" {
		parts = append(parts, ctx.BindValue(esc, after, ""))
	}
	return strings.Join(parts, " || "), nil
}
