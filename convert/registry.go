// Package convert implements render.Converter: the bridge between native Go
// values passed into Raw templates or bound directly, and the expression
// tree / driver-native values the rest of the builder deals in.
//
// DefaultConverter ships a sensible built-in type table (numeric, boolean,
// textual, JSON) and can be extended per call site with a
// ConverterPluginRegistry keyed by type hint, plus a wildcard and an
// ordered list of type guessers consulted before the built-in fallback.
package convert

import "github.com/arborsql/arbor/internal/ast"

// InputConverter turns a native value (plus its type hint, which may be
// empty) into an expression tree node. Registered per type hint, or as the
// "*" wildcard consulted when no hint-specific converter matches.
type InputConverter func(value interface{}, typeHint string) (ast.Expression, error)

// InputTypeGuesser inspects a value with no type hint and, if it recognizes
// the value's shape, returns the expression to use for it. Guessers run in
// registration order before the built-in fallback.
type InputTypeGuesser func(value interface{}) (ast.Expression, bool)

// ConverterPluginRegistry holds the extension points a DefaultConverter
// consults before falling back to its built-in type table.
type ConverterPluginRegistry struct {
	byHint   map[string]InputConverter
	wildcard InputConverter
	guessers []InputTypeGuesser
}

// NewRegistry creates an empty ConverterPluginRegistry.
func NewRegistry() *ConverterPluginRegistry {
	return &ConverterPluginRegistry{byHint: make(map[string]InputConverter)}
}

// Register associates conv with typeHint. Registering under the wildcard
// hint "*" makes conv the catch-all consulted when no hint-specific entry
// matches and no guesser claims the value.
func (r *ConverterPluginRegistry) Register(typeHint string, conv InputConverter) {
	if typeHint == "*" {
		r.wildcard = conv
		return
	}
	r.byHint[typeHint] = conv
}

// MustRegister is Register, but panics if typeHint is already registered.
// Intended for package-init-time registration where a collision is a
// programming error, not a runtime condition to recover from.
func (r *ConverterPluginRegistry) MustRegister(typeHint string, conv InputConverter) {
	if typeHint != "*" {
		if _, exists := r.byHint[typeHint]; exists {
			panic("convert: type hint " + typeHint + " already registered")
		}
	} else if r.wildcard != nil {
		panic("convert: wildcard converter already registered")
	}
	r.Register(typeHint, conv)
}

// RegisterTypeGuesser appends g to the list of guessers consulted, in
// registration order, for untyped values.
func (r *ConverterPluginRegistry) RegisterTypeGuesser(g InputTypeGuesser) {
	r.guessers = append(r.guessers, g)
}

func (r *ConverterPluginRegistry) lookup(typeHint string) (InputConverter, bool) {
	conv, ok := r.byHint[typeHint]
	return conv, ok
}

func (r *ConverterPluginRegistry) guess(value interface{}) (ast.Expression, bool) {
	for _, g := range r.guessers {
		if expr, ok := g(value); ok {
			return expr, true
		}
	}
	return nil, false
}
