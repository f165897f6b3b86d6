package convert

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/arborsql/arbor/internal/ast"
	"github.com/arborsql/arbor/internal/render"
)

// DefaultConverter is the builder's standard render.Converter: a small
// built-in type table, extensible per call site through a
// ConverterPluginRegistry.
type DefaultConverter struct {
	Registry *ConverterPluginRegistry
}

// NewDefaultConverter creates a DefaultConverter with an empty plugin
// registry; callers extend it via Registry.Register /
// Registry.RegisterTypeGuesser before first use.
func NewDefaultConverter() *DefaultConverter {
	return &DefaultConverter{Registry: NewRegistry()}
}

// ToExpression implements render.Converter. Resolution order: nil -> Null;
// value already an ast.Expression -> passthrough; a hint-specific plugin;
// for an untyped value, the ordered type guessers; the wildcard plugin; the
// built-in type table. An error from a plugin is returned as is; no later
// candidate is tried.
func (c *DefaultConverter) ToExpression(value interface{}, typeHint string) (ast.Expression, error) {
	if value == nil {
		return ast.Null, nil
	}
	if expr, ok := value.(ast.Expression); ok {
		return expr, nil
	}

	if typeHint != "" {
		if conv, ok := c.Registry.lookup(typeHint); ok {
			return conv(value, typeHint)
		}
	}
	if typeHint == "" {
		if expr, ok := c.Registry.guess(value); ok {
			return expr, nil
		}
	}
	if c.Registry.wildcard != nil {
		return c.Registry.wildcard(value, typeHint)
	}

	return builtinToExpression(value, typeHint)
}

// ToSQL implements render.Converter: it drains a bound value down to
// something the driver's database/sql layer accepts directly. An array
// type (typ ending in "[]") is rejected with a ValueConversionError. A
// plugin registered for typ is consulted next and must produce an
// ast.Value, whose payload is returned; its error is returned as is.
// Otherwise a slice value other than []byte is rejected, and every other
// value, time.Time included, is returned unchanged. The wildcard plugin and
// the type guessers are not consulted here.
func (c *DefaultConverter) ToSQL(value interface{}, typ string) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	if strings.HasSuffix(typ, "[]") {
		return nil, render.NewValueConversionError(value, typ, fmt.Errorf("array-typed values are not supported by the default converter"))
	}
	if typeHint := typ; typeHint != "" {
		if conv, ok := c.Registry.lookup(typeHint); ok {
			expr, err := conv(value, typeHint)
			if err != nil {
				return nil, err
			}
			if v, ok := expr.(ast.Value); ok {
				return v.Payload, nil
			}
			return nil, render.NewValueConversionError(value, typ, fmt.Errorf("plugin did not produce a scalar value"))
		}
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		return nil, render.NewValueConversionError(value, typ, fmt.Errorf("array-typed values are not supported by the default converter"))
	}
	return value, nil
}

// builtinToExpression is the fallback type table: numeric kinds, bool,
// strings, time.Time, []byte (blob), and JSON-able composite types
// (map/slice/struct not otherwise claimed) via encoding/json; anything
// else passes through untyped and is left to the driver to reject.
func builtinToExpression(value interface{}, typeHint string) (ast.Expression, error) {
	switch typeHint {
	case "array":
		elems, err := toExpressionSlice(value)
		if err != nil {
			return nil, render.NewValueConversionError(value, typeHint, err)
		}
		return ast.NewArrayValue("", false, elems...), nil
	case "column":
		ns, name := splitQualified(fmt.Sprint(value))
		return ast.NewColumnName(name, ns...), nil
	case "identifier":
		ns, name := splitQualified(fmt.Sprint(value))
		return ast.NewIdentifier(name, ns...), nil
	case "row":
		elems, err := toExpressionSlice(value)
		if err != nil {
			return nil, render.NewValueConversionError(value, typeHint, err)
		}
		return ast.NewRow(elems...), nil
	case "table":
		ns, name := splitQualified(fmt.Sprint(value))
		return ast.NewTableName(name, ns...), nil
	case "value":
		return ast.NewValue(value), nil
	}

	if typeHint != "" {
		return ast.NewTypedValue(value, typeHint), nil
	}

	switch v := value.(type) {
	case time.Time:
		return ast.NewTypedValue(v, "timestamp"), nil
	case []byte:
		return ast.NewTypedValue(v, "blob"), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, string:
		return ast.NewValue(v), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return nil, render.NewValueConversionError(value, typeHint,
			fmt.Errorf("array-typed Converter values are not implemented; pass an ast.ArrayValue or ast.Row explicitly"))
	case reflect.Map, reflect.Struct:
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, render.NewValueConversionError(value, typeHint, err)
		}
		return ast.NewTypedValue(string(encoded), "json"), nil
	case reflect.Ptr:
		if rv.IsNil() {
			return ast.Null, nil
		}
		return builtinToExpression(rv.Elem().Interface(), typeHint)
	default:
		return ast.NewValue(value), nil
	}
}

// splitQualified separates a dotted "namespace.name" string into its
// namespace (as a 0-or-1-length variadic slice) and bare name, for the
// column/table/identifier type hints accepted by a raw placeholder.
func splitQualified(s string) ([]string, string) {
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		return []string{s[:idx]}, s[idx+1:]
	}
	return nil, s
}

// toExpressionSlice converts a []interface{} (the shape expected for the
// "row" and "array" type hints) element-by-element through the untyped
// built-in table, so nested literals inside a raw ?::row/?::array
// placeholder get the same scalar treatment as a top-level bound value.
func toExpressionSlice(value interface{}) ([]ast.Expression, error) {
	elems, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected []interface{}, got %T", value)
	}
	out := make([]ast.Expression, len(elems))
	for i, e := range elems {
		expr, err := builtinToExpression(e, "")
		if err != nil {
			return nil, err
		}
		out[i] = expr
	}
	return out, nil
}
