package convert

import (
	"reflect"
	"testing"

	"github.com/arborsql/arbor/internal/ast"
)

func TestToExpressionDispatchesReservedTypeHints(t *testing.T) {
	c := NewDefaultConverter()

	cases := []struct {
		hint string
		in   interface{}
		want ast.Expression
	}{
		{"column", "u.id", ast.NewColumnName("id", "u")},
		{"identifier", "public.users", ast.NewIdentifier("users", "public")},
		{"table", "users", ast.NewTableName("users")},
		{"value", 5, ast.NewValue(5)},
		{"row", []interface{}{1, "a"}, ast.NewRow(ast.NewValue(1), ast.NewValue("a"))},
		{"array", []interface{}{1, 2}, ast.NewArrayValue("", false, ast.NewValue(1), ast.NewValue(2))},
	}

	for _, tc := range cases {
		got, err := c.ToExpression(tc.in, tc.hint)
		if err != nil {
			t.Fatalf("ToExpression(%q) error = %v", tc.hint, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ToExpression(%q) = %#v, want %#v", tc.hint, got, tc.want)
		}
	}
}

func TestToExpressionOtherHintProducesTypedValue(t *testing.T) {
	c := NewDefaultConverter()

	got, err := c.ToExpression(int64(7), "bigint")
	if err != nil {
		t.Fatalf("ToExpression() error = %v", err)
	}
	want := ast.NewTypedValue(int64(7), "bigint")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToExpression() = %#v, want %#v", got, want)
	}
}
