package schema

import (
	"context"
	"strings"

	"github.com/zoobzio/pipz"
	"github.com/zoobzio/sentinel"
	"github.com/zoobzio/zlog"
)

// FromSentinel builds a Registry from every Go struct already registered
// with sentinel.Inspect[T](), reading each field's "db" tag as its column
// name and its type name (pluralized) as its table name. A "METADATA_EXTRACTED"
// hook keeps the registry in sync as new structs are inspected after this
// call returns.
func FromSentinel() *Registry {
	r := &Registry{
		tables:  make(map[string]bool),
		columns: make(map[string]map[string]bool),
	}

	for typeName, metadata := range sentinel.Schema() {
		if idx := strings.LastIndex(typeName, "."); idx >= 0 {
			typeName = typeName[idx+1:]
		}
		r.extract(typeName, metadata)
	}

	hook := pipz.Apply[zlog.Event[sentinel.ExtractionEvent]]("arbor-schema", func(_ context.Context, event zlog.Event[sentinel.ExtractionEvent]) (zlog.Event[sentinel.ExtractionEvent], error) {
		typeName := event.Data.TypeName
		if idx := strings.LastIndex(typeName, "."); idx >= 0 {
			typeName = typeName[idx+1:]
		}
		r.extract(typeName, event.Data.Metadata)
		return event, nil
	})
	sentinel.Logger.Extraction.Hook("METADATA_EXTRACTED", hook)

	return r
}

// extract registers typeName as a table (pluralized, snake_cased) and every
// field carrying a non-"-" db tag as one of its columns.
func (r *Registry) extract(typeName string, metadata sentinel.ModelMetadata) {
	table := typeNameToTableName(typeName)
	if !isValidSQLIdentifier(table) {
		zlog.Debug("arbor-schema: skipping unsafe table name", zlog.String("type", typeName), zlog.String("table", table))
		return
	}

	r.tables[table] = true
	cols := r.columns[table]
	if cols == nil {
		cols = make(map[string]bool)
		r.columns[table] = cols
	}

	for _, field := range metadata.Fields {
		dbTag, ok := field.Tags["db"]
		if !ok || dbTag == "-" {
			continue
		}
		if !isValidSQLIdentifier(dbTag) {
			zlog.Debug("arbor-schema: skipping unsafe column name", zlog.String("field", field.Name), zlog.String("column", dbTag))
			continue
		}
		cols[dbTag] = true
		zlog.Debug("arbor-schema: registered column", zlog.String("table", table), zlog.String("column", dbTag))
	}
}

// typeNameToTableName converts a Go type name to the snake_case, pluralized
// table name convention this package assumes ("OrderItem" -> "order_items").
func typeNameToTableName(typeName string) string {
	var b strings.Builder
	for i, ch := range typeName {
		if i > 0 && ch >= 'A' && ch <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(ch)
	}
	return strings.ToLower(b.String()) + "s"
}

// isValidSQLIdentifier guards any identifier admitted into the registry,
// from either schema source, against injection-flavored input.
func isValidSQLIdentifier(s string) bool {
	if s == "" {
		return false
	}

	first := s[0]
	if !((first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z') || first == '_') {
		return false
	}
	for i := 1; i < len(s); i++ {
		ch := s[i]
		if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_') {
			return false
		}
	}

	lower := strings.ToLower(s)
	suspicious := []string{
		";", "--", "/*", "*/", "'", "\"", "`", "\\",
		" or ", " and ", "drop table", "delete from",
		"insert into", "update set", "select ",
		"union all", "union select",
	}
	for _, pattern := range suspicious {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	return !strings.Contains(s, " ")
}
