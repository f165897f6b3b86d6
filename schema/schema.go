// Package schema provides an optional safety layer that validates table and
// column names against a known schema before they ever reach the builder.
// The Writer never consults this package — it only protects a caller who
// wants typoed identifiers caught before a query is even assembled.
//
// Two schema sources are supported: a DBML project (Registry built via New)
// and Go structs registered with Sentinel (Registry built via FromSentinel).
package schema

import (
	"fmt"

	"github.com/zoobzio/dbml"

	"github.com/arborsql/arbor/internal/ast"
)

// Registry indexes a known schema for fast table/column lookup.
type Registry struct {
	tables  map[string]bool
	columns map[string]map[string]bool
}

// New builds a Registry from a DBML project.
func New(project *dbml.Project) (*Registry, error) {
	if project == nil {
		return nil, fmt.Errorf("schema: project cannot be nil")
	}

	r := &Registry{
		tables:  make(map[string]bool),
		columns: make(map[string]map[string]bool),
	}
	for _, table := range project.Tables {
		if !isValidSQLIdentifier(table.Name) {
			continue
		}
		r.tables[table.Name] = true
		cols := make(map[string]bool, len(table.Columns))
		for _, col := range table.Columns {
			if !isValidSQLIdentifier(col.Name) {
				continue
			}
			cols[col.Name] = true
		}
		r.columns[table.Name] = cols
	}
	return r, nil
}

// TryTable returns a validated ast.TableName, or an error if name is not a
// known table.
func (r *Registry) TryTable(name string, namespace ...string) (ast.TableName, error) {
	if !r.tables[name] {
		return ast.TableName{}, fmt.Errorf("schema: table %q not found", name)
	}
	return ast.NewTableName(name, namespace...), nil
}

// Table returns a validated ast.TableName, panicking if name is unknown.
func (r *Registry) Table(name string, namespace ...string) ast.TableName {
	t, err := r.TryTable(name, namespace...)
	if err != nil {
		panic(err)
	}
	return t
}

// TryColumn returns a validated ast.ColumnName scoped to table, or an error
// if either the table or the column is unknown.
func (r *Registry) TryColumn(table, name string) (ast.ColumnName, error) {
	cols, ok := r.columns[table]
	if !ok {
		return ast.ColumnName{}, fmt.Errorf("schema: table %q not found", table)
	}
	if !cols[name] {
		return ast.ColumnName{}, fmt.Errorf("schema: column %q not found on table %q", name, table)
	}
	return ast.NewColumnName(name, table), nil
}

// Column returns a validated ast.ColumnName, panicking if table or name is
// unknown.
func (r *Registry) Column(table, name string) ast.ColumnName {
	c, err := r.TryColumn(table, name)
	if err != nil {
		panic(err)
	}
	return c
}
