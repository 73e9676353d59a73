package schema

import (
	"fmt"

	"github.com/Rana718/autoservice/internal/types"
)

// Registry holds declared tables in declaration order. A table can only
// reference tables declared before it, so the registry is always closed
// under its foreign keys.
type Registry struct {
	tables map[string]*types.SchemaTable
	names  []string
}

func NewRegistry() *Registry {
	return &Registry{
		tables: make(map[string]*types.SchemaTable),
	}
}

// Define declares a table. Foreign keys must point at an already declared
// table (or the table itself) and at an existing column of it.
func (r *Registry) Define(table types.SchemaTable) error {
	if table.Name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if _, exists := r.tables[table.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEntity, table.Name)
	}

	seen := make(map[string]bool, len(table.Columns))
	for _, col := range table.Columns {
		if col.Name == "" {
			return fmt.Errorf("table %s: column name cannot be empty", table.Name)
		}
		if seen[col.Name] {
			return fmt.Errorf("table %s: duplicate column %s", table.Name, col.Name)
		}
		seen[col.Name] = true

		if col.Default != "" && len(col.Enum) > 0 && !col.Allows(col.Default) {
			return fmt.Errorf("table %s: default %q of column %s is not one of %v",
				table.Name, col.Default, col.Name, col.Enum)
		}
	}

	for _, fk := range table.ForeignKeys() {
		target := &table
		if fk.RefTable != table.Name {
			declared, ok := r.tables[fk.RefTable]
			if !ok {
				return fmt.Errorf("%w: %s.%s references %s",
					ErrUndeclaredEntity, table.Name, fk.Column, fk.RefTable)
			}
			target = declared
		}
		if _, ok := target.Column(fk.RefColumn); !ok {
			return fmt.Errorf("%w: %s.%s references %s.%s",
				ErrUndeclaredField, table.Name, fk.Column, fk.RefTable, fk.RefColumn)
		}
	}

	stored := table
	stored.Columns = append([]types.SchemaColumn(nil), table.Columns...)
	r.tables[table.Name] = &stored
	r.names = append(r.names, table.Name)
	return nil
}

func (r *Registry) Table(name string) (types.SchemaTable, bool) {
	t, ok := r.tables[name]
	if !ok {
		return types.SchemaTable{}, false
	}
	return *t, true
}

// Tables returns every declared table in declaration order.
func (r *Registry) Tables() []types.SchemaTable {
	tables := make([]types.SchemaTable, 0, len(r.names))
	for _, name := range r.names {
		tables = append(tables, *r.tables[name])
	}
	return tables
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *Registry) Len() int {
	return len(r.names)
}

func (r *Registry) Dependencies(name string) []string {
	t, ok := r.tables[name]
	if !ok {
		return nil
	}
	return t.Dependencies()
}

// InsertionOrder sorts tables so every table comes after the tables it
// references. Ties keep declaration order.
func (r *Registry) InsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	order := make([]string, 0, len(r.names))

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return fmt.Errorf("%w involving table: %s", ErrDependencyCycle, tableName)
		}
		if visited[tableName] {
			return nil
		}

		temp[tableName] = true
		for _, dep := range r.Dependencies(tableName) {
			if err := visit(dep); err != nil {
				return err
			}
		}
		temp[tableName] = false
		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	for _, name := range r.names {
		if !visited[name] {
			if err := visit(name); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

// DeletionOrder is the reverse of InsertionOrder: dependents first.
func (r *Registry) DeletionOrder() ([]string, error) {
	order, err := r.InsertionOrder()
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}

// Dependents lists the tables that reference name, in declaration order.
func (r *Registry) Dependents(name string) []string {
	var out []string
	for _, n := range r.names {
		for _, dep := range r.tables[n].Dependencies() {
			if dep == name {
				out = append(out, n)
				break
			}
		}
	}
	return out
}
