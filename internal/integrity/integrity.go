package integrity

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/autoservice/internal/database"
	"github.com/Rana718/autoservice/internal/database/common"
	"github.com/Rana718/autoservice/internal/schema"
	"github.com/fatih/color"
)

// NotChecked marks a table whose row count has no expectation.
const NotChecked = -1

type TableReport struct {
	Table          string
	Rows           int
	Expected       int
	DanglingRefs   map[string]int // column -> rows whose reference has no target
	EnumViolations map[string]int // column -> rows outside the allowed set
}

func (t TableReport) OK() bool {
	if t.Expected != NotChecked && t.Rows != t.Expected {
		return false
	}
	for _, n := range t.DanglingRefs {
		if n > 0 {
			return false
		}
	}
	for _, n := range t.EnumViolations {
		if n > 0 {
			return false
		}
	}
	return true
}

type Report struct {
	Tables []TableReport
}

func (r *Report) OK() bool {
	for _, t := range r.Tables {
		if !t.OK() {
			return false
		}
	}
	return true
}

func (r *Report) Table(name string) (TableReport, bool) {
	for _, t := range r.Tables {
		if t.Table == name {
			return t, true
		}
	}
	return TableReport{}, false
}

// Check re-reads every declared table. expected maps table names to row
// counts; tables missing from it are not count-checked.
func Check(ctx context.Context, adapter database.DatabaseAdapter, registry *schema.Registry, expected map[string]int) (*Report, error) {
	order, err := registry.InsertionOrder()
	if err != nil {
		return nil, err
	}

	counts, err := adapter.GetAllTableRowCounts(ctx, order)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, name := range order {
		table, _ := registry.Table(name)
		tr := TableReport{
			Table:          name,
			Rows:           counts[name],
			Expected:       NotChecked,
			DanglingRefs:   make(map[string]int),
			EnumViolations: make(map[string]int),
		}
		if n, ok := expected[name]; ok {
			tr.Expected = n
		}

		for _, fk := range table.ForeignKeys() {
			n, err := countDangling(ctx, adapter, name, fk.Column, fk.RefTable, fk.RefColumn)
			if err != nil {
				return nil, fmt.Errorf("failed to check %s.%s: %w", name, fk.Column, err)
			}
			tr.DanglingRefs[fk.Column] = n
		}

		for _, col := range table.Columns {
			if len(col.Enum) == 0 {
				continue
			}
			n, err := countOutsideSet(ctx, adapter, name, col.Name, col.Enum)
			if err != nil {
				return nil, fmt.Errorf("failed to check %s.%s: %w", name, col.Name, err)
			}
			tr.EnumViolations[col.Name] = n
		}

		report.Tables = append(report.Tables, tr)
	}

	return report, nil
}

func countDangling(ctx context.Context, adapter database.DatabaseAdapter, table, column, refTable, refColumn string) (int, error) {
	q := adapter.QuoteIdentifier
	notExists := fmt.Sprintf("NOT EXISTS (SELECT 1 FROM %s p WHERE p.%s = c.%s)", q(refTable), q(refColumn), q(column))

	query, args, err := adapter.StatementBuilder().
		Select("COUNT(*)").
		From(q(table) + " c").
		Where(squirrel.NotEq{"c." + q(column): nil}).
		Where(notExists).
		ToSql()
	if err != nil {
		return 0, err
	}
	return scalar(ctx, adapter, query, args)
}

func countOutsideSet(ctx context.Context, adapter database.DatabaseAdapter, table, column string, values []string) (int, error) {
	q := adapter.QuoteIdentifier
	query, args, err := adapter.StatementBuilder().
		Select("COUNT(*)").
		From(q(table)).
		Where(squirrel.And{
			squirrel.NotEq{q(column): nil},
			squirrel.NotEq{q(column): values},
		}).
		ToSql()
	if err != nil {
		return 0, err
	}
	return scalar(ctx, adapter, query, args)
}

func scalar(ctx context.Context, adapter database.DatabaseAdapter, query string, args []interface{}) (int, error) {
	result, err := adapter.ExecuteQuery(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	if len(result.Rows) == 0 || len(result.Columns) == 0 {
		return 0, nil
	}
	n, err := common.ToInt64(result.Rows[0][result.Columns[0]])
	return int(n), err
}

// Print writes one line per table and the problems found.
func (r *Report) Print() {
	for _, t := range r.Tables {
		expected := ""
		if t.Expected != NotChecked {
			expected = fmt.Sprintf(" (expected %d)", t.Expected)
		}
		if t.OK() {
			color.Green("  ✅ %-20s %6d rows%s", t.Table, t.Rows, expected)
			continue
		}
		color.Red("  ❌ %-20s %6d rows%s", t.Table, t.Rows, expected)
		for _, col := range sortedKeys(t.DanglingRefs) {
			if n := t.DanglingRefs[col]; n > 0 {
				color.Yellow("     %s: %d dangling references", col, n)
			}
		}
		for _, col := range sortedKeys(t.EnumViolations) {
			if n := t.EnumViolations[col]; n > 0 {
				color.Yellow("     %s: %d values outside the allowed set", col, n)
			}
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
