package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rana718/autoservice/internal/database/common"
	"github.com/Rana718/autoservice/internal/types"
)

var typeMap = map[types.ScalarType]string{
	types.TypeText:      "TEXT",
	types.TypeInteger:   "INTEGER",
	types.TypeDecimal:   "NUMERIC(10,2)",
	types.TypeTimestamp: "TIMESTAMP",
}

func (p *Adapter) CreateTable(ctx context.Context, table types.SchemaTable) error {
	if _, err := p.pool.Exec(ctx, p.GenerateCreateTableSQL(table)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table.Name, err)
	}
	return nil
}

func (p *Adapter) DropTable(ctx context.Context, tableName string) error {
	_, err := p.pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", p.QuoteIdentifier(tableName)))
	return err
}

func (p *Adapter) InsertRow(ctx context.Context, table types.SchemaTable, record map[string]interface{}) (int64, error) {
	pk := p.QuoteIdentifier(table.PrimaryKey())

	var query string
	var args []interface{}
	if len(record) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING %s", p.QuoteIdentifier(table.Name), pk)
	} else {
		values := make(map[string]interface{}, len(record))
		for col, v := range record {
			values[p.QuoteIdentifier(col)] = v
		}
		var err error
		query, args, err = p.qb.Insert(p.QuoteIdentifier(table.Name)).
			SetMap(values).
			Suffix("RETURNING " + pk).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to build insert for %s: %w", table.Name, err)
		}
	}

	var id int64
	if err := p.pool.QueryRow(ctx, query, normalizeArgs(args)...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", table.Name, err)
	}
	return id, nil
}

func (p *Adapter) GetTableRowCount(ctx context.Context, tableName string) (int, error) {
	query, args, err := p.qb.Select("COUNT(*)").From(p.QuoteIdentifier(tableName)).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in table %s: %w", tableName, err)
	}
	return count, nil
}

func (p *Adapter) GetAllTableRowCounts(ctx context.Context, tableNames []string) (map[string]int, error) {
	if len(tableNames) == 0 {
		return make(map[string]int), nil
	}

	query, err := common.BuildRowCountsQuery(tableNames, p.QuoteIdentifier)
	if err != nil {
		return nil, err
	}

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to batch count table rows: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int, len(tableNames))
	for rows.Next() {
		var tableName string
		var count int
		if err := rows.Scan(&tableName, &count); err != nil {
			return nil, fmt.Errorf("failed to scan batch count result: %w", err)
		}
		result[tableName] = count
	}

	return result, rows.Err()
}

func (p *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	return common.BuildCreateTable(table, p.QuoteIdentifier, p.FormatColumnType, "")
}

func (p *Adapter) FormatColumnType(column types.SchemaColumn) string {
	if column.IsPrimary && column.IsAutoIncrement {
		return "SERIAL PRIMARY KEY"
	}

	var parts []string
	parts = append(parts, typeMap[column.Type])

	if column.IsPrimary {
		parts = append(parts, "PRIMARY KEY")
	}

	if !column.Nullable && !column.IsPrimary {
		parts = append(parts, "NOT NULL")
	}

	if def := common.FormatDefault(column); def != "" {
		parts = append(parts, "DEFAULT "+def)
	}

	if check := common.EnumCheck(p.QuoteIdentifier(column.Name), column.Enum); check != "" {
		parts = append(parts, check)
	}

	return strings.Join(parts, " ")
}
