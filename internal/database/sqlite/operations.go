package sqlite

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
	types.TypeDecimal:   "DECIMAL(10,2)",
	types.TypeTimestamp: "TIMESTAMP",
}

func (s *Adapter) CreateTable(ctx context.Context, table types.SchemaTable) error {
	if _, err := s.db.ExecContext(ctx, s.GenerateCreateTableSQL(table)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table.Name, err)
	}
	return nil
}

func (s *Adapter) DropTable(ctx context.Context, tableName string) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", s.QuoteIdentifier(tableName)))
	return err
}

func (s *Adapter) InsertRow(ctx context.Context, table types.SchemaTable, record map[string]interface{}) (int64, error) {
	var query string
	var args []interface{}
	if len(record) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", s.QuoteIdentifier(table.Name))
	} else {
		values := make(map[string]interface{}, len(record))
		for col, v := range record {
			values[s.QuoteIdentifier(col)] = v
		}
		var err error
		query, args, err = s.qb.Insert(s.QuoteIdentifier(table.Name)).SetMap(values).ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to build insert for %s: %w", table.Name, err)
		}
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", table.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read generated id for %s: %w", table.Name, err)
	}
	return id, nil
}

func (s *Adapter) GetTableRowCount(ctx context.Context, tableName string) (int, error) {
	query, args, err := s.qb.Select("COUNT(*)").From(s.QuoteIdentifier(tableName)).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in table %s: %w", tableName, err)
	}
	return count, nil
}

func (s *Adapter) GetAllTableRowCounts(ctx context.Context, tableNames []string) (map[string]int, error) {
	if len(tableNames) == 0 {
		return make(map[string]int), nil
	}

	query, err := common.BuildRowCountsQuery(tableNames, s.QuoteIdentifier)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query)
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

func (s *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	return common.BuildCreateTable(table, s.QuoteIdentifier, s.FormatColumnType, "")
}

func (s *Adapter) FormatColumnType(column types.SchemaColumn) string {
	if column.IsPrimary && column.IsAutoIncrement {
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
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

	if check := common.EnumCheck(s.QuoteIdentifier(column.Name), column.Enum); check != "" {
		parts = append(parts, check)
	}

	return strings.Join(parts, " ")
}
