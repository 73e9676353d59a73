package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rana718/autoservice/internal/database/common"
	"github.com/Rana718/autoservice/internal/types"
)

var typeMap = map[types.ScalarType]string{
	types.TypeText:      "TEXT",
	types.TypeInteger:   "INT",
	types.TypeDecimal:   "DECIMAL(10,2)",
	types.TypeTimestamp: "DATETIME",
}

// TEXT takes no literal DEFAULT before 8.0.13, so enumerated and defaulted
// text columns are stored as VARCHAR.
const enumColumnType = "VARCHAR(32)"

func (m *Adapter) CreateTable(ctx context.Context, table types.SchemaTable) error {
	if _, err := m.db.ExecContext(ctx, m.GenerateCreateTableSQL(table)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table.Name, err)
	}
	return nil
}

func (m *Adapter) DropTable(ctx context.Context, tableName string) error {
	_, err := m.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", m.QuoteIdentifier(tableName)))
	return err
}

func (m *Adapter) InsertRow(ctx context.Context, table types.SchemaTable, record map[string]interface{}) (int64, error) {
	var query string
	var args []interface{}
	if len(record) == 0 {
		query = fmt.Sprintf("INSERT INTO %s () VALUES ()", m.QuoteIdentifier(table.Name))
	} else {
		values := make(map[string]interface{}, len(record))
		for col, v := range record {
			values[m.QuoteIdentifier(col)] = v
		}
		var err error
		query, args, err = m.qb.Insert(m.QuoteIdentifier(table.Name)).SetMap(values).ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to build insert for %s: %w", table.Name, err)
		}
	}

	res, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", table.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read generated id for %s: %w", table.Name, err)
	}
	return id, nil
}

func (m *Adapter) GetTableRowCount(ctx context.Context, tableName string) (int, error) {
	query, args, err := m.qb.Select("COUNT(*)").From(m.QuoteIdentifier(tableName)).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := m.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in table %s: %w", tableName, err)
	}
	return count, nil
}

func (m *Adapter) GetAllTableRowCounts(ctx context.Context, tableNames []string) (map[string]int, error) {
	if len(tableNames) == 0 {
		return make(map[string]int), nil
	}

	query, err := common.BuildRowCountsQuery(tableNames, m.QuoteIdentifier)
	if err != nil {
		return nil, err
	}

	rows, err := m.db.QueryContext(ctx, query)
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

func (m *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	return common.BuildCreateTable(table, m.QuoteIdentifier, m.FormatColumnType, " ENGINE=InnoDB")
}

func (m *Adapter) FormatColumnType(column types.SchemaColumn) string {
	if column.IsPrimary && column.IsAutoIncrement {
		return "INT AUTO_INCREMENT PRIMARY KEY"
	}

	var parts []string
	if column.Type == types.TypeText && (len(column.Enum) > 0 || column.Default != "") {
		parts = append(parts, enumColumnType)
	} else {
		parts = append(parts, typeMap[column.Type])
	}

	if column.IsPrimary {
		parts = append(parts, "PRIMARY KEY")
	}

	if !column.Nullable && !column.IsPrimary {
		parts = append(parts, "NOT NULL")
	}

	if def := common.FormatDefault(column); def != "" {
		parts = append(parts, "DEFAULT "+def)
	}

	if check := common.EnumCheck(m.QuoteIdentifier(column.Name), column.Enum); check != "" {
		parts = append(parts, check)
	}

	return strings.Join(parts, " ")
}
