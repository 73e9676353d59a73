package database

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/autoservice/internal/database/common"
	"github.com/Rana718/autoservice/internal/types"
)

type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error
	Provider() string

	// Table lifecycle
	CreateTable(ctx context.Context, table types.SchemaTable) error
	DropTable(ctx context.Context, tableName string) error

	// Rows
	InsertRow(ctx context.Context, table types.SchemaTable, record map[string]interface{}) (int64, error)
	GetTableRowCount(ctx context.Context, tableName string) (int, error)
	GetAllTableRowCounts(ctx context.Context, tableNames []string) (map[string]int, error)
	ExecuteQuery(ctx context.Context, query string, args ...interface{}) (*common.QueryResult, error)

	// SQL generation
	GenerateCreateTableSQL(table types.SchemaTable) string
	FormatColumnType(column types.SchemaColumn) string
	QuoteIdentifier(name string) string
	StatementBuilder() squirrel.StatementBuilderType
}
