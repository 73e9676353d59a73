package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Rana718/autoservice/internal/types"
)

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

type QueryResult struct {
	Columns []string
	Rows    []map[string]interface{}
}

// ValidateIdentifier rejects table and column names that would need escaping
// beyond plain quoting.
func ValidateIdentifier(name string) error {
	if !validIdentifier.MatchString(name) {
		return fmt.Errorf("invalid identifier: %q", name)
	}
	return nil
}

// QuoteLiteral renders s as a single-quoted SQL string literal.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// FormatDefault renders a column default as SQL. Text defaults are quoted,
// numeric and CURRENT_TIMESTAMP defaults are emitted as is.
func FormatDefault(column types.SchemaColumn) string {
	if column.Default == "" {
		return ""
	}
	if column.Type == types.TypeText {
		return QuoteLiteral(column.Default)
	}
	return column.Default
}

// EnumCheck renders CHECK (col IN (...)) for enumerated columns.
func EnumCheck(quotedColumn string, values []string) string {
	if len(values) == 0 {
		return ""
	}
	literals := make([]string, len(values))
	for i, v := range values {
		literals[i] = QuoteLiteral(v)
	}
	return fmt.Sprintf("CHECK (%s IN (%s))", quotedColumn, strings.Join(literals, ", "))
}

// BuildCreateTable assembles CREATE TABLE IF NOT EXISTS with column lines from
// columnType and one FOREIGN KEY clause per referencing column. suffix is
// appended after the closing parenthesis (table options).
func BuildCreateTable(table types.SchemaTable, quote func(string) string, columnType func(types.SchemaColumn) string, suffix string) string {
	var lines []string

	for _, column := range table.Columns {
		lines = append(lines, fmt.Sprintf("  %s %s", quote(column.Name), columnType(column)))
	}

	for _, fk := range table.ForeignKeys() {
		clause := fmt.Sprintf("  FOREIGN KEY (%s) REFERENCES %s(%s)",
			quote(fk.Column), quote(fk.RefTable), quote(fk.RefColumn))
		if fk.OnDelete != "" {
			clause += fmt.Sprintf(" ON DELETE %s", fk.OnDelete)
		}
		lines = append(lines, clause)
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)%s;",
		quote(table.Name), strings.Join(lines, ",\n"), suffix)
}

// BuildRowCountsQuery counts every table in one UNION ALL statement.
func BuildRowCountsQuery(tableNames []string, quote func(string) string) (string, error) {
	queryParts := make([]string, 0, len(tableNames))
	for _, name := range tableNames {
		if err := ValidateIdentifier(name); err != nil {
			return "", err
		}
		queryParts = append(queryParts, fmt.Sprintf("SELECT '%s' AS table_name, COUNT(*) AS row_count FROM %s", name, quote(name)))
	}
	return strings.Join(queryParts, " UNION ALL "), nil
}

// ToInt64 converts the driver representations of an integer result column.
func ToInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	case string:
		return strconv.ParseInt(n, 10, 64)
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unexpected integer value of type %T", v)
	}
}
