package schema

import (
	"fmt"
	"math"
	"time"

	"github.com/Rana718/autoservice/internal/types"
	"github.com/shopspring/decimal"
)

// Money columns are DECIMAL(10,2).
const (
	moneyPrecision = 10
	moneyScale     = 2
)

var moneyLimit = decimal.New(1, moneyPrecision-moneyScale)

// ValidateRecord checks a row about to be inserted into tableName against the
// declared column constraints. Auto-increment keys must be left to the store.
func (r *Registry) ValidateRecord(tableName string, record map[string]interface{}) error {
	table, ok := r.tables[tableName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUndeclaredEntity, tableName)
	}

	for name, value := range record {
		col, ok := table.Column(name)
		if !ok {
			return &ConstraintError{Table: tableName, Column: name, Value: value, Reason: "unknown column"}
		}
		if col.IsAutoIncrement {
			return &ConstraintError{Table: tableName, Column: name, Value: value, Reason: "generated column cannot be set"}
		}
	}

	for _, col := range table.Columns {
		if col.IsAutoIncrement {
			continue
		}
		value, present := record[col.Name]
		if !present || value == nil {
			if !col.Nullable && col.Default == "" {
				return &ConstraintError{Table: tableName, Column: col.Name, Value: nil, Reason: "null value in not-null column"}
			}
			continue
		}
		if reason := checkValue(col, value); reason != "" {
			return &ConstraintError{Table: tableName, Column: col.Name, Value: value, Reason: reason}
		}
	}
	return nil
}

func checkValue(col types.SchemaColumn, value interface{}) string {
	switch col.Type {
	case types.TypeText:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("expected text, got %T", value)
		}
		if !col.Allows(s) {
			return fmt.Sprintf("value must be one of %v", col.Enum)
		}
	case types.TypeInteger:
		if _, ok := asInt64(value); !ok {
			return fmt.Sprintf("expected integer, got %T", value)
		}
	case types.TypeDecimal:
		d, ok := asDecimal(value)
		if !ok {
			return fmt.Sprintf("expected decimal, got %T", value)
		}
		if !d.Equal(d.Round(moneyScale)) {
			return fmt.Sprintf("more than %d fractional digits", moneyScale)
		}
		if d.Abs().GreaterThanOrEqual(moneyLimit) {
			return fmt.Sprintf("out of range for DECIMAL(%d,%d)", moneyPrecision, moneyScale)
		}
	case types.TypeTimestamp:
		if _, ok := value.(time.Time); !ok {
			return fmt.Sprintf("expected timestamp, got %T", value)
		}
	default:
		return fmt.Sprintf("unsupported column type %q", col.Type)
	}
	return ""
}

func asInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	}
	return 0, false
}

func asDecimal(value interface{}) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case float64:
		return decimal.NewFromFloat(v), true
	case float32:
		return decimal.NewFromFloat32(v), true
	}
	if i, ok := asInt64(value); ok {
		return decimal.NewFromInt(i), true
	}
	return decimal.Decimal{}, false
}
