package types

// ScalarType is the dialect independent column type. Each adapter maps it to
// its own SQL type.
type ScalarType string

const (
	TypeText      ScalarType = "text"
	TypeInteger   ScalarType = "integer"
	TypeDecimal   ScalarType = "decimal"
	TypeTimestamp ScalarType = "timestamp"
)

// On-delete actions understood by every supported dialect.
const (
	OnDeleteCascade = "CASCADE"
	OnDeleteSetNull = "SET NULL"
)

// DefaultNow marks a timestamp column whose default is the row creation time.
const DefaultNow = "CURRENT_TIMESTAMP"

type SchemaTable struct {
	Name    string         `json:"name" yaml:"name"`
	Entity  string         `json:"entity" yaml:"entity"`
	Columns []SchemaColumn `json:"columns" yaml:"columns"`
}

type SchemaColumn struct {
	Name             string     `json:"name" yaml:"name"`
	Type             ScalarType `json:"type" yaml:"type"`
	Nullable         bool       `json:"nullable" yaml:"nullable"`
	Default          string     `json:"default,omitempty" yaml:"default,omitempty"`
	Enum             []string   `json:"enum,omitempty" yaml:"enum,omitempty"`
	IsPrimary        bool       `json:"primary,omitempty" yaml:"primary,omitempty"`
	IsAutoIncrement  bool       `json:"auto_increment,omitempty" yaml:"auto_increment,omitempty"`
	ForeignKeyTable  string     `json:"fk_table,omitempty" yaml:"fk_table,omitempty"`
	ForeignKeyColumn string     `json:"fk_column,omitempty" yaml:"fk_column,omitempty"`
	OnDeleteAction   string     `json:"on_delete,omitempty" yaml:"on_delete,omitempty"`
}

// ForeignKey is the relationship view of a column that references another table.
type ForeignKey struct {
	Column    string `json:"column" yaml:"column"`
	RefTable  string `json:"ref_table" yaml:"ref_table"`
	RefColumn string `json:"ref_column" yaml:"ref_column"`
	OnDelete  string `json:"on_delete" yaml:"on_delete"`
}

func (c SchemaColumn) IsForeignKey() bool {
	return c.ForeignKeyTable != "" && c.ForeignKeyColumn != ""
}

// Allows reports whether v is a member of the column's closed value set.
// Columns without an enum accept any value.
func (c SchemaColumn) Allows(v string) bool {
	if len(c.Enum) == 0 {
		return true
	}
	for _, e := range c.Enum {
		if e == v {
			return true
		}
	}
	return false
}

func (t SchemaTable) Column(name string) (SchemaColumn, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return SchemaColumn{}, false
}

func (t SchemaTable) PrimaryKey() string {
	for _, col := range t.Columns {
		if col.IsPrimary {
			return col.Name
		}
	}
	return ""
}

func (t SchemaTable) ForeignKeys() []ForeignKey {
	var fks []ForeignKey
	for _, col := range t.Columns {
		if col.IsForeignKey() {
			fks = append(fks, ForeignKey{
				Column:    col.Name,
				RefTable:  col.ForeignKeyTable,
				RefColumn: col.ForeignKeyColumn,
				OnDelete:  col.OnDeleteAction,
			})
		}
	}
	return fks
}

// Dependencies lists the distinct tables this table references, self
// references excluded.
func (t SchemaTable) Dependencies() []string {
	seen := make(map[string]bool)
	var deps []string
	for _, fk := range t.ForeignKeys() {
		if fk.RefTable == t.Name || seen[fk.RefTable] {
			continue
		}
		seen[fk.RefTable] = true
		deps = append(deps, fk.RefTable)
	}
	return deps
}
