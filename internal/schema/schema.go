package schema

import "strings"

// DeclaredType is a column's catalog type normalized to the categories the
// widget planner branches on. Anything unrecognized is TypeOther.
type DeclaredType string

const (
	TypeText    DeclaredType = "text"
	TypeVarchar DeclaredType = "varchar"
	TypeDate    DeclaredType = "date"
	TypeBool    DeclaredType = "bool"
	TypeOther   DeclaredType = "other"
)

// NormalizeType maps a raw catalog type name to a DeclaredType. Covers
// PostgreSQL information_schema names and SQLite declared types.
func NormalizeType(raw string) DeclaredType {
	t := strings.ToLower(strings.TrimSpace(raw))
	// SQLite keeps the length in the declared type, e.g. "varchar(80)"
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	switch t {
	case "text":
		return TypeText
	case "varchar", "character varying":
		return TypeVarchar
	case "date":
		return TypeDate
	case "bool", "boolean":
		return TypeBool
	default:
		return TypeOther
	}
}

// Column is an immutable snapshot of one column as reported by the catalog.
type Column struct {
	Name       string       `yaml:"name"`
	Type       DeclaredType `yaml:"type"`
	RawType    string       `yaml:"raw_type,omitempty"`
	MaxLength  *int         `yaml:"max_length,omitempty"`
	Nullable   bool         `yaml:"nullable"`
	IsSequence bool         `yaml:"is_sequence,omitempty"`
}

// ForeignKeyEdge is a single foreign-key constraint from a referrer column to
// a referenced table. Ordinals are the 1-based column positions the catalog
// reports; subtract one before indexing a column slice.
type ForeignKeyEdge struct {
	Name                 string `yaml:"name,omitempty"`
	ReferrerTable        string `yaml:"referrer_table"`
	ReferrerOrdinal      int    `yaml:"referrer_ordinal"`
	ReferrerColumn       string `yaml:"referrer_column,omitempty"`
	ReferencedTable      string `yaml:"referenced_table"`
	ReferencedOrdinal    int    `yaml:"referenced_ordinal"`
	ReferencedColumn     string `yaml:"referenced_column,omitempty"`
	ReferencedPrimaryKey string `yaml:"referenced_primary_key,omitempty"`
}

// Field pairs a column with the widget the planner chose for it.
type Field struct {
	Column  Column     `yaml:"column"`
	Widget  WidgetSpec `yaml:"widget"`
	NotNull bool       `yaml:"not_null"`
}

// TablePlan is the complete widget configuration for one table.
type TablePlan struct {
	Table  string  `yaml:"table"`
	Key    string  `yaml:"key,omitempty"` // datasource identity key
	Fields []Field `yaml:"fields"`

	// NotNull lists the 1-based ordinals of columns carrying a NOT NULL
	// constraint. Computed once per table, before widget planning.
	NotNull []int `yaml:"not_null,omitempty"`
}

// RelationForest is the result of one form generation: the root table's plan
// plus one plan per transitively referenced table. A referenced table appears
// at most once no matter how many foreign keys point at it.
type RelationForest struct {
	Root       TablePlan   `yaml:"root"`
	Referenced []TablePlan `yaml:"referenced,omitempty"`

	// VisitedKeys holds the datasource identity key of every materialized
	// table, root included. Identity is the full datasource key, not the
	// bare table name.
	VisitedKeys []string `yaml:"visited_keys"`
}

// Plans returns the root plan followed by every referenced plan.
func (f *RelationForest) Plans() []TablePlan {
	plans := make([]TablePlan, 0, 1+len(f.Referenced))
	plans = append(plans, f.Root)
	return append(plans, f.Referenced...)
}
