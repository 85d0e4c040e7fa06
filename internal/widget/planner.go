package widget

import (
	"log/slog"
	"sort"

	"github.com/autoform/autoform/internal/schema"
)

// MultilineThreshold is the varchar length above which a text editor becomes
// multiline.
const MultilineThreshold = 80

// DateFormat is used for both display and field storage of date widgets.
const DateFormat = "yyyy-MM-dd"

// Boolean columns are presented as checkboxes over the literal 't'/'f' values.
const (
	CheckedValue   = "t"
	UncheckedValue = "f"
)

// Planner derives a widget specification for every column of a table. The
// choice for a column depends only on its declared type, length, nullability
// and foreign-key participation; nothing carries across columns.
type Planner struct {
	heuristic Heuristic
	log       *slog.Logger
}

// NewPlanner creates a Planner using the given host heuristic.
func NewPlanner(h Heuristic, log *slog.Logger) *Planner {
	if h == nil {
		h = DefaultHeuristic{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Planner{heuristic: h, log: log}
}

// Plan produces the table's widget configuration. edges are the table's
// outgoing foreign keys; a column on the native side of an edge always gets a
// value-relation widget, whatever its declared type.
func (p *Planner) Plan(table string, cols []schema.Column, notNull map[int]bool, edges []schema.ForeignKeyEdge) schema.TablePlan {
	byOrdinal := make(map[int]schema.ForeignKeyEdge, len(edges))
	for _, e := range edges {
		byOrdinal[e.ReferrerOrdinal] = e
	}

	plan := schema.TablePlan{
		Table:  table,
		Fields: make([]schema.Field, 0, len(cols)),
	}

	for i, col := range cols {
		ordinal := i + 1
		var spec schema.WidgetSpec
		if e, ok := byOrdinal[ordinal]; ok {
			spec = p.valueRelation(e)
		} else {
			spec = p.planColumn(table, col)
		}
		plan.Fields = append(plan.Fields, schema.Field{
			Column:  col,
			Widget:  spec,
			NotNull: notNull[ordinal],
		})
	}

	for ordinal := range notNull {
		plan.NotNull = append(plan.NotNull, ordinal)
	}
	sort.Ints(plan.NotNull)

	return plan
}

// valueRelation configures a foreign-key column as a reference selector over
// the referenced table, keyed and labeled by its primary key.
func (p *Planner) valueRelation(e schema.ForeignKeyEdge) schema.WidgetSpec {
	return schema.WidgetSpec{
		Kind: schema.KindValueRelation,
		ValueRelation: &schema.ValueRelationOptions{
			TargetTable:  e.ReferencedTable,
			KeyColumn:    e.ReferencedPrimaryKey,
			ValueColumn:  e.ReferencedPrimaryKey,
			AllowMulti:   false,
			AllowNull:    false,
			OrderByValue: true,
		},
	}
}

func (p *Planner) planColumn(table string, col schema.Column) schema.WidgetSpec {
	unmanaged := schema.WidgetSpec{Kind: schema.KindUnmanaged}

	if col.Name == "" {
		p.log.Warn("column has no display name, leaving widget unmanaged", "table", table)
		return unmanaged
	}

	// never override an editor the host chose for other reasons
	if p.heuristic.BestDefaultKind(table, col) != EditorTextEdit {
		return unmanaged
	}

	switch col.Type {
	case schema.TypeText:
		return schema.WidgetSpec{
			Kind:      schema.KindPlainText,
			PlainText: &schema.PlainTextOptions{Multiline: true, UseHTML: false},
		}
	case schema.TypeVarchar:
		multiline := col.MaxLength != nil && *col.MaxLength > MultilineThreshold
		return schema.WidgetSpec{
			Kind:      schema.KindPlainText,
			PlainText: &schema.PlainTextOptions{Multiline: multiline, UseHTML: false},
		}
	case schema.TypeDate:
		return schema.WidgetSpec{
			Kind: schema.KindDate,
			Date: &schema.DateOptions{
				DisplayFormat: DateFormat,
				FieldFormat:   DateFormat,
				CalendarPopup: true,
			},
		}
	case schema.TypeBool:
		return schema.WidgetSpec{
			Kind: schema.KindBoolean,
			Boolean: &schema.BooleanOptions{
				CheckedValue:   CheckedValue,
				UncheckedValue: UncheckedValue,
			},
		}
	default:
		return unmanaged
	}
}
