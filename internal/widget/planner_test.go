package widget

import (
	"testing"

	"github.com/autoform/autoform/internal/schema"
)

func intp(n int) *int { return &n }

func TestPlanTypeBranches(t *testing.T) {
	p := NewPlanner(DefaultHeuristic{}, nil)

	tests := []struct {
		name     string
		col      schema.Column
		wantKind schema.WidgetKind
		check    func(t *testing.T, spec schema.WidgetSpec)
	}{
		{
			name:     "text is multiline",
			col:      schema.Column{Name: "description", Type: schema.TypeText},
			wantKind: schema.KindPlainText,
			check: func(t *testing.T, spec schema.WidgetSpec) {
				if !spec.PlainText.Multiline {
					t.Error("text columns should be multiline")
				}
				if spec.PlainText.UseHTML {
					t.Error("UseHTML should be false")
				}
			},
		},
		{
			name:     "short varchar is single line",
			col:      schema.Column{Name: "code", Type: schema.TypeVarchar, MaxLength: intp(20)},
			wantKind: schema.KindPlainText,
			check: func(t *testing.T, spec schema.WidgetSpec) {
				if spec.PlainText.Multiline {
					t.Error("varchar(20) should be single line")
				}
			},
		},
		{
			name:     "varchar at threshold is single line",
			col:      schema.Column{Name: "title", Type: schema.TypeVarchar, MaxLength: intp(80)},
			wantKind: schema.KindPlainText,
			check: func(t *testing.T, spec schema.WidgetSpec) {
				if spec.PlainText.Multiline {
					t.Error("varchar(80) should be single line")
				}
			},
		},
		{
			name:     "varchar above threshold is multiline",
			col:      schema.Column{Name: "notes", Type: schema.TypeVarchar, MaxLength: intp(81)},
			wantKind: schema.KindPlainText,
			check: func(t *testing.T, spec schema.WidgetSpec) {
				if !spec.PlainText.Multiline {
					t.Error("varchar(81) should be multiline")
				}
			},
		},
		{
			name:     "varchar without length is single line",
			col:      schema.Column{Name: "label", Type: schema.TypeVarchar},
			wantKind: schema.KindPlainText,
			check: func(t *testing.T, spec schema.WidgetSpec) {
				if spec.PlainText.Multiline {
					t.Error("varchar without a declared length should be single line")
				}
			},
		},
		{
			name:     "date gets calendar popup",
			col:      schema.Column{Name: "due_date", Type: schema.TypeDate},
			wantKind: schema.KindDate,
			check: func(t *testing.T, spec schema.WidgetSpec) {
				if spec.Date.DisplayFormat != "yyyy-MM-dd" || spec.Date.FieldFormat != "yyyy-MM-dd" {
					t.Errorf("unexpected date formats: %+v", spec.Date)
				}
				if !spec.Date.CalendarPopup {
					t.Error("calendar popup should be enabled")
				}
			},
		},
		{
			name:     "bool gets t/f checkbox",
			col:      schema.Column{Name: "active", Type: schema.TypeBool},
			wantKind: schema.KindBoolean,
			check: func(t *testing.T, spec schema.WidgetSpec) {
				if spec.Boolean.CheckedValue != "t" || spec.Boolean.UncheckedValue != "f" {
					t.Errorf("unexpected boolean values: %+v", spec.Boolean)
				}
			},
		},
		{
			name:     "unknown type is unmanaged",
			col:      schema.Column{Name: "payload", Type: schema.TypeOther},
			wantKind: schema.KindUnmanaged,
		},
		{
			name:     "missing display name is unmanaged",
			col:      schema.Column{Type: schema.TypeText},
			wantKind: schema.KindUnmanaged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := p.Plan("things", []schema.Column{tt.col}, nil, nil)
			if len(plan.Fields) != 1 {
				t.Fatalf("expected 1 field, got %d", len(plan.Fields))
			}
			spec := plan.Fields[0].Widget
			if spec.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s", spec.Kind, tt.wantKind)
			}
			if tt.check != nil {
				tt.check(t, spec)
			}
		})
	}
}

func TestForeignKeyColumnAlwaysValueRelation(t *testing.T) {
	p := NewPlanner(DefaultHeuristic{}, nil)

	// declared type is irrelevant once the column participates in an FK
	for _, typ := range []schema.DeclaredType{schema.TypeText, schema.TypeVarchar, schema.TypeBool, schema.TypeOther} {
		cols := []schema.Column{{Name: "customer_id", Type: typ}}
		edges := []schema.ForeignKeyEdge{{
			ReferrerTable:        "orders",
			ReferrerOrdinal:      1,
			ReferencedTable:      "customers",
			ReferencedPrimaryKey: "id",
		}}

		plan := p.Plan("orders", cols, nil, edges)
		spec := plan.Fields[0].Widget
		if spec.Kind != schema.KindValueRelation {
			t.Fatalf("type %s: kind = %s, want value_relation", typ, spec.Kind)
		}
		vr := spec.ValueRelation
		if vr.TargetTable != "customers" || vr.KeyColumn != "id" || vr.ValueColumn != "id" {
			t.Errorf("type %s: unexpected relation target: %+v", typ, vr)
		}
		if vr.AllowMulti || vr.AllowNull || !vr.OrderByValue {
			t.Errorf("type %s: unexpected relation flags: %+v", typ, vr)
		}
	}
}

// heuristicFunc adapts a func to the Heuristic interface.
type heuristicFunc func(table string, col schema.Column) EditorKind

func (f heuristicFunc) BestDefaultKind(table string, col schema.Column) EditorKind {
	return f(table, col)
}

func TestHeuristicIsRespected(t *testing.T) {
	h := heuristicFunc(func(_ string, col schema.Column) EditorKind {
		if col.Name == "rating" {
			return EditorRange
		}
		return EditorTextEdit
	})
	p := NewPlanner(h, nil)

	cols := []schema.Column{
		{Name: "rating", Type: schema.TypeText},
		{Name: "comment", Type: schema.TypeText},
	}
	plan := p.Plan("reviews", cols, nil, nil)

	if plan.Fields[0].Widget.Kind != schema.KindUnmanaged {
		t.Error("a column the host gives a non-text editor must stay unmanaged")
	}
	if plan.Fields[1].Widget.Kind != schema.KindPlainText {
		t.Error("text-edit columns should still be configured")
	}
}

func TestSequenceColumnsLeftAlone(t *testing.T) {
	p := NewPlanner(DefaultHeuristic{}, nil)

	cols := []schema.Column{{Name: "id", Type: schema.TypeOther, IsSequence: true}}
	plan := p.Plan("orders", cols, nil, nil)
	if plan.Fields[0].Widget.Kind != schema.KindUnmanaged {
		t.Error("autogenerated key columns should stay unmanaged")
	}
}

func TestNotNullAppliedToEveryBranch(t *testing.T) {
	p := NewPlanner(DefaultHeuristic{}, nil)

	cols := []schema.Column{
		{Name: "customer_id", Type: schema.TypeOther},
		{Name: "notes", Type: schema.TypeVarchar, MaxLength: intp(200), Nullable: true},
		{Name: "created", Type: schema.TypeDate},
	}
	edges := []schema.ForeignKeyEdge{{
		ReferrerTable:        "orders",
		ReferrerOrdinal:      1,
		ReferencedTable:      "customers",
		ReferencedPrimaryKey: "id",
	}}
	notNull := map[int]bool{1: true, 3: true}

	plan := p.Plan("orders", cols, notNull, edges)

	if !plan.Fields[0].NotNull {
		t.Error("FK column should carry its not-null constraint")
	}
	if plan.Fields[1].NotNull {
		t.Error("nullable column must not be marked not-null")
	}
	if !plan.Fields[2].NotNull {
		t.Error("date column should carry its not-null constraint")
	}
	if len(plan.NotNull) != 2 || plan.NotNull[0] != 1 || plan.NotNull[1] != 3 {
		t.Errorf("unexpected not-null ordinals: %v", plan.NotNull)
	}
}

func TestOrdersScenario(t *testing.T) {
	p := NewPlanner(DefaultHeuristic{}, nil)

	cols := []schema.Column{
		{Name: "customer_id", Type: schema.TypeOther},
		{Name: "notes", Type: schema.TypeVarchar, MaxLength: intp(200), Nullable: true},
	}
	edges := []schema.ForeignKeyEdge{{
		ReferrerTable:        "orders",
		ReferrerOrdinal:      1,
		ReferencedTable:      "customers",
		ReferencedOrdinal:    1,
		ReferencedPrimaryKey: "id",
	}}

	plan := p.Plan("orders", cols, map[int]bool{1: true}, edges)

	vr := plan.Fields[0].Widget.ValueRelation
	if vr == nil {
		t.Fatal("customer_id should be a value relation")
	}
	if vr.TargetTable != "customers" || vr.KeyColumn != "id" || vr.ValueColumn != "id" ||
		vr.AllowMulti || vr.AllowNull || !vr.OrderByValue {
		t.Errorf("unexpected value relation: %+v", vr)
	}

	notes := plan.Fields[1]
	if notes.Widget.Kind != schema.KindPlainText || !notes.Widget.PlainText.Multiline {
		t.Errorf("notes should be multiline plain text, got %+v", notes.Widget)
	}
	if notes.NotNull {
		t.Error("notes is nullable")
	}
}
