package schema

// WidgetKind tags the variant carried by a WidgetSpec.
type WidgetKind string

const (
	KindPlainText     WidgetKind = "plain_text"
	KindDate          WidgetKind = "date"
	KindBoolean       WidgetKind = "boolean"
	KindValueRelation WidgetKind = "value_relation"

	// KindUnmanaged marks a column whose editor configuration is left
	// untouched, either because the host's default widget is not a plain
	// text editor or because the declared type has no mapping.
	KindUnmanaged WidgetKind = "unmanaged"
)

// WidgetSpec is a tagged variant: Kind selects which option struct is set.
// Unmanaged specs carry no options.
type WidgetSpec struct {
	Kind          WidgetKind            `yaml:"kind"`
	PlainText     *PlainTextOptions     `yaml:"plain_text,omitempty"`
	Date          *DateOptions          `yaml:"date,omitempty"`
	Boolean       *BooleanOptions       `yaml:"boolean,omitempty"`
	ValueRelation *ValueRelationOptions `yaml:"value_relation,omitempty"`
}

// PlainTextOptions configures a text editor widget.
type PlainTextOptions struct {
	Multiline bool `yaml:"multiline"`
	UseHTML   bool `yaml:"use_html"`
}

// DateOptions configures a date editor widget.
type DateOptions struct {
	DisplayFormat string `yaml:"display_format"`
	FieldFormat   string `yaml:"field_format"`
	CalendarPopup bool   `yaml:"calendar_popup"`
}

// BooleanOptions configures a checkbox widget.
type BooleanOptions struct {
	CheckedValue   string `yaml:"checked_value"`
	UncheckedValue string `yaml:"unchecked_value"`
}

// ValueRelationOptions configures a widget that presents a foreign key as a
// selectable reference to rows of the referenced table.
type ValueRelationOptions struct {
	TargetTable  string `yaml:"target_table"`
	KeyColumn    string `yaml:"key_column"`
	ValueColumn  string `yaml:"value_column"`
	AllowMulti   bool   `yaml:"allow_multi"`
	AllowNull    bool   `yaml:"allow_null"`
	OrderByValue bool   `yaml:"order_by_value"`
}
