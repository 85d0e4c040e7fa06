package widget

import "github.com/autoform/autoform/internal/schema"

// EditorKind is the host platform's editor widget classification, as returned
// by its "best default widget" lookup.
type EditorKind string

const (
	EditorTextEdit EditorKind = "TextEdit"
	EditorRange    EditorKind = "Range"
	EditorCheckBox EditorKind = "CheckBox"
	EditorDateTime EditorKind = "DateTime"
)

// Heuristic is the host's pre-existing widget classification. The planner
// respects it: a column the host would not give a text editor is never
// reconfigured.
type Heuristic interface {
	BestDefaultKind(table string, col schema.Column) EditorKind
}

// DefaultHeuristic approximates the host behavior for the common cases:
// sequence-backed columns get a numeric editor (autogenerated keys are left
// alone), everything else defaults to a text editor.
type DefaultHeuristic struct{}

func (DefaultHeuristic) BestDefaultKind(_ string, col schema.Column) EditorKind {
	if col.IsSequence {
		return EditorRange
	}
	return EditorTextEdit
}

// compile-time interface check
var _ Heuristic = DefaultHeuristic{}
