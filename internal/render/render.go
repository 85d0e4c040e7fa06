package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/autoform/autoform/internal/schema"
)

// ReferencedGroupName is the group referenced tables are placed under.
const ReferencedGroupName = "Tables"

// Group is a named container of table plans, mirroring a layer-tree group in
// a host application.
type Group struct {
	Name  string
	Plans []schema.TablePlan
}

// Layout is what the sink materializes: the forest arranged into groups.
type Layout struct {
	Groups []Group
}

// BuildLayout arranges a forest for presentation: the root plan stands alone,
// referenced plans go into the ReferencedGroupName group. The group is always
// created; PruneEmpty removes it when no referenced table was discovered.
func BuildLayout(f *schema.RelationForest) *Layout {
	return &Layout{
		Groups: []Group{
			{Name: f.Root.Table, Plans: []schema.TablePlan{f.Root}},
			{Name: ReferencedGroupName, Plans: f.Referenced},
		},
	}
}

// PruneEmpty drops groups that ended up with no plans, such as a referenced
// tables group created for a table with no foreign keys.
func (l *Layout) PruneEmpty() {
	kept := l.Groups[:0]
	for _, g := range l.Groups {
		if len(g.Plans) > 0 {
			kept = append(kept, g)
		}
	}
	l.Groups = kept
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	groupStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	widgetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

// Render returns the layout as styled terminal output.
func (l *Layout) Render() string {
	var b strings.Builder

	for _, g := range l.Groups {
		b.WriteString(groupStyle.Render(g.Name) + "\n")
		for _, p := range g.Plans {
			renderPlan(&b, p)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderPlan(b *strings.Builder, p schema.TablePlan) {
	b.WriteString("  " + titleStyle.Render(p.Table) + "\n")
	for _, f := range p.Fields {
		marker := " "
		if f.NotNull {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("    %s %-24s %s\n",
			marker, f.Column.Name, widgetStyle.Render(describeWidget(f.Widget))))
	}
	if len(p.Fields) == 0 {
		b.WriteString(dimStyle.Render("    (no columns)") + "\n")
	}
}

func describeWidget(w schema.WidgetSpec) string {
	switch w.Kind {
	case schema.KindPlainText:
		if w.PlainText != nil && w.PlainText.Multiline {
			return "plain text (multiline)"
		}
		return "plain text"
	case schema.KindDate:
		if w.Date != nil {
			return fmt.Sprintf("date (%s)", w.Date.DisplayFormat)
		}
		return "date"
	case schema.KindBoolean:
		if w.Boolean != nil {
			return fmt.Sprintf("checkbox ('%s'/'%s')", w.Boolean.CheckedValue, w.Boolean.UncheckedValue)
		}
		return "checkbox"
	case schema.KindValueRelation:
		if w.ValueRelation != nil {
			return fmt.Sprintf("value relation → %s.%s", w.ValueRelation.TargetTable, w.ValueRelation.KeyColumn)
		}
		return "value relation"
	default:
		return dimStyle.Render("unmanaged")
	}
}
