package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autoform/autoform/internal/catalog"
)

// Model is the bubbletea model for picking the root table of a form.
type Model struct {
	entries []catalog.TableInfo
	visible []int // indexes into entries after filtering
	cursor  int

	filter    textinput.Model
	filtering bool

	choice    string
	done      bool
	cancelled bool
	width     int
	height    int
}

// New creates a picker over the catalog's table listing.
func New(tables []catalog.TableInfo) Model {
	ti := textinput.New()
	ti.Placeholder = "table name"
	ti.CharLimit = 128

	m := Model{
		entries: tables,
		filter:  ti,
		width:   80,
		height:  24,
	}
	m.applyFilter()
	return m
}

// Choice returns the selected table name, or "" when cancelled.
func (m Model) Choice() string {
	if m.cancelled {
		return ""
	}
	return m.choice
}

// Cancelled reports whether the user quit without selecting.
func (m Model) Cancelled() bool { return m.cancelled }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.cancelled = true
		m.done = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case "/":
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink

	case "enter":
		if m.cursor < len(m.visible) {
			m.choice = m.entries[m.visible[m.cursor]].Name
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil

	case "esc":
		m.filtering = false
		m.filter.SetValue("")
		m.filter.Blur()
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *Model) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, e := range m.entries {
		if needle == "" || strings.Contains(strings.ToLower(e.Name), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = 0
	}
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).BorderStyle(lipgloss.DoubleBorder()).BorderBottom(true).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Select a table to generate a form for") + "\n\n")

	if m.filtering {
		b.WriteString("  Filter: " + m.filter.View() + "\n\n")
	} else if m.filter.Value() != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  Filter: %s (/ to change)", m.filter.Value())) + "\n\n")
	}

	listHeight := m.height - 8
	if listHeight < 5 {
		listHeight = 5
	}

	start := 0
	if m.cursor >= listHeight {
		start = m.cursor - listHeight + 1
	}
	end := start + listHeight
	if end > len(m.visible) {
		end = len(m.visible)
	}

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("  No tables match the filter") + "\n")
	}

	for vi := start; vi < end; vi++ {
		e := m.entries[m.visible[vi]]

		cursor := "  "
		nameStyle := lipgloss.NewStyle()
		if vi == m.cursor {
			cursor = highlightStyle.Render("> ")
			nameStyle = nameStyle.Bold(true)
		}

		rows := ""
		if e.RowEstimate > 0 {
			rows = fmt.Sprintf("%12d rows", e.RowEstimate)
		}
		b.WriteString(fmt.Sprintf("%s%-40s %s\n", cursor, nameStyle.Render(e.Name), dimStyle.Render(rows)))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  / filter • enter select • q quit") + "\n")

	return b.String()
}

// Run launches the picker and blocks until a table is chosen or the user
// quits. Returns "" when cancelled.
func Run(tables []catalog.TableInfo) (string, error) {
	p := tea.NewProgram(New(tables))
	out, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running table picker: %w", err)
	}
	final, ok := out.(Model)
	if !ok {
		return "", fmt.Errorf("unexpected picker model type %T", out)
	}
	return final.Choice(), nil
}
