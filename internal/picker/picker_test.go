package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/autoform/autoform/internal/catalog"
)

func testTables() []catalog.TableInfo {
	return []catalog.TableInfo{
		{Name: "customers", RowEstimate: 1000},
		{Name: "orders", RowEstimate: 5000},
		{Name: "order_items", RowEstimate: 20000},
		{Name: "products", RowEstimate: 500},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{}
}

func TestNewModel(t *testing.T) {
	m := New(testTables())
	if len(m.entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(m.entries))
	}
	if len(m.visible) != 4 {
		t.Errorf("expected 4 visible, got %d", len(m.visible))
	}
	if m.cursor != 0 {
		t.Errorf("initial cursor should be 0, got %d", m.cursor)
	}
}

func TestCursorNavigation(t *testing.T) {
	m := New(testTables())

	next, _ := m.Update(keyMsg("down"))
	m = next.(Model)
	if m.cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", m.cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(Model)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up, want 0", m.cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(Model)
	if m.cursor != 0 {
		t.Errorf("cursor must not move above the first entry, got %d", m.cursor)
	}
}

func TestSelectTable(t *testing.T) {
	m := New(testTables())

	next, _ := m.Update(keyMsg("down"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("enter"))
	m = next.(Model)

	if m.Choice() != "orders" {
		t.Errorf("choice = %q, want orders", m.Choice())
	}
	if m.Cancelled() {
		t.Error("selection should not be cancelled")
	}
}

func TestCancel(t *testing.T) {
	m := New(testTables())

	next, _ := m.Update(keyMsg("q"))
	m = next.(Model)

	if !m.Cancelled() {
		t.Error("q should cancel the picker")
	}
	if m.Choice() != "" {
		t.Errorf("cancelled picker must return no choice, got %q", m.Choice())
	}
}

func TestFilter(t *testing.T) {
	m := New(testTables())

	next, _ := m.Update(keyMsg("/"))
	m = next.(Model)
	if !m.filtering {
		t.Fatal("/ should enter filter mode")
	}

	for _, r := range "order" {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	if len(m.visible) != 2 {
		t.Errorf("filter 'order' should match 2 tables, got %d", len(m.visible))
	}

	next, _ = m.Update(keyMsg("enter"))
	m = next.(Model)
	if m.filtering {
		t.Error("enter should leave filter mode")
	}

	next, _ = m.Update(keyMsg("enter"))
	m = next.(Model)
	choice := m.Choice()
	if choice != "orders" && choice != "order_items" {
		t.Errorf("choice = %q, want a filtered entry", choice)
	}
}

func TestViewListsTables(t *testing.T) {
	m := New(testTables())
	m.width = 100
	m.height = 30

	out := m.View()
	for _, want := range []string{"customers", "orders", "products"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
