package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/gatesketch/pkg/expr"
	"github.com/matzehuels/gatesketch/pkg/gate"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m ExploreModel, msgs ...tea.Msg) ExploreModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(ExploreModel)
	}
	return m
}

func TestExploreModelNavigation(t *testing.T) {
	c, err := expr.Compile("a+b'c")
	if err != nil {
		t.Fatal(err)
	}
	m := NewExploreModel(c)
	if len(m.rows) != 6 {
		t.Fatalf("rows = %d, want 6", len(m.rows))
	}

	// Pre-order: OR, a, AND, NOT, b, c.
	tests := []struct {
		name string
		msgs []tea.Msg
		want gate.Type
		term string
	}{
		{"start at root", nil, gate.Or, "a+b'c"},
		{"down", []tea.Msg{key("j")}, gate.Input, "a"},
		{"down twice", []tea.Msg{key("j"), tea.KeyMsg{Type: tea.KeyDown}}, gate.And, "b'c"},
		{"up clamps", []tea.Msg{key("k"), key("k")}, gate.Or, "a+b'c"},
		{"end", []tea.Msg{key("G")}, gate.Input, "c"},
		{"down clamps", []tea.Msg{key("G"), key("j")}, gate.Input, "c"},
		{"parent", []tea.Msg{key("G"), key("p")}, gate.And, "b'c"},
		{"parent of root", []tea.Msg{key("p")}, gate.Or, "a+b'c"},
		{"home", []tea.Msg{key("G"), key("g")}, gate.Or, "a+b'c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := press(t, m, tt.msgs...).Selected()
			if got.Type() != tt.want || got.Name() != tt.term {
				t.Errorf("Selected() = %s %q, want %s %q", got.Type(), got.Name(), tt.want, tt.term)
			}
		})
	}
}

func TestExploreModelScroll(t *testing.T) {
	c, err := expr.Compile("abcdefgh")
	if err != nil {
		t.Fatal(err)
	}
	m := press(t, NewExploreModel(c), tea.WindowSizeMsg{Width: 80, Height: 10})
	if m.Height != 5 {
		t.Fatalf("Height = %d, want 5", m.Height)
	}

	m = press(t, m, key("G"))
	if m.Offset != m.Cursor-m.Height+1 {
		t.Errorf("Offset = %d with cursor %d, want cursor on the last visible row", m.Offset, m.Cursor)
	}
	m = press(t, m, key("g"))
	if m.Offset != 0 {
		t.Errorf("Offset = %d after home, want 0", m.Offset)
	}
}

func TestExploreModelQuit(t *testing.T) {
	c, _ := expr.Compile("a")
	for _, msg := range []tea.Msg{key("q"), tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyCtrlC}} {
		if _, cmd := NewExploreModel(c).Update(msg); cmd == nil {
			t.Errorf("%v did not quit", msg)
		}
	}
}

func TestExploreModelView(t *testing.T) {
	c, _ := expr.Compile("(a+b)c'")
	view := press(t, NewExploreModel(c), key("j")).View()

	for _, want := range []string{"Explore (a+b)*c'", "▸ ", "[2/6]", "230x260"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	if !strings.Contains(view, "a+b") {
		t.Errorf("View() does not show the selected subtree:\n%s", view)
	}
}
