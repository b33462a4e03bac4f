package cli

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tilelay/pkg/pattern"
)

func loadTestCatalog(t *testing.T) *pattern.Catalog {
	t.Helper()
	cat, err := pattern.LoadFile(filepath.Join("testdata", "patterns.json"))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func update(t *testing.T, m PatternListModel, msg tea.Msg) (PatternListModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(PatternListModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return pm, cmd
}

func TestPatternListModelSelect(t *testing.T) {
	m := NewPatternListModel(loadTestCatalog(t))

	// Square Grid Pattern has two proportions.
	m, _ = update(t, m, key(tea.KeyRight))
	m, _ = update(t, m, key(tea.KeyRight))
	if m.Proportion != 1 {
		t.Fatalf("Proportion = %d, want 1 (clamped)", m.Proportion)
	}

	m, _ = update(t, m, key(tea.KeyDown))
	if m.Cursor != 1 || m.Proportion != 0 {
		t.Fatalf("after down: Cursor = %d, Proportion = %d; want 1, 0", m.Cursor, m.Proportion)
	}
	m, _ = update(t, m, key(tea.KeyDown))
	if m.Cursor != 1 {
		t.Fatalf("Cursor = %d, want 1 (clamped)", m.Cursor)
	}

	m, _ = update(t, m, key(tea.KeyUp))
	m, _ = update(t, m, key(tea.KeyRight))
	m, cmd := update(t, m, key(tea.KeyEnter))
	if cmd == nil {
		t.Error("enter should quit")
	}
	if m.Selected == nil {
		t.Fatal("nothing selected")
	}
	if m.Selected.Name != "Square Grid Pattern" || m.Selected.Proportion != 1 {
		t.Errorf("Selected = %+v", *m.Selected)
	}
}

func TestPatternListModelQuit(t *testing.T) {
	m := NewPatternListModel(loadTestCatalog(t))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should quit")
	}
	if m.Selected != nil {
		t.Errorf("Selected = %+v, want nil", *m.Selected)
	}
}

func TestPatternListModelView(t *testing.T) {
	m := NewPatternListModel(loadTestCatalog(t))
	m, _ = update(t, m, key(tea.KeyRight))

	view := m.View()
	for _, want := range []string{"Select Pattern", "Square Grid Pattern", "Running Bond", "1:1 [2:1]", "[1/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view does not contain %q:\n%s", want, view)
		}
	}
}

func TestFormatProportions(t *testing.T) {
	props := []pattern.Proportion{{Num: 1, Den: 1}, {Num: 2, Den: 1}, {Num: 1.5, Den: 1}}
	tests := []struct {
		selected int
		want     string
	}{
		{-1, "1:1 2:1 1.5:1"},
		{0, "[1:1] 2:1 1.5:1"},
		{2, "1:1 2:1 [1.5:1]"},
	}
	for _, tt := range tests {
		if got := formatProportions(props, tt.selected); got != tt.want {
			t.Errorf("formatProportions(%d) = %q, want %q", tt.selected, got, tt.want)
		}
	}
}

func TestRenderPatternTable(t *testing.T) {
	cat := loadTestCatalog(t)
	out := renderPatternTable(cat)
	for _, want := range []string{"Pattern", "Square Grid Pattern", "Running Bond", "1:1 2:1", "mm (", "px)"} {
		if !strings.Contains(out, want) {
			t.Errorf("table does not contain %q:\n%s", want, out)
		}
	}
}
