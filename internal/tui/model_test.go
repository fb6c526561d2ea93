package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ACIDBURN2501/embedded-log/internal/rawdump"
	"github.com/ACIDBURN2501/embedded-log/ramlog"
)

func testModel(t *testing.T, n int) Model {
	t.Helper()
	var tick uint32
	s := &ramlog.Store{}
	s.Init(func() uint32 { tick++; return tick })
	for i := 0; i < n; i++ {
		level := ramlog.Info
		if i%10 == 0 {
			level = ramlog.Fault
		}
		s.Event(level, "line %d", i)
	}
	return New("dump.bin", rawdump.Capture(s), 0)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestInitialState(t *testing.T) {
	m := testModel(t, 50)
	if m.offset != 0 || m.filter != filterAll || m.searching {
		t.Fatalf("unexpected initial state: %+v", m)
	}
	if m.Init() != nil {
		t.Fatal("Init should return no command")
	}
}

func TestQuit(t *testing.T) {
	m := testModel(t, 5)
	updated, cmd := m.Update(key("q"))
	if !updated.(Model).quitting {
		t.Fatal("q did not set quitting")
	}
	if cmd == nil {
		t.Fatal("q did not return a quit command")
	}
	if updated.(Model).View() != "" {
		t.Fatal("quitting view should be empty")
	}
}

func TestScroll(t *testing.T) {
	m := testModel(t, 100)
	m.height = 12

	updated, _ := m.Update(key("j"))
	m = updated.(Model)
	if m.offset != 1 {
		t.Fatalf("offset after j = %d, want 1", m.offset)
	}

	updated, _ = m.Update(key("k"))
	m = updated.(Model)
	if m.offset != 0 {
		t.Fatalf("offset after k = %d, want 0", m.offset)
	}

	// clamped at the top
	updated, _ = m.Update(key("k"))
	m = updated.(Model)
	if m.offset != 0 {
		t.Fatalf("offset clamp failed: %d", m.offset)
	}
}

func TestJumpToEnds(t *testing.T) {
	m := testModel(t, 100)
	m.height = 12

	updated, _ := m.Update(key("G"))
	m = updated.(Model)
	if want := 100 - m.pageSize(); m.offset != want {
		t.Fatalf("offset after G = %d, want %d", m.offset, want)
	}

	updated, _ = m.Update(key("g"))
	m = updated.(Model)
	if m.offset != 0 {
		t.Fatalf("offset after g = %d, want 0", m.offset)
	}
}

func TestLevelFilterCycle(t *testing.T) {
	m := testModel(t, 50)

	updated, _ := m.Update(key("l"))
	m = updated.(Model)
	if m.filter != int(ramlog.Info) {
		t.Fatalf("filter = %d, want info", m.filter)
	}

	for i := 0; i < 3; i++ {
		updated, _ = m.Update(key("l"))
		m = updated.(Model)
	}
	if m.filter != filterAll {
		t.Fatalf("filter after full cycle = %d, want all", m.filter)
	}
}

func TestFilterNarrowsView(t *testing.T) {
	m := testModel(t, 50)
	m.filter = int(ramlog.Fault)
	if got := len(m.visible()); got != 5 {
		t.Fatalf("visible fault entries = %d, want 5", got)
	}
}

func TestSearch(t *testing.T) {
	m := testModel(t, 50)
	m.height = 12

	updated, _ := m.Update(key("/"))
	m = updated.(Model)
	if !m.searching {
		t.Fatal("/ did not enter search mode")
	}

	for _, r := range "line 3" {
		updated, _ = m.Update(key(string(r)))
		m = updated.(Model)
	}
	updated, _ = m.Update(key("enter"))
	m = updated.(Model)

	if m.searching {
		t.Fatal("enter did not leave search mode")
	}
	if m.offset != 3 {
		t.Fatalf("offset after search = %d, want 3", m.offset)
	}

	// n advances to "line 30"
	updated, _ = m.Update(key("n"))
	m = updated.(Model)
	if m.offset != 30 {
		t.Fatalf("offset after n = %d, want 30", m.offset)
	}
}

func TestSearchEscape(t *testing.T) {
	m := testModel(t, 10)

	updated, _ := m.Update(key("/"))
	m = updated.(Model)
	updated, _ = m.Update(key("esc"))
	m = updated.(Model)

	if m.searching || m.searchRegex != nil {
		t.Fatal("esc did not cancel search")
	}
}

func TestViewRenders(t *testing.T) {
	m := testModel(t, 20)
	out := m.View()
	for _, want := range []string{"dump.bin", "20 entries", "line 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestViewEmptyImage(t *testing.T) {
	m := testModel(t, 0)
	if !strings.Contains(m.View(), "no entries") {
		t.Fatal("empty view missing placeholder")
	}
}

func TestWindowResizeClamps(t *testing.T) {
	m := testModel(t, 30)
	m.height = 10
	m.offset = 25

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	if m.offset != 0 {
		t.Fatalf("offset after grow = %d, want 0", m.offset)
	}
	if m.width != 120 || m.height != 40 {
		t.Fatalf("size = %dx%d", m.width, m.height)
	}
}
