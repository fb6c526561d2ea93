// Package tui is an interactive browser for decoded store images.
package tui

import (
	"fmt"
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ACIDBURN2501/embedded-log/internal/rawdump"
	"github.com/ACIDBURN2501/embedded-log/internal/render"
	"github.com/ACIDBURN2501/embedded-log/ramlog"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
	badgeStyle  = lipgloss.NewStyle().Background(lipgloss.Color("226")).Foreground(lipgloss.Color("0")).Padding(0, 1)
)

// levelFilter cycles all -> info -> warn -> fault.
const filterAll = -1

// Model is the bubbletea model for the view command.
type Model struct {
	path    string
	entries []ramlog.Entry // chronological, oldest first
	tickHz  int

	offset int // index of the first visible entry
	filter int // filterAll or a ramlog.Level ordinal

	searching   bool
	searchInput string
	searchRegex *regexp.Regexp

	width    int
	height   int
	quitting bool
}

// New creates a model over a decoded image.
func New(path string, img *rawdump.Image, tickHz int) Model {
	return Model{
		path:    path,
		entries: img.Chronological(),
		tickHz:  tickHz,
		filter:  filterAll,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		m.offset--
	case "down", "j":
		m.offset++
	case "pgup", "ctrl+u":
		m.offset -= m.pageSize()
	case "pgdown", "ctrl+d":
		m.offset += m.pageSize()
	case "g":
		m.offset = 0
	case "G":
		m.offset = len(m.visible())

	case "l":
		m.filter++
		if m.filter > int(ramlog.Fault) {
			m.filter = filterAll
		}
		m.offset = 0

	case "/":
		m.searching = true
		m.searchInput = ""
	case "n":
		m.jumpToMatch(m.offset + 1)
	}

	m.clampOffset()
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchRegex = nil
	case "enter":
		m.searching = false
		if re, err := regexp.Compile(m.searchInput); err == nil && m.searchInput != "" {
			m.searchRegex = re
			m.jumpToMatch(0)
		}
	case "backspace":
		if len(m.searchInput) > 0 {
			m.searchInput = m.searchInput[:len(m.searchInput)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.searchInput += string(msg.Runes)
		}
	}
	return m, nil
}

// visible returns the entries passing the level filter.
func (m Model) visible() []ramlog.Entry {
	if m.filter == filterAll {
		return m.entries
	}
	var out []ramlog.Entry
	for _, e := range m.entries {
		if int(e.Level) == m.filter {
			out = append(out, e)
		}
	}
	return out
}

func (m *Model) jumpToMatch(from int) {
	if m.searchRegex == nil {
		return
	}
	vis := m.visible()
	for i := from; i < len(vis); i++ {
		if m.searchRegex.MatchString(vis[i].Message()) {
			m.offset = i
			return
		}
	}
}

func (m Model) pageSize() int {
	// header + footer take two lines
	if n := m.height - 2; n > 0 {
		return n
	}
	return 1
}

func (m *Model) clampOffset() {
	maxOff := len(m.visible()) - m.pageSize()
	if maxOff < 0 {
		maxOff = 0
	}
	if m.offset > maxOff {
		m.offset = maxOff
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("%s (%d entries)", m.path, len(m.entries))
	if m.filter != filterAll {
		title += "  " + badgeStyle.Render(ramlog.Level(m.filter).String())
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteByte('\n')

	vis := m.visible()
	end := m.offset + m.pageSize()
	if end > len(vis) {
		end = len(vis)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(render.FormatEntry(i, vis[i], m.tickHz))
		b.WriteByte('\n')
	}
	if len(vis) == 0 {
		b.WriteString(footerStyle.Render("(no entries)"))
		b.WriteByte('\n')
	}

	if m.searching {
		b.WriteString("/" + m.searchInput)
	} else {
		b.WriteString(footerStyle.Render("j/k scroll · g/G ends · l filter · / search · n next · q quit"))
	}
	return b.String()
}
