// Package render formats decoded images for terminal output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ACIDBURN2501/embedded-log/internal/rawdump"
	"github.com/ACIDBURN2501/embedded-log/ramlog"
)

var (
	infoStyle  = lipgloss.NewStyle().Faint(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	faultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	labelStyle = lipgloss.NewStyle().Faint(true)
)

// LevelStyle returns the display style for a level.
func LevelStyle(l ramlog.Level) lipgloss.Style {
	switch l {
	case ramlog.Warn:
		return warnStyle
	case ramlog.Fault:
		return faultStyle
	default:
		return infoStyle
	}
}

// FormatTick renders a tick value, as elapsed time when the tick rate
// is known and as the raw counter otherwise.
func FormatTick(tick uint32, hz int) string {
	if hz <= 0 {
		return strconv.FormatUint(uint64(tick), 10)
	}
	d := time.Duration(tick) * time.Second / time.Duration(hz)
	return d.String()
}

// FormatEntry renders one entry line: sequence, tick, level, message.
func FormatEntry(seq int, e ramlog.Entry, tickHz int) string {
	level := LevelStyle(e.Level).Render(fmt.Sprintf("%-5s", e.Level))
	return fmt.Sprintf("%4d  %10s  %s  %s", seq, FormatTick(e.Timestamp, tickHz), level, e.Message())
}

// Summary aggregates an image for the inspect command.
type Summary struct {
	Path     string            `json:"path"`
	Capacity int               `json:"capacity"`
	Count    int               `json:"count"`
	Head     int               `json:"head"`
	Wrapped  bool              `json:"wrapped"`
	Info     int               `json:"info"`
	Warn     int               `json:"warn"`
	Fault    int               `json:"fault"`
	Other    int               `json:"other"`
	Oldest   uint32            `json:"oldest_tick"`
	Newest   uint32            `json:"newest_tick"`
	Meta     *rawdump.Metadata `json:"meta,omitempty"`
}

// BuildSummary computes the summary for an image. meta may be nil.
func BuildSummary(path string, img *rawdump.Image, meta *rawdump.Metadata) Summary {
	s := Summary{
		Path:     path,
		Capacity: ramlog.Entries,
		Count:    int(img.Count),
		Head:     int(img.Head),
		Wrapped:  img.Count == ramlog.Entries,
		Meta:     meta,
	}

	entries := img.Chronological()
	for _, e := range entries {
		switch e.Level {
		case ramlog.Info:
			s.Info++
		case ramlog.Warn:
			s.Warn++
		case ramlog.Fault:
			s.Fault++
		default:
			s.Other++
		}
	}
	if len(entries) > 0 {
		s.Oldest = entries[0].Timestamp
		s.Newest = entries[len(entries)-1].Timestamp
	}
	return s
}

// WriteJSON writes the summary as a single JSON object.
func (s Summary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteText writes a human-readable summary.
func (s Summary) WriteText(w io.Writer, tickHz int) {
	line := func(label, value string) {
		_, _ = fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-10s", label+":")), value)
	}

	line("Image", s.Path)
	line("Entries", fmt.Sprintf("%d / %d%s", s.Count, s.Capacity, wrappedNote(s.Wrapped)))
	line("Head", strconv.Itoa(s.Head))
	line("Levels", fmt.Sprintf("%d info, %d warn, %d fault", s.Info, s.Warn, s.Fault))
	if s.Other > 0 {
		line("Unknown", strconv.Itoa(s.Other))
	}
	if s.Count > 0 {
		line("Ticks", fmt.Sprintf("%s .. %s", FormatTick(s.Oldest, tickHz), FormatTick(s.Newest, tickHz)))
	}
	if s.Meta != nil {
		line("Capture", fmt.Sprintf("%s (%s, %s)", s.Meta.ID, s.Meta.Source,
			s.Meta.CapturedAt.Format(time.RFC3339)))
	}
}

func wrappedNote(wrapped bool) string {
	if wrapped {
		return " (wrapped, oldest entries overwritten)"
	}
	return ""
}
