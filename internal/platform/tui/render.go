package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/logview/internal/logs"
	"github.com/vovakirdan/logview/internal/viewport"
)

// Column widths for a rendered row.
const (
	timestampWidth = 12 // HH:MM:SS.mmm
	levelWidth     = 5
	sourceWidth    = 8
	columnGap      = 2
)

// levelStyles maps log levels to lipgloss styles.
var levelStyles = map[logs.Level]lipgloss.Style{
	logs.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	logs.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	logs.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
}

var (
	timestampStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sourceStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

var errorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("9")).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("1")).
	Padding(1, 2)

// RenderRow formats one list row to fit width cells. Unloaded rows render
// a loading placeholder.
func RenderRow(row viewport.Row, width int) string {
	if !row.Loaded {
		return placeholderStyle.Render(runewidth.Truncate("Loading...", width, ""))
	}

	rec := row.Record
	gap := strings.Repeat(" ", columnGap)

	ts := time.UnixMilli(rec.Timestamp).Format("15:04:05.000")
	level := runewidth.FillRight(string(rec.Level), levelWidth)
	source := runewidth.FillRight(string(rec.Source), sourceWidth)

	fixed := timestampWidth + levelWidth + sourceWidth + 3*columnGap
	avail := width - fixed
	if avail < 0 {
		avail = 0
	}
	message := runewidth.Truncate(rec.Message, avail, "…")

	style, ok := levelStyles[rec.Level]
	if !ok {
		style = lipgloss.NewStyle()
	}

	var sb strings.Builder
	sb.WriteString(timestampStyle.Render(ts))
	sb.WriteString(gap)
	sb.WriteString(style.Render(level))
	sb.WriteString(gap)
	sb.WriteString(sourceStyle.Render(source))
	sb.WriteString(gap)
	sb.WriteString(message)
	return sb.String()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
