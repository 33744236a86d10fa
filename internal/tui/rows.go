package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"taskpad/internal/model"
)

// The list is rebuilt wholesale from the store projection on every change.
// Rows hold display data only; no task state lives in the presentation layer.

type row struct {
	id          string
	title       string
	description string
	completed   bool
}

func buildRows(tasks []model.Task) []row {
	rows := make([]row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, row{
			id:          t.ID,
			title:       t.Title,
			description: t.Description,
			completed:   t.Completed,
		})
	}
	return rows
}

// Fixed row geometry. Rows start at listTop; the cells left of the title are
// the toggle checkbox and the drag handle, the right edge is the delete cell.
const (
	listTop   = 2
	titleCol  = 8
	handleCol = 6
)

type rowZone int

const (
	zoneNone rowZone = iota
	zoneCheckbox
	zoneHandle
	zoneTitle
	zoneDelete
)

func zoneForX(x, width int) rowZone {
	switch {
	case x >= width-3:
		return zoneDelete
	case x >= 2 && x <= 4:
		return zoneCheckbox
	case x == handleCol:
		return zoneHandle
	case x >= titleCol:
		return zoneTitle
	default:
		return zoneNone
	}
}

// descVisible reports whether the description line renders for a row: empty
// descriptions stay hidden until the field receives edit focus.
func descVisible(r row, editingDesc bool) bool {
	return r.description != "" || editingDesc
}

func checkboxGlyph(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// renderRowLine renders the single-line body of a row, padded to width with
// the delete affordance at the right edge.
func renderRowLine(r row, width int, selected, dragged, anchor bool) string {
	if width < 20 {
		width = 20
	}

	titleStyle := lipgloss.NewStyle()
	if r.completed {
		titleStyle = titleStyle.Foreground(colorDoneFg).Strikethrough(true)
	}
	switch {
	case dragged:
		titleStyle = titleStyle.Foreground(colorAccent).Bold(true)
	case anchor:
		titleStyle = titleStyle.Foreground(colorDropMarker)
	}

	left := "  " + checkboxGlyph(r.completed) + " " + handleGlyph() + " " + titleStyle.Render(r.title)
	del := lipgloss.NewStyle().Foreground(colorDangerFg).Render(deleteGlyph())

	bodyW := width - 3
	if xansi.StringWidth(left) > bodyW {
		// Terminate ANSI styling after the cut to prevent bleed.
		left = xansi.Cut(left, 0, bodyW) + "\x1b[0m"
	}
	pad := bodyW - xansi.StringWidth(left)
	if pad < 0 {
		pad = 0
	}
	line := left + strings.Repeat(" ", pad) + " " + del

	if selected {
		line = lipgloss.NewStyle().
			Background(colorSelectedBg).
			Foreground(colorSelectedFg).
			Render(stripStyles(line))
	}
	return line
}

// renderDescLine renders the secondary description line under a title.
func renderDescLine(desc string, width int, selected bool) string {
	line := strings.Repeat(" ", titleCol) + styleMuted().Render(desc)
	if xansi.StringWidth(line) > width {
		line = xansi.Cut(line, 0, width) + "\x1b[0m"
	}
	if selected {
		line = lipgloss.NewStyle().
			Background(colorSelectedBg).
			Render(stripStyles(line))
	}
	return line
}

// stripStyles drops per-cell styling so a full-row background reads cleanly.
func stripStyles(s string) string {
	return xansi.Strip(s)
}

func handleGlyph() string { return "≡" }
func deleteGlyph() string { return "✕" }
