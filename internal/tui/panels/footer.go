package panels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

// FooterProps holds all data needed to render the footer bar.
type FooterProps struct {
	Focus     string // "menu" or "events"
	Status    string // left side, e.g. the last event message
	Hints     string // key hints for the current focus
	Following bool   // event pane follow mode
	Finished  bool   // selector has returned
}

// RenderFooter renders the context-sensitive footer bar.
// Left side: status. Right side: keybinding hints.
func RenderFooter(props FooterProps, width int) string {
	left := props.Status
	if left == "" {
		left = "—"
	}

	var right string
	switch {
	case props.Finished:
		right = "done"
	case props.Focus == "events":
		right = props.Hints
		if !props.Following {
			right += "  (paused)"
		}
	default:
		right = props.Hints
	}

	// Keep the hints whole; the status gives way on narrow terminals.
	room := width - ansi.StringWidth(right) - 2
	if room < 1 {
		room = 1
	}
	left = ansi.Truncate(left, room, "…")

	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 2 {
		gap = 2
	}

	return footerStyle.Width(width).MaxHeight(1).Render(left + strings.Repeat(" ", gap) + right)
}
