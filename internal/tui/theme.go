package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"
)

// Theme holds accent-color-derived styles. Non-accent styles are package
// level in styles.go.
type Theme struct {
	accentStyle     lipgloss.Style // header background
	itemStyle       lipgloss.Style // highlighted menu item
	borderFocused   lipgloss.Style
	borderUnfocused lipgloss.Style
	accent          lipgloss.Color
}

// NewTheme creates a Theme from a hex accent color string (e.g. "#7D56F4").
// If accentColor is empty, the default accent color is used.
func NewTheme(accentColor string) Theme {
	color := defaultAccentColor
	if accentColor != "" {
		color = accentColor
	}
	c := lipgloss.Color(color)
	return Theme{
		accentStyle: lipgloss.NewStyle().
			Background(c).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		itemStyle: lipgloss.NewStyle().
			Foreground(c).
			Bold(true),
		borderFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c),
		borderUnfocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray),
		accent: c,
	}
}

// AccentHeaderStyle returns the style for the header bar.
func (t Theme) AccentHeaderStyle() lipgloss.Style {
	return t.accentStyle
}

// HighlightStyle returns the style for the highlighted menu item.
func (t Theme) HighlightStyle() lipgloss.Style {
	return t.itemStyle
}

// PanelBorderStyle returns the border style for a panel based on whether it
// holds keyboard focus.
func (t Theme) PanelBorderStyle(focused bool) lipgloss.Style {
	if focused {
		return t.borderFocused
	}
	return t.borderUnfocused
}

// RenderEvent renders a lifecycle event as a single terminal line no wider
// than width cells.
func (t Theme) RenderEvent(e lifecycle.Event, width int) string {
	ts := timestampStyle.Render(fmt.Sprintf("[%s]", e.Timestamp.Format("15:04:05")))
	text := singleLine(e.Message)
	if text == "" {
		text = e.Label
	}
	if e.Err != "" && e.Kind == lifecycle.EventTaskStop {
		text += "  (" + singleLine(e.Err) + ")"
	}

	// "[15:04:05]  x " takes 14 cells.
	maxText := width - 14
	if maxText < 10 {
		maxText = 10
	}
	text = ansi.Truncate(text, maxText, "…")
	return fmt.Sprintf("%s  %s", ts, eventStyle(e.Kind).Render(eventIcon(e.Kind)+" "+text))
}

// singleLine collapses newlines so one event occupies one row.
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
