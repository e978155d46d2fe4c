// Package tui provides a bubbletea + lipgloss terminal UI for the marquee
// selector.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"
)

// defaultAccentColor is the default accent color (indigo).
const defaultAccentColor = "#7D56F4"

var (
	colorWhite  = lipgloss.Color("#FAFAFA")
	colorGray   = lipgloss.Color("#888888")
	colorBlue   = lipgloss.Color("#5B9BD5")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorYellow = lipgloss.Color("#FFD93D")
	colorRed    = lipgloss.Color("#FF6B6B")
	colorOrange = lipgloss.Color("#FFA54F")
)

// Styles used across the TUI. Accent-dependent styles live on Theme.
var (
	timestampStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	selectStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	startStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	stopStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorOrange)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorWhite)
)

// eventIcon returns the icon shown in front of an event line.
func eventIcon(kind lifecycle.EventKind) string {
	switch kind {
	case lifecycle.EventSelect:
		return "→"
	case lifecycle.EventTaskStart:
		return "▶"
	case lifecycle.EventTaskStop:
		return "■"
	case lifecycle.EventStatic:
		return "≡"
	case lifecycle.EventFactoryFailed:
		return "!"
	case lifecycle.EventConfirm:
		return "✓"
	case lifecycle.EventCancel:
		return "⏹"
	case lifecycle.EventFatal:
		return "✗"
	default:
		return "·"
	}
}

// eventStyle returns the lipgloss style for an event kind.
func eventStyle(kind lifecycle.EventKind) lipgloss.Style {
	switch kind {
	case lifecycle.EventSelect:
		return selectStyle
	case lifecycle.EventTaskStart:
		return startStyle
	case lifecycle.EventTaskStop:
		return stopStyle
	case lifecycle.EventFactoryFailed, lifecycle.EventCancel:
		return warnStyle
	case lifecycle.EventConfirm:
		return resultStyle
	case lifecycle.EventFatal:
		return errorStyle
	default:
		return infoStyle
	}
}
