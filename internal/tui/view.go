package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/tui/panels"
)

// View renders the TUI for the configured style.
func (m Model) View() string {
	if m.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%dx%d).\nPlease resize to at least %dx%d.",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Render(msg)
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	if !m.previewUI {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.renderListBody(), footer)
	}

	menuW, menuH := innerDims(m.layout.Menu)
	previewW, previewH := innerDims(m.layout.Preview)

	menu := m.theme.PanelBorderStyle(m.focus == FocusMenu).
		Width(menuW).Height(menuH).
		Render(m.menu.View())

	right := m.theme.PanelBorderStyle(false).
		Width(previewW).Height(previewH).
		Render(m.preview.View())
	if m.showEvents {
		eventsW, eventsH := innerDims(m.layout.Events)
		right = lipgloss.JoinVertical(lipgloss.Left, right,
			m.theme.PanelBorderStyle(m.focus == FocusEvents).
				Width(eventsW).Height(eventsH).
				Render(m.eventLog.View()),
		)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, menu, right)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderListBody draws the single menu box centered in the body rows.
func (m Model) renderListBody() string {
	menuW, menuH := innerDims(m.layout.Menu)
	box := m.theme.PanelBorderStyle(true).
		Width(menuW).Height(menuH).
		Render(m.menu.View())
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderHeader() string {
	style := "list"
	if m.previewUI {
		style = "preview"
	}
	return panels.RenderHeader(panels.HeaderProps{
		ProjectName: m.projectName,
		WorkDir:     m.workDir,
		Style:       style,
		Current:     m.current,
		TaskID:      m.taskID,
		StateSymbol: m.state.Symbol(),
		StateLabel:  m.state.Label(),
		Elapsed:     m.now.Sub(m.startedAt),
		Clock:       m.now,
	}, m.width, m.theme.AccentHeaderStyle())
}

func (m Model) renderFooter() string {
	km := m.keymap
	var hints string
	switch {
	case m.focus == FocusEvents:
		hints = HelpLine(km.Up, km.Down, km.PrevTab, km.NextTab, km.Follow, km.Focus, km.Cancel)
	case m.showEvents:
		hints = HelpLine(km.Up, km.Down, km.Confirm, km.Focus, km.Cancel)
	default:
		hints = HelpLine(km.Up, km.Down, km.Confirm, km.Cancel)
	}
	return panels.RenderFooter(panels.FooterProps{
		Focus:     m.focus.String(),
		Status:    m.status,
		Hints:     hints,
		Following: m.eventLog.Following(),
		Finished:  m.done,
	}, m.width)
}
