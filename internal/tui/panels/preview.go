package panels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/surface"
)

// PreviewPanel shows the shared surface the active task paints on.
type PreviewPanel struct {
	title   string
	notice  string // shown instead of the canvas when set
	lines   []string
	version uint64
	width   int
	height  int
}

// NewPreviewPanel creates an empty preview panel.
func NewPreviewPanel(w, h int) PreviewPanel {
	return PreviewPanel{width: w, height: h}
}

// Refresh copies the surface contents when they changed since the last call.
func (p PreviewPanel) Refresh(s surface.Snapshotter) PreviewPanel {
	if s == nil {
		return p
	}
	v := s.Version()
	if v == p.version && p.lines != nil {
		return p
	}
	p.version = v
	p.lines = s.Snapshot()
	return p
}

// SetTitle sets the label shown on the first row.
func (p PreviewPanel) SetTitle(title string) PreviewPanel {
	p.title = title
	return p
}

// SetNotice replaces the canvas with a message. Pass "" to show the canvas
// again.
func (p PreviewPanel) SetNotice(notice string) PreviewPanel {
	p.notice = notice
	return p
}

// SetSize resizes the panel.
func (p PreviewPanel) SetSize(w, h int) PreviewPanel {
	p.width = w
	p.height = h
	return p
}

// Lines returns the last copied surface rows.
func (p PreviewPanel) Lines() []string { return p.lines }

// View renders the title row and the surface clipped to the panel.
func (p PreviewPanel) View() string {
	contentH := p.height - 1
	if contentH < 1 {
		contentH = 1
	}

	title := lipgloss.NewStyle().Bold(true).Render(ansi.Truncate(p.title, p.width, "…"))

	var body string
	if p.notice != "" {
		body = lipgloss.NewStyle().
			Width(p.width).Height(contentH).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(lipgloss.Color("#FFA54F")).
			Render(p.notice)
	} else {
		rows := p.lines
		if len(rows) > contentH {
			rows = rows[:contentH]
		}
		clipped := make([]string, len(rows))
		for i, r := range rows {
			clipped[i] = ansi.Truncate(r, p.width, "")
		}
		body = lipgloss.NewStyle().
			Width(p.width).Height(contentH).
			Render(strings.Join(clipped, "\n"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}
