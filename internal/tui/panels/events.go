package panels

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/tui/components"
)

// EventsTab identifies the active content tab in the events panel.
type EventsTab int

const (
	TabLog   EventsTab = iota // Rendered lifecycle events
	TabTasks                  // One row per stopped task
)

var eventsTabLabels = []string{"Events", "Tasks"}

// TaskRow is one finished task in the Tasks tab.
type TaskRow struct {
	TaskID      uint64
	Label       string
	Frames      int
	StopLatency time.Duration
	Err         string
}

// EventsPanel is the right-bottom panel with the event log and task table.
type EventsPanel struct {
	tabbar    components.TabBar
	log       components.LogView
	tasks     []TaskRow
	width     int
	height    int
	activeTab EventsTab
}

// NewEventsPanel creates an events panel showing the log tab.
func NewEventsPanel(w, h int) EventsPanel {
	contentH := h - 1
	if contentH < 1 {
		contentH = 1
	}
	return EventsPanel{
		tabbar: components.NewTabBar(eventsTabLabels).SetWidth(w),
		log:    components.NewLogView(w, contentH),
		width:  w,
		height: h,
	}
}

// AppendLine appends a pre-rendered event line to the log tab.
func (p EventsPanel) AppendLine(rendered string) EventsPanel {
	p.log = p.log.AppendLine(rendered)
	return p
}

// AddTask records a stopped task for the Tasks tab.
func (p EventsPanel) AddTask(r TaskRow) EventsPanel {
	p.tasks = append(p.tasks, r)
	return p
}

// Tasks returns the recorded task rows.
func (p EventsPanel) Tasks() []TaskRow { return p.tasks }

// ActiveTab returns the visible tab.
func (p EventsPanel) ActiveTab() EventsTab { return p.activeTab }

// Following reports whether the log tab auto-scrolls.
func (p EventsPanel) Following() bool { return p.log.Following() }

// NextTab switches to the next tab.
func (p EventsPanel) NextTab() EventsPanel {
	p.tabbar = p.tabbar.Next()
	p.activeTab = EventsTab(p.tabbar.Active())
	return p
}

// PrevTab switches to the previous tab.
func (p EventsPanel) PrevTab() EventsPanel {
	p.tabbar = p.tabbar.Prev()
	p.activeTab = EventsTab(p.tabbar.Active())
	return p
}

// ToggleFollow toggles auto-scroll on the log tab.
func (p EventsPanel) ToggleFollow() EventsPanel {
	p.log = p.log.ToggleFollow()
	return p
}

// SetSize resizes the panel.
func (p EventsPanel) SetSize(w, h int) EventsPanel {
	p.width = w
	p.height = h
	contentH := h - 1
	if contentH < 1 {
		contentH = 1
	}
	p.tabbar = p.tabbar.SetWidth(w)
	p.log = p.log.SetSize(w, contentH)
	return p
}

// Update forwards scroll keys and mouse events to the log tab.
func (p EventsPanel) Update(msg tea.Msg) (EventsPanel, tea.Cmd) {
	if p.activeTab != TabLog {
		return p, nil
	}
	var cmd tea.Cmd
	p.log, cmd = p.log.Update(msg)
	return p, cmd
}

// View renders the tab bar and the active tab content.
func (p EventsPanel) View() string {
	tabRow := p.tabbar.View()
	var content string
	switch p.activeTab {
	case TabLog:
		content = p.log.View()
	case TabTasks:
		content = p.renderTaskTable()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabRow, content)
}

// renderTaskTable renders one row per stopped task, newest last.
func (p EventsPanel) renderTaskTable() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	contentH := p.height - 1
	if contentH < 1 {
		contentH = 1
	}
	if len(p.tasks) == 0 {
		return lipgloss.NewStyle().
			Width(p.width).Height(contentH).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(lipgloss.Color("#888888")).
			Render("No tasks yet")
	}

	var sb strings.Builder
	header := fmt.Sprintf("  %-4s %-14s %7s %9s", "#", "Item", "Frames", "Stop")
	divider := strings.Repeat("─", min(p.width, 38))
	sb.WriteString(dim.Render(header))
	sb.WriteString("\n")
	sb.WriteString(dim.Render(divider))

	// Keep the newest rows when the table is taller than the panel.
	rows := p.tasks
	if room := contentH - 2; room > 0 && len(rows) > room {
		rows = rows[len(rows)-room:]
	}
	for _, r := range rows {
		label := r.Label
		if len([]rune(label)) > 14 {
			label = string([]rune(label)[:13]) + "…"
		}
		line := fmt.Sprintf("  %-4d %-14s %7d %9s", r.TaskID, label, r.Frames, r.StopLatency.Round(time.Microsecond))
		if r.Err != "" {
			line += "  ✗"
		}
		sb.WriteString("\n")
		sb.WriteString(line)
	}

	return lipgloss.NewStyle().
		Width(p.width).Height(contentH).
		Render(sb.String())
}
