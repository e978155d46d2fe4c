package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/selector"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/tui/panels"
)

// Update handles all incoming bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if m.showEvents {
			var cmd tea.Cmd
			m.eventLog, cmd = m.eventLog.Update(msg)
			return m, cmd
		}
		return m, nil
	case eventMsg:
		return m.handleEvent(lifecycle.Event(msg))
	case frameMsg:
		m.now = time.Time(msg)
		m.preview = m.preview.Refresh(m.canvas)
		if m.done {
			return m, nil
		}
		return m, m.frameCmd()
	case selectorDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keymap.Focus):
		if m.showEvents {
			m.focus = m.focus.Next()
		}
		return m, nil
	case m.focus == FocusEvents && key.Matches(msg, m.keymap.NextTab):
		m.eventLog = m.eventLog.NextTab()
		return m, nil
	case m.focus == FocusEvents && key.Matches(msg, m.keymap.PrevTab):
		m.eventLog = m.eventLog.PrevTab()
		return m, nil
	case m.focus == FocusEvents && key.Matches(msg, m.keymap.Follow):
		m.eventLog = m.eventLog.ToggleFollow()
		return m, nil
	case m.focus == FocusEvents && key.Matches(msg, m.keymap.Up, m.keymap.Down):
		var cmd tea.Cmd
		m.eventLog, cmd = m.eventLog.Update(msg)
		return m, cmd
	}

	if k, ok := m.keymap.selectorKey(msg); ok {
		m.forward(k)
	}
	return m, nil
}

// forward hands k to the selector. A busy selector drops the key, the same
// as a terminal that is not being read.
func (m *Model) forward(k selector.Key) {
	if m.keys == nil {
		return
	}
	if !m.keys.Send(k) {
		m.dropped++
	}
}

func (m Model) handleEvent(e lifecycle.Event) (tea.Model, tea.Cmd) {
	if next, ok := stateForEvent(e.Kind); ok && m.state.CanTransitionTo(next) {
		m.state = next
	}

	switch e.Kind {
	case lifecycle.EventSelect:
		m.current = e.Label
		m.menu = m.menu.Select(e.Index)
		m.preview = m.preview.SetTitle(e.Label)

	case lifecycle.EventTaskStart:
		m.taskID = e.TaskID
		m.menu = m.menu.SetLive(e.Index)
		m.preview = m.preview.SetNotice("")

	case lifecycle.EventTaskStop:
		m.taskID = 0
		m.menu = m.menu.SetLive(-1)
		m.eventLog = m.eventLog.AddTask(panels.TaskRow{
			TaskID:      e.TaskID,
			Label:       e.Label,
			Frames:      e.Frames,
			StopLatency: e.StopLatency,
			Err:         e.Err,
		})

	case lifecycle.EventStatic:
		m.preview = m.preview.SetNotice("")

	case lifecycle.EventFactoryFailed, lifecycle.EventFatal:
		m.taskID = 0
		m.menu = m.menu.SetLive(-1)
		m.preview = m.preview.SetNotice(singleLine(e.Message))
	}

	if e.Message != "" {
		m.status = singleLine(e.Message)
	}
	w, _ := innerDims(m.layout.Events)
	if w < 20 {
		w = m.width
	}
	m.eventLog = m.eventLog.AppendLine(m.theme.RenderEvent(e, w))
	m.preview = m.preview.Refresh(m.canvas)

	return m, waitForEvent(m.events)
}
