package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultMaxLines caps how many lines a LogView keeps.
const DefaultMaxLines = 1000

// LogView is a scrollable log panel that wraps bubbles/viewport.
// In follow mode (default), new lines cause the view to auto-scroll to the
// bottom. Only the newest MaxLines lines are kept.
type LogView struct {
	vp       viewport.Model
	lines    []string // rendered (pre-styled) lines
	follow   bool
	maxLines int
	width    int
	height   int
}

// NewLogView creates a LogView with the given dimensions, initially in follow
// mode.
func NewLogView(w, h int) LogView {
	return LogView{
		vp:       viewport.New(w, h),
		follow:   true,
		maxLines: DefaultMaxLines,
		width:    w,
		height:   h,
	}
}

// SetMaxLines changes the line cap. n <= 0 restores the default.
func (v LogView) SetMaxLines(n int) LogView {
	if n <= 0 {
		n = DefaultMaxLines
	}
	v.maxLines = n
	return v.trim().refresh()
}

// AppendLine appends a pre-rendered (styled) line to the log.
func (v LogView) AppendLine(rendered string) LogView {
	v.lines = append(v.lines, rendered)
	return v.trim().refresh()
}

// SetContent replaces all log lines with the given slice.
func (v LogView) SetContent(lines []string) LogView {
	v.lines = make([]string, len(lines))
	copy(v.lines, lines)
	return v.trim().refresh()
}

// Len returns the number of retained lines.
func (v LogView) Len() int { return len(v.lines) }

func (v LogView) trim() LogView {
	if over := len(v.lines) - v.maxLines; over > 0 {
		v.lines = append([]string(nil), v.lines[over:]...)
	}
	return v
}

func (v LogView) refresh() LogView {
	v.vp.SetContent(strings.Join(v.lines, "\n"))
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// ToggleFollow switches follow mode on or off.
// When turned on, scrolls immediately to the bottom.
func (v LogView) ToggleFollow() LogView {
	v.follow = !v.follow
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// SetSize resizes the log view to the given dimensions.
func (v LogView) SetSize(w, h int) LogView {
	v.width = w
	v.height = h
	v.vp.Width = w
	v.vp.Height = h
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// Following reports whether follow mode is currently active.
func (v LogView) Following() bool {
	return v.follow
}

// Update handles bubbletea messages (scroll keys, mouse events).
func (v LogView) Update(msg tea.Msg) (LogView, tea.Cmd) {
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	// Scrolling away from the bottom leaves follow mode; resizes do not.
	if v.follow && !v.vp.AtBottom() {
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg:
			v.follow = false
		}
	}
	return v, cmd
}

// View renders the log view content.
func (v LogView) View() string {
	return v.vp.View()
}
