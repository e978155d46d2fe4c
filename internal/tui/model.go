package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/surface"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/tui/panels"
)

// defaultFrameInterval is the repaint rate when Options.FrameInterval is 0.
const defaultFrameInterval = 50 * time.Millisecond

// Options configures a Model.
type Options struct {
	Items         []panels.MenuEntry
	Preview       bool // two-pane preview style; false shows the list box
	Canvas        surface.Snapshotter
	Keys          KeySink
	Events        <-chan lifecycle.Event
	AccentColor   string
	ProjectName   string
	WorkDir       string
	ShowEvents    bool
	FrameInterval time.Duration
}

// Model is the root bubbletea model. It renders what the selector and the
// lifecycle manager report and forwards key presses to the selector; it never
// starts or stops tasks itself.
type Model struct {
	events <-chan lifecycle.Event
	keys   KeySink
	canvas surface.Snapshotter

	// Sub-panels
	menu     panels.MenuPanel
	preview  panels.PreviewPanel
	eventLog panels.EventsPanel

	// Layout and focus
	keymap     KeyMap
	layout     Layout
	focus      FocusTarget
	theme      Theme
	width      int
	height     int
	previewUI  bool
	showEvents bool
	interval   time.Duration
	items      []panels.MenuEntry

	// Selection state
	state   PreviewState
	current string
	taskID  uint64
	status  string
	dropped int // keys the selector was too busy to take

	// Time
	startedAt time.Time
	now       time.Time

	// Identity
	projectName string
	workDir     string

	done bool
}

// New creates the TUI model.
func New(opts Options) Model {
	now := time.Now()
	th := NewTheme(opts.AccentColor)
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = defaultFrameInterval
	}

	m := Model{
		events:      opts.Events,
		keys:        opts.Keys,
		canvas:      opts.Canvas,
		keymap:      DefaultKeyMap(),
		focus:       FocusMenu,
		theme:       th,
		previewUI:   opts.Preview,
		showEvents:  opts.ShowEvents && opts.Preview,
		interval:    interval,
		items:       opts.Items,
		state:       StateEmpty,
		startedAt:   now,
		now:         now,
		projectName: opts.ProjectName,
		workDir:     opts.WorkDir,
	}
	m.layout = m.calculate(80, 24)
	m.width, m.height = 80, 24

	menuW, menuH := innerDims(m.layout.Menu)
	previewW, previewH := innerDims(m.layout.Preview)
	eventsW, eventsH := innerDims(m.layout.Events)
	title := ""
	if !m.previewUI {
		title = "Select an option"
	}
	m.menu = panels.NewMenuPanel(opts.Items, title, th.HighlightStyle(), menuW, menuH)
	m.preview = panels.NewPreviewPanel(previewW, previewH)
	m.eventLog = panels.NewEventsPanel(eventsW, eventsH)
	return m
}

func (m Model) calculate(width, height int) Layout {
	if m.previewUI {
		return Calculate(width, height, m.showEvents)
	}
	return CalculateList(width, height, len(m.items), m.widestLabel())
}

// resize recomputes the layout and resizes every panel.
func (m Model) resize(width, height int) Model {
	m.width = width
	m.height = height
	m.layout = m.calculate(width, height)
	if m.layout.TooSmall {
		return m
	}
	menuW, menuH := innerDims(m.layout.Menu)
	previewW, previewH := innerDims(m.layout.Preview)
	eventsW, eventsH := innerDims(m.layout.Events)
	m.menu = m.menu.SetSize(menuW, menuH)
	m.preview = m.preview.SetSize(previewW, previewH)
	m.eventLog = m.eventLog.SetSize(eventsW, eventsH)
	return m
}

func (m Model) widestLabel() int {
	w := len("Select an option")
	for _, it := range m.items {
		if n := len([]rune(it.Label)); n > w {
			w = n
		}
	}
	return w
}

// Done reports whether the selector has finished.
func (m Model) Done() bool { return m.done }

// State returns what the preview pane is showing.
func (m Model) State() PreviewState { return m.state }

// Init returns the initial commands: event listener + frame ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), m.frameCmd())
}

// frameCmd schedules the next repaint.
func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// waitForEvent blocks on the event channel and returns the next message.
func waitForEvent(ch <-chan lifecycle.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return selectorDoneMsg{}
		}
		return eventMsg(e)
	}
}
