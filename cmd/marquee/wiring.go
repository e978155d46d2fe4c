package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/config"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/notify"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/selector"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/session"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/store"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/surface"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/task"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/tui"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/tui/panels"
)

const (
	eventBuffer = 256
	keyBuffer   = 16

	// fatalFlushTimeout bounds how long the fatal hook waits for the fatal
	// event to reach the log and the state file.
	fatalFlushTimeout = 500 * time.Millisecond
	notifyTimeout     = 5 * time.Second
	programExitWait   = time.Second
)

// selectRun wires one selector session. The manager and selector publish on
// events; forward fans each event out to the session log, the state tracker,
// the notifier and finally the display.
type selectRun struct {
	cfg    *config.Config
	dir    string
	style  selector.Style
	canvas *surface.Canvas
	items  []task.Item
	mgr    *lifecycle.Manager
	events chan lifecycle.Event

	log      store.Store // nil when the log could not be opened
	tracker  *session.Tracker
	notifier *notify.Notifier // nil without a notification URL

	out    io.Writer
	errOut io.Writer

	// fatalSeen is closed once forward has recorded the fatal event.
	fatalSeen chan struct{}

	// program and programDone are set by runTUI before the selector starts.
	program     *tea.Program
	programDone chan struct{}

	exit func(code int)
}

func newSelectRun(cfg *config.Config, dir string, style selector.Style, out, errOut io.Writer) (*selectRun, error) {
	items, err := task.ItemsFromConfig(cfg.Items, task.Options{
		Interval:    cfg.Lifecycle.FrameInterval(),
		JoinTimeout: cfg.Lifecycle.JoinTimeout(),
	})
	if err != nil {
		return nil, err
	}

	r := &selectRun{
		cfg:       cfg,
		dir:       dir,
		style:     style,
		canvas:    surface.NewCanvas(cfg.Preview.Rows, cfg.Preview.Cols),
		items:     items,
		events:    make(chan lifecycle.Event, eventBuffer),
		out:       out,
		errOut:    errOut,
		fatalSeen: make(chan struct{}),
		exit:      os.Exit,
	}
	r.mgr = lifecycle.New(r.canvas, items, r.events)
	r.mgr.Fatal = r.fatal

	logDir := cfg.Session.LogDir
	if !filepath.IsAbs(logDir) {
		logDir = filepath.Join(dir, logDir)
	}
	var sessionID, logPath string
	if log, err := store.NewJSONL(logDir); err != nil {
		fmt.Fprintf(errOut, "marquee: warning: session log disabled: %v\n", err)
	} else {
		r.log = log
		sessionID, logPath = log.SessionID(), log.Path()
		if err := store.EnforceRetention(logDir, cfg.Session.LogRetention); err != nil {
			fmt.Fprintf(errOut, "marquee: warning: %v\n", err)
		}
	}

	r.tracker = session.NewTracker(dir, sessionID, logPath, string(style))
	if cfg.Notifications.URL != "" {
		r.notifier = notify.New(cfg.Notifications.URL, cfg.Project.Name, cfg.Notifications.OnConfirm, cfg.Notifications.OnFatal)
	}
	return r, nil
}

// selectOnce runs the selector on the calling goroutine.
func (r *selectRun) selectOnce(ctx context.Context, keys selector.KeySource) (string, error) {
	sel := selector.New(r.items, r.style, r.mgr)
	sel.Events = r.events
	return sel.Run(ctx, keys)
}

// runHeadless runs the selector against line input and prints each event.
func (r *selectRun) runHeadless(ctx context.Context, keys selector.KeySource) (string, error) {
	forwardDone := make(chan struct{})
	go func() {
		defer close(forwardDone)
		r.forward(r.printEvent)
	}()

	label, err := r.selectOnce(ctx, keys)
	close(r.events)
	<-forwardDone
	return label, err
}

// runTUI runs the selector on its own goroutine while the TUI owns the
// terminal. The TUI writes key presses into keys and quits once the event
// stream closes.
func (r *selectRun) runTUI(ctx context.Context, keys selector.KeyChan, opts ...tea.ProgramOption) (string, error) {
	tuiEvents := make(chan lifecycle.Event, eventBuffer)

	entries := make([]panels.MenuEntry, len(r.items))
	for i, it := range r.items {
		entries[i] = panels.MenuEntry{Label: it.Label, Kind: it.Kind}
	}
	model := tui.New(tui.Options{
		Items:       entries,
		Preview:     r.style == selector.StylePreview,
		Canvas:      r.canvas,
		Keys:        keys,
		Events:      tuiEvents,
		AccentColor: r.cfg.TUI.AccentColor,
		ProjectName: r.cfg.Project.Name,
		WorkDir:     r.dir,
		ShowEvents:  r.cfg.TUI.ShowEvents,
	})
	r.program = tui.NewProgram(ctx, model, opts...)
	r.programDone = make(chan struct{})

	// Forward events: log, state, notifier, then TUI.
	forwardDone := make(chan struct{})
	go func() {
		defer close(forwardDone)
		defer close(tuiEvents)
		r.forward(func(e lifecycle.Event) { lifecycle.Emit(tuiEvents, e) })
	}()

	type result struct {
		label string
		err   error
	}
	resCh := make(chan result, 1)
	go func() {
		label, err := r.selectOnce(ctx, keys)
		close(r.events)
		<-forwardDone
		resCh <- result{label, err}
	}()

	_, tuiErr := tui.Wait(ctx, r.program, model)
	close(r.programDone)
	// The program no longer sends keys. A selector still waiting for one
	// reads end of input and cancels.
	close(keys)
	res := <-resCh

	if tuiErr != nil {
		if res.err == nil || errors.Is(res.err, selector.ErrCancelled) {
			return "", tuiErr
		}
		return "", errors.Join(tuiErr, res.err)
	}
	return res.label, res.err
}

// forward drains events until the channel closes. The fatal event is fully
// recorded before fatalSeen is closed.
func (r *selectRun) forward(sink func(lifecycle.Event)) {
	fatal := false
	for e := range r.events {
		if r.log != nil {
			_ = r.log.Append(e)
		}
		r.tracker.Track(e)
		if r.notifier != nil {
			r.notifier.Hook(e)
		}
		sink(e)

		if e.Kind == lifecycle.EventFatal && !fatal {
			fatal = true
			r.tracker.Finish("", errors.New(e.Message))
			close(r.fatalSeen)
		}
	}
}

// finish records the outcome and flushes the log and notifications. Call it
// after runHeadless or runTUI returned.
func (r *selectRun) finish(label string, err error) {
	r.tracker.Finish(label, err)
	if r.log != nil {
		_ = r.log.Close()
	}
	if r.notifier != nil {
		r.notifier.Wait(notifyTimeout)
	}
}

// fatal is the manager's Fatal hook. A worker that cannot be stopped may
// still be drawing, so the process exits with status 2 once the fatal event
// is recorded and the terminal is restored.
func (r *selectRun) fatal(err error) {
	select {
	case <-r.fatalSeen:
	case <-time.After(fatalFlushTimeout):
	}
	if r.notifier != nil {
		r.notifier.Wait(notifyTimeout)
	}
	if r.program != nil {
		r.program.Kill()
		select {
		case <-r.programDone:
		case <-time.After(programExitWait):
		}
	}
	fmt.Fprintf(r.errOut, "marquee: fatal: %v\n", err)
	r.exit(2)
}

// printEvent is the headless display: one line per event, plus the canvas
// rows after a static item rendered.
func (r *selectRun) printEvent(e lifecycle.Event) {
	fmt.Fprintln(r.out, formatEvent(e))
	if e.Kind != lifecycle.EventStatic {
		return
	}
	for _, row := range r.canvas.Snapshot() {
		if row = strings.TrimRight(row, " "); row != "" {
			fmt.Fprintf(r.out, "    | %s\n", row)
		}
	}
}

// formatEvent renders an event as a single log line.
func formatEvent(e lifecycle.Event) string {
	msg := e.Message
	if msg == "" {
		msg = e.Label
	}
	if e.Kind == lifecycle.EventTaskStop && e.Err != "" {
		msg += " (" + e.Err + ")"
	}
	msg = strings.ReplaceAll(msg, "\n", " ")
	return fmt.Sprintf("[%s] %-14s %s", e.Timestamp.Format("15:04:05"), e.Kind, msg)
}
