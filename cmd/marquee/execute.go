package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/config"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/selector"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/session"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/store"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/task"
)

// quitLabel is the menu entry whose selection prints nothing.
const quitLabel = "Quit"

type selectParams struct {
	dir        string
	configPath string
	style      string // empty uses the configured style
	noTUI      bool
}

// executeSelect loads config, runs one selection and reports the result.
func executeSelect(ctx context.Context, p selectParams, s ioStreams) error {
	cfg, err := loadConfig(p.configPath, p.dir)
	if err != nil {
		return err
	}
	style, err := resolveStyle(p.style, cfg)
	if err != nil {
		return err
	}

	run, err := newSelectRun(cfg, p.dir, style, s.out, s.errOut)
	if err != nil {
		return err
	}

	var label string
	if p.noTUI {
		in := selector.NewLineKeySource(s.in)
		label, err = run.runHeadless(ctx, in)
		_ = in.Close()
	} else {
		label, err = run.runTUI(ctx, make(selector.KeyChan, keyBuffer))
	}
	run.finish(label, err)
	return reportSelection(s.out, label, err)
}

// headlessSelect returns the REPL's select action: one headless selection
// per call, reading keys from the REPL's own input.
func headlessSelect(cfg *config.Config, dir string, in selector.KeySource, s ioStreams) func(context.Context, selector.Style) error {
	return func(ctx context.Context, style selector.Style) error {
		run, err := newSelectRun(cfg, dir, style, s.out, s.errOut)
		if err != nil {
			return err
		}
		label, err := run.runHeadless(ctx, in)
		run.finish(label, err)
		return reportSelection(s.out, label, err)
	}
}

// loadConfig reads marquee.toml, or the built-in defaults when there is
// none, and validates the result.
func loadConfig(path, dir string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, config.ErrNotFound) {
		d := config.Defaults()
		d.Project.Name = config.DetectProjectName(dir)
		cfg, err = &d, nil
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// resolveStyle prefers the --style flag over the configured style.
func resolveStyle(flag string, cfg *config.Config) (selector.Style, error) {
	if flag == "" {
		flag = cfg.Selector.Style
	}
	return selector.ParseStyle(flag)
}

// reportSelection prints what the menu callback prints: "Selected: X" for
// every item except Quit. Leaving the menu is not an error.
func reportSelection(w io.Writer, label string, err error) error {
	switch {
	case errors.Is(err, selector.ErrCancelled), errors.Is(err, context.Canceled):
		fmt.Fprintln(w, "Cancelled.")
		return nil
	case err != nil:
		return err
	case label != quitLabel:
		fmt.Fprintf(w, "Selected: %s\n", label)
	}
	return nil
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// showStatus prints the last session from .marquee/state.json together with
// its task table. Without a state file it falls back to the newest session
// log. A non-zero taskID prints that task's events instead.
func showStatus(dir string, w io.Writer, taskID uint64) error {
	state, err := session.LoadState(dir)
	if err != nil {
		return err
	}
	now := time.Now()

	logPath := state.LogPath
	if state.PID == 0 {
		latest, err := store.Latest(filepath.Join(dir, config.StateDir, "logs"))
		if err == nil {
			logPath = latest
		}
	}
	if logPath == "" {
		if taskID != 0 {
			return fmt.Errorf("status: no session log to read task %d from", taskID)
		}
		fmt.Fprint(w, formatStatus(state, now))
		return nil
	}

	log, err := store.Open(logPath)
	if err != nil {
		if state.PID == 0 || taskID != 0 {
			return err
		}
		fmt.Fprint(w, formatStatus(state, now))
		fmt.Fprintf(w, "  %-20s %v\n", "Session log:", err)
		return nil
	}
	defer func() { _ = log.Close() }()

	if taskID != 0 {
		return printTaskLog(w, log, taskID)
	}
	sum, err := log.SessionSummary()
	if err != nil {
		return err
	}
	if state.PID == 0 {
		fmt.Fprint(w, formatSessionSummary(sum))
	} else {
		fmt.Fprint(w, formatStatus(state, now))
		if sum.Tasks > 0 {
			fmt.Fprintf(w, "  %-20s %s\n", "Max stop latency:", sum.MaxLatency.Round(time.Microsecond))
		}
	}
	tasks, err := log.Tasks()
	if err != nil {
		return err
	}
	fmt.Fprint(w, formatTasks(tasks))
	return nil
}

// printTaskLog prints every event logged while task id was live.
func printTaskLog(w io.Writer, r store.Reader, id uint64) error {
	events, err := r.TaskLog(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Task %d\n", id)
	fmt.Fprintln(w, strings.Repeat("─", len(fmt.Sprintf("Task %d", id))))
	for _, e := range events {
		fmt.Fprintln(w, formatEvent(e))
	}
	return nil
}

// formatStatus renders the session state for `marquee status`.
func formatStatus(state session.State, now time.Time) string {
	if state.PID == 0 && state.StartedAt.IsZero() {
		return "No session found. Run 'marquee select' first.\n"
	}

	var b strings.Builder
	b.WriteString("Marquee Status\n")
	b.WriteString("──────────────\n")

	row := func(name, format string, args ...any) {
		fmt.Fprintf(&b, "  %-20s "+format+"\n", append([]any{name + ":"}, args...)...)
	}

	if state.SessionID != "" {
		row("Session", "%s", state.SessionID)
	}
	if state.Style != "" {
		row("Style", "%s", state.Style)
	}
	if state.Current != "" {
		row("Highlighted", "%s", state.Current)
	}
	row("Transitions", "%d", state.Transitions)
	row("Tasks", "%d started, %d stopped", state.TasksStarted, state.TasksStopped)

	running := state.Running()
	if running {
		row("Duration", "%s (running)", now.Sub(state.StartedAt).Round(time.Second))
		if !state.LastEventAt.IsZero() {
			row("Last event", "%s ago", now.Sub(state.LastEventAt).Round(time.Second))
		}
	} else if !state.StartedAt.IsZero() {
		row("Duration", "%s", state.FinishedAt.Sub(state.StartedAt).Round(time.Second))
	}

	switch {
	case running:
		row("Result", "running")
	case state.Outcome == session.OutcomeConfirmed:
		row("Result", "selected %s", state.Selected)
	case state.Outcome == session.OutcomeCancelled:
		row("Result", "cancelled")
	case state.Outcome == session.OutcomeError:
		row("Result", "error: %s", state.Error)
	}
	return b.String()
}

// formatSessionSummary renders a summary rebuilt from a session log.
func formatSessionSummary(sum store.SessionSummary) string {
	var b strings.Builder
	b.WriteString("Marquee Session\n")
	b.WriteString("───────────────\n")
	fmt.Fprintf(&b, "  %-20s %s\n", "Session:", sum.SessionID)
	if !sum.StartedAt.IsZero() {
		fmt.Fprintf(&b, "  %-20s %s\n", "Started:", sum.StartedAt.Format(time.DateTime))
	}
	fmt.Fprintf(&b, "  %-20s %d\n", "Transitions:", sum.Transitions)
	fmt.Fprintf(&b, "  %-20s %d\n", "Tasks:", sum.Tasks)
	fmt.Fprintf(&b, "  %-20s %s\n", "Max stop latency:", sum.MaxLatency.Round(time.Microsecond))

	outcome := sum.Outcome
	switch outcome {
	case "":
		outcome = "unfinished"
	case store.OutcomeConfirmed:
		outcome = "selected " + sum.Selected
	}
	fmt.Fprintf(&b, "  %-20s %s\n", "Result:", outcome)
	return b.String()
}

// formatTasks renders the per-task table. It is empty when no task ran.
func formatTasks(tasks []store.TaskSummary) string {
	if len(tasks) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nTasks\n")
	b.WriteString("─────\n")
	fmt.Fprintf(&b, "  %-5s %-16s %7s %12s\n", "#", "Item", "Frames", "Stop")
	for _, t := range tasks {
		fmt.Fprintf(&b, "  %-5d %-16s %7d %12s", t.TaskID, t.Label, t.Frames, t.StopLatency.Round(time.Microsecond))
		if t.Err != "" {
			fmt.Fprintf(&b, "  error: %s", t.Err)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// formatItems renders the configured items for `marquee items`.
func formatItems(items []config.ItemConfig) string {
	var b strings.Builder
	b.WriteString("Items\n")
	b.WriteString("─────\n")
	for i, it := range items {
		kind := it.Kind
		if kind == "" {
			kind = task.KindNone
		}
		detail := ""
		switch kind {
		case task.KindSpinner:
			preset := it.Spinner
			if preset == "" {
				preset = task.DefaultSpinner
			}
			detail = "spinner " + preset
		case task.KindBounce:
			detail = it.Caption
		case task.KindStatic:
			detail = firstLine(it.Details)
		}
		fmt.Fprintf(&b, "  %2d. %-16s %-8s %s\n", i+1, it.Label, kind, detail)
	}
	fmt.Fprintf(&b, "\nSpinner presets: %s\n", strings.Join(task.SpinnerNames(), ", "))
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// formatScaffoldResult describes what `marquee init` created.
func formatScaffoldResult(created []string) string {
	if len(created) == 0 {
		return "All files already exist, nothing to create.\n"
	}
	var b strings.Builder
	for _, path := range created {
		fmt.Fprintf(&b, "Created %s\n", path)
	}
	return b.String()
}
