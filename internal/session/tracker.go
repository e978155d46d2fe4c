package session

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/selector"
)

// Outcomes recorded by Tracker.Finish.
const (
	OutcomeConfirmed = "confirmed"
	OutcomeCancelled = "cancelled"
	OutcomeError     = "error"
)

// Tracker keeps State current from the event stream and saves it whenever
// something status-worthy changes. It is used from a single goroutine.
type Tracker struct {
	dir   string
	state State
	save  func(dir string, s State) error
}

// NewTracker starts tracking a session rooted at dir and saves the initial
// state.
func NewTracker(dir, sessionID, logPath, style string) *Tracker {
	now := time.Now()
	t := &Tracker{
		dir:  dir,
		save: SaveState,
		state: State{
			PID:         os.Getpid(),
			SessionID:   sessionID,
			LogPath:     logPath,
			Style:       style,
			StartedAt:   now,
			LastEventAt: now,
		},
	}
	t.flush()
	return t
}

// State returns a copy of the tracked state.
func (t *Tracker) State() State { return t.state }

// Track folds one event into the state.
func (t *Tracker) Track(e lifecycle.Event) {
	changed := true
	switch e.Kind {
	case lifecycle.EventSelect:
		t.state.Current = e.Label
		t.state.Transitions++
	case lifecycle.EventTaskStart:
		t.state.TasksStarted++
	case lifecycle.EventTaskStop:
		t.state.TasksStopped++
	case lifecycle.EventConfirm:
		t.state.Selected = e.Label
	case lifecycle.EventFatal:
		t.state.Error = e.Message
	default:
		changed = false
	}
	t.state.LastEventAt = time.Now()
	if changed {
		t.flush()
	}
}

// Finish records how the run ended. A cancelled context or
// selector.ErrCancelled counts as cancelled, not as an error.
func (t *Tracker) Finish(selected string, err error) {
	t.state.FinishedAt = time.Now()
	switch {
	case err == nil:
		t.state.Outcome = OutcomeConfirmed
		t.state.Selected = selected
	case errors.Is(err, context.Canceled) || errors.Is(err, selector.ErrCancelled):
		t.state.Outcome = OutcomeCancelled
	default:
		t.state.Outcome = OutcomeError
		t.state.Error = err.Error()
	}
	t.flush()
}

func (t *Tracker) flush() {
	_ = t.save(t.dir, t.state)
}
