// Package lifecycle sequences background preview tasks across selection
// changes. The Manager is the sole owner of the active task handle: it stops
// and joins the running task, releases its state, blanks the surface and only
// then starts the task for the newly highlighted item.
package lifecycle

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/surface"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/task"
)

// None is the index meaning "no highlighted item". TransitionTo(None) stops
// the active task without starting another.
const None = -1

// ErrIndexOutOfRange is returned by TransitionTo for an index that is neither
// None nor a valid item position.
var ErrIndexOutOfRange = errors.New("lifecycle: index out of range")

// Stats are cumulative task counters.
type Stats struct {
	Started int64 // tasks whose factory returned a handle
	Stopped int64 // tasks cancelled, joined and released
	Live    int64 // worker goroutines still running
}

// Manager owns the active task slot for one surface.
type Manager struct {
	// Fatal is called when a task cannot be stopped. The default prints the
	// error to stderr and exits with status 2.
	Fatal func(err error)

	// Debug turns a redundant cancel into a panic. The manager never cancels
	// a handle twice, so seeing one means the ownership rule was broken.
	Debug bool

	surface surface.Surface
	items   []task.Item
	events  chan<- Event

	mu      sync.Mutex
	current int
	active  *task.Handle
	info    task.Identity // identity of active
	nextID  uint64
	failed  error

	started atomic.Int64
	stopped atomic.Int64
}

// New returns a Manager for items drawing into s. events may be nil.
func New(s surface.Surface, items []task.Item, events chan<- Event) *Manager {
	return &Manager{
		Fatal:   exitFatal,
		surface: s,
		items:   items,
		events:  events,
		current: None,
	}
}

// TransitionTo makes index the highlighted item. Any running task is
// cancelled and joined and its state released before the surface is cleared
// and the item's factory runs. Factory errors are reported as events and
// leave no active task. An error is returned only for a bad index or when the
// previous task could not be stopped; in the latter case the manager is
// unusable and every later call returns the same error.
func (m *Manager) TransitionTo(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failed != nil {
		return m.failed
	}
	if index != None && (index < 0 || index >= len(m.items)) {
		return fmt.Errorf("%w: %d (have %d items)", ErrIndexOutOfRange, index, len(m.items))
	}

	if err := m.stopActive(); err != nil {
		return err
	}
	m.surface.Clear()
	m.current = index
	if index == None {
		return nil
	}

	item := m.items[index]
	if item.Factory == nil {
		return nil
	}
	m.nextID++
	id := task.Identity{Index: index, Label: item.Label, TaskID: m.nextID}
	h, err := item.Factory(m.surface, id)
	if err != nil {
		m.emit(Event{
			Kind:    EventFactoryFailed,
			Index:   index,
			Label:   item.Label,
			TaskID:  id.TaskID,
			Message: fmt.Sprintf("%s: no preview: %v", item.Label, err),
			Err:     err.Error(),
		})
		return nil
	}
	if h == nil {
		m.emit(Event{Kind: EventStatic, Index: index, Label: item.Label, Message: item.Label + ": static preview"})
		return nil
	}

	m.active = h
	m.info = id
	m.started.Add(1)
	m.emit(Event{
		Kind:    EventTaskStart,
		Index:   index,
		Label:   item.Label,
		TaskID:  id.TaskID,
		Message: fmt.Sprintf("task %d started for %s", id.TaskID, item.Label),
	})
	return nil
}

// Stop cancels the active task, if any, and leaves no item highlighted.
func (m *Manager) Stop() error {
	return m.TransitionTo(None)
}

// stopActive runs the cancel, release, clear-slot half of a transition.
// Called with m.mu held.
func (m *Manager) stopActive() error {
	if m.active == nil {
		return nil
	}
	h, info := m.active, m.info

	begin := time.Now()
	st, err := h.Cancel()
	latency := time.Since(begin)

	if errors.Is(err, task.ErrRedundantCancel) {
		if m.Debug {
			panic(fmt.Sprintf("lifecycle: task %d cancelled twice", h.ID()))
		}
		m.active = nil
		return nil
	}
	if err != nil {
		// The worker may still hold the surface. Nothing may draw on it or
		// start after this point.
		m.failed = fmt.Errorf("lifecycle: stop task %d (%s): %w", h.ID(), info.Label, err)
		m.active = nil
		m.emit(Event{
			Kind:        EventFatal,
			Index:       info.Index,
			Label:       info.Label,
			TaskID:      h.ID(),
			StopLatency: latency,
			Message:     m.failed.Error(),
			Err:         err.Error(),
		})
		if m.Fatal != nil {
			m.Fatal(m.failed)
		}
		return m.failed
	}

	ev := Event{
		Kind:        EventTaskStop,
		Index:       info.Index,
		Label:       info.Label,
		TaskID:      h.ID(),
		StopLatency: latency,
	}
	if w, ok := st.(*task.WorkerContext); ok {
		ev.Frames = w.Frames()
		if werr := w.Err(); werr != nil {
			ev.Err = werr.Error()
		}
	}
	if st != nil {
		st.Release()
	}
	m.active = nil
	m.stopped.Add(1)

	ev.Message = fmt.Sprintf("task %d stopped after %d frames (%s)", h.ID(), ev.Frames, latency.Round(time.Millisecond))
	m.emit(ev)
	return nil
}

// highlighted returns the highlighted index, or None.
func (m *Manager) highlighted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Active reports whether a live task is running.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil
}

// Items returns the manager's item list.
func (m *Manager) Items() []task.Item { return m.items }

// Stats returns the task counters.
func (m *Manager) Stats() Stats {
	return Stats{
		Started: m.started.Load(),
		Stopped: m.stopped.Load(),
		Live:    task.LiveWorkers(),
	}
}

func (m *Manager) emit(e Event) {
	Emit(m.events, e)
}

func exitFatal(err error) {
	fmt.Fprintf(os.Stderr, "marquee: fatal: %v\n", err)
	os.Exit(2)
}
