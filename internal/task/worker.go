package task

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/surface"
)

// Defaults for Options fields left at zero.
const (
	DefaultInterval    = 100 * time.Millisecond
	DefaultJoinTimeout = 2 * time.Second
)

// Options controls worker pacing and how long Cancel waits for the worker
// goroutine to exit.
type Options struct {
	// Interval is the sleep between frames. It bounds stop latency.
	Interval time.Duration
	// JoinTimeout is how long Cancel waits for the worker to exit before
	// reporting ErrJoinFailure. Negative waits forever.
	JoinTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.JoinTimeout == 0 {
		o.JoinTimeout = DefaultJoinTimeout
	}
	return o
}

// Painter draws one animation frame. It is only ever called from the worker
// goroutine, so implementations keep their animation state unsynchronized.
type Painter interface {
	Paint(s surface.Surface)
}

// liveWorkers counts worker goroutines that have been spawned and not yet
// exited.
var liveWorkers atomic.Int64

// LiveWorkers reports the number of worker goroutines currently running.
func LiveWorkers() int64 { return liveWorkers.Load() }

// WorkerContext is the state of one live task. It is created by Spawn, owned
// by the task's Handle while the worker runs, and released by whoever
// cancelled the handle.
type WorkerContext struct {
	id       uint64
	surface  surface.Surface // borrowed, never owned
	painter  Painter
	interval time.Duration

	// mu guards cancelled, the only datum shared with the worker goroutine
	// while it runs.
	mu        sync.Mutex
	cancelled bool

	// done is closed by the worker goroutine after its last surface write.
	done chan struct{}

	// Written by the worker before close(done); read only after.
	frames  int
	exitErr error

	released atomic.Bool
}

// Spawn starts a worker goroutine painting p into s and returns its handle.
func Spawn(s surface.Surface, id Identity, p Painter, opts Options) *Handle {
	opts = opts.withDefaults()
	w := &WorkerContext{
		id:       id.TaskID,
		surface:  s,
		painter:  p,
		interval: opts.Interval,
		done:     make(chan struct{}),
	}
	liveWorkers.Add(1)
	go w.run()
	return NewHandle(id.TaskID, w, func() error { return w.stop(opts.JoinTimeout) })
}

func (w *WorkerContext) run() {
	defer close(w.done)
	defer liveWorkers.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			w.exitErr = fmt.Errorf("task %d: painter panicked: %v", w.id, r)
		}
	}()

	for {
		if w.isCancelled() {
			return
		}
		w.painter.Paint(w.surface)
		w.frames++
		time.Sleep(w.interval)
	}
}

func (w *WorkerContext) isCancelled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancelled
}

// stop sets the cancellation flag and joins the worker goroutine.
func (w *WorkerContext) stop(timeout time.Duration) error {
	w.mu.Lock()
	w.cancelled = true
	w.mu.Unlock()

	if timeout < 0 {
		<-w.done
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-w.done:
		return nil
	case <-timer.C:
		return fmt.Errorf("%w: task %d still running after %s", ErrJoinFailure, w.id, timeout)
	}
}

// Exited reports whether the worker goroutine has terminated.
func (w *WorkerContext) Exited() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// ID returns the task identifier.
func (w *WorkerContext) ID() uint64 { return w.id }

// Frames returns how many frames were painted. Valid once the worker exited.
func (w *WorkerContext) Frames() int { return w.frames }

// Err returns the worker's exit error, if the painter panicked. Valid once
// the worker exited.
func (w *WorkerContext) Err() error { return w.exitErr }

// Release drops the context's references. It panics if the worker is still
// running or if the context was already released.
func (w *WorkerContext) Release() {
	if !w.Exited() {
		panic(fmt.Sprintf("task %d: worker context released while alive", w.id))
	}
	if !w.released.CompareAndSwap(false, true) {
		panic(fmt.Sprintf("task %d: worker context released twice", w.id))
	}
	w.surface = nil
	w.painter = nil
}

// isReleased reports whether Release has been called.
func (w *WorkerContext) isReleased() bool { return w.released.Load() }
