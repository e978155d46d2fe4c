// Package task implements background preview tasks: the handle the lifecycle
// manager holds for a running task, the worker loop that paints into the
// shared surface, and the factories that create tasks for menu items.
package task

import (
	"errors"
	"sync"
)

var (
	// ErrRedundantCancel is returned when Cancel is called on a handle that
	// has already been cancelled. The second call has no effect.
	ErrRedundantCancel = errors.New("task: cancel called twice")

	// ErrJoinFailure is returned when a worker does not exit after its
	// cancellation flag was set. It indicates a leaked goroutine that still
	// references the surface and is not recoverable.
	ErrJoinFailure = errors.New("task: worker did not exit")
)

// State is the opaque state owned by a running task. Ownership moves to the
// caller of Handle.Cancel once the task has terminated; that caller, and only
// that caller, must call Release.
type State interface {
	Release()
}

// Handle is the capability pair returned when a live task starts: a cancel
// operation plus the task's owned state.
type Handle struct {
	id uint64

	// mu serializes Cancel; it is held across the blocking stop so a
	// concurrent second call waits and then reports ErrRedundantCancel.
	mu        sync.Mutex
	state     State
	stop      func() error
	cancelled bool
}

// NewHandle wraps state and a blocking stop function. stop must not return
// nil until the task has fully terminated and will never touch the surface
// again. Task authors adding new background task types build their handles
// with NewHandle.
func NewHandle(id uint64, state State, stop func() error) *Handle {
	return &Handle{id: id, state: state, stop: stop}
}

// ID returns the task identifier assigned at start.
func (h *Handle) ID() uint64 { return h.id }

// Cancel stops the task and blocks until it has terminated, then transfers
// the task state to the caller. On error the state stays with the handle
// (it cannot be released safely) and the handle is still marked cancelled.
func (h *Handle) Cancel() (State, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cancelled {
		return nil, ErrRedundantCancel
	}
	h.cancelled = true

	if h.stop != nil {
		if err := h.stop(); err != nil {
			return nil, err
		}
	}
	st := h.state
	h.state = nil
	return st, nil
}
