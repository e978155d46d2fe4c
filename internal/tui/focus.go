package tui

import "github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"

// FocusTarget identifies which panel currently holds keyboard focus.
type FocusTarget int

const (
	FocusMenu   FocusTarget = iota // Menu; arrow keys move the highlight
	FocusEvents                    // Event pane; arrow keys scroll
)

// Next returns the next focus target in tab order.
func (f FocusTarget) Next() FocusTarget {
	return (f + 1) % 2
}

// String returns the human-readable name of the focus target.
func (f FocusTarget) String() string {
	switch f {
	case FocusMenu:
		return "menu"
	case FocusEvents:
		return "events"
	default:
		return "unknown"
	}
}

// PreviewState summarises what the preview pane is showing.
type PreviewState int

const (
	StateEmpty     PreviewState = iota // Nothing drawn yet
	StateStatic                        // Item drawn once, no task
	StateLive                          // A task is painting the preview
	StateFailed                        // The factory could not start a task
	StateConfirmed                     // Selection finished with an item
	StateCancelled                     // Selection abandoned
	StateFatal                         // A task could not be stopped
)

// validTransitions defines the allowed PreviewState transitions. Confirmed,
// cancelled and fatal are terminal.
var validTransitions = map[PreviewState][]PreviewState{
	StateEmpty:  {StateStatic, StateLive, StateFailed, StateConfirmed, StateCancelled, StateFatal},
	StateStatic: {StateStatic, StateLive, StateFailed, StateConfirmed, StateCancelled, StateFatal},
	StateLive:   {StateStatic, StateLive, StateFailed, StateConfirmed, StateCancelled, StateFatal},
	StateFailed: {StateStatic, StateLive, StateFailed, StateConfirmed, StateCancelled, StateFatal},
}

// CanTransitionTo reports whether moving from s to next is valid.
func (s PreviewState) CanTransitionTo(next PreviewState) bool {
	for _, valid := range validTransitions[s] {
		if valid == next {
			return true
		}
	}
	return false
}

// Label returns a short uppercase label for the state.
func (s PreviewState) Label() string {
	switch s {
	case StateEmpty:
		return "IDLE"
	case StateStatic:
		return "STATIC"
	case StateLive:
		return "LIVE"
	case StateFailed:
		return "NO PREVIEW"
	case StateConfirmed:
		return "SELECTED"
	case StateCancelled:
		return "CANCELLED"
	case StateFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Symbol returns a single-character symbol representing the state.
func (s PreviewState) Symbol() string {
	switch s {
	case StateEmpty, StateStatic:
		return "○"
	case StateLive:
		return "●"
	case StateFailed:
		return "!"
	case StateConfirmed:
		return "✓"
	case StateCancelled:
		return "⏹"
	case StateFatal:
		return "✗"
	default:
		return "?"
	}
}

// stateForEvent maps an event to the preview state it implies. ok is false
// for events that leave the state unchanged.
func stateForEvent(kind lifecycle.EventKind) (s PreviewState, ok bool) {
	switch kind {
	case lifecycle.EventStatic:
		return StateStatic, true
	case lifecycle.EventTaskStart:
		return StateLive, true
	case lifecycle.EventFactoryFailed:
		return StateFailed, true
	case lifecycle.EventConfirm:
		return StateConfirmed, true
	case lifecycle.EventCancel:
		return StateCancelled, true
	case lifecycle.EventFatal:
		return StateFatal, true
	}
	return 0, false
}
