// Package selector is the menu state machine. It moves the highlight on
// key presses, asks the lifecycle manager to switch preview tasks when the
// style has a live preview, and guarantees the active task is stopped before
// it returns.
package selector

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/task"
)

var (
	// ErrNoItems is returned by Run when there is nothing to select.
	ErrNoItems = errors.New("selector: no items")

	// ErrCancelled is returned when the user leaves without selecting.
	ErrCancelled = errors.New("selector: cancelled")
)

// Style is the menu display style.
type Style string

const (
	// StylePreview shows the menu next to a preview pane driven by live
	// tasks.
	StylePreview Style = "preview"
	// StyleList shows the menu alone. It never starts a task.
	StyleList Style = "list"
)

// ParseStyle accepts a style name, or the numbers 1 (list) and 2 (preview)
// offered by the REPL.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "preview", "2":
		return StylePreview, nil
	case "list", "1":
		return StyleList, nil
	default:
		return "", fmt.Errorf("selector: unknown style %q (want preview or list)", s)
	}
}

// State is the selector's position in its state machine.
type State int

const (
	Browsing State = iota
	Finalized
	Cancelled
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case Finalized:
		return "finalized"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Transitioner switches the preview task. *lifecycle.Manager implements it.
type Transitioner interface {
	TransitionTo(index int) error
	Stop() error
}

// Selector runs one selection over a fixed item list.
type Selector struct {
	// Events receives EventSelect, EventConfirm and EventCancel. Sends never
	// block. May be nil.
	Events chan<- lifecycle.Event

	items []task.Item
	style Style
	mgr   Transitioner

	index int
	state State
}

// New returns a Selector over items. mgr is stopped on every return path of
// Run, whatever the style.
func New(items []task.Item, style Style, mgr Transitioner) *Selector {
	return &Selector{items: items, style: style, mgr: mgr}
}

// Index returns the highlighted position.
func (s *Selector) Index() int { return s.index }

// State returns the current state. Only meaningful from the goroutine that
// called Run, or after Run returned.
func (s *Selector) State() State { return s.state }

// Run blocks reading keys until an item is confirmed, the user cancels, keys
// fails or ctx is done. It returns the confirmed label. No task is running
// when Run returns, except after a fatal stop failure reported by the
// manager.
func (s *Selector) Run(ctx context.Context, keys KeySource) (string, error) {
	if len(s.items) == 0 {
		return "", ErrNoItems
	}

	s.index = 0
	s.state = Browsing
	s.emitSelect()
	if err := s.preview(); err != nil {
		return "", err
	}

	for {
		k, err := keys.NextKey(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = fmt.Errorf("%w: input closed", ErrCancelled)
			}
			return "", s.cancel(err)
		}

		switch k {
		case KeyUp:
			if err := s.move(-1); err != nil {
				return "", err
			}
		case KeyDown:
			if err := s.move(1); err != nil {
				return "", err
			}
		case KeyConfirm:
			if err := s.mgr.Stop(); err != nil {
				return "", fmt.Errorf("selector: stop preview: %w", err)
			}
			s.state = Finalized
			label := s.items[s.index].Label
			s.emit(lifecycle.Event{Kind: lifecycle.EventConfirm, Index: s.index, Label: label, Message: "Selected: " + label})
			return label, nil
		case KeyCancel:
			return "", s.cancel(ErrCancelled)
		}
	}
}

func (s *Selector) move(delta int) error {
	n := len(s.items)
	s.index = ((s.index+delta)%n + n) % n
	s.emitSelect()
	return s.preview()
}

// preview switches the live task to the highlighted item in preview style.
func (s *Selector) preview() error {
	if s.style != StylePreview {
		return nil
	}
	if err := s.mgr.TransitionTo(s.index); err != nil {
		return fmt.Errorf("selector: preview %q: %w", s.items[s.index].Label, err)
	}
	return nil
}

// cancel stops the preview and ends the run with cause.
func (s *Selector) cancel(cause error) error {
	stopErr := s.mgr.Stop()
	s.state = Cancelled
	s.emit(lifecycle.Event{Kind: lifecycle.EventCancel, Index: s.index, Label: s.items[s.index].Label, Message: cause.Error()})
	if stopErr != nil {
		return errors.Join(cause, fmt.Errorf("selector: stop preview: %w", stopErr))
	}
	return cause
}

func (s *Selector) emitSelect() {
	label := s.items[s.index].Label
	s.emit(lifecycle.Event{Kind: lifecycle.EventSelect, Index: s.index, Label: label, Message: label})
}

func (s *Selector) emit(e lifecycle.Event) {
	lifecycle.Emit(s.Events, e)
}

// RunSelector runs a selection over items with the given style and returns
// the confirmed label.
func RunSelector(ctx context.Context, items []task.Item, style Style, mgr Transitioner, keys KeySource) (string, error) {
	return New(items, style, mgr).Run(ctx, keys)
}
