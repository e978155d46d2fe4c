package lifecycle

import (
	"fmt"
	"time"
)

// EventKind identifies the type of a selector or lifecycle event.
type EventKind int

const (
	EventInfo          EventKind = iota // General informational message
	EventSelect                         // Highlight moved to another item
	EventTaskStart                      // Live task started for the highlighted item
	EventTaskStop                       // Live task stopped and joined
	EventStatic                         // Item rendered once, no live task
	EventFactoryFailed                  // Factory could not start a task
	EventConfirm                        // Item selected
	EventCancel                         // Selection abandoned
	EventFatal                          // Worker could not be stopped
)

var kindNames = [...]string{
	EventInfo:          "info",
	EventSelect:        "select",
	EventTaskStart:     "task_start",
	EventTaskStop:      "task_stop",
	EventStatic:        "static",
	EventFactoryFailed: "factory_failed",
	EventConfirm:       "confirm",
	EventCancel:        "cancel",
	EventFatal:         "fatal",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name so session logs stay readable.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText.
func (k *EventKind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = EventKind(i)
			return nil
		}
	}
	return fmt.Errorf("lifecycle: unknown event kind %q", b)
}

// Event is a structured record emitted by the selector and the lifecycle
// manager. Consumers are the TUI, the session log, the state tracker and the
// notifier; none of them may block the sender.
type Event struct {
	Kind      EventKind `json:"kind"`
	Timestamp time.Time `json:"ts"`
	Message   string    `json:"msg,omitempty"`

	// Item the event refers to. Index is None when no item applies.
	Index int    `json:"index"`
	Label string `json:"label,omitempty"`

	// Task fields, set on EventTaskStart and EventTaskStop.
	TaskID      uint64        `json:"task_id,omitempty"`
	Frames      int           `json:"frames,omitempty"`
	StopLatency time.Duration `json:"stop_latency_ns,omitempty"`

	Err string `json:"err,omitempty"`
}

// Emit sends e on ch without blocking. A nil channel or a full buffer drops
// the event.
func Emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	select {
	case ch <- e:
	default:
	}
}
