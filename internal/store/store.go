// Package store persists selector and lifecycle events to a JSONL session
// log and provides indexed read-back of past preview tasks. One store is
// created per marquee invocation in cmd/marquee/wiring.go.
package store

import (
	"time"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"
)

// Writer persists events to durable storage.
type Writer interface {
	Append(e lifecycle.Event) error
	Close() error
}

// Reader retrieves past task data from storage.
type Reader interface {
	Tasks() ([]TaskSummary, error)
	TaskLog(id uint64) ([]lifecycle.Event, error)
	SessionSummary() (SessionSummary, error)
}

// Store combines Writer and Reader into a single session-scoped handle.
type Store interface {
	Writer
	Reader
}

// TaskSummary summarises one preview task from start to stop.
type TaskSummary struct {
	TaskID      uint64
	Index       int
	Label       string
	StartedAt   time.Time
	StoppedAt   time.Time
	Frames      int
	StopLatency time.Duration
	Err         string // painter failure, if any
}

// SessionSummary summarises one selector session.
type SessionSummary struct {
	SessionID   string
	StartedAt   time.Time
	Transitions int    // highlight moves, including the initial one
	Tasks       int    // completed tasks
	Selected    string // confirmed label; empty unless Outcome is "confirmed"
	Outcome     string // "confirmed", "cancelled", "fatal" or "" while running
	MaxLatency  time.Duration
}

// Session outcomes.
const (
	OutcomeConfirmed = "confirmed"
	OutcomeCancelled = "cancelled"
	OutcomeFatal     = "fatal"
)
