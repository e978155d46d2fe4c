package tui

import "github.com/LISSConsulting/LISSTech.Marquee/internal/selector"

// KeySink receives the key presses the TUI forwards to the selector. The TUI
// never drives the lifecycle manager itself; selector.KeyChan implements
// KeySink and is read by the selector goroutine.
type KeySink interface {
	// Send delivers k without blocking and reports whether it was accepted.
	Send(k selector.Key) bool
}
