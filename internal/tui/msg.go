package tui

import (
	"time"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"
)

// eventMsg wraps a lifecycle event.
type eventMsg lifecycle.Event

// selectorDoneMsg signals the event channel closed: the selector returned.
type selectorDoneMsg struct{}

// frameMsg is sent on every frame tick to repaint the preview and clock.
type frameMsg time.Time
