package tui

import (
	"testing"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"
)

func TestFocusTarget_Next(t *testing.T) {
	if FocusMenu.Next() != FocusEvents || FocusEvents.Next() != FocusMenu {
		t.Error("focus should alternate between menu and events")
	}
	for f, want := range map[FocusTarget]string{FocusMenu: "menu", FocusEvents: "events", 9: "unknown"} {
		if got := f.String(); got != want {
			t.Errorf("FocusTarget(%d).String() = %q, want %q", f, got, want)
		}
	}
}

func TestPreviewState_Transitions(t *testing.T) {
	tests := []struct {
		from, to PreviewState
		want     bool
	}{
		{StateEmpty, StateLive, true},
		{StateLive, StateStatic, true},
		{StateLive, StateLive, true},
		{StateStatic, StateFailed, true},
		{StateFailed, StateConfirmed, true},
		{StateLive, StateFatal, true},
		{StateConfirmed, StateLive, false},
		{StateCancelled, StateStatic, false},
		{StateFatal, StateCancelled, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from.Label(), tt.to.Label(), got, tt.want)
		}
	}
}

func TestPreviewState_LabelsAndSymbols(t *testing.T) {
	all := []PreviewState{StateEmpty, StateStatic, StateLive, StateFailed, StateConfirmed, StateCancelled, StateFatal}
	seen := map[string]bool{}
	for _, s := range all {
		if s.Label() == "UNKNOWN" || s.Symbol() == "?" {
			t.Errorf("state %d has no label or symbol", s)
		}
		if seen[s.Label()] {
			t.Errorf("duplicate label %q", s.Label())
		}
		seen[s.Label()] = true
	}
	if PreviewState(99).Label() != "UNKNOWN" || PreviewState(99).Symbol() != "?" {
		t.Error("unknown state should render as UNKNOWN / ?")
	}
}

func TestStateForEvent(t *testing.T) {
	tests := []struct {
		kind   lifecycle.EventKind
		want   PreviewState
		wantOK bool
	}{
		{lifecycle.EventStatic, StateStatic, true},
		{lifecycle.EventTaskStart, StateLive, true},
		{lifecycle.EventFactoryFailed, StateFailed, true},
		{lifecycle.EventConfirm, StateConfirmed, true},
		{lifecycle.EventCancel, StateCancelled, true},
		{lifecycle.EventFatal, StateFatal, true},
		{lifecycle.EventSelect, 0, false},
		{lifecycle.EventTaskStop, 0, false},
	}
	for _, tt := range tests {
		got, ok := stateForEvent(tt.kind)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("stateForEvent(%s) = %s, %v", tt.kind, got.Label(), ok)
		}
	}
}
