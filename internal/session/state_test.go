package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSaveAndLoadState(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 2, 23, 14, 30, 0, 0, time.UTC)

	original := State{
		PID:          12345,
		SessionID:    "1700000000-abcd1234",
		Style:        "preview",
		Current:      "Animation",
		Transitions:  7,
		TasksStarted: 3,
		TasksStopped: 2,
		StartedAt:    now,
	}

	if err := SaveState(dir, original); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	loaded, err := LoadState(dir)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	if loaded.PID != original.PID {
		t.Errorf("PID = %d, want %d", loaded.PID, original.PID)
	}
	if loaded.SessionID != original.SessionID {
		t.Errorf("SessionID = %q, want %q", loaded.SessionID, original.SessionID)
	}
	if loaded.Current != original.Current {
		t.Errorf("Current = %q, want %q", loaded.Current, original.Current)
	}
	if loaded.Transitions != 7 || loaded.TasksStarted != 3 || loaded.TasksStopped != 2 {
		t.Errorf("counters = %d/%d/%d", loaded.Transitions, loaded.TasksStarted, loaded.TasksStopped)
	}
	if !loaded.StartedAt.Equal(now) {
		t.Errorf("StartedAt = %v, want %v", loaded.StartedAt, now)
	}
	if !loaded.Running() {
		t.Error("state without FinishedAt should be running")
	}
}

func TestLoadState_NoFile(t *testing.T) {
	state, err := LoadState(t.TempDir())
	if err != nil {
		t.Fatalf("LoadState with no file should not error: %v", err)
	}
	if state.PID != 0 || state.Running() {
		t.Errorf("expected zero state, got %+v", state)
	}
}

func TestLoadState_Corrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, stateDirName), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, stateDirName, stateFileName), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadState(dir); err == nil || !strings.Contains(err.Error(), "parse state") {
		t.Errorf("err = %v, want parse error", err)
	}
}

func TestSaveState_NoTempLeftBehind(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		if err := SaveState(dir, State{Transitions: i}); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := os.ReadDir(filepath.Join(dir, stateDirName))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != stateFileName {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("state dir holds %v, want only %s", names, stateFileName)
	}
}
