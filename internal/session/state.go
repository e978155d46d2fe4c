// Package session records the state of the current or most recent selector
// run in .marquee/state.json for `marquee status`.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// State is the persisted session state.
type State struct {
	PID          int       `json:"pid"`
	SessionID    string    `json:"session_id"`
	LogPath      string    `json:"log_path"`
	Style        string    `json:"style"`
	Current      string    `json:"current"`  // highlighted label
	Selected     string    `json:"selected"` // confirmed label
	Transitions  int       `json:"transitions"`
	TasksStarted int       `json:"tasks_started"`
	TasksStopped int       `json:"tasks_stopped"`
	LastEventAt  time.Time `json:"last_event_at"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Outcome      string    `json:"outcome"` // confirmed, cancelled, error; empty while running
	Error        string    `json:"error,omitempty"`
}

// Running reports whether the session had not finished when last saved.
func (s State) Running() bool {
	return !s.StartedAt.IsZero() && s.FinishedAt.IsZero()
}

// stateFileName is the path within the .marquee directory.
const stateFileName = "state.json"

// stateDirName is the directory that holds the state file.
const stateDirName = ".marquee"

// LoadState reads the session state from .marquee/state.json in dir.
// Returns a zero State (not an error) if the file does not exist.
func LoadState(dir string) (State, error) {
	path := filepath.Join(dir, stateDirName, stateFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("session: read state: %w", err)
	}

	var s State
	if jsonErr := json.Unmarshal(data, &s); jsonErr != nil {
		return State{}, fmt.Errorf("session: parse state: %w", jsonErr)
	}
	return s, nil
}

// SaveState writes the session state to .marquee/state.json in dir,
// creating the directory if needed. The file is written to a temp file and
// renamed so readers never observe a partial write.
func SaveState(dir string, s State) error {
	stateDir := filepath.Join(dir, stateDirName)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("session: create state dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(stateDir, ".state-*.tmp")
	if err != nil {
		return fmt.Errorf("session: create temp state: %w", err)
	}
	if _, writeErr := tmp.Write(data); writeErr != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("session: write state: %w", writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("session: close state: %w", closeErr)
	}
	path := filepath.Join(stateDir, stateFileName)
	if renameErr := os.Rename(tmp.Name(), path); renameErr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("session: finalize state: %w", renameErr)
	}
	return nil
}
