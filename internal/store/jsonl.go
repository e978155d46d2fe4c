package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"
)

// JSONL is a Store backed by an append-only JSONL file. Each line is a
// JSON-serialized lifecycle.Event. The file is synced after every Append so
// the log survives a fatal exit.
//
// Session identity: "<unix-timestamp>-<uuid prefix>.jsonl". The timestamp
// prefix keeps names sorting chronologically for EnforceRetention and Latest.
type JSONL struct {
	file      *os.File
	path      string
	mu        sync.Mutex
	idx       *fileIndex
	sessionID string
	startedAt time.Time
	pos       int64 // current write position in the file
}

// NewJSONL creates a new session log in dir. dir is created with
// os.MkdirAll if it does not exist.
func NewJSONL(dir string) (*JSONL, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("store: mkdir %q: %w", dir, err)
	}
	now := time.Now()
	sessionID := fmt.Sprintf("%d-%s", now.Unix(), uuid.NewString()[:8])
	path := filepath.Join(dir, sessionID+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	pos, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("store: seek: %w", err)
	}
	return &JSONL{
		file:      f,
		path:      path,
		idx:       newFileIndex(),
		sessionID: sessionID,
		startedAt: now,
		pos:       pos,
	}, nil
}

// Path returns the log file path.
func (j *JSONL) Path() string { return j.path }

// SessionID returns the session identifier, the file name without extension.
func (j *JSONL) SessionID() string { return j.sessionID }

// Append serializes e as a JSON line, writes it to the file, and syncs.
// It is safe to call from multiple goroutines.
func (j *JSONL) Append(e lifecycle.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()

	lineOffset := j.pos
	if _, err := j.file.Write(data); err != nil {
		return fmt.Errorf("store: write: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("store: sync: %w", err)
	}
	lineLen := int64(len(data))
	j.pos += lineLen
	j.idx.onAppend(e, lineOffset, lineLen)
	return nil
}

// Close closes the underlying file.
func (j *JSONL) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}

// Tasks returns summaries for all stopped tasks in this session. The
// returned slice is a copy and safe to mutate.
func (j *JSONL) Tasks() ([]TaskSummary, error) {
	j.mu.Lock()
	result := make([]TaskSummary, len(j.idx.summaries))
	copy(result, j.idx.summaries)
	j.mu.Unlock()
	return result, nil
}

// TaskLog returns every event written between the start and stop of task
// id, read back from the file using the in-memory byte-offset index. Returns
// an error if the task has not stopped (or never started).
func (j *JSONL) TaskLog(id uint64) ([]lifecycle.Event, error) {
	j.mu.Lock()
	r, ok := j.idx.ranges[id]
	j.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("store: task %d not found", id)
	}
	size := r.end - r.start
	if size <= 0 {
		return nil, nil
	}
	buf := make([]byte, size)
	if _, err := j.file.ReadAt(buf, r.start); err != nil {
		return nil, fmt.Errorf("store: read task %d: %w", id, err)
	}
	return decodeLines(buf, fmt.Sprintf("task %d", id)), nil
}

// SessionSummary returns metadata about the current session derived from
// the in-memory index.
func (j *JSONL) SessionSummary() (SessionSummary, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	s := j.idx.session(j.sessionID)
	s.StartedAt = j.startedAt
	return s, nil
}

// decodeLines parses JSONL data, skipping malformed lines.
func decodeLines(buf []byte, what string) []lifecycle.Event {
	var events []lifecycle.Event
	for _, line := range bytes.Split(buf, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var e lifecycle.Event
		if err := json.Unmarshal(line, &e); err != nil {
			log.Printf("store: skipping malformed line in %s: %v", what, err)
			continue
		}
		events = append(events, e)
	}
	return events
}

// EnforceRetention removes the oldest session log files in dir, keeping at
// most maxKeep files. If maxKeep is 0, no files are removed. Returns nil if
// dir does not exist or is empty.
func EnforceRetention(dir string, maxKeep int) error {
	if maxKeep <= 0 {
		return nil
	}
	files, err := logFiles(dir)
	if err != nil {
		return err
	}

	toDelete := len(files) - maxKeep
	for i := 0; i < toDelete; i++ {
		path := filepath.Join(dir, files[i])
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("store: remove %q: %w", path, err)
		}
	}
	return nil
}

// logFiles lists the .jsonl files in dir, oldest first.
func logFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read dir %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jsonl") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files) // timestamp-prefixed names sort chronologically
	return files, nil
}
