package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"
)

// ErrNoSessions is returned by Latest when dir holds no session logs.
var ErrNoSessions = errors.New("store: no session logs")

// Open loads a finished session log written by JSONL and rebuilds its
// byte-offset index, so Tasks, TaskLog and SessionSummary work as they did
// while the session ran. The returned log is read-only: Append fails.
// Malformed lines, including a torn final line, are skipped.
func Open(path string) (*JSONL, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("store: read %q: %w", path, err)
	}

	j := &JSONL{
		file:      f,
		path:      path,
		idx:       newFileIndex(),
		sessionID: SessionIDFromPath(path),
		pos:       int64(len(data)),
	}
	var off int64
	for len(data) > 0 {
		line := data
		lineLen := int64(len(data))
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line = data[:i]
			lineLen = int64(i + 1)
		}
		data = data[lineLen:]

		if len(line) > 0 {
			var e lifecycle.Event
			if err := json.Unmarshal(line, &e); err != nil {
				log.Printf("store: skipping malformed line in %s: %v", filepath.Base(path), err)
			} else {
				if j.startedAt.IsZero() {
					j.startedAt = e.Timestamp
				}
				j.idx.onAppend(e, off, lineLen)
			}
		}
		off += lineLen
	}
	return j, nil
}

// Latest returns the path of the newest session log in dir.
func Latest(dir string) (string, error) {
	files, err := logFiles(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoSessions, dir)
	}
	return filepath.Join(dir, files[len(files)-1]), nil
}

// SessionIDFromPath returns the session ID encoded in a log file name.
func SessionIDFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".jsonl")
}
