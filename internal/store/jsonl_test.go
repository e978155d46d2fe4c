package store_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/lifecycle"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/store"
)

// Compile-time check: *JSONL implements Store.
var _ store.Store = (*store.JSONL)(nil)

func newStore(t *testing.T) *store.JSONL {
	t.Helper()
	s, err := store.NewJSONL(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONL: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// session appends a short, realistic session: select A, start task 1,
// select B (task 1 stops, task 2 starts), confirm B (task 2 stops).
func session(t *testing.T, s store.Writer) {
	t.Helper()
	now := time.Now()
	events := []lifecycle.Event{
		{Kind: lifecycle.EventSelect, Timestamp: now, Index: 0, Label: "A"},
		{Kind: lifecycle.EventTaskStart, Timestamp: now, Index: 0, Label: "A", TaskID: 1},
		{Kind: lifecycle.EventSelect, Timestamp: now, Index: 1, Label: "B"},
		{Kind: lifecycle.EventTaskStop, Timestamp: now.Add(time.Second), Index: 0, Label: "A", TaskID: 1, Frames: 10, StopLatency: 30 * time.Millisecond},
		{Kind: lifecycle.EventTaskStart, Timestamp: now.Add(time.Second), Index: 1, Label: "B", TaskID: 2},
		{Kind: lifecycle.EventTaskStop, Timestamp: now.Add(2 * time.Second), Index: 1, Label: "B", TaskID: 2, Frames: 5, StopLatency: 80 * time.Millisecond},
		{Kind: lifecycle.EventConfirm, Timestamp: now.Add(2 * time.Second), Index: 1, Label: "B"},
	}
	for _, e := range events {
		if err := s.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
}

func TestNewJSONL_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewJSONL(dir)
	if err != nil {
		t.Fatalf("NewJSONL: %v", err)
	}
	defer func() { _ = s.Close() }()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file in dir, got %d", len(entries))
	}
	if ext := filepath.Ext(entries[0].Name()); ext != ".jsonl" {
		t.Errorf("expected .jsonl extension, got %q", ext)
	}
	if s.Path() != filepath.Join(dir, entries[0].Name()) {
		t.Errorf("Path() = %q", s.Path())
	}
	if store.SessionIDFromPath(s.Path()) != s.SessionID() {
		t.Errorf("session ID %q does not match file name %q", s.SessionID(), s.Path())
	}
}

func TestNewJSONL_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir", "logs")
	s, err := store.NewJSONL(dir)
	if err != nil {
		t.Fatalf("NewJSONL on non-existent dir: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected dir to exist after NewJSONL: %v", err)
	}
}

func TestNewJSONL_DistinctSessions(t *testing.T) {
	dir := t.TempDir()
	a, err := store.NewJSONL(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = a.Close() }()
	b, err := store.NewJSONL(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = b.Close() }()

	if a.SessionID() == b.SessionID() {
		t.Errorf("two sessions share ID %q", a.SessionID())
	}
}

func TestTaskLog(t *testing.T) {
	s := newStore(t)
	session(t, s)

	got, err := s.TaskLog(1)
	if err != nil {
		t.Fatalf("TaskLog(1): %v", err)
	}
	// Task 1 spans its start, the select of B, and its stop.
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].Kind != lifecycle.EventTaskStart {
		t.Errorf("got[0].Kind = %s, want task_start", got[0].Kind)
	}
	if got[1].Kind != lifecycle.EventSelect || got[1].Label != "B" {
		t.Errorf("got[1] = %+v", got[1])
	}
	if got[2].Kind != lifecycle.EventTaskStop || got[2].Frames != 10 {
		t.Errorf("got[2] = %+v", got[2])
	}

	if _, err := s.TaskLog(99); err == nil {
		t.Error("expected error for unknown task")
	}
}

func TestTaskLog_RunningTaskNotFound(t *testing.T) {
	s := newStore(t)
	_ = s.Append(lifecycle.Event{Kind: lifecycle.EventTaskStart, TaskID: 4, Timestamp: time.Now()})
	if _, err := s.TaskLog(4); err == nil {
		t.Error("a task that has not stopped has no log yet")
	}
}

func TestTasks(t *testing.T) {
	s := newStore(t)
	session(t, s)

	tasks, err := s.Tasks()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].TaskID != 1 || tasks[0].Label != "A" || tasks[0].Frames != 10 {
		t.Errorf("tasks[0] = %+v", tasks[0])
	}
	if tasks[1].TaskID != 2 || tasks[1].Index != 1 || tasks[1].StopLatency != 80*time.Millisecond {
		t.Errorf("tasks[1] = %+v", tasks[1])
	}
	if !tasks[0].StoppedAt.After(tasks[0].StartedAt) {
		t.Errorf("tasks[0] stopped %s, started %s", tasks[0].StoppedAt, tasks[0].StartedAt)
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	s := newStore(t)
	session(t, s)

	first, _ := s.Tasks()
	first[0].Label = "mutated"

	second, _ := s.Tasks()
	if second[0].Label == "mutated" {
		t.Error("Tasks should return a copy; mutation affected internal state")
	}
}

func TestSessionSummary(t *testing.T) {
	s := newStore(t)
	session(t, s)

	sum, err := s.SessionSummary()
	if err != nil {
		t.Fatal(err)
	}
	if sum.Transitions != 2 {
		t.Errorf("Transitions = %d, want 2", sum.Transitions)
	}
	if sum.Tasks != 2 {
		t.Errorf("Tasks = %d, want 2", sum.Tasks)
	}
	if sum.Selected != "B" || sum.Outcome != store.OutcomeConfirmed {
		t.Errorf("Selected/Outcome = %q/%q", sum.Selected, sum.Outcome)
	}
	if sum.MaxLatency != 80*time.Millisecond {
		t.Errorf("MaxLatency = %s", sum.MaxLatency)
	}
	if sum.SessionID != s.SessionID() {
		t.Errorf("SessionID = %q", sum.SessionID)
	}
	if sum.StartedAt.IsZero() {
		t.Error("StartedAt should not be zero")
	}
}

func TestSessionSummary_Outcomes(t *testing.T) {
	tests := []struct {
		kind lifecycle.EventKind
		want string
	}{
		{lifecycle.EventCancel, store.OutcomeCancelled},
		{lifecycle.EventFatal, store.OutcomeFatal},
		{lifecycle.EventInfo, ""},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s := newStore(t)
			_ = s.Append(lifecycle.Event{Kind: tt.kind, Timestamp: time.Now()})
			sum, _ := s.SessionSummary()
			if sum.Outcome != tt.want {
				t.Errorf("Outcome = %q, want %q", sum.Outcome, tt.want)
			}
			if sum.Selected != "" {
				t.Errorf("Selected = %q, want empty", sum.Selected)
			}
		})
	}
}

func TestAppend_Concurrent(t *testing.T) {
	s := newStore(t)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				_ = s.Append(lifecycle.Event{Kind: lifecycle.EventInfo, Message: fmt.Sprintf("%d-%d", g, i)})
			}
		}(g)
	}
	wg.Wait()

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != 100 {
		t.Errorf("wrote %d lines, want 100", n)
	}
}

func TestOpen(t *testing.T) {
	s := newStore(t)
	session(t, s)
	live, _ := s.SessionSummary()
	_ = s.Close()

	// A torn trailing line must not hide the rest of the log.
	f, err := os.OpenFile(s.Path(), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString(`{"kind":"sel`)
	_ = f.Close()

	r, err := store.Open(s.Path())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = r.Close() }()

	sum, err := r.SessionSummary()
	if err != nil {
		t.Fatal(err)
	}
	if sum.SessionID != s.SessionID() {
		t.Errorf("SessionID = %q, want %q", sum.SessionID, s.SessionID())
	}
	if sum.Tasks != live.Tasks || sum.Transitions != live.Transitions || sum.MaxLatency != live.MaxLatency {
		t.Errorf("reopened summary = %+v, live = %+v", sum, live)
	}
	if sum.Selected != "B" || sum.Outcome != store.OutcomeConfirmed {
		t.Errorf("Selected/Outcome = %q/%q", sum.Selected, sum.Outcome)
	}
	if sum.StartedAt.IsZero() {
		t.Error("StartedAt should come from the first event")
	}

	tasks, err := r.Tasks()
	if err != nil || len(tasks) != 2 {
		t.Fatalf("Tasks = %d, %v; want 2", len(tasks), err)
	}

	// Offsets rebuilt from the file must land on whole lines.
	got, err := r.TaskLog(2)
	if err != nil {
		t.Fatalf("TaskLog(2): %v", err)
	}
	if len(got) != 2 || got[0].Kind != lifecycle.EventTaskStart || got[1].Kind != lifecycle.EventTaskStop || got[1].Frames != 5 {
		t.Errorf("TaskLog(2) = %+v", got)
	}
	got, err = r.TaskLog(1)
	if err != nil || len(got) != 3 || got[1].Label != "B" {
		t.Errorf("TaskLog(1) = %+v, %v", got, err)
	}

	if err := r.Append(lifecycle.Event{Kind: lifecycle.EventInfo}); err == nil {
		t.Error("a reopened log is read-only")
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := store.Open(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()
	if _, err := store.Latest(dir); !errors.Is(err, store.ErrNoSessions) {
		t.Errorf("empty dir: err = %v, want ErrNoSessions", err)
	}

	for _, name := range []string{"100-aaaa.jsonl", "300-cccc.jsonl", "200-bbbb.jsonl", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := store.Latest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(got) != "300-cccc.jsonl" {
		t.Errorf("Latest() = %q", got)
	}

	if _, err := store.Latest(filepath.Join(dir, "missing")); !errors.Is(err, store.ErrNoSessions) {
		t.Errorf("missing dir: err = %v, want ErrNoSessions", err)
	}
}

func TestEnforceRetention(t *testing.T) {
	tests := []struct {
		name    string
		files   int
		keep    int
		wantLen int
	}{
		{"keeps newest", 5, 2, 2},
		{"zero keeps all", 5, 0, 5},
		{"fewer than limit", 2, 10, 2},
		{"empty", 0, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for i := 0; i < tt.files; i++ {
				name := fmt.Sprintf("%d-abcd.jsonl", 1000+i)
				if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
					t.Fatal(err)
				}
			}
			if err := os.WriteFile(filepath.Join(dir, "keep.txt"), nil, 0644); err != nil {
				t.Fatal(err)
			}

			if err := store.EnforceRetention(dir, tt.keep); err != nil {
				t.Fatal(err)
			}

			entries, _ := os.ReadDir(dir)
			var logs []string
			for _, e := range entries {
				if strings.HasSuffix(e.Name(), ".jsonl") {
					logs = append(logs, e.Name())
				}
			}
			if len(logs) != tt.wantLen {
				t.Fatalf("kept %d logs, want %d: %v", len(logs), tt.wantLen, logs)
			}
			if tt.wantLen > 0 && tt.files > tt.keep && tt.keep > 0 {
				if want := fmt.Sprintf("%d-abcd.jsonl", 1000+tt.files-1); logs[len(logs)-1] != want {
					t.Errorf("newest kept = %q, want %q", logs[len(logs)-1], want)
				}
			}
		})
	}

	if err := store.EnforceRetention(filepath.Join(t.TempDir(), "missing"), 3); err != nil {
		t.Errorf("missing dir: %v", err)
	}
}
