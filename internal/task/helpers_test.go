package task

import (
	"sync"
	"testing"
	"time"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/surface"
)

// recordingSurface records every call. It is written by worker goroutines
// and read by tests, so it carries its own lock.
type recordingSurface struct {
	mu      sync.Mutex
	rows    int
	cols    int
	clears  int
	writes  int
	markers [][2]int
	texts   []string
}

func newRecordingSurface(rows, cols int) *recordingSurface {
	return &recordingSurface{rows: rows, cols: cols}
}

func (r *recordingSurface) Clear() {
	r.mu.Lock()
	r.clears++
	r.writes++
	r.mu.Unlock()
}

func (r *recordingSurface) DrawText(_, _ int, s string) {
	r.mu.Lock()
	r.texts = append(r.texts, s)
	r.writes++
	r.mu.Unlock()
}

func (r *recordingSurface) DrawMarker(row, col int) {
	r.mu.Lock()
	r.markers = append(r.markers, [2]int{row, col})
	r.writes++
	r.mu.Unlock()
}

func (r *recordingSurface) Dimensions() (int, int) { return r.rows, r.cols }

func (r *recordingSurface) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *recordingSurface) markerCols() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cols := make([]int, len(r.markers))
	for i, m := range r.markers {
		cols[i] = m[1]
	}
	return cols
}

func (r *recordingSurface) textList() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.texts))
	copy(out, r.texts)
	return out
}

var _ surface.Surface = (*recordingSurface)(nil)

// countingPainter counts frames.
type countingPainter struct{ n int }

func (p *countingPainter) Paint(s surface.Surface) {
	p.n++
	s.DrawMarker(0, 0)
}

// blockingPainter parks the worker inside Paint until release is closed.
type blockingPainter struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingPainter() *blockingPainter {
	return &blockingPainter{entered: make(chan struct{}), release: make(chan struct{})}
}

func (p *blockingPainter) Paint(surface.Surface) {
	p.once.Do(func() { close(p.entered) })
	<-p.release
}

type panickingPainter struct{}

func (panickingPainter) Paint(surface.Surface) { panic("boom") }

var fastOpts = Options{Interval: time.Millisecond, JoinTimeout: time.Second}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// cancelTask cancels h and returns its worker context, failing the test
// on any error.
func cancelTask(t *testing.T, h *Handle) *WorkerContext {
	t.Helper()
	st, err := h.Cancel()
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	w, ok := st.(*WorkerContext)
	if !ok {
		t.Fatalf("state type = %T, want *WorkerContext", st)
	}
	return w
}
