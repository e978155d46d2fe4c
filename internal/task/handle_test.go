package task

import (
	"errors"
	"sync"
	"testing"
)

type fakeState struct{ released int }

func (f *fakeState) Release() { f.released++ }

func TestHandle_Cancel(t *testing.T) {
	t.Run("first cancel stops and transfers state", func(t *testing.T) {
		st := &fakeState{}
		stops := 0
		h := NewHandle(7, st, func() error { stops++; return nil })

		got, err := h.Cancel()
		if err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		if got != st {
			t.Errorf("Cancel returned %v, want the handle's state", got)
		}
		if stops != 1 {
			t.Errorf("stop called %d times, want 1", stops)
		}
		if st.released != 0 {
			t.Error("Cancel must not release the state itself")
		}
		if h.ID() != 7 {
			t.Errorf("ID() = %d, want 7", h.ID())
		}
	})

	t.Run("second cancel is redundant and does nothing", func(t *testing.T) {
		stops := 0
		h := NewHandle(1, &fakeState{}, func() error { stops++; return nil })
		if _, err := h.Cancel(); err != nil {
			t.Fatal(err)
		}
		got, err := h.Cancel()
		if !errors.Is(err, ErrRedundantCancel) {
			t.Errorf("second Cancel error = %v, want ErrRedundantCancel", err)
		}
		if got != nil {
			t.Errorf("second Cancel returned state %v, want nil", got)
		}
		if stops != 1 {
			t.Errorf("stop called %d times, want 1", stops)
		}
	})

	t.Run("stop failure keeps state", func(t *testing.T) {
		stopErr := errors.New("stuck")
		h := NewHandle(2, &fakeState{}, func() error { return stopErr })
		got, err := h.Cancel()
		if !errors.Is(err, stopErr) {
			t.Errorf("Cancel error = %v, want %v", err, stopErr)
		}
		if got != nil {
			t.Error("state must not be handed out when stop fails")
		}
		if _, err := h.Cancel(); !errors.Is(err, ErrRedundantCancel) {
			t.Errorf("retry error = %v, want ErrRedundantCancel", err)
		}
	})

	t.Run("nil stop", func(t *testing.T) {
		st := &fakeState{}
		h := NewHandle(3, st, nil)
		got, err := h.Cancel()
		if err != nil || got != st {
			t.Errorf("Cancel() = %v, %v", got, err)
		}
	})

	t.Run("concurrent cancels stop exactly once", func(t *testing.T) {
		var mu sync.Mutex
		stops := 0
		h := NewHandle(4, &fakeState{}, func() error {
			mu.Lock()
			stops++
			mu.Unlock()
			return nil
		})

		var wg sync.WaitGroup
		var redundant int
		var rmu sync.Mutex
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := h.Cancel(); errors.Is(err, ErrRedundantCancel) {
					rmu.Lock()
					redundant++
					rmu.Unlock()
				}
			}()
		}
		wg.Wait()
		if stops != 1 {
			t.Errorf("stop called %d times, want 1", stops)
		}
		if redundant != 7 {
			t.Errorf("redundant cancels = %d, want 7", redundant)
		}
	})
}
