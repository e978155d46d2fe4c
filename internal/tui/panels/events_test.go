package panels

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestEventsPanel_LogTab(t *testing.T) {
	p := NewEventsPanel(60, 8)
	p = p.AppendLine("select Animation")
	p = p.AppendLine("task 1 started for Animation")

	if p.ActiveTab() != TabLog {
		t.Fatalf("ActiveTab() = %d, want TabLog", p.ActiveTab())
	}
	view := p.View()
	for _, want := range []string{"Events", "Tasks", "select Animation", "task 1 started"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q: %q", want, view)
		}
	}
}

func TestEventsPanel_TasksTab(t *testing.T) {
	p := NewEventsPanel(60, 8).NextTab()
	if p.ActiveTab() != TabTasks {
		t.Fatalf("ActiveTab() = %d, want TabTasks", p.ActiveTab())
	}
	if !strings.Contains(p.View(), "No tasks yet") {
		t.Errorf("empty table: %q", p.View())
	}

	p = p.AddTask(TaskRow{TaskID: 1, Label: "Animation", Frames: 12, StopLatency: 3 * time.Millisecond})
	p = p.AddTask(TaskRow{TaskID: 2, Label: "A rather long item label", Frames: 4, Err: "painter panicked"})
	view := p.View()
	for _, want := range []string{"Item", "Frames", "Animation", "12", "3ms", "A rather long…", "✗"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q: %q", want, view)
		}
	}
	if len(p.Tasks()) != 2 {
		t.Errorf("Tasks() = %d rows", len(p.Tasks()))
	}

	if p.PrevTab().ActiveTab() != TabLog {
		t.Error("PrevTab should return to the log")
	}
}

func TestEventsPanel_TasksTabKeepsNewest(t *testing.T) {
	p := NewEventsPanel(60, 5).NextTab()
	for i := 1; i <= 10; i++ {
		p = p.AddTask(TaskRow{TaskID: uint64(i), Label: "Spinner"})
	}
	view := p.View()
	if !strings.Contains(view, " 10 ") {
		t.Errorf("newest task missing: %q", view)
	}
	if strings.Contains(view, "  1    Spinner") {
		t.Errorf("oldest task should scroll off: %q", view)
	}
}

func TestEventsPanel_FollowAndScroll(t *testing.T) {
	p := NewEventsPanel(60, 4)
	for i := 0; i < 30; i++ {
		p = p.AppendLine("line")
	}
	if !p.Following() {
		t.Fatal("expected follow mode on")
	}
	if p.ToggleFollow().Following() {
		t.Error("ToggleFollow should turn follow off")
	}

	// Scroll keys only reach the log tab.
	tasks := p.NextTab()
	tasks, _ = tasks.Update(tea.KeyMsg{Type: tea.KeyUp})
	if !tasks.Following() {
		t.Error("keys on the tasks tab should not touch the log")
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if p.Following() {
		t.Error("scrolling up the log should leave follow mode")
	}
}
