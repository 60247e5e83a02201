package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"cefmt/internal/driver"
)

func TestApplyEventTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("check", []string{"a.go"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.go", Stage: driver.StageScan, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "scanning" {
		t.Fatalf("status = %q, want scanning", got)
	}

	m.applyEvent(driver.Event{File: "b.go", Stage: driver.StageLoad, Status: driver.StatusQueued})
	if len(m.items) != 2 || m.items[1].path != "b.go" {
		t.Fatalf("items = %+v, want b.go appended", m.items)
	}

	m.applyEvent(driver.Event{File: "a.go", Stage: driver.StageAnalyze, Status: driver.StatusError, Diags: 3})
	m.applyEvent(driver.Event{File: "b.go", Stage: driver.StageAnalyze, Status: driver.StatusDone, Cached: true})
	if m.diags != 3 {
		t.Fatalf("diags = %d, want 3", m.diags)
	}
	if m.finished() != 2 {
		t.Fatalf("finished = %d, want 2", m.finished())
	}

	view := m.View()
	for _, want := range []string{"2/2 file(s), 3 diagnostic(s)", "a.go (3)", "b.go [cached]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDoneOnClosedChannel(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("check", nil, events).(*progressModel)

	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("msg = %T, want doneMsg", msg)
	}
	_, cmd := m.Update(msg)
	if !m.done || cmd == nil {
		t.Fatal("model did not finish")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.Quit")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.go", 20, "short.go"},
		{"internal/driver/check.go", 12, "internal/..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
