package ui

import "testing"

func TestProgressModel_ApplyTracksDoneAndFailedCounts(t *testing.T) {
	events := make(chan Event)
	m := NewProgressModel("build", []string{"a.sg", "b.sg"}, events)

	m.apply(Event{Path: "a.sg", Status: "ok"})
	if m.done != 1 || m.failed != 0 {
		t.Fatalf("after one ok: done=%d failed=%d, want 1,0", m.done, m.failed)
	}
	if m.items[m.index["a.sg"]].status != "ok" {
		t.Errorf("expected a.sg status to be ok, got %q", m.items[m.index["a.sg"]].status)
	}

	m.apply(Event{Path: "b.sg", Status: "error"})
	if m.done != 2 || m.failed != 1 {
		t.Fatalf("after one ok + one error: done=%d failed=%d, want 2,1", m.done, m.failed)
	}
}

func TestProgressModel_ApplyIgnoresUnknownPath(t *testing.T) {
	events := make(chan Event)
	m := NewProgressModel("build", []string{"a.sg"}, events)
	m.apply(Event{Path: "nope.sg", Status: "ok"})
	if m.done != 0 {
		t.Errorf("expected an event for an untracked path to be ignored, done=%d", m.done)
	}
}

func TestProgressModel_ApplyDoesNotDoubleCountRepeatedTerminalStatus(t *testing.T) {
	events := make(chan Event)
	m := NewProgressModel("build", []string{"a.sg"}, events)
	m.apply(Event{Path: "a.sg", Status: "ok"})
	m.apply(Event{Path: "a.sg", Status: "ok"})
	if m.done != 1 {
		t.Errorf("expected a repeated terminal status to not double-count, done=%d", m.done)
	}
}

func TestProgressModel_ViewReportsProgress(t *testing.T) {
	events := make(chan Event)
	m := NewProgressModel("build", []string{"a.sg", "b.sg"}, events)
	m.apply(Event{Path: "a.sg", Status: "ok"})
	view := m.View()
	if view == "" {
		t.Fatal("expected a non-empty view")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Errorf("truncate(short) = %q, want unchanged", got)
	}
	long := "a-very-long-file-path.sg"
	got := truncate(long, 10)
	if got == long {
		t.Errorf("expected truncate to shorten %q, got unchanged", long)
	}
	if got[len(got)-len("…"):] != "…" {
		t.Errorf("truncate(%q, 10) = %q, want a trailing ellipsis", long, got)
	}
}
