package editor

import (
	"reflect"
	"testing"
)

func TestUndoRedoInverse(t *testing.T) {
	b := FromText("original")
	h := NewHistory()
	cursor := Position{0, 3}

	h.RecordBefore(b, cursor)
	b.SetLine(0, "mutated")
	after := Position{0, 7}

	got, ok := h.Undo(b, after)
	if !ok {
		t.Fatal("Undo reported empty stack")
	}
	if b.Text() != "original" || got != cursor {
		t.Errorf("after undo: text=%q cursor=%v, want %q %v", b.Text(), got, "original", cursor)
	}

	got, ok = h.Redo(b, got)
	if !ok {
		t.Fatal("Redo reported empty stack")
	}
	if b.Text() != "mutated" || got != after {
		t.Errorf("after redo: text=%q cursor=%v, want %q %v", b.Text(), got, "mutated", after)
	}
}

func TestUndoEmptyStack(t *testing.T) {
	b := FromText("x")
	h := NewHistory()
	cursor := Position{0, 0}

	if got, ok := h.Undo(b, cursor); ok || got != cursor {
		t.Errorf("Undo on empty stack = (%v, %v), want no-op", got, ok)
	}
	if got, ok := h.Redo(b, cursor); ok || got != cursor {
		t.Errorf("Redo on empty stack = (%v, %v), want no-op", got, ok)
	}
}

func TestRecordClearsRedo(t *testing.T) {
	b := FromText("one")
	h := NewHistory()

	h.RecordBefore(b, Position{})
	b.SetLine(0, "two")
	h.Undo(b, Position{})
	if !h.CanRedo() {
		t.Fatal("expected redo available after undo")
	}

	h.RecordBefore(b, Position{})
	b.SetLine(0, "three")
	if h.CanRedo() {
		t.Error("redo stack should be cleared by a new mutation")
	}
}

func TestUndoChain(t *testing.T) {
	b := FromText("v0")
	h := NewHistory()

	for i, text := range []string{"v1", "v2", "v3"} {
		h.RecordBefore(b, Position{0, i})
		b.SetLine(0, text)
	}

	want := []string{"v2", "v1", "v0"}
	for _, w := range want {
		if _, ok := h.Undo(b, Position{}); !ok {
			t.Fatal("undo stack exhausted early")
		}
		if b.Text() != w {
			t.Errorf("text = %q, want %q", b.Text(), w)
		}
	}
	if h.CanUndo() {
		t.Error("undo stack should be empty")
	}

	for _, w := range []string{"v1", "v2", "v3"} {
		if _, ok := h.Redo(b, Position{}); !ok {
			t.Fatal("redo stack exhausted early")
		}
		if b.Text() != w {
			t.Errorf("text = %q, want %q", b.Text(), w)
		}
	}
}

func TestSnapshotIsolation(t *testing.T) {
	b := FromText("a\nb")
	h := NewHistory()
	h.RecordBefore(b, Position{})

	// Mutating the buffer must not reach into the stored snapshot.
	b.SetLine(0, "changed")
	b.InsertLine(1, "inserted")

	h.Undo(b, Position{})
	if want := []string{"a", "b"}; !reflect.DeepEqual(b.Lines(), want) {
		t.Errorf("lines = %v, want %v", b.Lines(), want)
	}
}

func TestHistoryLimit(t *testing.T) {
	b := FromText("start")
	h := NewHistory()
	for i := 0; i < historyLimit+50; i++ {
		h.RecordBefore(b, Position{})
	}
	if len(h.undo) != historyLimit {
		t.Errorf("undo depth = %d, want %d", len(h.undo), historyLimit)
	}
}

func TestReset(t *testing.T) {
	b := FromText("x")
	h := NewHistory()
	h.RecordBefore(b, Position{})
	b.SetLine(0, "y")
	h.Undo(b, Position{})

	h.Reset()
	if h.CanUndo() || h.CanRedo() {
		t.Error("Reset should drop both stacks")
	}
}
