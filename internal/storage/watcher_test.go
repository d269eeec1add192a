package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitEvent(t *testing.T, w *Watcher) WatchEvent {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watch event")
		return WatchEvent{}
	}
}

func TestWatcherModify(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher([]string{dir}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "note.md")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ev := waitEvent(t, w)
	if ev.Path != path {
		t.Errorf("event path = %s, want %s", ev.Path, path)
	}
	if ev.Kind != WatchModified {
		t.Errorf("event kind = %v, want WatchModified", ev.Kind)
	}
}

func TestWatcherRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	w, err := NewWatcher([]string{dir}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	ev := waitEvent(t, w)
	if ev.Kind != WatchRemoved {
		t.Errorf("event kind = %v, want WatchRemoved", ev.Kind)
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher([]string{dir}, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "note.md")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("rev"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	waitEvent(t, w)
	select {
	case ev := <-w.Events():
		t.Errorf("burst produced a second event: %+v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherIgnoresNonMarkdown(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher([]string{dir}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	tmp := filepath.Join(dir, "note.md.tmp")
	if err := os.WriteFile(tmp, []byte("partial"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	// Give the filtered event time to (not) arrive before the real one.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "note.md")
	if err := os.WriteFile(path, []byte("done"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ev := waitEvent(t, w)
	if ev.Path != path {
		t.Errorf("first event path = %s, want %s (temp file leaked through)", ev.Path, path)
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := NewWatcher([]string{t.TempDir()}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
