package storage

import (
	"path/filepath"
	"sync"
	"time"
)

// selfSaveWindow is how long a path stays attributed to our own save.
// Watcher events inside the window are echoes of the app writing the
// file, not external edits.
const selfSaveWindow = 2 * time.Second

// ChangeTracker tells app-initiated writes apart from external ones.
type ChangeTracker struct {
	mu     sync.Mutex
	saved  map[string]time.Time
	window time.Duration
}

// NewChangeTracker returns a tracker with the default window.
func NewChangeTracker() *ChangeTracker {
	return newChangeTracker(selfSaveWindow)
}

func newChangeTracker(window time.Duration) *ChangeTracker {
	return &ChangeTracker{
		saved:  make(map[string]time.Time),
		window: window,
	}
}

// MarkSaved records that the app just wrote this path.
func (t *ChangeTracker) MarkSaved(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.saved[filepath.Clean(path)] = time.Now()
}

// IsSelfChange reports whether an event for this path is an echo of
// our own save. Expired entries are pruned as they are consulted.
func (t *ChangeTracker) IsSelfChange(path string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	path = filepath.Clean(path)
	at, ok := t.saved[path]
	if !ok {
		return false
	}
	if time.Since(at) > t.window {
		delete(t.saved, path)
		return false
	}
	return true
}
