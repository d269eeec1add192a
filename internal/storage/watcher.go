package storage

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kenxcomp/kenotex/internal/logger"
)

// WatchKind classifies what happened to a watched file.
type WatchKind int

const (
	WatchModified WatchKind = iota
	WatchRemoved
)

// WatchEvent reports one external change to a note file.
type WatchEvent struct {
	Path string
	Kind WatchKind
}

// pendingChange tracks a debounced event for one path.
type pendingChange struct {
	kind  WatchKind
	timer *time.Timer
}

// Watcher watches the note directories and reports external changes.
// Rapid changes to the same path are coalesced into one event.
type Watcher struct {
	fsw   *fsnotify.Watcher
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingChange
	closed  bool

	events chan WatchEvent
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewWatcher starts watching the given directories. The debounce delay
// merges editor save bursts (write, chmod, rename) into one event.
func NewWatcher(dirs []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	w := &Watcher{
		fsw:     fsw,
		delay:   debounce,
		pending: make(map[string]*pendingChange),
		events:  make(chan WatchEvent, 64),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Events returns the debounced event channel.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Close stops the watcher and cancels pending timers.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Error("watcher error: %v", err)
		}
	}
}

// handle schedules a debounced event for a note file, ignoring temp
// files and anything that is not Markdown.
func (w *Watcher) handle(ev fsnotify.Event) {
	if !strings.HasSuffix(ev.Name, ".md") {
		return
	}
	kind := WatchModified
	if ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename) {
		kind = WatchRemoved
	} else if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Chmod) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	path := filepath.Clean(ev.Name)
	if p, ok := w.pending[path]; ok {
		// A removal observed inside the window wins over earlier writes.
		if kind == WatchRemoved {
			p.kind = WatchRemoved
		}
		p.timer.Reset(w.delay)
		return
	}
	p := &pendingChange{kind: kind}
	p.timer = time.AfterFunc(w.delay, func() {
		w.fire(path)
	})
	w.pending[path] = p
}

// fire emits the coalesced event for one path.
func (w *Watcher) fire(path string) {
	w.mu.Lock()
	p, ok := w.pending[path]
	if !ok {
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	kind := p.kind
	w.mu.Unlock()

	select {
	case w.events <- WatchEvent{Path: path, Kind: kind}:
	case <-w.done:
	default:
		// Channel full, drop the event rather than block.
	}
}
