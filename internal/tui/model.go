package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kenxcomp/kenotex/internal/clipboard"
	"github.com/kenxcomp/kenotex/internal/config"
	"github.com/kenxcomp/kenotex/internal/distribution"
	"github.com/kenxcomp/kenotex/internal/editor"
	"github.com/kenxcomp/kenotex/internal/logger"
	"github.com/kenxcomp/kenotex/internal/note"
	"github.com/kenxcomp/kenotex/internal/storage"
	"github.com/kenxcomp/kenotex/internal/theme"
	"github.com/kenxcomp/kenotex/internal/tui/components"
)

// Model is the Bubble Tea model for the whole application: the editing
// session, the draft and archive lists, and the dispatch overlay.
type Model struct {
	cfg        config.Config
	keymap     *editor.Keymap
	session    *editor.Session
	store      *storage.Store
	watcher    *storage.Watcher
	tracker    *storage.ChangeTracker
	dispatcher *distribution.Dispatcher
	themes     *theme.Manager

	view      components.View
	width     int
	height    int
	ready     bool
	showHints bool

	current note.Note
	hasNote bool
	scroll  int

	drafts       *components.NoteList
	archives     *components.NoteList
	filter       textinput.Model
	filterActive bool

	// Dispatch overlay state. plan is non-nil while the overlay is up.
	plan         []distribution.Result
	dispatchDone bool
	resultCh     <-chan distribution.Result
	spinner      *components.SpinnerComponent

	pendingDelete *pendingDelete
	extEdit       *storage.ExternalEdit
	lastSave      time.Time
}

// pendingDelete holds the note awaiting delete confirmation.
type pendingDelete struct {
	id       string
	title    string
	archived bool
}

// tickMsg drives auto-save and other periodic work.
type tickMsg time.Time

// watchMsg carries one debounced external file change.
type watchMsg storage.WatchEvent

// dispatchResultMsg carries one finished block delivery.
type dispatchResultMsg distribution.Result

// dispatchDoneMsg signals that every block reached a terminal status.
type dispatchDoneMsg struct{}

// editorFinishedMsg signals the external editor process exited.
type editorFinishedMsg struct {
	err error
}

// NewModel builds the model, opening the most recent draft or creating
// a fresh one when the drafts directory is empty.
func NewModel(cfg config.Config, store *storage.Store, watcher *storage.Watcher, dispatcher *distribution.Dispatcher, themes *theme.Manager) (Model, error) {
	keymap := editor.NewKeymap(cfg.General.LeaderKey, cfg.Keyboard)
	session := editor.NewSession(keymap)
	session.SetIndentWidth(cfg.General.TabWidth)
	if clipboard.Available() {
		session.SetClipboardMirror(func(text string) {
			if err := clipboard.Copy(text); err != nil {
				logger.Debug("clipboard copy: %v", err)
			}
		})
	}

	m := Model{
		cfg:        cfg,
		keymap:     keymap,
		session:    session,
		store:      store,
		watcher:    watcher,
		tracker:    storage.NewChangeTracker(),
		dispatcher: dispatcher,
		themes:     themes,
		view:       components.ViewEditor,
		showHints:  cfg.General.ShowHints,
		drafts:     components.NewNoteList(false),
		archives:   components.NewNoteList(true),
		spinner:    components.NewSpinnerComponent("working..."),
		lastSave:   time.Now(),
	}

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter"
	filter.CharLimit = 128
	m.filter = filter

	n, ok, err := store.MostRecentDraft()
	if err != nil {
		return m, err
	}
	if !ok {
		n, err = store.Create()
		if err != nil {
			return m, err
		}
		m.tracker.MarkSaved(store.PathFor(n.ID, false))
	}
	m.current = n
	m.hasNote = true
	m.session.LoadDocument(n.Content)

	if err := m.refreshLists(); err != nil {
		return m, err
	}
	return m, nil
}

// Init starts the periodic tick and the watcher pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.waitWatch())
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitWatch blocks on the watcher channel and resolves to the next
// external change. Re-issued from Update after each event.
func (m Model) waitWatch() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.Events()
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return watchMsg(ev)
	}
}

// waitDispatch resolves to the next delivery result, or to done when
// the channel closes.
func (m Model) waitDispatch() tea.Cmd {
	ch := m.resultCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return dispatchDoneMsg{}
		}
		return dispatchResultMsg(r)
	}
}

// refreshLists reloads both note lists from disk.
func (m *Model) refreshLists() error {
	drafts, err := m.store.List(false)
	if err != nil {
		return err
	}
	archives, err := m.store.List(true)
	if err != nil {
		return err
	}
	m.drafts.SetNotes(drafts)
	m.archives.SetNotes(archives)
	return nil
}

// activeList returns the list backing the current view.
func (m *Model) activeList() *components.NoteList {
	if m.view == components.ViewArchiveList {
		return m.archives
	}
	return m.drafts
}

// displayMode is the mode shown to status and hint bars. List views
// derive it from model state because session modes only cover the
// editor.
func (m Model) displayMode() editor.Mode {
	if m.pendingDelete != nil {
		return editor.ModeConfirmDelete
	}
	if m.view != components.ViewEditor {
		if m.filterActive {
			return editor.ModeSearch
		}
		return editor.ModeNormal
	}
	return m.session.Mode()
}

// contentHeight is the space left for the main pane after the status
// bar and optional hint bar.
func (m Model) contentHeight() int {
	h := m.height - 2
	if m.showHints {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// percentThrough reports cursor progress for the status bar.
func (m Model) percentThrough() int {
	total := m.session.Buffer().LineCount()
	if total <= 0 {
		return 100
	}
	return (m.session.Cursor().Row + 1) * 100 / total
}

// followCursor keeps the cursor row inside the visible window.
func (m *Model) followCursor() {
	ev := components.NewEditorViewComponent(m.session, m.themes.Current(), m.width, m.contentHeight())
	m.scroll = ev.EnsureVisible(m.scroll)
}
