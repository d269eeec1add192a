package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kenxcomp/kenotex/internal/distribution"
	"github.com/kenxcomp/kenotex/internal/editor"
	"github.com/kenxcomp/kenotex/internal/logger"
	"github.com/kenxcomp/kenotex/internal/note"
	"github.com/kenxcomp/kenotex/internal/storage"
	"github.com/kenxcomp/kenotex/internal/tui/components"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.session.SetWrapWidth(msg.Width)
		m.filter.Width = 32
		m.ready = true
		m.followCursor()
		return m, nil

	case tickMsg:
		m.autoSave()
		if m.plan != nil && !m.dispatchDone {
			m.spinner.Tick()
		}
		return m, tick()

	case watchMsg:
		m.handleWatch(storage.WatchEvent(msg))
		return m, m.waitWatch()

	case dispatchResultMsg:
		m.applyResult(distribution.Result(msg))
		return m, m.waitDispatch()

	case dispatchDoneMsg:
		m.dispatchDone = true
		m.resultCh = nil
		if m.plan == nil {
			// Overlay was dismissed while deliveries were in flight.
			m.session.SetMessage("Processing complete")
		}
		return m, nil

	case editorFinishedMsg:
		m.finishExternalEdit(msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+q" {
		m.saveIfDirty()
		return m, tea.Quit
	}

	if m.plan != nil {
		if key == "esc" {
			m.session.FinishProcessing()
			m.plan = nil
			m.session.SetMessage("Processing complete")
		}
		return m, nil
	}

	if m.pendingDelete != nil {
		m.handleConfirmKey(key)
		return m, nil
	}

	if m.view == components.ViewEditor {
		if msg.Paste {
			m.session.PasteLiteral(string(msg.Runes))
			m.followCursor()
			return m, nil
		}
		cmd := m.handleEvent(m.session.HandleKey(key))
		m.followCursor()
		return m, cmd
	}

	return m, m.handleListKey(msg)
}

// handleEvent reacts to the session-level outcomes of an editor key.
func (m *Model) handleEvent(ev editor.Event) tea.Cmd {
	switch ev {
	case editor.EventSave:
		m.saveCurrent()
	case editor.EventQuit:
		m.saveIfDirty()
		return tea.Quit
	case editor.EventProcess:
		return m.startProcessing()
	case editor.EventOpenList:
		m.openList()
	case editor.EventNewNote:
		m.newNote()
	case editor.EventExternalEdit:
		return m.beginExternalEdit()
	case editor.EventThemeCycle:
		t := m.themes.Cycle()
		m.session.SetMessage("Theme: " + t.Name)
	case editor.EventToggleHints:
		m.showHints = !m.showHints
		if m.showHints {
			m.session.SetMessage("Hints shown")
		} else {
			m.session.SetMessage("Hints hidden")
		}
	case editor.EventReload:
		m.reloadCurrent()
	}
	return nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	list := m.activeList()

	if m.filterActive {
		switch key {
		case "esc":
			m.filterActive = false
			m.filter.Blur()
			m.filter.Reset()
			list.ClearQuery()
			return nil
		case "enter":
			m.filterActive = false
			m.filter.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		list.SetQuery(m.filter.Value())
		return cmd
	}

	switch key {
	case "j", "down":
		list.MoveDown()
	case "k", "up":
		list.MoveUp()
	case "enter", "l", "i":
		m.openSelected()
	case "d":
		if n, ok := list.Selected(); ok {
			m.pendingDelete = &pendingDelete{id: n.ID, title: n.Title, archived: n.Archived}
		}
	case "a":
		if m.view == components.ViewDraftList {
			m.archiveSelected()
		}
	case "r":
		if m.view == components.ViewArchiveList {
			m.restoreSelected()
		}
	case "A":
		if m.view == components.ViewDraftList {
			m.view = components.ViewArchiveList
		} else {
			m.view = components.ViewDraftList
		}
	case "n":
		if list.Query() == "" {
			m.newNote()
		}
	case " ":
		if m.view == components.ViewDraftList {
			list.ToggleMark()
		}
	case "/":
		m.filterActive = true
		m.filter.SetValue(list.Query())
		m.filter.CursorEnd()
		return m.filter.Focus()
	case "T":
		t := m.themes.Cycle()
		m.session.SetMessage("Theme: " + t.Name)
	case "esc":
		if m.view == components.ViewArchiveList {
			m.view = components.ViewDraftList
		} else {
			m.view = components.ViewEditor
		}
	}
	return nil
}

// handleConfirmKey resolves a pending delete. Every other key is
// swallowed until the user decides.
func (m *Model) handleConfirmKey(key string) {
	switch key {
	case "y", "enter":
		pd := m.pendingDelete
		m.pendingDelete = nil
		m.tracker.MarkSaved(m.store.PathFor(pd.id, pd.archived))
		if err := m.store.Delete(pd.id, pd.archived); err != nil {
			logger.Error("delete note %s: %v", pd.id, err)
			m.session.SetMessage("Delete failed")
			return
		}
		m.activeList().RemoveSelected()
		m.session.SetMessage("Note deleted")
	case "n", "esc":
		m.pendingDelete = nil
	}
}

func (m *Model) saveCurrent() {
	if !m.hasNote {
		return
	}
	content := m.session.DocumentText()
	if err := m.store.Save(m.current.ID, content, m.current.Archived); err != nil {
		logger.Error("save note %s: %v", m.current.ID, err)
		m.session.SetMessage("Save failed")
		return
	}
	m.tracker.MarkSaved(m.store.PathFor(m.current.ID, m.current.Archived))
	m.current.Content = content
	m.current.Title = note.TitleOf(content)
	m.current.UpdatedAt = time.Now()
	m.session.MarkSaved()
	m.lastSave = time.Now()
	m.session.SetMessage("Saved")
}

func (m *Model) saveIfDirty() {
	if m.session.Dirty() {
		m.saveCurrent()
	}
}

func (m *Model) autoSave() {
	interval := time.Duration(m.cfg.General.AutoSaveIntervalMS) * time.Millisecond
	if m.session.Dirty() && time.Since(m.lastSave) >= interval {
		m.saveCurrent()
	}
}

func (m *Model) openList() {
	if err := m.refreshLists(); err != nil {
		logger.Error("refresh lists: %v", err)
		m.session.SetMessage("Failed to read notes")
		return
	}
	m.view = components.ViewDraftList
}

func (m *Model) newNote() {
	m.saveIfDirty()
	n, err := m.store.Create()
	if err != nil {
		logger.Error("create note: %v", err)
		m.session.SetMessage("Failed to create note")
		return
	}
	m.tracker.MarkSaved(m.store.PathFor(n.ID, false))
	m.current = n
	m.hasNote = true
	m.scroll = 0
	m.session.LoadDocument("")
	m.session.HandleKey("i")
	m.view = components.ViewEditor
	m.session.SetMessage("New note created")
	if err := m.refreshLists(); err != nil {
		logger.Error("refresh lists: %v", err)
	}
}

func (m *Model) openSelected() {
	n, ok := m.activeList().Selected()
	if !ok {
		return
	}
	m.saveIfDirty()
	loaded, err := m.store.Load(n.ID, n.Archived)
	if err != nil {
		logger.Error("open note %s: %v", n.ID, err)
		m.session.SetMessage("Failed to open note")
		return
	}
	m.current = loaded
	m.hasNote = true
	m.scroll = 0
	m.session.LoadDocument(loaded.Content)
	m.view = components.ViewEditor
}

func (m *Model) reloadCurrent() {
	if !m.hasNote {
		return
	}
	n, err := m.store.Load(m.current.ID, m.current.Archived)
	if err != nil {
		logger.Error("reload note %s: %v", m.current.ID, err)
		m.session.SetMessage("Reload failed")
		return
	}
	m.current = n
	m.session.ReplaceDocument(n.Content, false)
	m.followCursor()
	m.session.SetMessage("File reloaded")
}

func (m *Model) archiveSelected() {
	n, ok := m.drafts.RemoveSelected()
	if !ok {
		return
	}
	m.tracker.MarkSaved(m.store.PathFor(n.ID, false))
	m.tracker.MarkSaved(m.store.PathFor(n.ID, true))
	if err := m.store.Archive(n.ID); err != nil {
		logger.Error("archive note %s: %v", n.ID, err)
		m.session.SetMessage("Archive failed")
	} else {
		if m.hasNote && m.current.ID == n.ID {
			m.current.Archived = true
		}
		m.session.SetMessage("Note archived")
	}
	if err := m.refreshLists(); err != nil {
		logger.Error("refresh lists: %v", err)
	}
}

func (m *Model) restoreSelected() {
	n, ok := m.archives.RemoveSelected()
	if !ok {
		return
	}
	m.tracker.MarkSaved(m.store.PathFor(n.ID, false))
	m.tracker.MarkSaved(m.store.PathFor(n.ID, true))
	if err := m.store.Restore(n.ID); err != nil {
		logger.Error("restore note %s: %v", n.ID, err)
		m.session.SetMessage("Restore failed")
	} else {
		if m.hasNote && m.current.ID == n.ID {
			m.current.Archived = false
		}
		m.session.SetMessage("Note restored")
	}
	if err := m.refreshLists(); err != nil {
		logger.Error("refresh lists: %v", err)
	}
}

// startProcessing snapshots the document's blocks and fires them at
// the dispatcher. Results stream back as dispatchResultMsg.
func (m *Model) startProcessing() tea.Cmd {
	blocks := m.session.Blocks()
	if len(blocks) == 0 {
		m.session.SetMessage("No blocks to process")
		return nil
	}
	m.session.EnterProcessing()
	m.plan = m.dispatcher.Plan(blocks)
	m.dispatchDone = false
	m.resultCh = m.dispatcher.Dispatch(context.Background(), m.current.ID, m.plan)
	return m.waitDispatch()
}

// applyResult records one delivery outcome. Sent blocks get their
// lines commented out so a later run skips them.
func (m *Model) applyResult(r distribution.Result) {
	if r.Status == distribution.StatusSent && m.blockIntact(r.Block) {
		m.session.WrapRangeAsCommented(r.Block.StartLine, r.Block.EndLine)
	}
	if m.plan != nil && r.Index >= 0 && r.Index < len(m.plan) {
		m.plan[r.Index] = r
	}
}

// blockIntact reports whether the block's lines still hold the text
// that was dispatched. Dismissing the overlay early lets edits land
// while deliveries finish, which can shift line ranges; a moved block
// is left unwrapped rather than commenting out the wrong lines.
func (m *Model) blockIntact(b editor.Block) bool {
	buf := m.session.Buffer()
	if b.StartLine < 0 || b.EndLine >= buf.LineCount() {
		return false
	}
	lines := make([]string, 0, b.EndLine-b.StartLine+1)
	for i := b.StartLine; i <= b.EndLine; i++ {
		lines = append(lines, buf.Line(i))
	}
	return strings.Join(lines, "\n") == b.Text
}

func (m *Model) beginExternalEdit() tea.Cmd {
	ee, cmd, err := storage.BeginExternalEdit(m.session.DocumentText())
	if err != nil {
		logger.Error("external edit: %v", err)
		m.session.SetMessage(fmt.Sprintf("Failed to launch editor: %v", err))
		return nil
	}
	m.extEdit = ee
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (m *Model) finishExternalEdit(runErr error) {
	if m.extEdit == nil {
		return
	}
	content, changed, err := m.extEdit.Finish()
	m.extEdit = nil
	switch {
	case runErr != nil:
		logger.Error("external editor: %v", runErr)
		m.session.SetMessage("External editor exited with error")
	case err != nil:
		logger.Error("external editor: %v", err)
		m.session.SetMessage("External editor exited with error")
	case changed:
		m.session.ReplaceDocument(content, true)
		m.scroll = 0
		m.followCursor()
		m.session.SetMessage("Buffer updated from external editor")
	}
}

// handleWatch reacts to an external change to a note file. Events
// attributed to our own writes by the tracker are dropped; a modified
// current note is reloaded unless the content already matches the
// buffer.
func (m *Model) handleWatch(ev storage.WatchEvent) {
	if m.tracker.IsSelfChange(ev.Path) {
		return
	}
	id := strings.TrimSuffix(filepath.Base(ev.Path), ".md")
	if m.hasNote && id == m.current.ID {
		switch ev.Kind {
		case storage.WatchModified:
			n, err := m.store.Load(m.current.ID, m.current.Archived)
			if err != nil {
				break
			}
			if n.Content == m.session.DocumentText() {
				break
			}
			m.current = n
			m.session.ReplaceDocument(n.Content, false)
			m.followCursor()
			m.session.SetMessage("File reloaded")
		case storage.WatchRemoved:
			// Renames we initiated (archive, atomic save) leave the
			// file present at its expected path.
			if _, err := os.Stat(m.store.PathFor(m.current.ID, m.current.Archived)); err == nil {
				break
			}
			// The buffer is now unsaved content; a later save
			// recreates the file.
			m.session.ReplaceDocument(m.session.DocumentText(), true)
			m.session.SetMessage("Note deleted on disk")
		}
	}
	if m.view != components.ViewEditor {
		if err := m.refreshLists(); err != nil {
			logger.Error("refresh lists: %v", err)
		}
	}
}
