package editor

// UndoEntry is a whole-document snapshot plus the cursor at capture
// time. Snapshot granularity trades memory for correctness: restoring
// can never leave a partial edit behind.
type UndoEntry struct {
	lines  []string
	cursor Position
}

const historyLimit = 200

// History holds the linear undo and redo stacks.
type History struct {
	undo []UndoEntry
	redo []UndoEntry
}

func NewHistory() *History {
	return &History{}
}

// RecordBefore pushes the pre-mutation state onto the undo stack and
// clears the redo stack. Call it immediately before applying any
// mutating action.
func (h *History) RecordBefore(b *Buffer, cursor Position) {
	h.undo = append(h.undo, snapshot(b, cursor))
	if len(h.undo) > historyLimit {
		h.undo = h.undo[1:]
	}
	h.redo = nil
}

// Undo restores the most recent snapshot into b, pushing the current
// state onto the redo stack first. Returns the restored cursor and
// false when there is nothing to undo.
func (h *History) Undo(b *Buffer, cursor Position) (Position, bool) {
	if len(h.undo) == 0 {
		return cursor, false
	}
	h.redo = append(h.redo, snapshot(b, cursor))
	entry := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	restore(b, entry)
	return entry.cursor, true
}

// Redo is the mirror of Undo against the redo stack.
func (h *History) Redo(b *Buffer, cursor Position) (Position, bool) {
	if len(h.redo) == 0 {
		return cursor, false
	}
	h.undo = append(h.undo, snapshot(b, cursor))
	entry := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	restore(b, entry)
	return entry.cursor, true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Reset drops both stacks, for loading a different document.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

func snapshot(b *Buffer, cursor Position) UndoEntry {
	return UndoEntry{lines: b.Lines(), cursor: cursor}
}

func restore(b *Buffer, e UndoEntry) {
	b.lines = append([]string(nil), e.lines...)
}
