package editor

import (
	"strings"

	"github.com/kenxcomp/kenotex/internal/grapheme"
)

// Event is an application-level intent a key press resolved to. The
// session handles all editing itself; events are the commands it
// cannot satisfy alone and hands to the caller.
type Event int

const (
	EventNone Event = iota
	EventSave
	EventQuit
	EventProcess
	EventOpenList
	EventNewNote
	EventExternalEdit
	EventThemeCycle
	EventToggleHints
	EventReload
)

// Session is the modal editing engine for one open document. It owns
// the buffer, cursor, mode, pending keys, clipboard register, undo
// history and search state, and applies resolved actions to them.
// Callers feed it one key token at a time and render from its
// accessors; it never touches the terminal.
type Session struct {
	buf    *Buffer
	cursor Position
	// desiredCol is the visual column vertical motion aims for,
	// preserved while crossing shorter rows.
	desiredCol int

	mode    Mode
	visual  *Selection
	pending []string

	register Register
	history  *History
	search   SearchState
	keymap   *Keymap

	width       int
	indentWidth int

	dirty         bool
	message       string
	insertPending bool
}

// NewSession returns a session over an empty document.
func NewSession(keymap *Keymap) *Session {
	if keymap == nil {
		keymap = DefaultKeymap()
	}
	return &Session{
		buf:         NewBuffer(),
		history:     NewHistory(),
		keymap:      keymap,
		indentWidth: 2,
	}
}

// LoadDocument replaces the buffer contents and resets all transient
// state, including the undo history.
func (s *Session) LoadDocument(text string) {
	s.buf = FromText(text)
	s.cursor = Position{}
	s.desiredCol = 0
	s.mode = ModeNormal
	s.visual = nil
	s.pending = nil
	s.history.Reset()
	s.search = SearchState{}
	s.dirty = false
	s.message = ""
	s.insertPending = false
}

// ReplaceDocument swaps in new content while keeping the undo history,
// so an external change can still be undone. markDirty distinguishes an
// edit brought back from another program (unsaved) from a reload of
// what is already on disk.
func (s *Session) ReplaceDocument(text string, markDirty bool) {
	s.recordUndo()
	s.buf = FromText(text)
	s.cursor = s.buf.Clamp(s.cursor, true)
	s.resetDesiredCol()
	s.mode = ModeNormal
	s.visual = nil
	s.pending = nil
	s.search.Invalidate()
	s.dirty = markDirty
	s.insertPending = false
}

// DocumentText returns the full document for saving.
func (s *Session) DocumentText() string {
	return s.buf.Text()
}

// Buffer exposes the underlying buffer for rendering.
func (s *Session) Buffer() *Buffer {
	return s.buf
}

// Mode returns the active mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Cursor returns the logical cursor position. In Visual Block mode the
// column may exceed the current line's length; clamp before indexing.
func (s *Session) Cursor() Position {
	return s.cursor
}

// Pending returns the accumulated key prefix for status display.
func (s *Session) Pending() string {
	return strings.Join(s.pending, "")
}

// Selection returns the active visual selection, if any.
func (s *Session) Selection() (Selection, bool) {
	if s.visual == nil {
		return Selection{}, false
	}
	return *s.visual, true
}

// SearchPattern returns the pattern being typed or last confirmed.
func (s *Session) SearchPattern() string {
	return s.search.Pattern
}

// SearchMatches returns the live match set for highlighting.
func (s *Session) SearchMatches() []Match {
	return s.search.Matches
}

// Dirty reports whether the buffer changed since the last save.
func (s *Session) Dirty() bool {
	return s.dirty
}

// MarkSaved clears the dirty flag after a successful save.
func (s *Session) MarkSaved() {
	s.dirty = false
}

// Message returns the transient status message for the last key.
// While Insert or a Visual mode is active and no key produced its own
// message, the mode banner is reported instead, so it stays visible
// until the mode is left.
func (s *Session) Message() string {
	if s.message != "" {
		return s.message
	}
	switch s.mode {
	case ModeInsert:
		return "-- INSERT --"
	case ModeVisualChar:
		return "-- VISUAL --"
	case ModeVisualLine:
		return "-- VISUAL LINE --"
	case ModeVisualBlock:
		return "-- VISUAL BLOCK --"
	}
	return ""
}

// SetMessage lets collaborators surface their own status text.
func (s *Session) SetMessage(msg string) {
	s.message = msg
}

// SetWrapWidth sets the soft-wrap width used for vertical motion.
// Zero or negative disables wrapping.
func (s *Session) SetWrapWidth(w int) {
	s.width = w
}

// SetIndentWidth sets the column count used by indent and dedent.
func (s *Session) SetIndentWidth(n int) {
	if n > 0 {
		s.indentWidth = n
	}
}

// SetClipboardMirror forwards every register write to fn, so yanked
// and deleted text also lands on the system clipboard.
func (s *Session) SetClipboardMirror(fn func(string)) {
	s.register.Mirror(fn)
}

// HandleKey feeds one key token through the resolver and applies the
// result. It returns the application event the key resolved to, or
// EventNone for pure editing keys.
func (s *Session) HandleKey(key string) Event {
	key = normalizeKey(key)
	s.message = ""

	switch s.mode {
	case ModeInsert:
		return s.handleInsertKey(key)
	case ModeSearch:
		return s.handleSearchKey(key)
	case ModeProcessing, ModeConfirmDelete:
		// Owned by overlays; keys are not editing input here.
		return EventNone
	default:
		return s.handleCommandKey(key)
	}
}

func (s *Session) handleCommandKey(key string) Event {
	if key == "esc" {
		s.pending = nil
		s.search = SearchState{}
		if s.mode.IsVisual() {
			s.exitVisual()
		}
		s.cursor = s.buf.Clamp(s.cursor, true)
		return EventNone
	}

	s.pending = append(s.pending, key)
	res := s.keymap.Resolve(s.mode, s.pending)
	switch res.Outcome {
	case ResolvePending:
		return EventNone
	case ResolveNoMatch:
		s.pending = nil
		return EventNone
	}
	s.pending = nil
	return s.apply(res.Action)
}

func (s *Session) apply(a Action) Event {
	switch a.Kind {
	case ActMoveUp:
		s.moveVertical(-1)
	case ActMoveDown:
		s.moveVertical(1)
	case ActMoveLeft, ActMoveRight, ActWordForward, ActWordBackward,
		ActLineStart, ActLineEnd, ActFirstLine, ActLastLine:
		if m, ok := plainMotion(a.Kind); ok {
			s.moveTo(s.motionTarget(m))
		}

	case ActInsert:
		s.enterInsert(true)
	case ActInsertLineStart:
		ws := leadingWhitespace(s.buf.Line(s.cursor.Row))
		s.cursor.Col = grapheme.Count(ws)
		s.enterInsert(true)
	case ActAppend:
		if n := s.buf.LineLen(s.cursor.Row); s.cursor.Col < n {
			s.cursor.Col++
		}
		s.enterInsert(true)
	case ActAppendLineEnd:
		s.cursor.Col = s.buf.LineLen(s.cursor.Row)
		s.enterInsert(true)
	case ActOpenBelow:
		s.recordUndo()
		s.cursor.Col = s.buf.LineLen(s.cursor.Row)
		s.splitWithContinuation()
		s.enterInsert(false)
	case ActOpenAbove:
		s.recordUndo()
		s.buf.InsertLine(s.cursor.Row, "")
		s.cursor = Position{Row: s.cursor.Row, Col: 0}
		s.touch()
		s.enterInsert(false)

	case ActVisualChar:
		s.enterVisual(VisualCharacter)
	case ActVisualLine:
		s.enterVisual(VisualLine)
	case ActVisualBlock:
		s.enterVisual(VisualBlock)

	case ActDeleteChar:
		s.deleteChar()
	case ActDeleteLine:
		s.deleteLines(s.cursor.Row, s.cursor.Row)
	case ActYankLine:
		s.register.Set(s.linesIn(s.cursor.Row, s.cursor.Row), ShapeLine)
		s.message = "Yanked"
	case ActIndentLine:
		s.recordUndo()
		s.indentLine(s.cursor.Row)
		s.cursor = s.buf.Clamp(Position{Row: s.cursor.Row, Col: s.cursor.Col + s.indentWidth}, true)
		s.touch()
	case ActDedentLine:
		s.recordUndo()
		removed := s.dedentLine(s.cursor.Row)
		s.cursor = s.buf.Clamp(Position{Row: s.cursor.Row, Col: s.cursor.Col - removed}, true)
		s.touch()
	case ActToggleCommentLine:
		s.recordUndo()
		s.buf.SetLine(s.cursor.Row, ToggleCommentLine(s.buf.Line(s.cursor.Row)))
		s.cursor = s.buf.Clamp(s.cursor, true)
		s.touch()
	case ActPasteAfter:
		s.paste(true)
	case ActPasteBefore:
		s.paste(false)
	case ActUndo:
		if pos, ok := s.history.Undo(s.buf, s.cursor); ok {
			s.cursor = s.buf.Clamp(pos, true)
			s.message = "Undo"
			s.touch()
		} else {
			s.message = "Already at oldest change"
		}
	case ActRedo:
		if pos, ok := s.history.Redo(s.buf, s.cursor); ok {
			s.cursor = s.buf.Clamp(pos, true)
			s.message = "Redo"
			s.touch()
		} else {
			s.message = "Already at newest change"
		}

	case ActOperatorMotion:
		s.applyOperator(a.Op, a.Motion)

	case ActVisualDelete:
		s.visualDelete()
	case ActVisualYank:
		s.visualYank()
	case ActVisualIndent:
		s.visualIndent(1)
	case ActVisualDedent:
		s.visualIndent(-1)
	case ActVisualComment:
		s.visualComment()
	case ActVisualBold:
		s.visualFormat(MarkerBold)
	case ActVisualItalic:
		s.visualFormat(MarkerItalic)
	case ActVisualStrike:
		s.visualFormat(MarkerStrike)
	case ActVisualCode:
		s.visualFormat(MarkerCode)
	case ActVisualCodeFence:
		s.visualCodeFence()
	case ActBlockInsert:
		s.blockEnter(false)
	case ActBlockAppend:
		s.blockEnter(true)

	case ActSearchStart:
		if s.mode.IsVisual() {
			s.exitVisual()
		}
		s.search = SearchState{}
		s.mode = ModeSearch
	case ActSearchNext:
		s.jumpMatch(Forward)
	case ActSearchPrev:
		s.jumpMatch(Backward)

	case ActFormatBold:
		s.formatAtCursor(MarkerBold)
	case ActFormatItalic:
		s.formatAtCursor(MarkerItalic)
	case ActFormatStrike:
		s.formatAtCursor(MarkerStrike)
	case ActFormatCode:
		s.formatAtCursor(MarkerCode)
	case ActFormatCodeFence:
		s.recordUndo()
		s.cursor = InsertCodeFences(s.buf, s.cursor.Row)
		s.touch()
		s.enterInsert(false)

	case ActCheckboxToggle:
		if line, ok := ToggleCheckbox(s.buf.Line(s.cursor.Row)); ok {
			s.recordUndo()
			s.buf.SetLine(s.cursor.Row, line)
			s.cursor = s.buf.Clamp(s.cursor, true)
			s.touch()
		}
	case ActCheckboxInsert:
		s.recordUndo()
		ws := leadingWhitespace(s.buf.Line(s.cursor.Row))
		item := ws + "- [ ] "
		s.buf.InsertLine(s.cursor.Row+1, item)
		s.cursor = Position{Row: s.cursor.Row + 1, Col: grapheme.Count(item)}
		s.touch()
		s.enterInsert(false)

	case ActThemeCycle:
		return EventThemeCycle
	case ActProcess:
		return EventProcess
	case ActOpenList:
		return EventOpenList
	case ActNewNote:
		return EventNewNote
	case ActSave:
		return EventSave
	case ActQuit:
		return EventQuit
	case ActExternalEdit:
		return EventExternalEdit
	case ActToggleHints:
		return EventToggleHints
	case ActReload:
		return EventReload
	}
	return EventNone
}

func plainMotion(kind ActionKind) (Motion, bool) {
	switch kind {
	case ActMoveLeft:
		return MotionLeft, true
	case ActMoveRight:
		return MotionRight, true
	case ActWordForward:
		return MotionWordForward, true
	case ActWordBackward:
		return MotionWordBackward, true
	case ActLineStart:
		return MotionLineStart, true
	case ActLineEnd:
		return MotionLineEnd, true
	case ActFirstLine:
		return MotionFirstLine, true
	case ActLastLine:
		return MotionLastLine, true
	}
	return MotionNone, false
}

// motionTarget computes the raw destination of a motion from the
// cursor. Columns may sit on the end-of-line slot so operators can
// cover the final cluster; plain motions clamp afterwards.
func (s *Session) motionTarget(m Motion) Position {
	row, col := s.cursor.Row, s.cursor.Col
	switch m {
	case MotionLeft:
		if col > 0 {
			col--
		}
	case MotionRight:
		if col < s.buf.LineLen(row) {
			col++
		}
	case MotionUp:
		if row > 0 {
			row--
		}
	case MotionDown:
		if row < s.buf.LineCount()-1 {
			row++
		}
	case MotionWordForward:
		return WordForward(s.buf, s.clampedCursor())
	case MotionWordBackward:
		return WordBackward(s.buf, s.clampedCursor())
	case MotionLineStart:
		col = 0
	case MotionLineEnd:
		col = s.buf.LineLen(row)
	case MotionFirstLine:
		return Position{}
	case MotionLastLine:
		return Position{Row: s.buf.LineCount() - 1, Col: 0}
	}
	return Position{Row: row, Col: col}
}

func (s *Session) moveTo(target Position) {
	s.cursor = s.buf.Clamp(target, s.mode != ModeInsert)
	s.resetDesiredCol()
}

// moveVertical moves one visual row, crossing into the neighbor line
// only from the line's first or last row. desiredCol is reapplied
// against the destination row and survives the move.
func (s *Session) moveVertical(delta int) {
	if s.mode == ModeVisualBlock {
		// Block selections stay rectangular: the column is kept even
		// past shorter lines' ends.
		row := s.cursor.Row + delta
		if row < 0 {
			row = 0
		}
		if last := s.buf.LineCount() - 1; row > last {
			row = last
		}
		s.cursor.Row = row
		return
	}

	normal := s.mode != ModeInsert
	line := s.buf.Line(s.cursor.Row)
	vp := LogicalToVisual(line, s.cursor.Col, s.width)

	targetRow, targetVRow := s.cursor.Row, vp.Row+delta
	if delta < 0 && vp.Row == 0 {
		if s.cursor.Row == 0 {
			return
		}
		targetRow = s.cursor.Row - 1
		targetVRow = lastCursorRow(s.buf.Line(targetRow), s.width, normal)
	} else if delta > 0 && vp.Row >= lastCursorRow(line, s.width, normal) {
		if s.cursor.Row == s.buf.LineCount()-1 {
			return
		}
		targetRow = s.cursor.Row + 1
		targetVRow = 0
	}

	col := VisualToLogical(s.buf.Line(targetRow), VisualPos{Row: targetVRow, Col: s.desiredCol}, s.width)
	s.cursor = s.buf.Clamp(Position{Row: targetRow, Col: col}, normal)
}

func (s *Session) resetDesiredCol() {
	pos := s.buf.Clamp(s.cursor, false)
	s.desiredCol = LogicalToVisual(s.buf.Line(pos.Row), pos.Col, s.width).Col
}

func (s *Session) clampedCursor() Position {
	return s.buf.Clamp(s.cursor, false)
}

func (s *Session) enterInsert(deferRecord bool) {
	s.mode = ModeInsert
	s.insertPending = deferRecord
	s.resetDesiredCol()
}

func (s *Session) enterVisual(kind VisualKind) {
	anchor := s.buf.Clamp(s.cursor, true)
	s.cursor = anchor
	s.visual = &Selection{Kind: kind, Anchor: anchor}
	switch kind {
	case VisualCharacter:
		s.mode = ModeVisualChar
	case VisualLine:
		s.mode = ModeVisualLine
	case VisualBlock:
		s.mode = ModeVisualBlock
	}
}

func (s *Session) exitVisual() {
	s.visual = nil
	s.mode = ModeNormal
	s.cursor = s.buf.Clamp(s.cursor, true)
}

// touch marks the buffer changed: the dirty flag is raised and any
// search matches are stale until recomputed.
func (s *Session) touch() {
	s.dirty = true
	s.search.Invalidate()
}

func (s *Session) recordUndo() {
	s.history.RecordBefore(s.buf, s.cursor)
}

// insertTouch records the undo snapshot lazily: the first edit of an
// insert session captures the pre-session state, so the whole session
// undoes as one step.
func (s *Session) insertTouch() {
	if s.insertPending {
		s.insertPending = false
		s.recordUndo()
	}
}

func (s *Session) handleInsertKey(key string) Event {
	switch key {
	case "esc", "ctrl+c":
		s.mode = ModeNormal
		s.insertPending = false
		if s.cursor.Col > 0 {
			s.cursor.Col--
		}
		s.cursor = s.buf.Clamp(s.cursor, true)
		s.resetDesiredCol()
	case "enter":
		s.insertTouch()
		s.splitWithContinuation()
		s.resetDesiredCol()
	case "backspace":
		s.insertTouch()
		if s.cursor.Col > 0 {
			s.buf.DeleteRange(Position{Row: s.cursor.Row, Col: s.cursor.Col - 1}, s.cursor)
			s.cursor.Col--
			s.touch()
		} else if s.cursor.Row > 0 {
			s.cursor = s.buf.JoinLine(s.cursor.Row - 1)
			s.touch()
		}
		s.resetDesiredCol()
	case "tab":
		s.insertTouch()
		s.cursor = s.buf.InsertText(s.cursor, strings.Repeat(" ", s.indentWidth))
		s.touch()
		s.resetDesiredCol()
	case "shift+tab":
		s.insertTouch()
		if removed := s.dedentLine(s.cursor.Row); removed > 0 {
			s.cursor.Col -= removed
			if s.cursor.Col < 0 {
				s.cursor.Col = 0
			}
			s.touch()
		}
		s.resetDesiredCol()
	case "delete":
		s.insertTouch()
		if s.cursor.Col < s.buf.LineLen(s.cursor.Row) {
			s.buf.DeleteRange(s.cursor, Position{Row: s.cursor.Row, Col: s.cursor.Col + 1})
			s.touch()
		}
	case "up":
		s.moveVertical(-1)
	case "down":
		s.moveVertical(1)
	case "left":
		if s.cursor.Col > 0 {
			s.cursor.Col--
		}
		s.resetDesiredCol()
	case "right":
		if s.cursor.Col < s.buf.LineLen(s.cursor.Row) {
			s.cursor.Col++
		}
		s.resetDesiredCol()
	case "home":
		s.cursor.Col = 0
		s.resetDesiredCol()
	case "end":
		s.cursor.Col = s.buf.LineLen(s.cursor.Row)
		s.resetDesiredCol()
	case "ctrl+g":
		return EventExternalEdit
	default:
		if namedKeys[key] || containsPlus(key) {
			return EventNone
		}
		s.insertTouch()
		s.cursor = s.buf.InsertText(s.cursor, key)
		s.touch()
		s.resetDesiredCol()
	}
	return EventNone
}

// splitWithContinuation splits the current line at the cursor. A line
// carrying a list prefix continues the list on the new line; a line
// that is only a prefix drops the prefix instead, leaving two blank
// lines.
func (s *Session) splitWithContinuation() {
	row := s.cursor.Row
	line := s.buf.Line(row)
	prefix, ok := DetectListPrefix(line)

	if ok && PrefixOnly(line) {
		s.buf.SetLine(row, "")
		s.cursor = s.buf.SplitLine(Position{Row: row, Col: 0})
		s.touch()
		return
	}

	pos := s.buf.SplitLine(s.cursor)
	if ok && s.cursor.Col >= prefix.Len() {
		cont := prefix.Continuation()
		s.buf.SetLine(pos.Row, cont+s.buf.Line(pos.Row))
		pos.Col = grapheme.Count(cont)
	}
	s.cursor = pos
	s.touch()
}

func (s *Session) handleSearchKey(key string) Event {
	switch key {
	case "esc":
		s.search = SearchState{}
		s.mode = ModeNormal
	case "enter":
		s.mode = ModeNormal
		if s.search.Pattern == "" {
			return EventNone
		}
		if m, ok := s.search.SeekFrom(s.cursor); ok {
			s.cursor = s.buf.Clamp(Position{Row: m.Row, Col: m.Start}, true)
			s.resetDesiredCol()
		} else {
			s.message = "Pattern not found: " + s.search.Pattern
		}
	case "backspace":
		cs := grapheme.Clusters(s.search.Pattern)
		if len(cs) == 0 {
			s.search = SearchState{}
			s.mode = ModeNormal
			return EventNone
		}
		s.search.Pattern = strings.Join(cs[:len(cs)-1], "")
		s.search.Recompute(s.buf)
	default:
		if namedKeys[key] || containsPlus(key) {
			return EventNone
		}
		s.search.Pattern += key
		s.search.Recompute(s.buf)
	}
	return EventNone
}

func (s *Session) jumpMatch(dir Direction) {
	if s.search.Pattern == "" {
		s.message = "No previous search"
		return
	}
	if !s.search.Valid() {
		s.search.Recompute(s.buf)
	}
	m, ok := s.search.Advance(dir)
	if !ok {
		s.message = "Pattern not found: " + s.search.Pattern
		return
	}
	s.cursor = s.buf.Clamp(Position{Row: m.Row, Col: m.Start}, true)
	s.resetDesiredCol()
}

func (s *Session) deleteChar() {
	row := s.cursor.Row
	if s.buf.LineLen(row) == 0 {
		return
	}
	s.recordUndo()
	deleted := s.buf.DeleteRange(s.cursor, Position{Row: row, Col: s.cursor.Col + 1})
	s.register.SetText(deleted, ShapeCharacter)
	s.cursor = s.buf.Clamp(s.cursor, true)
	s.touch()
}

func (s *Session) deleteLines(r1, r2 int) {
	s.recordUndo()
	s.register.Set(s.linesIn(r1, r2), ShapeLine)
	s.removeLines(r1, r2)
	s.cursor = s.buf.Clamp(Position{Row: r1, Col: s.cursor.Col}, true)
	s.touch()
}

func (s *Session) linesIn(r1, r2 int) []string {
	out := make([]string, 0, r2-r1+1)
	for row := r1; row <= r2; row++ {
		out = append(out, s.buf.Line(row))
	}
	return out
}

func (s *Session) removeLines(r1, r2 int) {
	for i := r1; i <= r2 && r1 < s.buf.LineCount(); i++ {
		s.buf.RemoveLine(r1)
	}
}

func (s *Session) indentPad() string {
	return strings.Repeat(" ", s.indentWidth)
}

func (s *Session) indentLine(row int) {
	line := s.buf.Line(row)
	if line == "" {
		return
	}
	s.buf.SetLine(row, s.indentPad()+line)
}

// dedentLine strips up to indentWidth leading spaces and returns how
// many were removed.
func (s *Session) dedentLine(row int) int {
	line := s.buf.Line(row)
	n := 0
	for n < s.indentWidth && n < len(line) && line[n] == ' ' {
		n++
	}
	s.buf.SetLine(row, line[n:])
	return n
}

// applyOperator resolves an operator over its motion's range. Indent,
// dedent and comment always act linewise; delete and yank act linewise
// only for line motions.
func (s *Session) applyOperator(op Operator, motion Motion) {
	if motion.Linewise() || op == OpIndent || op == OpDedent || op == OpComment {
		r1, r2 := s.motionRowRange(motion)
		switch op {
		case OpDelete:
			s.deleteLines(r1, r2)
		case OpYank:
			s.register.Set(s.linesIn(r1, r2), ShapeLine)
			s.cursor = s.buf.Clamp(Position{Row: r1, Col: s.cursor.Col}, true)
			s.message = "Yanked"
		case OpIndent:
			s.recordUndo()
			for row := r1; row <= r2; row++ {
				s.indentLine(row)
			}
			s.cursor = s.buf.Clamp(s.cursor, true)
			s.touch()
		case OpDedent:
			s.recordUndo()
			for row := r1; row <= r2; row++ {
				s.dedentLine(row)
			}
			s.cursor = s.buf.Clamp(s.cursor, true)
			s.touch()
		case OpComment:
			s.recordUndo()
			ToggleCommentRange(s.buf, r1, r2)
			s.cursor = s.buf.Clamp(s.cursor, true)
			s.touch()
		}
		return
	}

	target := s.motionTarget(motion)
	// A forward word motion that leaves the line stops at its end.
	if motion == MotionWordForward && target.Row != s.cursor.Row {
		target = Position{Row: s.cursor.Row, Col: s.buf.LineLen(s.cursor.Row)}
	}
	start, end := s.clampedCursor(), target
	if end.Less(start) {
		start, end = end, start
	}
	if start == end {
		return
	}

	switch op {
	case OpDelete:
		s.recordUndo()
		deleted := s.buf.DeleteRange(start, end)
		s.register.SetText(deleted, ShapeCharacter)
		s.cursor = s.buf.Clamp(start, true)
		s.touch()
	case OpYank:
		s.register.SetText(s.textRange(start, end), ShapeCharacter)
		s.cursor = s.buf.Clamp(start, true)
		s.message = "Yanked"
	}
}

func (s *Session) motionRowRange(motion Motion) (int, int) {
	row := s.cursor.Row
	switch motion {
	case MotionUp:
		if row > 0 {
			return row - 1, row
		}
		return row, row
	case MotionDown:
		if row < s.buf.LineCount()-1 {
			return row, row + 1
		}
		return row, row
	case MotionFirstLine:
		return 0, row
	case MotionLastLine:
		return row, s.buf.LineCount() - 1
	}
	target := s.motionTarget(motion)
	// A forward word motion never drags a line operator onto the
	// next line.
	if motion == MotionWordForward && target.Row != row {
		return row, row
	}
	if target.Row < row {
		return target.Row, row
	}
	return row, target.Row
}

func (s *Session) textRange(start, end Position) string {
	if end.Less(start) {
		start, end = end, start
	}
	if start.Row == end.Row {
		return grapheme.Slice(s.buf.Line(start.Row), start.Col, end.Col)
	}
	var sb strings.Builder
	first := s.buf.Line(start.Row)
	sb.WriteString(grapheme.Slice(first, start.Col, grapheme.Count(first)))
	for row := start.Row + 1; row < end.Row; row++ {
		sb.WriteString("\n")
		sb.WriteString(s.buf.Line(row))
	}
	sb.WriteString("\n")
	sb.WriteString(grapheme.Slice(s.buf.Line(end.Row), 0, end.Col))
	return sb.String()
}

func (s *Session) paste(after bool) {
	if s.register.Empty() {
		return
	}
	lines, shape := s.register.Get()
	s.recordUndo()

	switch shape {
	case ShapeLine:
		row := s.cursor.Row
		if after {
			row++
		}
		for i, line := range lines {
			s.buf.InsertLine(row+i, line)
		}
		s.cursor = s.buf.Clamp(Position{Row: row, Col: 0}, true)
	case ShapeBlock:
		col := s.cursor.Col
		if after && s.buf.LineLen(s.cursor.Row) > 0 {
			col++
		}
		s.pasteBlock(lines, s.cursor.Row, col)
		s.cursor = s.buf.Clamp(Position{Row: s.cursor.Row, Col: col}, true)
	default:
		pos := s.clampedCursor()
		if after && pos.Col < s.buf.LineLen(pos.Row) {
			pos.Col++
		}
		end := s.buf.InsertText(pos, strings.Join(lines, "\n"))
		s.cursor = s.buf.Clamp(Position{Row: end.Row, Col: end.Col - 1}, true)
	}
	s.touch()
}

// pasteBlock inserts each segment into successive lines at col,
// padding destinations with spaces where they fall short. Lines are
// appended when the block reaches past the document end.
func (s *Session) pasteBlock(segments []string, row, col int) {
	for i, seg := range segments {
		r := row + i
		if r >= s.buf.LineCount() {
			s.buf.InsertLine(s.buf.LineCount(), "")
		}
		line := s.buf.Line(r)
		n := grapheme.Count(line)
		if n < col {
			line += strings.Repeat(" ", col-n)
			n = col
		}
		s.buf.SetLine(r, grapheme.Slice(line, 0, col)+seg+grapheme.Slice(line, col, n))
	}
}

// PasteLiteral inserts externally supplied text at the cursor as one
// undo step, turning embedded line breaks into real splits. This is
// the bracketed-paste path.
func (s *Session) PasteLiteral(text string) {
	if text == "" {
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	if s.mode == ModeInsert {
		s.insertTouch()
	} else {
		s.recordUndo()
	}
	end := s.buf.InsertText(s.clampedCursor(), text)
	s.cursor = s.buf.Clamp(end, s.mode != ModeInsert)
	s.touch()
	s.resetDesiredCol()
}

func (s *Session) coveredRows() (int, int) {
	return s.visual.LineRange(s.cursor)
}

// clampSpan pulls a character span's endpoints inside the buffer. The
// end may sit on the end-of-line slot but never past it.
func (s *Session) clampSpan(span Span) Span {
	span.Start = s.buf.Clamp(span.Start, false)
	span.End.Row = min(span.End.Row, s.buf.LineCount()-1)
	span.End = s.buf.Clamp(span.End, false)
	return span
}

func (s *Session) visualDelete() {
	sel := s.visual
	s.recordUndo()
	switch sel.Kind {
	case VisualLine:
		r1, r2 := sel.LineRange(s.cursor)
		s.register.Set(s.linesIn(r1, r2), ShapeLine)
		s.removeLines(r1, r2)
		s.cursor = s.buf.Clamp(Position{Row: r1, Col: 0}, true)
	case VisualBlock:
		r := sel.Rect(s.cursor)
		s.register.Set(s.blockSegments(r), ShapeBlock)
		for row := r.Top; row <= r.Bottom; row++ {
			n := s.buf.LineLen(row)
			if n <= r.Left {
				continue
			}
			right := min(r.Right+1, n)
			line := s.buf.Line(row)
			s.buf.SetLine(row, grapheme.Slice(line, 0, r.Left)+grapheme.Slice(line, right, n))
		}
		s.cursor = s.buf.Clamp(Position{Row: r.Top, Col: r.Left}, true)
	default:
		span := s.clampSpan(sel.CharSpan(s.cursor))
		deleted := s.buf.DeleteRange(span.Start, span.End)
		s.register.SetText(deleted, ShapeCharacter)
		s.cursor = s.buf.Clamp(span.Start, true)
	}
	s.exitVisual()
	s.touch()
}

func (s *Session) visualYank() {
	sel := s.visual
	switch sel.Kind {
	case VisualLine:
		r1, r2 := sel.LineRange(s.cursor)
		s.register.Set(s.linesIn(r1, r2), ShapeLine)
		s.cursor = s.buf.Clamp(Position{Row: r1, Col: s.cursor.Col}, true)
	case VisualBlock:
		r := sel.Rect(s.cursor)
		s.register.Set(s.blockSegments(r), ShapeBlock)
		s.cursor = s.buf.Clamp(Position{Row: r.Top, Col: r.Left}, true)
	default:
		span := s.clampSpan(sel.CharSpan(s.cursor))
		s.register.SetText(s.textRange(span.Start, span.End), ShapeCharacter)
		s.cursor = s.buf.Clamp(span.Start, true)
	}
	s.exitVisual()
	s.message = "Yanked"
}

// blockSegments captures the rectangle row by row. Lines shorter than
// the left edge contribute an empty segment so the block keeps its
// height.
func (s *Session) blockSegments(r BlockRect) []string {
	segs := make([]string, 0, r.Bottom-r.Top+1)
	for row := r.Top; row <= r.Bottom; row++ {
		n := s.buf.LineLen(row)
		if n <= r.Left {
			segs = append(segs, "")
			continue
		}
		right := min(r.Right+1, n)
		segs = append(segs, grapheme.Slice(s.buf.Line(row), r.Left, right))
	}
	return segs
}

func (s *Session) visualIndent(dir int) {
	r1, r2 := s.coveredRows()
	s.recordUndo()
	for row := r1; row <= r2; row++ {
		if dir > 0 {
			s.indentLine(row)
		} else {
			s.dedentLine(row)
		}
	}
	s.cursor = s.buf.Clamp(Position{Row: r1, Col: s.cursor.Col}, true)
	s.exitVisual()
	s.touch()
}

func (s *Session) visualComment() {
	r1, r2 := s.coveredRows()
	s.recordUndo()
	ToggleCommentRange(s.buf, r1, r2)
	s.cursor = s.buf.Clamp(Position{Row: r1, Col: s.cursor.Col}, true)
	s.exitVisual()
	s.touch()
}

// visualFormat toggles an inline marker pair around the selection. A
// single-line character selection wraps exactly the selected run; any
// other selection wraps each covered line's content past its
// indentation.
func (s *Session) visualFormat(marker string) {
	sel := s.visual
	s.recordUndo()
	if sel.Kind == VisualCharacter && sel.Anchor.Row == s.cursor.Row {
		span := s.clampSpan(sel.CharSpan(s.cursor))
		row := span.Start.Row
		line := s.buf.Line(row)
		n := grapheme.Count(line)
		seg := grapheme.Slice(line, span.Start.Col, span.End.Col)
		s.buf.SetLine(row, grapheme.Slice(line, 0, span.Start.Col)+
			ToggleWrap(seg, marker)+
			grapheme.Slice(line, span.End.Col, n))
		s.cursor = s.buf.Clamp(span.Start, true)
	} else {
		r1, r2 := s.coveredRows()
		for row := r1; row <= r2; row++ {
			line := s.buf.Line(row)
			ws := leadingWhitespace(line)
			rest := line[len(ws):]
			if rest == "" {
				continue
			}
			s.buf.SetLine(row, ws+ToggleWrap(rest, marker))
		}
		s.cursor = s.buf.Clamp(Position{Row: r1, Col: s.cursor.Col}, true)
	}
	s.exitVisual()
	s.touch()
}

func (s *Session) visualCodeFence() {
	r1, r2 := s.coveredRows()
	s.recordUndo()
	ToggleCodeFence(s.buf, r1, r2)
	s.cursor = s.buf.Clamp(Position{Row: r1, Col: s.cursor.Col}, true)
	s.exitVisual()
	s.touch()
}

// blockEnter leaves Visual Block for Insert at the rectangle's top
// left (insert) or just past its right edge (append).
func (s *Session) blockEnter(appendRight bool) {
	r := s.visual.Rect(s.cursor)
	col := r.Left
	if appendRight {
		col = r.Right + 1
	}
	s.exitVisual()
	if n := s.buf.LineLen(r.Top); col > n {
		col = n
	}
	s.cursor = Position{Row: r.Top, Col: col}
	s.enterInsert(true)
}

/// formatAtCursor toggles an inline marker pair at the cursor: inside
// an existing pair it strips the markers, otherwise it inserts an
// empty pair and leaves the cursor between them.
func (s *Session) formatAtCursor(marker string) {
	s.recordUndo()
	line, col := ToggleInlineAt(s.buf.Line(s.cursor.Row), s.cursor.Col, marker)
	s.buf.SetLine(s.cursor.Row, line)
	s.cursor = s.buf.Clamp(Position{Row: s.cursor.Row, Col: col}, false)
	s.touch()
}

// Blocks enumerates the document's contiguous non-blank line runs for
// the distribution pipeline.
func (s *Session) Blocks() []Block {
	var blocks []Block
	start := -1
	for row := 0; row < s.buf.LineCount(); row++ {
		if strings.TrimSpace(s.buf.Line(row)) == "" {
			if start >= 0 {
				blocks = append(blocks, s.makeBlock(start, row-1))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = row
		}
	}
	if start >= 0 {
		blocks = append(blocks, s.makeBlock(start, s.buf.LineCount()-1))
	}
	return blocks
}

func (s *Session) makeBlock(start, end int) Block {
	return Block{
		StartLine: start,
		EndLine:   end,
		Text:      strings.Join(s.linesIn(start, end), "\n"),
	}
}

// WrapRangeAsCommented comments every uncommented non-blank line in
// [startLine, endLine], marking a dispatched block. Skip detection on
// a later pass is the structural comment detector itself.
func (s *Session) WrapRangeAsCommented(startLine, endLine int) {
	if startLine > endLine {
		startLine, endLine = endLine, startLine
	}
	startLine = max(startLine, 0)
	endLine = min(endLine, s.buf.LineCount()-1)
	for row := startLine; row <= endLine; row++ {
		line := s.buf.Line(row)
		if strings.TrimSpace(line) == "" || IsCommented(line) {
			continue
		}
		s.buf.SetLine(row, CommentLine(line))
	}
	s.cursor = s.buf.Clamp(s.cursor, true)
	s.touch()
}

// EnterProcessing snapshots the buffer once for the whole dispatch
// pass and switches to the input-limited Processing mode.
func (s *Session) EnterProcessing() {
	s.recordUndo()
	s.pending = nil
	s.mode = ModeProcessing
}

// FinishProcessing returns to Normal once every block reached a
// terminal status.
func (s *Session) FinishProcessing() {
	if s.mode == ModeProcessing {
		s.mode = ModeNormal
	}
}
