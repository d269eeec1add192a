package editor

// ActionKind enumerates every editing action a key sequence can
// resolve to. Application-level intents (save, quit, processing) are
// also actions; the session surfaces them to the caller as events
// instead of handling them itself.
type ActionKind int

const (
	ActNone ActionKind = iota

	// Motions
	ActMoveLeft
	ActMoveRight
	ActMoveUp
	ActMoveDown
	ActWordForward
	ActWordBackward
	ActLineStart
	ActLineEnd
	ActFirstLine
	ActLastLine

	// Insert-mode entry
	ActInsert
	ActInsertLineStart
	ActAppend
	ActAppendLineEnd
	ActOpenBelow
	ActOpenAbove

	// Mode changes
	ActVisualChar
	ActVisualLine
	ActVisualBlock
	ActSearchStart

	// Edits
	ActDeleteChar
	ActDeleteLine
	ActYankLine
	ActIndentLine
	ActDedentLine
	ActToggleCommentLine
	ActPasteAfter
	ActPasteBefore
	ActUndo
	ActRedo

	// Operator plus motion, composed by the resolver
	ActOperatorMotion

	// Visual-mode operations
	ActVisualDelete
	ActVisualYank
	ActVisualIndent
	ActVisualDedent
	ActVisualComment
	ActVisualBold
	ActVisualItalic
	ActVisualStrike
	ActVisualCode
	ActVisualCodeFence
	ActBlockInsert
	ActBlockAppend

	// Search navigation
	ActSearchNext
	ActSearchPrev

	// Inline formatting at the cursor
	ActFormatBold
	ActFormatItalic
	ActFormatStrike
	ActFormatCode
	ActFormatCodeFence

	// Checkbox helpers
	ActCheckboxToggle
	ActCheckboxInsert

	// Application intents surfaced as events
	ActThemeCycle
	ActProcess
	ActOpenList
	ActNewNote
	ActSave
	ActQuit
	ActExternalEdit
	ActToggleHints
	ActReload
)

// Operator identifies a pending command awaiting a motion.
type Operator int

const (
	OpNone Operator = iota
	OpDelete
	OpYank
	OpIndent
	OpDedent
	OpComment
)

// Motion identifies a cursor movement usable as an operator target.
type Motion int

const (
	MotionNone Motion = iota
	MotionLeft
	MotionRight
	MotionUp
	MotionDown
	MotionWordForward
	MotionWordBackward
	MotionLineStart
	MotionLineEnd
	MotionFirstLine
	MotionLastLine
)

// Linewise reports whether the motion selects whole lines when used
// as an operator target.
func (m Motion) Linewise() bool {
	switch m {
	case MotionUp, MotionDown, MotionFirstLine, MotionLastLine:
		return true
	}
	return false
}

// Action is a fully resolved command. Op and Motion are only set for
// ActOperatorMotion.
type Action struct {
	Kind   ActionKind
	Op     Operator
	Motion Motion
}
