// Package editor implements the modal editing engine: a document buffer,
// wrap-aware cursor math, clipboard register, snapshot undo, incremental
// search, structural toggles, and a key-sequence resolver driving it all.
// The package has no terminal dependency; the TUI feeds it key tokens and
// renders from its accessors.
package editor

import "fmt"

// Mode is the active editing mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisualChar
	ModeVisualLine
	ModeVisualBlock
	ModeSearch
	ModeConfirmDelete
	ModeProcessing
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeVisualChar:
		return "VISUAL"
	case ModeVisualLine:
		return "V-LINE"
	case ModeVisualBlock:
		return "V-BLOCK"
	case ModeSearch:
		return "SEARCH"
	case ModeConfirmDelete:
		return "CONFIRM"
	case ModeProcessing:
		return "PROCESSING"
	}
	return "UNKNOWN"
}

// IsVisual reports whether m is one of the three visual modes.
func (m Mode) IsVisual() bool {
	return m == ModeVisualChar || m == ModeVisualLine || m == ModeVisualBlock
}

// Position addresses a buffer location as (row, grapheme column).
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Less reports whether p comes before q in document order.
func (p Position) Less(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

// Block is a contiguous run of non-blank lines. EndLine is inclusive.
type Block struct {
	StartLine int
	EndLine   int
	Text      string
}
