package editor

import (
	"fmt"
	"strings"

	"github.com/kenxcomp/kenotex/internal/grapheme"
)

// Buffer owns the document lines. All column arguments are grapheme
// cluster counts. Addressing a position outside the document is a
// caller bug and panics; callers clamp before invoking.
type Buffer struct {
	lines []string
}

// NewBuffer returns a buffer holding one empty line.
func NewBuffer() *Buffer {
	return &Buffer{lines: []string{""}}
}

// FromText builds a buffer from text split on newlines. The empty
// document is one empty line.
func FromText(text string) *Buffer {
	return &Buffer{lines: strings.Split(text, "\n")}
}

// Text joins the lines back into a single document string.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines, always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the content of row.
func (b *Buffer) Line(row int) string {
	b.checkRow(row)
	return b.lines[row]
}

// LineLen returns the grapheme count of row.
func (b *Buffer) LineLen(row int) int {
	b.checkRow(row)
	return grapheme.Count(b.lines[row])
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// SetLine replaces the content of row.
func (b *Buffer) SetLine(row int, text string) {
	b.checkRow(row)
	b.lines[row] = text
}

// InsertLine inserts text as a new line at row, shifting rows down.
// row may equal LineCount to append.
func (b *Buffer) InsertLine(row int, text string) {
	if row < 0 || row > len(b.lines) {
		panic(fmt.Sprintf("editor: insert line %d outside document of %d lines", row, len(b.lines)))
	}
	b.lines = append(b.lines, "")
	copy(b.lines[row+1:], b.lines[row:])
	b.lines[row] = text
}

// RemoveLine deletes row. Removing the last remaining line leaves one
// empty line so the document is never empty.
func (b *Buffer) RemoveLine(row int) {
	b.checkRow(row)
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
}

// InsertText inserts text at pos and returns the position just past
// the insertion. Embedded newlines become real line splits.
func (b *Buffer) InsertText(pos Position, text string) Position {
	b.checkPos(pos)
	if text == "" {
		return pos
	}

	line := b.lines[pos.Row]
	before := grapheme.Slice(line, 0, pos.Col)
	after := grapheme.Slice(line, pos.Col, grapheme.Count(line))

	if !strings.Contains(text, "\n") {
		b.lines[pos.Row] = before + text + after
		return Position{Row: pos.Row, Col: pos.Col + grapheme.Count(text)}
	}

	parts := strings.Split(text, "\n")
	b.lines[pos.Row] = before + parts[0]
	for i := 1; i < len(parts); i++ {
		b.InsertLine(pos.Row+i, parts[i])
	}
	lastRow := pos.Row + len(parts) - 1
	lastCol := grapheme.Count(parts[len(parts)-1])
	b.lines[lastRow] += after
	return Position{Row: lastRow, Col: lastCol}
}

// DeleteRange removes [start, end) and returns the deleted text.
// The range may span lines; end is exclusive.
func (b *Buffer) DeleteRange(start, end Position) string {
	b.checkPos(start)
	b.checkPos(end)
	if end.Less(start) {
		start, end = end, start
	}

	if start.Row == end.Row {
		line := b.lines[start.Row]
		deleted := grapheme.Slice(line, start.Col, end.Col)
		b.lines[start.Row] = grapheme.Slice(line, 0, start.Col) +
			grapheme.Slice(line, end.Col, grapheme.Count(line))
		return deleted
	}

	first := b.lines[start.Row]
	last := b.lines[end.Row]

	var sb strings.Builder
	sb.WriteString(grapheme.Slice(first, start.Col, grapheme.Count(first)))
	for row := start.Row + 1; row < end.Row; row++ {
		sb.WriteString("\n")
		sb.WriteString(b.lines[row])
	}
	sb.WriteString("\n")
	sb.WriteString(grapheme.Slice(last, 0, end.Col))

	b.lines[start.Row] = grapheme.Slice(first, 0, start.Col) +
		grapheme.Slice(last, end.Col, grapheme.Count(last))
	b.lines = append(b.lines[:start.Row+1], b.lines[end.Row+1:]...)
	return sb.String()
}

// SplitLine breaks the line at pos into two lines and returns the
// start of the new line.
func (b *Buffer) SplitLine(pos Position) Position {
	b.checkPos(pos)
	line := b.lines[pos.Row]
	before := grapheme.Slice(line, 0, pos.Col)
	after := grapheme.Slice(line, pos.Col, grapheme.Count(line))
	b.lines[pos.Row] = before
	b.InsertLine(pos.Row+1, after)
	return Position{Row: pos.Row + 1, Col: 0}
}

// JoinLine appends row+1 onto row and returns the join seam position.
// Joining the last line is a no-op.
func (b *Buffer) JoinLine(row int) Position {
	b.checkRow(row)
	if row+1 >= len(b.lines) {
		return Position{Row: row, Col: grapheme.Count(b.lines[row])}
	}
	seam := grapheme.Count(b.lines[row])
	b.lines[row] += b.lines[row+1]
	b.lines = append(b.lines[:row+1], b.lines[row+2:]...)
	return Position{Row: row, Col: seam}
}

// Clamp returns pos moved to the nearest valid location. When
// normalMode is true the column is held before the end-of-line slot
// on non-empty lines.
func (b *Buffer) Clamp(pos Position, normalMode bool) Position {
	if pos.Row < 0 {
		pos.Row = 0
	}
	if pos.Row >= len(b.lines) {
		pos.Row = len(b.lines) - 1
	}
	maxCol := grapheme.Count(b.lines[pos.Row])
	if normalMode && maxCol > 0 {
		maxCol--
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if pos.Col > maxCol {
		pos.Col = maxCol
	}
	return pos
}

func (b *Buffer) checkRow(row int) {
	if row < 0 || row >= len(b.lines) {
		panic(fmt.Sprintf("editor: row %d outside document of %d lines", row, len(b.lines)))
	}
}

func (b *Buffer) checkPos(pos Position) {
	b.checkRow(pos.Row)
	if pos.Col < 0 || pos.Col > grapheme.Count(b.lines[pos.Row]) {
		panic(fmt.Sprintf("editor: column %d outside line %d of length %d",
			pos.Col, pos.Row, grapheme.Count(b.lines[pos.Row])))
	}
}
