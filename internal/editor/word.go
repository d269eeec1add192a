package editor

import "github.com/kenxcomp/kenotex/internal/grapheme"

// Word motions classify clusters into three runs: whitespace,
// alphanumeric words, and everything else (punctuation). A run of
// either non-space class is one word, and line boundaries always
// break a word.

const (
	classSpace = iota
	classWord
	classOther
)

func wordClass(cluster string) int {
	switch {
	case grapheme.IsSpace(cluster):
		return classSpace
	case grapheme.IsWord(cluster):
		return classWord
	default:
		return classOther
	}
}

// WordForward returns the start of the next word after pos. At the
// end of a line it moves to column 0 of the next line. The returned
// column may equal the line length so operators can target the
// end-of-line slot; plain motions clamp afterwards.
func WordForward(b *Buffer, pos Position) Position {
	row, col := pos.Row, pos.Col
	line := grapheme.Clusters(b.Line(row))

	if col >= len(line) {
		if row+1 < b.LineCount() {
			return Position{Row: row + 1, Col: 0}
		}
		return pos
	}

	if cls := wordClass(line[col]); cls != classSpace {
		for col < len(line) && wordClass(line[col]) == cls {
			col++
		}
	}
	for col < len(line) && wordClass(line[col]) == classSpace {
		col++
	}

	if col >= len(line) && row+1 < b.LineCount() {
		return Position{Row: row + 1, Col: 0}
	}
	return Position{Row: row, Col: col}
}

// WordBackward returns the start of the previous word before pos.
// From column 0 it continues at the end of the previous line.
func WordBackward(b *Buffer, pos Position) Position {
	row, col := pos.Row, pos.Col
	line := grapheme.Clusters(b.Line(row))

	if col == 0 {
		if row == 0 {
			return pos
		}
		row--
		line = grapheme.Clusters(b.Line(row))
		col = len(line)
	}
	col--
	if col < 0 {
		return Position{Row: row, Col: 0}
	}

	for col > 0 && wordClass(line[col]) == classSpace {
		col--
	}
	if cls := wordClass(line[col]); cls != classSpace {
		for col > 0 && wordClass(line[col-1]) == cls {
			col--
		}
	}
	return Position{Row: row, Col: col}
}
