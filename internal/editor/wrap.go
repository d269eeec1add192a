package editor

import "github.com/kenxcomp/kenotex/internal/grapheme"

// VisualPos is a position within a soft-wrapped line: Row is the
// visual row offset inside the line, Col the column within that row.
type VisualPos struct {
	Row int
	Col int
}

// WrapRows returns how many visual rows line occupies at width.
// An empty line still occupies one row. width <= 0 disables wrapping.
func WrapRows(line string, width int) int {
	n := grapheme.Count(line)
	if n == 0 {
		n = 1
	}
	if width <= 0 {
		return 1
	}
	return (n + width - 1) / width
}

// LogicalToVisual maps grapheme column col to its wrapped position.
// col may equal the line length (the end-of-line slot).
func LogicalToVisual(line string, col, width int) VisualPos {
	if width <= 0 {
		return VisualPos{Row: 0, Col: col}
	}
	return VisualPos{Row: col / width, Col: col % width}
}

// VisualToLogical maps a wrapped position back to a grapheme column,
// clamping to the columns the row actually holds. The end-of-line
// slot is only addressable on the final row.
func VisualToLogical(line string, v VisualPos, width int) int {
	n := grapheme.Count(line)
	if width <= 0 {
		if v.Col < 0 {
			return 0
		}
		if v.Col > n {
			return n
		}
		return v.Col
	}

	maxRow := n / width
	row := v.Row
	if row < 0 {
		row = 0
	}
	if row > maxRow {
		row = maxRow
	}

	maxCol := width - 1
	if row == maxRow {
		maxCol = n - row*width
	}
	col := v.Col
	if col < 0 {
		col = 0
	}
	if col > maxCol {
		col = maxCol
	}
	return row*width + col
}

// WrapSegments splits line into its visual rows. The result always
// holds at least one segment so empty lines still render a row.
func WrapSegments(line string, width int) []string {
	n := grapheme.Count(line)
	if n == 0 || width <= 0 || n <= width {
		return []string{line}
	}
	segs := make([]string, 0, (n+width-1)/width)
	for start := 0; start < n; start += width {
		end := start + width
		if end > n {
			end = n
		}
		segs = append(segs, grapheme.Slice(line, start, end))
	}
	return segs
}

// lastCursorRow returns the highest visual row the cursor can occupy
// on line. Normal mode stops at the last display row; insert mode can
// reach the end-of-line slot's row.
func lastCursorRow(line string, width int, normalMode bool) int {
	n := grapheme.Count(line)
	if width <= 0 || n == 0 {
		return 0
	}
	if normalMode {
		return (n - 1) / width
	}
	return n / width
}
