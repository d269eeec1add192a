package editor

import (
	"strings"

	"github.com/kenxcomp/kenotex/internal/grapheme"
)

// Inline markers understood by the toggler.
const (
	MarkerBold   = "**"
	MarkerItalic = "*"
	MarkerStrike = "~~"
	MarkerCode   = "`"
)

// markerPositions returns the grapheme column of each occurrence of
// marker in line. For the single-star italic marker, stars that touch
// another star are skipped so bold markers are never misread.
func markerPositions(line, marker string) []int {
	cs := grapheme.Clusters(line)
	mcs := grapheme.Clusters(marker)
	mlen := len(mcs)

	var out []int
	for i := 0; i+mlen <= len(cs); i++ {
		match := true
		for j := 0; j < mlen; j++ {
			if cs[i+j] != mcs[j] {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if marker == MarkerItalic {
			if (i > 0 && cs[i-1] == "*") || (i+1 < len(cs) && cs[i+1] == "*") {
				continue
			}
		}
		out = append(out, i)
		i += mlen - 1
	}
	return out
}

// markerPairs pairs consecutive occurrences: (0,1), (2,3), and so on.
// A trailing unpaired occurrence is ignored.
func markerPairs(line, marker string) [][2]int {
	pos := markerPositions(line, marker)
	var pairs [][2]int
	for i := 0; i+1 < len(pos); i += 2 {
		pairs = append(pairs, [2]int{pos[i], pos[i+1]})
	}
	return pairs
}

// ToggleInlineAt toggles marker at the cursor column of line. When the
// cursor sits within a marker pair (markers included), both markers
// are removed; otherwise an empty pair is inserted and the returned
// column points between the two markers.
func ToggleInlineAt(line string, col int, marker string) (string, int) {
	mlen := grapheme.Count(marker)
	n := grapheme.Count(line)
	if col < 0 {
		col = 0
	}
	if col > n {
		col = n
	}

	for _, pair := range markerPairs(line, marker) {
		start, end := pair[0], pair[1]
		if col < start || col > end+mlen {
			continue
		}
		stripped := grapheme.Slice(line, 0, start) +
			grapheme.Slice(line, start+mlen, end) +
			grapheme.Slice(line, end+mlen, n)
		newCol := col
		if col > end {
			newCol = col - 2*mlen
		} else if col > start {
			newCol = col - mlen
		}
		if newCol < start {
			newCol = start
		}
		return stripped, newCol
	}

	inserted := grapheme.Slice(line, 0, col) + marker + marker + grapheme.Slice(line, col, n)
	return inserted, col + mlen
}

// ToggleWrap wraps text in marker, or unwraps it when text is already
// exactly enclosed by the marker pair.
func ToggleWrap(text, marker string) string {
	if len(text) >= 2*len(marker) &&
		strings.HasPrefix(text, marker) &&
		strings.HasSuffix(text, marker) &&
		!(marker == MarkerItalic && (strings.HasPrefix(text, MarkerBold) || strings.HasSuffix(text, MarkerBold))) {
		return text[len(marker) : len(text)-len(marker)]
	}
	return marker + text + marker
}

func isFenceLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}

// ToggleCodeFence fences rows [startRow, endRow] with ``` lines, or
// removes the bounding fences when the range is already fenced either
// inclusively or immediately outside the range.
func ToggleCodeFence(b *Buffer, startRow, endRow int) {
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}

	if startRow != endRow && isFenceLine(b.Line(startRow)) && isFenceLine(b.Line(endRow)) {
		b.RemoveLine(endRow)
		b.RemoveLine(startRow)
		return
	}
	if startRow > 0 && endRow+1 < b.LineCount() &&
		isFenceLine(b.Line(startRow-1)) && isFenceLine(b.Line(endRow+1)) {
		b.RemoveLine(endRow + 1)
		b.RemoveLine(startRow - 1)
		return
	}

	b.InsertLine(endRow+1, "```")
	b.InsertLine(startRow, "```")
}

// InsertCodeFences inserts an empty fenced block below row and
// returns the cursor position at the end of the opening fence, ready
// for a language tag.
func InsertCodeFences(b *Buffer, row int) Position {
	b.InsertLine(row+1, "```")
	b.InsertLine(row+2, "```")
	return Position{Row: row + 1, Col: 3}
}
