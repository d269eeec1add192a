package editor

import "strings"

// IsCommented reports whether line is structurally commented: its
// trimmed content is enclosed by <!-- and -->.
func IsCommented(line string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= 7 &&
		strings.HasPrefix(trimmed, "<!--") &&
		strings.HasSuffix(trimmed, "-->")
}

// CommentLine wraps line in comment markers, keeping indentation
// outside the markers. Blank lines come back unchanged.
func CommentLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return line
	}
	return leadingWhitespace(line) + "<!-- " + trimmed + " -->"
}

// UncommentLine strips the comment markers and one optional space
// inside each. Lines that are not commented come back unchanged.
func UncommentLine(line string) string {
	if !IsCommented(line) {
		return line
	}
	trimmed := strings.TrimSpace(line)
	inner := trimmed[len("<!--") : len(trimmed)-len("-->")]
	inner = strings.TrimPrefix(inner, " ")
	inner = strings.TrimSuffix(inner, " ")
	return leadingWhitespace(line) + inner
}

// ToggleCommentLine flips a single line between commented and
// uncommented.
func ToggleCommentLine(line string) string {
	if IsCommented(line) {
		return UncommentLine(line)
	}
	return CommentLine(line)
}

// ToggleCommentRange applies majority-vote toggling over rows
// [startRow, endRow]: when every non-empty line is commented, all are
// uncommented; otherwise the uncommented non-empty lines are
// commented and already-commented lines are left alone. Blank lines
// never vote and are never touched.
func ToggleCommentRange(b *Buffer, startRow, endRow int) {
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}

	allCommented := true
	sawContent := false
	for row := startRow; row <= endRow; row++ {
		line := b.Line(row)
		if strings.TrimSpace(line) == "" {
			continue
		}
		sawContent = true
		if !IsCommented(line) {
			allCommented = false
			break
		}
	}
	if !sawContent {
		return
	}

	for row := startRow; row <= endRow; row++ {
		line := b.Line(row)
		if strings.TrimSpace(line) == "" {
			continue
		}
		if allCommented {
			b.SetLine(row, UncommentLine(line))
		} else if !IsCommented(line) {
			b.SetLine(row, CommentLine(line))
		}
	}
}
