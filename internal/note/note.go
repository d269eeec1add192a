// Package note defines the note model shared by storage and the UI.
package note

import (
	"strings"
	"time"

	"github.com/kenxcomp/kenotex/internal/grapheme"
)

const maxTitleLen = 48

// Note is one stored note. ID is the storage filename stem; Content
// is only populated when the note is loaded.
type Note struct {
	ID        string
	Title     string
	Content   string
	UpdatedAt time.Time
	Archived  bool
}

// TitleOf derives a list title from note content: the first non-empty
// line with markdown decoration stripped, truncated. Empty content
// titles as "Untitled".
func TitleOf(content string) string {
	for _, line := range strings.Split(content, "\n") {
		title := strings.TrimSpace(line)
		if title == "" {
			continue
		}
		title = stripDecoration(title)
		if title == "" {
			continue
		}
		if grapheme.Count(title) > maxTitleLen {
			title = grapheme.Slice(title, 0, maxTitleLen) + "…"
		}
		return title
	}
	return "Untitled"
}

// stripDecoration removes heading, list, checkbox and comment markup
// so titles read as plain text.
func stripDecoration(line string) string {
	if strings.HasPrefix(line, "<!--") && strings.HasSuffix(line, "-->") && len(line) >= 7 {
		line = strings.TrimSpace(line[4 : len(line)-3])
	}
	line = strings.TrimLeft(line, "#")
	line = strings.TrimSpace(line)
	for _, prefix := range []string{"- [ ] ", "- [x] ", "- [X] ", "- "} {
		if strings.HasPrefix(line, prefix) {
			line = strings.TrimSpace(line[len(prefix):])
			break
		}
	}
	return strings.Trim(line, "*`~ ")
}
