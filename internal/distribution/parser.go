// Package distribution routes note blocks to their destinations:
// checkbox lists become reminders, time-laden text becomes calendar
// events, and everything else lands in a notes app.
package distribution

import (
	"regexp"
	"strings"
)

// Target is where a block gets delivered.
type Target int

const (
	TargetTask Target = iota
	TargetCalendar
	TargetNote
)

func (t Target) String() string {
	switch t {
	case TargetTask:
		return "task"
	case TargetCalendar:
		return "calendar"
	case TargetNote:
		return "note"
	}
	return "unknown"
}

// Explicit routing tags beat every heuristic.
const (
	tagTask     = ":::td"
	tagCalendar = ":::cal"
	tagNote     = ":::note"
)

var (
	englishTimeRE = regexp.MustCompile(`(?i)(tomorrow|today|morning|evening|monday|tuesday|wednesday|thursday|friday|saturday|sunday|daily|weekly|\d{1,2}(am|pm)| at \d)`)
	chineseTimeRE = regexp.MustCompile(`明天|今天|后天|下周|周一|周二|周三|周四|周五|周六|周日|上午|下午|晚上|早上`)
)

// Classify decides a block's target. Explicit tags win, then checkbox
// items, then time expressions in either language. Plain text is a note.
func Classify(text string) Target {
	switch {
	case strings.Contains(text, tagTask):
		return TargetTask
	case strings.Contains(text, tagCalendar):
		return TargetCalendar
	case strings.Contains(text, tagNote):
		return TargetNote
	case hasCheckbox(text):
		return TargetTask
	case englishTimeRE.MatchString(text) || chineseTimeRE.MatchString(text):
		return TargetCalendar
	}
	return TargetNote
}

func hasCheckbox(text string) bool {
	return strings.Contains(text, "- [ ]") || strings.Contains(text, "- []")
}

// IsProcessed reports whether a block was already delivered on an
// earlier run. Sent blocks get wrapped in HTML comments.
func IsProcessed(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "<!--") && strings.HasSuffix(trimmed, "-->")
}

// stripTag removes a routing tag from the first line.
func stripTag(text, tag string) string {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return ""
	}
	lines[0] = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[0]), tag))
	return strings.Join(lines, "\n")
}

// titleBody splits content into a first-line title and the rest.
func titleBody(text string) (string, string) {
	lines := strings.Split(text, "\n")
	title := strings.TrimSpace(lines[0])
	body := strings.TrimSpace(strings.Join(lines[1:], "\n"))
	return title, body
}

// checkboxItems returns the text of each unchecked checkbox line.
func checkboxItems(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, prefix := range []string{"- [ ]", "- []"} {
			if strings.HasPrefix(trimmed, prefix) {
				items = append(items, strings.TrimSpace(strings.TrimPrefix(trimmed, prefix)))
				break
			}
		}
	}
	return items
}
