package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/kenxcomp/kenotex/internal/note"
	"github.com/kenxcomp/kenotex/internal/theme"
	"github.com/mattn/go-runewidth"
)

// NoteList is the stateful model behind the draft and archive list
// views: the loaded notes, a case-insensitive filter over title and
// content, the selection, and per-note marks.
type NoteList struct {
	notes    []note.Note
	filtered []int
	selected int
	query    string
	marked   map[string]bool
	archive  bool
}

// NewNoteList creates an empty list. archive switches the rendering
// to the archive styling and empty text.
func NewNoteList(archive bool) *NoteList {
	return &NoteList{marked: make(map[string]bool), archive: archive}
}

// SetNotes replaces the backing notes, reapplying the filter and
// dropping marks for notes that no longer exist.
func (l *NoteList) SetNotes(notes []note.Note) {
	l.notes = notes
	ids := make(map[string]bool, len(notes))
	for _, n := range notes {
		ids[n.ID] = true
	}
	for id := range l.marked {
		if !ids[id] {
			delete(l.marked, id)
		}
	}
	l.applyFilter()
}

func (l *NoteList) applyFilter() {
	l.filtered = l.filtered[:0]
	if l.query == "" {
		for i := range l.notes {
			l.filtered = append(l.filtered, i)
		}
	} else {
		q := strings.ToLower(l.query)
		for i, n := range l.notes {
			if strings.Contains(strings.ToLower(n.Title), q) ||
				strings.Contains(strings.ToLower(n.Content), q) {
				l.filtered = append(l.filtered, i)
			}
		}
	}
	if l.selected >= len(l.filtered) {
		l.selected = len(l.filtered) - 1
		if l.selected < 0 {
			l.selected = 0
		}
	}
}

// Query returns the active filter query.
func (l *NoteList) Query() string {
	return l.query
}

// SetQuery replaces the filter query and refilters.
func (l *NoteList) SetQuery(q string) {
	l.query = q
	l.applyFilter()
}

// ClearQuery drops the filter.
func (l *NoteList) ClearQuery() {
	l.SetQuery("")
}

// MoveUp moves the selection up within the filtered notes.
func (l *NoteList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the selection down within the filtered notes.
func (l *NoteList) MoveDown() {
	if l.selected < len(l.filtered)-1 {
		l.selected++
	}
}

// Selected returns the note under the selection.
func (l *NoteList) Selected() (note.Note, bool) {
	if l.selected < 0 || l.selected >= len(l.filtered) {
		return note.Note{}, false
	}
	return l.notes[l.filtered[l.selected]], true
}

// SelectedIndex returns the selection offset within the filtered
// notes.
func (l *NoteList) SelectedIndex() int {
	return l.selected
}

// RemoveSelected removes the selected note from the list and returns
// it. The selection clamps to the remaining notes.
func (l *NoteList) RemoveSelected() (note.Note, bool) {
	if l.selected < 0 || l.selected >= len(l.filtered) {
		return note.Note{}, false
	}
	idx := l.filtered[l.selected]
	removed := l.notes[idx]
	l.notes = append(l.notes[:idx], l.notes[idx+1:]...)
	l.applyFilter()
	if l.selected >= len(l.filtered) && l.selected > 0 {
		l.selected--
	}
	return removed, true
}

// ToggleMark flips the mark on the selected note.
func (l *NoteList) ToggleMark() {
	if n, ok := l.Selected(); ok {
		l.marked[n.ID] = !l.marked[n.ID]
	}
}

// Len returns how many notes pass the filter.
func (l *NoteList) Len() int {
	return len(l.filtered)
}

// TotalCount returns how many notes the list holds before filtering.
func (l *NoteList) TotalCount() int {
	return len(l.notes)
}

// Empty reports whether no notes pass the filter.
func (l *NoteList) Empty() bool {
	return len(l.filtered) == 0
}

// Render draws the header box and the note rows, following the
// selection when it scrolls out of view.
func (l *NoteList) Render(th theme.Theme, width, height int) string {
	if width < 8 || height < 7 {
		return ""
	}
	inner := width - 2

	frame := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(th.Border).
		Width(inner)

	label, labelColor := " Drafts ", th.Accent
	if l.archive {
		label, labelColor = " Archive ", th.Warning
	}
	count := fmt.Sprintf("(%d items)", l.TotalCount())
	if l.query != "" {
		count = fmt.Sprintf("(%d/%d) /%s", len(l.filtered), l.TotalCount(), l.query)
	}
	headerText := lipgloss.NewStyle().Foreground(labelColor).Bold(true).Render(label) +
		lipgloss.NewStyle().Foreground(th.Border).Render(count)
	header := frame.Render(headerText)

	bodyRows := height - 3 - 2
	if bodyRows < 1 {
		bodyRows = 1
	}

	if l.Empty() {
		empty := "No drafts. Press 'n' to create one."
		if l.archive {
			empty = "No archived notes."
		}
		body := frame.Height(bodyRows).Render(
			lipgloss.NewStyle().Foreground(th.Border).Render(empty))
		return header + "\n" + body
	}

	start := 0
	if l.selected >= bodyRows {
		start = l.selected - bodyRows + 1
	}

	rows := make([]string, 0, bodyRows)
	for i := start; i < len(l.filtered) && len(rows) < bodyRows; i++ {
		rows = append(rows, l.renderRow(th, inner, i))
	}
	body := frame.Height(bodyRows).Render(strings.Join(rows, "\n"))
	return header + "\n" + body
}

func (l *NoteList) renderRow(th theme.Theme, width, i int) string {
	n := l.notes[l.filtered[i]]
	isSelected := i == l.selected

	row := lipgloss.NewStyle().Foreground(th.Fg)
	if isSelected {
		row = row.Background(th.Selection)
	}

	prefix := "  "
	if isSelected {
		prefix = "> "
	}
	marker := ""
	if l.archive {
		marker = "@ "
	} else if l.marked[n.ID] {
		marker = "* "
	}

	when := relativeTime(n.UpdatedAt, time.Now())
	avail := width - runewidth.StringWidth(prefix) - runewidth.StringWidth(marker) -
		runewidth.StringWidth(when) - 1
	title := n.Title
	if avail < 1 {
		avail = 1
	}
	if runewidth.StringWidth(title) > avail {
		title = runewidth.Truncate(title, avail, "…")
	}

	gap := width - runewidth.StringWidth(prefix) - runewidth.StringWidth(marker) -
		runewidth.StringWidth(title) - runewidth.StringWidth(when)
	if gap < 1 {
		gap = 1
	}

	markerStyle := row.Foreground(th.Warning)
	timeStyle := row.Foreground(th.Border)
	return row.Render(prefix) +
		markerStyle.Render(marker) +
		row.Bold(true).Render(title) +
		row.Render(strings.Repeat(" ", gap)) +
		timeStyle.Render(when)
}

// relativeTime formats how long ago t was against now, falling back
// to the date for anything older than a week.
func relativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
	return t.Format("2006-01-02")
}
