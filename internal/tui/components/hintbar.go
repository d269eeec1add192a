package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kenxcomp/kenotex/internal/editor"
	"github.com/kenxcomp/kenotex/internal/theme"
	"github.com/mattn/go-runewidth"
)

type hint struct {
	key  string
	desc string
}

// HintBarComponent renders a single row of contextual key hints for
// the active view and mode. While a leader sequence is pending it
// switches to the leader command list.
type HintBarComponent struct {
	mode          editor.Mode
	view          View
	theme         theme.Theme
	width         int
	leaderPending bool
}

// NewHintBarComponent creates a hint bar for the given mode and view.
func NewHintBarComponent(mode editor.Mode, view View, th theme.Theme, width int) *HintBarComponent {
	return &HintBarComponent{mode: mode, view: view, theme: th, width: width}
}

// SetLeaderPending switches the bar to the leader command hints.
func (h *HintBarComponent) SetLeaderPending(pending bool) {
	h.leaderPending = pending
}

var leaderHints = []hint{
	{"s", "Process"},
	{"l", "List"},
	{"nn", "New"},
	{"w", "Save"},
	{"q", "Quit"},
	{"e", "ExtEdit"},
	{"r", "Reload"},
	{"h", "Hints"},
	{"t", "Checkbox"},
	{"T", "AddBox"},
	{"b", "Bold"},
	{"i", "Italic"},
	{"x", "Strike"},
	{"c", "Code"},
	{"f", "Fence"},
}

func (h *HintBarComponent) hints() []hint {
	if h.leaderPending {
		return leaderHints
	}

	switch {
	case h.mode == editor.ModeSearch:
		return []hint{{"Enter", "Confirm"}, {"Esc", "Cancel"}}
	case h.mode == editor.ModeConfirmDelete:
		return []hint{{"y/Enter", "Confirm"}, {"n/Esc", "Cancel"}}
	}

	switch h.view {
	case ViewEditor:
		switch h.mode {
		case editor.ModeNormal:
			return []hint{
				{"Space", "Leader"},
				{"i", "Insert"},
				{"v", "Visual"},
				{"dd", "DelLine"},
				{"yy", "Yank"},
				{"p", "Paste"},
				{"u", "Undo"},
				{"gcc", "Comment"},
				{"/", "Search"},
				{"^Q", "Quit"},
			}
		case editor.ModeInsert:
			return []hint{{"Esc", "Normal"}, {"^G", "ExtEdit"}}
		case editor.ModeVisualChar, editor.ModeVisualLine, editor.ModeVisualBlock:
			return []hint{
				{"Esc", "Normal"},
				{"d", "Delete"},
				{"y", "Yank"},
				{"gc", "Comment"},
				{"Space", "Format"},
				{"hjkl", "Move"},
			}
		}
	case ViewDraftList:
		return []hint{
			{"j/k", "Nav"},
			{"Enter", "Open"},
			{"a", "Archive"},
			{"d", "Delete"},
			{"n", "New"},
			{"A", "Archives"},
			{"/", "Search"},
		}
	case ViewArchiveList:
		return []hint{
			{"j/k", "Nav"},
			{"Enter", "View"},
			{"r", "Restore"},
			{"d", "Delete"},
			{"Esc", "Back"},
		}
	}
	return nil
}

// Render renders the hint row padded to the bar width. Hints that do
// not fit are dropped from the right.
func (h *HintBarComponent) Render() string {
	panel := lipgloss.NewStyle().Background(h.theme.Panel)
	keyStyle := panel.Foreground(h.theme.Accent).Bold(true)
	dimStyle := panel.Foreground(h.theme.Border)

	var sb strings.Builder
	sb.WriteString(panel.Render(" "))
	used := 1

	for i, hn := range h.hints() {
		sep := ""
		if i > 0 {
			sep = " │ "
		}
		need := runewidth.StringWidth(sep) + runewidth.StringWidth(hn.key) + 1 + runewidth.StringWidth(hn.desc)
		if used+need > h.width {
			break
		}
		if sep != "" {
			sb.WriteString(dimStyle.Render(sep))
		}
		sb.WriteString(keyStyle.Render(hn.key))
		sb.WriteString(dimStyle.Render(" " + hn.desc))
		used += need
	}

	if used < h.width {
		sb.WriteString(panel.Render(strings.Repeat(" ", h.width-used)))
	}
	return sb.String()
}
