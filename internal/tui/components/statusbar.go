package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kenxcomp/kenotex/internal/editor"
	"github.com/kenxcomp/kenotex/internal/theme"
	"github.com/mattn/go-runewidth"
)

// View selects which primary screen is active.
type View int

const (
	ViewEditor View = iota
	ViewDraftList
	ViewArchiveList
)

func (v View) String() string {
	switch v {
	case ViewDraftList:
		return "Drafts"
	case ViewArchiveList:
		return "Archive"
	}
	return "Editor"
}

func (v View) icon() string {
	switch v {
	case ViewDraftList:
		return "="
	case ViewArchiveList:
		return "@"
	}
	return "[]"
}

// StatusBarComponent renders the two-row status bar: a transient
// message row (or the live search prompt) above a segment row with
// mode, view, file title and document meta.
type StatusBarComponent struct {
	mode    editor.Mode
	view    View
	theme   theme.Theme
	width   int
	message string
	search  string
	prompt  string
	title   string
	dirty   bool
	percent int
}

// NewStatusBarComponent creates a status bar for the given mode and
// view at the given width.
func NewStatusBarComponent(mode editor.Mode, view View, th theme.Theme, width int) *StatusBarComponent {
	return &StatusBarComponent{mode: mode, view: view, theme: th, width: width, percent: 100}
}

// SetMessage sets the transient message shown on the first row.
func (s *StatusBarComponent) SetMessage(msg string) {
	s.message = msg
}

// SetSearch sets the pattern echoed while Search mode is active.
func (s *StatusBarComponent) SetSearch(pattern string) {
	s.search = pattern
}

// SetPrompt sets an already-styled input view shown on the first row,
// taking precedence over message and search. Used for the list filter.
func (s *StatusBarComponent) SetPrompt(view string) {
	s.prompt = view
}

// SetFile sets the displayed note title and its unsaved marker.
func (s *StatusBarComponent) SetFile(title string, dirty bool) {
	s.title = title
	s.dirty = dirty
}

// SetPercent sets how far through the document the cursor sits.
func (s *StatusBarComponent) SetPercent(p int) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	s.percent = p
}

func (s *StatusBarComponent) modeColor() lipgloss.Color {
	switch s.mode {
	case editor.ModeInsert:
		return s.theme.Success
	case editor.ModeVisualChar, editor.ModeVisualLine, editor.ModeVisualBlock, editor.ModeSearch:
		return s.theme.Warning
	case editor.ModeProcessing, editor.ModeConfirmDelete:
		return s.theme.Error
	}
	return s.theme.Accent
}

// Render renders both rows joined by a newline.
func (s *StatusBarComponent) Render() string {
	return s.messageRow() + "\n" + s.segmentRow()
}

func (s *StatusBarComponent) messageRow() string {
	panel := lipgloss.NewStyle().Background(s.theme.Panel)

	var sb strings.Builder
	used := 0
	if s.prompt != "" {
		sb.WriteString(s.prompt)
		used = lipgloss.Width(s.prompt)
	} else if s.mode == editor.ModeSearch {
		sb.WriteString(panel.Foreground(s.theme.Warning).Render("/"))
		sb.WriteString(panel.Foreground(s.theme.Fg).Render(s.search))
		sb.WriteString(panel.Foreground(s.theme.Cursor).Blink(true).Render("_"))
		used = 2 + runewidth.StringWidth(s.search)
	} else {
		sb.WriteString(panel.Foreground(s.theme.Fg).Render(s.message))
		used = runewidth.StringWidth(s.message)
	}
	if used < s.width {
		sb.WriteString(panel.Render(strings.Repeat(" ", s.width-used)))
	}
	return sb.String()
}

func (s *StatusBarComponent) segmentRow() string {
	modeText := fmt.Sprintf(" %s ", s.mode)
	viewText := fmt.Sprintf(" %s %s ", s.view.icon(), s.view)
	fileText := ""
	if s.title != "" {
		if s.dirty {
			fileText = fmt.Sprintf(" %s* ", s.title)
		} else {
			fileText = fmt.Sprintf(" %s ", s.title)
		}
	}
	metaText := fmt.Sprintf(" utf-8 | markdown | %d%% ", s.percent)
	iconsText := " [v] [c] [n] "

	used := runewidth.StringWidth(modeText) + runewidth.StringWidth(viewText) +
		runewidth.StringWidth(fileText) + runewidth.StringWidth(metaText) +
		runewidth.StringWidth(iconsText)
	gap := s.width - used
	if gap < 0 {
		gap = 0
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().
		Background(s.modeColor()).
		Foreground(s.theme.Bg).
		Bold(true).
		Render(modeText))
	sb.WriteString(lipgloss.NewStyle().
		Background(s.theme.Border).
		Foreground(s.theme.Fg).
		Render(viewText))
	if fileText != "" {
		sb.WriteString(lipgloss.NewStyle().
			Background(s.theme.Selection).
			Foreground(s.theme.Fg).
			Render(fileText))
	}
	sb.WriteString(lipgloss.NewStyle().Background(s.theme.Panel).Render(strings.Repeat(" ", gap)))
	sb.WriteString(lipgloss.NewStyle().
		Background(s.theme.Panel).
		Foreground(s.theme.Border).
		Render(metaText))
	sb.WriteString(lipgloss.NewStyle().
		Background(s.theme.Panel).
		Foreground(s.theme.Border).
		Render(iconsText))
	return sb.String()
}
