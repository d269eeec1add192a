package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kenxcomp/kenotex/internal/distribution"
	"github.com/kenxcomp/kenotex/internal/theme"
	"github.com/mattn/go-runewidth"
)

const overlayWidth = 60

// ProcessingOverlayComponent renders the modal shown while a note's
// blocks are dispatched: one bordered row per block with its status
// icon, target and preview.
type ProcessingOverlayComponent struct {
	results []distribution.Result
	theme   theme.Theme
	width   int
	done    bool
	spinner string
}

// NewProcessingOverlayComponent creates the overlay for the given
// dispatch state. spinner is the footer shown while work remains;
// done switches it to the dismiss hint.
func NewProcessingOverlayComponent(results []distribution.Result, th theme.Theme, width int, done bool, spinner string) ProcessingOverlayComponent {
	return ProcessingOverlayComponent{results: results, theme: th, width: width, done: done, spinner: spinner}
}

func (p ProcessingOverlayComponent) statusIcon(st distribution.Status) (string, lipgloss.Color) {
	switch st {
	case distribution.StatusSent:
		return "+", p.theme.Success
	case distribution.StatusFailed:
		return "x", p.theme.Error
	case distribution.StatusSkipped:
		return "-", p.theme.Warning
	}
	return " ", p.theme.Border
}

func (p ProcessingOverlayComponent) targetIcon(t distribution.Target) (string, lipgloss.Color) {
	switch t {
	case distribution.TargetCalendar:
		return "[c]", p.theme.Error
	case distribution.TargetNote:
		return "[n]", p.theme.Warning
	}
	return "[v]", p.theme.Accent
}

func (p ProcessingOverlayComponent) itemBorder(st distribution.Status) lipgloss.Color {
	switch st {
	case distribution.StatusSent:
		return p.theme.Success
	case distribution.StatusFailed:
		return p.theme.Error
	case distribution.StatusPending:
		return p.theme.Accent
	}
	return p.theme.Border
}

// Render renders the overlay box.
func (p ProcessingOverlayComponent) Render() string {
	boxWidth := overlayWidth
	if p.width > 0 && p.width < boxWidth {
		boxWidth = p.width
	}
	inner := boxWidth - 4

	title := lipgloss.NewStyle().
		Foreground(p.theme.Accent).
		Bold(true).
		Width(inner).
		Align(lipgloss.Center).
		Render("Processing Blocks")

	parts := []string{title}
	for _, r := range p.results {
		parts = append(parts, p.renderItem(r, inner))
	}

	footer := p.spinner
	if p.done {
		footer = "Esc: close"
	}
	parts = append(parts, lipgloss.NewStyle().
		Foreground(p.theme.Border).
		Width(inner).
		Align(lipgloss.Center).
		Render(footer))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.theme.Accent).
		Background(p.theme.Panel).
		Padding(0, 1).
		Render(strings.Join(parts, "\n"))
}

func (p ProcessingOverlayComponent) renderItem(r distribution.Result, width int) string {
	statusIcon, statusColor := p.statusIcon(r.Status)
	targetIcon, targetColor := p.targetIcon(r.Target)
	label := strings.ToUpper(r.Target.String()) + ": "

	head := statusIcon + " " + targetIcon + " " + label
	avail := width - 2 - runewidth.StringWidth(head)
	if avail < 4 {
		avail = 4
	}
	preview := blockPreview(r.Block.Text, avail)

	line := lipgloss.NewStyle().Foreground(statusColor).Bold(true).Render(statusIcon+" ") +
		lipgloss.NewStyle().Foreground(targetColor).Render(targetIcon+" ") +
		lipgloss.NewStyle().Foreground(targetColor).Bold(true).Render(label) +
		lipgloss.NewStyle().Foreground(p.theme.Fg).Render(preview)

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.itemBorder(r.Status)).
		Width(width - 2).
		Render(line)
}

// blockPreview reduces a block to its first line with any target tag
// stripped, truncated to max display cells.
func blockPreview(text string, max int) string {
	first := text
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	for _, tag := range []string{":::td", ":::cal", ":::note"} {
		first = strings.TrimPrefix(first, tag)
	}
	first = strings.TrimSpace(first)
	if runewidth.StringWidth(first) > max {
		return runewidth.Truncate(first, max, "...")
	}
	return first
}

// ConfirmOverlayComponent renders the delete confirmation modal.
type ConfirmOverlayComponent struct {
	title string
	theme theme.Theme
	width int
}

// NewConfirmOverlayComponent creates the confirmation modal for the
// note with the given title.
func NewConfirmOverlayComponent(title string, th theme.Theme, width int) ConfirmOverlayComponent {
	return ConfirmOverlayComponent{title: title, theme: th, width: width}
}

// Render renders the modal box.
func (c ConfirmOverlayComponent) Render() string {
	boxWidth := 42
	if c.width > 4 && c.width-4 < boxWidth {
		boxWidth = c.width - 4
	}
	inner := boxWidth - 4

	title := c.title
	if avail := inner - 10; runewidth.StringWidth(title) > avail && avail > 3 {
		title = runewidth.Truncate(title, avail, "...")
	}

	header := lipgloss.NewStyle().
		Foreground(c.theme.Warning).
		Bold(true).
		Width(inner).
		Align(lipgloss.Center).
		Render("Confirm Delete")

	fg := lipgloss.NewStyle().Foreground(c.theme.Fg)
	warn := lipgloss.NewStyle().Foreground(c.theme.Warning).Bold(true)
	question := fg.Render("Delete '") + warn.Render(title) + fg.Render("'?")

	key := lipgloss.NewStyle().Foreground(c.theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(c.theme.Border)
	keys := key.Render("y") + dim.Render(": Yes  ") + key.Render("n/Esc") + dim.Render(": No")

	center := lipgloss.NewStyle().Width(inner).Align(lipgloss.Center)
	body := header + "\n" + center.Render(question) + "\n" + center.Render(keys)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.theme.Warning).
		Background(c.theme.Panel).
		Padding(0, 1).
		Render(body)
}
