package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kenxcomp/kenotex/internal/editor"
	"github.com/kenxcomp/kenotex/internal/tui/components"
)

// View renders the full frame: content pane, optional hint bar, and
// the two-row status bar. Overlays replace the content pane.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	th := m.themes.Current()
	contentHeight := m.contentHeight()
	mode := m.displayMode()

	var content string
	switch {
	case m.plan != nil:
		overlay := components.NewProcessingOverlayComponent(m.plan, th, m.width, m.dispatchDone, m.spinner.Render())
		content = lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, overlay.Render())
	case m.pendingDelete != nil:
		overlay := components.NewConfirmOverlayComponent(m.pendingDelete.title, th, m.width)
		content = lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, overlay.Render())
	case m.view == components.ViewEditor:
		ev := components.NewEditorViewComponent(m.session, th, m.width, contentHeight)
		content = ev.Render(ev.EnsureVisible(m.scroll))
	default:
		content = m.activeList().Render(th, m.width, contentHeight)
	}

	parts := []string{content}

	if m.showHints {
		hints := components.NewHintBarComponent(mode, m.view, th, m.width)
		if m.view == components.ViewEditor {
			pending := m.session.Pending()
			hints.SetLeaderPending(pending != "" && strings.HasPrefix(pending, m.keymap.Leader()))
		}
		parts = append(parts, hints.Render())
	}

	status := components.NewStatusBarComponent(mode, m.view, th, m.width)
	status.SetMessage(m.session.Message())
	if m.view == components.ViewEditor {
		if m.session.Mode() == editor.ModeSearch {
			status.SetSearch(m.session.SearchPattern())
		}
		status.SetPercent(m.percentThrough())
	}
	if m.filterActive {
		status.SetPrompt(m.filter.View())
	}
	if m.hasNote {
		status.SetFile(m.current.Title, m.session.Dirty())
	}
	parts = append(parts, status.Render())

	return strings.Join(parts, "\n")
}
