package components

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kenxcomp/kenotex/internal/editor"
	"github.com/kenxcomp/kenotex/internal/grapheme"
	"github.com/kenxcomp/kenotex/internal/theme"
	"github.com/mattn/go-runewidth"
)

var (
	headingRE      = regexp.MustCompile(`^#{1,6}\s`)
	checkboxDoneRE = regexp.MustCompile(`^\s*-\s*\[x\]\s?`)
	checkboxOpenRE = regexp.MustCompile(`^\s*-\s*\[\s*\]\s?`)
	smartTagRE     = regexp.MustCompile(`^:::(?:td|cal|note)\s?`)
)

// cellStyle is the resolved style of one grapheme cluster before
// run chunking. Cells with equal styles render as a single run.
type cellStyle struct {
	fg        lipgloss.Color
	bg        lipgloss.Color
	bold      bool
	italic    bool
	faint     bool
	strike    bool
	underline bool
}

type cell struct {
	text  string
	style cellStyle
}

// EditorViewComponent renders the wrapped document with markdown
// highlighting, the active selection, search matches and the cursor.
// Columns are grapheme clusters, matching the engine's cursor math;
// wide clusters may make a row exceed the pane by a few display cells.
type EditorViewComponent struct {
	session *editor.Session
	theme   theme.Theme
	width   int
	height  int
}

// NewEditorViewComponent creates an editor view over session sized to
// the content area.
func NewEditorViewComponent(session *editor.Session, th theme.Theme, width, height int) EditorViewComponent {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return EditorViewComponent{session: session, theme: th, width: width, height: height}
}

// Render renders the viewport starting at visual row scroll.
func (e EditorViewComponent) Render(scroll int) string {
	rows := e.visualRows()

	maxScroll := len(rows) - e.height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}

	out := make([]string, 0, e.height)
	for i := scroll; i < len(rows) && len(out) < e.height; i++ {
		out = append(out, rows[i])
	}
	blank := lipgloss.NewStyle().Background(e.theme.Bg).Render(strings.Repeat(" ", e.width))
	for len(out) < e.height {
		out = append(out, blank)
	}
	return strings.Join(out, "\n")
}

// EnsureVisible adjusts scroll so the cursor's visual row stays inside
// the viewport, clamping to the document's wrapped height.
func (e EditorViewComponent) EnsureVisible(scroll int) int {
	cur := e.CursorVisualRow()
	if cur < scroll {
		return cur
	}
	if cur >= scroll+e.height {
		return cur - e.height + 1
	}
	if scroll < 0 {
		return 0
	}
	if max := e.TotalRows() - e.height; scroll > max {
		if max < 0 {
			max = 0
		}
		return max
	}
	return scroll
}

// CursorVisualRow returns the cursor's row in the wrapped document.
func (e EditorViewComponent) CursorVisualRow() int {
	buf := e.session.Buffer()
	cursor := e.session.Cursor()

	rowsBefore := 0
	for row := 0; row < cursor.Row; row++ {
		rowsBefore += editor.WrapRows(buf.Line(row), e.width)
	}
	line := buf.Line(cursor.Row)
	col := cursor.Col
	if n := grapheme.Count(line); col > n {
		col = n
	}
	return rowsBefore + editor.LogicalToVisual(line, col, e.width).Row
}

// TotalRows returns the wrapped document height in visual rows.
func (e EditorViewComponent) TotalRows() int {
	buf := e.session.Buffer()
	total := 0
	for row := 0; row < buf.LineCount(); row++ {
		total += editor.WrapRows(buf.Line(row), e.width)
	}
	return total
}

func (e EditorViewComponent) visualRows() []string {
	buf := e.session.Buffer()
	lines := buf.Lines()
	fences := FenceFlags(lines)
	cursor := e.session.Cursor()
	mode := e.session.Mode()
	sel, hasSel := e.session.Selection()

	matchesAt := make(map[int][]editor.Match)
	for _, m := range e.session.SearchMatches() {
		matchesAt[m.Row] = append(matchesAt[m.Row], m)
	}

	var rows []string
	for row, line := range lines {
		cells := e.lineCells(line, row, fences[row], cursor, mode)
		cells = e.applyOverlays(cells, row, cursor, mode, sel, hasSel, matchesAt[row])
		rows = append(rows, e.wrapCells(cells, e.padBg(row, fences[row], cursor, mode, sel, hasSel))...)
	}
	return rows
}

// lineCells styles one line's clusters from its markdown structure.
func (e EditorViewComponent) lineCells(line string, row int, inFence bool, cursor editor.Position, mode editor.Mode) []cell {
	base := cellStyle{fg: e.theme.Fg, bg: e.theme.Bg}
	if row == cursor.Row && mode == editor.ModeNormal {
		base.bg = e.theme.Selection
	}

	if inFence {
		st := base
		st.bg = e.theme.Panel
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			st.fg = e.theme.Border
			st.faint = true
		}
		return clusterCells(line, st)
	}

	if m := headingRE.FindString(line); m != "" {
		head := base
		head.fg = e.theme.Accent
		head.bold = true
		return append(clusterCells(m, head), e.tokenCells(line[len(m):], head)...)
	}
	if m := checkboxDoneRE.FindString(line); m != "" {
		pre := base
		pre.fg = e.theme.Success
		pre.faint = true
		pre.strike = true
		done := base
		done.faint = true
		done.strike = true
		return append(clusterCells(m, pre), e.tokenCells(line[len(m):], done)...)
	}
	if m := checkboxOpenRE.FindString(line); m != "" {
		pre := base
		pre.fg = e.theme.Warning
		return append(clusterCells(m, pre), e.tokenCells(line[len(m):], base)...)
	}
	if m := smartTagRE.FindString(line); m != "" {
		pre := base
		pre.fg = e.theme.Error
		pre.italic = true
		return append(clusterCells(m, pre), e.tokenCells(line[len(m):], base)...)
	}
	return e.tokenCells(line, base)
}

func (e EditorViewComponent) tokenCells(text string, base cellStyle) []cell {
	var cells []cell
	for _, tok := range TokenizeInline(text) {
		cells = append(cells, clusterCells(tok.Text, e.tokenStyle(tok.Kind, base))...)
	}
	return cells
}

func (e EditorViewComponent) tokenStyle(kind MdTokenKind, base cellStyle) cellStyle {
	st := base
	switch kind {
	case TokenBold:
		st.fg = e.theme.Accent
		st.bold = true
	case TokenItalic:
		st.italic = true
	case TokenBoldItalic:
		st.fg = e.theme.Accent
		st.bold = true
		st.italic = true
	case TokenStrike:
		st.faint = true
		st.strike = true
	case TokenCode:
		st.fg = e.theme.Warning
		st.bg = e.theme.Panel
	case TokenDelimiter:
		st.faint = true
	case TokenOrderedPrefix, TokenUnorderedPrefix:
		st.fg = e.theme.Border
	}
	return st
}

func clusterCells(text string, st cellStyle) []cell {
	clusters := grapheme.Clusters(text)
	cells := make([]cell, len(clusters))
	for i, c := range clusters {
		cells[i] = cell{text: c, style: st}
	}
	return cells
}

// applyOverlays layers selection, search and cursor styling over the
// markdown cells. Selection and search replace only the background;
// the cursor replaces the whole cell style. Virtual cells are added
// when a block selection or the cursor reaches past the line end.
func (e EditorViewComponent) applyOverlays(cells []cell, row int, cursor editor.Position, mode editor.Mode, sel editor.Selection, hasSel bool, matches []editor.Match) []cell {
	if hasSel && sel.Kind == editor.VisualBlock {
		if r := sel.Rect(cursor); row >= r.Top && row <= r.Bottom {
			pad := cellStyle{fg: e.theme.Fg, bg: e.theme.Bg}
			for len(cells) <= r.Right {
				cells = append(cells, cell{text: " ", style: pad})
			}
		}
	}
	if row == cursor.Row && cursor.Col >= len(cells) {
		pad := cellStyle{fg: e.theme.Fg, bg: e.theme.Bg}
		if mode == editor.ModeNormal {
			pad.bg = e.theme.Selection
		}
		for len(cells) <= cursor.Col {
			cells = append(cells, cell{text: " ", style: pad})
		}
	}

	if hasSel {
		for col := range cells {
			if sel.Contains(editor.Position{Row: row, Col: col}, cursor) {
				cells[col].style.bg = e.theme.Accent
			}
		}
	}
	for _, m := range matches {
		for col := m.Start; col < m.End && col < len(cells); col++ {
			cells[col].style.bg = e.theme.Warning
		}
	}
	if row == cursor.Row && cursor.Col < len(cells) {
		if mode == editor.ModeInsert {
			cells[cursor.Col].style.underline = true
		} else {
			cells[cursor.Col].style = cellStyle{fg: e.theme.Bg, bg: e.theme.Cursor}
		}
	}
	return cells
}

func (e EditorViewComponent) padBg(row int, inFence bool, cursor editor.Position, mode editor.Mode, sel editor.Selection, hasSel bool) lipgloss.Color {
	if hasSel && sel.Kind == editor.VisualLine {
		if top, bottom := sel.LineRange(cursor); row >= top && row <= bottom {
			return e.theme.Accent
		}
	}
	if mode == editor.ModeNormal && row == cursor.Row {
		return e.theme.Selection
	}
	if inFence {
		return e.theme.Panel
	}
	return e.theme.Bg
}

// wrapCells splits a styled line into visual rows of width clusters
// and renders each with trailing padding in the row background.
func (e EditorViewComponent) wrapCells(cells []cell, padBg lipgloss.Color) []string {
	if len(cells) == 0 {
		return []string{e.renderRow(nil, padBg)}
	}
	var rows []string
	for start := 0; start < len(cells); start += e.width {
		end := start + e.width
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, e.renderRow(cells[start:end], padBg))
	}
	return rows
}

func (e EditorViewComponent) renderRow(cells []cell, padBg lipgloss.Color) string {
	var sb strings.Builder
	used := 0
	for i := 0; i < len(cells); {
		j := i
		var run strings.Builder
		for j < len(cells) && cells[j].style == cells[i].style {
			run.WriteString(cells[j].text)
			j++
		}
		text := run.String()
		used += runewidth.StringWidth(text)
		sb.WriteString(styleFor(cells[i].style).Render(text))
		i = j
	}
	if used < e.width {
		sb.WriteString(lipgloss.NewStyle().Background(padBg).Render(strings.Repeat(" ", e.width-used)))
	}
	return sb.String()
}

func styleFor(st cellStyle) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(st.fg).Background(st.bg)
	if st.bold {
		s = s.Bold(true)
	}
	if st.italic {
		s = s.Italic(true)
	}
	if st.faint {
		s = s.Faint(true)
	}
	if st.strike {
		s = s.Strikethrough(true)
	}
	if st.underline {
		s = s.Underline(true)
	}
	return s
}
