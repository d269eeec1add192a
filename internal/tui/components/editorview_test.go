package components

import (
	"regexp"
	"strings"
	"testing"

	"github.com/kenxcomp/kenotex/internal/editor"
)

var ansiSeq = regexp.MustCompile("\x1b\\[[0-9;]*m")

func plain(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

func wrappedSession(t *testing.T, text string) *editor.Session {
	t.Helper()
	s := editor.NewSession(editor.NewKeymap(" ", nil))
	s.LoadDocument(text)
	return s
}

// Four logical lines at width 10: 2 + 1 + 1 + 3 visual rows.
const wrapDoc = "abcdefghijklmnopqrst\nshort\n\n0123456789012345678901234"

func TestTotalRowsCountsWrappedLines(t *testing.T) {
	s := wrappedSession(t, wrapDoc)
	ev := NewEditorViewComponent(s, testTheme(), 10, 3)
	if got := ev.TotalRows(); got != 7 {
		t.Fatalf("TotalRows() = %d, want 7", got)
	}
}

func TestCursorVisualRowAcrossWraps(t *testing.T) {
	s := wrappedSession(t, wrapDoc)
	ev := NewEditorViewComponent(s, testTheme(), 10, 3)

	if got := ev.CursorVisualRow(); got != 0 {
		t.Fatalf("CursorVisualRow() at start = %d, want 0", got)
	}

	for i := 0; i < 3; i++ {
		s.HandleKey("j")
	}
	if got := ev.CursorVisualRow(); got != 4 {
		t.Fatalf("CursorVisualRow() on last line = %d, want 4", got)
	}

	s.HandleKey("$")
	if got := ev.CursorVisualRow(); got != 6 {
		t.Fatalf("CursorVisualRow() at line end = %d, want 6", got)
	}
}

func TestEnsureVisibleFollowsCursor(t *testing.T) {
	s := wrappedSession(t, wrapDoc)
	ev := NewEditorViewComponent(s, testTheme(), 10, 3)

	// Cursor on row 0: any scroll past it snaps back up.
	if got := ev.EnsureVisible(5); got != 0 {
		t.Errorf("EnsureVisible(5) with cursor at top = %d, want 0", got)
	}

	for i := 0; i < 3; i++ {
		s.HandleKey("j")
	}
	s.HandleKey("$") // visual row 6

	if got := ev.EnsureVisible(0); got != 4 {
		t.Errorf("EnsureVisible(0) with cursor below = %d, want 4", got)
	}
	if got := ev.EnsureVisible(4); got != 4 {
		t.Errorf("EnsureVisible(4) with cursor visible = %d, want 4", got)
	}
	if got := ev.EnsureVisible(6); got != 4 {
		t.Errorf("EnsureVisible(6) past document end = %d, want 4", got)
	}

	s.HandleKey("0") // back to visual row 4
	if got := ev.EnsureVisible(5); got != 4 {
		t.Errorf("EnsureVisible(5) with cursor above = %d, want 4", got)
	}
	if got := ev.EnsureVisible(3); got != 3 {
		t.Errorf("EnsureVisible(3) with cursor visible = %d, want 3", got)
	}
}

func TestRenderWindowAndPadding(t *testing.T) {
	s := wrappedSession(t, "alpha\nbeta")
	ev := NewEditorViewComponent(s, testTheme(), 20, 4)

	rows := strings.Split(plain(ev.Render(0)), "\n")
	if len(rows) != 4 {
		t.Fatalf("Render produced %d rows, want 4", len(rows))
	}
	if !strings.Contains(rows[0], "alpha") {
		t.Errorf("first row %q missing line text", rows[0])
	}
	if !strings.Contains(rows[1], "beta") {
		t.Errorf("second row %q missing line text", rows[1])
	}

	// Scroll past the end clamps back to the top of a short document.
	if out := plain(ev.Render(99)); !strings.Contains(out, "alpha") {
		t.Error("clamped render lost the document")
	}
}

func TestRenderScrollsWrappedRows(t *testing.T) {
	s := wrappedSession(t, "abcdefghijklmnopqrst\nshort")
	ev := NewEditorViewComponent(s, testTheme(), 10, 2)

	rows := strings.Split(plain(ev.Render(1)), "\n")
	if len(rows) != 2 {
		t.Fatalf("Render produced %d rows, want 2", len(rows))
	}
	if !strings.Contains(rows[0], "klmnopqrst") {
		t.Errorf("scrolled row %q should show the line's second wrap", rows[0])
	}
	if !strings.Contains(rows[1], "short") {
		t.Errorf("row %q should show the next line", rows[1])
	}
}
