package components

import (
	"strings"
	"testing"

	"github.com/kenxcomp/kenotex/internal/distribution"
	"github.com/kenxcomp/kenotex/internal/editor"
	"github.com/mattn/go-runewidth"
)

func TestBlockPreviewStripsTags(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{":::td buy milk tomorrow", "buy milk tomorrow"},
		{":::cal dentist 3pm\nsecond line ignored", "dentist 3pm"},
		{":::note remember this", "remember this"},
		{"plain text block", "plain text block"},
		{":::td", ""},
	}
	for _, c := range cases {
		if got := blockPreview(c.in, 40); got != c.want {
			t.Errorf("blockPreview(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBlockPreviewTruncates(t *testing.T) {
	got := blockPreview(":::td a very long line that keeps going", 10)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated preview %q missing tail", got)
	}
	if w := runewidth.StringWidth(got); w > 10 {
		t.Errorf("truncated preview is %d cells wide, want <= 10", w)
	}
}

func TestProcessingOverlayRender(t *testing.T) {
	results := []distribution.Result{
		{Index: 0, Block: editor.Block{Text: ":::td buy milk"}, Target: distribution.TargetTask, Status: distribution.StatusSent},
		{Index: 1, Block: editor.Block{Text: ":::cal dentist 3pm"}, Target: distribution.TargetCalendar, Status: distribution.StatusPending},
		{Index: 2, Block: editor.Block{Text: "loose thought"}, Target: distribution.TargetNote, Status: distribution.StatusSkipped},
	}

	spin := NewSpinnerComponent("working...")
	out := plain(NewProcessingOverlayComponent(results, testTheme(), 80, false, spin.Render()).Render())
	for _, want := range []string{"Processing Blocks", "TASK: buy milk", "CALENDAR: dentist 3pm", "NOTE: loose thought", "working..."} {
		if !strings.Contains(out, want) {
			t.Errorf("overlay missing %q", want)
		}
	}
	if strings.Contains(out, "Esc: close") {
		t.Error("overlay shows dismiss hint while still working")
	}

	out = plain(NewProcessingOverlayComponent(results, testTheme(), 80, true, spin.Render()).Render())
	if !strings.Contains(out, "Esc: close") {
		t.Error("finished overlay missing dismiss hint")
	}
	if strings.Contains(out, "working...") {
		t.Error("finished overlay still shows working footer")
	}
}

func TestSpinnerAdvances(t *testing.T) {
	s := NewSpinnerComponent("working...")
	first := s.Render()
	if !strings.HasSuffix(first, " working...") {
		t.Fatalf("render = %q", first)
	}
	s.Tick()
	if s.Render() == first {
		t.Error("tick did not advance the frame")
	}
}

func TestConfirmOverlayRender(t *testing.T) {
	out := plain(NewConfirmOverlayComponent("Groceries", testTheme(), 80).Render())
	for _, want := range []string{"Confirm Delete", "Delete 'Groceries'?", "y: Yes", "n/Esc: No"} {
		if !strings.Contains(out, want) {
			t.Errorf("confirm modal missing %q", want)
		}
	}
}
