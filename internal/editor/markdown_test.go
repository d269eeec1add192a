package editor

import (
	"reflect"
	"testing"
)

func TestMarkerPositions(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		marker string
		want   []int
	}{
		{"bold pair", "a **b** c", MarkerBold, []int{2, 5}},
		{"italic skips bold stars", "**b** and *i*", MarkerItalic, []int{10, 12}},
		{"backticks", "`x` and `y`", MarkerCode, []int{0, 2, 8, 10}},
		{"strike", "~~gone~~", MarkerStrike, []int{0, 6}},
		{"none", "plain", MarkerBold, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := markerPositions(tt.line, tt.marker)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("markerPositions(%q, %q) = %v, want %v", tt.line, tt.marker, got, tt.want)
			}
		})
	}
}

func TestToggleInlineAtUnwrap(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		col     int
		marker  string
		want    string
		wantCol int
	}{
		{"inside bold", "say **hi** now", 6, MarkerBold, "say hi now", 4},
		{"on opening marker", "say **hi** now", 4, MarkerBold, "say hi now", 4},
		{"after closing marker", "say **hi** now", 10, MarkerBold, "say hi now", 6},
		{"inside code", "run `ls` here", 6, MarkerCode, "run ls here", 5},
		{"italic next to bold", "**b** *i*", 7, MarkerItalic, "**b** i", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, col := ToggleInlineAt(tt.line, tt.col, tt.marker)
			if got != tt.want || col != tt.wantCol {
				t.Errorf("ToggleInlineAt(%q, %d) = (%q, %d), want (%q, %d)",
					tt.line, tt.col, got, col, tt.want, tt.wantCol)
			}
		})
	}
}

func TestToggleInlineAtInsertEmptyPair(t *testing.T) {
	got, col := ToggleInlineAt("hello", 5, MarkerBold)
	if got != "hello****" || col != 7 {
		t.Errorf("got (%q, %d), want (%q, 7)", got, col, "hello****")
	}

	got, col = ToggleInlineAt("", 0, MarkerCode)
	if got != "``" || col != 1 {
		t.Errorf("got (%q, %d), want (%q, 1)", got, col, "``")
	}
}

func TestToggleInlineIdempotent(t *testing.T) {
	// Inserting then toggling again at the same spot restores the line.
	line := "plain text"
	wrapped, col := ToggleInlineAt(line, 6, MarkerStrike)
	restored, _ := ToggleInlineAt(wrapped, col, MarkerStrike)
	if restored != line {
		t.Errorf("restored = %q, want %q", restored, line)
	}
}

func TestToggleWrap(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		marker string
		want   string
	}{
		{"wrap bold", "words", MarkerBold, "**words**"},
		{"unwrap bold", "**words**", MarkerBold, "words"},
		{"wrap strike", "gone", MarkerStrike, "~~gone~~"},
		{"unwrap strike", "~~gone~~", MarkerStrike, "gone"},
		{"italic does not unwrap bold", "**words**", MarkerItalic, "***words***"},
		{"unwrap italic", "*words*", MarkerItalic, "words"},
		{"partial marker no false positive", "**half", MarkerBold, "****half**"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToggleWrap(tt.text, tt.marker); got != tt.want {
				t.Errorf("ToggleWrap(%q, %q) = %q, want %q", tt.text, tt.marker, got, tt.want)
			}
		})
	}
}

func TestToggleWrapRoundTrip(t *testing.T) {
	for _, marker := range []string{MarkerBold, MarkerItalic, MarkerStrike, MarkerCode} {
		text := "sample"
		if got := ToggleWrap(ToggleWrap(text, marker), marker); got != text {
			t.Errorf("double ToggleWrap with %q = %q, want %q", marker, got, text)
		}
	}
}

func TestToggleCodeFenceInsert(t *testing.T) {
	b := FromText("a\nb\nc")
	ToggleCodeFence(b, 1, 1)
	want := []string{"a", "```", "b", "```", "c"}
	if !reflect.DeepEqual(b.Lines(), want) {
		t.Errorf("lines = %v, want %v", b.Lines(), want)
	}
}

func TestToggleCodeFenceRemoveInclusive(t *testing.T) {
	b := FromText("```\nbody\n```")
	ToggleCodeFence(b, 0, 2)
	if want := []string{"body"}; !reflect.DeepEqual(b.Lines(), want) {
		t.Errorf("lines = %v, want %v", b.Lines(), want)
	}
}

func TestToggleCodeFenceRemoveSurrounding(t *testing.T) {
	b := FromText("```\nbody\n```")
	ToggleCodeFence(b, 1, 1)
	if want := []string{"body"}; !reflect.DeepEqual(b.Lines(), want) {
		t.Errorf("lines = %v, want %v", b.Lines(), want)
	}
}

func TestInsertCodeFences(t *testing.T) {
	b := FromText("text")
	pos := InsertCodeFences(b, 0)
	want := []string{"text", "```", "```"}
	if !reflect.DeepEqual(b.Lines(), want) {
		t.Errorf("lines = %v, want %v", b.Lines(), want)
	}
	if pos != (Position{1, 3}) {
		t.Errorf("pos = %v, want (1,3)", pos)
	}
}
