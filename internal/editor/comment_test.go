package editor

import (
	"reflect"
	"testing"
)

func TestIsCommented(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"<!-- hello -->", true},
		{"  <!-- indented -->", true},
		{"<!--tight-->", true},
		{"hello", false},
		{"<!-- unterminated", false},
		{"terminated only -->", false},
		{"", false},
		{"<!-->", false},
	}

	for _, tt := range tests {
		if got := IsCommented(tt.line); got != tt.want {
			t.Errorf("IsCommented(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestCommentRoundTrip(t *testing.T) {
	lines := []string{
		"plain text",
		"  indented line",
		"\ttabbed",
		"- [ ] checkbox item",
		"明天下午开会",
	}

	for _, line := range lines {
		commented := CommentLine(line)
		if !IsCommented(commented) {
			t.Errorf("CommentLine(%q) = %q not detected as commented", line, commented)
		}
		if got := UncommentLine(commented); got != line {
			t.Errorf("UncommentLine(CommentLine(%q)) = %q", line, got)
		}
	}
}

func TestCommentLineBlank(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		if got := CommentLine(line); got != line {
			t.Errorf("CommentLine(%q) = %q, want unchanged", line, got)
		}
	}
}

func TestCommentLineKeepsIndent(t *testing.T) {
	got := CommentLine("    body")
	if got != "    <!-- body -->" {
		t.Errorf("CommentLine = %q", got)
	}
}

func TestUncommentWithoutInnerSpaces(t *testing.T) {
	if got := UncommentLine("<!--tight-->"); got != "tight" {
		t.Errorf("UncommentLine = %q, want %q", got, "tight")
	}
}

func TestToggleCommentRangeMajority(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "none commented gets commented",
			lines: []string{"one", "two"},
			want:  []string{"<!-- one -->", "<!-- two -->"},
		},
		{
			name:  "all commented gets uncommented",
			lines: []string{"<!-- one -->", "<!-- two -->"},
			want:  []string{"one", "two"},
		},
		{
			name:  "mixed comments the rest",
			lines: []string{"<!-- one -->", "two", "three"},
			want:  []string{"<!-- one -->", "<!-- two -->", "<!-- three -->"},
		},
		{
			name:  "empty lines skipped and not voting",
			lines: []string{"<!-- a -->", "", "<!-- b -->"},
			want:  []string{"a", "", "b"},
		},
		{
			name:  "all blank untouched",
			lines: []string{"", "  "},
			want:  []string{"", "  "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Buffer{lines: append([]string(nil), tt.lines...)}
			ToggleCommentRange(b, 0, len(tt.lines)-1)
			if !reflect.DeepEqual(b.Lines(), tt.want) {
				t.Errorf("lines = %v, want %v", b.Lines(), tt.want)
			}
		})
	}
}

func TestToggleCommentRangeSwappedRows(t *testing.T) {
	b := FromText("a\nb")
	ToggleCommentRange(b, 1, 0)
	if want := []string{"<!-- a -->", "<!-- b -->"}; !reflect.DeepEqual(b.Lines(), want) {
		t.Errorf("lines = %v, want %v", b.Lines(), want)
	}
}
