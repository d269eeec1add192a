package note

import (
	"strings"
	"testing"
)

func TestTitleOf(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain first line", "shopping list\nmilk", "shopping list"},
		{"skips blank lines", "\n\n  \nfirst real line", "first real line"},
		{"heading stripped", "# Weekly plan", "Weekly plan"},
		{"checkbox stripped", "- [ ] call dentist", "call dentist"},
		{"checked checkbox stripped", "- [x] done item", "done item"},
		{"bullet stripped", "- groceries", "groceries"},
		{"bold stripped", "**important**", "important"},
		{"comment unwrapped", "<!-- archived note -->", "archived note"},
		{"empty content", "", "Untitled"},
		{"whitespace only", "   \n\t\n", "Untitled"},
		{"cjk preserved", "明天的计划", "明天的计划"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleOf(tt.content); got != tt.want {
				t.Errorf("TitleOf(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestTitleTruncation(t *testing.T) {
	long := strings.Repeat("a", 100)
	got := TitleOf(long)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("long title not truncated: %q", got)
	}
	if len([]rune(got)) != maxTitleLen+1 {
		t.Errorf("truncated length = %d runes, want %d", len([]rune(got)), maxTitleLen+1)
	}
}
