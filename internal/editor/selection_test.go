package editor

import "testing"

func TestCharSpan(t *testing.T) {
	tests := []struct {
		name   string
		anchor Position
		cursor Position
		want   Span
	}{
		{
			name:   "forward same line",
			anchor: Position{0, 2},
			cursor: Position{0, 5},
			want:   Span{Position{0, 2}, Position{0, 6}},
		},
		{
			name:   "backward normalizes",
			anchor: Position{0, 5},
			cursor: Position{0, 2},
			want:   Span{Position{0, 2}, Position{0, 6}},
		},
		{
			name:   "across lines",
			anchor: Position{2, 1},
			cursor: Position{0, 3},
			want:   Span{Position{0, 3}, Position{2, 2}},
		},
		{
			name:   "single cell",
			anchor: Position{1, 4},
			cursor: Position{1, 4},
			want:   Span{Position{1, 4}, Position{1, 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Selection{Kind: VisualCharacter, Anchor: tt.anchor}
			if got := s.CharSpan(tt.cursor); got != tt.want {
				t.Errorf("CharSpan = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineRange(t *testing.T) {
	s := Selection{Kind: VisualLine, Anchor: Position{4, 7}}
	top, bottom := s.LineRange(Position{1, 0})
	if top != 1 || bottom != 4 {
		t.Errorf("LineRange = (%d, %d), want (1, 4)", top, bottom)
	}

	top, bottom = s.LineRange(Position{4, 2})
	if top != 4 || bottom != 4 {
		t.Errorf("LineRange same row = (%d, %d), want (4, 4)", top, bottom)
	}
}

func TestRect(t *testing.T) {
	tests := []struct {
		name   string
		anchor Position
		cursor Position
		want   BlockRect
	}{
		{
			name:   "down right",
			anchor: Position{0, 1},
			cursor: Position{2, 4},
			want:   BlockRect{Top: 0, Bottom: 2, Left: 1, Right: 4},
		},
		{
			name:   "up left normalizes",
			anchor: Position{3, 6},
			cursor: Position{1, 2},
			want:   BlockRect{Top: 1, Bottom: 3, Left: 2, Right: 6},
		},
		{
			name:   "single column",
			anchor: Position{0, 3},
			cursor: Position{2, 3},
			want:   BlockRect{Top: 0, Bottom: 2, Left: 3, Right: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Selection{Kind: VisualBlock, Anchor: tt.anchor}
			if got := s.Rect(tt.cursor); got != tt.want {
				t.Errorf("Rect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	charSel := Selection{Kind: VisualCharacter, Anchor: Position{0, 2}}
	cursor := Position{1, 1}
	tests := []struct {
		pos  Position
		want bool
	}{
		{Position{0, 1}, false},
		{Position{0, 2}, true},
		{Position{0, 9}, true},
		{Position{1, 1}, true},
		{Position{1, 2}, false},
	}
	for _, tt := range tests {
		if got := charSel.Contains(tt.pos, cursor); got != tt.want {
			t.Errorf("char Contains(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}

	lineSel := Selection{Kind: VisualLine, Anchor: Position{1, 5}}
	if !lineSel.Contains(Position{2, 0}, Position{2, 0}) {
		t.Error("line selection should contain any column of a selected row")
	}
	if lineSel.Contains(Position{0, 0}, Position{2, 0}) {
		t.Error("line selection should not contain rows outside the range")
	}

	blockSel := Selection{Kind: VisualBlock, Anchor: Position{0, 2}}
	blockCursor := Position{2, 4}
	if !blockSel.Contains(Position{1, 3}, blockCursor) {
		t.Error("block selection should contain interior cells")
	}
	if blockSel.Contains(Position{1, 5}, blockCursor) {
		t.Error("block selection should exclude columns past the right edge")
	}
}
