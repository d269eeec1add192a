package editor

// VisualKind distinguishes the three selection shapes.
type VisualKind int

const (
	VisualCharacter VisualKind = iota
	VisualLine
	VisualBlock
)

// Selection tracks a visual-mode selection. The anchor is fixed when
// the mode is entered; the moving endpoint is the session cursor, so
// spans are derived on demand rather than stored.
type Selection struct {
	Kind   VisualKind
	Anchor Position
}

// Span is a normalized character range. End is exclusive: it sits one
// column past the later selected cluster.
type Span struct {
	Start Position
	End   Position
}

// BlockRect is a rectangular selection. Bottom and Right are
// inclusive.
type BlockRect struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// CharSpan resolves the linear run between anchor and cursor,
// inclusive of the later endpoint's cluster.
func (s Selection) CharSpan(cursor Position) Span {
	start, end := s.Anchor, cursor
	if end.Less(start) {
		start, end = end, start
	}
	end.Col++
	return Span{Start: start, End: end}
}

// LineRange resolves the inclusive row range regardless of columns.
func (s Selection) LineRange(cursor Position) (int, int) {
	if cursor.Row < s.Anchor.Row {
		return cursor.Row, s.Anchor.Row
	}
	return s.Anchor.Row, cursor.Row
}

// Rect resolves the rectangle spanned by anchor and cursor.
func (s Selection) Rect(cursor Position) BlockRect {
	r := BlockRect{
		Top:    s.Anchor.Row,
		Bottom: cursor.Row,
		Left:   s.Anchor.Col,
		Right:  cursor.Col,
	}
	if r.Bottom < r.Top {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	if r.Right < r.Left {
		r.Left, r.Right = r.Right, r.Left
	}
	return r
}

// Contains reports whether pos falls inside the selection with the
// cursor as the moving endpoint. Used by the renderer to highlight.
func (s Selection) Contains(pos, cursor Position) bool {
	switch s.Kind {
	case VisualCharacter:
		span := s.CharSpan(cursor)
		return !pos.Less(span.Start) && pos.Less(span.End)
	case VisualLine:
		top, bottom := s.LineRange(cursor)
		return pos.Row >= top && pos.Row <= bottom
	case VisualBlock:
		r := s.Rect(cursor)
		return pos.Row >= r.Top && pos.Row <= r.Bottom &&
			pos.Col >= r.Left && pos.Col <= r.Right
	}
	return false
}
