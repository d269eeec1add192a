package editor

import (
	"strings"

	"github.com/kenxcomp/kenotex/internal/grapheme"
)

// Direction selects which way n/N walk the match list.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Match is one occurrence of the search pattern. Start is inclusive,
// End exclusive, both grapheme columns on Row.
type Match struct {
	Row   int
	Start int
	End   int
}

// SearchState holds the compiled pattern and its live match set.
// Matches are invalidated by any buffer edit and recomputed before
// the next navigation.
type SearchState struct {
	Pattern string
	Matches []Match
	Current int
	valid   bool
}

// FindAll enumerates every non-overlapping, case-insensitive literal
// occurrence of pattern in document order. Matching is per grapheme
// cluster so columns line up with cursor math.
func FindAll(b *Buffer, pattern string) []Match {
	if pattern == "" {
		return nil
	}
	want := foldClusters(pattern)
	if len(want) == 0 {
		return nil
	}

	var matches []Match
	for row := 0; row < b.LineCount(); row++ {
		have := foldClusters(b.Line(row))
		for col := 0; col+len(want) <= len(have); {
			if clustersEqual(have[col:col+len(want)], want) {
				matches = append(matches, Match{Row: row, Start: col, End: col + len(want)})
				col += len(want)
			} else {
				col++
			}
		}
	}
	return matches
}

// Recompute refreshes the match set against the buffer and keeps
// Current in range.
func (s *SearchState) Recompute(b *Buffer) {
	s.Matches = FindAll(b, s.Pattern)
	s.valid = true
	if s.Current >= len(s.Matches) {
		s.Current = 0
	}
}

// Invalidate marks the match set stale after a buffer edit.
func (s *SearchState) Invalidate() {
	s.Matches = nil
	s.valid = false
}

// Valid reports whether the match set reflects the current buffer.
func (s *SearchState) Valid() bool {
	return s.valid
}

// Advance moves Current one match forward or backward, wrapping
// cyclically. Returns the new current match and false when there are
// no matches.
func (s *SearchState) Advance(dir Direction) (Match, bool) {
	if len(s.Matches) == 0 {
		return Match{}, false
	}
	if dir == Forward {
		s.Current = (s.Current + 1) % len(s.Matches)
	} else {
		s.Current = (s.Current - 1 + len(s.Matches)) % len(s.Matches)
	}
	return s.Matches[s.Current], true
}

// SeekFrom sets Current to the first match at or after pos, wrapping
// to the first match overall. Returns false when there are no matches.
func (s *SearchState) SeekFrom(pos Position) (Match, bool) {
	if len(s.Matches) == 0 {
		return Match{}, false
	}
	for i, m := range s.Matches {
		if m.Row > pos.Row || (m.Row == pos.Row && m.Start >= pos.Col) {
			s.Current = i
			return m, true
		}
	}
	s.Current = 0
	return s.Matches[0], true
}

func foldClusters(text string) []string {
	cs := grapheme.Clusters(text)
	for i, c := range cs {
		cs[i] = strings.ToLower(c)
	}
	return cs
}

func clustersEqual(a, b []string) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
