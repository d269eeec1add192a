// Package grapheme provides cluster-aware text helpers for cursor math.
// Editor columns count grapheme clusters, never bytes, so combining marks
// and CJK characters each occupy exactly one column.
package grapheme

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Clusters returns the grapheme clusters of text in order.
func Clusters(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		n++
	}
	return n
}

// Slice returns the substring covering clusters [start, end).
// Out-of-range bounds are clamped.
func Slice(text string, start, end int) string {
	if text == "" || end <= start {
		return ""
	}
	if start < 0 {
		start = 0
	}
	g := uniseg.NewGraphemes(text)
	idx := 0
	var sb strings.Builder
	for g.Next() {
		if idx >= end {
			break
		}
		if idx >= start {
			sb.WriteString(g.Str())
		}
		idx++
	}
	return sb.String()
}

// At returns the cluster at index i, or "" when i is out of range.
func At(text string, i int) string {
	if i < 0 {
		return ""
	}
	g := uniseg.NewGraphemes(text)
	idx := 0
	for g.Next() {
		if idx == i {
			return g.Str()
		}
		idx++
	}
	return ""
}

// IsSpace reports whether every rune in cluster is Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsWord reports whether cluster belongs to an alphanumeric word run.
// Underscore counts as a word character.
func IsWord(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}

// Width returns the display cell width of text. Wide CJK clusters
// report 2, zero-width joiner sequences report the width of the
// rendered cluster.
func Width(text string) int {
	if text == "" {
		return 0
	}
	w := runewidth.StringWidth(text)
	if w < 0 {
		return 0
	}
	return w
}
