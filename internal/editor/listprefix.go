package editor

import (
	"strconv"
	"strings"

	"github.com/kenxcomp/kenotex/internal/grapheme"
)

// PrefixKind identifies which list marker family a line carries.
type PrefixKind int

const (
	PrefixCheckbox PrefixKind = iota
	PrefixBullet
	PrefixOrderedDot
	PrefixOrderedParen
)

// ListPrefix describes a recognized list marker at the start of a
// line: its indentation, the exact marker text, and parsed details.
type ListPrefix struct {
	Indent  string
	Marker  string
	Kind    PrefixKind
	Number  int
	Checked bool
}

// DetectListPrefix recognizes, in priority order: checkbox markers
// (`- [ ] `, `- [x] `, `- [X] `, and their bare forms without trailing
// space), plain bullets `- `, ordered `N. `, and ordered `N) `.
func DetectListPrefix(line string) (ListPrefix, bool) {
	indent := leadingWhitespace(line)
	rest := line[len(indent):]

	for _, m := range []struct {
		marker  string
		checked bool
	}{
		{"- [ ] ", false},
		{"- [x] ", true},
		{"- [X] ", true},
	} {
		if strings.HasPrefix(rest, m.marker) {
			return ListPrefix{Indent: indent, Marker: m.marker, Kind: PrefixCheckbox, Checked: m.checked}, true
		}
	}
	// Bare checkbox forms: the whole line is the marker.
	for _, m := range []struct {
		marker  string
		checked bool
	}{
		{"- [ ]", false},
		{"- []", false},
		{"- [x]", true},
		{"- [X]", true},
	} {
		if rest == m.marker {
			return ListPrefix{Indent: indent, Marker: m.marker, Kind: PrefixCheckbox, Checked: m.checked}, true
		}
	}

	if strings.HasPrefix(rest, "- ") {
		return ListPrefix{Indent: indent, Marker: "- ", Kind: PrefixBullet}, true
	}

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits+1 < len(rest) && rest[digits+1] == ' ' {
		n, err := strconv.Atoi(rest[:digits])
		if err == nil {
			switch rest[digits] {
			case '.':
				return ListPrefix{Indent: indent, Marker: rest[:digits+2], Kind: PrefixOrderedDot, Number: n}, true
			case ')':
				return ListPrefix{Indent: indent, Marker: rest[:digits+2], Kind: PrefixOrderedParen, Number: n}, true
			}
		}
	}

	return ListPrefix{}, false
}

// Continuation returns the prefix the next line receives when the
// list continues. Checkboxes always reset to unchecked, bullets repeat
// verbatim, ordered markers increment.
func (p ListPrefix) Continuation() string {
	switch p.Kind {
	case PrefixCheckbox:
		return p.Indent + "- [ ] "
	case PrefixBullet:
		return p.Indent + "- "
	case PrefixOrderedDot:
		return p.Indent + strconv.Itoa(p.Number+1) + ". "
	case PrefixOrderedParen:
		return p.Indent + strconv.Itoa(p.Number+1) + ") "
	}
	return ""
}

// Len returns the grapheme length of indentation plus marker.
func (p ListPrefix) Len() int {
	return grapheme.Count(p.Indent + p.Marker)
}

// PrefixOnly reports whether line carries a list marker with no
// content after it.
func PrefixOnly(line string) bool {
	p, ok := DetectListPrefix(line)
	if !ok {
		return false
	}
	return strings.TrimSpace(line[len(p.Indent)+len(p.Marker):]) == ""
}

// ToggleCheckbox flips `- [ ]` to `- [x]` and back on line, returning
// the updated line and whether a checkbox was found.
func ToggleCheckbox(line string) (string, bool) {
	p, ok := DetectListPrefix(line)
	if !ok || p.Kind != PrefixCheckbox {
		return line, false
	}
	box := "[ ]"
	if !p.Checked {
		box = "[x]"
	}
	replaced := p.Indent + "- " + box + line[len(p.Indent)+len("- [ ]"):]
	// Bare `- []` has a shorter box; rebuild from the content instead.
	if p.Marker == "- []" {
		replaced = p.Indent + "- " + box + line[len(p.Indent)+len("- []"):]
	}
	return replaced, true
}

func leadingWhitespace(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}
