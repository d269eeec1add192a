package components

import "strings"

// MdTokenKind classifies a run of inline markdown for styling.
type MdTokenKind int

const (
	TokenPlain MdTokenKind = iota
	TokenBold
	TokenItalic
	TokenBoldItalic
	TokenStrike
	TokenCode
	TokenDelimiter
	TokenOrderedPrefix
	TokenUnorderedPrefix
)

// MdToken is one styled run. Concatenating Text over a line's tokens
// reproduces the line exactly.
type MdToken struct {
	Text string
	Kind MdTokenKind
}

// TokenizeInline splits a line into inline markdown tokens: a leading
// list prefix, then delimited runs scanned left to right trying ***,
// **, *, backtick and ~~ at each position. An unclosed double
// delimiter is consumed one character at a time so a shorter match
// can still start inside it.
func TokenizeInline(line string) []MdToken {
	var tokens []MdToken

	rest := line
	if end := listPrefixEnd(line); end > 0 {
		prefix := line[:end]
		kind := TokenOrderedPrefix
		if strings.HasPrefix(strings.TrimLeft(prefix, " \t"), "-") {
			kind = TokenUnorderedPrefix
		}
		tokens = append(tokens, MdToken{Text: prefix, Kind: kind})
		rest = line[end:]
	}

	chars := []rune(rest)
	var plain []rune
	flush := func() {
		if len(plain) > 0 {
			tokens = append(tokens, MdToken{Text: string(plain), Kind: TokenPlain})
			plain = plain[:0]
		}
	}
	emit := func(delim string, content []rune, kind MdTokenKind) {
		flush()
		tokens = append(tokens,
			MdToken{Text: delim, Kind: TokenDelimiter},
			MdToken{Text: string(content), Kind: kind},
			MdToken{Text: delim, Kind: TokenDelimiter})
	}

	i := 0
	for i < len(chars) {
		handled := false

		if i+2 < len(chars) && chars[i] == '*' && chars[i+1] == '*' && chars[i+2] == '*' {
			if content, end, ok := scanDelimited(chars, i, "***"); ok {
				emit("***", content, TokenBoldItalic)
				i = end
			} else {
				plain = append(plain, chars[i])
				i++
			}
			handled = true
		}

		if !handled && i+1 < len(chars) && chars[i] == '*' && chars[i+1] == '*' {
			if content, end, ok := scanDelimited(chars, i, "**"); ok {
				emit("**", content, TokenBold)
				i = end
			} else {
				plain = append(plain, chars[i])
				i++
			}
			handled = true
		}

		if !handled && chars[i] == '*' {
			if content, end, ok := scanDelimited(chars, i, "*"); ok {
				emit("*", content, TokenItalic)
				i = end
				handled = true
			}
		}

		if !handled && chars[i] == '`' {
			if content, end, ok := scanDelimited(chars, i, "`"); ok {
				emit("`", content, TokenCode)
				i = end
				handled = true
			}
		}

		if !handled && i+1 < len(chars) && chars[i] == '~' && chars[i+1] == '~' {
			if content, end, ok := scanDelimited(chars, i, "~~"); ok {
				emit("~~", content, TokenStrike)
				i = end
				handled = true
			}
		}

		if !handled {
			plain = append(plain, chars[i])
			i++
		}
	}
	flush()

	return tokens
}

// listPrefixEnd returns the byte index past an unordered ("- ") or
// ordered ("N. ", "N) ") list prefix, or 0 when the line has none.
func listPrefixEnd(line string) int {
	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)

	if strings.HasPrefix(trimmed, "- ") {
		return indent + 2
	}

	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits > 0 {
		rest := trimmed[digits:]
		if strings.HasPrefix(rest, ". ") || strings.HasPrefix(rest, ") ") {
			return indent + digits + 2
		}
	}
	return 0
}

// scanDelimited looks for the closing delimiter after an opener at
// start and returns the content between them plus the index past the
// closer.
func scanDelimited(chars []rune, start int, delim string) ([]rune, int, bool) {
	d := []rune(delim)
	for i := start + len(d); i+len(d) <= len(chars); i++ {
		match := true
		for j := range d {
			if chars[i+j] != d[j] {
				match = false
				break
			}
		}
		if match {
			return chars[start+len(d) : i], i + len(d), true
		}
	}
	return nil, 0, false
}

// FenceFlags marks the lines belonging to ``` fenced code blocks,
// fence lines included.
func FenceFlags(lines []string) []bool {
	flags := make([]bool, len(lines))
	inFence := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			flags[i] = true
			inFence = !inFence
		} else if inFence {
			flags[i] = true
		}
	}
	return flags
}
