package indexer

import (
	"strings"
	"unicode"
)

const maxHeadingLevel = 6

// ParseHeading reports whether line is an ATX heading and returns its level and text.
// Leading whitespace is ignored. A run of more than six '#' characters, or a
// heading with no text, is not a heading. Fenced code blocks are not tracked,
// so a '#' line inside a fence is still reported as a heading.
func ParseHeading(line string) (level int, text string, ok bool) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if !strings.HasPrefix(trimmed, "#") {
		return 0, "", false
	}

	level = len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
	if level == 0 || level > maxHeadingLevel {
		return 0, "", false
	}

	text = strings.TrimSpace(trimmed[level:])
	if text == "" {
		return 0, "", false
	}

	return level, text, true
}
