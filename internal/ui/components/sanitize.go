package components

import (
	"regexp"
	"strings"
	"unicode"
)

// CSI sequences and OSC sequences terminated by BEL or ST.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// SanitizeOneLine turns an item label into a single printable line: escape
// sequences, bidi overrides and control characters are dropped, and line
// breaks and tabs become single spaces.
func SanitizeOneLine(input string) string {
	if input == "" {
		return input
	}
	cleaned := ansiPattern.ReplaceAllString(strings.ReplaceAll(input, "\r\n", "\n"), "")
	cleaned = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			return ' '
		case unicode.Is(unicode.Bidi_Control, r), unicode.IsControl(r):
			return -1
		}
		return r
	}, cleaned)
	return strings.TrimSpace(cleaned)
}
