package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeOneLineStripsOscAndNewlines(t *testing.T) {
	input := "\x1b]8;;https://evil\x07click\x1b]8;;\x07\nline\tmore"

	assert.Equal(t, "click line more", SanitizeOneLine(input))
}

func TestSanitizeOneLineFoldsCRLF(t *testing.T) {
	assert.Equal(t, "a b", SanitizeOneLine("a\r\nb\r\n"))
}

func TestSanitizeOneLineRemovesBidiControls(t *testing.T) {
	out := SanitizeOneLine("safe\u202eexe.txt\u2066")

	assert.Equal(t, "safeexe.txt", out)
}

func TestSanitizeOneLineStripsColourAndControls(t *testing.T) {
	assert.Equal(t, "Jan", SanitizeOneLine("\x1b[31mJan\x1b[0m\x00\x7f"))
}
