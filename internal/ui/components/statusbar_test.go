package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSegmentIncludesLabelAndValue(t *testing.T) {
	out := Segment("value", "2024-02-29")
	assert.Contains(t, out, "value")
	assert.Contains(t, out, "2024-02-29")
}

func TestSegmentSanitizesValue(t *testing.T) {
	out := Segment("value", "a\x1b[31mb\nc")
	assert.NotContains(t, out, "\x1b[31m")
	assert.NotContains(t, out, "\n")
}

func TestStatusBarSkipsEmptySegments(t *testing.T) {
	out := StatusBar([]string{Segment("value", "x"), ""}, 0)
	assert.Contains(t, out, "value")
	assert.Equal(t, 3, strings.Count(out, "\n")+1)
}

func TestStatusBarEmpty(t *testing.T) {
	assert.Empty(t, StatusBar(nil, 40))
	assert.Empty(t, StatusBar([]string{""}, 40))
}

func TestWrapSegmentsWrapsWhenNarrow(t *testing.T) {
	segments := []string{"123456", "abcdef", "ghijkl"}
	rows := wrapSegments(segments, 10)
	assert.Len(t, rows, 3)
	for _, row := range rows {
		assert.LessOrEqual(t, lipgloss.Width(row), 10)
	}
}

func TestWrapSegmentsKeepsRowWhenWide(t *testing.T) {
	rows := wrapSegments([]string{"ab", "cd"}, 10)
	assert.Equal(t, []string{"abcd"}, rows)
}
