package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestPanelWidthBounds(t *testing.T) {
	assert.Equal(t, 0, PanelWidth(0))
	assert.Equal(t, 30, PanelWidth(30))
	assert.Equal(t, 40, PanelWidth(50))
	assert.Equal(t, 80, PanelWidth(200))
	assert.Equal(t, 70, PanelWidth(100))
}

func TestFrameSetsTitleIntoBorder(t *testing.T) {
	out := Frame("Day", "15", 10, false)
	first := strings.Split(out, "\n")[0]
	assert.Contains(t, first, "Day")
	assert.Contains(t, first, "╭")
}

func TestFrameWithoutTitle(t *testing.T) {
	out := Frame("", "content", 0, true)
	assert.Contains(t, out, "content")
}

func TestFrameTruncatesLongTitle(t *testing.T) {
	out := Frame("A very long column title", "x", 6, false)
	lines := strings.Split(out, "\n")
	assert.Equal(t, lipgloss.Width(lines[1]), lipgloss.Width(lines[0]))
}

func TestClampTextWidth(t *testing.T) {
	assert.Equal(t, "abc", ClampTextWidth("abc", 5))
	assert.Equal(t, "abc…", ClampTextWidth("abcdef", 4))
	assert.Equal(t, "…", ClampTextWidth("abcdef", 1))
	assert.Equal(t, "a b", ClampTextWidth("a\nb", 0))
}
