package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var (
	frameBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#273540")).
			Padding(0, 1)

	frameBorderActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#7f57b4")).
				Padding(0, 1)

	frameHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7f57b4")).
				Bold(true)

	frameHeaderMuted = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#9ba0bf"))
)

// PanelWidth picks the outer picker width: ~70% of the terminal, 40..80.
func PanelWidth(width int) int {
	if width <= 0 {
		return 0
	}
	w := width * 70 / 100
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	if w > width {
		return width
	}
	return w
}

// Frame renders content in a rounded border with the title set into the top
// edge. Active frames use the accent border.
func Frame(title, content string, width int, active bool) string {
	style, header, color := frameBorder, frameHeaderMuted, lipgloss.Color("#273540")
	if active {
		style, header, color = frameBorderActive, frameHeaderStyle, lipgloss.Color("#7f57b4")
	}
	if width > 0 {
		style = style.Width(width)
	}
	boxed := style.Render(content)
	if title == "" {
		return boxed
	}
	return setTitle(boxed, SanitizeOneLine(title), header, color)
}

func setTitle(boxed, title string, headerStyle lipgloss.Style, borderColor lipgloss.Color) string {
	lines := strings.Split(boxed, "\n")
	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 4 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	middleLen := lineWidth - 2
	titleText := fmt.Sprintf(" %s ", title)
	if lipgloss.Width(titleText) > middleLen {
		titleText = truncateRunes(titleText, middleLen)
	}

	titleWidth := lipgloss.Width(titleText)
	left := (middleLen - titleWidth) / 2
	right := middleLen - titleWidth - left

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	lines[0] = borderStyle.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		headerStyle.Render(titleText) +
		borderStyle.Render(strings.Repeat(border.Top, right)+border.TopRight)
	return strings.Join(lines, "\n")
}

// ClampTextWidth truncates text to the given visual width.
func ClampTextWidth(text string, width int) string {
	cleaned := SanitizeOneLine(text)
	if width <= 0 || lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	if width == 1 {
		return "…"
	}
	return truncateRunes(cleaned, width-1) + "…"
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		if n >= limit {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// centerText pads s with spaces on both sides to width.
func centerText(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
