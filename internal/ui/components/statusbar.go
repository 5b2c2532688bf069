package components

import "github.com/charmbracelet/lipgloss"

var (
	segmentLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#9ba0bf"))
	segmentValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7f57b4")).
				Bold(true)
	segmentStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#273540")).
			Padding(0, 1).
			MarginRight(1)
)

// Segment formats one labelled status field like "value 2024-02-29".
func Segment(label, value string) string {
	return segmentLabelStyle.Render(label+" ") + segmentValueStyle.Render(SanitizeOneLine(value))
}

// StatusBar lays out boxed segments, wrapping onto new rows when they do not
// fit in width. A width of 0 keeps everything on one row.
func StatusBar(segments []string, width int) string {
	boxed := make([]string, 0, len(segments))
	for _, s := range segments {
		if s == "" {
			continue
		}
		boxed = append(boxed, segmentStyle.Render(s))
	}
	rows := wrapSegments(boxed, width)
	if len(rows) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func wrapSegments(segments []string, width int) []string {
	if len(segments) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{lipgloss.JoinHorizontal(lipgloss.Top, segments...)}
	}
	var rows []string
	var current []string
	used := 0
	for _, seg := range segments {
		w := lipgloss.Width(seg)
		if used > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current, used = nil, 0
		}
		current = append(current, seg)
		used += w
	}
	return append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
}
