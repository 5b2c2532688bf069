package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	wheelSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7f57b4")).
				Bold(true)
	wheelNearStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d7d9da"))
	wheelFarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	wheelMarkerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#436b77"))
)

// Wheel is one picker column as it appears on screen: a window of row labels
// with the highlighted row in the middle.
type Wheel struct {
	Title   string
	Rows    []string
	Cursor  int
	Width   int
	Focused bool
}

// WheelWindow returns the first row of a window of size rows centred on
// center. Rows before 0 or past the dataset are left to the caller to blank.
func WheelWindow(center, rows int) int {
	return center - rows/2
}

// Render draws the column inside a frame.
func (w Wheel) Render() string {
	inner := w.Width
	if inner <= 0 {
		inner = w.naturalWidth()
	}
	// marker columns on each side of the label
	label := inner - 4
	if label < 1 {
		label = 1
	}

	lines := make([]string, len(w.Rows))
	for i, row := range w.Rows {
		text := centerText(ClampTextWidth(row, label), label)
		switch distance(i, w.Cursor) {
		case 0:
			left, right := "  ", "  "
			if w.Focused {
				left, right = wheelMarkerStyle.Render("› "), wheelMarkerStyle.Render(" ‹")
			}
			lines[i] = left + wheelSelectedStyle.Render(text) + right
		case 1:
			lines[i] = "  " + wheelNearStyle.Render(text) + "  "
		default:
			lines[i] = "  " + wheelFarStyle.Render(text) + "  "
		}
	}
	return Frame(w.Title, strings.Join(lines, "\n"), inner+4, w.Focused)
}

func (w Wheel) naturalWidth() int {
	widest := lipgloss.Width(w.Title) + 2
	for _, row := range w.Rows {
		if rw := lipgloss.Width(SanitizeOneLine(row)) + 4; rw > widest {
			widest = rw
		}
	}
	return widest
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
