package ui

import "github.com/charmbracelet/lipgloss"

// --- Theme Colors ---

var (
	ColorSuccess = lipgloss.Color("#3f866b") // green
	ColorError   = lipgloss.Color("#e06c75") // red
)

// --- Reusable Styles ---

var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)
