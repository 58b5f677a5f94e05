package ui

import "github.com/charmbracelet/lipgloss"

// RenderNotification renders one transient notification line. Long messages
// are truncated to fit the terminal width.
func RenderNotification(text string, isError bool, theme *Theme, width int) string {
	if text == "" {
		return ""
	}

	// Truncate long messages to fit terminal width
	// Max length = terminal width - prefix (2) - margin (5)
	maxLength := width - 7
	if maxLength < 20 {
		maxLength = 20 // Minimum reasonable length
	}
	if len(text) > maxLength {
		text = text[:maxLength-1] + "…"
	}

	color := theme.Success
	if isError {
		color = theme.Error
	}

	style := lipgloss.NewStyle().Foreground(color)
	return style.Render("⏺ " + text)
}

// RenderBanner renders an inline error banner shown above a stale table.
func RenderBanner(text string, theme *Theme, width int) string {
	if text == "" {
		return ""
	}
	style := lipgloss.NewStyle().
		Foreground(theme.Background).
		Background(theme.Error).
		Bold(true).
		Width(width).
		Padding(0, 1)
	return style.Render("✗ " + text)
}
