package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/ponte/internal/ui"
)

// StatusBar displays the most recent notification (action confirmations,
// errors). It renders a single line and reserves the space when empty so
// the layout never jumps.
type StatusBar struct {
	text    string
	isError bool
	width   int
	theme   *ui.Theme
}

// NewStatusBar creates a new status bar
func NewStatusBar(theme *ui.Theme) *StatusBar {
	return &StatusBar{
		theme: theme,
	}
}

// SetNotification sets the displayed notification
func (sb *StatusBar) SetNotification(text string, isError bool) {
	sb.text = text
	sb.isError = isError
}

// Clear clears the status bar
func (sb *StatusBar) Clear() {
	sb.text = ""
	sb.isError = false
}

// SetWidth sets the status bar width
func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// GetHeight returns the height (always 1 line to reserve space)
func (sb *StatusBar) GetHeight() int {
	return 1
}

// View renders the status bar
func (sb *StatusBar) View() string {
	baseStyle := lipgloss.NewStyle().
		Width(sb.width).
		Padding(0, 1)

	if sb.text == "" {
		// Render empty line to reserve space
		return baseStyle.Render("")
	}

	// Colored background with theme foreground for high visibility
	var style lipgloss.Style
	var prefix string
	if sb.isError {
		style = baseStyle.
			Background(sb.theme.Error).
			Foreground(sb.theme.Background).
			Bold(true)
		prefix = "✗ "
	} else {
		style = baseStyle.
			Background(sb.theme.Success).
			Foreground(sb.theme.Background).
			Bold(true)
		prefix = "✓ "
	}

	return style.Render(prefix + sb.text)
}
