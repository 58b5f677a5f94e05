package components

import (
	"github.com/charmbracelet/lipgloss"
)

var helpStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("241")).
	Padding(0, 1)

// Layout stacks the fixed chrome around the body: header on top, status
// bar and help line at the bottom.
type Layout struct {
	width  int
	height int
}

func NewLayout(width, height int) *Layout {
	return &Layout{
		width:  width,
		height: height,
	}
}

func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// CalculateBodyHeight returns the available height for the body content.
// Reserved: header (1), blank line (1), status bar (1), help (1).
func (l *Layout) CalculateBodyHeight() int {
	reserved := 4
	bodyHeight := l.height - reserved
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	return bodyHeight
}

// Render builds the full layout
func (l *Layout) Render(header, body, statusBar, help string) string {
	sections := []string{}

	if header != "" {
		sections = append(sections, header)
		sections = append(sections, "")
	}

	if body != "" {
		sections = append(sections, body)
	}

	if statusBar != "" {
		sections = append(sections, statusBar)
	}

	if help != "" {
		sections = append(sections, helpStyle.Render(help))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
