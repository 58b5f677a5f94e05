package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/ponte/internal/ui"
)

// PaneKind selects the content type of a full-screen pane.
type PaneKind int

const (
	PaneYAML PaneKind = iota
	PaneDescribe
	PaneLogs
	PaneHistory
)

func (k PaneKind) String() string {
	switch k {
	case PaneYAML:
		return "YAML"
	case PaneDescribe:
		return "Describe"
	case PaneLogs:
		return "Logs"
	case PaneHistory:
		return "History"
	default:
		return "View"
	}
}

// Pane displays logs, YAML, describe output or cronjob history full screen
// inside a scrollable viewport. YAML content is syntax highlighted.
type Pane struct {
	kind      PaneKind
	title     string
	content   string
	notice    string
	noticeErr bool
	viewport  viewport.Model
	width     int
	height    int
	theme     *ui.Theme
}

// NewPane creates a full-screen pane. Content may be empty and set later,
// which is how the async loads render: the pane opens immediately showing
// a loading line and fills in when the outcome arrives.
func NewPane(kind PaneKind, title, content string, theme *ui.Theme) *Pane {
	vp := viewport.New(80, 24-PaneReservedLines)
	p := &Pane{
		kind:     kind,
		title:    title,
		viewport: vp,
		width:    80,
		height:   24,
		theme:    theme,
	}
	p.SetContent(content)
	return p
}

func (p *Pane) Kind() PaneKind {
	return p.kind
}

func (p *Pane) Title() string {
	return p.title
}

// SetContent replaces the pane content, highlighting YAML. The scroll
// position is kept so periodic refreshes don't yank the view around.
func (p *Pane) SetContent(content string) {
	if content == p.content {
		return
	}
	p.content = content

	display := content
	if p.kind == PaneYAML {
		display = highlightYAML(content)
	}
	offset := p.viewport.YOffset
	p.viewport.SetContent(display)
	p.viewport.SetYOffset(offset)
}

// SetNotice sets the notification shown in the pane's bottom line, so
// action outcomes stay visible while the pane covers the status bar.
func (p *Pane) SetNotice(text string, isError bool) {
	p.notice = text
	p.noticeErr = isError
}

// SetSize updates the pane dimensions
func (p *Pane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.Width = width
	p.viewport.Height = height - PaneReservedLines
	if p.viewport.Height < 1 {
		p.viewport.Height = 1
	}
}

// Update forwards scrolling keys to the viewport
func (p *Pane) Update(msg tea.Msg) (*Pane, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "g", "home":
			p.viewport.GotoTop()
			return p, nil
		case "G", "end":
			p.viewport.GotoBottom()
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the pane: title line, separator, viewport, scroll position
func (p *Pane) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(p.theme.Primary).
		Bold(true)
	hintStyle := lipgloss.NewStyle().
		Foreground(p.theme.Muted)

	title := titleStyle.Render(p.kind.String() + ": " + p.title)
	hint := hintStyle.Render("[esc] back  [↑↓/jk] scroll  [g/G] top/bottom")

	spacing := p.width - lipgloss.Width(title) - lipgloss.Width(hint)
	if spacing < 0 {
		spacing = 0
	}
	titleLine := lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", spacing),
		hint,
	)

	separator := hintStyle.Render(strings.Repeat("─", max(p.width, 1)))

	position := hintStyle.Render(fmt.Sprintf("  %3.f%%", p.viewport.ScrollPercent()*100))
	notice := ui.RenderNotification(p.notice, p.noticeErr, p.theme, p.width-lipgloss.Width(position))

	noticeSpacing := p.width - lipgloss.Width(notice) - lipgloss.Width(position)
	if noticeSpacing < 0 {
		noticeSpacing = 0
	}
	bottomLine := lipgloss.JoinHorizontal(
		lipgloss.Top,
		notice,
		strings.Repeat(" ", noticeSpacing),
		position,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleLine,
		separator,
		p.viewport.View(),
		bottomLine,
	)
}

// highlightYAML runs YAML through chroma for terminal coloring. On any
// highlighting failure the raw text is returned unchanged.
func highlightYAML(content string) string {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, content, "yaml", "terminal256", "dracula"); err != nil {
		return content
	}
	return buf.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
