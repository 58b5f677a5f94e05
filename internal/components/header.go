package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/ponte/internal/ui"
)

// Header renders the one-line application header: view title, namespace
// scope and item count on the left, cluster context on the right.
type Header struct {
	appName   string
	viewTitle string
	namespace string
	context   string
	itemCount int
	loading   bool
	width     int
	theme     *ui.Theme
}

func NewHeader(appName string, theme *ui.Theme) *Header {
	return &Header{
		appName: appName,
		theme:   theme,
	}
}

func (h *Header) SetViewTitle(title string) {
	h.viewTitle = title
}

// SetNamespace sets the namespace scope; empty means all namespaces.
func (h *Header) SetNamespace(namespace string) {
	h.namespace = namespace
}

func (h *Header) SetContext(context string) {
	h.context = context
}

func (h *Header) SetItemCount(count int) {
	h.itemCount = count
}

func (h *Header) SetLoading(loading bool) {
	h.loading = loading
}

func (h *Header) SetWidth(width int) {
	h.width = width
}

// GetHeight returns the height (always 1 line)
func (h *Header) GetHeight() int {
	return 1
}

func (h *Header) View() string {
	titleStyle := h.theme.AppTitle.Padding(0, 1)
	infoStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.theme.Primary)
	contextStyle := lipgloss.NewStyle().
		Foreground(h.theme.Muted).
		Padding(0, 1)

	// Left side: "ponte  Deployments • namespace: all • 47 items"
	leftParts := []string{}
	if h.viewTitle != "" {
		leftParts = append(leftParts, h.viewTitle)
	}

	ns := h.namespace
	if ns == "" {
		ns = "all"
	}
	leftParts = append(leftParts, fmt.Sprintf("namespace: %s", ns))

	if h.itemCount > 0 {
		leftParts = append(leftParts, fmt.Sprintf("%d items", h.itemCount))
	}

	if h.loading {
		leftParts = append(leftParts, "syncing…")
	}

	left := lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleStyle.Render(h.appName),
		infoStyle.Render(" "+strings.Join(leftParts, " • ")),
	)

	// Right side: "context: minikube"
	var right string
	if h.context != "" {
		right = contextStyle.Render(fmt.Sprintf("context: %s", h.context))
	}

	// Push the context to the right edge
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	spacing := h.width - leftWidth - rightWidth
	if spacing < 0 {
		spacing = 0
	}

	spacer := lipgloss.NewStyle().
		Width(spacing).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, right)
}
