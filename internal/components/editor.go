package components

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/ponte/internal/ui"
)

// EditorSavedMsg carries the edited text when the user saves.
type EditorSavedMsg struct {
	Text string
}

// EditorCancelledMsg is emitted when the editor is dismissed.
type EditorCancelledMsg struct{}

// Editor is a full-screen textarea used to edit a configmap's data as
// YAML. Saving emits the raw text; the caller parses and validates it.
type Editor struct {
	title    string
	textarea textarea.Model
	theme    *ui.Theme
	width    int
	height   int
}

func NewEditor(title, content string, theme *ui.Theme) *Editor {
	ta := textarea.New()
	ta.SetValue(content)
	ta.CharLimit = 0
	ta.Focus()

	return &Editor{
		title:    title,
		textarea: ta,
		theme:    theme,
	}
}

func (e *Editor) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.textarea.SetWidth(width - 4)
	taHeight := height - PaneReservedLines - 2
	if taHeight < 3 {
		taHeight = 3
	}
	e.textarea.SetHeight(taHeight)
}

func (e *Editor) Update(msg tea.Msg) (*Editor, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+s":
			text := e.textarea.Value()
			return e, func() tea.Msg { return EditorSavedMsg{Text: text} }
		case "esc":
			return e, func() tea.Msg { return EditorCancelledMsg{} }
		}
	}

	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	return e, cmd
}

// Value returns the current editor text.
func (e *Editor) Value() string {
	return e.textarea.Value()
}

func (e *Editor) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(e.theme.Primary).
		Bold(true)
	hintStyle := lipgloss.NewStyle().
		Foreground(e.theme.Muted)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Edit: "+e.title),
		hintStyle.Render("[ctrl+s] save  [esc] cancel"),
		"",
		e.textarea.View(),
	)
}
