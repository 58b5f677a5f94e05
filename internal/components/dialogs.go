package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/ponte/internal/ui"
)

// ConfirmResultMsg reports the outcome of a confirmation dialog.
type ConfirmResultMsg struct {
	Accepted bool
}

// Confirm asks a yes/no question before a destructive action.
type Confirm struct {
	prompt string
	theme  *ui.Theme
	width  int
	height int
}

func NewConfirm(prompt string, theme *ui.Theme) *Confirm {
	return &Confirm{
		prompt: prompt,
		theme:  theme,
	}
}

func (c *Confirm) SetSize(width, height int) {
	c.width = width
	c.height = height
}

func (c *Confirm) Update(msg tea.Msg) (*Confirm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y", "enter":
			return c, func() tea.Msg { return ConfirmResultMsg{Accepted: true} }
		case "n", "N", "esc":
			return c, func() tea.Msg { return ConfirmResultMsg{Accepted: false} }
		}
	}
	return c, nil
}

func (c *Confirm) View() string {
	promptStyle := lipgloss.NewStyle().
		Foreground(c.theme.Foreground).
		Bold(true)
	hintStyle := lipgloss.NewStyle().
		Foreground(c.theme.Muted)

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		promptStyle.Render(c.prompt),
		"",
		hintStyle.Render("[y] confirm  [n/esc] cancel"),
	)

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.theme.Warning).
		Padding(1, 2)

	return lipgloss.Place(c.width, c.height, lipgloss.Center, lipgloss.Center,
		modalStyle.Render(body))
}

// InputSubmittedMsg carries the submitted value of an input dialog.
type InputSubmittedMsg struct {
	Value string
}

// InputCancelledMsg is emitted when the input dialog is dismissed.
type InputCancelledMsg struct{}

// InputDialog is a one-line input modal, used for the scale replica count.
type InputDialog struct {
	title  string
	input  textinput.Model
	theme  *ui.Theme
	width  int
	height int
}

func NewInputDialog(title, placeholder, initial string, theme *ui.Theme) *InputDialog {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 8
	ti.Width = 20
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()

	return &InputDialog{
		title: title,
		input: ti,
		theme: theme,
	}
}

func (d *InputDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

func (d *InputDialog) Update(msg tea.Msg) (*InputDialog, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			value := d.input.Value()
			return d, func() tea.Msg { return InputSubmittedMsg{Value: value} }
		case "esc":
			return d, func() tea.Msg { return InputCancelledMsg{} }
		}
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

// Value returns the current input text.
func (d *InputDialog) Value() string {
	return d.input.Value()
}

func (d *InputDialog) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(d.theme.Primary).
		Bold(true)
	hintStyle := lipgloss.NewStyle().
		Foreground(d.theme.Muted)

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(d.title),
		"",
		d.input.View(),
		"",
		hintStyle.Render("[enter] apply  [esc] cancel"),
	)

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(d.theme.Primary).
		Padding(1, 2)

	return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center,
		modalStyle.Render(body))
}
