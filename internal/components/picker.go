package components

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/ponte/internal/ui"
)

// PickerSelectedMsg is emitted when the user confirms a picker entry.
type PickerSelectedMsg struct {
	ID string
}

// PickerCancelledMsg is emitted when the picker is dismissed.
type PickerCancelledMsg struct{}

// PickerItem is one selectable entry.
type PickerItem struct {
	ID     string
	Name   string
	Detail string
}

func (i PickerItem) FilterValue() string { return i.Name }
func (i PickerItem) Title() string       { return i.Name }
func (i PickerItem) Description() string { return i.Detail }

// Picker is a centered modal list used to choose a context, namespace or
// container. Typing filters the entries.
type Picker struct {
	list   list.Model
	theme  *ui.Theme
	width  int
	height int
}

// NewPicker creates a picker overlay with the given title and entries.
func NewPicker(title string, items []PickerItem, theme *ui.Theme) *Picker {
	entries := make([]list.Item, len(items))
	for i, item := range items {
		entries[i] = item
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(entries, delegate, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Accent)

	return &Picker{
		list:  l,
		theme: theme,
	}
}

func (p *Picker) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *Picker) Update(msg tea.Msg) (*Picker, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While the list's own filter input is active, every key belongs
		// to it (esc there exits filtering, not the picker).
		if p.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := p.list.SelectedItem().(PickerItem); ok {
				return p, func() tea.Msg {
					return PickerSelectedMsg{ID: item.ID}
				}
			}
		case "esc":
			return p, func() tea.Msg {
				return PickerCancelledMsg{}
			}
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p *Picker) View() string {
	modalHeight := int(float64(p.height) * 0.8)
	if modalHeight < MinPickerHeight {
		modalHeight = MinPickerHeight
	}
	modalWidth := PickerWidth

	// List size = modal size minus border and padding
	p.list.SetSize(modalWidth-6, modalHeight-4)

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.theme.Primary).
		Padding(1, 2)

	modal := modalStyle.Width(modalWidth).Height(modalHeight).Render(p.list.View())
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, modal)
}
