package forms

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/dealboard/internal/tui/theme"
)

// TextInput is a single-line text input field
type TextInput struct {
	key   string
	title string
	value *string
	input textinput.Model
}

// NewTextInput creates a new text input field bound to value
func NewTextInput(key, title, placeholder string, value *string) *TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	if value != nil && *value != "" {
		ti.SetValue(*value)
	}

	return &TextInput{
		key:   key,
		title: title,
		value: value,
		input: ti,
	}
}

// Update handles messages
func (t *TextInput) Update(msg tea.Msg) (Field, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)

	if t.value != nil {
		*t.value = t.input.Value()
	}

	return t, cmd
}

// View renders the text input
func (t *TextInput) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Subtle))
	if t.input.Focused() {
		titleStyle = titleStyle.Foreground(lipgloss.Color(theme.Highlight))
	}
	return titleStyle.Render(t.title) + "\n" + t.input.View()
}

func (t *TextInput) Focus() tea.Cmd {
	return t.input.Focus()
}

func (t *TextInput) Blur() {
	t.input.Blur()
}

func (t *TextInput) Focused() bool {
	return t.input.Focused()
}

func (t *TextInput) Key() string {
	return t.key
}

// Value returns the current value
func (t *TextInput) Value() string {
	return t.input.Value()
}
