package forms

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/dealboard/internal/tui/theme"
)

// Choice picks one of a fixed set of options with left/right
type Choice struct {
	key     string
	title   string
	options []string
	value   *string
	focused bool
	index   int
}

// NewChoice creates a choice field bound to value. An unknown initial
// value selects the first option.
func NewChoice(key, title string, options []string, value *string) *Choice {
	c := &Choice{
		key:     key,
		title:   title,
		options: options,
		value:   value,
	}
	if value != nil {
		for i, o := range options {
			if o == *value {
				c.index = i
			}
		}
	}
	c.sync()
	return c
}

func (c *Choice) sync() {
	if c.value != nil && len(c.options) > 0 {
		*c.value = c.options[c.index]
	}
}

// Update handles messages
func (c *Choice) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !c.focused || len(c.options) == 0 {
		return c, nil
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "left", "h":
			c.index = (c.index - 1 + len(c.options)) % len(c.options)
		case "right", "l", "space":
			c.index = (c.index + 1) % len(c.options)
		}
		c.sync()
	}

	return c, nil
}

// View renders the options with the current one highlighted
func (c *Choice) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Subtle))
	if c.focused {
		titleStyle = titleStyle.Foreground(lipgloss.Color(theme.Highlight))
	}
	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Highlight))
	unselected := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))

	opts := make([]string, len(c.options))
	for i, o := range c.options {
		if i == c.index {
			opts[i] = selected.Render("[" + o + "]")
		} else {
			opts[i] = unselected.Render(" " + o + " ")
		}
	}
	return titleStyle.Render(c.title) + "\n" + strings.Join(opts, " ")
}

func (c *Choice) Focus() tea.Cmd {
	c.focused = true
	return nil
}

func (c *Choice) Blur() {
	c.focused = false
}

func (c *Choice) Focused() bool {
	return c.focused
}

func (c *Choice) Key() string {
	return c.key
}

// Value returns the selected option
func (c *Choice) Value() string {
	if len(c.options) == 0 {
		return ""
	}
	return c.options[c.index]
}
