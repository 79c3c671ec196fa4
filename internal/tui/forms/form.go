package forms

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// FormState represents the state of the form
type FormState int

const (
	StateInProgress FormState = iota
	StateCompleted
	StateAborted
)

// Field is the interface that all form fields must implement
type Field interface {
	// Update handles messages and updates the field
	Update(tea.Msg) (Field, tea.Cmd)

	// View renders the field
	View() string

	// Focus focuses the field
	Focus() tea.Cmd

	// Blur removes focus from the field
	Blur()

	// Focused returns whether the field is focused
	Focused() bool

	// Key returns the field's key (used to retrieve values)
	Key() string
}

// Form manages a collection of fields
type Form struct {
	fields       []Field
	focusedIndex int
	state        FormState
}

// NewForm creates a new form with the given fields
func NewForm(fields ...Field) *Form {
	return &Form{
		fields: fields,
		state:  StateInProgress,
	}
}

// Init focuses the first field
func (f *Form) Init() tea.Cmd {
	if len(f.fields) > 0 {
		return f.fields[0].Focus()
	}
	return nil
}

// Update handles messages for the form. Enter advances to the next field
// and submits from the last one; ctrl+s submits from anywhere.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if f.state != StateInProgress {
		return f, nil
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "esc":
			f.state = StateAborted
			return f, nil

		case "ctrl+s":
			f.state = StateCompleted
			return f, nil

		case "tab", "shift+tab", "down", "up":
			reverse := keyMsg.String() == "shift+tab" || keyMsg.String() == "up"
			return f, f.move(reverse)

		case "enter":
			if f.focusedIndex == len(f.fields)-1 {
				f.state = StateCompleted
				return f, nil
			}
			return f, f.move(false)
		}
	}

	if f.focusedIndex < len(f.fields) {
		var cmd tea.Cmd
		f.fields[f.focusedIndex], cmd = f.fields[f.focusedIndex].Update(msg)
		return f, cmd
	}
	return f, nil
}

// move shifts focus one field forward or back, wrapping at the ends
func (f *Form) move(reverse bool) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}

	f.fields[f.focusedIndex].Blur()

	if reverse {
		f.focusedIndex--
		if f.focusedIndex < 0 {
			f.focusedIndex = len(f.fields) - 1
		}
	} else {
		f.focusedIndex++
		if f.focusedIndex >= len(f.fields) {
			f.focusedIndex = 0
		}
	}

	return f.fields[f.focusedIndex].Focus()
}

// View renders the form
func (f *Form) View() string {
	views := make([]string, 0, len(f.fields))
	for _, field := range f.fields {
		views = append(views, field.View())
	}
	return strings.Join(views, "\n\n")
}

// State returns the current form state
func (f *Form) State() FormState {
	return f.state
}

// Reopen puts a submitted form back in progress, e.g. after a validation error
func (f *Form) Reopen() {
	f.state = StateInProgress
}

// Focused returns the key of the focused field
func (f *Form) Focused() string {
	if f.focusedIndex < len(f.fields) {
		return f.fields[f.focusedIndex].Key()
	}
	return ""
}

// Get retrieves a field by key
func (f *Form) Get(key string) Field {
	for _, field := range f.fields {
		if field.Key() == key {
			return field
		}
	}
	return nil
}
