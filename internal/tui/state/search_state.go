package state

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

const maxQueryLength = 100

// SearchState manages the vim-style search functionality state.
// The input is live while typing; Query holds the applied filter.
type SearchState struct {
	Input textinput.Model

	// Query is the filter currently applied to the board
	Query string

	// IsActive indicates whether the search filter is applied
	IsActive bool
}

// NewSearchState creates a new SearchState with default values.
func NewSearchState() *SearchState {
	input := textinput.New()
	input.Placeholder = "name, company, owner, or tag"
	input.CharLimit = maxQueryLength
	input.Prompt = ""
	return &SearchState{Input: input}
}

// Start focuses the input, keeping the applied query for editing.
func (s *SearchState) Start() tea.Cmd {
	s.Input.SetValue(s.Query)
	s.Input.CursorEnd()
	return s.Input.Focus()
}

// Update feeds a key to the input and reports whether the text changed.
func (s *SearchState) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := s.Input.Value()
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s.Input.Value() != before, cmd
}

// Term is the text being typed, trimmed.
func (s *SearchState) Term() string {
	return strings.TrimSpace(s.Input.Value())
}

// Activate applies the typed term. A blank term clears the filter.
func (s *SearchState) Activate() {
	s.Input.Blur()
	s.Query = s.Term()
	s.IsActive = s.Query != ""
}

// Deactivate clears the filter and the input.
func (s *SearchState) Deactivate() {
	s.Input.Blur()
	s.Input.SetValue("")
	s.Query = ""
	s.IsActive = false
}

// Preview applies the typed term while the input keeps focus.
func (s *SearchState) Preview() {
	s.Query = s.Term()
	s.IsActive = s.Query != ""
}
