package handlers

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/dealboard/internal/tui"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
)

// HandleEnterSearch enters search mode, keeping an applied query editable.
func HandleEnterSearch(m *tui.Model) tea.Cmd {
	m.Drag.End()
	m.UiState.SetMode(state.SearchMode)
	return m.SearchState.Start()
}

// HandleSearchMode handles keyboard input in search mode. The board
// filters as the user types.
func HandleSearchMode(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.SearchState.Activate()
		m.UiState.SetMode(state.NormalMode)
		return refilter(m)
	case "esc", "ctrl+c":
		m.SearchState.Deactivate()
		m.UiState.SetMode(state.NormalMode)
		return refilter(m)
	}

	changed, cmd := m.SearchState.Update(msg)
	if changed {
		m.SearchState.Preview()
		return tea.Batch(cmd, refilter(m))
	}
	return cmd
}

// HandleClearSearch drops an applied filter from normal mode.
func HandleClearSearch(m *tui.Model) tea.Cmd {
	if !m.SearchState.IsActive {
		return nil
	}
	m.SearchState.Deactivate()
	return refilter(m)
}

// refilter reloads the board and keeps the selection on the same deal when
// it is still shown
func refilter(m *tui.Model) tea.Cmd {
	selected, hadSelection := m.CurrentDeal()

	m.Reload()
	if !hadSelection || !m.SelectDeal(selected.ID) {
		m.UiState.SetSelectedDeal(0)
	}
	return nil
}
