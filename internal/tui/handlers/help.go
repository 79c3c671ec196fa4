package handlers

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/dealboard/internal/tui"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
)

// HandleHelpMode closes the help screen on any key.
func HandleHelpMode(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	m.UiState.SetMode(state.NormalMode)
	return nil
}
