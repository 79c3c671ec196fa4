package handlers

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/dealboard/internal/tui"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
)

// HandleDeleteConfirm handles the y/n prompt before a deal is deleted.
func HandleDeleteConfirm(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	target := m.UiState.DeleteTarget()

	switch msg.String() {
	case "y", "Y":
		m.UiState.SetMode(state.NormalMode)
		m.UiState.SetDeleteTarget(nil)
		if target == nil {
			return nil
		}
		if err := m.App.DealService.DeleteDeal(m.Ctx, target.DealID); err != nil {
			return m.NotifyError("delete deal", err)
		}
		m.Reload()
		return m.Notify(state.LevelInfo, describe("Deleted", target.Name))

	case "n", "N", "esc", "q":
		m.UiState.SetMode(state.NormalMode)
		m.UiState.SetDeleteTarget(nil)
	}
	return nil
}
