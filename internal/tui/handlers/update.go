// Package handlers implements the board's Update: key, mouse, and store
// messages mutate the tui.Model through the services.
package handlers

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/dealboard/internal/tui"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
)

// Update is the main update dispatcher that handles all messages and updates the model.
// This implements the "Update" part of the Model-View-Update pattern.
func Update(m *tui.Model, msg tea.Msg) tea.Cmd {
	select {
	case <-m.Ctx.Done():
		return tea.Quit
	default:
	}

	cmd := dispatch(m, msg)

	// Keep hit testing in step with what the next View draws
	m.Relayout()
	return cmd
}

func dispatch(m *tui.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tui.BoardChangedMsg:
		m.Reload()
		return m.WaitForChange()

	case tui.DismissNotificationMsg:
		m.NotificationState.Dismiss(msg.ID)
		return nil

	case tea.WindowSizeMsg:
		return HandleWindowResize(m, msg)

	case tea.KeyPressMsg:
		return HandleKeyMsg(m, msg)

	case tea.MouseClickMsg:
		return HandleMouseClick(m, msg)

	case tea.MouseMotionMsg:
		return HandleMouseMotion(m, msg)

	case tea.MouseReleaseMsg:
		return HandleMouseRelease(m, msg)

	case tea.MouseWheelMsg:
		return HandleMouseWheel(m, msg)
	}

	// Cursor blinks and other component messages go to whatever has focus
	switch m.UiState.Mode() {
	case state.SearchMode:
		_, cmd := m.SearchState.Update(msg)
		return cmd
	case state.DealFormMode:
		if m.FormState.Form != nil {
			_, cmd := m.FormState.Form.Update(msg)
			return cmd
		}
	}
	return nil
}

// HandleKeyMsg dispatches key messages to the appropriate mode handler.
func HandleKeyMsg(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	switch m.UiState.Mode() {
	case state.NormalMode:
		return HandleNormalMode(m, msg)
	case state.SearchMode:
		return HandleSearchMode(m, msg)
	case state.HelpMode:
		return HandleHelpMode(m, msg)
	case state.DeleteConfirmMode:
		return HandleDeleteConfirm(m, msg)
	case state.DealFormMode:
		return HandleDealForm(m, msg)
	}
	return nil
}

// HandleWindowResize handles terminal resize events.
func HandleWindowResize(m *tui.Model, msg tea.WindowSizeMsg) tea.Cmd {
	m.UiState.SetWidth(msg.Width)
	m.UiState.SetHeight(msg.Height)
	m.NotificationState.SetWindowSize(msg.Width, msg.Height)

	// A resize mid-drag invalidates the captured geometry
	m.Drag.End()

	m.ClampSelection()
	return nil
}
