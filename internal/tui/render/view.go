// Package render draws the board as a stack of Lip Gloss layers
package render

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/dealboard/internal/tui"
	"github.com/thenoetrevino/dealboard/internal/tui/notifications"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
)

// View is the main view dispatcher that renders the current state of the application.
// This implements the "View" part of the Model-View-Update pattern.
func View(m *tui.Model) tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion

	// Wait for terminal size to be initialized
	if m.UiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	canvas := lipgloss.NewCanvas(Layers(m)...)
	view.Content = canvas.Render()
	return view
}

// Layers builds every layer of the current frame: the board, the dragged
// ghost, toasts, and the modal for the current mode.
func Layers(m *tui.Model) []*lipgloss.Layer {
	width, height := m.UiState.Width(), m.UiState.Height()

	// The background pins the canvas to the full screen
	background := lipgloss.NewStyle().Width(width).Height(height).Render("")
	layers := []*lipgloss.Layer{lipgloss.NewLayer(background)}

	layers = append(layers, BoardLayers(m)...)
	if ghost := GhostLayer(m); ghost != nil {
		layers = append(layers, ghost)
	}
	layers = append(layers, StatusBarLayer(m))
	layers = append(layers, m.NotificationState.GetLayers(notifications.RenderFromState)...)

	var modal *lipgloss.Layer
	switch m.UiState.Mode() {
	case state.DealFormMode:
		modal = RenderDealFormLayer(m)
	case state.DeleteConfirmMode:
		modal = RenderDeleteConfirmLayer(m)
	case state.HelpMode:
		modal = RenderHelpLayer(m)
	}
	if modal != nil {
		layers = append(layers, modal)
	}
	return layers
}
