// Package layers provides utility functions for creating and managing UI layers
package layers

import "charm.land/lipgloss/v2"

// Z order of the board's layers, lowest first
const (
	BoardZ = 0
	CardZ  = 1
	// ModalZ keeps dialogs above cards; the drag ghost and toasts sit higher
	ModalZ = 500
)

// CreateCenteredLayer creates a layer positioned at the center of the screen.
// Returns nil if content is empty.
func CreateCenteredLayer(content string, screenWidth int, screenHeight int) *lipgloss.Layer {
	if content == "" {
		return nil
	}

	x := max((screenWidth-lipgloss.Width(content))/2, 0)
	y := max((screenHeight-lipgloss.Height(content))/2, 0)

	return lipgloss.NewLayer(content).X(x).Y(y).Z(ModalZ)
}

// ModalWidth sizes a dialog to a fraction of the screen within bounds
func ModalWidth(screenWidth, minWidth, maxWidth int) int {
	return min(max(screenWidth*3/5, minWidth), maxWidth, max(screenWidth-2, 1))
}
