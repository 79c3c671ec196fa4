// Package tui builds board models and input messages for TUI tests
package tui

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/dealboard/internal/app"
	clitest "github.com/thenoetrevino/dealboard/internal/testutil/cli"
	"github.com/thenoetrevino/dealboard/internal/tui"
)

// Default screen size: four 30-cell stages, five cards per stage
const (
	Width  = 120
	Height = 40
)

// NewModel builds a board over the built-in pipelines, already sized
// to Width x Height
func NewModel(t *testing.T, opts ...app.Option) *tui.Model {
	t.Helper()

	a := clitest.SetupCLITest(t, opts...)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m, err := tui.New(ctx, a, "")
	if err != nil {
		t.Fatalf("Failed to create model: %v", err)
	}
	Resize(m, Width, Height)
	return m
}

// Resize applies a window size the way the resize handler does
func Resize(m *tui.Model, width, height int) {
	m.UiState.SetWidth(width)
	m.UiState.SetHeight(height)
	m.NotificationState.SetWindowSize(width, height)
	m.ClampSelection()
	m.Relayout()
}

// Key is a printable key press
func Key(s string) tea.KeyPressMsg {
	r := []rune(s)
	return tea.KeyPressMsg(tea.Key{Text: s, Code: r[0]})
}

// Special is a named key press such as tea.KeyEnter or tea.KeyEsc
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// Ctrl is a ctrl+letter press
func Ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: r, Mod: tea.ModCtrl})
}

// Click is a left-button press at x, y
func Click(x, y int) tea.MouseClickMsg {
	return tea.MouseClickMsg(tea.Mouse{X: x, Y: y, Button: tea.MouseLeft})
}

// Motion is a drag motion at x, y
func Motion(x, y int) tea.MouseMotionMsg {
	return tea.MouseMotionMsg(tea.Mouse{X: x, Y: y, Button: tea.MouseLeft})
}

// Release is a left-button release at x, y
func Release(x, y int) tea.MouseReleaseMsg {
	return tea.MouseReleaseMsg(tea.Mouse{X: x, Y: y, Button: tea.MouseLeft})
}

// Wheel is a scroll at x, y
func Wheel(x, y int, down bool) tea.MouseWheelMsg {
	button := tea.MouseWheelUp
	if down {
		button = tea.MouseWheelDown
	}
	return tea.MouseWheelMsg(tea.Mouse{X: x, Y: y, Button: button})
}

// DealIDs lists a stage's deal ids in order
func DealIDs(m *tui.Model, stageIndex int) []string {
	var ids []string
	for _, d := range m.Board.Stages[stageIndex].Deals {
		ids = append(ids, string(d.ID))
	}
	return ids
}
