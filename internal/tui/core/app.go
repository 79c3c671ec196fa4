// Package core ties the board model, its handlers, and its renderer into a
// tea.Model
package core

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/dealboard/internal/app"
	"github.com/thenoetrevino/dealboard/internal/tui"
	"github.com/thenoetrevino/dealboard/internal/tui/handlers"
	"github.com/thenoetrevino/dealboard/internal/tui/render"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// App wraps the TUI Model and implements the tea.Model interface.
// This is the single entry point for the Bubble Tea application.
type App struct {
	model *tui.Model
}

// New creates a new App with an initialized Model.
func New(ctx context.Context, a *app.App, pipelineID types.PipelineID) (*App, error) {
	model, err := tui.New(ctx, a, pipelineID)
	if err != nil {
		return nil, err
	}
	return &App{model: model}, nil
}

// Init starts the store subscription.
func (a *App) Init() tea.Cmd {
	return a.model.Init()
}

// Update handles all messages through handlers.Update.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a, handlers.Update(a.model, msg)
}

// View renders the current state through render.View.
func (a *App) View() tea.View {
	return render.View(a.model)
}

// GetModel returns the underlying Model.
// This is primarily useful for testing purposes.
func (a *App) GetModel() *tui.Model {
	return a.model
}
