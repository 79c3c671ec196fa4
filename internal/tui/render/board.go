package render

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/pipeline"
	"github.com/thenoetrevino/dealboard/internal/tui"
	"github.com/thenoetrevino/dealboard/internal/tui/components"
	"github.com/thenoetrevino/dealboard/internal/tui/layers"
	"github.com/thenoetrevino/dealboard/internal/tui/layout"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// BoardLayers renders the tab bar, the visible stage frames, and their
// cards at the positions in m.Layout
func BoardLayers(m *tui.Model) []*lipgloss.Layer {
	out := []*lipgloss.Layer{TabBarLayer(m)}

	if len(m.Board.Stages) == 0 {
		msg := components.SubtleStyle.Render("No stages in this pipeline")
		if m.Board.ID == "" {
			msg = components.SubtleStyle.Render("No pipeline selected")
		}
		return append(out, layers.CreateCenteredLayer(msg, m.UiState.Width(), m.UiState.Height()).Z(layers.BoardZ))
	}

	for _, box := range m.Layout.Stages {
		if box.Index >= len(m.Board.Stages) {
			continue
		}
		stage := m.Board.Stages[box.Index]
		selectedStage := box.Index == m.UiState.SelectedStage()

		frame := components.RenderStageFrame(stage, pipeline.StatsFor(stage), components.StageProps{
			Width:    box.Rect.Width,
			Height:   box.Rect.Height,
			Selected: selectedStage,
			Above:    box.Above,
			Below:    box.Below,
		})
		out = append(out, lipgloss.NewLayer(frame).X(box.Rect.X).Y(box.Rect.Y).Z(layers.BoardZ))

		for _, card := range box.Cards {
			if card.Index >= len(stage.Deals) {
				continue
			}
			deal := stage.Deals[card.Index]
			view := components.RenderCard(deal, components.CardProps{
				Width:    card.Rect.Width,
				Selected: selectedStage && card.Index == m.UiState.SelectedDeal(),
				Dimmed:   m.Drag.IsSource(string(deal.ID)),
			})
			out = append(out, lipgloss.NewLayer(view).X(card.Rect.X).Y(card.Rect.Y).Z(layers.CardZ))
		}
	}
	return out
}

// GhostLayer draws the lifted card at the drag controller's position,
// above everything but toasts and modals
func GhostLayer(m *tui.Model) *lipgloss.Layer {
	ghost, ok := m.Drag.Ghost()
	if !ok {
		return nil
	}
	deal, ok := findDeal(m.Board, types.DealID(ghost.ElementID))
	if !ok {
		return nil
	}
	view := components.RenderCard(deal, components.CardProps{
		Width: ghost.Size.Width,
		Ghost: ghost.Tilted,
	})
	return lipgloss.NewLayer(view).X(ghost.Pos.X).Y(ghost.Pos.Y).Z(ghost.Z)
}

// TabBarLayer renders the pipeline tabs with the signed-in user on the right
func TabBarLayer(m *tui.Model) *lipgloss.Layer {
	names := make([]string, len(m.Pipelines))
	for i, p := range m.Pipelines {
		names[i] = p.Name
	}
	user := m.User
	if user == "" {
		user = "not signed in"
	}
	tabs := components.RenderTabs(names, m.PipelineIndex(), m.UiState.Width(), user)
	return lipgloss.NewLayer(tabs).X(0).Y(0).Z(layers.BoardZ)
}

// StatusBarLayer renders the bottom line
func StatusBarLayer(m *tui.Model) *lipgloss.Layer {
	props := components.StatusBarProps{
		Width:   m.UiState.Width(),
		Summary: summary(m.Board),
	}
	switch {
	case m.UiState.Mode() == state.SearchMode:
		props.SearchInput = m.SearchState.Input.View()
	case m.Drag.Active():
		if deal, ok := findDeal(m.Board, types.DealID(m.Drag.ElementID())); ok {
			props.Dragging = deal.Name
		}
	case m.SearchState.IsActive:
		props.SearchQuery = m.SearchState.Query
	}

	bar := components.RenderStatusBar(props)
	y := max(m.UiState.Height()-layout.StatusBarHeight, 0)
	return lipgloss.NewLayer(bar).X(0).Y(y).Z(layers.BoardZ)
}

func summary(p models.Pipeline) string {
	stats := pipeline.PipelineStats(p)
	return fmt.Sprintf("%d deals · %s · weighted %s",
		stats.Count, pipeline.FormatMoney(stats.Total), pipeline.FormatMoney(stats.Weighted))
}

func findDeal(p models.Pipeline, id types.DealID) (models.Deal, bool) {
	for _, s := range p.Stages {
		for _, d := range s.Deals {
			if d.ID == id {
				return d, true
			}
		}
	}
	return models.Deal{}, false
}
