package handlers

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	dealservice "github.com/thenoetrevino/dealboard/internal/services/deal"
	"github.com/thenoetrevino/dealboard/internal/tui"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// ============================================================================
// NORMAL MODE HANDLERS
// ============================================================================

// HandleNormalMode dispatches key events in NormalMode to specific handlers.
func HandleNormalMode(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	km := m.Config.KeyMappings

	switch key {
	case km.Quit, "ctrl+c":
		return tea.Quit
	case "esc":
		if m.Drag.Active() {
			m.Drag.End()
			return nil
		}
		return HandleClearSearch(m)
	case km.ShowHelp:
		m.UiState.SetMode(state.HelpMode)
		return nil
	case km.Search:
		return HandleEnterSearch(m)
	case km.AddDeal:
		return HandleAddDeal(m)
	case km.EditDeal, "enter":
		return HandleEditDeal(m)
	case km.DeleteDeal:
		return handleDeleteDeal(m)
	case km.CyclePriority:
		return handleCyclePriority(m)
	case km.MoveDealLeft:
		return moveSelected(m, m.App.DealService.MoveDealToPrevStage)
	case km.MoveDealRight:
		return moveSelected(m, m.App.DealService.MoveDealToNextStage)
	case km.MoveDealUp:
		return moveSelected(m, m.App.DealService.MoveDealUp)
	case km.MoveDealDown:
		return moveSelected(m, m.App.DealService.MoveDealDown)
	case km.PrevStage, "left":
		return handleNavigateStage(m, -1)
	case km.NextStage, "right":
		return handleNavigateStage(m, 1)
	case km.PrevDeal, "up":
		return handleNavigateDeal(m, -1)
	case km.NextDeal, "down":
		return handleNavigateDeal(m, 1)
	case km.PrevPipeline:
		return handleSwitchPipeline(m, -1)
	case km.NextPipeline:
		return handleSwitchPipeline(m, 1)
	}
	return nil
}

// handleNavigateStage moves the selection to a neighbouring stage
func handleNavigateStage(m *tui.Model, delta int) tea.Cmd {
	next := m.UiState.SelectedStage() + delta
	if next < 0 || next >= len(m.Board.Stages) {
		return nil
	}
	m.UiState.SetSelectedStage(next)
	m.ClampSelection()

	stage := m.Board.Stages[next]
	m.UiState.EnsureDealVisible(stage.ID, m.UiState.SelectedDeal())
	return nil
}

// handleNavigateDeal moves the selection within the current stage
func handleNavigateDeal(m *tui.Model, delta int) tea.Cmd {
	stage, ok := m.CurrentStage()
	if !ok {
		return nil
	}
	next := m.UiState.SelectedDeal() + delta
	if next < 0 || next >= len(stage.Deals) {
		return nil
	}
	m.UiState.SetSelectedDeal(next)
	m.UiState.EnsureDealVisible(stage.ID, next)
	return nil
}

// handleSwitchPipeline selects the previous or next pipeline tab, wrapping
func handleSwitchPipeline(m *tui.Model, delta int) tea.Cmd {
	if len(m.Pipelines) < 2 {
		return nil
	}
	i := (m.PipelineIndex() + delta + len(m.Pipelines)) % len(m.Pipelines)
	return selectPipeline(m, m.Pipelines[i].ID)
}

func selectPipeline(m *tui.Model, id types.PipelineID) tea.Cmd {
	if id == m.Board.ID {
		return nil
	}
	m.Drag.End()
	if err := m.App.DealService.SelectPipeline(m.Ctx, id); err != nil {
		return m.NotifyError("switch pipeline", err)
	}
	m.UiState.ResetSelection()
	m.Reload()
	return nil
}

// moveSelected runs a keyboard move and keeps the selection on the deal
func moveSelected(m *tui.Model, move func(context.Context, types.DealID) error) tea.Cmd {
	deal, ok := m.CurrentDeal()
	if !ok {
		return nil
	}

	err := move(m.Ctx, deal.ID)
	switch {
	case errors.Is(err, dealservice.ErrAlreadyFirstStage),
		errors.Is(err, dealservice.ErrAlreadyLastStage),
		errors.Is(err, dealservice.ErrAlreadyFirstDeal),
		errors.Is(err, dealservice.ErrAlreadyLastDeal):
		return nil
	case err != nil:
		return m.NotifyError("move deal", err)
	}

	m.Reload()
	m.SelectDeal(deal.ID)
	return nil
}

func handleCyclePriority(m *tui.Model) tea.Cmd {
	deal, ok := m.CurrentDeal()
	if !ok {
		return nil
	}
	if _, err := m.App.DealService.CyclePriority(m.Ctx, deal.ID); err != nil {
		return m.NotifyError("change priority", err)
	}
	m.Reload()
	return nil
}

func handleDeleteDeal(m *tui.Model) tea.Cmd {
	deal, ok := m.CurrentDeal()
	if !ok {
		return nil
	}
	m.UiState.SetDeleteTarget(&state.DeleteTarget{DealID: deal.ID, Name: deal.Name})
	m.UiState.SetMode(state.DeleteConfirmMode)
	return nil
}

// HandleAddDeal opens an empty deal form for the selected stage
func HandleAddDeal(m *tui.Model) tea.Cmd {
	stage, ok := m.CurrentStage()
	if !ok {
		return m.Notify(state.LevelWarning, "this pipeline has no stages")
	}
	m.Drag.End()
	m.UiState.SetMode(state.DealFormMode)
	return m.FormState.Open(stage.ID, "", state.DealValues{Owner: m.Owner})
}

// HandleEditDeal opens the deal form over the selected deal
func HandleEditDeal(m *tui.Model) tea.Cmd {
	deal, ok := m.CurrentDeal()
	if !ok {
		return nil
	}
	m.Drag.End()
	m.UiState.SetMode(state.DealFormMode)
	return m.FormState.Open(deal.Stage, deal.ID, state.ValuesFromDeal(deal))
}

// describe is the toast text for a finished action
func describe(verb string, name string) string {
	return fmt.Sprintf("%s %q", verb, name)
}
