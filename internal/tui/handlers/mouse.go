package handlers

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/dealboard/internal/drag"
	dealservice "github.com/thenoetrevino/dealboard/internal/services/deal"
	"github.com/thenoetrevino/dealboard/internal/tui"
	"github.com/thenoetrevino/dealboard/internal/tui/components"
	"github.com/thenoetrevino/dealboard/internal/tui/layout"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// ============================================================================
// MOUSE HANDLERS
// ============================================================================

// HandleMouseClick selects what was clicked. A press on a card also lifts
// it: the drag controller captures the pointer offset so the ghost keeps
// the same grip while it follows the mouse.
func HandleMouseClick(m *tui.Model, msg tea.MouseClickMsg) tea.Cmd {
	if m.UiState.Mode() != state.NormalMode || msg.Button != tea.MouseLeft {
		return nil
	}
	pt := drag.Point{X: msg.X, Y: msg.Y}

	if idx, ok := layout.TabAt(tabWidths(m), pt); ok {
		return selectPipeline(m, m.Pipelines[idx].ID)
	}

	if card, stage, ok := m.Layout.CardAt(pt); ok {
		m.UiState.SetSelectedStage(stage.Index)
		m.UiState.SetSelectedDeal(card.Index)

		// A stale drag would otherwise swallow this press
		m.Drag.End()
		if err := m.Drag.Begin(drag.MouseAt(msg.X, msg.Y), string(card.ID)); err != nil {
			m.Logger.Warn("drag begin", "deal_id", card.ID, "error", err)
		}
		return nil
	}

	if stage, ok := m.Layout.StageAt(pt); ok {
		m.UiState.SetSelectedStage(stage.Index)
		m.ClampSelection()
	}
	return nil
}

// HandleMouseMotion moves the ghost with the pointer
func HandleMouseMotion(m *tui.Model, msg tea.MouseMotionMsg) tea.Cmd {
	if !m.Drag.Active() {
		return nil
	}
	m.Drag.Track(drag.MouseAt(msg.X, msg.Y))
	return nil
}

// HandleMouseRelease drops the dragged card into the stage and slot under
// the pointer. Releasing outside any stage cancels the drag.
func HandleMouseRelease(m *tui.Model, msg tea.MouseReleaseMsg) tea.Cmd {
	if !m.Drag.Active() {
		return nil
	}
	dealID := types.DealID(m.Drag.ElementID())
	defer m.Drag.End()

	destStage, slot, ok := m.Layout.DropTarget(drag.Point{X: msg.X, Y: msg.Y})
	if !ok {
		return nil
	}

	_, sourceStage, sourceIndex, found := m.App.Store.FindDeal(dealID)
	if !found {
		return m.NotifyError("move deal", dealservice.ErrDealNotFound)
	}

	destIndex := m.FullIndex(destStage, slot)
	// Slots count the dragged card itself; after it is lifted out every
	// later slot in its own stage shifts up by one.
	if destStage == sourceStage && destIndex > sourceIndex {
		destIndex--
	}

	err := m.App.DealService.MoveDeal(m.Ctx, dealservice.MoveDealRequest{
		DealID:        dealID,
		SourceStageID: sourceStage,
		DestStageID:   destStage,
		SourceIndex:   sourceIndex,
		DestIndex:     destIndex,
	})
	if err != nil {
		m.Reload()
		return m.NotifyError("move deal", err)
	}

	m.Reload()
	m.SelectDeal(dealID)
	return nil
}

// HandleMouseWheel scrolls the stage under the pointer
func HandleMouseWheel(m *tui.Model, msg tea.MouseWheelMsg) tea.Cmd {
	if m.UiState.Mode() != state.NormalMode || m.Drag.Active() {
		return nil
	}
	stage, ok := m.Layout.StageAt(drag.Point{X: msg.X, Y: msg.Y})
	if !ok {
		return nil
	}

	switch msg.Button {
	case tea.MouseWheelUp:
		m.UiState.ScrollDeals(stage.ID, -1, stage.Total)
	case tea.MouseWheelDown:
		m.UiState.ScrollDeals(stage.ID, 1, stage.Total)
	}
	return nil
}

// tabWidths are the rendered widths of the pipeline tabs, left to right
func tabWidths(m *tui.Model) []int {
	widths := make([]int, len(m.Pipelines))
	for i, p := range m.Pipelines {
		widths[i] = components.TabWidth(p.Name)
	}
	return widths
}
