package handlers

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealboard/internal/models"
	tuitest "github.com/thenoetrevino/dealboard/internal/testutil/tui"
	"github.com/thenoetrevino/dealboard/internal/tui"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
)

func send(m *tui.Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		Update(m, msg)
	}
}

func typeText(m *tui.Model, text string) {
	for _, r := range text {
		Update(m, tuitest.Key(string(r)))
	}
}

func selected(t *testing.T, m *tui.Model) models.Deal {
	t.Helper()
	deal, ok := m.CurrentDeal()
	require.True(t, ok, "expected a selected deal")
	return deal
}

// ============================================================================
// KEYBOARD
// ============================================================================

func TestNavigation(t *testing.T) {
	m := tuitest.NewModel(t)
	assert.Equal(t, "deal-1", string(selected(t, m).ID))

	send(m, tuitest.Key("j"))
	assert.Equal(t, "deal-2", string(selected(t, m).ID))

	send(m, tuitest.Key("j")) // bottom of stage
	assert.Equal(t, "deal-2", string(selected(t, m).ID))

	send(m, tuitest.Key("l"))
	assert.Equal(t, 1, m.UiState.SelectedStage())
	assert.Equal(t, "deal-3", string(selected(t, m).ID), "selection clamps to the shorter stage")

	send(m, tuitest.Special(tea.KeyLeft), tuitest.Special(tea.KeyLeft))
	assert.Equal(t, 0, m.UiState.SelectedStage())
}

func TestNavigationScrollsViewport(t *testing.T) {
	m := tuitest.NewModel(t)
	for range 5 {
		send(m, tuitest.Key("l"))
	}
	assert.Equal(t, 5, m.UiState.SelectedStage())
	assert.Equal(t, 2, m.UiState.ViewportOffset())
	assert.Equal(t, "closed-won", string(m.Layout.Stages[len(m.Layout.Stages)-1].ID))
}

func TestMoveDealToNextStage(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Key(">"))

	assert.Equal(t, []string{"deal-2"}, tuitest.DealIDs(m, 0))
	assert.Equal(t, []string{"deal-3", "deal-1"}, tuitest.DealIDs(m, 1))
	deal := selected(t, m)
	assert.Equal(t, "deal-1", string(deal.ID), "selection follows the moved deal")
	assert.Equal(t, 25, deal.Probability)
}

func TestMoveDealAtBoundaryIsQuiet(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Key("<"), tuitest.Key("K"))

	assert.Equal(t, []string{"deal-1", "deal-2"}, tuitest.DealIDs(m, 0))
	assert.False(t, m.NotificationState.HasAny())
}

func TestMoveDealDownAndUp(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Key("J"))
	assert.Equal(t, []string{"deal-2", "deal-1"}, tuitest.DealIDs(m, 0))
	assert.Equal(t, 1, m.UiState.SelectedDeal())

	send(m, tuitest.Key("K"))
	assert.Equal(t, []string{"deal-1", "deal-2"}, tuitest.DealIDs(m, 0))
}

func TestCyclePriority(t *testing.T) {
	m := tuitest.NewModel(t)
	before := selected(t, m).Priority

	send(m, tuitest.Key("p"))

	assert.NotEqual(t, before, selected(t, m).Priority)
}

func TestSwitchPipeline(t *testing.T) {
	m := tuitest.NewModel(t)
	send(m, tuitest.Key("j"))

	send(m, tuitest.Key("]"))
	assert.Equal(t, "partnerships", string(m.Board.ID))
	assert.Equal(t, 0, m.UiState.SelectedDeal())

	send(m, tuitest.Key("]"))
	assert.Equal(t, "sales", string(m.Board.ID), "switching wraps around")

	send(m, tuitest.Key("["))
	assert.Equal(t, "partnerships", string(m.Board.ID))
}

func TestDeleteConfirm(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Key("d"))
	require.Equal(t, state.DeleteConfirmMode, m.UiState.Mode())
	require.NotNil(t, m.UiState.DeleteTarget())
	assert.Equal(t, "Website Redesign", m.UiState.DeleteTarget().Name)

	send(m, tuitest.Key("n"))
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.Len(t, tuitest.DealIDs(m, 0), 2)

	send(m, tuitest.Key("d"), tuitest.Key("y"))
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.Equal(t, []string{"deal-2"}, tuitest.DealIDs(m, 0))
	require.Len(t, m.NotificationState.All(), 1)
	assert.Equal(t, `Deleted "Website Redesign"`, m.NotificationState.All()[0].Message)
}

func TestHelpMode(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Key("?"))
	assert.Equal(t, state.HelpMode, m.UiState.Mode())

	send(m, tuitest.Key("x"))
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
}

func TestQuit(t *testing.T) {
	m := tuitest.NewModel(t)

	cmd := Update(m, tuitest.Key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// ============================================================================
// SEARCH
// ============================================================================

func TestSearchFiltersAsYouType(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Key("/"))
	require.Equal(t, state.SearchMode, m.UiState.Mode())

	typeText(m, "saas")
	assert.Empty(t, tuitest.DealIDs(m, 0))
	assert.Equal(t, []string{"deal-3"}, tuitest.DealIDs(m, 1))
	assert.Equal(t, []string{"deal-5"}, tuitest.DealIDs(m, 3))

	send(m, tuitest.Special(tea.KeyEnter))
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.True(t, m.SearchState.IsActive)
	assert.Equal(t, "saas", m.SearchState.Query)

	send(m, tuitest.Special(tea.KeyEsc))
	assert.False(t, m.SearchState.IsActive)
	assert.Equal(t, []string{"deal-1", "deal-2"}, tuitest.DealIDs(m, 0))
}

func TestSearchCancelRestoresBoard(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Key("/"))
	typeText(m, "globex")
	assert.Equal(t, []string{"deal-2"}, tuitest.DealIDs(m, 0))

	send(m, tuitest.Special(tea.KeyEsc))
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.Equal(t, []string{"deal-1", "deal-2"}, tuitest.DealIDs(m, 0))
}

func TestSearchSurvivesStoreChanges(t *testing.T) {
	m := tuitest.NewModel(t)
	send(m, tuitest.Key("/"))
	typeText(m, "sarah")
	send(m, tuitest.Special(tea.KeyEnter))

	_, err := m.App.DealService.CreateDeal(m.Ctx, dealRequest("Sarah's Renewal"))
	require.NoError(t, err)
	send(m, tui.BoardChangedMsg{})

	assert.Len(t, tuitest.DealIDs(m, 0), 2, "the new deal matches the filter")
}

// ============================================================================
// FORMS
// ============================================================================

func TestAddDealForm(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Key("n"))
	require.Equal(t, state.DealFormMode, m.UiState.Mode())
	require.False(t, m.FormState.IsEditing())

	typeText(m, "Fleet")
	send(m, tuitest.Special(tea.KeyTab))
	typeText(m, "Acme")
	send(m, tuitest.Special(tea.KeyTab), tuitest.Special(tea.KeyTab))
	typeText(m, "5000")
	send(m, tuitest.Ctrl('s'))

	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.Nil(t, m.FormState.Form)

	deal := selected(t, m)
	assert.Equal(t, "Fleet", deal.Name)
	assert.Equal(t, "Acme", deal.Company)
	assert.True(t, decimal.NewFromInt(5000).Equal(deal.Value))
	assert.Equal(t, 10, deal.Probability, "blank probability takes the stage default")
	assert.Equal(t, []string{"deal-1", "deal-2", string(deal.ID)}, tuitest.DealIDs(m, 0))
}

func TestAddDealFormValidation(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Key("n"), tuitest.Ctrl('s'))

	assert.Equal(t, state.DealFormMode, m.UiState.Mode(), "an empty name keeps the form open")
	assert.Contains(t, m.FormState.Err, "name cannot be empty")

	typeText(m, "Fleet")
	send(m, tuitest.Special(tea.KeyTab), tuitest.Special(tea.KeyTab), tuitest.Special(tea.KeyTab))
	typeText(m, "lots")
	send(m, tuitest.Ctrl('s'))
	assert.Equal(t, `value "lots" is not a number`, m.FormState.Err)

	send(m, tuitest.Special(tea.KeyEsc))
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.Len(t, tuitest.DealIDs(m, 0), 2)
}

func TestEditDealForm(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Key("e"))
	require.True(t, m.FormState.IsEditing())
	assert.Equal(t, "Website Redesign", m.FormState.Values.Name)

	typeText(m, " v2")
	send(m, tuitest.Special(tea.KeyEnter)) // next field
	send(m, tuitest.Ctrl('s'))

	deal := selected(t, m)
	assert.Equal(t, "Website Redesign v2", deal.Name)
	assert.Equal(t, "Northwind Traders", deal.Company)
	assert.Equal(t, []string{"web", "design"}, deal.Tags)
	require.NotEmpty(t, m.NotificationState.All())
	assert.Equal(t, `Saved "Website Redesign v2"`, m.NotificationState.All()[0].Message)
}

// ============================================================================
// MOUSE
// ============================================================================

// Card geometry at 120x40 with 30-cell stages: stage i spans x 30i..30i+29,
// its first card spans y 7..12 and the second y 13..18.

func TestDragAcrossStages(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Click(5, 8))
	require.True(t, m.Drag.Active())
	assert.Equal(t, "deal-1", m.Drag.ElementID())

	send(m, tuitest.Motion(35, 8))
	ghost, ok := m.Drag.Ghost()
	require.True(t, ok)
	assert.Equal(t, 32, ghost.Pos.X, "the ghost keeps the grip offset")
	assert.Equal(t, 7, ghost.Pos.Y)

	send(m, tuitest.Release(35, 8))

	assert.False(t, m.Drag.Active())
	assert.Equal(t, []string{"deal-2"}, tuitest.DealIDs(m, 0))
	assert.Equal(t, []string{"deal-1", "deal-3"}, tuitest.DealIDs(m, 1))
	deal := selected(t, m)
	assert.Equal(t, "deal-1", string(deal.ID))
	assert.Equal(t, 25, deal.Probability)
}

func TestDragReordersWithinStage(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Click(5, 8), tuitest.Motion(5, 17), tuitest.Release(5, 17))

	assert.Equal(t, []string{"deal-2", "deal-1"}, tuitest.DealIDs(m, 0))
	assert.Equal(t, 1, m.UiState.SelectedDeal())
}

func TestDropOnSameSlotChangesNothing(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Click(5, 14), tuitest.Release(5, 14))

	assert.Equal(t, []string{"deal-1", "deal-2"}, tuitest.DealIDs(m, 0))
	assert.False(t, m.NotificationState.HasAny())
}

func TestDropOutsideStagesCancels(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Click(5, 8), tuitest.Motion(40, 1), tuitest.Release(40, 1))

	assert.False(t, m.Drag.Active())
	assert.Equal(t, []string{"deal-1", "deal-2"}, tuitest.DealIDs(m, 0))
	assert.Equal(t, []string{"deal-3"}, tuitest.DealIDs(m, 1))
}

func TestDragWhileFiltered(t *testing.T) {
	m := tuitest.NewModel(t)
	send(m, tuitest.Key("/"))
	typeText(m, "sarah")
	send(m, tuitest.Special(tea.KeyEnter))
	require.Equal(t, []string{"deal-1"}, tuitest.DealIDs(m, 0))

	// deal-3 onto the slot above deal-1 in prospecting
	send(m, tuitest.Click(35, 8), tuitest.Motion(5, 8), tuitest.Release(5, 8))

	full, err := m.App.DealService.CurrentPipeline(m.Ctx)
	require.NoError(t, err)
	var ids []string
	for _, d := range full.Stages[0].Deals {
		ids = append(ids, string(d.ID))
	}
	assert.Equal(t, []string{"deal-3", "deal-1", "deal-2"}, ids, "hidden deals keep their order")
}

func TestMotionWithoutDragIsIgnored(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Motion(35, 8), tuitest.Release(35, 8))

	assert.False(t, m.Drag.Active())
	assert.Equal(t, []string{"deal-1", "deal-2"}, tuitest.DealIDs(m, 0))
}

func TestClickSelectsStageAndTab(t *testing.T) {
	m := tuitest.NewModel(t)

	send(m, tuitest.Click(65, 30))
	assert.Equal(t, 2, m.UiState.SelectedStage())
	assert.False(t, m.Drag.Active())

	// "Sales Pipeline" is 18 cells wide with its border and padding
	send(m, tuitest.Click(20, 1))
	assert.Equal(t, "partnerships", string(m.Board.ID))
}

func TestWheelScrollsStage(t *testing.T) {
	m := tuitest.NewModel(t)
	tuitest.Resize(m, tuitest.Width, 22) // two cards per stage
	for i := range 3 {
		_, err := m.App.DealService.CreateDeal(m.Ctx, dealRequest("extra "+string(rune('a'+i))))
		require.NoError(t, err)
	}
	send(m, tui.BoardChangedMsg{})

	send(m, tuitest.Wheel(5, 10, true))
	assert.Equal(t, 1, m.UiState.DealScroll("prospecting"))
	assert.Equal(t, "deal-2", string(m.Layout.Stages[0].Cards[0].ID))

	send(m, tuitest.Wheel(5, 10, false), tuitest.Wheel(5, 10, false))
	assert.Equal(t, 0, m.UiState.DealScroll("prospecting"))
}

func TestResizeEndsDrag(t *testing.T) {
	m := tuitest.NewModel(t)
	send(m, tuitest.Click(5, 8))
	require.True(t, m.Drag.Active())

	send(m, tea.WindowSizeMsg{Width: 80, Height: 30})

	assert.False(t, m.Drag.Active())
	assert.Equal(t, 80, m.UiState.Width())
}

// ============================================================================
// STORE AND NOTIFICATIONS
// ============================================================================

func TestBoardChangedReloads(t *testing.T) {
	m := tuitest.NewModel(t)

	require.NoError(t, m.App.DealService.DeleteDeal(m.Ctx, "deal-3"))
	assert.Equal(t, []string{"deal-3"}, tuitest.DealIDs(m, 1), "the board waits for the change message")

	cmd := Update(m, tui.BoardChangedMsg{})
	assert.Empty(t, tuitest.DealIDs(m, 1))
	assert.NotNil(t, cmd, "the board keeps listening")
}

func TestDismissNotification(t *testing.T) {
	m := tuitest.NewModel(t)
	m.Notify(state.LevelInfo, "hello")
	id := m.NotificationState.All()[0].ID

	send(m, tui.DismissNotificationMsg{ID: id})

	assert.False(t, m.NotificationState.HasAny())
}
