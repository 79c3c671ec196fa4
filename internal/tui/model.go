// Package tui holds the board's model. Updates live in tui/handlers and
// drawing in tui/render; tui/core ties them into a tea.Model.
package tui

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/dealboard/internal/app"
	"github.com/thenoetrevino/dealboard/internal/config"
	"github.com/thenoetrevino/dealboard/internal/drag"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/pipeline"
	"github.com/thenoetrevino/dealboard/internal/tui/layout"
	"github.com/thenoetrevino/dealboard/internal/tui/state"
	"github.com/thenoetrevino/dealboard/internal/types"
	"github.com/thenoetrevino/dealboard/internal/user"
)

// NotificationTTL is how long a toast stays up
const NotificationTTL = 4 * time.Second

// Model represents the application state for the TUI
type Model struct {
	Ctx    context.Context
	App    *app.App
	Config *config.Config
	Logger *slog.Logger

	UiState           *state.UIState
	SearchState       *state.SearchState
	FormState         *state.FormState
	NotificationState *state.NotificationState

	// Drag follows a card lifted with the mouse
	Drag *drag.Controller
	// Layout is the geometry of the visible board, shared by the
	// renderer and mouse hit tests
	Layout layout.Board

	// Pipelines are the tabs
	Pipelines []models.Pipeline
	// Board is the selected pipeline as displayed, filtered while a
	// search is applied
	Board models.Pipeline
	// User is the signed-in email, empty when signed out
	User string
	// Owner prefills the owner of new deals
	Owner string

	changes             chan struct{}
	SubscriptionStarted bool
}

// New builds the board model. A non-empty pipelineID is selected first.
func New(ctx context.Context, a *app.App, pipelineID types.PipelineID) (*Model, error) {
	if pipelineID != "" {
		if err := a.DealService.SelectPipeline(ctx, pipelineID); err != nil {
			return nil, err
		}
	}

	m := &Model{
		Ctx:               ctx,
		App:               a,
		Config:            a.Config,
		Logger:            slog.Default(),
		UiState:           state.NewUIState(a.Config.Board.ColumnWidth),
		SearchState:       state.NewSearchState(),
		FormState:         state.NewFormState(),
		NotificationState: state.NewNotificationState(),
		changes:           make(chan struct{}, 1),
	}
	m.Drag = drag.New(drag.LocatorFunc(func(id string) (drag.Rect, bool) {
		return m.Layout.Bounds(id)
	}))
	m.Drag.OnStart = func(id string, offset drag.Point) {
		m.Logger.Debug("drag started", "deal_id", id, "offset_x", offset.X, "offset_y", offset.Y)
	}
	m.Drag.OnEnd = func(id string) {
		m.Logger.Debug("drag ended", "deal_id", id)
	}

	// Coalesce change notifications; one pending signal is enough to
	// trigger a reload.
	a.Store.Subscribe(func(pipeline.Board) {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})

	var signedIn *models.User
	if a.AccountService != nil {
		if current, err := a.AccountService.Current(ctx); err == nil {
			m.User = current.User.Email
			signedIn = &current.User
		}
	}
	m.Owner = user.DefaultOwner(signedIn)

	m.Reload()
	return m, nil
}

// Init starts listening for store changes
func (m *Model) Init() tea.Cmd {
	m.SubscriptionStarted = true
	return m.WaitForChange()
}

// WaitForChange blocks until the store changes or the context ends
func (m *Model) WaitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changes:
			return BoardChangedMsg{}
		case <-m.Ctx.Done():
			return nil
		}
	}
}

// Reload re-reads the pipelines and the displayed board from the store
func (m *Model) Reload() {
	m.Pipelines = m.App.DealService.ListPipelines(m.Ctx)

	var (
		board models.Pipeline
		err   error
	)
	if m.SearchState.IsActive {
		board, err = m.App.DealService.SearchDeals(m.Ctx, m.SearchState.Query)
	} else {
		board, err = m.App.DealService.CurrentPipeline(m.Ctx)
	}
	if err != nil {
		m.Logger.Warn("reload board", "error", err)
		board = models.Pipeline{}
	}
	m.Board = board

	m.ClampSelection()
	m.Relayout()
}

// Relayout recomputes the board geometry from the current state
func (m *Model) Relayout() {
	stages := make([]layout.Stage, len(m.Board.Stages))
	for i, s := range m.Board.Stages {
		ids := make([]types.DealID, len(s.Deals))
		for j, d := range s.Deals {
			ids[j] = d.ID
		}
		stages[i] = layout.Stage{ID: s.ID, DealIDs: ids, Scroll: m.UiState.DealScroll(s.ID)}
	}
	m.Layout = layout.Compute(layout.Params{
		Width:      m.UiState.Width(),
		Height:     m.UiState.Height(),
		StageWidth: m.UiState.StageWidth(),
		Offset:     m.UiState.ViewportOffset(),
		Stages:     stages,
	})
}

// ClampSelection keeps the selected stage and deal within the board
func (m *Model) ClampSelection() {
	stageCount := len(m.Board.Stages)
	if stageCount == 0 {
		m.UiState.SetSelectedStage(0)
		m.UiState.SetSelectedDeal(0)
		m.UiState.SetViewportOffset(0)
		return
	}
	if m.UiState.SelectedStage() >= stageCount {
		m.UiState.SetSelectedStage(stageCount - 1)
	}
	deals := len(m.Board.Stages[m.UiState.SelectedStage()].Deals)
	if m.UiState.SelectedDeal() >= deals {
		m.UiState.SetSelectedDeal(max(deals-1, 0))
	}
	m.UiState.ClampViewport(stageCount)
	m.UiState.EnsureSelectionVisible()
}

// CurrentStage returns the selected stage
func (m *Model) CurrentStage() (models.Stage, bool) {
	i := m.UiState.SelectedStage()
	if i < 0 || i >= len(m.Board.Stages) {
		return models.Stage{}, false
	}
	return m.Board.Stages[i], true
}

// CurrentDeal returns the selected deal
func (m *Model) CurrentDeal() (models.Deal, bool) {
	stage, ok := m.CurrentStage()
	if !ok {
		return models.Deal{}, false
	}
	i := m.UiState.SelectedDeal()
	if i < 0 || i >= len(stage.Deals) {
		return models.Deal{}, false
	}
	return stage.Deals[i], true
}

// SelectDeal moves the selection onto a deal shown on the board
func (m *Model) SelectDeal(id types.DealID) bool {
	for si, s := range m.Board.Stages {
		for di, d := range s.Deals {
			if d.ID == id {
				m.UiState.SetSelectedStage(si)
				m.UiState.SetSelectedDeal(di)
				m.UiState.EnsureSelectionVisible()
				m.UiState.EnsureDealVisible(s.ID, di)
				return true
			}
		}
	}
	return false
}

// PipelineIndex returns the position of the selected pipeline in the tabs
func (m *Model) PipelineIndex() int {
	for i, p := range m.Pipelines {
		if p.ID == m.Board.ID {
			return i
		}
	}
	return 0
}

// FullIndex converts an insertion slot in the displayed (possibly filtered)
// stage into an index in the stored stage: the drop lands just before the
// deal shown at that slot, or just after the last one shown.
func (m *Model) FullIndex(stageID types.StageID, slot int) int {
	if !m.SearchState.IsActive {
		return slot
	}

	shown := m.Board.StageIndex(stageID)
	full, err := m.App.DealService.CurrentPipeline(m.Ctx)
	if err != nil || shown < 0 {
		return slot
	}
	fi := full.StageIndex(stageID)
	if fi < 0 {
		return slot
	}
	visible := m.Board.Stages[shown].Deals
	stored := full.Stages[fi].Deals

	indexOf := func(id types.DealID) int {
		for i, d := range stored {
			if d.ID == id {
				return i
			}
		}
		return len(stored)
	}
	switch {
	case slot < len(visible):
		return indexOf(visible[slot].ID)
	case len(visible) > 0:
		return min(indexOf(visible[len(visible)-1].ID)+1, len(stored))
	default:
		return len(stored)
	}
}

// Notify shows a toast and schedules its dismissal
func (m *Model) Notify(level state.NotificationLevel, message string) tea.Cmd {
	id := m.NotificationState.Add(level, message)
	return tea.Tick(NotificationTTL, func(time.Time) tea.Msg {
		return DismissNotificationMsg{ID: id}
	})
}

// NotifyError logs err and shows it as an error toast
func (m *Model) NotifyError(action string, err error) tea.Cmd {
	m.Logger.Error(action, "error", err)
	return m.Notify(state.LevelError, action+": "+err.Error())
}
