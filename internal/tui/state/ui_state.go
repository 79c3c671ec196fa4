package state

import (
	"github.com/thenoetrevino/dealboard/internal/tui/layout"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode        Mode = iota // Default navigation mode
	SearchMode                    // Typing a search term (/)
	HelpMode                      // Displaying help screen
	DeleteConfirmMode             // Confirming deal deletion
	DealFormMode                  // Creating or editing a deal
)

// String names the mode for logs
func (m Mode) String() string {
	switch m {
	case NormalMode:
		return "normal"
	case SearchMode:
		return "search"
	case HelpMode:
		return "help"
	case DeleteConfirmMode:
		return "delete-confirm"
	case DealFormMode:
		return "deal-form"
	default:
		return "unknown"
	}
}

// DeleteTarget is the deal awaiting a delete confirmation
type DeleteTarget struct {
	DealID types.DealID
	Name   string
}

// UIState manages the user interface state.
// This includes navigation (stage/deal selection), viewport scrolling,
// terminal dimensions, and the current interaction mode.
type UIState struct {
	// selectedStage is the index of the currently selected stage
	selectedStage int

	// selectedDeal is the index of the selected deal within the selected stage
	selectedDeal int

	width  int
	height int

	mode Mode

	// viewportOffset is the index of the leftmost visible stage
	viewportOffset int

	// stageWidth is the full width of one stage column
	stageWidth int

	// dealScroll tracks the index of the first visible deal per stage
	dealScroll map[types.StageID]int

	deleteTarget *DeleteTarget
}

// NewUIState creates a new UIState with default values.
func NewUIState(stageWidth int) *UIState {
	return &UIState{
		mode:       NormalMode,
		stageWidth: max(stageWidth, 16),
		dealScroll: make(map[types.StageID]int),
	}
}

// SelectedStage returns the index of the currently selected stage.
func (s *UIState) SelectedStage() int {
	return s.selectedStage
}

// SetSelectedStage updates the selected stage index.
func (s *UIState) SetSelectedStage(index int) {
	s.selectedStage = max(index, 0)
}

// SelectedDeal returns the index of the currently selected deal.
func (s *UIState) SelectedDeal() int {
	return s.selectedDeal
}

// SetSelectedDeal updates the selected deal index.
func (s *UIState) SetSelectedDeal(index int) {
	s.selectedDeal = max(index, 0)
}

func (s *UIState) Width() int {
	return s.width
}

func (s *UIState) SetWidth(width int) {
	s.width = width
}

func (s *UIState) Height() int {
	return s.height
}

func (s *UIState) SetHeight(height int) {
	s.height = height
}

// StageWidth returns the full width of one stage column.
func (s *UIState) StageWidth() int {
	return s.stageWidth
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode updates the current interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// ViewportOffset returns the index of the leftmost visible stage.
func (s *UIState) ViewportOffset() int {
	return s.viewportOffset
}

// SetViewportOffset updates the viewport offset.
func (s *UIState) SetViewportOffset(offset int) {
	s.viewportOffset = max(offset, 0)
}

// ViewportSize returns the number of stages that fit on screen.
func (s *UIState) ViewportSize() int {
	if s.width == 0 {
		return 1
	}
	return layout.VisibleStages(s.width, s.stageWidth)
}

// CardsPerStage returns how many cards fit in a stage column.
func (s *UIState) CardsPerStage() int {
	return layout.CardsPerStage(s.height)
}

// ClampViewport keeps the viewport within the stage count.
func (s *UIState) ClampViewport(stageCount int) {
	if s.viewportOffset+s.ViewportSize() > stageCount {
		s.viewportOffset = max(0, stageCount-s.ViewportSize())
	}
}

// EnsureSelectionVisible adjusts the viewport to ensure the selected stage is visible.
// This should be called after navigation or when the selection changes.
func (s *UIState) EnsureSelectionVisible() {
	if s.selectedStage < s.viewportOffset {
		s.viewportOffset = s.selectedStage
	}
	if s.selectedStage >= s.viewportOffset+s.ViewportSize() {
		s.viewportOffset = s.selectedStage - s.ViewportSize() + 1
	}
}

// ResetSelection resets stage, deal, and scroll state.
// This is called when switching pipelines.
func (s *UIState) ResetSelection() {
	s.selectedStage = 0
	s.selectedDeal = 0
	s.viewportOffset = 0
	clear(s.dealScroll)
}

// DealScroll returns the vertical scroll offset for a given stage.
func (s *UIState) DealScroll(stageID types.StageID) int {
	return s.dealScroll[stageID]
}

// SetDealScroll updates the vertical scroll offset for a given stage.
func (s *UIState) SetDealScroll(stageID types.StageID, offset int) {
	s.dealScroll[stageID] = max(0, offset)
}

// ScrollDeals moves a stage's scroll offset by delta within its deal count.
// Returns true if scrolling occurred.
func (s *UIState) ScrollDeals(stageID types.StageID, delta, dealCount int) bool {
	before := s.DealScroll(stageID)
	after := layout.ClampScroll(before+delta, dealCount, s.CardsPerStage())
	s.dealScroll[stageID] = after
	return after != before
}

// EnsureDealVisible adjusts the scroll offset so the deal at index is on screen.
func (s *UIState) EnsureDealVisible(stageID types.StageID, index int) {
	offset := s.DealScroll(stageID)
	visible := s.CardsPerStage()

	if index < offset {
		s.dealScroll[stageID] = index
	}
	if index >= offset+visible {
		s.dealScroll[stageID] = index - visible + 1
	}
}

// DeleteTarget returns the deal awaiting confirmation, if any.
func (s *UIState) DeleteTarget() *DeleteTarget {
	return s.deleteTarget
}

// SetDeleteTarget records the deal to delete on confirmation.
func (s *UIState) SetDeleteTarget(target *DeleteTarget) {
	s.deleteTarget = target
}
