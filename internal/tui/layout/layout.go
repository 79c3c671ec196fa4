// Package layout computes where stages and cards sit on screen. The
// renderer draws at these positions and the mouse handlers hit-test
// against the same numbers, so a drop lands where the user sees it.
package layout

import (
	"github.com/thenoetrevino/dealboard/internal/drag"
	"github.com/thenoetrevino/dealboard/internal/types"
)

const (
	// TabBarHeight is the pipeline tab row
	TabBarHeight = 3
	// StatusBarHeight is the bottom line
	StatusBarHeight = 1
	// CardHeight is a card's four content lines plus its border
	CardHeight = 6
	// MinStageHeight keeps at least one card slot visible
	MinStageHeight = 6 + CardHeight

	// lines above the first card: top border, header, figures, "▲" row
	stageHeaderLines = 4
	// lines below the last card: "▼" row, bottom border
	stageFooterLines = 2
	// border plus one cell of padding
	stageInset = 2
)

// Stage describes one stage's contents for layout purposes
type Stage struct {
	ID      types.StageID
	DealIDs []types.DealID
	Scroll  int // index of the first visible card
}

// Params is everything the geometry depends on
type Params struct {
	Width, Height int
	StageWidth    int
	Offset        int // index of the leftmost visible stage
	Stages        []Stage
}

// Card is a visible card's position
type Card struct {
	ID    types.DealID
	Index int // position in the stage, not on screen
	Rect  drag.Rect
}

// StageBox is a visible stage's position and its visible cards
type StageBox struct {
	ID    types.StageID
	Index int // position in the pipeline
	Rect  drag.Rect
	Cards []Card

	// Scroll is the clamped index of the first visible card
	Scroll int
	// Above and Below count cards cut off by scrolling
	Above, Below int
	// Total is the number of deals in the stage
	Total int
}

// Board is the computed layout
type Board struct {
	Stages []StageBox
}

// VisibleStages is how many stage columns fit in width
func VisibleStages(width, stageWidth int) int {
	if stageWidth <= 0 {
		return 1
	}
	return max(width/stageWidth, 1)
}

// StageHeight is the height of every stage box for a terminal height
func StageHeight(height int) int {
	return max(height-TabBarHeight-StatusBarHeight, MinStageHeight)
}

// CardsPerStage is how many cards fit in one stage box
func CardsPerStage(height int) int {
	return max((StageHeight(height)-stageHeaderLines-stageFooterLines)/CardHeight, 1)
}

// ClampScroll keeps a stage's scroll offset in range
func ClampScroll(scroll, total, perStage int) int {
	return max(min(scroll, total-perStage), 0)
}

// Compute lays out the visible stages
func Compute(p Params) Board {
	visible := VisibleStages(p.Width, p.StageWidth)
	stageHeight := StageHeight(p.Height)
	perStage := CardsPerStage(p.Height)

	var board Board
	for col := 0; col < visible; col++ {
		idx := p.Offset + col
		if idx < 0 || idx >= len(p.Stages) {
			break
		}
		stage := p.Stages[idx]
		box := StageBox{
			ID:    stage.ID,
			Index: idx,
			Rect: drag.Rect{
				X:      col * p.StageWidth,
				Y:      TabBarHeight,
				Width:  p.StageWidth,
				Height: stageHeight,
			},
			Total: len(stage.DealIDs),
		}

		box.Scroll = ClampScroll(stage.Scroll, len(stage.DealIDs), perStage)
		end := min(box.Scroll+perStage, len(stage.DealIDs))
		box.Above = box.Scroll
		box.Below = len(stage.DealIDs) - end

		for i := box.Scroll; i < end; i++ {
			box.Cards = append(box.Cards, Card{
				ID:    stage.DealIDs[i],
				Index: i,
				Rect: drag.Rect{
					X:      box.Rect.X + stageInset,
					Y:      box.Rect.Y + stageHeaderLines + (i-box.Scroll)*CardHeight,
					Width:  p.StageWidth - 2*stageInset,
					Height: CardHeight,
				},
			})
		}
		board.Stages = append(board.Stages, box)
	}
	return board
}

// Bounds implements drag.Locator over the visible cards
func (b Board) Bounds(id string) (drag.Rect, bool) {
	for _, s := range b.Stages {
		for _, c := range s.Cards {
			if string(c.ID) == id {
				return c.Rect, true
			}
		}
	}
	return drag.Rect{}, false
}

// CardAt returns the card under pt
func (b Board) CardAt(pt drag.Point) (Card, StageBox, bool) {
	for _, s := range b.Stages {
		for _, c := range s.Cards {
			if c.Rect.Contains(pt) {
				return c, s, true
			}
		}
	}
	return Card{}, StageBox{}, false
}

// StageAt returns the stage column under pt. Only the x coordinate
// matters so a drop just below a stage box still lands in it.
func (b Board) StageAt(pt drag.Point) (StageBox, bool) {
	for _, s := range b.Stages {
		if pt.X >= s.Rect.X && pt.X < s.Rect.X+s.Rect.Width && pt.Y >= s.Rect.Y {
			return s, true
		}
	}
	return StageBox{}, false
}

// Slot returns the insertion index in the stage for a pointer at y: the
// count of cards, including those scrolled above, whose middle is above y.
func (s StageBox) Slot(y int) int {
	slot := s.Scroll
	for _, c := range s.Cards {
		if y >= c.Rect.Y+c.Rect.Height/2 {
			slot = c.Index + 1
		}
	}
	if len(s.Cards) == 0 {
		return s.Total
	}
	return slot
}

// DropTarget resolves a release point to a stage and an insertion slot
func (b Board) DropTarget(pt drag.Point) (types.StageID, int, bool) {
	s, ok := b.StageAt(pt)
	if !ok {
		return "", 0, false
	}
	return s.ID, s.Slot(pt.Y), true
}

// TabAt returns the index of the tab under pt given the tab widths
func TabAt(widths []int, pt drag.Point) (int, bool) {
	if pt.Y < 0 || pt.Y >= TabBarHeight {
		return 0, false
	}
	x := 0
	for i, w := range widths {
		if pt.X >= x && pt.X < x+w {
			return i, true
		}
		x += w
	}
	return 0, false
}
