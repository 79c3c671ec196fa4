// Package pipeline owns the in-memory Pipeline -> Stage -> Deal tree.
//
// Board is a value; every transition on it is a pure function returning a
// new Board and an Outcome. Store wraps a Board behind a mutex so callers
// see each transition either fully applied or not at all.
package pipeline

import (
	"slices"
	"strings"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// Board is the whole session's pipeline data plus the selected pipeline
type Board struct {
	Pipelines []models.Pipeline
	Selected  types.PipelineID
}

// MoveRequest describes a drag result: where the deal was and where it landed
type MoveRequest struct {
	DealID        types.DealID
	SourceStageID types.StageID
	DestStageID   types.StageID
	SourceIndex   int
	DestIndex     int
}

// Clone deep-copies the board
func (b Board) Clone() Board {
	pipelines := make([]models.Pipeline, len(b.Pipelines))
	for i, p := range b.Pipelines {
		pipelines[i] = p.Clone()
	}
	return Board{Pipelines: pipelines, Selected: b.Selected}
}

func (b Board) activeIndex() int {
	for i := range b.Pipelines {
		if b.Pipelines[i].ID == b.Selected {
			return i
		}
	}
	return -1
}

// Current returns the selected pipeline. ok is false when the selection
// does not name an existing pipeline.
func (b Board) Current() (models.Pipeline, bool) {
	idx := b.activeIndex()
	if idx < 0 {
		return models.Pipeline{}, false
	}
	return b.Pipelines[idx], true
}

// SelectPipeline switches the active pipeline. The id is not checked.
func (b Board) SelectPipeline(id types.PipelineID) (Board, Outcome) {
	if b.Selected == id {
		return b, Unchanged
	}
	next := b.Clone()
	next.Selected = id
	return next, Applied
}

// MoveDeal removes the deal from the source stage and inserts it into the
// destination stage at DestIndex, clamped to the destination's length.
// The deal takes the destination stage's id and default probability.
func (b Board) MoveDeal(req MoveRequest) (Board, Outcome) {
	pi := b.activeIndex()
	if pi < 0 {
		return b, NotFound
	}
	p := b.Pipelines[pi]
	si := p.StageIndex(req.SourceStageID)
	di := p.StageIndex(req.DestStageID)
	if si < 0 || di < 0 {
		return b, NotFound
	}
	src := p.Stages[si]
	if req.SourceIndex < 0 || req.SourceIndex >= len(src.Deals) {
		return b, Stale
	}
	if src.Deals[req.SourceIndex].ID != req.DealID {
		return b, Stale
	}
	if si == di && req.SourceIndex == req.DestIndex {
		return b, Unchanged
	}

	next := b.Clone()
	stages := next.Pipelines[pi].Stages

	deal := stages[si].Deals[req.SourceIndex]
	stages[si].Deals = slices.Delete(stages[si].Deals, req.SourceIndex, req.SourceIndex+1)

	deal.Stage = stages[di].ID
	deal.Probability = stages[di].Probability

	at := min(max(req.DestIndex, 0), len(stages[di].Deals))
	stages[di].Deals = slices.Insert(stages[di].Deals, at, deal)

	return next, Applied
}

// UpdateDeal replaces the deal with the same id wherever it lives. The
// stored stage is kept so the deal cannot point away from its holder.
func (b Board) UpdateDeal(updated models.Deal) (Board, Outcome) {
	pi, si, di, ok := b.locate(updated.ID)
	if !ok {
		return b, NotFound
	}
	next := b.Clone()
	stage := &next.Pipelines[pi].Stages[si]
	updated = updated.Clone()
	updated.Stage = stage.ID
	stage.Deals[di] = updated
	return next, Applied
}

// PatchDeal runs fn on the stored deal inside one transition. The id and
// stage are restored after fn, so a patch can never move the deal.
func (b Board) PatchDeal(id types.DealID, fn func(*models.Deal)) (Board, models.Deal, Outcome) {
	pi, si, di, ok := b.locate(id)
	if !ok {
		return b, models.Deal{}, NotFound
	}
	next := b.Clone()
	stage := &next.Pipelines[pi].Stages[si]
	deal := &stage.Deals[di]
	fn(deal)
	deal.ID = id
	deal.Stage = stage.ID
	return next, deal.Clone(), Applied
}

// AddDeal appends a new deal to a stage of the active pipeline. The id is
// produced by newID and must not collide with an existing deal.
func (b Board) AddDeal(stageID types.StageID, draft models.DealDraft, newID func() types.DealID) (Board, types.DealID, Outcome) {
	pi := b.activeIndex()
	if pi < 0 {
		return b, "", NotFound
	}
	si := b.Pipelines[pi].StageIndex(stageID)
	if si < 0 {
		return b, "", NotFound
	}

	id := newID()
	for {
		if _, _, _, taken := b.locate(id); !taken {
			break
		}
		id = newID()
	}

	next := b.Clone()
	stage := &next.Pipelines[pi].Stages[si]

	probability := stage.Probability
	if draft.Probability != nil {
		probability = *draft.Probability
	}

	stage.Deals = append(stage.Deals, models.Deal{
		ID:          id,
		Name:        draft.Name,
		Value:       draft.Value,
		Company:     draft.Company,
		Owner:       draft.Owner,
		Stage:       stage.ID,
		Age:         draft.Age,
		NextTask:    draft.NextTask,
		Probability: probability,
		Tags:        slices.Clone(draft.Tags),
		Priority:    draft.Priority,
	})
	return next, id, Applied
}

// DeleteDeal removes the deal from whichever stage holds it
func (b Board) DeleteDeal(id types.DealID) (Board, Outcome) {
	pi, si, di, ok := b.locate(id)
	if !ok {
		return b, NotFound
	}
	next := b.Clone()
	stage := &next.Pipelines[pi].Stages[si]
	stage.Deals = slices.Delete(stage.Deals, di, di+1)
	return next, Applied
}

// SearchDeals returns a filtered copy of the active pipeline. A deal is kept
// when the term appears, case-insensitively, in its name, company, owner,
// or any tag. A blank term returns the pipeline unfiltered.
func (b Board) SearchDeals(term string) (models.Pipeline, bool) {
	current, ok := b.Current()
	if !ok {
		return models.Pipeline{}, false
	}
	view := current.Clone()

	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return view, true
	}

	for i := range view.Stages {
		view.Stages[i].Deals = slices.DeleteFunc(view.Stages[i].Deals, func(d models.Deal) bool {
			return !Matches(d, needle)
		})
	}
	return view, true
}

// Matches reports whether the deal matches an already lower-cased term
func Matches(d models.Deal, needle string) bool {
	if strings.Contains(strings.ToLower(d.Name), needle) ||
		strings.Contains(strings.ToLower(d.Company), needle) ||
		strings.Contains(strings.ToLower(d.Owner), needle) {
		return true
	}
	for _, tag := range d.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// FindDeal returns the pipeline, stage, and index currently holding the deal
func (b Board) FindDeal(id types.DealID) (types.PipelineID, types.StageID, int, bool) {
	pi, si, di, ok := b.locate(id)
	if !ok {
		return "", "", -1, false
	}
	return b.Pipelines[pi].ID, b.Pipelines[pi].Stages[si].ID, di, true
}

func (b Board) locate(id types.DealID) (pi, si, di int, ok bool) {
	for pi := range b.Pipelines {
		for si := range b.Pipelines[pi].Stages {
			if di := b.Pipelines[pi].Stages[si].IndexOf(id); di >= 0 {
				return pi, si, di, true
			}
		}
	}
	return -1, -1, -1, false
}
