package pipeline

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// ChangeFunc is called after every applied transition with the new board
type ChangeFunc func(Board)

// Store is the single owner of the session's board. Each method runs its
// transition under one lock, so readers never observe a half-applied move.
type Store struct {
	mu          sync.RWMutex
	board       Board
	newID       func() types.DealID
	subscribers []ChangeFunc
	logger      *slog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithIDGenerator replaces the uuid-based deal id generator
func WithIDGenerator(fn func() types.DealID) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithLogger sets the logger used for ignored mutations
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a store over a copy of the given pipelines. The first
// pipeline is selected.
func NewStore(pipelines []models.Pipeline, opts ...Option) *Store {
	board := Board{Pipelines: pipelines}.Clone()
	if len(board.Pipelines) > 0 {
		board.Selected = board.Pipelines[0].ID
	}

	s := &Store{
		board:  board,
		newID:  newUUID,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newUUID() types.DealID {
	return types.DealID(uuid.NewString())
}

// Subscribe registers fn to run after each applied change
func (s *Store) Subscribe(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Snapshot returns a deep copy of the board
func (s *Store) Snapshot() Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Clone()
}

// Pipelines returns a copy of every pipeline in order
func (s *Store) Pipelines() []models.Pipeline {
	return s.Snapshot().Pipelines
}

// Selected returns the id of the active pipeline
func (s *Store) Selected() types.PipelineID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Selected
}

// Current returns a copy of the active pipeline
func (s *Store) Current() (models.Pipeline, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.board.Current()
	if !ok {
		return p, false
	}
	return p.Clone(), true
}

func (s *Store) SelectPipeline(id types.PipelineID) Outcome {
	return s.apply("select pipeline", func(b Board) (Board, Outcome) {
		return b.SelectPipeline(id)
	}, "pipeline_id", id)
}

func (s *Store) MoveDeal(req MoveRequest) Outcome {
	return s.apply("move deal", func(b Board) (Board, Outcome) {
		return b.MoveDeal(req)
	}, "deal_id", req.DealID, "from", req.SourceStageID, "to", req.DestStageID)
}

func (s *Store) UpdateDeal(deal models.Deal) Outcome {
	return s.apply("update deal", func(b Board) (Board, Outcome) {
		return b.UpdateDeal(deal)
	}, "deal_id", deal.ID)
}

// PatchDeal edits a deal in place under the write lock and returns the
// result when the outcome is Applied
func (s *Store) PatchDeal(id types.DealID, fn func(*models.Deal)) (models.Deal, Outcome) {
	var patched models.Deal
	outcome := s.apply("patch deal", func(b Board) (Board, Outcome) {
		next, deal, o := b.PatchDeal(id, fn)
		patched = deal
		return next, o
	}, "deal_id", id)
	return patched, outcome
}

// AddDeal returns the generated id when the outcome is Applied
func (s *Store) AddDeal(stageID types.StageID, draft models.DealDraft) (types.DealID, Outcome) {
	var id types.DealID
	outcome := s.apply("add deal", func(b Board) (Board, Outcome) {
		next, newID, o := b.AddDeal(stageID, draft, s.newID)
		id = newID
		return next, o
	}, "stage_id", stageID)
	return id, outcome
}

func (s *Store) DeleteDeal(id types.DealID) Outcome {
	return s.apply("delete deal", func(b Board) (Board, Outcome) {
		return b.DeleteDeal(id)
	}, "deal_id", id)
}

// SearchDeals filters the active pipeline without touching stored state
func (s *Store) SearchDeals(term string) (models.Pipeline, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.SearchDeals(term)
}

// FindDeal locates a deal across all pipelines
func (s *Store) FindDeal(id types.DealID) (types.PipelineID, types.StageID, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.FindDeal(id)
}

// Deal returns a copy of the deal with the given id
func (s *Store) Deal(id types.DealID) (models.Deal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pi, si, di, ok := s.board.locate(id)
	if !ok {
		return models.Deal{}, false
	}
	return s.board.Pipelines[pi].Stages[si].Deals[di].Clone(), true
}

// apply runs a transition under the write lock and notifies subscribers
// outside it
func (s *Store) apply(op string, fn func(Board) (Board, Outcome), attrs ...any) Outcome {
	s.mu.Lock()
	next, outcome := fn(s.board)
	if outcome.Changed() {
		s.board = next
	}
	subscribers := s.subscribers
	s.mu.Unlock()

	switch outcome {
	case Applied:
		snapshot := next.Clone()
		for _, fn := range subscribers {
			fn(snapshot)
		}
	case NotFound, Stale:
		s.logger.Warn(op+" ignored", append([]any{"outcome", outcome.String()}, attrs...)...)
	}
	return outcome
}
