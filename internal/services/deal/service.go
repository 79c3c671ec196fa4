package deal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/pipeline"
	"github.com/thenoetrevino/dealboard/internal/types"
)

const maxNameLength = 255

// Service defines all deal-related business operations
type Service interface {
	// Read operations
	ListPipelines(ctx context.Context) []models.Pipeline
	CurrentPipeline(ctx context.Context) (models.Pipeline, error)
	GetDeal(ctx context.Context, dealID types.DealID) (models.Deal, error)
	SearchDeals(ctx context.Context, term string) (models.Pipeline, error)
	Summary(ctx context.Context) (Summary, error)

	// Write operations
	SelectPipeline(ctx context.Context, pipelineID types.PipelineID) error
	CreateDeal(ctx context.Context, req CreateDealRequest) (models.Deal, error)
	UpdateDeal(ctx context.Context, req UpdateDealRequest) (models.Deal, error)
	DeleteDeal(ctx context.Context, dealID types.DealID) error
	CyclePriority(ctx context.Context, dealID types.DealID) (models.Priority, error)

	// Deal movements
	MoveDeal(ctx context.Context, req MoveDealRequest) error
	MoveDealToNextStage(ctx context.Context, dealID types.DealID) error
	MoveDealToPrevStage(ctx context.Context, dealID types.DealID) error
	MoveDealUp(ctx context.Context, dealID types.DealID) error
	MoveDealDown(ctx context.Context, dealID types.DealID) error
}

// CreateDealRequest encapsulates all data needed to create a deal
type CreateDealRequest struct {
	StageID     types.StageID
	Name        string
	Value       decimal.Decimal
	Company     string
	Owner       string
	NextTask    string
	Probability *int // Optional: nil means use the stage default
	Tags        []string
	Priority    models.Priority // Optional: empty means medium
}

// UpdateDealRequest encapsulates all data needed to update a deal
// Fields with pointers are optional - nil means don't update
type UpdateDealRequest struct {
	DealID      types.DealID
	Name        *string
	Value       *decimal.Decimal
	Company     *string
	Owner       *string
	NextTask    *string
	Probability *int
	Tags        *[]string
	Priority    *models.Priority
}

// MoveDealRequest is a drop: the deal left SourceIndex of the source
// stage and should land at DestIndex of the destination stage
type MoveDealRequest struct {
	DealID        types.DealID
	SourceStageID types.StageID
	DestStageID   types.StageID
	SourceIndex   int
	DestIndex     int
}

// Summary totals the selected pipeline
type Summary struct {
	Pipeline models.Pipeline
	Total    pipeline.StageStats
	Stages   []pipeline.StageStats
}

// service implements Service interface
type service struct {
	store  *pipeline.Store
	logger *slog.Logger
}

// NewService creates a new deal service
func NewService(store *pipeline.Store, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{store: store, logger: logger}
}

func (s *service) ListPipelines(ctx context.Context) []models.Pipeline {
	return s.store.Pipelines()
}

func (s *service) CurrentPipeline(ctx context.Context) (models.Pipeline, error) {
	current, ok := s.store.Current()
	if !ok {
		return models.Pipeline{}, ErrPipelineNotFound
	}
	return current, nil
}

func (s *service) GetDeal(ctx context.Context, dealID types.DealID) (models.Deal, error) {
	if dealID.IsZero() {
		return models.Deal{}, ErrInvalidDealID
	}
	deal, ok := s.store.Deal(dealID)
	if !ok {
		return models.Deal{}, fmt.Errorf("%w: %s", ErrDealNotFound, dealID)
	}
	return deal, nil
}

func (s *service) SearchDeals(ctx context.Context, term string) (models.Pipeline, error) {
	view, ok := s.store.SearchDeals(term)
	if !ok {
		return models.Pipeline{}, ErrPipelineNotFound
	}
	return view, nil
}

func (s *service) Summary(ctx context.Context) (Summary, error) {
	current, err := s.CurrentPipeline(ctx)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{
		Pipeline: current,
		Total:    pipeline.PipelineStats(current),
		Stages:   make([]pipeline.StageStats, 0, len(current.Stages)),
	}
	for _, stage := range current.Stages {
		summary.Stages = append(summary.Stages, pipeline.StatsFor(stage))
	}
	return summary, nil
}

// SelectPipeline checks the pipeline exists before selecting it
func (s *service) SelectPipeline(ctx context.Context, pipelineID types.PipelineID) error {
	found := false
	for _, p := range s.store.Pipelines() {
		if p.ID == pipelineID {
			found = true
			break
		}
	}
	if !found {
		s.logger.Warn("select pipeline: not found", "pipeline_id", pipelineID)
		return fmt.Errorf("%w: %s", ErrPipelineNotFound, pipelineID)
	}
	s.store.SelectPipeline(pipelineID)
	return nil
}

// CreateDeal handles deal creation with validation
func (s *service) CreateDeal(ctx context.Context, req CreateDealRequest) (models.Deal, error) {
	if err := s.validateCreateDeal(req); err != nil {
		return models.Deal{}, err
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	id, outcome := s.store.AddDeal(req.StageID, models.DealDraft{
		Name:        strings.TrimSpace(req.Name),
		Value:       req.Value,
		Company:     strings.TrimSpace(req.Company),
		Owner:       strings.TrimSpace(req.Owner),
		NextTask:    strings.TrimSpace(req.NextTask),
		Probability: req.Probability,
		Tags:        normalizeTags(req.Tags),
		Priority:    priority,
	})
	if outcome == pipeline.NotFound {
		s.logger.Warn("create deal: stage not found", "stage_id", req.StageID)
		return models.Deal{}, fmt.Errorf("%w: %s", ErrStageNotFound, req.StageID)
	}

	return s.GetDeal(ctx, id)
}

func (s *service) validateCreateDeal(req CreateDealRequest) error {
	if err := validateName(req.Name); err != nil {
		return err
	}
	if req.Value.IsNegative() {
		return models.ErrNegativeValue
	}
	if req.Probability != nil {
		if err := validateProbability(*req.Probability); err != nil {
			return err
		}
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidPriority, req.Priority)
	}
	return nil
}

// UpdateDeal applies the provided fields to the stored deal. The fields are
// validated first and then patched in one store transition, so a move that
// lands concurrently keeps its stage and probability.
func (s *service) UpdateDeal(ctx context.Context, req UpdateDealRequest) (models.Deal, error) {
	if req.DealID.IsZero() {
		return models.Deal{}, ErrInvalidDealID
	}
	if err := validateUpdate(req); err != nil {
		return models.Deal{}, err
	}

	updated, outcome := s.store.PatchDeal(req.DealID, func(deal *models.Deal) {
		if req.Name != nil {
			deal.Name = strings.TrimSpace(*req.Name)
		}
		if req.Value != nil {
			deal.Value = *req.Value
		}
		if req.Probability != nil {
			deal.Probability = *req.Probability
		}
		if req.Priority != nil {
			deal.Priority = *req.Priority
		}
		if req.Company != nil {
			deal.Company = strings.TrimSpace(*req.Company)
		}
		if req.Owner != nil {
			deal.Owner = strings.TrimSpace(*req.Owner)
		}
		if req.NextTask != nil {
			deal.NextTask = strings.TrimSpace(*req.NextTask)
		}
		if req.Tags != nil {
			deal.Tags = normalizeTags(*req.Tags)
		}
	})
	if outcome == pipeline.NotFound {
		s.logger.Warn("update deal: not found", "deal_id", req.DealID)
		return models.Deal{}, fmt.Errorf("%w: %s", ErrDealNotFound, req.DealID)
	}
	return updated, nil
}

func validateUpdate(req UpdateDealRequest) error {
	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return err
		}
	}
	if req.Value != nil && req.Value.IsNegative() {
		return models.ErrNegativeValue
	}
	if req.Probability != nil {
		if err := validateProbability(*req.Probability); err != nil {
			return err
		}
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidPriority, *req.Priority)
	}
	return nil
}

// DeleteDeal removes a deal from whichever stage holds it
func (s *service) DeleteDeal(ctx context.Context, dealID types.DealID) error {
	if dealID.IsZero() {
		return ErrInvalidDealID
	}
	if outcome := s.store.DeleteDeal(dealID); outcome == pipeline.NotFound {
		s.logger.Warn("delete deal: not found", "deal_id", dealID)
		return fmt.Errorf("%w: %s", ErrDealNotFound, dealID)
	}
	return nil
}

// CyclePriority steps low -> medium -> high -> low
func (s *service) CyclePriority(ctx context.Context, dealID types.DealID) (models.Priority, error) {
	deal, err := s.GetDeal(ctx, dealID)
	if err != nil {
		return "", err
	}

	next := models.PriorityLow
	for i, p := range models.Priorities {
		if p == deal.Priority {
			next = models.Priorities[(i+1)%len(models.Priorities)]
			break
		}
	}

	if _, err := s.UpdateDeal(ctx, UpdateDealRequest{DealID: dealID, Priority: &next}); err != nil {
		return "", err
	}
	return next, nil
}

// MoveDeal commits a drop. A drop back onto the same slot is not an error.
func (s *service) MoveDeal(ctx context.Context, req MoveDealRequest) error {
	if req.DealID.IsZero() {
		return ErrInvalidDealID
	}

	outcome := s.store.MoveDeal(pipeline.MoveRequest{
		DealID:        req.DealID,
		SourceStageID: req.SourceStageID,
		DestStageID:   req.DestStageID,
		SourceIndex:   req.SourceIndex,
		DestIndex:     req.DestIndex,
	})

	switch outcome {
	case pipeline.Applied, pipeline.Unchanged:
		return nil
	case pipeline.NotFound:
		s.logger.Warn("move deal: stage not found",
			"deal_id", req.DealID,
			"source_stage", req.SourceStageID,
			"dest_stage", req.DestStageID)
		return fmt.Errorf("%w: %s -> %s", ErrStageNotFound, req.SourceStageID, req.DestStageID)
	default:
		s.logger.Warn("move deal: stale source position",
			"deal_id", req.DealID,
			"source_stage", req.SourceStageID,
			"source_index", req.SourceIndex)
		return fmt.Errorf("%w: %s", ErrStaleMove, req.DealID)
	}
}

// position finds the deal in the selected pipeline
func (s *service) position(dealID types.DealID) (models.Pipeline, int, int, error) {
	if dealID.IsZero() {
		return models.Pipeline{}, 0, 0, ErrInvalidDealID
	}
	pipelineID, stageID, index, ok := s.store.FindDeal(dealID)
	if !ok {
		return models.Pipeline{}, 0, 0, fmt.Errorf("%w: %s", ErrDealNotFound, dealID)
	}
	current, ok := s.store.Current()
	if !ok || current.ID != pipelineID {
		return models.Pipeline{}, 0, 0, ErrNotInActivePipeline
	}
	return current, current.StageIndex(stageID), index, nil
}

// MoveDealToNextStage appends the deal to the following stage
func (s *service) MoveDealToNextStage(ctx context.Context, dealID types.DealID) error {
	current, si, di, err := s.position(dealID)
	if err != nil {
		return err
	}
	if si >= len(current.Stages)-1 {
		return ErrAlreadyLastStage
	}
	dest := current.Stages[si+1]
	return s.MoveDeal(ctx, MoveDealRequest{
		DealID:        dealID,
		SourceStageID: current.Stages[si].ID,
		DestStageID:   dest.ID,
		SourceIndex:   di,
		DestIndex:     len(dest.Deals),
	})
}

// MoveDealToPrevStage appends the deal to the preceding stage
func (s *service) MoveDealToPrevStage(ctx context.Context, dealID types.DealID) error {
	current, si, di, err := s.position(dealID)
	if err != nil {
		return err
	}
	if si == 0 {
		return ErrAlreadyFirstStage
	}
	dest := current.Stages[si-1]
	return s.MoveDeal(ctx, MoveDealRequest{
		DealID:        dealID,
		SourceStageID: current.Stages[si].ID,
		DestStageID:   dest.ID,
		SourceIndex:   di,
		DestIndex:     len(dest.Deals),
	})
}

// MoveDealUp swaps the deal with the one above it
func (s *service) MoveDealUp(ctx context.Context, dealID types.DealID) error {
	current, si, di, err := s.position(dealID)
	if err != nil {
		return err
	}
	if di == 0 {
		return ErrAlreadyFirstDeal
	}
	stage := current.Stages[si].ID
	return s.MoveDeal(ctx, MoveDealRequest{
		DealID:        dealID,
		SourceStageID: stage,
		DestStageID:   stage,
		SourceIndex:   di,
		DestIndex:     di - 1,
	})
}

// MoveDealDown swaps the deal with the one below it
func (s *service) MoveDealDown(ctx context.Context, dealID types.DealID) error {
	current, si, di, err := s.position(dealID)
	if err != nil {
		return err
	}
	if di >= len(current.Stages[si].Deals)-1 {
		return ErrAlreadyLastDeal
	}
	stage := current.Stages[si].ID
	return s.MoveDeal(ctx, MoveDealRequest{
		DealID:        dealID,
		SourceStageID: stage,
		DestStageID:   stage,
		SourceIndex:   di,
		DestIndex:     di + 1,
	})
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func validateProbability(p int) error {
	if p < 0 || p > 100 {
		return fmt.Errorf("%w: %d", models.ErrInvalidProbability, p)
	}
	return nil
}

// normalizeTags trims, drops blanks, and removes duplicates keeping order
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}
