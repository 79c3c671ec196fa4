package deal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/pipeline"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// setupService builds a service over the default pipelines with
// predictable ids for created deals
func setupService(t *testing.T) (Service, *pipeline.Store) {
	t.Helper()
	n := 0
	store := pipeline.NewStore(pipeline.DefaultPipelines(),
		pipeline.WithIDGenerator(func() types.DealID {
			n++
			return types.DealID(fmt.Sprintf("new-%d", n))
		}),
		pipeline.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil))), store
}

func stageDeals(t *testing.T, svc Service, stageID types.StageID) []types.DealID {
	t.Helper()
	current, err := svc.CurrentPipeline(context.Background())
	require.NoError(t, err)
	idx := current.StageIndex(stageID)
	require.GreaterOrEqual(t, idx, 0, "stage %s", stageID)
	var ids []types.DealID
	for _, d := range current.Stages[idx].Deals {
		ids = append(ids, d.ID)
	}
	return ids
}

func ptr[T any](v T) *T { return &v }

// ============================================================================
// CREATE
// ============================================================================

func TestCreateDeal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := setupService(t)

	deal, err := svc.CreateDeal(ctx, CreateDealRequest{
		StageID: "proposal",
		Name:    "  Fleet Tracking  ",
		Value:   decimal.NewFromInt(5000),
		Company: "Acme",
		Tags:    []string{"iot", " IoT ", "", "fleet"},
	})
	require.NoError(t, err)

	assert.Equal(t, types.DealID("new-1"), deal.ID)
	assert.Equal(t, "Fleet Tracking", deal.Name)
	assert.Equal(t, types.StageID("proposal"), deal.Stage)
	assert.Equal(t, 50, deal.Probability, "stage default")
	assert.Equal(t, models.PriorityMedium, deal.Priority)
	assert.Equal(t, []string{"iot", "fleet"}, deal.Tags)
	assert.Equal(t, []types.DealID{"deal-4", "new-1"}, stageDeals(t, svc, "proposal"))
}

func TestCreateDealValidation(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)

	tests := []struct {
		name    string
		req     CreateDealRequest
		wantErr error
	}{
		{"empty name", CreateDealRequest{StageID: "proposal", Name: "   "}, ErrEmptyName},
		{"long name", CreateDealRequest{StageID: "proposal", Name: strings.Repeat("x", 256)}, ErrNameTooLong},
		{"negative value", CreateDealRequest{StageID: "proposal", Name: "n", Value: decimal.NewFromInt(-1)}, models.ErrNegativeValue},
		{"probability over 100", CreateDealRequest{StageID: "proposal", Name: "n", Probability: ptr(101)}, models.ErrInvalidProbability},
		{"probability under 0", CreateDealRequest{StageID: "proposal", Name: "n", Probability: ptr(-1)}, models.ErrInvalidProbability},
		{"bad priority", CreateDealRequest{StageID: "proposal", Name: "n", Priority: "urgent"}, models.ErrInvalidPriority},
		{"unknown stage", CreateDealRequest{StageID: "nowhere", Name: "n"}, ErrStageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateDeal(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateDealExplicitProbability(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)

	deal, err := svc.CreateDeal(context.Background(), CreateDealRequest{StageID: "prospecting", Name: "n", Probability: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, deal.Probability)
}

// ============================================================================
// UPDATE / DELETE
// ============================================================================

func TestUpdateDealPartial(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := setupService(t)

	updated, err := svc.UpdateDeal(ctx, UpdateDealRequest{
		DealID: "deal-1",
		Value:  ptr(decimal.NewFromInt(15000)),
		Owner:  ptr("Jordan Lee"),
	})
	require.NoError(t, err)

	assert.True(t, updated.Value.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, "Jordan Lee", updated.Owner)
	assert.Equal(t, "Website Redesign", updated.Name, "untouched fields are kept")
	assert.Equal(t, types.StageID("prospecting"), updated.Stage)
}

func TestUpdateDealAfterMoveKeepsStageProbability(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store := setupService(t)

	require.Equal(t, pipeline.Applied, store.MoveDeal(pipeline.MoveRequest{
		DealID: "deal-1", SourceStageID: "prospecting", DestStageID: "qualification", SourceIndex: 0, DestIndex: 0,
	}))

	updated, err := svc.UpdateDeal(ctx, UpdateDealRequest{DealID: "deal-1", Name: ptr("Website Refresh")})
	require.NoError(t, err)

	assert.Equal(t, "Website Refresh", updated.Name)
	assert.Equal(t, types.StageID("qualification"), updated.Stage)
	assert.Equal(t, 25, updated.Probability)
}

func TestUpdateDealErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store := setupService(t)
	before := store.Snapshot()

	_, err := svc.UpdateDeal(ctx, UpdateDealRequest{DealID: "ghost", Name: ptr("x")})
	assert.ErrorIs(t, err, ErrDealNotFound)

	_, err = svc.UpdateDeal(ctx, UpdateDealRequest{DealID: "deal-1", Name: ptr("")})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.UpdateDeal(ctx, UpdateDealRequest{DealID: "deal-1", Probability: ptr(150)})
	assert.ErrorIs(t, err, models.ErrInvalidProbability)

	_, err = svc.UpdateDeal(ctx, UpdateDealRequest{DealID: "", Name: ptr("x")})
	assert.ErrorIs(t, err, ErrInvalidDealID)

	assert.Equal(t, before, store.Snapshot(), "failed updates leave the board alone")
}

func TestDeleteDeal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := setupService(t)

	require.NoError(t, svc.DeleteDeal(ctx, "deal-2"))
	assert.Equal(t, []types.DealID{"deal-1"}, stageDeals(t, svc, "prospecting"))

	assert.ErrorIs(t, svc.DeleteDeal(ctx, "deal-2"), ErrDealNotFound)
}

func TestCreateThenDeleteRestoresStage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := setupService(t)
	before := stageDeals(t, svc, "qualification")

	deal, err := svc.CreateDeal(ctx, CreateDealRequest{StageID: "qualification", Name: "temp"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteDeal(ctx, deal.ID))

	assert.Equal(t, before, stageDeals(t, svc, "qualification"))
}

func TestCyclePriority(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := setupService(t)

	// deal-2 starts high
	got, err := svc.CyclePriority(ctx, "deal-2")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityLow, got)

	got, err = svc.CyclePriority(ctx, "deal-2")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, got)
}

// ============================================================================
// MOVES
// ============================================================================

func TestMoveDealAcrossStages(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := setupService(t)

	err := svc.MoveDeal(ctx, MoveDealRequest{
		DealID:        "deal-1",
		SourceStageID: "prospecting",
		DestStageID:   "qualification",
		SourceIndex:   0,
		DestIndex:     1,
	})
	require.NoError(t, err)

	assert.Equal(t, []types.DealID{"deal-2"}, stageDeals(t, svc, "prospecting"))
	assert.Equal(t, []types.DealID{"deal-3", "deal-1"}, stageDeals(t, svc, "qualification"))

	moved, err := svc.GetDeal(ctx, "deal-1")
	require.NoError(t, err)
	assert.Equal(t, 25, moved.Probability)
}

func TestMoveDealOutcomes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := setupService(t)

	// dropping onto the same slot is fine
	err := svc.MoveDeal(ctx, MoveDealRequest{DealID: "deal-1", SourceStageID: "prospecting", DestStageID: "prospecting"})
	assert.NoError(t, err)

	err = svc.MoveDeal(ctx, MoveDealRequest{DealID: "deal-1", SourceStageID: "prospecting", DestStageID: "nowhere"})
	assert.ErrorIs(t, err, ErrStageNotFound)

	err = svc.MoveDeal(ctx, MoveDealRequest{DealID: "deal-1", SourceStageID: "prospecting", DestStageID: "proposal", SourceIndex: 1})
	assert.ErrorIs(t, err, ErrStaleMove)

	err = svc.MoveDeal(ctx, MoveDealRequest{SourceStageID: "prospecting", DestStageID: "proposal"})
	assert.ErrorIs(t, err, ErrInvalidDealID)
}

func TestMoveDealBetweenNeighbourStages(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := setupService(t)

	require.NoError(t, svc.MoveDealToNextStage(ctx, "deal-3"))
	assert.Equal(t, []types.DealID{"deal-4", "deal-3"}, stageDeals(t, svc, "proposal"))

	require.NoError(t, svc.MoveDealToPrevStage(ctx, "deal-3"))
	assert.Equal(t, []types.DealID{"deal-3"}, stageDeals(t, svc, "qualification"))

	assert.ErrorIs(t, svc.MoveDealToPrevStage(ctx, "deal-1"), ErrAlreadyFirstStage)

	require.NoError(t, svc.MoveDealToNextStage(ctx, "deal-5"))
	assert.ErrorIs(t, svc.MoveDealToNextStage(ctx, "deal-5"), ErrAlreadyLastStage)
}

func TestMoveDealWithinStage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := setupService(t)

	require.NoError(t, svc.MoveDealDown(ctx, "deal-1"))
	assert.Equal(t, []types.DealID{"deal-2", "deal-1"}, stageDeals(t, svc, "prospecting"))
	assert.ErrorIs(t, svc.MoveDealDown(ctx, "deal-1"), ErrAlreadyLastDeal)

	require.NoError(t, svc.MoveDealUp(ctx, "deal-1"))
	assert.Equal(t, []types.DealID{"deal-1", "deal-2"}, stageDeals(t, svc, "prospecting"))
	assert.ErrorIs(t, svc.MoveDealUp(ctx, "deal-1"), ErrAlreadyFirstDeal)
}

func TestMoveDealOutsideActivePipeline(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)

	err := svc.MoveDealToNextStage(context.Background(), "deal-6")
	assert.ErrorIs(t, err, ErrNotInActivePipeline)
}

// ============================================================================
// PIPELINES / SEARCH / SUMMARY
// ============================================================================

func TestSelectPipeline(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := setupService(t)

	require.NoError(t, svc.SelectPipeline(ctx, "partnerships"))
	current, err := svc.CurrentPipeline(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.PipelineID("partnerships"), current.ID)

	assert.ErrorIs(t, svc.SelectPipeline(ctx, "missing"), ErrPipelineNotFound)
	current, err = svc.CurrentPipeline(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.PipelineID("partnerships"), current.ID, "failed select keeps the selection")
}

func TestSearchDeals(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)

	view, err := svc.SearchDeals(context.Background(), "SAAS")
	require.NoError(t, err)

	var found []types.DealID
	for _, stage := range view.Stages {
		for _, d := range stage.Deals {
			found = append(found, d.ID)
		}
	}
	assert.ElementsMatch(t, []types.DealID{"deal-3", "deal-5"}, found)
	assert.Len(t, view.Stages, 5, "stages are kept even when empty")
}

func TestSummary(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Total.Count)
	assert.True(t, summary.Total.Total.Equal(decimal.NewFromInt(199000)))
	require.Len(t, summary.Stages, 5)
	assert.Equal(t, 2, summary.Stages[0].Count)
	// 12000*10% + 45000*10%
	assert.True(t, summary.Stages[0].Weighted.Equal(decimal.NewFromInt(5700)))
}

func TestListPipelines(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)

	pipelines := svc.ListPipelines(context.Background())
	require.Len(t, pipelines, 2)
	assert.Equal(t, types.PipelineID("sales"), pipelines[0].ID)
}
