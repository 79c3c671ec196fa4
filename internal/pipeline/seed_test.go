package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

func TestDefaultPipelinesAreValid(t *testing.T) {
	require.NoError(t, ValidateSeed(DefaultPipelines()))
	assertInvariants(t, Board{Pipelines: DefaultPipelines()})
}

func TestParseSeedAcceptsComments(t *testing.T) {
	data := []byte(`[
		// the only pipeline
		{
			"id": "sales",
			"name": "Sales",
			"stages": [
				{"id": "new", "name": "New", "probability": 10, "deals": [
					{"id": "d1", "name": "First", "value": "1500.50", "probability": 10},
				]},
				{"id": "won", "name": "Won", "probability": 100},
			],
		},
	]`)

	pipelines, err := ParseSeed(data)
	require.NoError(t, err)
	require.Len(t, pipelines, 1)

	deal := pipelines[0].Stages[0].Deals[0]
	assert.Equal(t, types.StageID("new"), deal.Stage, "missing stage is filled from the holder")
	assert.Equal(t, models.PriorityMedium, deal.Priority)
	assert.Equal(t, "1500.5", deal.Value.String())
}

func TestValidateSeedErrors(t *testing.T) {
	tests := []struct {
		name      string
		pipelines []models.Pipeline
		want      error
	}{
		{"empty", nil, ErrEmptySeed},
		{"pipeline without id", []models.Pipeline{{Name: "x"}}, ErrMissingID},
		{"duplicate pipeline", []models.Pipeline{{ID: "a"}, {ID: "a"}}, ErrDuplicatePipeline},
		{"duplicate stage", []models.Pipeline{{ID: "a", Stages: []models.Stage{{ID: "s"}, {ID: "s"}}}}, ErrDuplicateStage},
		{"bad stage probability", []models.Pipeline{{ID: "a", Stages: []models.Stage{{ID: "s", Probability: 101}}}}, ErrInvalidProbability},
		{
			"duplicate deal across pipelines",
			[]models.Pipeline{
				{ID: "a", Stages: []models.Stage{{ID: "s", Deals: []models.Deal{{ID: "d"}}}}},
				{ID: "b", Stages: []models.Stage{{ID: "t", Deals: []models.Deal{{ID: "d"}}}}},
			},
			ErrDuplicateDeal,
		},
		{
			"dangling stage reference",
			[]models.Pipeline{{ID: "a", Stages: []models.Stage{{ID: "s", Deals: []models.Deal{{ID: "d", Stage: "other"}}}}}},
			ErrStageMismatch,
		},
		{
			"negative deal value",
			[]models.Pipeline{{ID: "a", Stages: []models.Stage{{ID: "s", Deals: []models.Deal{{ID: "d", Value: decimal.NewFromInt(-1)}}}}}},
			models.ErrNegativeValue,
		},
		{
			"unknown priority",
			[]models.Pipeline{{ID: "a", Stages: []models.Stage{{ID: "s", Deals: []models.Deal{{ID: "d", Priority: "urgent"}}}}}},
			models.ErrInvalidPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSeed(tt.pipelines)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseSeedRejectsInvalidDealFields(t *testing.T) {
	tests := []struct {
		name string
		deal string
		want error
	}{
		{"negative value", `{"id": "d1", "name": "Refund", "value": "-5000"}`, models.ErrNegativeValue},
		{"unknown priority", `{"id": "d1", "name": "Rush", "value": "5000", "priority": "urgent"}`, models.ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(`[{"id": "sales", "stages": [{"id": "new", "deals": [` + tt.deal + `]}]}]`)

			pipelines, err := ParseSeed(data)

			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, pipelines)
		})
	}
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipelines.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "p", "stages": [{"id": "s"}]}]`), 0o644))

	pipelines, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, types.PipelineID("p"), pipelines[0].ID)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.jsonc"))
	assert.Error(t, err)
}

func TestSaveSeedFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.jsonc")
	pipelines := DefaultPipelines()
	pipelines[0].Stages[0].Deals[0].Name = "Renamed"

	require.NoError(t, SaveSeedFile(path, pipelines))

	loaded, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, loaded, len(pipelines))
	assert.Equal(t, "Renamed", loaded[0].Stages[0].Deals[0].Name)
	assert.True(t, pipelines[0].Stages[0].Deals[0].Value.Equal(loaded[0].Stages[0].Deals[0].Value))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestSaveSeedFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.jsonc")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	err := SaveSeedFile(path, nil)

	assert.ErrorIs(t, err, ErrEmptySeed)
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "[]", string(data), "the old file is untouched")
}
