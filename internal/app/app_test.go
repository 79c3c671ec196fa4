package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dealboard/internal/config"
	"github.com/thenoetrevino/dealboard/internal/database"
	"github.com/thenoetrevino/dealboard/internal/models"
	accountservice "github.com/thenoetrevino/dealboard/internal/services/account"
	"github.com/thenoetrevino/dealboard/internal/types"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestDB(t *testing.T) Option {
	t.Helper()
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return WithDB(db)
}

func TestNew(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), config.Default(), setupTestDB(t), WithLogger(quietLogger()))
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Store)
	assert.NotNil(t, a.DealService)
	assert.NotNil(t, a.LeadService)
	assert.NotNil(t, a.AccountService)
	assert.NotNil(t, a.Sessions)
	assert.Nil(t, a.Identity, "identity stays off without url and key")

	current, ok := a.Store.Current()
	require.True(t, ok)
	assert.Equal(t, types.PipelineID("sales"), current.ID)
}

func TestNewWithIdentity(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Identity.URL = "https://abc.supabase.co"
	cfg.Identity.AnonKey = "anon"

	a, err := New(context.Background(), cfg, setupTestDB(t), WithLogger(quietLogger()))
	require.NoError(t, err)
	defer a.Close()
	assert.NotNil(t, a.Identity)
}

func TestNewRejectsInsecureIdentityURL(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Identity.URL = "http://abc.supabase.co"
	cfg.Identity.AnonKey = "anon"

	_, err := New(context.Background(), cfg, setupTestDB(t), WithLogger(quietLogger()))
	assert.Error(t, err)
}

func TestNewWithoutIdentitySignInIsDisabled(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), config.Default(), setupTestDB(t), WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = a.AccountService.SignIn(context.Background(), "a@b.test", "password1")
	assert.ErrorIs(t, err, accountservice.ErrIdentityDisabled)
}

func TestNewWithSeedFile(t *testing.T) {
	t.Parallel()

	seed := `[
		// hand-edited board
		{"id": "renewals", "name": "Renewals", "stages": [
			{"id": "due", "name": "Due", "probability": 60, "deals": [
				{"id": "r-1", "name": "Annual plan", "value": "1200", "probability": 60},
			]},
		]},
	]`
	path := filepath.Join(t.TempDir(), "seed.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	cfg := config.Default()
	cfg.Board.SeedFile = path

	a, err := New(context.Background(), cfg, setupTestDB(t), WithLogger(quietLogger()))
	require.NoError(t, err)

	deal, ok := a.Store.Deal("r-1")
	require.True(t, ok)
	assert.Equal(t, types.StageID("due"), deal.Stage)
	assert.Equal(t, models.PriorityMedium, deal.Priority)
}

func TestNewWithBadSeedFile(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Board.SeedFile = filepath.Join(t.TempDir(), "missing.jsonc")

	_, err := New(context.Background(), cfg, setupTestDB(t), WithLogger(quietLogger()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed file")
}

func TestNewWithPipelines(t *testing.T) {
	t.Parallel()

	pipelines := []models.Pipeline{{ID: "p", Name: "P", Stages: []models.Stage{{ID: "s", Name: "S"}}}}
	a, err := New(context.Background(), config.Default(), setupTestDB(t), WithPipelines(pipelines), WithLogger(quietLogger()))
	require.NoError(t, err)

	got := a.Store.Pipelines()
	require.Len(t, got, 1)
	assert.Equal(t, types.PipelineID("p"), got[0].ID)
}

func TestCloseOwnedDB(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Session.DBPath = filepath.Join(t.TempDir(), "local.db")

	a, err := New(context.Background(), cfg, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.NoError(t, a.Close())
}
