package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/dealboard/internal/auth"
	"github.com/thenoetrevino/dealboard/internal/config"
	"github.com/thenoetrevino/dealboard/internal/database"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/pipeline"
	accountservice "github.com/thenoetrevino/dealboard/internal/services/account"
	dealservice "github.com/thenoetrevino/dealboard/internal/services/deal"
	leadservice "github.com/thenoetrevino/dealboard/internal/services/lead"
	"github.com/thenoetrevino/dealboard/internal/session"
	"github.com/thenoetrevino/dealboard/internal/webhook"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	Config *config.Config

	// Local storage for the session blob
	db     *sql.DB
	ownsDB bool

	// In-memory pipeline state
	Store *pipeline.Store

	// Clients
	Webhooks *webhook.Client
	Identity *auth.Client // nil when identity is not configured
	Sessions *session.Manager

	// Service layer (business logic)
	DealService    dealservice.Service
	LeadService    leadservice.Service
	AccountService accountservice.Service

	logger *slog.Logger
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	options := &appConfig{}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}
	now := options.now
	if now == nil {
		now = time.Now
	}

	pipelines, err := loadPipelines(cfg, options.pipelines)
	if err != nil {
		return nil, err
	}

	db, ownsDB := options.db, false
	if db == nil {
		db, err = database.InitDB(ctx, cfg.Session.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening local storage: %w", err)
		}
		ownsDB = true
	}

	store := pipeline.NewStore(pipelines, pipeline.WithLogger(logger))

	webhookCfg := webhook.ConfigFrom(cfg.Webhooks)
	webhookCfg.HTTPClient = options.httpClient
	webhookCfg.Logger = logger
	webhooks := webhook.NewClient(webhookCfg)

	sessions := session.NewManager(database.NewKVRepo(db).WithClock(now),
		session.WithClock(now),
		session.WithTTL(cfg.Session.TTL),
		session.WithLogger(logger))

	a := &App{
		Config:      cfg,
		db:          db,
		ownsDB:      ownsDB,
		Store:       store,
		Webhooks:    webhooks,
		Sessions:    sessions,
		DealService: dealservice.NewService(store, logger),
		LeadService: leadservice.NewService(webhooks, logger),
		logger:      logger,
	}

	identityCfg := auth.ConfigFrom(cfg.Identity, cfg.Webhooks.Timeout)
	identityCfg.HTTPClient = options.httpClient
	identityCfg.Logger = logger
	identityCfg.Now = now
	identity, err := auth.NewClient(identityCfg)
	switch {
	case err == nil:
		a.Identity = identity
		a.AccountService = accountservice.NewService(identity, sessions, cfg.Identity.RedirectURL, logger)
	case errors.Is(err, auth.ErrNotConfigured):
		logger.Info("identity service not configured; auth commands disabled")
		a.AccountService = accountservice.NewService(nil, sessions, cfg.Identity.RedirectURL, logger)
	default:
		_ = a.Close()
		return nil, err
	}

	return a, nil
}

// loadPipelines picks explicit pipelines, then the seed file, then the built-in board
func loadPipelines(cfg *config.Config, explicit []models.Pipeline) ([]models.Pipeline, error) {
	if explicit != nil {
		if err := pipeline.ValidateSeed(explicit); err != nil {
			return nil, err
		}
		return explicit, nil
	}
	if cfg.Board.SeedFile != "" {
		pipelines, err := pipeline.LoadSeedFile(cfg.Board.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("loading seed file: %w", err)
		}
		return pipelines, nil
	}
	return pipeline.DefaultPipelines(), nil
}

// Close performs cleanup of application resources.
func (a *App) Close() error {
	if a.ownsDB && a.db != nil {
		return a.db.Close()
	}
	return nil
}
