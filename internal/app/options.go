package app

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/thenoetrevino/dealboard/internal/models"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger     *slog.Logger
	db         *sql.DB
	pipelines  []models.Pipeline
	httpClient *http.Client
	now        func() time.Time
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithDB supplies an already-open local database. The App will not close it.
func WithDB(db *sql.DB) Option {
	return func(cfg *appConfig) {
		cfg.db = db
	}
}

// WithPipelines replaces the seed pipelines
func WithPipelines(pipelines []models.Pipeline) Option {
	return func(cfg *appConfig) {
		cfg.pipelines = pipelines
	}
}

// WithHTTPClient sets the client used for webhook and identity calls
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *appConfig) {
		cfg.httpClient = client
	}
}

// WithClock overrides the time source for sessions
func WithClock(now func() time.Time) Option {
	return func(cfg *appConfig) {
		cfg.now = now
	}
}
