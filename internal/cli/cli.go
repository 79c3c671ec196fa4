package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/dealboard/internal/app"
	"github.com/thenoetrevino/dealboard/internal/config"
	"github.com/thenoetrevino/dealboard/internal/logging"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	owned  bool
	Config *config.Config
}

// NewCLI loads configuration and builds the application container
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := LoadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	application, err := app.New(ctx, cfg, app.WithLogger(logging.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	return &CLI{
		App:    application,
		owned:  true,
		Config: cfg,
	}, nil
}

// LoadConfig returns the config stored in ctx, else reads the --config
// path, else the default location
func LoadConfig(ctx context.Context) (*config.Config, error) {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey).(*config.Config); ok && cfg != nil {
			return cfg, nil
		}
	}
	if path := ConfigPathFromContext(ctx); path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// Close cleans up CLI resources. An injected App is left open for its owner.
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
