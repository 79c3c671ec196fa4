package cli

import (
	"context"

	"github.com/thenoetrevino/dealboard/internal/app"
	"github.com/thenoetrevino/dealboard/internal/config"
)

type contextKey string

const (
	appKey        contextKey = "app"
	configPathKey contextKey = "configPath"
	configKey     contextKey = "config"
)

// WithApp returns a context carrying an existing App. Commands run under it
// reuse the App instead of opening their own; tests use this to inject an
// in-memory instance.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// WithConfigPath records the --config flag for NewCLI
func WithConfigPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, configPathKey, path)
}

// ConfigPathFromContext returns the --config value, or ""
func ConfigPathFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	path, _ := ctx.Value(configPathKey).(string)
	return path
}

// WithConfig returns a context carrying an already loaded config
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// GetCLIFromContext returns a CLI around an injected App if one is present,
// otherwise initializes a new one
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx != nil {
		if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
			return &CLI{App: a, Config: a.Config}, nil
		}
	}
	return NewCLI(ctx)
}
