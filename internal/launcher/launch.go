// Package launcher runs the board as a full-screen program
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/dealboard/internal/app"
	"github.com/thenoetrevino/dealboard/internal/tui/components"
	"github.com/thenoetrevino/dealboard/internal/tui/core"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// shutdownGrace is how long the program gets to restore the terminal
// after a signal
const shutdownGrace = 2 * time.Second

// Launch runs the board over application until the user quits or the
// process is interrupted. A non-empty pipelineID is selected first.
func Launch(ctx context.Context, application *app.App, pipelineID types.PipelineID, opts ...tea.ProgramOption) error {
	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components.InitStyles(application.Config.Theme)

	tuiApp, err := core.New(ctx, application, pipelineID)
	if err != nil {
		return fmt.Errorf("failed to open board: %w", err)
	}

	p := tea.NewProgram(tuiApp, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)

	// goroutine to monitor cancellation
	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	// Wait for program completion or cancellation
	select {
	case err := <-errChan:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		select {
		case <-errChan:
		case <-time.After(shutdownGrace):
			slog.Warn("board did not stop in time")
		}
	}

	return nil
}
