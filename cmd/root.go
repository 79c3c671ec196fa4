// Package cmd wires the dealboard command tree
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/auth"
	"github.com/thenoetrevino/dealboard/internal/cli/deal"
	"github.com/thenoetrevino/dealboard/internal/cli/lead"
	"github.com/thenoetrevino/dealboard/internal/cli/pipeline"
	"github.com/thenoetrevino/dealboard/internal/cli/setup"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/cli/use"
	"github.com/thenoetrevino/dealboard/internal/logging"
)

// logFile holds the log file opened by initialize until the run ends
type logFile struct {
	closer io.Closer
}

func (l *logFile) Close() {
	if l.closer != nil {
		_ = l.closer.Close()
		l.closer = nil
	}
}

// Execute runs the command tree with args and closes the log file however
// the command ends
func Execute(ctx context.Context, args []string) error {
	logs := &logFile{}
	root := newRootCmd(logs)
	root.SetArgs(args)
	return execute(ctx, root, logs)
}

func execute(ctx context.Context, root *cobra.Command, logs *logFile) error {
	defer logs.Close()

	err := root.ExecuteContext(ctx)
	// before initialize the default logger still writes to stderr
	if err != nil && logs.closer != nil {
		slog.Error("command failed", "error", err)
	}
	return err
}

// NewRootCmd builds the command tree. Running it without a subcommand
// opens the board.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&logFile{})
}

func newRootCmd(logs *logFile) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dealboard",
		Short: "dealboard - A terminal sales pipeline board",
		Long: `dealboard is a terminal sales CRM: a drag-and-drop pipeline board, lead
actions backed by workflow webhooks, and sign-in against a hosted identity
service.

Run without a command to open the board.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			closer, err := initialize(cmd)
			logs.closer = closer
			return err
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/dealboard/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, or error (overrides log_level)")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cli.Usagef("%v", err)
	})

	// The bare command and `board` both open the board
	addBoardFlags(rootCmd)
	rootCmd.RunE = runBoard
	rootCmd.Args = cobra.NoArgs

	rootCmd.AddCommand(BoardCmd())
	rootCmd.AddCommand(pipeline.PipelineCmd())
	rootCmd.AddCommand(deal.DealCmd())
	rootCmd.AddCommand(lead.LeadCmd())
	rootCmd.AddCommand(auth.AuthCmd())
	rootCmd.AddCommand(use.UseCmd())
	rootCmd.AddCommand(setup.SetupCmd())

	return rootCmd
}

// initialize loads the config once for the whole run, starts file
// logging, and applies the theme
func initialize(cmd *cobra.Command) (io.Closer, error) {
	ctx := cmd.Context()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		ctx = cli.WithConfigPath(ctx, path)
	}

	cfg, err := cli.LoadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.LogLevel
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	closer, err := logging.Init("", logging.ParseLevel(level))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	slog.Debug("starting", "command", cmd.CommandPath())

	styles.Init(cfg.Theme)
	cmd.SetContext(cli.WithConfig(ctx, cfg))
	return closer, nil
}
