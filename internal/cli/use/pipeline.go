package use

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	"github.com/thenoetrevino/dealboard/internal/models"
	dealservice "github.com/thenoetrevino/dealboard/internal/services/deal"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// PipelineCmd returns the use pipeline subcommand
func PipelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline [pipeline-id]",
		Short: "Set pipeline context for current shell session",
		Long: `Set the current pipeline using an environment variable.
This command outputs shell commands that should be evaluated:

  eval $(dealboard use pipeline partnerships)   # Use partnerships
  eval $(dealboard use pipeline --clear)        # Clear pipeline context
  dealboard use pipeline --show                 # Show current pipeline

DEALBOARD_PIPELINE is set in your current shell session only. The
--pipeline flag on other commands takes precedence over it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUsePipeline,
	}

	cmd.Flags().Bool("clear", false, "Clear the current pipeline context")
	cmd.Flags().Bool("show", false, "Show the current pipeline context")
	cmd.Flags().Bool("dry-run", false, "Show what would be exported without outputting shell commands")

	return cmd
}

func runUsePipeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	formatter := handler.Formatter(cmd)

	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Handle --show flag
	if showFlag {
		return showCurrentPipeline(ctx, cmd)
	}

	// Handle --clear flag
	if clearFlag {
		if dryRun {
			fmt.Fprintf(errOut, "Would clear %s\n", handler.PipelineEnv)
			return nil
		}
		fmt.Fprintf(out, "unset %s\n", handler.PipelineEnv)
		fmt.Fprintf(errOut, "Cleared pipeline context\n")
		return nil
	}

	// Validate pipeline ID provided
	if len(args) == 0 {
		return formatter.Fail(cli.Usagef("pipeline ID required\nUsage: eval $(dealboard use pipeline <pipeline-id>)"))
	}
	pipelineID := types.PipelineID(args[0])

	p, err := findPipeline(ctx, pipelineID)
	if err != nil {
		return formatter.Fail(err)
	}

	// Output shell export command (to stdout for eval)
	if dryRun {
		fmt.Fprintf(errOut, "Would set %s=%s (%s)\n", handler.PipelineEnv, p.ID, p.Name)
		return nil
	}

	fmt.Fprintf(out, "export %s=%s\n", handler.PipelineEnv, p.ID)
	fmt.Fprintf(errOut, "Now using pipeline %s: %s\n", p.ID, p.Name)
	return nil
}

func showCurrentPipeline(ctx context.Context, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	current := os.Getenv(handler.PipelineEnv)
	if current == "" {
		fmt.Fprintln(out, "No pipeline context set")
		fmt.Fprintln(out, "Use 'eval $(dealboard use pipeline <pipeline-id>)' to set one")
		return nil
	}

	p, err := findPipeline(ctx, types.PipelineID(current))
	if err != nil {
		fmt.Fprintf(out, "Current pipeline: %s (pipeline not found)\n", current)
		return nil
	}

	fmt.Fprintf(out, "Current pipeline: %s (%s)\n", p.ID, p.Name)
	return nil
}

func findPipeline(ctx context.Context, id types.PipelineID) (models.Pipeline, error) {
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return models.Pipeline{}, fmt.Errorf("initialization error: %w", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	for _, p := range cliInstance.App.DealService.ListPipelines(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Pipeline{}, fmt.Errorf("%w: %s", dealservice.ErrPipelineNotFound, id)
}
