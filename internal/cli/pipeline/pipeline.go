// Package pipeline holds all cli commands that read the pipeline board
// e.g., dealboard pipeline ...
package pipeline

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
)

// PipelineCmd returns the pipeline parent command
func PipelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Inspect sales pipelines",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(StatsCmd())
	cmd.AddCommand(ReportCmd())
	cmd.AddCommand(ExportCmd())

	return cmd
}

// addPipelineFlag registers --pipeline
func addPipelineFlag(cmd *cobra.Command) {
	cmd.Flags().String("pipeline", "", "Pipeline ID (uses DEALBOARD_PIPELINE env var if not specified)")
}

// selectRequested switches to the pipeline named by --pipeline or the
// environment, if any
func selectRequested(ctx context.Context, cliInstance *cli.CLI, args *handler.Arguments) error {
	id := args.Parser().ParsePipelineID()
	if id == "" {
		return nil
	}
	return cliInstance.App.DealService.SelectPipeline(ctx, id)
}
