package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	pipelinestore "github.com/thenoetrevino/dealboard/internal/pipeline"
)

// ExportCmd returns the pipeline export subcommand
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the board as a seed file",
		Long: `Write every pipeline as JSON in the seed file format. Point
board.seed_file at the result to start the board from it.

Examples:
  dealboard pipeline export > seed.jsonc
  dealboard pipeline export --out ~/.config/dealboard/seed.jsonc
`,
		RunE: runExport,
	}

	cmd.Flags().String("out", "", "Write to this file instead of stdout")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := handler.Formatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(fmt.Errorf("initialization error: %w", err))
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	data, err := pipelinestore.EncodeSeed(cliInstance.App.DealService.ListPipelines(ctx))
	if err != nil {
		return formatter.Fail(err)
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return formatter.Fail(fmt.Errorf("writing %s: %w", outPath, err))
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", outPath)
	return nil
}
