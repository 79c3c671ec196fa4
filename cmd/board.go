package cmd

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	"github.com/thenoetrevino/dealboard/internal/launcher"
)

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the pipeline board",
		Long: `Open the full-screen pipeline board. Drag cards between stages with the
mouse or move them with the keyboard; press ? on the board for every key.

Examples:
  dealboard board
  dealboard board --pipeline=partnerships
`,
		Args: cobra.NoArgs,
		RunE: runBoard,
	}

	addBoardFlags(cmd)

	return cmd
}

func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().String("pipeline", "", "Pipeline to open (uses DEALBOARD_PIPELINE env var if not specified)")
}

func runBoard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = cliInstance.Close()
	}()

	pipelineID := handler.NewFlagParser(cmd).ParsePipelineID()
	return launcher.Launch(ctx, cliInstance.App, pipelineID)
}
