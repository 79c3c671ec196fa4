package deal

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// ShowCmd returns the deal show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show deal details",
		Long: `Show every field of a deal, in any pipeline.

Examples:
  dealboard deal show deal-1
  dealboard deal show deal-1 --json
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.SimpleCommand(handler.Func(runShow)),
	}

	handler.AddOutputFlags(cmd)

	return cmd
}

func runShow(ctx context.Context, args *handler.Arguments) (any, error) {
	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		deal, err := cliInstance.App.DealService.GetDeal(ctx, types.DealID(args.Args[0]))
		if err != nil {
			return nil, err
		}
		return dealResult{Deal: deal}, nil
	})
}
