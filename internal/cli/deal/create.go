package deal

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	"github.com/thenoetrevino/dealboard/internal/models"
	dealservice "github.com/thenoetrevino/dealboard/internal/services/deal"
	"github.com/thenoetrevino/dealboard/internal/types"
	"github.com/thenoetrevino/dealboard/internal/user"
)

// CreateCmd returns the deal create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a deal to a stage",
		Long: `Add a deal to the end of a stage in the selected pipeline. Probability
defaults to the stage's and priority to medium.

Examples:
  dealboard deal create --stage=prospecting --name="Fleet Renewal" --value=5000
  dealboard deal create --pipeline=partnerships --stage=pilot --name="Reseller" \
    --company=Acme --tags=channel,emea --priority=high --save

  # Quiet mode prints the new ID
  DEAL_ID=$(dealboard deal create --stage=prospecting --name=Fleet --quiet)
`,
		RunE: handler.Command(handler.Func(runCreate), parseCreateFlags),
	}

	cmd.Flags().String("stage", "", "Stage ID (required)")
	cmd.Flags().String("name", "", "Deal name (required)")
	cmd.Flags().String("value", "0", "Deal value")
	cmd.Flags().String("company", "", "Company")
	cmd.Flags().String("owner", "", "Owner (defaults to the signed-in user, else the OS account)")
	cmd.Flags().String("next-task", "", "Next task")
	cmd.Flags().Int("probability", 0, "Win probability 0-100 (defaults to the stage's)")
	cmd.Flags().StringSlice("tags", nil, "Comma-separated tags")
	cmd.Flags().String("priority", "", "Priority: low, medium, or high")

	addPipelineFlag(cmd)
	addSaveFlag(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func parseCreateFlags(cmd *cobra.Command) error {
	parser := handler.NewFlagParser(cmd)
	if _, err := parser.ParseString("stage"); err != nil {
		return err
	}
	if _, err := parser.ParseString("name"); err != nil {
		return err
	}
	if _, err := parser.ParseDecimal("value"); err != nil {
		return err
	}
	_, err := parser.ParsePriority("priority")
	return err
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	parser := args.Parser()
	value, err := parser.ParseDecimal("value")
	if err != nil {
		return nil, err
	}
	priority, err := parser.ParsePriority("priority")
	if err != nil {
		return nil, err
	}

	req := dealservice.CreateDealRequest{
		StageID:  types.StageID(args.GetString("stage", "")),
		Name:     args.GetString("name", ""),
		Value:    value,
		Company:  args.GetString("company", ""),
		Owner:    args.GetString("owner", ""),
		NextTask: args.GetString("next-task", ""),
		Tags:     args.GetStringSlice("tags", nil),
		Priority: priority,
	}
	if args.Has("probability") {
		p := args.GetInt("probability", 0)
		req.Probability = &p
	}

	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		if err := selectRequested(ctx, cliInstance, args); err != nil {
			return nil, err
		}
		if req.Owner == "" {
			req.Owner = defaultOwner(ctx, cliInstance)
		}
		deal, err := cliInstance.App.DealService.CreateDeal(ctx, req)
		if err != nil {
			return nil, err
		}
		saved, err := save(ctx, cliInstance, args)
		if err != nil {
			return nil, err
		}
		return dealResult{Deal: deal, Saved: saved, verb: "Created"}, nil
	})
}

// defaultOwner names the signed-in user, if any, without refreshing or
// failing on an expired session
func defaultOwner(ctx context.Context, cliInstance *cli.CLI) string {
	var signedIn *models.User
	if cliInstance.App.AccountService != nil {
		if current, err := cliInstance.App.AccountService.Current(ctx); err == nil {
			signedIn = &current.User
		}
	}
	return user.DefaultOwner(signedIn)
}
