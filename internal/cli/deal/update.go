package deal

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	dealservice "github.com/thenoetrevino/dealboard/internal/services/deal"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// UpdateCmd returns the deal update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a deal's fields",
		Long: `Change the fields given as flags; everything else is kept. A deal's stage
only changes through: dealboard deal move

Examples:
  dealboard deal update deal-1 --value=15000 --next-task="Send contract"
  dealboard deal update deal-1 --tags=web,priority --priority=high --save
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.Command(handler.Func(runUpdate), parseUpdateFlags),
	}

	cmd.Flags().String("name", "", "Deal name")
	cmd.Flags().String("value", "", "Deal value")
	cmd.Flags().String("company", "", "Company")
	cmd.Flags().String("owner", "", "Owner")
	cmd.Flags().String("next-task", "", "Next task")
	cmd.Flags().Int("probability", 0, "Win probability 0-100")
	cmd.Flags().StringSlice("tags", nil, "Comma-separated tags (replaces the existing ones)")
	cmd.Flags().String("priority", "", "Priority: low, medium, or high")

	addSaveFlag(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

var updateFields = []string{"name", "value", "company", "owner", "next-task", "probability", "tags", "priority"}

func parseUpdateFlags(cmd *cobra.Command) error {
	changed := false
	for _, name := range updateFields {
		if cmd.Flags().Changed(name) {
			changed = true
			break
		}
	}
	if !changed {
		return cli.Usagef("nothing to update: pass at least one of --%s", updateFields[0])
	}

	parser := handler.NewFlagParser(cmd)
	if cmd.Flags().Changed("value") {
		if _, err := parser.ParseDecimal("value"); err != nil {
			return err
		}
	}
	_, err := parser.ParsePriority("priority")
	return err
}

func runUpdate(ctx context.Context, args *handler.Arguments) (any, error) {
	req := dealservice.UpdateDealRequest{
		DealID:   types.DealID(args.Args[0]),
		Name:     args.StringPtr("name"),
		Company:  args.StringPtr("company"),
		Owner:    args.StringPtr("owner"),
		NextTask: args.StringPtr("next-task"),
	}

	parser := args.Parser()
	if args.Has("value") {
		value, err := parser.ParseDecimal("value")
		if err != nil {
			return nil, err
		}
		req.Value = &value
	}
	if args.Has("priority") {
		priority, err := parser.ParsePriority("priority")
		if err != nil {
			return nil, err
		}
		req.Priority = &priority
	}
	if args.Has("probability") {
		p := args.GetInt("probability", 0)
		req.Probability = &p
	}
	if args.Has("tags") {
		tags := args.GetStringSlice("tags", nil)
		req.Tags = &tags
	}

	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		deal, err := cliInstance.App.DealService.UpdateDeal(ctx, req)
		if err != nil {
			return nil, err
		}
		saved, err := save(ctx, cliInstance, args)
		if err != nil {
			return nil, err
		}
		return dealResult{Deal: deal, Saved: saved, verb: "Updated"}, nil
	})
}
