package deal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// DeleteCmd returns the deal delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a deal",
		Long:  "Delete a deal by ID (requires confirmation unless --force, --quiet, or --json).",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.SimpleCommand(handler.Func(runDelete)),
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	addSaveFlag(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	dealID := types.DealID(args.Args[0])
	cmd := args.GetCmd()

	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		deal, err := cliInstance.App.DealService.GetDeal(ctx, dealID)
		if err != nil {
			return nil, err
		}

		// Ask for confirmation unless forced or output is for a machine
		if !args.GetBool("force") && !args.GetBool("quiet") && !args.GetBool("json") {
			fmt.Fprintf(cmd.ErrOrStderr(), "Delete deal %s: '%s'? (y/N): ", deal.ID, deal.Name)
			if !confirmed(cmd.InOrStdin()) {
				return "Cancelled", nil
			}
		}

		if err := cliInstance.App.DealService.DeleteDeal(ctx, dealID); err != nil {
			return nil, err
		}
		saved, err := save(ctx, cliInstance, args)
		if err != nil {
			return nil, err
		}
		return deleteResult{DealID: dealID, Name: deal.Name, Saved: saved}, nil
	})
}

func confirmed(r io.Reader) bool {
	line, _ := bufio.NewReader(r).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

type deleteResult struct {
	DealID types.DealID `json:"deal_id"`
	Name   string       `json:"name"`
	Saved  string       `json:"saved,omitempty"`
}

// GetID implements quiet output
func (r deleteResult) GetID() string {
	return string(r.DealID)
}

// Render implements cli.Renderer
func (r deleteResult) Render(w io.Writer) error {
	fmt.Fprintln(w, styles.SuccessStyle.Render(fmt.Sprintf("✓ Deal %s (%s) deleted", r.DealID, r.Name)))
	renderSaved(w, r.Saved)
	return nil
}
