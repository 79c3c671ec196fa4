package lead

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	"github.com/thenoetrevino/dealboard/internal/models"
	leadservice "github.com/thenoetrevino/dealboard/internal/services/lead"
)

// FollowUpCmd returns the lead followup subcommand
func FollowUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "followup",
		Short: "Schedule a follow-up reminder",
		Long: `Schedule a follow-up reminder for a contact. Without --due the reminder
is set three days from now.

Examples:
  dealboard lead followup --email=ana@northwind.com --name="Ana" --message="Send pricing"
  dealboard lead followup --email=ana@northwind.com --due=2026-11-02T09:30 --json
`,
		RunE: handler.Command(handler.Func(runFollowUp), parseFollowUpFlags),
	}

	cmd.Flags().String("email", "", "Contact email (required)")
	cmd.Flags().String("name", "", "Contact name")
	cmd.Flags().String("message", "", "Reminder text")
	cmd.Flags().String("due", "", "When to follow up (2006-01-02 or 2006-01-02T15:04)")

	handler.AddOutputFlags(cmd)

	return cmd
}

func parseFollowUpFlags(cmd *cobra.Command) error {
	parser := handler.NewFlagParser(cmd)
	if _, err := parser.ParseString("email"); err != nil {
		return err
	}
	_, err := parser.ParseDate("due")
	return err
}

func runFollowUp(ctx context.Context, args *handler.Arguments) (any, error) {
	due, err := args.Parser().ParseDate("due")
	if err != nil {
		return nil, err
	}

	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		followUp, err := cliInstance.App.LeadService.ScheduleFollowUp(ctx, leadservice.FollowUpRequest{
			Email:   args.GetString("email", ""),
			Name:    args.GetString("name", ""),
			Message: args.GetString("message", ""),
			DueAt:   due,
		})
		if err != nil {
			return nil, err
		}
		return followUpResult{followUp}, nil
	})
}

type followUpResult struct {
	models.FollowUp
}

// GetID implements quiet output
func (r followUpResult) GetID() string {
	return r.Email
}

// Render implements cli.Renderer
func (r followUpResult) Render(w io.Writer) error {
	who := r.Email
	if r.Name != "" {
		who = fmt.Sprintf("%s <%s>", r.Name, r.Email)
	}
	_, err := fmt.Fprintf(w, "✓ Follow-up with %s scheduled for %s\n",
		who, r.DueAt.Local().Format(time.DateTime))
	return err
}
