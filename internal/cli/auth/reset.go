package auth

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
)

// ResetCmd returns the auth reset subcommand
func ResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Email a password-reset link",
		Long: `Ask the identity service to email a password-reset link. Finish the
reset with 'dealboard auth recover --token=<token from the link>'.`,
		RunE: handler.Command(handler.Func(runReset), parseResetFlags),
	}

	cmd.Flags().String("email", "", "Account email (required)")

	handler.AddOutputFlags(cmd)

	return cmd
}

func parseResetFlags(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseString("email")
	return err
}

func runReset(ctx context.Context, args *handler.Arguments) (any, error) {
	email := args.GetString("email", "")
	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		if err := cliInstance.App.AccountService.RequestPasswordReset(ctx, email); err != nil {
			return nil, err
		}
		return fmt.Sprintf("✓ If an account exists for %s, a reset link is on its way", email), nil
	})
}
