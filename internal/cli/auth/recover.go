package auth

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
)

// RecoverCmd returns the auth recover subcommand
func RecoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Finish a password reset with the token from the email",
		Long: `Trade the token from a password-reset link for a session and set a new
password. The token is sent to the identity service exactly as given.

Examples:
  dealboard auth recover --token=pkce_abc123 --password-stdin < new.txt
`,
		RunE: handler.Command(handler.Func(runRecover), parseRecoverFlags),
	}

	cmd.Flags().String("token", "", "Token from the reset link (required)")
	cmd.Flags().String("confirm", "", "Repeat the new password (defaults to the password)")
	addPasswordFlags(cmd)

	handler.AddOutputFlags(cmd)

	return cmd
}

func parseRecoverFlags(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseString("token")
	return err
}

func runRecover(ctx context.Context, args *handler.Arguments) (any, error) {
	password, err := readPassword(args.GetCmd())
	if err != nil {
		return nil, err
	}
	// the flag value, not the trimmed one, goes out untouched
	token, _ := args.GetCmd().Flags().GetString("token")

	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		s, err := cliInstance.App.AccountService.CompletePasswordReset(ctx, token, password, confirmation(args.GetCmd(), password))
		if err != nil {
			return nil, err
		}
		return newSessionResult(s, "Password reset; signed in"), nil
	})
}
