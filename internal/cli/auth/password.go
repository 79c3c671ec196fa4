package auth

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
)

// PasswordCmd returns the auth password subcommand
func PasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the password of the signed-in user",
		Long: `Change your password. The new password must be at least 8 characters.

Examples:
  dealboard auth password --password-stdin < new.txt
`,
		RunE: handler.SimpleCommand(handler.Func(runPassword)),
	}

	cmd.Flags().String("confirm", "", "Repeat the new password (defaults to the password)")
	addPasswordFlags(cmd)

	handler.AddOutputFlags(cmd)

	return cmd
}

func runPassword(ctx context.Context, args *handler.Arguments) (any, error) {
	password, err := readPassword(args.GetCmd())
	if err != nil {
		return nil, err
	}

	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		err := cliInstance.App.AccountService.ChangePassword(ctx, password, confirmation(args.GetCmd(), password))
		if err != nil {
			return nil, err
		}
		return "✓ Password changed", nil
	})
}
