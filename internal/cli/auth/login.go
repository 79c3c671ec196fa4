package auth

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
)

// LoginCmd returns the auth login subcommand
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Long: `Sign in and keep the session locally.

Examples:
  dealboard auth login --email=ada@example.com --password-stdin < pw.txt
  DEALBOARD_PASSWORD=secret dealboard auth login --email=ada@example.com
`,
		RunE: handler.Command(handler.Func(runLogin), parseLoginFlags),
	}

	cmd.Flags().String("email", "", "Account email (required)")
	addPasswordFlags(cmd)

	handler.AddOutputFlags(cmd)

	return cmd
}

func parseLoginFlags(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseString("email")
	return err
}

func runLogin(ctx context.Context, args *handler.Arguments) (any, error) {
	password, err := readPassword(args.GetCmd())
	if err != nil {
		return nil, err
	}

	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		s, err := cliInstance.App.AccountService.SignIn(ctx, args.GetString("email", ""), password)
		if err != nil {
			return nil, err
		}
		return newSessionResult(s, "Signed in"), nil
	})
}
