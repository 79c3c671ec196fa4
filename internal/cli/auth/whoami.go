package auth

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
)

// WhoamiCmd returns the auth whoami subcommand
func WhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Long: `Show the user behind the local session. With --refresh the profile is
fetched again from the identity service first.`,
		RunE: handler.SimpleCommand(handler.Func(runWhoami)),
	}

	cmd.Flags().Bool("refresh", false, "Re-read the profile from the identity service")

	handler.AddOutputFlags(cmd)

	return cmd
}

func runWhoami(ctx context.Context, args *handler.Arguments) (any, error) {
	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		accounts := cliInstance.App.AccountService
		current, err := accounts.Current(ctx)
		if args.GetBool("refresh") && err == nil {
			current, err = accounts.Refresh(ctx)
		}
		if err != nil {
			return nil, err
		}
		return newSessionResult(current, ""), nil
	})
}
