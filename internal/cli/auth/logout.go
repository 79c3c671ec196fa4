package auth

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
)

// LogoutCmd returns the auth logout subcommand
func LogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the local session",
		RunE:  handler.SimpleCommand(handler.Func(runLogout)),
	}

	handler.AddOutputFlags(cmd)

	return cmd
}

func runLogout(ctx context.Context, _ *handler.Arguments) (any, error) {
	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		if err := cliInstance.App.AccountService.SignOut(ctx); err != nil {
			return nil, err
		}
		return "✓ Signed out", nil
	})
}
