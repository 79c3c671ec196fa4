package auth

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	"github.com/thenoetrevino/dealboard/internal/models"
	accountservice "github.com/thenoetrevino/dealboard/internal/services/account"
)

// SignupCmd returns the auth signup subcommand
func SignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Long: `Register a new account. When the identity service requires email
confirmation you are signed in after following the link in that email.

Examples:
  dealboard auth signup --email=ada@example.com --full-name="Ada Lovelace" --password-stdin
`,
		RunE: handler.Command(handler.Func(runSignup), parseSignupFlags),
	}

	cmd.Flags().String("email", "", "Account email (required)")
	cmd.Flags().String("full-name", "", "Your name")
	cmd.Flags().String("company", "", "Company name")
	cmd.Flags().String("confirm", "", "Repeat the password (defaults to the password)")
	addPasswordFlags(cmd)

	handler.AddOutputFlags(cmd)

	return cmd
}

func parseSignupFlags(cmd *cobra.Command) error {
	_, err := handler.NewFlagParser(cmd).ParseString("email")
	return err
}

func runSignup(ctx context.Context, args *handler.Arguments) (any, error) {
	password, err := readPassword(args.GetCmd())
	if err != nil {
		return nil, err
	}

	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		result, err := cliInstance.App.AccountService.SignUp(ctx, accountservice.SignUpRequest{
			Email:    args.GetString("email", ""),
			Password: password,
			Confirm:  confirmation(args.GetCmd(), password),
			FullName: args.GetString("full-name", ""),
			Company:  args.GetString("company", ""),
		})
		if err != nil {
			return nil, err
		}
		return signupResult{User: result.User, NeedsConfirmation: result.NeedsConfirmation}, nil
	})
}

type signupResult struct {
	User              models.User `json:"user"`
	NeedsConfirmation bool        `json:"needs_confirmation"`
}

// GetID implements quiet output
func (r signupResult) GetID() string {
	return r.User.ID
}

// Render implements cli.Renderer
func (r signupResult) Render(w io.Writer) error {
	if r.NeedsConfirmation {
		_, err := fmt.Fprintf(w, "✓ Account created. Check %s for a confirmation link, then run 'dealboard auth login'.\n", r.User.Email)
		return err
	}
	_, err := fmt.Fprintf(w, "✓ Account created and signed in as %s\n", r.User.DisplayName())
	return err
}
