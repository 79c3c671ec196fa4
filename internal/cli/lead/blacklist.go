package lead

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	"github.com/thenoetrevino/dealboard/internal/models"
	leadservice "github.com/thenoetrevino/dealboard/internal/services/lead"
)

// BlacklistCmd returns the lead blacklist subcommand
func BlacklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blacklist",
		Short: "Stop collecting leads for an email or domain",
		Long: `Add an email address, a domain, or both to the scraper blacklist.

Examples:
  dealboard lead blacklist --domain=spam.example
  dealboard lead blacklist --email=noreply@globex.com --reason="asked to be removed"
`,
		RunE: handler.Command(handler.Func(runBlacklist), parseBlacklistFlags),
	}

	cmd.Flags().String("email", "", "Email address to blacklist")
	cmd.Flags().String("domain", "", "Domain to blacklist")
	cmd.Flags().String("reason", "", "Why the contact is blacklisted")

	handler.AddOutputFlags(cmd)

	return cmd
}

func parseBlacklistFlags(cmd *cobra.Command) error {
	email, _ := cmd.Flags().GetString("email")
	domain, _ := cmd.Flags().GetString("domain")
	if strings.TrimSpace(email) == "" && strings.TrimSpace(domain) == "" {
		return cli.Usagef("provide --email, --domain, or both")
	}
	return nil
}

func runBlacklist(ctx context.Context, args *handler.Arguments) (any, error) {
	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		entry, err := cliInstance.App.LeadService.Blacklist(ctx, leadservice.BlacklistRequest{
			Email:  args.GetString("email", ""),
			Domain: args.GetString("domain", ""),
			Reason: args.GetString("reason", ""),
		})
		if err != nil {
			return nil, err
		}
		return blacklistResult{entry}, nil
	})
}

type blacklistResult struct {
	models.BlacklistEntry
}

// GetID implements quiet output
func (r blacklistResult) GetID() string {
	if r.Domain != "" {
		return r.Domain
	}
	return r.Email
}

// Render implements cli.Renderer
func (r blacklistResult) Render(w io.Writer) error {
	var targets []string
	if r.Email != "" {
		targets = append(targets, r.Email)
	}
	if r.Domain != "" {
		targets = append(targets, r.Domain)
	}
	_, err := fmt.Fprintf(w, "✓ Blacklisted %s\n", strings.Join(targets, " and "))
	return err
}
