// Package lead holds all cli commands that call the lead workflows
// e.g., dealboard lead ...
package lead

import (
	"github.com/spf13/cobra"
)

// LeadCmd returns the lead parent command
func LeadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Work with leads through the workflow webhooks",
		Long: `Schedule follow-ups, blacklist contacts, start scraper runs, and list
recently collected leads. Each command calls a webhook configured under
"webhooks" in the config file.`,
	}

	cmd.AddCommand(FollowUpCmd())
	cmd.AddCommand(BlacklistCmd())
	cmd.AddCommand(ScrapeCmd())
	cmd.AddCommand(RecentCmd())

	return cmd
}
