package lead

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/models"
	leadservice "github.com/thenoetrevino/dealboard/internal/services/lead"
)

// RecentCmd returns the lead recent subcommand
func RecentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently collected leads",
		Long: `List the newest leads collected by the scraper.

Examples:
  dealboard lead recent
  dealboard lead recent --limit=10 --filter=austin --sort=name
  dealboard lead recent --json
`,
		RunE: handler.Command(handler.Func(runRecent), parseRecentFlags),
	}

	cmd.Flags().Int("limit", 0, "How many leads to fetch (1-500, default from config)")
	cmd.Flags().String("filter", "", "Only leads whose name, company, email, or location match")
	cmd.Flags().String("sort", string(leadservice.SortNewest), "Sort order: newest, oldest, name")

	handler.AddOutputFlags(cmd)

	return cmd
}

func parseRecentFlags(cmd *cobra.Command) error {
	sortFlag, _ := cmd.Flags().GetString("sort")
	if _, err := leadservice.ParseSortOrder(sortFlag); err != nil {
		return cli.Usagef("%v", err)
	}
	return nil
}

func runRecent(ctx context.Context, args *handler.Arguments) (any, error) {
	order, err := leadservice.ParseSortOrder(args.GetString("sort", string(leadservice.SortNewest)))
	if err != nil {
		return nil, cli.Usagef("%v", err)
	}

	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		limit := args.GetInt("limit", cliInstance.Config.Webhooks.RecentLimit)

		leads, err := cliInstance.App.LeadService.RecentLeads(ctx, leadservice.RecentLeadsRequest{
			Limit:  limit,
			Filter: args.GetString("filter", ""),
			Sort:   order,
		})
		if err != nil {
			return nil, err
		}
		return recentResult{Leads: leads}, nil
	})
}

type recentResult struct {
	Leads []models.Lead `json:"leads"`
}

// GetIDs implements quiet output
func (r recentResult) GetIDs() []string {
	ids := make([]string, len(r.Leads))
	for i, l := range r.Leads {
		ids[i] = string(l.ID)
	}
	return ids
}

// Render implements cli.Renderer
func (r recentResult) Render(w io.Writer) error {
	if len(r.Leads) == 0 {
		_, err := fmt.Fprintln(w, "No leads found")
		return err
	}

	fmt.Fprintln(w, styles.TitleStyle.Render(fmt.Sprintf("Recent leads (%d)", len(r.Leads))))
	for _, l := range r.Leads {
		created := "-"
		if !l.CreatedAt.IsZero() {
			created = l.CreatedAt.Local().Format(time.DateOnly)
		}
		fmt.Fprintf(w, "  %-12s %-28s %-24s %-28s %s\n",
			l.ID, l.Name, l.Company, l.Email, styles.SubtitleStyle.Render(created))
	}
	return nil
}
