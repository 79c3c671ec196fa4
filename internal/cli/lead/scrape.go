package lead

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	leadservice "github.com/thenoetrevino/dealboard/internal/services/lead"
	"github.com/thenoetrevino/dealboard/internal/webhook"
)

const defaultScrapeLimit = 50

// ScrapeCmd returns the lead scrape subcommand
func ScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Start a scraper run",
		Long: `Ask the scraper workflow to collect leads for a keyword in a location.
The run is asynchronous; use 'dealboard lead recent' to see what it found.

Examples:
  dealboard lead scrape --keyword="dentist" --location="Austin, TX"
  JOB=$(dealboard lead scrape --keyword="roofing" --location="Denver" --limit=200 --quiet)
`,
		RunE: handler.Command(handler.Func(runScrape), parseScrapeFlags),
	}

	cmd.Flags().String("keyword", "", "What to search for (required)")
	cmd.Flags().String("location", "", "Where to search (required)")
	cmd.Flags().Int("limit", defaultScrapeLimit, "Maximum leads to collect (1-500)")

	handler.AddOutputFlags(cmd)

	return cmd
}

func parseScrapeFlags(cmd *cobra.Command) error {
	parser := handler.NewFlagParser(cmd)
	if _, err := parser.ParseString("keyword"); err != nil {
		return err
	}
	if _, err := parser.ParseString("location"); err != nil {
		return err
	}
	return nil
}

func runScrape(ctx context.Context, args *handler.Arguments) (any, error) {
	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		ack, err := cliInstance.App.LeadService.Scrape(ctx, leadservice.ScrapeRequest{
			Keyword:  args.GetString("keyword", ""),
			Location: args.GetString("location", ""),
			Limit:    args.GetInt("limit", defaultScrapeLimit),
		})
		if err != nil {
			return nil, err
		}
		return scrapeResult{ScrapeAck: *ack}, nil
	})
}

type scrapeResult struct {
	webhook.ScrapeAck
}

// GetID implements quiet output
func (r scrapeResult) GetID() string {
	return r.JobID
}

// Render implements cli.Renderer
func (r scrapeResult) Render(w io.Writer) error {
	fmt.Fprintln(w, "✓ Scrape started")
	if r.JobID != "" {
		fmt.Fprintf(w, "  Job: %s\n", r.JobID)
	}
	if r.Status != "" {
		fmt.Fprintf(w, "  Status: %s\n", r.Status)
	}
	if r.Message != "" {
		fmt.Fprintf(w, "  %s\n", r.Message)
	}
	return nil
}
