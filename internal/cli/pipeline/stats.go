package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/pipeline"
	dealservice "github.com/thenoetrevino/dealboard/internal/services/deal"
)

// StatsCmd returns the pipeline stats subcommand
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stage totals for a pipeline",
		Long: `Show the deal count, total value, weighted value, and average age of
every stage in a pipeline.

Examples:
  dealboard pipeline stats
  dealboard pipeline stats --pipeline=partnerships --json
`,
		RunE: handler.SimpleCommand(handler.Func(runStats)),
	}

	addPipelineFlag(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func runStats(ctx context.Context, args *handler.Arguments) (any, error) {
	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		if err := selectRequested(ctx, cliInstance, args); err != nil {
			return nil, err
		}
		summary, err := cliInstance.App.DealService.Summary(ctx)
		if err != nil {
			return nil, err
		}
		return newStatsResult(summary), nil
	})
}

type stageFigures struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Total      string  `json:"total_value"`
	Weighted   string  `json:"weighted_value"`
	AverageAge float64 `json:"average_age_days"`
}

type statsResult struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Total  stageFigures   `json:"total"`
	Stages []stageFigures `json:"stages"`
}

func figures(id, name string, s pipeline.StageStats) stageFigures {
	return stageFigures{
		ID:         id,
		Name:       name,
		Count:      s.Count,
		Total:      s.Total.StringFixed(2),
		Weighted:   s.Weighted.StringFixed(2),
		AverageAge: s.AverageAge,
	}
}

func newStatsResult(summary dealservice.Summary) statsResult {
	result := statsResult{
		ID:    string(summary.Pipeline.ID),
		Name:  summary.Pipeline.Name,
		Total: figures("", "Total", summary.Total),
	}
	for i, stage := range summary.Pipeline.Stages {
		result.Stages = append(result.Stages, figures(string(stage.ID), stage.Name, summary.Stages[i]))
	}
	return result
}

// GetID implements quiet output
func (r statsResult) GetID() string {
	return r.ID
}

// Render implements cli.Renderer
func (r statsResult) Render(w io.Writer) error {
	fmt.Fprintln(w, styles.TitleStyle.Render(r.Name))
	row := func(f stageFigures) {
		total, _ := parseMoney(f.Total)
		weighted, _ := parseMoney(f.Weighted)
		fmt.Fprintf(w, "  %-16s %3d deals  %12s  weighted %12s  avg age %5.1fd\n",
			f.Name, f.Count, total, weighted, f.AverageAge)
	}
	for _, s := range r.Stages {
		row(s)
	}
	fmt.Fprintln(w, styles.SubtitleStyle.Render("  ──"))
	row(r.Total)
	return nil
}
