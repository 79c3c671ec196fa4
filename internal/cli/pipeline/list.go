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
)

// ListCmd returns the pipeline list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pipelines",
		Long: `List every pipeline on the board with its deal count and value.

Examples:
  # Human-readable list
  dealboard pipeline list

  # JSON output for agents
  dealboard pipeline list --json

  # Quiet mode (one ID per line)
  dealboard pipeline list --quiet
`,
		RunE: handler.SimpleCommand(handler.Func(runList)),
	}

	handler.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		selected := cliInstance.App.Store.Selected()

		result := listResult{}
		for _, p := range cliInstance.App.DealService.ListPipelines(ctx) {
			stats := pipeline.PipelineStats(p)
			result.Pipelines = append(result.Pipelines, pipelineRow{
				ID:       string(p.ID),
				Name:     p.Name,
				Stages:   len(p.Stages),
				Deals:    stats.Count,
				Total:    stats.Total.StringFixed(2),
				Selected: p.ID == selected,
			})
		}
		return result, nil
	})
}

type pipelineRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Stages   int    `json:"stages"`
	Deals    int    `json:"deals"`
	Total    string `json:"total_value"`
	Selected bool   `json:"selected"`
}

type listResult struct {
	Pipelines []pipelineRow `json:"pipelines"`
}

// GetIDs implements quiet output
func (r listResult) GetIDs() []string {
	ids := make([]string, len(r.Pipelines))
	for i, p := range r.Pipelines {
		ids[i] = p.ID
	}
	return ids
}

// Render implements cli.Renderer
func (r listResult) Render(w io.Writer) error {
	if len(r.Pipelines) == 0 {
		_, err := fmt.Fprintln(w, "No pipelines found")
		return err
	}

	fmt.Fprintln(w, styles.TitleStyle.Render("Pipelines"))
	for _, p := range r.Pipelines {
		marker := " "
		if p.Selected {
			marker = "*"
		}
		total, _ := parseMoney(p.Total)
		fmt.Fprintf(w, "%s %-16s %-24s %2d stages  %3d deals  %s\n",
			marker, p.ID, p.Name, p.Stages, p.Deals, total)
	}
	return nil
}
