package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/models"
)

// ShowCmd returns the pipeline show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the deals in a pipeline",
		Long: `Show every stage of a pipeline and the deals it holds, in board order.

Examples:
  # Show the default pipeline
  dealboard pipeline show

  # Only deals matching a name, company, owner, or tag
  dealboard pipeline show --pipeline=sales --search=saas

  # Quiet mode (one deal ID per line)
  dealboard pipeline show --quiet
`,
		RunE: handler.SimpleCommand(handler.Func(runShow)),
	}

	addPipelineFlag(cmd)
	cmd.Flags().String("search", "", "Filter deals by name, company, owner, or tag")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runShow(ctx context.Context, args *handler.Arguments) (any, error) {
	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		if err := selectRequested(ctx, cliInstance, args); err != nil {
			return nil, err
		}

		term := args.GetString("search", "")
		view, err := cliInstance.App.DealService.SearchDeals(ctx, term)
		if err != nil {
			return nil, err
		}
		return showResult{Pipeline: view, Search: term}, nil
	})
}

type showResult struct {
	Pipeline models.Pipeline `json:"pipeline"`
	Search   string          `json:"search,omitempty"`
}

// GetIDs implements quiet output
func (r showResult) GetIDs() []string {
	var ids []string
	for _, stage := range r.Pipeline.Stages {
		for _, d := range stage.Deals {
			ids = append(ids, string(d.ID))
		}
	}
	return ids
}

// Render implements cli.Renderer
func (r showResult) Render(w io.Writer) error {
	title := r.Pipeline.Name
	if r.Search != "" {
		title = fmt.Sprintf("%s (matching %q)", title, r.Search)
	}
	fmt.Fprintln(w, styles.TitleStyle.Render(title))

	for _, stage := range r.Pipeline.Stages {
		renderStage(w, stage)
	}
	return nil
}
