package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	"github.com/thenoetrevino/dealboard/internal/pipeline"
	dealservice "github.com/thenoetrevino/dealboard/internal/services/deal"
)

const defaultReportWidth = 80

// ReportCmd returns the pipeline report subcommand
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a markdown summary of a pipeline",
		Long: `Render a markdown report of a pipeline: totals, one table per stage,
and the next task on every deal.

Examples:
  # Styled for the terminal
  dealboard pipeline report

  # Plain markdown for a wiki or an email
  dealboard pipeline report --raw > pipeline.md

  # Fixed style when piping
  dealboard pipeline report --style=notty
`,
		RunE: handler.SimpleCommand(handler.Func(runReport)),
	}

	addPipelineFlag(cmd)
	cmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
	cmd.Flags().String("style", "auto", "Glamour style: auto, dark, light, notty, ascii")
	cmd.Flags().Int("width", defaultReportWidth, "Word wrap width")
	handler.AddOutputFlags(cmd)

	return cmd
}

func runReport(ctx context.Context, args *handler.Arguments) (any, error) {
	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		if err := selectRequested(ctx, cliInstance, args); err != nil {
			return nil, err
		}
		summary, err := cliInstance.App.DealService.Summary(ctx)
		if err != nil {
			return nil, err
		}

		result := reportResult{
			Pipeline: string(summary.Pipeline.ID),
			Markdown: BuildReport(summary),
			raw:      args.GetBool("raw"),
			style:    args.GetString("style", "auto"),
			width:    args.GetInt("width", defaultReportWidth),
		}
		if result.width <= 0 {
			return nil, cli.Usagef("width must be greater than 0")
		}
		return result, nil
	})
}

type reportResult struct {
	Pipeline string `json:"pipeline"`
	Markdown string `json:"markdown"`

	raw   bool
	style string
	width int
}

// GetID implements quiet output
func (r reportResult) GetID() string {
	return r.Pipeline
}

// Render implements cli.Renderer
func (r reportResult) Render(w io.Writer) error {
	if r.raw {
		_, err := io.WriteString(w, r.Markdown)
		return err
	}
	out, err := renderMarkdown(r.Markdown, r.style, r.width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func renderMarkdown(md, style string, width int) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}

// BuildReport writes the markdown for a pipeline summary
func BuildReport(summary dealservice.Summary) string {
	var b strings.Builder
	p := summary.Pipeline

	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	fmt.Fprintf(&b, "**%d deals** worth **%s**, weighted **%s**.\n\n",
		summary.Total.Count,
		pipeline.FormatMoney(summary.Total.Total),
		pipeline.FormatMoney(summary.Total.Weighted))

	b.WriteString("| Stage | Deals | Value | Weighted | Avg age |\n")
	b.WriteString("|---|---:|---:|---:|---:|\n")
	for i, stage := range p.Stages {
		s := summary.Stages[i]
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %.1fd |\n",
			escapeCell(stage.Name), s.Count,
			pipeline.FormatMoney(s.Total), pipeline.FormatMoney(s.Weighted), s.AverageAge)
	}

	for _, stage := range p.Stages {
		if len(stage.Deals) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s (%d%%)\n\n", stage.Name, stage.Probability)
		for _, d := range stage.Deals {
			fmt.Fprintf(&b, "- **%s** (%s), %s, owner %s, priority %s",
				d.Name, d.Company, pipeline.FormatMoney(d.Value), d.Owner, d.Priority)
			if d.NextTask != "" {
				fmt.Fprintf(&b, ". Next: %s", d.NextTask)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
