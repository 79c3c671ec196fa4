// Package deal holds the cli commands that read and edit single deals
// e.g., dealboard deal ...
package deal

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealboard/internal/cli"
	"github.com/thenoetrevino/dealboard/internal/cli/handler"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/pipeline"
	dealservice "github.com/thenoetrevino/dealboard/internal/services/deal"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// DealCmd returns the deal parent command
func DealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Show and edit deals",
		Long: `Show and edit deals. The board lives in memory, so edits only outlast
the command when --save writes them back to board.seed_file.`,
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(MoveCmd())

	return cmd
}

// addPipelineFlag registers --pipeline
func addPipelineFlag(cmd *cobra.Command) {
	cmd.Flags().String("pipeline", "", "Pipeline ID (uses DEALBOARD_PIPELINE env var if not specified)")
}

// addSaveFlag registers --save
func addSaveFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("save", false, "Write the result back to board.seed_file")
}

// selectRequested switches to the pipeline named by --pipeline or the
// environment, if any
func selectRequested(ctx context.Context, cliInstance *cli.CLI, args *handler.Arguments) error {
	id := args.Parser().ParsePipelineID()
	if id == "" {
		return nil
	}
	return cliInstance.App.DealService.SelectPipeline(ctx, id)
}

// selectHolder switches to the pipeline holding dealID so stage moves and
// stage lookups resolve against it
func selectHolder(ctx context.Context, cliInstance *cli.CLI, dealID types.DealID) error {
	pipelineID, _, _, ok := cliInstance.App.Store.FindDeal(dealID)
	if !ok {
		return fmt.Errorf("%w: %s", dealservice.ErrDealNotFound, dealID)
	}
	return cliInstance.App.DealService.SelectPipeline(ctx, pipelineID)
}

// save writes every pipeline to the seed file when --save was given and
// returns the path written, or ""
func save(ctx context.Context, cliInstance *cli.CLI, args *handler.Arguments) (string, error) {
	if !args.GetBool("save") {
		return "", nil
	}
	path := cliInstance.Config.Board.SeedFile
	if path == "" {
		return "", cli.Usagef("--save needs board.seed_file set in the config (create one with: dealboard pipeline export --out <file>)")
	}
	if err := pipeline.SaveSeedFile(path, cliInstance.App.DealService.ListPipelines(ctx)); err != nil {
		return "", err
	}
	return path, nil
}

// dealResult is a single deal plus where the change was saved
type dealResult struct {
	Deal  models.Deal `json:"deal"`
	Saved string      `json:"saved,omitempty"`

	verb string
}

// GetID implements quiet output
func (r dealResult) GetID() string {
	return string(r.Deal.ID)
}

// Render implements cli.Renderer
func (r dealResult) Render(w io.Writer) error {
	if r.verb != "" {
		fmt.Fprintln(w, styles.SuccessStyle.Render(fmt.Sprintf("✓ %s deal %s", r.verb, r.Deal.ID)))
	}
	fmt.Fprintln(w, renderDeal(r.Deal))
	renderSaved(w, r.Saved)
	return nil
}

func renderSaved(w io.Writer, path string) {
	if path != "" {
		fmt.Fprintln(w, styles.SubtitleStyle.Render("saved to "+path))
	}
}

// renderDeal is the detail card for a deal
func renderDeal(d models.Deal) string {
	row := func(label, value string) string {
		return styles.LabelStyle.Render(fmt.Sprintf("%-12s", label)) + styles.ValueStyle.Render(value)
	}

	lines := []string{
		styles.TitleStyle.Render(d.Name) + "  " + styles.RenderPriorityChip(d.Priority),
		row("ID", string(d.ID)),
		row("Stage", string(d.Stage)),
		row("Value", pipeline.FormatMoney(d.Value)),
		row("Probability", fmt.Sprintf("%d%%", d.Probability)),
		row("Company", orDash(d.Company)),
		row("Owner", orDash(d.Owner)),
		row("Next task", orDash(d.NextTask)),
		row("Age", fmt.Sprintf("%d days", d.Age)),
	}
	if len(d.Tags) > 0 {
		chips := make([]string, len(d.Tags))
		for i, tag := range d.Tags {
			chips[i] = styles.RenderTagChip(tag)
		}
		lines = append(lines, row("Tags", strings.Join(chips, " ")))
	}
	return styles.RenderCard(strings.Join(lines, "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
