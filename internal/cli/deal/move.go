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
	dealservice "github.com/thenoetrevino/dealboard/internal/services/deal"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// MoveCmd returns the deal move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id> <next|prev|up|down|stage>",
		Short: "Move a deal to another stage or position",
		Long: `Move a deal by direction, or to a stage by ID or name (case-insensitive).
Moving into a stage sets the deal's probability to the stage's.

Examples:
  # Move to next stage
  dealboard deal move deal-1 next

  # Reorder within the stage
  dealboard deal move deal-2 up

  # To a stage, at the top
  dealboard deal move deal-1 negotiation --position=1

  # JSON output for agents
  dealboard deal move deal-1 "Closed Won" --json
`,
		Args: cobra.ExactArgs(2),
		RunE: handler.Command(handler.Func(runMove), parseMoveFlags),
	}

	cmd.Flags().Int("position", 0, "1-based position in the stage (defaults to the end)")
	addSaveFlag(cmd)
	handler.AddOutputFlags(cmd)

	return cmd
}

func parseMoveFlags(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("position") {
		return nil
	}
	_, err := handler.NewFlagParser(cmd).ParseInt("position")
	return err
}

func runMove(ctx context.Context, args *handler.Arguments) (any, error) {
	dealID := types.DealID(args.Args[0])
	target := args.Args[1]

	return handler.WithCLI(ctx, func(cliInstance *cli.CLI) (any, error) {
		svc := cliInstance.App.DealService
		if err := selectHolder(ctx, cliInstance, dealID); err != nil {
			return nil, err
		}
		before, err := svc.GetDeal(ctx, dealID)
		if err != nil {
			return nil, err
		}

		switch strings.ToLower(target) {
		case "next":
			err = svc.MoveDealToNextStage(ctx, dealID)
		case "prev":
			err = svc.MoveDealToPrevStage(ctx, dealID)
		case "up":
			err = svc.MoveDealUp(ctx, dealID)
		case "down":
			err = svc.MoveDealDown(ctx, dealID)
		default:
			err = moveToStage(ctx, cliInstance, dealID, target, args.GetInt("position", 0))
		}
		if err != nil {
			return nil, err
		}

		_, stageID, index, _ := cliInstance.App.Store.FindDeal(dealID)
		current, err := svc.CurrentPipeline(ctx)
		if err != nil {
			return nil, err
		}
		saved, err := save(ctx, cliInstance, args)
		if err != nil {
			return nil, err
		}
		return moveResult{
			DealID:   dealID,
			From:     stageName(current, before.Stage),
			To:       stageName(current, stageID),
			Position: index + 1,
			Saved:    saved,
		}, nil
	})
}

// moveToStage moves the deal into the named stage at a 1-based position,
// or to the end when position is 0. A deal already in the stage with no
// position stays where it is.
func moveToStage(ctx context.Context, cliInstance *cli.CLI, dealID types.DealID, target string, position int) error {
	current, err := cliInstance.App.DealService.CurrentPipeline(ctx)
	if err != nil {
		return err
	}
	dest, ok := findStage(current, target)
	if !ok {
		return fmt.Errorf("%w: %s (available: %s)", dealservice.ErrStageNotFound, target, availableStages(current))
	}

	_, sourceStage, sourceIndex, found := cliInstance.App.Store.FindDeal(dealID)
	if !found {
		return fmt.Errorf("%w: %s", dealservice.ErrDealNotFound, dealID)
	}
	if sourceStage == dest.ID && position == 0 {
		return nil
	}

	destIndex := len(dest.Deals)
	if position > 0 {
		destIndex = position - 1
	}
	return cliInstance.App.DealService.MoveDeal(ctx, dealservice.MoveDealRequest{
		DealID:        dealID,
		SourceStageID: sourceStage,
		DestStageID:   dest.ID,
		SourceIndex:   sourceIndex,
		DestIndex:     destIndex,
	})
}

// findStage matches a stage by ID, then by name ignoring case
func findStage(p models.Pipeline, target string) (models.Stage, bool) {
	for _, s := range p.Stages {
		if string(s.ID) == target {
			return s, true
		}
	}
	for _, s := range p.Stages {
		if strings.EqualFold(s.Name, target) {
			return s, true
		}
	}
	return models.Stage{}, false
}

func availableStages(p models.Pipeline) string {
	ids := make([]string, len(p.Stages))
	for i, s := range p.Stages {
		ids[i] = string(s.ID)
	}
	return strings.Join(ids, ", ")
}

func stageName(p models.Pipeline, id types.StageID) string {
	for _, s := range p.Stages {
		if s.ID == id {
			return s.Name
		}
	}
	return string(id)
}

type moveResult struct {
	DealID   types.DealID `json:"deal_id"`
	From     string       `json:"from_stage"`
	To       string       `json:"to_stage"`
	Position int          `json:"position"`
	Saved    string       `json:"saved,omitempty"`
}

// GetID implements quiet output
func (r moveResult) GetID() string {
	return string(r.DealID)
}

// Render implements cli.Renderer
func (r moveResult) Render(w io.Writer) error {
	if r.From == r.To {
		fmt.Fprintln(w, styles.SuccessStyle.Render(fmt.Sprintf("✓ Deal %s is at position %d in '%s'", r.DealID, r.Position, r.To)))
	} else {
		fmt.Fprintln(w, styles.SuccessStyle.Render(fmt.Sprintf("✓ Deal %s moved from '%s' to '%s'", r.DealID, r.From, r.To)))
	}
	renderSaved(w, r.Saved)
	return nil
}
