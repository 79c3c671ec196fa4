package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/dealboard/internal/cli/styles"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/pipeline"
)

func parseMoney(s string) (string, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s, err
	}
	return pipeline.FormatMoney(d), nil
}

// renderStage writes a stage header followed by one line per deal
func renderStage(w io.Writer, stage models.Stage) {
	stats := pipeline.StatsFor(stage)
	header := fmt.Sprintf("%s (%d)  %s  weighted %s",
		stage.Name, stats.Count,
		pipeline.FormatMoney(stats.Total),
		pipeline.FormatMoney(stats.Weighted))
	fmt.Fprintln(w, styles.SectionStyle.Render(styles.BoldColoredText("●", stage.Color)+" "+header))

	if len(stage.Deals) == 0 {
		fmt.Fprintln(w, styles.SubtitleStyle.Render("  no deals"))
		return
	}
	for _, d := range stage.Deals {
		fmt.Fprintln(w, renderDealLine(d))
	}
}

func renderDealLine(d models.Deal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %-10s %-24s %10s  %-20s %s",
		d.ID, d.Name, pipeline.FormatMoney(d.Value), d.Company, styles.RenderPriorityChip(d.Priority))
	for _, tag := range d.Tags {
		b.WriteString(" ")
		b.WriteString(styles.RenderTagChip(tag))
	}
	return b.String()
}
