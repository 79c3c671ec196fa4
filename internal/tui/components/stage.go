package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/pipeline"
	"github.com/thenoetrevino/dealboard/internal/tui/theme"
)

// StageProps controls how a stage frame is drawn
type StageProps struct {
	Width, Height int
	Selected      bool

	// Above and Below count the cards scrolled out of view
	Above, Below int
}

// RenderStageFrame renders a stage's border, header, and scroll indicators.
// Cards are drawn on top of it as separate layers.
//
// Layout:
//
//	╭──────────────────────╮
//	│ Proposal (3)     40% │
//	│ $90,000 · w $36,000  │
//	│ ▲ 2 more             │
//	│ {cards}              │
//	│ ▼ 1 more             │
//	╰──────────────────────╯
func RenderStageFrame(stage models.Stage, stats pipeline.StageStats, props StageProps) string {
	width := max(props.Width, 8)
	height := max(props.Height, 6)
	inner := width - 4

	borderColor := theme.StageBorder
	if props.Selected {
		borderColor = theme.SelectedBorder
	}
	if stage.Color != "" && !props.Selected {
		borderColor = stage.Color
	}
	border := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))

	header := spread(fmt.Sprintf("%s (%d)", stage.Name, stats.Count), fmt.Sprintf("%d%%", stage.Probability), inner)
	figures := fmt.Sprintf("%s · w %s", pipeline.FormatMoney(stats.Total), pipeline.FormatMoney(stats.Weighted))
	if stats.Count > 0 {
		figures += fmt.Sprintf(" · %.1fd", stats.AverageAge)
	}

	body := make([]string, height-2)
	for i := range body {
		body[i] = strings.Repeat(" ", inner)
	}
	body[0] = TitleStyle.Render(header)
	body[1] = SubtleStyle.Render(fit(figures, inner))
	if props.Above > 0 {
		body[2] = IndicatorStyle.Render(fit(fmt.Sprintf("▲ %d more", props.Above), inner))
	}
	if props.Below > 0 {
		body[len(body)-1] = IndicatorStyle.Render(fit(fmt.Sprintf("▼ %d more", props.Below), inner))
	}
	if stats.Count == 0 {
		body[3] = SubtleStyle.Italic(true).Render(fit("No deals", inner))
	}

	var b strings.Builder
	b.WriteString(border.Render("╭" + strings.Repeat("─", width-2) + "╮"))
	for _, line := range body {
		b.WriteString("\n" + border.Render("│") + " " + line + " " + border.Render("│"))
	}
	b.WriteString("\n" + border.Render("╰" + strings.Repeat("─", width-2) + "╯"))
	return b.String()
}
