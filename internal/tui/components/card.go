package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/pipeline"
	"github.com/thenoetrevino/dealboard/internal/tui/theme"
)

// CardProps controls how a deal card is drawn
type CardProps struct {
	// Width is the full card width including border and padding
	Width int

	Selected bool
	// Dimmed marks the source card while its ghost is being dragged
	Dimmed bool
	// Ghost draws the lifted clone that follows the pointer
	Ghost bool
}

// PriorityColor maps a priority to its chip color
func PriorityColor(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return theme.PriorityHigh
	case models.PriorityLow:
		return theme.PriorityLow
	default:
		return theme.PriorityMedium
	}
}

// RenderCard renders a single deal as a card. The card is always four
// content lines tall so it lines up with the board layout.
//
//	╭──────────────────────────╮
//	│ Website Redesign       ● │
//	│ Northwind · Sarah Chen   │
//	│ $12,000 · 10%         3d │
//	│ → Intro call             │
//	╰──────────────────────────╯
func RenderCard(deal models.Deal, props CardProps) string {
	inner := max(props.Width-4, 4)

	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(PriorityColor(deal.Priority))).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render(fit(deal.Name, inner-2))

	var who []string
	for _, s := range []string{deal.Company, deal.Owner} {
		if s != "" {
			who = append(who, s)
		}
	}

	money := fmt.Sprintf("%s · %d%%", pipeline.FormatMoney(deal.Value), deal.Probability)
	age := fmt.Sprintf("%dd", deal.Age)

	footer := ""
	switch {
	case deal.NextTask != "":
		footer = "→ " + deal.NextTask
	case len(deal.Tags) > 0:
		footer = "#" + strings.Join(deal.Tags, " #")
	}

	lines := []string{
		name + " " + dot,
		SubtleStyle.Render(fit(strings.Join(who, " · "), inner)),
		spread(money, age, inner),
		SubtleStyle.Render(fit(footer, inner)),
	}
	content := strings.Join(lines, "\n")

	style := CardStyle
	switch {
	case props.Ghost:
		style = GhostCardStyle
	case props.Selected:
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}
	if props.Dimmed {
		style = style.Faint(true).BorderForeground(lipgloss.Color(theme.Subtle))
	}
	return style.Render(content)
}
