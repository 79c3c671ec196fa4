package components

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// StatusBarProps is what the bottom line shows
type StatusBarProps struct {
	Width int

	// Summary is the pipeline totals shown on the left
	Summary string

	// SearchInput is the rendered search box while typing
	SearchInput string

	// SearchQuery is an applied filter, shown when not typing
	SearchQuery string

	// Dragging names the deal being dragged
	Dragging string
}

// RenderStatusBar renders a status bar with left and right aligned text
// Left side: totals, the search box, or the drag hint
// Right side: "press ? for help"
func RenderStatusBar(props StatusBarProps) string {
	var left string
	switch {
	case props.SearchInput != "":
		left = StatusBarSearchStyle.Render("/") + props.SearchInput
	case props.Dragging != "":
		left = StatusBarSearchStyle.Render("moving " + props.Dragging + " · release over a stage to drop")
	case props.SearchQuery != "":
		left = StatusBarSearchStyle.Render("filter: "+props.SearchQuery) + StatusBarStyle.Render("  (esc to clear) · "+props.Summary)
	default:
		left = StatusBarStyle.Render(props.Summary)
	}
	right := StatusBarStyle.Render("press ? for help")

	gapWidth := max(props.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gapWidth), right)
}
