package components

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// TabWidth is the rendered width of a tab: border plus padding on each side
func TabWidth(name string) int {
	return lipgloss.Width(name) + 4
}

// RenderTabs renders a tab bar with the given tab names
// selectedIdx indicates which tab is active (0-indexed)
// width is the total width to fill with the tab gap
//
// Layout:
//
//	╭───────╮╭──────────────╮
//	│ Sales ││ Partnerships │──────────── ada@example.com
//	      active    inactive
func RenderTabs(tabs []string, selectedIdx int, width int, right string) string {
	var renderedTabs []string

	for i, tabName := range tabs {
		if i == selectedIdx {
			renderedTabs = append(renderedTabs, ActiveTabStyle.Render(tabName))
		} else {
			renderedTabs = append(renderedTabs, TabStyle.Render(tabName))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)

	rightWidth := lipgloss.Width(right)
	gapWidth := max(width-lipgloss.Width(row)-rightWidth-2, 0)
	gap := TabGapStyle.Render(strings.Repeat(" ", gapWidth))

	if right != "" {
		return lipgloss.JoinHorizontal(lipgloss.Bottom, row, gap, SubtleStyle.Render(right))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, row, gap)
}
