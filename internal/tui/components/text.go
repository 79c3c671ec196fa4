package components

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// fit cuts s to width cells, ending in "…" when cut, and pads it to width
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s + strings.Repeat(" ", width-lipgloss.Width(s))
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	out := string(runes) + "…"
	return out + strings.Repeat(" ", max(width-lipgloss.Width(out), 0))
}

// spread puts left and right at the two ends of a width-cell line
func spread(left, right string, width int) string {
	rw := lipgloss.Width(right)
	if rw >= width {
		return fit(right, width)
	}
	return fit(left, width-rw-1) + " " + right
}
