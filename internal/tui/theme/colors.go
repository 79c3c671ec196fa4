// Package theme holds the board's current colors
package theme

import "github.com/thenoetrevino/dealboard/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Highlight      string
	StageBorder    string
	CardBorder     string
	SelectedBorder string
	GhostBorder    string
	Title          string
	Subtle         string
	Normal         string
	InfoFg         string
	InfoBg         string
	ErrorFg        string
	ErrorBg        string
)

// Priority colors are fixed so cards read the same in every theme
const (
	PriorityHigh   = "#EF4444"
	PriorityMedium = "#F59E0B"
	PriorityLow    = "#22C55E"
)

// Init initializes the theme colors from the given config theme
func Init(t config.Theme) {
	t.ApplyDefaults()
	Highlight = t.Accent
	StageBorder = t.StageBorder
	CardBorder = t.CardBorder
	SelectedBorder = t.SelectedBorder
	GhostBorder = t.GhostBorder
	Title = t.Title
	Subtle = t.Subtle
	Normal = t.Normal
	InfoFg = t.InfoFg
	InfoBg = t.InfoBg
	ErrorFg = t.ErrorFg
	ErrorBg = t.ErrorBg
}
