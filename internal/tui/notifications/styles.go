package notifications

import "github.com/thenoetrevino/dealboard/internal/tui/theme"

type style struct {
	icon             string
	title            string
	foreground       string
	background       string
	borderForeground string
}

func (s Severity) style() style {
	switch s {
	case Warning:
		return style{
			icon:             "⚠",
			title:            "Warning",
			foreground:       theme.InfoFg,
			background:       theme.PriorityMedium,
			borderForeground: theme.PriorityMedium,
		}
	case Error:
		return style{
			icon:             "✕",
			title:            "Error",
			foreground:       theme.ErrorFg,
			background:       theme.ErrorBg,
			borderForeground: theme.ErrorBg,
		}
	default:
		return style{
			icon:             "✓",
			title:            "Done",
			foreground:       theme.InfoFg,
			background:       theme.InfoBg,
			borderForeground: theme.InfoBg,
		}
	}
}
