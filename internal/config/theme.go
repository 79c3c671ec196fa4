package config

// Theme defines all configurable color values
type Theme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset"`

	Accent         string `yaml:"accent"`
	StageBorder    string `yaml:"stage_border"`
	CardBorder     string `yaml:"card_border"`
	SelectedBorder string `yaml:"selected_border"`
	GhostBorder    string `yaml:"ghost_border"`
	Title          string `yaml:"title"`
	Subtle         string `yaml:"subtle"`
	Normal         string `yaml:"normal"`
	ErrorFg        string `yaml:"error_fg"`
	ErrorBg        string `yaml:"error_bg"`
	InfoFg         string `yaml:"info_fg"`
	InfoBg         string `yaml:"info_bg"`
}

// DefaultTheme is the purple default
func DefaultTheme() Theme {
	return Theme{
		Preset:         "default",
		Accent:         "#7D56F4",
		StageBorder:    "#3F3F46",
		CardBorder:     "#52525B",
		SelectedBorder: "#7D56F4",
		GhostBorder:    "#F472B6",
		Title:          "#FAFAFA",
		Subtle:         "#71717A",
		Normal:         "#E4E4E7",
		ErrorFg:        "#FEE2E2",
		ErrorBg:        "#7F1D1D",
		InfoFg:         "#DBEAFE",
		InfoBg:         "#1E3A8A",
	}
}

// MonochromeTheme is black and white
func MonochromeTheme() Theme {
	return Theme{
		Preset:         "monochrome",
		Accent:         "#FFFFFF",
		StageBorder:    "#808080",
		CardBorder:     "#A0A0A0",
		SelectedBorder: "#FFFFFF",
		GhostBorder:    "#FFFFFF",
		Title:          "#FFFFFF",
		Subtle:         "#808080",
		Normal:         "#D0D0D0",
		ErrorFg:        "#FFFFFF",
		ErrorBg:        "#404040",
		InfoFg:         "#000000",
		InfoBg:         "#C0C0C0",
	}
}

// ThemePreset returns a preset by name, falling back to the default
func ThemePreset(name string) Theme {
	if name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

// ApplyDefaults fills empty colors from the selected preset
func (t *Theme) ApplyDefaults() {
	preset := ThemePreset(t.Preset)

	fill := func(field *string, def string) {
		if *field == "" {
			*field = def
		}
	}

	fill(&t.Preset, preset.Preset)
	fill(&t.Accent, preset.Accent)
	fill(&t.StageBorder, preset.StageBorder)
	fill(&t.CardBorder, preset.CardBorder)
	fill(&t.SelectedBorder, preset.SelectedBorder)
	fill(&t.GhostBorder, preset.GhostBorder)
	fill(&t.Title, preset.Title)
	fill(&t.Subtle, preset.Subtle)
	fill(&t.Normal, preset.Normal)
	fill(&t.ErrorFg, preset.ErrorFg)
	fill(&t.ErrorBg, preset.ErrorBg)
	fill(&t.InfoFg, preset.InfoFg)
	fill(&t.InfoBg, preset.InfoBg)
}
