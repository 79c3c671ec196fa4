package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Deals
	AddDeal       string `yaml:"add_deal"`
	EditDeal      string `yaml:"edit_deal"`
	DeleteDeal    string `yaml:"delete_deal"`
	MoveDealLeft  string `yaml:"move_deal_left"`
	MoveDealRight string `yaml:"move_deal_right"`
	MoveDealUp    string `yaml:"move_deal_up"`
	MoveDealDown  string `yaml:"move_deal_down"`
	CyclePriority string `yaml:"cycle_priority"`

	// Navigation
	PrevStage    string `yaml:"prev_stage"`
	NextStage    string `yaml:"next_stage"`
	PrevDeal     string `yaml:"prev_deal"`
	NextDeal     string `yaml:"next_deal"`
	NextPipeline string `yaml:"next_pipeline"`
	PrevPipeline string `yaml:"prev_pipeline"`

	// Other
	Search   string `yaml:"search"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		AddDeal:       "n",
		EditDeal:      "e",
		DeleteDeal:    "d",
		MoveDealLeft:  "<",
		MoveDealRight: ">",
		MoveDealUp:    "K",
		MoveDealDown:  "J",
		CyclePriority: "p",

		PrevStage:    "h",
		NextStage:    "l",
		PrevDeal:     "k",
		NextDeal:     "j",
		NextPipeline: "]",
		PrevPipeline: "[",

		Search:   "/",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (km *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(field *string, def string) {
		if *field == "" {
			*field = def
		}
	}

	fill(&km.AddDeal, defaults.AddDeal)
	fill(&km.EditDeal, defaults.EditDeal)
	fill(&km.DeleteDeal, defaults.DeleteDeal)
	fill(&km.MoveDealLeft, defaults.MoveDealLeft)
	fill(&km.MoveDealRight, defaults.MoveDealRight)
	fill(&km.MoveDealUp, defaults.MoveDealUp)
	fill(&km.MoveDealDown, defaults.MoveDealDown)
	fill(&km.CyclePriority, defaults.CyclePriority)
	fill(&km.PrevStage, defaults.PrevStage)
	fill(&km.NextStage, defaults.NextStage)
	fill(&km.PrevDeal, defaults.PrevDeal)
	fill(&km.NextDeal, defaults.NextDeal)
	fill(&km.NextPipeline, defaults.NextPipeline)
	fill(&km.PrevPipeline, defaults.PrevPipeline)
	fill(&km.Search, defaults.Search)
	fill(&km.ShowHelp, defaults.ShowHelp)
	fill(&km.Quit, defaults.Quit)
}
