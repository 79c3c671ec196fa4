package models

import "github.com/thenoetrevino/dealboard/internal/types"

// Stage is one step of a pipeline. Deal order is the manual ranking
// within the stage.
type Stage struct {
	ID          types.StageID `json:"id"`
	Name        string        `json:"name"`
	Probability int           `json:"probability"` // default win probability for entering deals
	Color       string        `json:"color"`
	Deals       []Deal        `json:"deals"`
}

// Clone deep-copies the stage and its deals. A nil deal list stays nil.
func (s Stage) Clone() Stage {
	if s.Deals == nil {
		return s
	}
	deals := make([]Deal, len(s.Deals))
	for i, d := range s.Deals {
		deals[i] = d.Clone()
	}
	s.Deals = deals
	return s
}

// IndexOf returns the position of the deal in the stage, or -1
func (s Stage) IndexOf(id types.DealID) int {
	for i := range s.Deals {
		if s.Deals[i].ID == id {
			return i
		}
	}
	return -1
}
