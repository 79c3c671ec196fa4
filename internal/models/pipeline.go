package models

import "github.com/thenoetrevino/dealboard/internal/types"

// Pipeline is a named sales funnel: an ordered sequence of stages
type Pipeline struct {
	ID     types.PipelineID `json:"id"`
	Name   string           `json:"name"`
	Stages []Stage          `json:"stages"`
}

// Clone deep-copies the pipeline
func (p Pipeline) Clone() Pipeline {
	if p.Stages == nil {
		return p
	}
	stages := make([]Stage, len(p.Stages))
	for i, s := range p.Stages {
		stages[i] = s.Clone()
	}
	p.Stages = stages
	return p
}

// StageIndex returns the position of the stage, or -1
func (p Pipeline) StageIndex(id types.StageID) int {
	for i := range p.Stages {
		if p.Stages[i].ID == id {
			return i
		}
	}
	return -1
}

// DealCount counts deals across all stages
func (p Pipeline) DealCount() int {
	n := 0
	for _, s := range p.Stages {
		n += len(s.Deals)
	}
	return n
}
