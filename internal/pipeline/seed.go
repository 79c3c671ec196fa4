package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
	"github.com/tidwall/jsonc"
)

// LoadSeedFile reads pipelines from a JSONC file (JSON with comments and
// trailing commas) and validates them
func LoadSeedFile(path string) ([]models.Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}
	pipelines, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return pipelines, nil
}

// ParseSeed decodes and validates seed data
func ParseSeed(data []byte) ([]models.Pipeline, error) {
	var pipelines []models.Pipeline
	if err := json.Unmarshal(jsonc.ToJSON(data), &pipelines); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	if err := ValidateSeed(pipelines); err != nil {
		return nil, err
	}
	return pipelines, nil
}

// EncodeSeed renders pipelines in the seed file format
func EncodeSeed(pipelines []models.Pipeline) ([]byte, error) {
	data, err := json.MarshalIndent(pipelines, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding seed: %w", err)
	}
	return append(data, '\n'), nil
}

// SaveSeedFile replaces the seed file at path with pipelines. The new file
// is written next to the old one and renamed over it.
func SaveSeedFile(path string, pipelines []models.Pipeline) error {
	if err := ValidateSeed(pipelines); err != nil {
		return err
	}
	data, err := EncodeSeed(pipelines)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".seed-*.jsonc")
	if err != nil {
		return fmt.Errorf("writing seed file %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing seed file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing seed file %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing seed file %s: %w", path, err)
	}
	return nil
}

// ValidateSeed checks the store invariants on freshly loaded data. Deals
// with no stage take their holder's id and deals with no priority become
// medium; everything else must already be consistent.
func ValidateSeed(pipelines []models.Pipeline) error {
	if len(pipelines) == 0 {
		return ErrEmptySeed
	}

	pipelineIDs := make(map[types.PipelineID]bool)
	dealIDs := make(map[types.DealID]bool)

	for pi := range pipelines {
		p := &pipelines[pi]
		if p.ID == "" {
			return fmt.Errorf("pipeline %d: %w", pi, ErrMissingID)
		}
		if pipelineIDs[p.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicatePipeline, p.ID)
		}
		pipelineIDs[p.ID] = true

		stageIDs := make(map[types.StageID]bool)
		for si := range p.Stages {
			s := &p.Stages[si]
			if s.ID == "" {
				return fmt.Errorf("pipeline %s stage %d: %w", p.ID, si, ErrMissingID)
			}
			if stageIDs[s.ID] {
				return fmt.Errorf("%w: %s/%s", ErrDuplicateStage, p.ID, s.ID)
			}
			stageIDs[s.ID] = true
			if s.Probability < 0 || s.Probability > 100 {
				return fmt.Errorf("stage %s: %w", s.ID, ErrInvalidProbability)
			}

			for di := range s.Deals {
				d := &s.Deals[di]
				if d.ID == "" {
					return fmt.Errorf("stage %s deal %d: %w", s.ID, di, ErrMissingID)
				}
				if dealIDs[d.ID] {
					return fmt.Errorf("%w: %s", ErrDuplicateDeal, d.ID)
				}
				dealIDs[d.ID] = true
				if d.Stage == "" {
					d.Stage = s.ID
				}
				if d.Stage != s.ID {
					return fmt.Errorf("deal %s: %w (%s in %s)", d.ID, ErrStageMismatch, d.Stage, s.ID)
				}
				if d.Probability < 0 || d.Probability > 100 {
					return fmt.Errorf("deal %s: %w", d.ID, ErrInvalidProbability)
				}
				if d.Value.IsNegative() {
					return fmt.Errorf("deal %s: %w", d.ID, models.ErrNegativeValue)
				}
				if d.Priority == "" {
					d.Priority = models.PriorityMedium
				}
				if !d.Priority.Valid() {
					return fmt.Errorf("deal %s: %w: %q", d.ID, models.ErrInvalidPriority, d.Priority)
				}
			}
		}
	}
	return nil
}

// DefaultPipelines is the board a fresh session starts with
func DefaultPipelines() []models.Pipeline {
	usd := decimal.NewFromInt
	return []models.Pipeline{
		{
			ID:   "sales",
			Name: "Sales Pipeline",
			Stages: []models.Stage{
				{ID: "prospecting", Name: "Prospecting", Probability: 10, Color: "#64748B", Deals: []models.Deal{
					{ID: "deal-1", Name: "Website Redesign", Value: usd(12000), Company: "Northwind Traders", Owner: "Sarah Chen", Stage: "prospecting", Age: 3, NextTask: "Intro call", Probability: 10, Tags: []string{"web", "design"}, Priority: models.PriorityMedium},
					{ID: "deal-2", Name: "CRM Migration", Value: usd(45000), Company: "Globex", Owner: "Marcus Reed", Stage: "prospecting", Age: 7, NextTask: "Send case study", Probability: 10, Tags: []string{"migration"}, Priority: models.PriorityHigh},
				}},
				{ID: "qualification", Name: "Qualification", Probability: 25, Color: "#3B82F6", Deals: []models.Deal{
					{ID: "deal-3", Name: "Analytics Suite", Value: usd(28000), Company: "Initech", Owner: "Sarah Chen", Stage: "qualification", Age: 12, NextTask: "Budget check", Probability: 25, Tags: []string{"analytics", "saas"}, Priority: models.PriorityMedium},
				}},
				{ID: "proposal", Name: "Proposal", Probability: 50, Color: "#8B5CF6", Deals: []models.Deal{
					{ID: "deal-4", Name: "Support Retainer", Value: usd(18000), Company: "Umbrella Corp", Owner: "Priya Patel", Stage: "proposal", Age: 21, NextTask: "Revise pricing", Probability: 50, Tags: []string{"support"}, Priority: models.PriorityLow},
				}},
				{ID: "negotiation", Name: "Negotiation", Probability: 75, Color: "#F59E0B", Deals: []models.Deal{
					{ID: "deal-5", Name: "Data Platform", Value: usd(96000), Company: "Stark Industries", Owner: "Marcus Reed", Stage: "negotiation", Age: 34, NextTask: "Legal review", Probability: 75, Tags: []string{"enterprise", "saas"}, Priority: models.PriorityHigh},
				}},
				{ID: "closed-won", Name: "Closed Won", Probability: 100, Color: "#10B981"},
			},
		},
		{
			ID:   "partnerships",
			Name: "Partnerships",
			Stages: []models.Stage{
				{ID: "outreach", Name: "Outreach", Probability: 15, Color: "#64748B", Deals: []models.Deal{
					{ID: "deal-6", Name: "Reseller Program", Value: usd(30000), Company: "Wayne Enterprises", Owner: "Priya Patel", Stage: "outreach", Age: 5, NextTask: "Partner deck", Probability: 15, Tags: []string{"channel"}, Priority: models.PriorityMedium},
				}},
				{ID: "pilot", Name: "Pilot", Probability: 40, Color: "#3B82F6"},
				{ID: "signed", Name: "Signed", Probability: 100, Color: "#10B981"},
			},
		},
	}
}
