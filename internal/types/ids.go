package types

// ID types give the string identifiers used across the board their own
// names, so a stage id can never be passed where a deal id is expected.

// PipelineID identifies a sales pipeline
type PipelineID string

// StageID identifies a stage, unique within its pipeline
type StageID string

// DealID identifies a deal, unique across the whole store
type DealID string

// LeadID identifies a lead returned by the recent-leads webhook
type LeadID string

func (id PipelineID) String() string { return string(id) }

func (id StageID) String() string { return string(id) }

func (id DealID) String() string { return string(id) }

func (id LeadID) String() string { return string(id) }

// IsZero reports whether the id is empty
func (id DealID) IsZero() bool {
	return id == ""
}
