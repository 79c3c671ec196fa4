package models

import (
	"slices"

	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// Deal is a sales opportunity held by exactly one stage
type Deal struct {
	ID          types.DealID    `json:"id"`
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Company     string          `json:"company"`
	Owner       string          `json:"owner"`
	Stage       types.StageID   `json:"stage"`
	Age         int             `json:"age"` // days, display only
	NextTask    string          `json:"next_task"`
	Probability int             `json:"probability"` // percent, copied from the stage on entry
	Tags        []string        `json:"tags"`
	Priority    Priority        `json:"priority"`
}

// Clone returns a copy that shares no slices with d
func (d Deal) Clone() Deal {
	d.Tags = slices.Clone(d.Tags)
	return d
}

// Weighted returns value * probability / 100
func (d Deal) Weighted() decimal.Decimal {
	return d.Value.Mul(decimal.NewFromInt(int64(d.Probability))).Div(decimal.NewFromInt(100))
}

// DealDraft carries the fields of a deal that does not exist yet.
// The store assigns the ID and the stage.
type DealDraft struct {
	Name        string
	Value       decimal.Decimal
	Company     string
	Owner       string
	Age         int
	NextTask    string
	Probability *int // nil takes the stage default
	Tags        []string
	Priority    Priority
}
