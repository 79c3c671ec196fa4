package pipeline

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/dealboard/internal/models"
)

// TotalValue sums deal values
func TotalValue(deals []models.Deal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range deals {
		total = total.Add(d.Value)
	}
	return total
}

// WeightedValue sums value * probability / 100
func WeightedValue(deals []models.Deal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range deals {
		total = total.Add(d.Weighted())
	}
	return total
}

// DealCount is len(deals), kept alongside the other stage figures
func DealCount(deals []models.Deal) int {
	return len(deals)
}

// AverageAge is the mean deal age in days, zero for an empty stage
func AverageAge(deals []models.Deal) float64 {
	if len(deals) == 0 {
		return 0
	}
	sum := 0
	for _, d := range deals {
		sum += d.Age
	}
	return float64(sum) / float64(len(deals))
}

// StageStats bundles the derived figures shown in a stage header
type StageStats struct {
	Count      int
	Total      decimal.Decimal
	Weighted   decimal.Decimal
	AverageAge float64
}

// StatsFor computes the header figures for a stage
func StatsFor(stage models.Stage) StageStats {
	return StageStats{
		Count:      DealCount(stage.Deals),
		Total:      TotalValue(stage.Deals),
		Weighted:   WeightedValue(stage.Deals),
		AverageAge: AverageAge(stage.Deals),
	}
}

// PipelineStats sums the stage figures across a whole pipeline
func PipelineStats(p models.Pipeline) StageStats {
	var all []models.Deal
	for _, s := range p.Stages {
		all = append(all, s.Deals...)
	}
	return StatsFor(models.Stage{Deals: all})
}

// FormatMoney renders whole currency units with thousands separators,
// e.g. $1,250,000
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + "$" + humanize.Comma(d.Round(0).IntPart())
}
