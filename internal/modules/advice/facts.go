package advice

import (
	"github.com/aristath/mentor/internal/modules/indicators"
	"github.com/aristath/mentor/internal/modules/settings"
	"github.com/aristath/mentor/pkg/formulas"
)

// Facts are the scalar inputs the corrector checks a verdict against.
// Every pointer field is optional; rules that need a missing fact do not fire.
type Facts struct {
	CurrentPrice     float64  `json:"current_price"`
	WeekChange       *float64 `json:"week_change,omitempty"` // percent
	Volatility       *float64 `json:"volatility,omitempty"`  // annualised, percent
	Profitable       *bool    `json:"profitable,omitempty"`
	Delisted         bool     `json:"delisted"`
	AverageCost      *float64 `json:"average_cost,omitempty"`
	UnrealizedReturn *float64 `json:"unrealized_return,omitempty"` // percent; derived from AverageCost when absent
}

// Return returns the unrealised return in percent, preferring the explicit value.
func (f Facts) Return() *float64 {
	if usable(f.UnrealizedReturn) {
		return f.UnrealizedReturn
	}
	if f.AverageCost == nil || !(*f.AverageCost > 0) || !(f.CurrentPrice > 0) {
		return nil
	}
	return formulas.PercentChange(*f.AverageCost, f.CurrentPrice)
}

// Context is everything a rule may read.
type Context struct {
	Facts      Facts
	Indicators indicators.IndicatorSet
	Rules      settings.AdviceRules
}

// usable reports whether an optional value is present and finite.
func usable(v *float64) bool {
	return v != nil && formulas.IsFinite(*v)
}
