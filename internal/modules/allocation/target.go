package allocation

import (
	"github.com/aristath/mentor/internal/modules/settings"
)

// TargetCount derives how many positions a budget should be spread over.
// Budget tiers give the base count; short horizons concentrate by one position
// and long horizons diversify by one. The result is clamped to [1, MaxPositions].
func (a *Allocator) TargetCount(budget float64, period settings.HoldingPeriod) int {
	count := a.rules.TargetMax
	for _, tier := range a.rules.TargetTiers {
		if budget < tier.Below {
			count = tier.Count
			break
		}
	}

	switch period {
	case settings.PeriodShort:
		count--
	case settings.PeriodLong:
		count++
	}

	if count < 1 {
		count = 1
	}
	if a.rules.MaxPositions > 0 && count > a.rules.MaxPositions {
		count = a.rules.MaxPositions
	}
	return count
}
