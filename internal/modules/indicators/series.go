package indicators

import (
	"sort"

	"github.com/aristath/mentor/internal/domain"
	"github.com/aristath/mentor/pkg/formulas"
)

const (
	// Day-over-day thresholds for a single bad print
	maxPriceChangePercent = 1000.0 // >1000% change is a spike
	minPriceChangePercent = -90.0  // <-90% change is a crash
)

// Repair records a close that was replaced before indicators were computed.
type Repair struct {
	Index    int     `json:"index"` // position in the cleaned, oldest-first series
	Original float64 `json:"original"`
	Replaced float64 `json:"replaced"`
	Reason   string  `json:"reason"` // "spike_detected" or "crash_detected"
}

// Clean returns an oldest-first copy of the series fit for indicator math.
//
// Points whose close is non-positive or non-finite are dropped. A close that
// jumps past the spike or crash threshold and is reverted by the next session
// is treated as a bad print and replaced by linear interpolation between its
// neighbours, weighted by date. The latest point is never repaired, since a
// move on the last session cannot be told apart from a real one.
func Clean(series domain.PriceSeries) (domain.PriceSeries, []Repair) {
	sorted := sortOldestFirst(series)

	cleaned := sorted[:0]
	for _, p := range sorted {
		if p.Close > 0 && formulas.IsFinite(p.Close) {
			cleaned = append(cleaned, p)
		}
	}

	var repairs []Repair
	for i := 1; i < len(cleaned)-1; i++ {
		prev, next := cleaned[i-1], cleaned[i+1]
		reason := abnormalMove(prev.Close, cleaned[i].Close)
		if reason == "" || abnormalMove(prev.Close, next.Close) != "" {
			continue
		}

		replaced := interpolate(prev, cleaned[i], next)
		repairs = append(repairs, Repair{
			Index:    i,
			Original: cleaned[i].Close,
			Replaced: replaced,
			Reason:   reason,
		})
		cleaned[i].Close = replaced
	}

	return cleaned, repairs
}

// abnormalMove classifies the change from prev to price, "" when it is plausible.
func abnormalMove(prev, price float64) string {
	change := (price - prev) / prev * 100
	if change > maxPriceChangePercent {
		return "spike_detected"
	}
	if change < minPriceChangePercent {
		return "crash_detected"
	}
	return ""
}

func interpolate(before, at, after domain.PricePoint) float64 {
	total := after.Date.Sub(before.Date).Hours()
	if total <= 0 {
		return (before.Close + after.Close) / 2
	}
	elapsed := at.Date.Sub(before.Date).Hours()
	return before.Close + (after.Close-before.Close)*(elapsed/total)
}

func sortOldestFirst(series domain.PriceSeries) domain.PriceSeries {
	sorted := make(domain.PriceSeries, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
