package formulas

import (
	"gonum.org/v1/gonum/stat"
)

// CalculateSMA calculates the simple moving average of the most recent period
// closes (oldest-first input). Returns nil when fewer than period closes exist.
func CalculateSMA(closes []float64, period int) *float64 {
	if period <= 0 || len(closes) < period {
		return nil
	}
	result := stat.Mean(closes[len(closes)-period:], nil)
	return &result
}

// CalculateDeviationRate returns (latest - sma) / sma * 100.
// Returns nil when sma is unavailable or zero.
func CalculateDeviationRate(latest float64, sma *float64) *float64 {
	if sma == nil || *sma == 0 {
		return nil
	}
	result := (latest - *sma) / *sma * 100
	return &result
}
