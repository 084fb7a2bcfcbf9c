package formulas

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear is used to annualise daily volatility.
const TradingDaysPerYear = 252

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// CalculateReturns converts prices to fractional returns.
// Returns[i] = (Price[i+1] - Price[i]) / Price[i]; zero prices produce a zero return.
func CalculateReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			returns[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
		}
	}
	return returns
}

// AnnualizedVolatility calculates annualised volatility in percent from daily returns.
// Formula: StdDev(daily returns) * sqrt(252) * 100
func AnnualizedVolatility(dailyReturns []float64) float64 {
	return StdDev(dailyReturns) * math.Sqrt(TradingDaysPerYear) * 100
}

// PercentChange returns (to - from) / from * 100, or nil when from is zero.
func PercentChange(from, to float64) *float64 {
	if from == 0 {
		return nil
	}
	result := (to - from) / from * 100
	return &result
}

// Round rounds to the given number of decimal places.
func Round(value float64, places int) float64 {
	return scalar.Round(value, places)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
