package formulas

import (
	"math"

	"github.com/markcheno/go-talib"
)

// CalculateRSI calculates the Relative Strength Index of oldest-first closes.
//
// RSI = 100 - 100/(1+RS), RS = average gain / average loss. The first window
// uses simple averages and later values use Wilder smoothing (weight 1/length),
// which is what go-talib implements.
//
// Returns nil when fewer than length+1 closes are available. A window without
// any losses (including a completely flat series) yields 100.
func CalculateRSI(closes []float64, length int) *float64 {
	if length < 2 || len(closes) < length+1 {
		return nil
	}

	if noLosses(closes) {
		result := 100.0
		return &result
	}

	rsi := talib.Rsi(closes, length)
	if len(rsi) == 0 {
		return nil
	}

	result := rsi[len(rsi)-1]
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return nil
	}
	result = math.Max(0, math.Min(100, result))
	return &result
}

// noLosses reports whether no close is lower than its predecessor.
// talib reports 0 for a window with neither gains nor losses; average loss is
// zero in that case, so RSI is defined as 100.
func noLosses(closes []float64) bool {
	for i := 1; i < len(closes); i++ {
		if closes[i] < closes[i-1] {
			return false
		}
	}
	return true
}
