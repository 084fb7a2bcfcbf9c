package formulas

import (
	"github.com/markcheno/go-talib"
)

// Standard MACD periods.
const (
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// MACD holds the latest MACD line, signal line and histogram.
type MACD struct {
	Line      float64 `json:"line"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// CalculateEMA returns the exponential moving average series of oldest-first values.
// EMA_t = value_t*k + EMA_{t-1}*(1-k) with k = 2/(period+1), seeded with the simple
// average of the first period values. Entries before index period-1 are zero.
// Returns nil when fewer than period values are available.
func CalculateEMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}
	return talib.Ema(values, period)
}

// CalculateMACD calculates MACD(fast, slow, signal) for oldest-first closes.
//
// The MACD line is EMA(fast) - EMA(slow); the signal line is EMA(signal) of the
// MACD line starting from the first point where the slow EMA is defined; the
// histogram is line - signal.
//
// Returns nil unless at least slow+signal closes are available.
func CalculateMACD(closes []float64, fast, slow, signal int) *MACD {
	if fast <= 0 || slow <= fast || signal <= 0 {
		return nil
	}
	if len(closes) < slow+signal {
		return nil
	}

	fastEMA := CalculateEMA(closes, fast)
	slowEMA := CalculateEMA(closes, slow)
	if fastEMA == nil || slowEMA == nil {
		return nil
	}

	line := make([]float64, 0, len(closes)-slow+1)
	for i := slow - 1; i < len(closes); i++ {
		line = append(line, fastEMA[i]-slowEMA[i])
	}

	signalEMA := CalculateEMA(line, signal)
	if signalEMA == nil {
		return nil
	}

	last := len(line) - 1
	result := MACD{
		Line:   line[last],
		Signal: signalEMA[last],
	}
	result.Histogram = result.Line - result.Signal
	return &result
}

// CalculateStandardMACD calculates MACD(12, 26, 9).
func CalculateStandardMACD(closes []float64) *MACD {
	return CalculateMACD(closes, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
}
