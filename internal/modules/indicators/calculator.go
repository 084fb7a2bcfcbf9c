// Package indicators derives technical indicators and missing candidate signals
// from a price history.
package indicators

import (
	"github.com/aristath/mentor/internal/domain"
	"github.com/aristath/mentor/internal/modules/settings"
	"github.com/aristath/mentor/pkg/formulas"
	"github.com/rs/zerolog"
)

// IndicatorSet is the read-only indicator snapshot for one price series.
// Fields are nil when the history is too short to compute them.
type IndicatorSet struct {
	RSI         *float64       `json:"rsi"`
	MACD        *formulas.MACD `json:"macd"`
	SMA         *float64       `json:"sma"`
	SMAPeriod   int            `json:"sma_period"`
	Deviation   *float64       `json:"deviation"`
	LatestClose *float64       `json:"latest_close"`
	Points      int            `json:"points"`
}

// Calculator computes indicators over price series. It is stateless and safe
// for concurrent use.
type Calculator struct {
	rules settings.IndicatorRules
	log   zerolog.Logger
}

// NewCalculator creates a new indicator calculator
func NewCalculator(rules settings.IndicatorRules, log zerolog.Logger) *Calculator {
	return &Calculator{
		rules: rules,
		log:   log.With().Str("component", "indicators").Logger(),
	}
}

// Compute builds the IndicatorSet for a series. The series may be in any order;
// a cleaned, sorted copy is used and the caller's slice is left untouched.
func (c *Calculator) Compute(series domain.PriceSeries) IndicatorSet {
	sorted := c.prepare(series)
	closes := closesOf(sorted)

	set := IndicatorSet{
		SMAPeriod: c.rules.SMAPeriod,
		Points:    len(closes),
	}
	if len(closes) == 0 {
		return set
	}

	latest := closes[len(closes)-1]
	set.LatestClose = &latest
	set.RSI = formulas.CalculateRSI(closes, c.rules.RSIPeriod)
	set.MACD = formulas.CalculateMACD(closes, c.rules.MACDFast, c.rules.MACDSlow, c.rules.MACDSignal)
	set.SMA = formulas.CalculateSMA(closes, c.rules.SMAPeriod)
	set.Deviation = formulas.CalculateDeviationRate(latest, set.SMA)

	c.log.Debug().
		Int("points", set.Points).
		Bool("has_rsi", set.RSI != nil).
		Bool("has_macd", set.MACD != nil).
		Bool("has_sma", set.SMA != nil).
		Msg("Computed indicators")

	return set
}

// Enrich returns a copy of the candidate with nil signal fields filled in from
// the price history. Values already supplied by the feed are never overwritten.
func (c *Calculator) Enrich(candidate domain.Candidate, series domain.PriceSeries) domain.Candidate {
	sorted := c.prepare(series)
	if len(sorted) == 0 {
		return candidate
	}

	closes := closesOf(sorted)
	var filled []string

	if candidate.WeekChange == nil {
		if v := weekChange(closes, c.rules.WeekLookback); v != nil {
			candidate.WeekChange = v
			filled = append(filled, "week_change")
		}
	}

	if candidate.VolumeRatio == nil {
		if v := volumeRatio(sorted, c.rules.VolumeWindow); v != nil {
			candidate.VolumeRatio = v
			filled = append(filled, "volume_ratio")
		}
	}

	if candidate.Volatility == nil {
		if v := volatility(closes, c.rules.VolatilityWindow); v != nil {
			candidate.Volatility = v
			filled = append(filled, "volatility")
		}
	}

	if candidate.Deviation == nil {
		sma := formulas.CalculateSMA(closes, c.rules.SMAPeriod)
		if v := formulas.CalculateDeviationRate(closes[len(closes)-1], sma); v != nil {
			candidate.Deviation = v
			filled = append(filled, "deviation")
		}
	}

	if len(filled) > 0 {
		c.log.Debug().
			Str("symbol", candidate.Symbol).
			Strs("filled", filled).
			Msg("Enriched candidate from price history")
	}

	return candidate
}

// weekChange compares the latest close with the close lookback sessions earlier.
func weekChange(closes []float64, lookback int) *float64 {
	if lookback < 1 || len(closes) <= lookback {
		return nil
	}
	return formulas.PercentChange(closes[len(closes)-1-lookback], closes[len(closes)-1])
}

// volumeRatio divides the latest volume by the mean of the preceding window volumes.
func volumeRatio(sorted domain.PriceSeries, window int) *float64 {
	if window < 1 || len(sorted) <= window {
		return nil
	}

	previous := make([]float64, 0, window)
	for _, p := range sorted[len(sorted)-1-window : len(sorted)-1] {
		previous = append(previous, p.Volume)
	}

	avg := formulas.Mean(previous)
	if avg <= 0 {
		return nil
	}
	ratio := sorted[len(sorted)-1].Volume / avg
	return &ratio
}

// volatility annualises the stdev of the last window daily returns, in percent.
func volatility(closes []float64, window int) *float64 {
	if window < 2 || len(closes) <= window {
		return nil
	}
	returns := formulas.CalculateReturns(closes[len(closes)-1-window:])
	v := formulas.AnnualizedVolatility(returns)
	if !formulas.IsFinite(v) {
		return nil
	}
	return &v
}

// prepare cleans the series and logs every repaired close.
func (c *Calculator) prepare(series domain.PriceSeries) domain.PriceSeries {
	cleaned, repairs := Clean(series)
	if dropped := len(series) - len(cleaned); dropped > 0 {
		c.log.Debug().Int("dropped", dropped).Msg("Dropped unusable price points")
	}
	for _, r := range repairs {
		c.log.Warn().
			Time("date", cleaned[r.Index].Date).
			Float64("original", r.Original).
			Float64("replaced", r.Replaced).
			Str("reason", r.Reason).
			Msg("Interpolated abnormal close")
	}
	return cleaned
}

func closesOf(series domain.PriceSeries) []float64 {
	closes := make([]float64, len(series))
	for i, p := range series {
		closes[i] = p.Close
	}
	return closes
}
