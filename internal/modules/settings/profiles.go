package settings

import (
	"fmt"
	"math"
)

// Metric names a normalised candidate signal that carries a weight.
type Metric string

const (
	MetricMomentum   Metric = "momentum"
	MetricVolume     Metric = "volume"
	MetricVolatility Metric = "volatility"
	MetricMarketCap  Metric = "market_cap"
)

// Metrics lists weighted metrics in breakdown order.
var Metrics = []Metric{MetricMomentum, MetricVolume, MetricVolatility, MetricMarketCap}

// WeightProfile holds everything style-dependent about scoring.
// Weights sum to 100. Momentum styles reward momentum: they skip the momentum
// and overheating penalties and get a higher surge ceiling.
type WeightProfile struct {
	Weights          map[Metric]float64 `yaml:"weights"`
	InvertVolatility bool               `yaml:"invert_volatility"`
	Momentum         bool               `yaml:"momentum"`
	SurgeCeiling     float64            `yaml:"surge_ceiling"`     // week change above this is excluded, percent
	RiskPenalty      float64            `yaml:"risk_penalty"`      // magnitude, applied as a negative
	DeclineThreshold float64            `yaml:"decline_threshold"` // week change at or below this is penalised, percent
}

// TotalWeight returns the sum of all metric weights.
func (p WeightProfile) TotalWeight() float64 {
	total := 0.0
	for _, w := range p.Weights {
		total += w
	}
	return total
}

// Weight returns the weight of a metric, zero when absent.
func (p WeightProfile) Weight(m Metric) float64 {
	return p.Weights[m]
}

// Validate checks weight sum and thresholds.
func (p WeightProfile) Validate() error {
	for m, w := range p.Weights {
		if w < 0 {
			return fmt.Errorf("negative weight %.2f for %s", w, m)
		}
		if !isMetric(m) {
			return fmt.Errorf("unknown metric %q", m)
		}
	}
	if total := p.TotalWeight(); math.Abs(total-100) > 1e-6 {
		return fmt.Errorf("weights must sum to 100, got %.4f", total)
	}
	if p.SurgeCeiling <= 0 {
		return fmt.Errorf("surge ceiling must be positive, got %.2f", p.SurgeCeiling)
	}
	if p.RiskPenalty < 0 {
		return fmt.Errorf("risk penalty is a magnitude, got %.2f", p.RiskPenalty)
	}
	return nil
}

func (p WeightProfile) clone() WeightProfile {
	weights := make(map[Metric]float64, len(p.Weights))
	for m, w := range p.Weights {
		weights[m] = w
	}
	p.Weights = weights
	return p
}

func isMetric(m Metric) bool {
	for _, known := range Metrics {
		if m == known {
			return true
		}
	}
	return false
}

func weights(momentum, volume, volatility, marketCap float64) map[Metric]float64 {
	return map[Metric]float64{
		MetricMomentum:   momentum,
		MetricVolume:     volume,
		MetricVolatility: volatility,
		MetricMarketCap:  marketCap,
	}
}

// DefaultProfiles returns the nine period x risk profiles.
// Short horizons lean on momentum and volume, long horizons on size and stability.
// Volatility is inverted (lower is better) for low risk or long horizons.
func DefaultProfiles() map[string]WeightProfile {
	const (
		surgeDefault  = 50.0
		surgeMomentum = 80.0
	)

	return map[string]WeightProfile{
		"short_low": {
			Weights: weights(25, 20, 25, 30), InvertVolatility: true,
			SurgeCeiling: surgeDefault, RiskPenalty: 30, DeclineThreshold: -10,
		},
		"short_medium": {
			Weights: weights(35, 25, 20, 20),
			SurgeCeiling: surgeDefault, RiskPenalty: 15, DeclineThreshold: -15,
		},
		"short_high": {
			Weights: weights(40, 30, 20, 10), Momentum: true,
			SurgeCeiling: surgeMomentum, RiskPenalty: 0, DeclineThreshold: -20,
		},
		"medium_low": {
			Weights: weights(20, 15, 30, 35), InvertVolatility: true,
			SurgeCeiling: surgeDefault, RiskPenalty: 30, DeclineThreshold: -10,
		},
		"medium_medium": {
			Weights: weights(25, 20, 25, 30),
			SurgeCeiling: surgeDefault, RiskPenalty: 15, DeclineThreshold: -15,
		},
		"medium_high": {
			Weights: weights(30, 25, 20, 25), Momentum: true,
			SurgeCeiling: surgeMomentum, RiskPenalty: 0, DeclineThreshold: -20,
		},
		"long_low": {
			Weights: weights(10, 10, 35, 45), InvertVolatility: true,
			SurgeCeiling: surgeDefault, RiskPenalty: 30, DeclineThreshold: -10,
		},
		"long_medium": {
			Weights: weights(15, 10, 30, 45), InvertVolatility: true,
			SurgeCeiling: surgeDefault, RiskPenalty: 15, DeclineThreshold: -15,
		},
		"long_high": {
			Weights: weights(20, 15, 25, 40), InvertVolatility: true, Momentum: true,
			SurgeCeiling: surgeMomentum, RiskPenalty: 0, DeclineThreshold: -20,
		},
	}
}
