package formulas

import (
	"github.com/montanaflynn/stats"
)

// NeutralScore is the normalised value used for degenerate input and missing entries.
const NeutralScore = 50.0

// Normalize min-max scales the present values onto [0, 100].
//
// Nil and non-finite values are excluded from both the min/max computation and
// the result. When every present value is equal, each present id maps to
// NeutralScore. When invert is true the result is 100 minus the scaled value,
// for metrics where lower is better.
func Normalize(values map[string]*float64, invert bool) map[string]float64 {
	present := make(map[string]float64, len(values))
	data := make([]float64, 0, len(values))
	for id, v := range values {
		if v == nil || !IsFinite(*v) {
			continue
		}
		present[id] = *v
		data = append(data, *v)
	}

	result := make(map[string]float64, len(present))
	if len(data) == 0 {
		return result
	}

	lo, errMin := stats.Min(data)
	hi, errMax := stats.Max(data)
	if errMin != nil || errMax != nil || hi == lo {
		for id := range present {
			result[id] = NeutralScore
		}
		return result
	}

	span := hi - lo
	for id, v := range present {
		scaled := (v - lo) / span * 100
		if invert {
			scaled = 100 - scaled
		}
		result[id] = clamp(scaled, 0, 100)
	}
	return result
}

// NormalizedOrDefault looks up id, falling back to NeutralScore when absent.
func NormalizedOrDefault(normalized map[string]float64, id string) float64 {
	if v, ok := normalized[id]; ok {
		return v
	}
	return NeutralScore
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
