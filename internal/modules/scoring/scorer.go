// Package scoring ranks candidates with style-dependent weights and rule-based
// adjustments, and caps sector concentration in the ranked list.
package scoring

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/aristath/mentor/internal/domain"
	"github.com/aristath/mentor/internal/modules/settings"
	"github.com/aristath/mentor/pkg/formulas"
	"github.com/rs/zerolog"
)

// Result is the outcome of a ranking run.
type Result struct {
	Style    settings.InvestmentStyle   `json:"style"`
	Ranked   []domain.ScoredCandidate   `json:"ranked"`
	Excluded []domain.ExcludedCandidate `json:"excluded,omitempty"`
}

// Scorer combines normalised metrics with a weight profile and applies
// penalty and bonus rules. It holds no mutable state.
type Scorer struct {
	rules settings.Rules
	log   zerolog.Logger
}

// NewScorer creates a new scorer
func NewScorer(rules settings.Rules, log zerolog.Logger) *Scorer {
	return &Scorer{
		rules: rules,
		log:   log.With().Str("component", "scorer").Logger(),
	}
}

// Score ranks candidates for a style.
//
// Steps:
//  1. Resolve the weight profile for the style
//  2. Exclude candidates whose week change exceeds the style's surge ceiling
//  3. Normalise every weighted metric across the survivors
//  4. Sum (normalised value or 50) x weight / 100 per metric
//  5. Add rule-based adjustments and the sector trend
//  6. Round to 2 decimals and stable-sort descending
//
// Candidates are never mutated. sectorTrends may be nil.
func (s *Scorer) Score(
	candidates []domain.Candidate,
	style settings.InvestmentStyle,
	sectorTrends map[string]float64,
) (*Result, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: nothing to score", settings.ErrNoCandidates)
	}

	profile, err := s.rules.Profile(style)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve weight profile: %w", err)
	}

	exclusions := NewExclusionCollector("surge_filter")
	survivors := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.WeekChange != nil && *c.WeekChange > profile.SurgeCeiling {
			exclusions.Add(c, fmt.Sprintf("week change %.2f%% exceeds surge ceiling %.0f%%", *c.WeekChange, profile.SurgeCeiling))
			continue
		}
		survivors = append(survivors, c)
	}

	normalized := normalizeMetrics(survivors, profile)

	ranked := make([]domain.ScoredCandidate, 0, len(survivors))
	for i, c := range survivors {
		breakdown := make(map[string]float64, len(settings.Metrics)+len(adjustments)+1)
		key := strconv.Itoa(i)

		for _, m := range settings.Metrics {
			breakdown[string(m)] = formulas.NormalizedOrDefault(normalized[m], key) * profile.Weight(m) / 100
		}

		for _, adj := range adjustments {
			if v, fired := adj.apply(c, profile, s.rules.Scoring); fired {
				breakdown[adj.key] = v
			}
		}
		if v, fired := sectorTrend(c, sectorTrends); fired {
			breakdown[KeySectorTrend] = v
		}

		total := 0.0
		for _, v := range breakdown {
			total += v
		}

		ranked = append(ranked, domain.ScoredCandidate{
			Candidate: c,
			Score:     formulas.Round(total, 2),
			Breakdown: breakdown,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	s.log.Debug().
		Str("style", style.Key()).
		Int("candidates", len(candidates)).
		Int("ranked", len(ranked)).
		Int("excluded", exclusions.Len()).
		Msg("Scored candidates")

	return &Result{
		Style:    style,
		Ranked:   ranked,
		Excluded: exclusions.Result(),
	}, nil
}

// normalizeMetrics returns, per weighted metric, the normalised value keyed by survivor index.
// Indexes rather than ids keep duplicate or empty ids from colliding.
func normalizeMetrics(candidates []domain.Candidate, profile settings.WeightProfile) map[settings.Metric]map[string]float64 {
	raw := make(map[settings.Metric]map[string]*float64, len(settings.Metrics))
	for _, m := range settings.Metrics {
		raw[m] = make(map[string]*float64, len(candidates))
	}

	for i, c := range candidates {
		key := strconv.Itoa(i)
		raw[settings.MetricMomentum][key] = c.WeekChange
		raw[settings.MetricVolume][key] = c.VolumeRatio
		raw[settings.MetricVolatility][key] = c.Volatility
		raw[settings.MetricMarketCap][key] = c.MarketCap
	}

	normalized := make(map[settings.Metric]map[string]float64, len(raw))
	for m, values := range raw {
		invert := m == settings.MetricVolatility && profile.InvertVolatility
		normalized[m] = formulas.Normalize(values, invert)
	}
	return normalized
}
