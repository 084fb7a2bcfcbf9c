package scoring

import (
	"github.com/aristath/mentor/internal/domain"
	"github.com/aristath/mentor/internal/modules/settings"
	"github.com/aristath/mentor/pkg/formulas"
)

// Breakdown keys for rule-based adjustments. Base contributions use the metric name.
const (
	KeyRiskPenalty            = "risk_penalty"
	KeyMomentumPenalty        = "momentum_penalty"
	KeyDeclinePenalty         = "decline_penalty"
	KeyUnknownEarningsPenalty = "unknown_earnings_penalty"
	KeyOverheatedPenalty      = "overheated_penalty"
	KeyOversoldBonus          = "oversold_bonus"
	KeySectorTrend            = "sector_trend"
)

// adjustment is one additive rule. It returns the contribution and whether it fired.
type adjustment struct {
	key   string
	apply func(c domain.Candidate, p settings.WeightProfile, r settings.ScoringRules) (float64, bool)
}

// adjustments run in this order; the order only affects breakdown insertion.
var adjustments = []adjustment{
	{KeyRiskPenalty, riskPenalty},
	{KeyMomentumPenalty, momentumPenalty},
	{KeyDeclinePenalty, declinePenalty},
	{KeyUnknownEarningsPenalty, unknownEarningsPenalty},
	{KeyOverheatedPenalty, overheatedPenalty},
	{KeyOversoldBonus, oversoldBonus},
}

// riskPenalty punishes loss-making, highly volatile candidates. Aggressive
// profiles carry a zero penalty and the rule is then not logged.
func riskPenalty(c domain.Candidate, p settings.WeightProfile, r settings.ScoringRules) (float64, bool) {
	if !c.IsUnprofitable() || c.Volatility == nil || *c.Volatility <= r.RiskVolatilityCeiling {
		return 0, false
	}
	if p.RiskPenalty == 0 {
		return 0, false
	}
	return -p.RiskPenalty, true
}

// momentumPenalty discourages chasing recent run-ups. Momentum styles skip it.
func momentumPenalty(c domain.Candidate, p settings.WeightProfile, r settings.ScoringRules) (float64, bool) {
	if p.Momentum || c.WeekChange == nil {
		return 0, false
	}
	switch wc := *c.WeekChange; {
	case wc >= r.MomentumHighThreshold:
		return -r.MomentumHighPenalty, true
	case wc >= r.MomentumLowThreshold:
		return -r.MomentumLowPenalty, true
	}
	return 0, false
}

// declinePenalty is two-tier: the full penalty at or below the style's decline
// threshold, a smaller one within the band just above it.
func declinePenalty(c domain.Candidate, p settings.WeightProfile, r settings.ScoringRules) (float64, bool) {
	if c.WeekChange == nil {
		return 0, false
	}
	wc := *c.WeekChange
	if wc <= p.DeclineThreshold {
		return -r.DeclinePenalty, true
	}
	if wc <= p.DeclineThreshold+r.DeclineNearBand {
		return -r.DeclineNearPenalty, true
	}
	return 0, false
}

func unknownEarningsPenalty(c domain.Candidate, _ settings.WeightProfile, r settings.ScoringRules) (float64, bool) {
	if c.Profitable != nil {
		return 0, false
	}
	return -r.UnknownEarningsPenalty, true
}

func overheatedPenalty(c domain.Candidate, p settings.WeightProfile, r settings.ScoringRules) (float64, bool) {
	if p.Momentum || c.Deviation == nil || *c.Deviation < r.OverheatedDeviation {
		return 0, false
	}
	return -r.OverheatedPenalty, true
}

// oversoldBonus rewards quality below trend: profitable, calm, and well under
// the moving average. Cheapness alone does not qualify.
func oversoldBonus(c domain.Candidate, _ settings.WeightProfile, r settings.ScoringRules) (float64, bool) {
	if c.Deviation == nil || *c.Deviation > r.OversoldDeviation {
		return 0, false
	}
	if !c.IsProfitable() || c.Volatility == nil || *c.Volatility > r.OversoldMaxVolatility {
		return 0, false
	}
	return r.OversoldBonus, true
}

// sectorTrend looks up the externally supplied signed adjustment for the candidate's sector.
func sectorTrend(c domain.Candidate, trends map[string]float64) (float64, bool) {
	if trends == nil {
		return 0, false
	}
	v, ok := trends[c.SectorKey()]
	if !ok || v == 0 || !formulas.IsFinite(v) {
		return 0, false
	}
	return v, true
}
