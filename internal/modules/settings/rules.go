package settings

import (
	"errors"
	"fmt"
)

// Configuration errors shared by every component that consumes Rules.
var (
	ErrNoCandidates       = errors.New("no candidates")
	ErrInvalidBudget      = errors.New("budget must be positive")
	ErrInvalidTargetCount = errors.New("target count must be positive")
	ErrInvalidLotSize     = errors.New("lot size must be positive")
	ErrInvalidSectorCap   = errors.New("max per sector must be at least 1")
)

// ScoringRules holds the style-independent penalty and bonus constants.
type ScoringRules struct {
	RiskVolatilityCeiling  float64 `yaml:"risk_volatility_ceiling"`
	MomentumHighThreshold  float64 `yaml:"momentum_high_threshold"`
	MomentumHighPenalty    float64 `yaml:"momentum_high_penalty"`
	MomentumLowThreshold   float64 `yaml:"momentum_low_threshold"`
	MomentumLowPenalty     float64 `yaml:"momentum_low_penalty"`
	DeclinePenalty         float64 `yaml:"decline_penalty"`
	DeclineNearPenalty     float64 `yaml:"decline_near_penalty"`
	DeclineNearBand        float64 `yaml:"decline_near_band"`
	UnknownEarningsPenalty float64 `yaml:"unknown_earnings_penalty"`
	OverheatedDeviation    float64 `yaml:"overheated_deviation"`
	OverheatedPenalty      float64 `yaml:"overheated_penalty"`
	OversoldDeviation      float64 `yaml:"oversold_deviation"`
	OversoldMaxVolatility  float64 `yaml:"oversold_max_volatility"`
	OversoldBonus          float64 `yaml:"oversold_bonus"`
}

// DiversificationRules caps sector concentration.
type DiversificationRules struct {
	MaxPerSector int `yaml:"max_per_sector"`
}

// TargetTier maps budgets below Below onto a position count.
type TargetTier struct {
	Below float64 `yaml:"below"`
	Count int     `yaml:"count"`
}

// AllocationRules drives the lot-constrained allocator.
type AllocationRules struct {
	LotSize            int64        `yaml:"lot_size"`
	RemainderThreshold float64      `yaml:"remainder_threshold"` // fraction of budget
	FallbackSplit      []float64    `yaml:"fallback_split"`
	TargetTiers        []TargetTier `yaml:"target_tiers"` // ascending by Below
	TargetMax          int          `yaml:"target_max"`   // count when budget exceeds every tier
	MaxPositions       int          `yaml:"max_positions"`
}

// IndicatorRules configures indicator windows.
type IndicatorRules struct {
	RSIPeriod        int `yaml:"rsi_period"`
	SMAPeriod        int `yaml:"sma_period"`
	MACDFast         int `yaml:"macd_fast"`
	MACDSlow         int `yaml:"macd_slow"`
	MACDSignal       int `yaml:"macd_signal"`
	VolatilityWindow int `yaml:"volatility_window"`
	VolumeWindow     int `yaml:"volume_window"`
	WeekLookback     int `yaml:"week_lookback"`
}

// AdviceRules holds the thresholds of the decision corrector.
type AdviceRules struct {
	PanicDeviation    float64 `yaml:"panic_deviation"`
	SurgeThreshold    float64 `yaml:"surge_threshold"`
	DangerVolatility  float64 `yaml:"danger_volatility"`
	NearTriggerPct    float64 `yaml:"near_trigger_pct"`
	StopLossPct       float64 `yaml:"stop_loss_pct"`
	ProfitTakingPct   float64 `yaml:"profit_taking_pct"`
	OversoldDeviation float64 `yaml:"oversold_deviation"`
	OversoldRSI       float64 `yaml:"oversold_rsi"`
}

// Rules is the single configuration value passed to every component.
// Treat it as immutable; use Clone before modifying a copy.
type Rules struct {
	Scoring         ScoringRules             `yaml:"scoring"`
	Profiles        map[string]WeightProfile `yaml:"profiles"`
	Diversification DiversificationRules     `yaml:"diversification"`
	Allocation      AllocationRules          `yaml:"allocation"`
	Indicators      IndicatorRules           `yaml:"indicators"`
	Advice          AdviceRules              `yaml:"advice"`
}

// DefaultRules returns the built-in rule set.
func DefaultRules() Rules {
	return Rules{
		Scoring: ScoringRules{
			RiskVolatilityCeiling:  50,
			MomentumHighThreshold:  30,
			MomentumHighPenalty:    20,
			MomentumLowThreshold:   20,
			MomentumLowPenalty:     10,
			DeclinePenalty:         15,
			DeclineNearPenalty:     5,
			DeclineNearBand:        3,
			UnknownEarningsPenalty: 5,
			OverheatedDeviation:    25,
			OverheatedPenalty:      10,
			OversoldDeviation:      -15,
			OversoldMaxVolatility:  30,
			OversoldBonus:          10,
		},
		Profiles: DefaultProfiles(),
		Diversification: DiversificationRules{
			MaxPerSector: 2,
		},
		Allocation: AllocationRules{
			LotSize:            100,
			RemainderThreshold: 0.05,
			FallbackSplit:      []float64{0.6, 0.4},
			TargetTiers: []TargetTier{
				{Below: 300_000, Count: 2},
				{Below: 1_000_000, Count: 3},
				{Below: 3_000_000, Count: 4},
			},
			TargetMax:    5,
			MaxPositions: 6,
		},
		Indicators: IndicatorRules{
			RSIPeriod:        14,
			SMAPeriod:        25,
			MACDFast:         12,
			MACDSlow:         26,
			MACDSignal:       9,
			VolatilityWindow: 20,
			VolumeWindow:     20,
			WeekLookback:     5,
		},
		Advice: AdviceRules{
			PanicDeviation:    -20,
			SurgeThreshold:    30,
			DangerVolatility:  50,
			NearTriggerPct:    2,
			StopLossPct:       -10,
			ProfitTakingPct:   20,
			OversoldDeviation: -10,
			OversoldRSI:       30,
		},
	}
}

// Profile returns the weight profile for a style.
func (r Rules) Profile(style InvestmentStyle) (WeightProfile, error) {
	profile, ok := r.Profiles[style.Key()]
	if !ok {
		return WeightProfile{}, fmt.Errorf("%w: no weight profile for %s", ErrUnknownStyle, style.Key())
	}
	return profile, nil
}

// Clone returns a deep copy.
func (r Rules) Clone() Rules {
	out := r
	out.Profiles = make(map[string]WeightProfile, len(r.Profiles))
	for k, p := range r.Profiles {
		out.Profiles[k] = p.clone()
	}
	out.Allocation.FallbackSplit = append([]float64(nil), r.Allocation.FallbackSplit...)
	out.Allocation.TargetTiers = append([]TargetTier(nil), r.Allocation.TargetTiers...)
	return out
}

// Validate checks the rule set for values no component can work with.
func (r Rules) Validate() error {
	for _, style := range AllStyles() {
		profile, err := r.Profile(style)
		if err != nil {
			return err
		}
		if err := profile.Validate(); err != nil {
			return fmt.Errorf("profile %s: %w", style.Key(), err)
		}
	}

	if r.Diversification.MaxPerSector < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSectorCap, r.Diversification.MaxPerSector)
	}

	a := r.Allocation
	if a.LotSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLotSize, a.LotSize)
	}
	if a.RemainderThreshold < 0 || a.RemainderThreshold >= 1 {
		return fmt.Errorf("remainder threshold must be in [0, 1), got %.4f", a.RemainderThreshold)
	}
	if len(a.FallbackSplit) != 2 {
		return fmt.Errorf("fallback split needs exactly 2 shares, got %d", len(a.FallbackSplit))
	}
	if sum := a.FallbackSplit[0] + a.FallbackSplit[1]; sum <= 0 || sum > 1+1e-9 {
		return fmt.Errorf("fallback split must sum to (0, 1], got %.4f", sum)
	}
	prev := 0.0
	for _, tier := range a.TargetTiers {
		if tier.Below <= prev {
			return fmt.Errorf("target tiers must be ascending, got %.0f after %.0f", tier.Below, prev)
		}
		if tier.Count < 1 {
			return fmt.Errorf("%w: tier below %.0f has count %d", ErrInvalidTargetCount, tier.Below, tier.Count)
		}
		prev = tier.Below
	}
	if a.TargetMax < 1 || a.MaxPositions < a.TargetMax {
		return fmt.Errorf("%w: target max %d, max positions %d", ErrInvalidTargetCount, a.TargetMax, a.MaxPositions)
	}

	ind := r.Indicators
	for name, v := range map[string]int{
		"rsi_period":        ind.RSIPeriod,
		"sma_period":        ind.SMAPeriod,
		"macd_fast":         ind.MACDFast,
		"macd_signal":       ind.MACDSignal,
		"volatility_window": ind.VolatilityWindow,
		"volume_window":     ind.VolumeWindow,
		"week_lookback":     ind.WeekLookback,
	} {
		if v < 1 {
			return fmt.Errorf("indicator %s must be positive, got %d", name, v)
		}
	}
	if ind.MACDSlow <= ind.MACDFast {
		return fmt.Errorf("macd slow period (%d) must exceed fast period (%d)", ind.MACDSlow, ind.MACDFast)
	}

	if r.Advice.StopLossPct >= 0 || r.Advice.ProfitTakingPct <= 0 {
		return fmt.Errorf("stop loss must be negative and profit taking positive, got %.2f / %.2f",
			r.Advice.StopLossPct, r.Advice.ProfitTakingPct)
	}
	return nil
}
