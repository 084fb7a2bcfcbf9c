package settings

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStyle is returned when a style tag cannot be resolved.
var ErrUnknownStyle = errors.New("unknown investment style")

// HoldingPeriod is the intended holding horizon.
type HoldingPeriod string

const (
	PeriodShort  HoldingPeriod = "short"
	PeriodMedium HoldingPeriod = "medium"
	PeriodLong   HoldingPeriod = "long"
)

// RiskTolerance is the user's appetite for risk.
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// InvestmentStyle selects a weight profile and the style-dependent thresholds.
type InvestmentStyle struct {
	Period HoldingPeriod `json:"period" yaml:"period"`
	Risk   RiskTolerance `json:"risk" yaml:"risk"`
}

// Coarse style tags and the period/risk pair each one stands for.
var coarseStyles = map[string]InvestmentStyle{
	"aggressive":   {Period: PeriodShort, Risk: RiskHigh},
	"momentum":     {Period: PeriodShort, Risk: RiskHigh},
	"balanced":     {Period: PeriodMedium, Risk: RiskMedium},
	"moderate":     {Period: PeriodMedium, Risk: RiskMedium},
	"conservative": {Period: PeriodLong, Risk: RiskLow},
}

// Key returns the normalised style identifier used to look up weight profiles, e.g. "short_high".
func (s InvestmentStyle) Key() string {
	return string(s.Period) + "_" + string(s.Risk)
}

// String implements fmt.Stringer.
func (s InvestmentStyle) String() string {
	return s.Key()
}

// Validate checks that both halves of the style are known.
func (s InvestmentStyle) Validate() error {
	switch s.Period {
	case PeriodShort, PeriodMedium, PeriodLong:
	default:
		return fmt.Errorf("%w: holding period %q", ErrUnknownStyle, s.Period)
	}
	switch s.Risk {
	case RiskLow, RiskMedium, RiskHigh:
	default:
		return fmt.Errorf("%w: risk tolerance %q", ErrUnknownStyle, s.Risk)
	}
	return nil
}

// ResolveStyle maps either keying onto a single InvestmentStyle.
//
// Accepted forms: coarse tags ("aggressive", "balanced", "conservative",
// "momentum", "moderate") and period/risk pairs joined by '_', '-', '/' or a
// space ("short_high", "medium-low", "long/medium").
func ResolveStyle(tag string) (InvestmentStyle, error) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if normalized == "" {
		return InvestmentStyle{}, fmt.Errorf("%w: empty style", ErrUnknownStyle)
	}

	if style, ok := coarseStyles[normalized]; ok {
		return style, nil
	}

	parts := strings.FieldsFunc(normalized, func(r rune) bool {
		return r == '_' || r == '-' || r == '/' || r == ' '
	})
	if len(parts) != 2 {
		return InvestmentStyle{}, fmt.Errorf("%w: %q", ErrUnknownStyle, tag)
	}

	style := InvestmentStyle{Period: HoldingPeriod(parts[0]), Risk: RiskTolerance(parts[1])}
	if err := style.Validate(); err != nil {
		return InvestmentStyle{}, fmt.Errorf("%w (from %q)", err, tag)
	}
	return style, nil
}

// AllStyles returns every period/risk combination in a stable order.
func AllStyles() []InvestmentStyle {
	styles := make([]InvestmentStyle, 0, 9)
	for _, p := range []HoldingPeriod{PeriodShort, PeriodMedium, PeriodLong} {
		for _, r := range []RiskTolerance{RiskLow, RiskMedium, RiskHigh} {
			styles = append(styles, InvestmentStyle{Period: p, Risk: r})
		}
	}
	return styles
}
