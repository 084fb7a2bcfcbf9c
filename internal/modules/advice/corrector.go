// Package advice corrects an untrusted recommendation against market facts and
// indicator readings so the final verdict is safe and internally consistent.
package advice

import (
	"github.com/aristath/mentor/internal/domain"
	"github.com/aristath/mentor/internal/modules/indicators"
	"github.com/aristath/mentor/internal/modules/settings"
	"github.com/rs/zerolog"
)

// Corrector applies the rule chain to tentative verdicts. It is a pure
// function of its inputs and safe for concurrent use.
type Corrector struct {
	rules settings.AdviceRules
	chain []Rule
	log   zerolog.Logger
}

// NewCorrector creates a new corrector
func NewCorrector(rules settings.AdviceRules, log zerolog.Logger) *Corrector {
	return &Corrector{
		rules: rules,
		chain: Chain(),
		log:   log.With().Str("component", "corrector").Logger(),
	}
}

// Correct runs every rule in order and returns the final verdict.
// Unknown actions are treated as hold and unknown statuses as neutral before
// the chain runs, so the result always satisfies the action/status invariants.
func (c *Corrector) Correct(tentative domain.Verdict, facts Facts, set indicators.IndicatorSet) domain.FinalVerdict {
	ctx := Context{Facts: facts, Indicators: set, Rules: c.rules}

	v := domain.FinalVerdict{
		Verdict:    tentative,
		SellTiming: domain.SellTimingNone,
		Applied:    []string{},
	}
	if action, err := domain.ParseAction(string(v.Action)); err != nil {
		v.Action = domain.ActionHold
	} else {
		v.Action = action
	}
	if status, err := domain.ParseStatus(string(v.Status)); err != nil {
		v.Status = domain.StatusNeutral
	} else {
		v.Status = status
	}

	for _, rule := range c.chain {
		next, fired := rule.Apply(v, ctx)
		v = next
		if fired {
			v.Applied = append(v.Applied, rule.Name)
		}
	}

	c.log.Debug().
		Str("tentative_action", string(tentative.Action)).
		Str("action", string(v.Action)).
		Str("status", string(v.Status)).
		Str("sell_timing", string(v.SellTiming)).
		Strs("applied", v.Applied).
		Msg("Corrected verdict")

	return v
}
