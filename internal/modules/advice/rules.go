package advice

import (
	"fmt"
	"math"

	"github.com/aristath/mentor/internal/domain"
)

// Rule names, recorded in FinalVerdict.Applied when a rule changes the verdict.
const (
	RulePanicSellGuard    = "panic_sell_guard"
	RuleDelistedOverride  = "delisted_override"
	RuleSurgeSuppression  = "surge_suppression"
	RuleDangerSuppression = "danger_suppression"
	RuleStatusConsistency = "status_consistency"
	RuleSellTiming        = "sell_timing"
)

// Rule is one guarded override. Apply returns the (possibly) updated verdict and
// whether the rule fired. Rules never mutate their input.
type Rule struct {
	Name  string
	Apply func(v domain.FinalVerdict, ctx Context) (domain.FinalVerdict, bool)
}

// Chain returns the correction rules in the order they run. Later rules see
// earlier rules' output.
func Chain() []Rule {
	return []Rule{
		{RulePanicSellGuard, PanicSellGuard},
		{RuleDelistedOverride, DelistedOverride},
		{RuleSurgeSuppression, SurgeSuppression},
		{RuleDangerSuppression, DangerSuppression},
		{RuleStatusConsistency, StatusConsistency},
		{RuleSellTiming, SellTiming},
	}
}

// PanicSellGuard turns a sell into a hold when the price is already far below
// its moving average, so the generator cannot amplify a panic.
func PanicSellGuard(v domain.FinalVerdict, ctx Context) (domain.FinalVerdict, bool) {
	dev := ctx.Indicators.Deviation
	if v.Action != domain.ActionSell || !usable(dev) || *dev > ctx.Rules.PanicDeviation {
		return v, false
	}

	v.Action = domain.ActionHold
	v.Status = domain.StatusNeutral
	v.ClearSellFields()
	v.WatchCondition = fmt.Sprintf(
		"Price is %.1f%% below its %d-day average and looks oversold. Wait for a technical rebound before selling.",
		math.Abs(*dev), ctx.Indicators.SMAPeriod,
	)
	return v, true
}

// DelistedOverride forces sell/warning for delisted instruments. No later rule
// relaxes a sell, so the override always survives.
func DelistedOverride(v domain.FinalVerdict, ctx Context) (domain.FinalVerdict, bool) {
	if !ctx.Facts.Delisted {
		return v, false
	}
	if v.Action == domain.ActionSell && v.Status == domain.StatusWarning {
		return v, false
	}
	v.Action = domain.ActionSell
	v.Status = domain.StatusWarning
	if v.SellReason == "" {
		v.SellReason = "The listing is being removed."
	}
	return v, true
}

// SurgeSuppression downgrades a buy after a sharp weekly run-up.
func SurgeSuppression(v domain.FinalVerdict, ctx Context) (domain.FinalVerdict, bool) {
	wc := ctx.Facts.WeekChange
	if v.Action != domain.ActionBuy || !usable(wc) || *wc < ctx.Rules.SurgeThreshold {
		return v, false
	}
	v.Action = domain.ActionHold
	return v, true
}

// DangerSuppression downgrades a buy of a loss-making, highly volatile stock.
func DangerSuppression(v domain.FinalVerdict, ctx Context) (domain.FinalVerdict, bool) {
	f := ctx.Facts
	if v.Action != domain.ActionBuy || f.Profitable == nil || *f.Profitable {
		return v, false
	}
	if !usable(f.Volatility) || *f.Volatility <= ctx.Rules.DangerVolatility {
		return v, false
	}
	v.Action = domain.ActionHold
	return v, true
}

// StatusConsistency aligns status with action:
//   - sell always carries warning
//   - a hold whose suggested sell price is within NearTriggerPct of the price is a sell
//   - buy and hold never carry warning; they relax to neutral
func StatusConsistency(v domain.FinalVerdict, ctx Context) (domain.FinalVerdict, bool) {
	before := v.Verdict

	if v.Action == domain.ActionHold && nearTrigger(v.SellPrice, ctx.Facts.CurrentPrice, ctx.Rules.NearTriggerPct) {
		v.Action = domain.ActionSell
	}

	switch v.Action {
	case domain.ActionSell:
		v.Status = domain.StatusWarning
	case domain.ActionBuy, domain.ActionHold:
		if v.Status == domain.StatusWarning {
			v.Status = domain.StatusNeutral
		}
	}

	return v, v.Action != before.Action || v.Status != before.Status
}

func nearTrigger(sellPrice *float64, price, pct float64) bool {
	if !usable(sellPrice) || !(price > 0) {
		return false
	}
	return math.Abs(*sellPrice-price)/price*100 <= pct
}

// SellTiming classifies when a sell should execute. Non-sells get SellTimingNone.
//
// A return beyond the stop-loss or profit-taking threshold sells immediately.
// Otherwise an oversold deviation or RSI waits for a rebound to the moving
// average, and anything else sells immediately. Missing indicators count as
// acceptable, so a sell with neither indicator is immediate.
func SellTiming(v domain.FinalVerdict, ctx Context) (domain.FinalVerdict, bool) {
	if v.Action != domain.ActionSell {
		v.SellTiming = domain.SellTimingNone
		v.ReboundTarget = nil
		return v, false
	}

	v.SellTiming = domain.SellTimingImmediate
	v.ReboundTarget = nil

	if ctx.Facts.Delisted {
		return v, true
	}

	if ret := ctx.Facts.Return(); usable(ret) {
		if *ret <= ctx.Rules.StopLossPct || *ret >= ctx.Rules.ProfitTakingPct {
			return v, true
		}
	}

	dev, rsi := ctx.Indicators.Deviation, ctx.Indicators.RSI
	oversold := (usable(dev) && *dev <= ctx.Rules.OversoldDeviation) ||
		(usable(rsi) && *rsi <= ctx.Rules.OversoldRSI)
	if oversold {
		v.SellTiming = domain.SellTimingAwaitRebound
		if usable(ctx.Indicators.SMA) {
			target := *ctx.Indicators.SMA
			v.ReboundTarget = &target
		}
	}
	return v, true
}
