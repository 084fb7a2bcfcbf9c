package domain

import (
	"fmt"
	"strings"
)

// Action is the recommended trade action.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionHold Action = "hold"
	ActionSell Action = "sell"
)

// Status is the qualitative status tag shown next to an action.
type Status string

const (
	StatusPositive Status = "positive"
	StatusNeutral  Status = "neutral"
	StatusWarning  Status = "warning"
)

// SellTiming classifies when a sell should be executed.
type SellTiming string

const (
	SellTimingNone         SellTiming = "none"
	SellTimingImmediate    SellTiming = "immediate"
	SellTimingAwaitRebound SellTiming = "await_rebound"
)

// ParseAction parses an action tag produced by the narrative generator.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return ActionBuy, nil
	case "hold":
		return ActionHold, nil
	case "sell":
		return ActionSell, nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// ParseStatus parses a status tag, accepting the legacy good/negative spellings.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "good":
		return StatusPositive, nil
	case "neutral":
		return StatusNeutral, nil
	case "warning", "negative":
		return StatusWarning, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Verdict is a recommendation as produced by the narrative generator.
// Every field is provisional until the corrector has processed it.
type Verdict struct {
	Action         Action   `json:"action"`
	Status         Status   `json:"status"`
	SellPrice      *float64 `json:"sell_price,omitempty"`
	SellPercentage *float64 `json:"sell_percentage,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	SellReason     string   `json:"sell_reason,omitempty"`
	SellCondition  string   `json:"sell_condition,omitempty"`
	WatchCondition string   `json:"watch_condition,omitempty"`
}

// ClearSellFields drops everything that only makes sense for a sell.
func (v *Verdict) ClearSellFields() {
	v.SellPrice = nil
	v.SellPercentage = nil
	v.SellReason = ""
	v.SellCondition = ""
}

// FinalVerdict is a verdict after correction.
type FinalVerdict struct {
	Verdict
	SellTiming    SellTiming `json:"sell_timing"`
	ReboundTarget *float64   `json:"rebound_target,omitempty"`
	Applied       []string   `json:"applied_rules,omitempty"`
}

// Consistent reports whether the verdict satisfies the action/status invariants.
// Sell must pair with warning and nothing else may; buy+warning is covered by the same check.
func (v FinalVerdict) Consistent() bool {
	return (v.Action == ActionSell) == (v.Status == StatusWarning)
}
