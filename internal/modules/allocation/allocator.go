// Package allocation splits a budget across ranked candidates in whole lots.
package allocation

import (
	"fmt"

	"github.com/aristath/mentor/internal/domain"
	"github.com/aristath/mentor/internal/modules/settings"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Position is one line of an allocation plan.
type Position struct {
	Candidate domain.Candidate `json:"candidate"`
	Score     float64          `json:"score"`
	Quantity  int64            `json:"quantity"` // shares, always a lot-size multiple
	Cost      decimal.Decimal  `json:"cost"`
}

// Plan is the budgeted purchase plan.
type Plan struct {
	Positions       []Position      `json:"positions"`
	TargetCount     int             `json:"target_count"`
	AffordableCount int             `json:"affordable_count"`
	LotSize         int64           `json:"lot_size"`
	Budget          decimal.Decimal `json:"budget"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	Leftover        decimal.Decimal `json:"leftover"`
	BudgetUsageRate float64         `json:"budget_usage_rate"`
	Fallback        bool            `json:"fallback"`
}

// Allocator computes lot-constrained plans. It holds no mutable state.
type Allocator struct {
	rules settings.AllocationRules
	log   zerolog.Logger
}

// NewAllocator creates a new allocator
func NewAllocator(rules settings.AllocationRules, log zerolog.Logger) *Allocator {
	return &Allocator{
		rules: rules,
		log:   log.With().Str("component", "allocator").Logger(),
	}
}

// Allocate spreads budget over score-ordered candidates.
//
// The budget is split evenly over targetCount; every candidate that can buy at
// least one lot at that split is affordable and the best targetCount of them are
// filled. Leftover budget is then handed out one lot at a time, in score order,
// until it drops below the remainder threshold or no position can take another
// lot. When fewer than two positions result and at least two candidates exist,
// a fixed split across the top two candidates is tried and replaces the primary
// plan only if it fills both.
//
// A budget too small for a single lot yields an empty plan, not an error.
func (a *Allocator) Allocate(candidates []domain.ScoredCandidate, budget float64, targetCount int) (*Plan, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: nothing to allocate", settings.ErrNoCandidates)
	}
	if !(budget > 0) {
		return nil, fmt.Errorf("%w: got %.2f", settings.ErrInvalidBudget, budget)
	}
	if targetCount <= 0 {
		return nil, fmt.Errorf("%w: got %d", settings.ErrInvalidTargetCount, targetCount)
	}
	if a.rules.LotSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", settings.ErrInvalidLotSize, a.rules.LotSize)
	}

	total := decimal.NewFromFloat(budget)
	plan := a.primary(candidates, total, targetCount)

	if len(plan.Positions) < 2 && len(candidates) >= 2 {
		if fallback, ok := a.fallback(candidates, total); ok {
			fallback.TargetCount = plan.TargetCount
			fallback.AffordableCount = plan.AffordableCount
			plan = fallback
		}
	}

	a.finish(plan)

	a.log.Debug().
		Int("target", plan.TargetCount).
		Int("affordable", plan.AffordableCount).
		Int("positions", len(plan.Positions)).
		Bool("fallback", plan.Fallback).
		Str("spent", plan.TotalSpent.StringFixed(0)).
		Float64("usage", plan.BudgetUsageRate).
		Msg("Allocated budget")

	return plan, nil
}

func (a *Allocator) primary(candidates []domain.ScoredCandidate, budget decimal.Decimal, targetCount int) *Plan {
	perCandidate := budget.Div(decimal.NewFromInt(int64(targetCount)))

	plan := &Plan{
		Positions:   make([]Position, 0, targetCount),
		TargetCount: targetCount,
		LotSize:     a.rules.LotSize,
		Budget:      budget,
	}

	for _, sc := range candidates {
		lots := a.lotsFor(perCandidate, sc.Candidate.Price)
		if lots < 1 {
			continue
		}
		plan.AffordableCount++
		if len(plan.Positions) < targetCount {
			plan.Positions = append(plan.Positions, a.position(sc, lots))
		}
	}

	a.redistribute(plan)
	return plan
}

// redistribute adds whole lots to existing positions, in order, while leftover
// stays above the remainder threshold.
func (a *Allocator) redistribute(plan *Plan) {
	threshold := plan.Budget.Mul(decimal.NewFromFloat(a.rules.RemainderThreshold))
	leftover := plan.Budget.Sub(spent(plan.Positions))

	for leftover.GreaterThan(threshold) {
		added := false
		for i := range plan.Positions {
			lotCost := a.lotCost(plan.Positions[i].Candidate.Price)
			if lotCost.GreaterThan(leftover) {
				continue
			}
			plan.Positions[i].Quantity += a.rules.LotSize
			plan.Positions[i].Cost = plan.Positions[i].Cost.Add(lotCost)
			leftover = leftover.Sub(lotCost)
			added = true
			if !leftover.GreaterThan(threshold) {
				break
			}
		}
		if !added {
			break
		}
	}
}

// fallback splits the budget across the two best candidates by the configured shares.
func (a *Allocator) fallback(candidates []domain.ScoredCandidate, budget decimal.Decimal) (*Plan, bool) {
	split := a.rules.FallbackSplit
	if len(split) < 2 {
		return nil, false
	}

	plan := &Plan{
		Positions: make([]Position, 0, 2),
		LotSize:   a.rules.LotSize,
		Budget:    budget,
		Fallback:  true,
	}
	for i, sc := range candidates[:2] {
		share := budget.Mul(decimal.NewFromFloat(split[i]))
		lots := a.lotsFor(share, sc.Candidate.Price)
		if lots < 1 {
			return nil, false
		}
		plan.Positions = append(plan.Positions, a.position(sc, lots))
	}
	return plan, true
}

func (a *Allocator) finish(plan *Plan) {
	plan.TotalSpent = spent(plan.Positions)
	plan.Leftover = plan.Budget.Sub(plan.TotalSpent)
	if plan.Budget.IsPositive() {
		plan.BudgetUsageRate = plan.TotalSpent.Div(plan.Budget).InexactFloat64()
	}
}

func (a *Allocator) position(sc domain.ScoredCandidate, lots int64) Position {
	return Position{
		Candidate: sc.Candidate,
		Score:     sc.Score,
		Quantity:  lots * a.rules.LotSize,
		Cost:      a.lotCost(sc.Candidate.Price).Mul(decimal.NewFromInt(lots)),
	}
}

// lotsFor returns how many whole lots amount buys at price. Non-positive prices buy nothing.
func (a *Allocator) lotsFor(amount decimal.Decimal, price float64) int64 {
	if !(price > 0) {
		return 0
	}
	return amount.Div(a.lotCost(price)).Floor().IntPart()
}

func (a *Allocator) lotCost(price float64) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(a.rules.LotSize))
}

func spent(positions []Position) decimal.Decimal {
	total := decimal.Zero
	for _, p := range positions {
		total = total.Add(p.Cost)
	}
	return total
}
