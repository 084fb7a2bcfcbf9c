package engine

import (
	"context"
	"fmt"

	"github.com/aristath/mentor/internal/modules/allocation"
)

// PlanRequest asks for a budgeted purchase plan over a fresh ranking.
type PlanRequest struct {
	RankRequest
	Budget      float64 `json:"budget"`
	TargetCount int     `json:"target_count,omitempty"` // 0 derives it from budget and holding period
}

// PlanResponse carries the ranking the plan was built from.
type PlanResponse struct {
	RequestID string           `json:"request_id"`
	Ranking   *RankResponse    `json:"ranking"`
	Plan      *allocation.Plan `json:"plan"`
}

// Plan ranks the candidates and allocates the budget across the result.
func (e *Engine) Plan(ctx context.Context, req PlanRequest) (resp *PlanResponse, err error) {
	id := requestID(req.ID)
	req.ID = id
	defer e.recoverInto("plan", id, &err)

	ranking, err := e.Rank(ctx, req.RankRequest)
	if err != nil {
		return nil, err
	}

	target := req.TargetCount
	if target == 0 {
		target = e.allocator.TargetCount(req.Budget, ranking.Style.Period)
	}

	plan, err := e.allocator.Allocate(ranking.Ranked, req.Budget, target)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate budget: %w", err)
	}

	e.log.Info().
		Str("request_id", id).
		Int("positions", len(plan.Positions)).
		Str("spent", plan.TotalSpent.StringFixed(0)).
		Float64("usage", plan.BudgetUsageRate).
		Msg("Built allocation plan")

	return &PlanResponse{
		RequestID: id,
		Ranking:   ranking,
		Plan:      plan,
	}, nil
}
