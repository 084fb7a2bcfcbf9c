package engine

import (
	"context"
	"fmt"

	"github.com/aristath/mentor/internal/domain"
	"github.com/aristath/mentor/internal/modules/scoring"
	"github.com/aristath/mentor/internal/modules/settings"
)

// RankRequest asks for a ranked, sector-capped candidate list.
type RankRequest struct {
	ID           string                        `json:"id,omitempty"`
	Style        string                        `json:"style"`
	Candidates   []domain.Candidate            `json:"candidates"`
	History      map[string]domain.PriceSeries `json:"history,omitempty"` // keyed by candidate ID
	SectorTrends map[string]float64            `json:"sector_trends,omitempty"`
	MaxPerSector int                           `json:"max_per_sector,omitempty"` // 0 uses the rule default
	Limit        int                           `json:"limit,omitempty"`          // 0 returns every survivor
}

// RankResponse is the ranking outcome.
type RankResponse struct {
	RequestID string                     `json:"request_id"`
	Style     settings.InvestmentStyle   `json:"style"`
	Ranked    []domain.ScoredCandidate   `json:"ranked"`
	Excluded  []domain.ExcludedCandidate `json:"excluded,omitempty"`
}

// Rank enriches candidates from their price history, scores them for the
// requested style and applies the sector cap.
func (e *Engine) Rank(ctx context.Context, req RankRequest) (resp *RankResponse, err error) {
	id := requestID(req.ID)
	defer e.recoverInto("rank", id, &err)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	style, err := settings.ResolveStyle(req.Style)
	if err != nil {
		return nil, err
	}

	maxPerSector := req.MaxPerSector
	if maxPerSector == 0 {
		maxPerSector = e.rules.Diversification.MaxPerSector
	}

	enriched := make([]domain.Candidate, len(req.Candidates))
	for i, c := range req.Candidates {
		enriched[i] = c
		if series, ok := req.History[c.ID]; ok {
			enriched[i] = e.calculator.Enrich(c, series)
		}
	}

	result, err := e.scorer.Score(enriched, style, req.SectorTrends)
	if err != nil {
		return nil, fmt.Errorf("failed to score candidates: %w", err)
	}

	diversified, err := scoring.Diversify(result.Ranked, maxPerSector)
	if err != nil {
		return nil, fmt.Errorf("failed to diversify ranking: %w", err)
	}

	excluded := result.Excluded
	if dropped := len(result.Ranked) - len(diversified); dropped > 0 {
		excluded = append(excluded, sectorCapped(result.Ranked, diversified, maxPerSector)...)
	}

	if req.Limit > 0 {
		diversified = scoring.Top(diversified, req.Limit)
	}

	e.log.Info().
		Str("request_id", id).
		Str("style", style.Key()).
		Int("candidates", len(req.Candidates)).
		Int("ranked", len(diversified)).
		Int("excluded", len(excluded)).
		Msg("Ranked candidates")

	return &RankResponse{
		RequestID: id,
		Style:     style,
		Ranked:    diversified,
		Excluded:  excluded,
	}, nil
}

// sectorCapped lists the entries of ranked that the diversifier dropped.
func sectorCapped(ranked, kept []domain.ScoredCandidate, maxPerSector int) []domain.ExcludedCandidate {
	exclusions := scoring.NewExclusionCollector("sector_cap")
	next := 0
	for _, sc := range ranked {
		if next < len(kept) && sameCandidate(kept[next], sc) {
			next++
			continue
		}
		exclusions.Add(sc.Candidate, fmt.Sprintf("sector %q already has %d candidates", sc.Candidate.SectorKey(), maxPerSector))
	}
	return exclusions.Result()
}

func sameCandidate(a, b domain.ScoredCandidate) bool {
	return a.Candidate.ID == b.Candidate.ID && a.Candidate.Symbol == b.Candidate.Symbol && a.Score == b.Score
}
