package scoring

import (
	"fmt"

	"github.com/aristath/mentor/internal/domain"
	"github.com/aristath/mentor/internal/modules/settings"
)

// Diversify keeps at most maxPerSector candidates per sector key in a single
// order-preserving pass. Candidates without a sector share the "unclassified" key.
// The input is expected to be score-ordered; the output is a subsequence of it.
func Diversify(ranked []domain.ScoredCandidate, maxPerSector int) ([]domain.ScoredCandidate, error) {
	if maxPerSector < 1 {
		return nil, fmt.Errorf("%w: got %d", settings.ErrInvalidSectorCap, maxPerSector)
	}

	counts := make(map[string]int)
	kept := make([]domain.ScoredCandidate, 0, len(ranked))
	for _, sc := range ranked {
		sector := sc.Candidate.SectorKey()
		if counts[sector] >= maxPerSector {
			continue
		}
		counts[sector]++
		kept = append(kept, sc)
	}
	return kept, nil
}

// Top returns the first n entries, or all of them when n exceeds the length.
func Top(ranked []domain.ScoredCandidate, n int) []domain.ScoredCandidate {
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
