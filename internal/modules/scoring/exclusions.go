package scoring

import (
	"github.com/aristath/mentor/internal/domain"
)

// ExclusionCollector tracks candidates dropped before ranking, with reasons.
// Results come back in the order candidates were first excluded.
type ExclusionCollector struct {
	stage      string
	exclusions []domain.ExcludedCandidate
	seen       map[string]bool
}

// NewExclusionCollector creates a new exclusion collector for a pipeline stage.
func NewExclusionCollector(stage string) *ExclusionCollector {
	return &ExclusionCollector{
		stage: stage,
		seen:  make(map[string]bool),
	}
}

// Add records an exclusion. A candidate excluded twice for the same reason is recorded once.
func (c *ExclusionCollector) Add(candidate domain.Candidate, reason string) {
	key := candidate.ID + "|" + candidate.Symbol + "|" + reason
	if c.seen[key] {
		return
	}
	c.seen[key] = true

	c.exclusions = append(c.exclusions, domain.ExcludedCandidate{
		ID:     candidate.ID,
		Symbol: candidate.Symbol,
		Reason: c.stage + ": " + reason,
	})
}

// Len returns the number of recorded exclusions.
func (c *ExclusionCollector) Len() int {
	return len(c.exclusions)
}

// Result returns the recorded exclusions.
func (c *ExclusionCollector) Result() []domain.ExcludedCandidate {
	result := make([]domain.ExcludedCandidate, len(c.exclusions))
	copy(result, c.exclusions)
	return result
}
