// Package engine wires the indicator, scoring, allocation and correction
// components into request-level operations.
package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/aristath/mentor/internal/domain"
	"github.com/aristath/mentor/internal/modules/advice"
	"github.com/aristath/mentor/internal/modules/allocation"
	"github.com/aristath/mentor/internal/modules/indicators"
	"github.com/aristath/mentor/internal/modules/scoring"
	"github.com/aristath/mentor/internal/modules/settings"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrAnalysisUnavailable is returned when a request could not be completed for
// reasons other than bad input, including recovered panics.
var ErrAnalysisUnavailable = errors.New("analysis unavailable")

// Narrator produces the tentative verdict for an instrument. Its output is
// untrusted and always passes through the corrector.
type Narrator interface {
	Narrate(ctx context.Context, symbol string, readings map[string]float64) (domain.Verdict, error)
}

// Engine runs ranking, planning and analysis requests. It holds only
// immutable configuration and is safe for concurrent use.
type Engine struct {
	rules      settings.Rules
	calculator *indicators.Calculator
	scorer     *scoring.Scorer
	allocator  *allocation.Allocator
	corrector  *advice.Corrector
	narrator   Narrator
	log        zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithNarrator sets the narrative generator used when a request carries no tentative verdict.
func WithNarrator(n Narrator) Option {
	return func(e *Engine) {
		e.narrator = n
	}
}

// New creates a new engine from a validated rule set
func New(rules settings.Rules, log zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		rules:      rules,
		calculator: indicators.NewCalculator(rules.Indicators, log),
		scorer:     scoring.NewScorer(rules, log),
		allocator:  allocation.NewAllocator(rules.Allocation, log),
		corrector:  advice.NewCorrector(rules.Advice, log),
		log:        log.With().Str("component", "engine").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the engine's rule set.
func (e *Engine) Rules() settings.Rules {
	return e.rules
}

// requestID returns id, or a fresh one when empty.
func requestID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// recoverInto converts a panic into ErrAnalysisUnavailable on *err.
func (e *Engine) recoverInto(op, id string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	e.log.Error().
		Str("request_id", id).
		Str("operation", op).
		Interface("panic", r).
		Str("stack", string(debug.Stack())).
		Msg("Recovered from panic")
	*err = fmt.Errorf("%w: %s failed unexpectedly", ErrAnalysisUnavailable, op)
}
