package testing

import (
	"context"
	"sync"

	"github.com/aristath/mentor/internal/domain"
)

// MockNarrator is a mock narrative generator for testing
type MockNarrator struct {
	mu       sync.RWMutex
	verdicts map[string]domain.Verdict
	fallback domain.Verdict
	err      error
	panicMsg string
	calls    []string
	readings map[string]map[string]float64
}

// NewMockNarrator creates a new mock narrator that answers hold/neutral by default
func NewMockNarrator() *MockNarrator {
	return &MockNarrator{
		verdicts: make(map[string]domain.Verdict),
		fallback: domain.Verdict{Action: domain.ActionHold, Status: domain.StatusNeutral},
		readings: make(map[string]map[string]float64),
	}
}

// SetVerdict sets the verdict returned for a symbol
func (m *MockNarrator) SetVerdict(symbol string, v domain.Verdict) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verdicts[symbol] = v
}

// SetError sets the error to return
func (m *MockNarrator) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetPanic makes Narrate panic with msg
func (m *MockNarrator) SetPanic(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicMsg = msg
}

// Narrate returns the configured verdict for symbol
func (m *MockNarrator) Narrate(ctx context.Context, symbol string, readings map[string]float64) (domain.Verdict, error) {
	m.mu.Lock()
	m.calls = append(m.calls, symbol)
	copied := make(map[string]float64, len(readings))
	for k, v := range readings {
		copied[k] = v
	}
	m.readings[symbol] = copied
	panicMsg, err := m.panicMsg, m.err
	v, ok := m.verdicts[symbol]
	if !ok {
		v = m.fallback
	}
	m.mu.Unlock()

	if panicMsg != "" {
		panic(panicMsg)
	}
	if err != nil {
		return domain.Verdict{}, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.Verdict{}, ctxErr
	}
	return v, nil
}

// Calls returns the symbols Narrate was called with, in call order
func (m *MockNarrator) Calls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Readings returns the indicator readings last passed for symbol
func (m *MockNarrator) Readings(symbol string) map[string]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.readings[symbol]
}
