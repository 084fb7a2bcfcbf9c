package indicators

import (
	"math"
	"testing"

	testingpkg "github.com/aristath/mentor/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean_DropsUnusableCloses(t *testing.T) {
	series := testingpkg.NewSeries([]float64{100, 0, 101, math.NaN(), -5, 102, math.Inf(1), 103})

	cleaned, repairs := Clean(series)

	assert.Empty(t, repairs)
	assert.Equal(t, []float64{100, 101, 102, 103}, closesOf(cleaned))
	assert.Equal(t, 0.0, series[1].Close, "input is not modified")
}

func TestClean_SortsOldestFirst(t *testing.T) {
	series := testingpkg.Reversed(testingpkg.NewSeries(testingpkg.LinearCloses(5, 10, 1)))

	cleaned, _ := Clean(series)

	assert.Equal(t, []float64{10, 11, 12, 13, 14}, closesOf(cleaned))
	assert.Equal(t, 14.0, series[0].Close, "input order is preserved")
}

func TestClean_InterpolatesBadPrints(t *testing.T) {
	tests := []struct {
		name     string
		closes   []float64
		index    int
		expected float64
		reason   string
	}{
		{"spike", []float64{100, 102, 5000, 104, 105}, 2, 103, "spike_detected"},
		{"crash", []float64{100, 102, 1, 104, 105}, 2, 103, "crash_detected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, repairs := Clean(testingpkg.NewSeries(tt.closes))

			require.Len(t, repairs, 1)
			assert.Equal(t, tt.index, repairs[0].Index)
			assert.Equal(t, tt.closes[tt.index], repairs[0].Original)
			assert.InDelta(t, tt.expected, repairs[0].Replaced, 1e-9)
			assert.Equal(t, tt.reason, repairs[0].Reason)
			assert.InDelta(t, tt.expected, cleaned[tt.index].Close, 1e-9)
		})
	}
}

func TestClean_KeepsSustainedMoves(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
	}{
		{"crash that holds", []float64{100, 100, 5, 5, 6}},
		{"latest session crash", []float64{100, 101, 102, 103, 4}},
		{"latest session spike", []float64{100, 101, 102, 103, 2000}},
		{"ordinary volatility", []float64{100, 150, 80, 120, 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, repairs := Clean(testingpkg.NewSeries(tt.closes))
			assert.Empty(t, repairs)
			assert.Equal(t, tt.closes, closesOf(cleaned))
		})
	}
}

func TestCompute_IgnoresBadPrint(t *testing.T) {
	calc := newTestCalculator()
	closes := testingpkg.ConstantCloses(40, 500)
	closes[30] = 50000

	set := calc.Compute(testingpkg.NewSeries(closes))

	require.NotNil(t, set.SMA)
	assert.Equal(t, 500.0, *set.SMA)
	assert.Equal(t, 40, set.Points)
}
