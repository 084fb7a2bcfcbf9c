package indicators

import (
	"testing"

	"github.com/aristath/mentor/internal/domain"
	"github.com/aristath/mentor/internal/modules/settings"
	testingpkg "github.com/aristath/mentor/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator() *Calculator {
	return NewCalculator(settings.DefaultRules().Indicators, zerolog.Nop())
}

func TestCompute_FullHistory(t *testing.T) {
	calc := newTestCalculator()
	closes := testingpkg.ZigzagCloses(60, 1000, 2, 15)

	set := calc.Compute(testingpkg.NewSeries(closes))

	require.NotNil(t, set.LatestClose)
	assert.Equal(t, closes[len(closes)-1], *set.LatestClose)
	assert.Equal(t, 60, set.Points)
	assert.Equal(t, 25, set.SMAPeriod)

	require.NotNil(t, set.RSI)
	assert.GreaterOrEqual(t, *set.RSI, 0.0)
	assert.LessOrEqual(t, *set.RSI, 100.0)

	require.NotNil(t, set.MACD)
	assert.Equal(t, set.MACD.Line-set.MACD.Signal, set.MACD.Histogram)

	require.NotNil(t, set.SMA)
	sum := 0.0
	for _, c := range closes[len(closes)-25:] {
		sum += c
	}
	assert.InDelta(t, sum/25, *set.SMA, 1e-9)

	require.NotNil(t, set.Deviation)
	assert.InDelta(t, (*set.LatestClose-*set.SMA)/(*set.SMA)*100, *set.Deviation, 1e-9)
}

func TestCompute_OrderIndependent(t *testing.T) {
	calc := newTestCalculator()
	series := testingpkg.NewSeries(testingpkg.ZigzagCloses(50, 500, -1.5, 8))
	reversed := testingpkg.Reversed(series)

	oldestFirst := calc.Compute(series)
	newestFirst := calc.Compute(reversed)

	assert.Equal(t, oldestFirst, newestFirst)
	// Caller's slice is left in its original order
	assert.True(t, reversed[0].Date.After(reversed[1].Date))
}

func TestCompute_ShortHistoryDegradesToNil(t *testing.T) {
	calc := newTestCalculator()

	tests := []struct {
		name     string
		points   int
		wantRSI  bool
		wantSMA  bool
		wantMACD bool
	}{
		{"single point", 1, false, false, false},
		{"below rsi window", 14, false, false, false},
		{"exactly rsi window", 15, true, false, false},
		{"exactly sma period", 25, true, true, false},
		{"one short of macd", 34, true, true, false},
		{"exactly macd window", 35, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := calc.Compute(testingpkg.NewSeries(testingpkg.ZigzagCloses(tt.points, 100, 0.5, 2)))
			assert.Equal(t, tt.wantRSI, set.RSI != nil, "rsi")
			assert.Equal(t, tt.wantSMA, set.SMA != nil, "sma")
			assert.Equal(t, tt.wantSMA, set.Deviation != nil, "deviation")
			assert.Equal(t, tt.wantMACD, set.MACD != nil, "macd")
			assert.NotNil(t, set.LatestClose)
		})
	}
}

func TestCompute_EmptySeries(t *testing.T) {
	set := newTestCalculator().Compute(nil)

	assert.Nil(t, set.LatestClose)
	assert.Nil(t, set.RSI)
	assert.Nil(t, set.SMA)
	assert.Nil(t, set.MACD)
	assert.Zero(t, set.Points)
}

func TestCompute_ConstantSeries(t *testing.T) {
	set := newTestCalculator().Compute(testingpkg.NewSeries(testingpkg.ConstantCloses(40, 1234)))

	require.NotNil(t, set.SMA)
	assert.Equal(t, 1234.0, *set.SMA)
	require.NotNil(t, set.Deviation)
	assert.Equal(t, 0.0, *set.Deviation)
	require.NotNil(t, set.RSI)
	assert.Equal(t, 100.0, *set.RSI)
}

func TestEnrich_FillsMissingSignals(t *testing.T) {
	calc := newTestCalculator()

	closes := testingpkg.LinearCloses(30, 100, 1) // 100..129
	volumes := make([]float64, 30)
	for i := range volumes {
		volumes[i] = 1000
	}
	volumes[29] = 2500

	original := domain.Candidate{ID: "x", Symbol: "X", Price: 129}
	enriched := calc.Enrich(original, testingpkg.NewSeries(closes, volumes...))

	require.NotNil(t, enriched.WeekChange)
	assert.InDelta(t, (129.0-124.0)/124.0*100, *enriched.WeekChange, 1e-9)

	require.NotNil(t, enriched.VolumeRatio)
	assert.InDelta(t, 2.5, *enriched.VolumeRatio, 1e-9)

	require.NotNil(t, enriched.Volatility)
	assert.Greater(t, *enriched.Volatility, 0.0)

	require.NotNil(t, enriched.Deviation)
	assert.Greater(t, *enriched.Deviation, 0.0, "rising series trades above its average")

	// Input candidate is a value and stays untouched
	assert.Nil(t, original.WeekChange)
}

func TestEnrich_KeepsFeedValues(t *testing.T) {
	calc := newTestCalculator()
	candidate := domain.Candidate{
		Symbol:      "X",
		WeekChange:  testingpkg.FloatPtr(-3),
		VolumeRatio: testingpkg.FloatPtr(0.7),
		Volatility:  testingpkg.FloatPtr(44),
		Deviation:   testingpkg.FloatPtr(1.5),
	}

	enriched := calc.Enrich(candidate, testingpkg.NewSeries(testingpkg.LinearCloses(40, 100, 2)))

	assert.Equal(t, -3.0, *enriched.WeekChange)
	assert.Equal(t, 0.7, *enriched.VolumeRatio)
	assert.Equal(t, 44.0, *enriched.Volatility)
	assert.Equal(t, 1.5, *enriched.Deviation)
}

func TestEnrich_ShortHistory(t *testing.T) {
	calc := newTestCalculator()
	candidate := domain.Candidate{Symbol: "X"}

	enriched := calc.Enrich(candidate, testingpkg.NewSeries(testingpkg.LinearCloses(4, 100, 1)))
	assert.Nil(t, enriched.WeekChange)
	assert.Nil(t, enriched.VolumeRatio)
	assert.Nil(t, enriched.Volatility)
	assert.Nil(t, enriched.Deviation)

	assert.Equal(t, candidate, calc.Enrich(candidate, nil))
}

func TestEnrich_ConstantSeriesHasZeroVolatility(t *testing.T) {
	enriched := newTestCalculator().Enrich(domain.Candidate{}, testingpkg.NewSeries(testingpkg.ConstantCloses(30, 50)))

	require.NotNil(t, enriched.Volatility)
	assert.Equal(t, 0.0, *enriched.Volatility)
	require.NotNil(t, enriched.WeekChange)
	assert.Equal(t, 0.0, *enriched.WeekChange)
}
