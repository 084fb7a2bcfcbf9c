package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/aristath/mentor/internal/domain"
	"github.com/aristath/mentor/internal/modules/settings"
	testingpkg "github.com/aristath/mentor/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	balanced     = settings.InvestmentStyle{Period: settings.PeriodMedium, Risk: settings.RiskMedium}
	conservative = settings.InvestmentStyle{Period: settings.PeriodLong, Risk: settings.RiskLow}
	aggressive   = settings.InvestmentStyle{Period: settings.PeriodShort, Risk: settings.RiskHigh}
)

func newTestScorer() *Scorer {
	return NewScorer(settings.DefaultRules(), zerolog.Nop())
}

// plain returns a profitable candidate with neutral signals that trigger no adjustment.
func plain(id string) domain.Candidate {
	return domain.Candidate{
		ID:          id,
		Symbol:      id,
		Price:       1000,
		WeekChange:  testingpkg.FloatPtr(0),
		VolumeRatio: testingpkg.FloatPtr(1),
		Volatility:  testingpkg.FloatPtr(20),
		MarketCap:   testingpkg.FloatPtr(1e9),
		Deviation:   testingpkg.FloatPtr(0),
		Profitable:  testingpkg.BoolPtr(true),
	}
}

func scoreOne(t *testing.T, c domain.Candidate, style settings.InvestmentStyle) domain.ScoredCandidate {
	t.Helper()
	result, err := newTestScorer().Score([]domain.Candidate{c}, style, nil)
	require.NoError(t, err)
	require.Len(t, result.Ranked, 1)
	return result.Ranked[0]
}

func TestScore_WeightedBase(t *testing.T) {
	a := plain("A")
	a.WeekChange = testingpkg.FloatPtr(10)
	a.VolumeRatio = testingpkg.FloatPtr(2)
	a.Volatility = testingpkg.FloatPtr(20)
	a.MarketCap = testingpkg.FloatPtr(100)

	b := plain("B")
	b.WeekChange = testingpkg.FloatPtr(0)
	b.VolumeRatio = testingpkg.FloatPtr(1)
	b.Volatility = testingpkg.FloatPtr(40)
	b.MarketCap = testingpkg.FloatPtr(50)

	t.Run("balanced rewards volatility", func(t *testing.T) {
		result, err := newTestScorer().Score([]domain.Candidate{b, a}, balanced, nil)
		require.NoError(t, err)
		require.Len(t, result.Ranked, 2)

		assert.Equal(t, "A", result.Ranked[0].Candidate.ID)
		assert.Equal(t, 75.0, result.Ranked[0].Score)
		assert.Equal(t, 25.0, result.Ranked[1].Score)
		assert.Equal(t, 25.0, result.Ranked[1].Breakdown["volatility"])
	})

	t.Run("conservative inverts volatility", func(t *testing.T) {
		result, err := newTestScorer().Score([]domain.Candidate{b, a}, conservative, nil)
		require.NoError(t, err)

		assert.Equal(t, 100.0, result.Ranked[0].Score)
		assert.Equal(t, 35.0, result.Ranked[0].Breakdown["volatility"])
		assert.Equal(t, 0.0, result.Ranked[1].Score)
	})
}

func TestScore_SurgeCeiling(t *testing.T) {
	calm := plain("calm")
	hot := plain("hot")
	hot.WeekChange = testingpkg.FloatPtr(60)
	extreme := plain("extreme")
	extreme.WeekChange = testingpkg.FloatPtr(85)
	atCeiling := plain("edge")
	atCeiling.WeekChange = testingpkg.FloatPtr(50)

	input := []domain.Candidate{calm, hot, extreme, atCeiling}

	ids := func(r *Result) []string {
		out := make([]string, 0, len(r.Ranked))
		for _, sc := range r.Ranked {
			out = append(out, sc.Candidate.ID)
		}
		return out
	}

	result, err := newTestScorer().Score(input, balanced, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"calm", "edge"}, ids(result))
	require.Len(t, result.Excluded, 2)
	assert.Equal(t, "hot", result.Excluded[0].ID)
	assert.Contains(t, result.Excluded[0].Reason, "surge")

	result, err = newTestScorer().Score(input, aggressive, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"calm", "hot", "edge"}, ids(result))
	require.Len(t, result.Excluded, 1)
	assert.Equal(t, "extreme", result.Excluded[0].ID)
}

func TestScore_Adjustments(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *domain.Candidate)
		style    settings.InvestmentStyle
		key      string
		expected float64 // 0 means the key must be absent
	}{
		{"risk penalty conservative", func(c *domain.Candidate) {
			c.Profitable = testingpkg.BoolPtr(false)
			c.Volatility = testingpkg.FloatPtr(60)
		}, conservative, KeyRiskPenalty, -30},
		{"risk penalty balanced", func(c *domain.Candidate) {
			c.Profitable = testingpkg.BoolPtr(false)
			c.Volatility = testingpkg.FloatPtr(60)
		}, balanced, KeyRiskPenalty, -15},
		{"risk penalty absent for aggressive", func(c *domain.Candidate) {
			c.Profitable = testingpkg.BoolPtr(false)
			c.Volatility = testingpkg.FloatPtr(60)
		}, aggressive, KeyRiskPenalty, 0},
		{"risk penalty needs volatility above ceiling", func(c *domain.Candidate) {
			c.Profitable = testingpkg.BoolPtr(false)
			c.Volatility = testingpkg.FloatPtr(50)
		}, conservative, KeyRiskPenalty, 0},
		{"momentum penalty high", func(c *domain.Candidate) {
			c.WeekChange = testingpkg.FloatPtr(35)
		}, balanced, KeyMomentumPenalty, -20},
		{"momentum penalty low", func(c *domain.Candidate) {
			c.WeekChange = testingpkg.FloatPtr(20)
		}, balanced, KeyMomentumPenalty, -10},
		{"momentum penalty skipped for momentum style", func(c *domain.Candidate) {
			c.WeekChange = testingpkg.FloatPtr(35)
		}, aggressive, KeyMomentumPenalty, 0},
		{"decline penalty at threshold", func(c *domain.Candidate) {
			c.WeekChange = testingpkg.FloatPtr(-15)
		}, balanced, KeyDeclinePenalty, -15},
		{"decline penalty within band", func(c *domain.Candidate) {
			c.WeekChange = testingpkg.FloatPtr(-12)
		}, balanced, KeyDeclinePenalty, -5},
		{"decline penalty above band", func(c *domain.Candidate) {
			c.WeekChange = testingpkg.FloatPtr(-11.9)
		}, balanced, KeyDeclinePenalty, 0},
		{"decline threshold follows risk", func(c *domain.Candidate) {
			c.WeekChange = testingpkg.FloatPtr(-10)
		}, conservative, KeyDeclinePenalty, -15},
		{"unknown earnings", func(c *domain.Candidate) {
			c.Profitable = nil
		}, balanced, KeyUnknownEarningsPenalty, -5},
		{"overheated", func(c *domain.Candidate) {
			c.Deviation = testingpkg.FloatPtr(25)
		}, balanced, KeyOverheatedPenalty, -10},
		{"overheated skipped for momentum style", func(c *domain.Candidate) {
			c.Deviation = testingpkg.FloatPtr(30)
		}, aggressive, KeyOverheatedPenalty, 0},
		{"oversold bonus", func(c *domain.Candidate) {
			c.Deviation = testingpkg.FloatPtr(-15)
			c.Volatility = testingpkg.FloatPtr(30)
		}, balanced, KeyOversoldBonus, 10},
		{"oversold needs low volatility", func(c *domain.Candidate) {
			c.Deviation = testingpkg.FloatPtr(-20)
			c.Volatility = testingpkg.FloatPtr(31)
		}, balanced, KeyOversoldBonus, 0},
		{"oversold needs profitability", func(c *domain.Candidate) {
			c.Deviation = testingpkg.FloatPtr(-20)
			c.Profitable = testingpkg.BoolPtr(false)
		}, balanced, KeyOversoldBonus, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := plain("X")
			tt.mutate(&c)

			scored := scoreOne(t, c, tt.style)

			if tt.expected == 0 {
				assert.NotContains(t, scored.Breakdown, tt.key)
				return
			}
			require.Contains(t, scored.Breakdown, tt.key)
			assert.Equal(t, tt.expected, scored.Breakdown[tt.key])
		})
	}
}

func TestScore_SingleCandidateIsNeutral(t *testing.T) {
	scored := scoreOne(t, plain("X"), balanced)

	// One candidate is a degenerate normalisation: every metric maps to 50
	assert.Equal(t, 50.0, scored.Score)
	for _, m := range settings.Metrics {
		assert.Contains(t, scored.Breakdown, string(m))
	}
}

func TestScore_MissingMetricsUseNeutralDefault(t *testing.T) {
	bare := domain.Candidate{ID: "bare", Symbol: "BARE", Price: 100}
	full := plain("full")
	full.MarketCap = testingpkg.FloatPtr(5e9)

	result, err := newTestScorer().Score([]domain.Candidate{full, bare}, balanced, nil)
	require.NoError(t, err)

	var got domain.ScoredCandidate
	for _, sc := range result.Ranked {
		if sc.Candidate.ID == "bare" {
			got = sc
		}
	}
	// 50 across every metric, minus the unknown-earnings penalty
	assert.Equal(t, 45.0, got.Score)
}

func TestScore_SectorTrend(t *testing.T) {
	tech := plain("T")
	tech.Sector = testingpkg.StringPtr("tech")
	orphan := plain("O")

	trends := map[string]float64{"tech": 3.5, domain.UnclassifiedSector: -2, "finance": 9}

	result, err := newTestScorer().Score([]domain.Candidate{tech, orphan}, balanced, trends)
	require.NoError(t, err)

	byID := map[string]domain.ScoredCandidate{}
	for _, sc := range result.Ranked {
		byID[sc.Candidate.ID] = sc
	}
	assert.Equal(t, 3.5, byID["T"].Breakdown[KeySectorTrend])
	assert.Equal(t, -2.0, byID["O"].Breakdown[KeySectorTrend])
	assert.Equal(t, 53.5, byID["T"].Score)

	// Zero and non-finite trends are ignored
	result, err = newTestScorer().Score([]domain.Candidate{tech}, balanced, map[string]float64{"tech": math.NaN()})
	require.NoError(t, err)
	assert.NotContains(t, result.Ranked[0].Breakdown, KeySectorTrend)
}

func TestScore_BreakdownSumsToScore(t *testing.T) {
	candidates := testingpkg.NewCandidateFixtures()
	for _, style := range settings.AllStyles() {
		t.Run(style.Key(), func(t *testing.T) {
			result, err := newTestScorer().Score(candidates, style, map[string]float64{"tech": -4})
			require.NoError(t, err)

			for _, sc := range result.Ranked {
				sum := 0.0
				for _, v := range sc.Breakdown {
					sum += v
				}
				assert.InDelta(t, sum, sc.Score, 0.005, sc.Candidate.Symbol)
				assert.False(t, math.IsNaN(sc.Score) || math.IsInf(sc.Score, 0))
			}

			for i := 1; i < len(result.Ranked); i++ {
				assert.GreaterOrEqual(t, result.Ranked[i-1].Score, result.Ranked[i].Score)
			}
		})
	}
}

func TestScore_StableTies(t *testing.T) {
	input := []domain.Candidate{plain("first"), plain("second"), plain("third")}

	result, err := newTestScorer().Score(input, balanced, nil)
	require.NoError(t, err)

	require.Len(t, result.Ranked, 3)
	assert.Equal(t, "first", result.Ranked[0].Candidate.ID)
	assert.Equal(t, "second", result.Ranked[1].Candidate.ID)
	assert.Equal(t, "third", result.Ranked[2].Candidate.ID)
}

func TestScore_NonFiniteInputStaysFinite(t *testing.T) {
	odd := plain("odd")
	odd.VolumeRatio = testingpkg.FloatPtr(math.NaN())
	odd.MarketCap = testingpkg.FloatPtr(math.Inf(1))

	result, err := newTestScorer().Score([]domain.Candidate{odd, plain("ok")}, balanced, nil)
	require.NoError(t, err)
	for _, sc := range result.Ranked {
		assert.False(t, math.IsNaN(sc.Score) || math.IsInf(sc.Score, 0))
	}
}

func TestScore_DoesNotMutateInput(t *testing.T) {
	candidates := testingpkg.NewCandidateFixtures()
	before := testingpkg.NewCandidateFixtures()

	_, err := newTestScorer().Score(candidates, conservative, nil)
	require.NoError(t, err)
	assert.Equal(t, before, candidates)
}

func TestScore_ConfigurationErrors(t *testing.T) {
	_, err := newTestScorer().Score(nil, balanced, nil)
	assert.True(t, errors.Is(err, settings.ErrNoCandidates))

	_, err = newTestScorer().Score([]domain.Candidate{plain("X")}, settings.InvestmentStyle{Period: "weekly", Risk: "yolo"}, nil)
	assert.True(t, errors.Is(err, settings.ErrUnknownStyle))
}
