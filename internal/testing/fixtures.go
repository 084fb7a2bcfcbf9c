package testing

import (
	"time"

	"github.com/aristath/mentor/internal/domain"
)

// SeriesStart is the date of the first point of every generated series.
var SeriesStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// NewCandidateFixtures returns a set of candidates with every signal populated
func NewCandidateFixtures() []domain.Candidate {
	return []domain.Candidate{
		{
			ID:          "7203",
			Symbol:      "7203",
			Name:        "Toyota Motor",
			Sector:      StringPtr("autos"),
			Price:       2800,
			WeekChange:  FloatPtr(3.2),
			VolumeRatio: FloatPtr(1.4),
			Volatility:  FloatPtr(22),
			MarketCap:   FloatPtr(45_000_000_000_000),
			Deviation:   FloatPtr(4.1),
			Profitable:  BoolPtr(true),
		},
		{
			ID:          "6758",
			Symbol:      "6758",
			Name:        "Sony Group",
			Sector:      StringPtr("tech"),
			Price:       3100,
			WeekChange:  FloatPtr(6.5),
			VolumeRatio: FloatPtr(2.1),
			Volatility:  FloatPtr(28),
			MarketCap:   FloatPtr(19_000_000_000_000),
			Deviation:   FloatPtr(8.0),
			Profitable:  BoolPtr(true),
		},
		{
			ID:          "9984",
			Symbol:      "9984",
			Name:        "SoftBank Group",
			Sector:      StringPtr("tech"),
			Price:       8900,
			WeekChange:  FloatPtr(12.0),
			VolumeRatio: FloatPtr(3.0),
			Volatility:  FloatPtr(48),
			MarketCap:   FloatPtr(13_000_000_000_000),
			Deviation:   FloatPtr(15.5),
			Profitable:  BoolPtr(true),
		},
		{
			ID:          "8306",
			Symbol:      "8306",
			Name:        "Mitsubishi UFJ Financial",
			Sector:      StringPtr("finance"),
			Price:       1500,
			WeekChange:  FloatPtr(-1.8),
			VolumeRatio: FloatPtr(0.9),
			Volatility:  FloatPtr(18),
			MarketCap:   FloatPtr(18_000_000_000_000),
			Deviation:   FloatPtr(-2.0),
			Profitable:  BoolPtr(true),
		},
		{
			ID:          "4385",
			Symbol:      "4385",
			Name:        "Mercari",
			Sector:      StringPtr("tech"),
			Price:       2200,
			WeekChange:  FloatPtr(-12.5),
			VolumeRatio: FloatPtr(1.1),
			Volatility:  FloatPtr(62),
			MarketCap:   FloatPtr(360_000_000_000),
			Deviation:   FloatPtr(-18.0),
			Profitable:  BoolPtr(false),
		},
	}
}

// NewSeries builds a daily price series from oldest-first closes.
// Volume is constant unless volumes is supplied with one entry per close.
func NewSeries(closes []float64, volumes ...float64) domain.PriceSeries {
	series := make(domain.PriceSeries, len(closes))
	for i, c := range closes {
		volume := 1_000_000.0
		if len(volumes) == len(closes) {
			volume = volumes[i]
		}
		series[i] = domain.PricePoint{
			Date:   SeriesStart.AddDate(0, 0, i),
			Close:  c,
			Volume: volume,
		}
	}
	return series
}

// ConstantCloses returns n identical closes.
func ConstantCloses(n int, price float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return closes
}

// LinearCloses returns n closes starting at start and moving by step each session.
func LinearCloses(n int, start, step float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)*step
	}
	return closes
}

// ZigzagCloses alternates up and down moves around a drifting base.
func ZigzagCloses(n int, start, drift, swing float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		offset := swing
		if i%2 == 1 {
			offset = -swing
		}
		closes[i] = start + float64(i)*drift + offset
	}
	return closes
}

// Reversed returns the series newest-first.
func Reversed(series domain.PriceSeries) domain.PriceSeries {
	out := make(domain.PriceSeries, len(series))
	for i, p := range series {
		out[len(series)-1-i] = p
	}
	return out
}

// FloatPtr returns a pointer to f
func FloatPtr(f float64) *float64 {
	return &f
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
