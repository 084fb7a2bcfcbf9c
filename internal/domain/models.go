// Package domain provides core domain models and types.
package domain

import (
	"strings"
	"time"
)

// UnclassifiedSector is the synthetic sector key used for candidates without a sector.
const UnclassifiedSector = "unclassified"

// Candidate is a single stock as delivered by the market-data feed.
// Every numeric signal is optional; the feed is allowed to leave any of them out.
type Candidate struct {
	ID          string   `json:"id"`
	Symbol      string   `json:"symbol"`
	Name        string   `json:"name"`
	Sector      *string  `json:"sector,omitempty"`
	Price       float64  `json:"price"`
	WeekChange  *float64 `json:"week_change,omitempty"`  // week-over-week change, percent
	VolumeRatio *float64 `json:"volume_ratio,omitempty"` // latest volume / trailing average volume
	Volatility  *float64 `json:"volatility,omitempty"`   // annualised volatility, percent
	MarketCap   *float64 `json:"market_cap,omitempty"`
	Deviation   *float64 `json:"deviation,omitempty"` // distance from moving average, percent
	Profitable  *bool    `json:"profitable,omitempty"`
}

// SectorKey returns the key used for sector caps and sector trends.
func (c Candidate) SectorKey() string {
	if c.Sector == nil {
		return UnclassifiedSector
	}
	key := strings.TrimSpace(*c.Sector)
	if key == "" {
		return UnclassifiedSector
	}
	return key
}

// IsUnprofitable reports whether the candidate is known to be loss-making.
// Unknown profitability is not unprofitable.
func (c Candidate) IsUnprofitable() bool {
	return c.Profitable != nil && !*c.Profitable
}

// IsProfitable reports whether the candidate is known to be profitable.
func (c Candidate) IsProfitable() bool {
	return c.Profitable != nil && *c.Profitable
}

// ScoredCandidate is a candidate annotated by the scorer.
// Breakdown maps rule name to point contribution; its values sum to Score (within rounding).
type ScoredCandidate struct {
	Candidate Candidate          `json:"candidate"`
	Score     float64            `json:"score"`
	Breakdown map[string]float64 `json:"score_breakdown"`
}

// PricePoint is one session of price history.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries is a price history for a single instrument, in any order.
type PriceSeries []PricePoint

// ExcludedCandidate records why a candidate was dropped before ranking.
type ExcludedCandidate struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}
