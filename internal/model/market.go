package model

import (
	"math"
	"time"
)

// PricePoint is a single (date, closing price) observation.
type PricePoint struct {
	Time  time.Time
	Close float64
}

// PriceSeries holds the daily close history for one symbol, oldest first.
type PriceSeries struct {
	Symbol      string
	DisplayName string
	Points      []PricePoint
	FetchedAt   time.Time
}

// LatestClose returns the most recent closing price. ok is false when the
// series is empty or the last close is not a usable number.
func (s *PriceSeries) LatestClose() (price float64, ok bool) {
	if s == nil || len(s.Points) == 0 {
		return 0, false
	}
	last := s.Points[len(s.Points)-1].Close
	if math.IsNaN(last) || math.IsInf(last, 0) || last <= 0 {
		return 0, false
	}
	return last, true
}

// Closes returns the closing prices in series order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}
