package collector

import (
	"context"
	"time"

	"YieldSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series    map[string]*model.PriceSeries
	Yields    map[string]float64
	YieldErrs map[string]error
	SeriesErr error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, symbols []string, _ string) (map[string]*model.PriceSeries, error) {
	if m.SeriesErr != nil {
		return nil, m.SeriesErr
	}
	out := make(map[string]*model.PriceSeries)
	for _, sym := range symbols {
		if s, ok := m.Series[sym]; ok {
			out[sym] = s
		}
	}
	return out, nil
}

func (m *MockFetcher) FetchYield(_ context.Context, symbol string) (float64, bool, error) {
	if err, ok := m.YieldErrs[symbol]; ok {
		return 0, false, err
	}
	y, ok := m.Yields[symbol]
	return y, ok, nil
}

// GenerateMockSeries builds a synthetic close series around a base price.
func GenerateMockSeries(symbol string, basePrice float64, count int) *model.PriceSeries {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		points[i] = model.PricePoint{
			Time:  time.Now().AddDate(0, 0, -(count - i)),
			Close: p,
		}
	}
	return &model.PriceSeries{
		Symbol:      symbol,
		DisplayName: symbol,
		Points:      points,
		FetchedAt:   time.Now(),
	}
}
