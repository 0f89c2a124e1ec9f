package collector

import (
	"context"

	"YieldSentinel/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchSeries returns a daily close series per symbol. Symbols that could
	// not be fetched are simply absent from the map; an empty map means the
	// whole batch failed.
	FetchSeries(ctx context.Context, symbols []string, period string) (map[string]*model.PriceSeries, error)
	// FetchYield returns the raw dividend-yield figure for one symbol.
	// ok is false when the data source has no yield for the symbol.
	FetchYield(ctx context.Context, symbol string) (raw float64, ok bool, err error)
	Name() string
}
