package screener

import (
	"context"
	"errors"
	"log"
	"sort"

	"YieldSentinel/internal/collector"
	"YieldSentinel/internal/model"
)

// ErrNoData signals a total batch retrieval failure: the data source returned
// nothing for the whole symbol set.
var ErrNoData = errors.New("no price data for any configured symbol")

// Pipeline screens the configured symbol set for high-yield instruments.
type Pipeline struct {
	Fetcher    collector.Fetcher
	Normalizer Normalizer
	Period     string
}

// NewPipeline creates a screening pipeline over the given fetcher.
func NewPipeline(fetcher collector.Fetcher, normalizer Normalizer, period string) *Pipeline {
	if period == "" {
		period = "1y"
	}
	return &Pipeline{Fetcher: fetcher, Normalizer: normalizer, Period: period}
}

// Screen runs one screening pass: fetch series for all symbols, normalize each
// symbol's yield, keep those at or above threshold, and rank by yield
// descending. A symbol-level problem skips that symbol only; ErrNoData is
// returned when the whole batch came back empty.
func (p *Pipeline) Screen(ctx context.Context, symbols []string, threshold float64) (*model.RunReport, error) {
	seriesBySymbol, err := p.Fetcher.FetchSeries(ctx, symbols, p.Period)
	if err != nil {
		return nil, err
	}
	if len(seriesBySymbol) == 0 {
		return nil, ErrNoData
	}

	report := &model.RunReport{
		Threshold: threshold,
		Scanned:   len(symbols),
	}

	for _, symbol := range symbols {
		outcome := p.screenOne(ctx, symbol, seriesBySymbol[symbol], threshold)
		if outcome.Result != nil {
			report.Results = append(report.Results, *outcome.Result)
		} else {
			report.Skipped = append(report.Skipped, outcome)
		}
	}

	// Stable: equal yields keep configured symbol-list order.
	sort.SliceStable(report.Results, func(i, j int) bool {
		return report.Results[i].Yield > report.Results[j].Yield
	})

	return report, nil
}

func (p *Pipeline) screenOne(ctx context.Context, symbol string, series *model.PriceSeries, threshold float64) model.Outcome {
	if series == nil || len(series.Points) == 0 {
		return model.Outcome{Symbol: symbol, Skip: model.SkipNoData}
	}

	price, ok := series.LatestClose()
	if !ok {
		return model.Outcome{Symbol: symbol, Skip: model.SkipBadPrice}
	}

	raw, hasYield, err := p.Fetcher.FetchYield(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] fetch yield %s: %v, treating as 0", symbol, err)
		raw = 0
	} else if !hasYield {
		raw = 0
	}

	yield := p.Normalizer.Normalize(raw)
	if yield < threshold {
		return model.Outcome{Symbol: symbol, Skip: model.SkipBelowThreshold}
	}

	return model.Outcome{
		Symbol: symbol,
		Result: &model.ScreeningResult{
			Symbol:      symbol,
			DisplayName: series.DisplayName,
			Price:       price,
			Yield:       yield,
			Series:      series,
		},
	}
}
