package screener

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"YieldSentinel/internal/collector"
	"YieldSentinel/internal/model"
)

func seriesOf(symbol string, closes ...float64) *model.PriceSeries {
	points := make([]model.PricePoint, len(closes))
	base := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		points[i] = model.PricePoint{Time: base.AddDate(0, 0, i), Close: c}
	}
	return &model.PriceSeries{Symbol: symbol, DisplayName: symbol + " Ltd", Points: points}
}

func newTestPipeline(fetcher collector.Fetcher) *Pipeline {
	return NewPipeline(fetcher, NewHeuristicNormalizer(), "1y")
}

func TestScreen_FilterAndSort(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string]*model.PriceSeries{
			"AAA": seriesOf("AAA", 1.0, 1.1),
			"BBB": seriesOf("BBB", 2.0, 2.2),
			"CCC": seriesOf("CCC", 3.0, 3.3),
		},
		Yields: map[string]float64{
			"AAA": 0.05, // 5.0%
			"BBB": 0.09, // 9.0%
			"CCC": 7.2,  // 7.2%, already a percentage
		},
	}
	report, err := newTestPipeline(fetcher).Screen(context.Background(), []string{"AAA", "BBB", "CCC"}, 6.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	for _, r := range report.Results {
		if r.Yield < 6.0 {
			t.Errorf("result %s yield %.2f below threshold", r.Symbol, r.Yield)
		}
	}
	for i := 1; i < len(report.Results); i++ {
		if report.Results[i-1].Yield < report.Results[i].Yield {
			t.Errorf("results not sorted descending at index %d", i)
		}
	}
	if report.Results[0].Symbol != "BBB" || report.Results[1].Symbol != "CCC" {
		t.Errorf("expected order BBB, CCC; got %s, %s", report.Results[0].Symbol, report.Results[1].Symbol)
	}
	if report.Scanned != 3 {
		t.Errorf("expected 3 scanned, got %d", report.Scanned)
	}
}

func TestScreen_TieBreakKeepsSymbolOrder(t *testing.T) {
	// D05 as a fraction and O39 as a percentage both normalize to 6.5.
	fetcher := &collector.MockFetcher{
		Series: map[string]*model.PriceSeries{
			"D05": seriesOf("D05", 15.0),
			"O39": seriesOf("O39", 30.0),
		},
		Yields: map[string]float64{
			"D05": 0.065,
			"O39": 6.5,
		},
	}
	report, err := newTestPipeline(fetcher).Screen(context.Background(), []string{"D05", "O39"}, 6.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Results[0].Symbol != "D05" || report.Results[1].Symbol != "O39" {
		t.Errorf("tie should keep configured order D05, O39; got %s, %s",
			report.Results[0].Symbol, report.Results[1].Symbol)
	}
	if !almostEqual(report.Results[0].Yield, 6.5) || !almostEqual(report.Results[1].Yield, 6.5) {
		t.Errorf("both yields should normalize to 6.5, got %.4f and %.4f",
			report.Results[0].Yield, report.Results[1].Yield)
	}
}

func TestScreen_SkipReasons(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string]*model.PriceSeries{
			"EMPTY": {Symbol: "EMPTY", DisplayName: "Empty"},
			"NANPX": seriesOf("NANPX", math.NaN()),
			"GOOD":  seriesOf("GOOD", 10.0),
		},
		Yields: map[string]float64{"GOOD": 0.08},
	}
	report, err := newTestPipeline(fetcher).Screen(context.Background(),
		[]string{"MISSING", "EMPTY", "NANPX", "GOOD"}, 6.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 1 || report.Results[0].Symbol != "GOOD" {
		t.Fatalf("expected only GOOD to qualify, got %+v", report.Results)
	}
	skips := map[string]model.SkipReason{}
	for _, o := range report.Skipped {
		skips[o.Symbol] = o.Skip
	}
	if skips["MISSING"] != model.SkipNoData {
		t.Errorf("MISSING: expected %s, got %s", model.SkipNoData, skips["MISSING"])
	}
	if skips["EMPTY"] != model.SkipNoData {
		t.Errorf("EMPTY: expected %s, got %s", model.SkipNoData, skips["EMPTY"])
	}
	if skips["NANPX"] != model.SkipBadPrice {
		t.Errorf("NANPX: expected %s, got %s", model.SkipBadPrice, skips["NANPX"])
	}
}

func TestScreen_YieldFailureFallsBackToZero(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Series: map[string]*model.PriceSeries{
			"ERR": seriesOf("ERR", 5.0),
			"ABS": seriesOf("ABS", 5.0),
		},
		YieldErrs: map[string]error{"ERR": errors.New("quote summary unavailable")},
	}
	report, err := newTestPipeline(fetcher).Screen(context.Background(), []string{"ERR", "ABS"}, 6.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 0 {
		t.Fatalf("expected no results at threshold 6.0, got %d", len(report.Results))
	}
	for _, o := range report.Skipped {
		if o.Skip != model.SkipBelowThreshold {
			t.Errorf("%s: expected %s, got %s", o.Symbol, model.SkipBelowThreshold, o.Skip)
		}
	}

	// At threshold 0 the zero-yield fallback still qualifies.
	report, err = newTestPipeline(fetcher).Screen(context.Background(), []string{"ERR"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Results) != 1 {
		t.Errorf("expected ERR to qualify at threshold 0, got %d results", len(report.Results))
	}
}

func TestScreen_BatchFailure(t *testing.T) {
	fetcher := &collector.MockFetcher{}
	_, err := newTestPipeline(fetcher).Screen(context.Background(), []string{"AAA", "BBB"}, 6.0)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}
