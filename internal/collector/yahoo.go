package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"YieldSentinel/internal/model"
)

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	Client       *http.Client
	BaseURL      string
	MarketSuffix string // appended to each symbol, e.g. ".SI" for SGX
	MaxWorkers   int
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(marketSuffix string, maxWorkers int, proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if maxWorkers <= 0 {
		maxWorkers = 10
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL:      "https://query1.finance.yahoo.com",
		MarketSuffix: marketSuffix,
		MaxWorkers:   maxWorkers,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	return symbol + f.MarketSuffix
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				ShortName string `json:"shortName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooQuoteSummary is the response structure from Yahoo Finance quoteSummary API.
type yahooQuoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				DividendYield struct {
					Raw *float64 `json:"raw"`
				} `json:"dividendYield"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (f *YahooFetcher) getJSON(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, rng string) (*model.PriceSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), rng)

	var chart yahooChart
	if err := f.getJSON(ctx, u, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data")
	}
	quote := result.Indicators.Quote[0]
	points := make([]model.PricePoint, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		c, ok := quote.Close[i].(float64)
		if !ok {
			continue // null bars (holidays etc.)
		}
		points = append(points, model.PricePoint{
			Time:  time.Unix(ts, 0),
			Close: c,
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	name := result.Meta.ShortName
	if name == "" {
		name = symbol
	}
	return &model.PriceSeries{
		Symbol:      symbol,
		DisplayName: name,
		Points:      points,
		FetchedAt:   time.Now(),
	}, nil
}

// FetchSeries fetches one year (or the requested period) of daily closes for
// every symbol, using a bounded worker pool. Per-symbol failures are logged
// and the symbol is left out of the result map.
func (f *YahooFetcher) FetchSeries(ctx context.Context, symbols []string, period string) (map[string]*model.PriceSeries, error) {
	out := make(map[string]*model.PriceSeries, len(symbols))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, f.MaxWorkers)

	for _, symbol := range symbols {
		wg.Add(1)
		sem <- struct{}{}
		go func(sym string) {
			defer wg.Done()
			defer func() { <-sem }()

			series, err := f.fetchChart(ctx, sym, period)
			if err != nil {
				log.Printf("[WARN] fetch series %s: %v", sym, err)
				return
			}
			mu.Lock()
			out[sym] = series
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()

	return out, nil
}

// FetchYield fetches the raw dividend-yield figure from the quoteSummary API.
// The scale of the returned value is inconsistent at the source: sometimes a
// fraction of price, sometimes an already-scaled percentage.
func (f *YahooFetcher) FetchYield(ctx context.Context, symbol string) (float64, bool, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=summaryDetail",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)))

	var qs yahooQuoteSummary
	if err := f.getJSON(ctx, u, &qs); err != nil {
		return 0, false, err
	}
	if qs.QuoteSummary.Error != nil {
		return 0, false, fmt.Errorf("yahoo api error: %s", qs.QuoteSummary.Error.Description)
	}
	if len(qs.QuoteSummary.Result) == 0 {
		return 0, false, nil
	}
	raw := qs.QuoteSummary.Result[0].SummaryDetail.DividendYield.Raw
	if raw == nil {
		return 0, false, nil
	}
	return *raw, true, nil
}
