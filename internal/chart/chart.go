package chart

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"YieldSentinel/internal/calculator"
	"YieldSentinel/internal/model"
)

const maPeriod = 50

// Renderer draws a one-year close-price trend chart as a PNG.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a renderer with the default 800x400 canvas.
func NewRenderer() *Renderer {
	return &Renderer{Width: 800, Height: 400}
}

// Render produces PNG bytes for the series: the close line plus a 50-day
// moving-average overlay when there is enough history.
func (r *Renderer) Render(series *model.PriceSeries) ([]byte, error) {
	if series == nil || len(series.Points) < 2 {
		return nil, errors.New("not enough points to chart")
	}

	times := make([]time.Time, len(series.Points))
	closes := make([]float64, len(series.Points))
	for i, p := range series.Points {
		times[i] = p.Time
		closes[i] = p.Close
	}

	lastDay := times[len(times)-1].Format("2006-01-02")
	graphSeries := []chart.Series{
		chart.TimeSeries{
			Name: "Close",
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("00a8ff"),
				StrokeWidth: 1.5,
			},
			XValues: times,
			YValues: closes,
		},
	}

	if ma, err := calculator.RollingSMA(closes, maPeriod); err == nil {
		graphSeries = append(graphSeries, chart.TimeSeries{
			Name: fmt.Sprintf("MA%d", maPeriod),
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("f39c12"),
				StrokeWidth:     1.0,
				StrokeDashArray: []float64{4.0, 4.0},
			},
			XValues: times,
			YValues: ma,
		})
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s - 1 Year Trend (%s)", series.Symbol, lastDay),
		Width:  r.Width,
		Height: r.Height,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Price (SGD)",
		},
		Series: graphSeries,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
