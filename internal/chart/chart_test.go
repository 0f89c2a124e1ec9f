package chart

import (
	"bytes"
	"testing"

	"YieldSentinel/internal/collector"
	"YieldSentinel/internal/model"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRender_ProducesPNG(t *testing.T) {
	series := collector.GenerateMockSeries("D05", 30.0, 260)
	img, err := NewRenderer().Render(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Error("expected PNG magic bytes")
	}
}

func TestRender_ShortSeriesStillCharts(t *testing.T) {
	// Fewer points than the MA window: only the close line is drawn.
	series := collector.GenerateMockSeries("D05", 30.0, 10)
	img, err := NewRenderer().Render(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(img) == 0 {
		t.Error("expected non-empty image")
	}
}

func TestRender_EmptySeries(t *testing.T) {
	if _, err := NewRenderer().Render(&model.PriceSeries{Symbol: "D05"}); err == nil {
		t.Error("expected error for empty series")
	}
}
