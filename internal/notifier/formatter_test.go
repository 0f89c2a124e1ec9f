package notifier

import (
	"strings"
	"testing"
	"time"

	"YieldSentinel/internal/model"
)

func sampleReport() *model.RunReport {
	return &model.RunReport{
		Threshold: 6.0,
		Scanned:   87,
		Results: []model.ScreeningResult{
			{Symbol: "BBB", DisplayName: "Beta Holdings International", Price: 2.2, Yield: 9.0},
			{Symbol: "D05", DisplayName: "DBS Group", Price: 15.0, Yield: 6.5},
		},
	}
}

func TestFormatSummary_Deterministic(t *testing.T) {
	asOf := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)
	a := FormatSummary(sampleReport(), asOf)
	b := FormatSummary(sampleReport(), asOf)
	if a != b {
		t.Fatal("same report must format to the same text")
	}
}

func TestFormatSummary_TableLayout(t *testing.T) {
	asOf := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)
	msg := FormatSummary(sampleReport(), asOf)

	if !strings.Contains(msg, "2026-08-29") {
		t.Error("header should carry the run date")
	}
	if !strings.Contains(msg, "> **6.0%** (2 matched)") {
		t.Errorf("header should carry threshold and hit count, got:\n%s", msg)
	}

	// Row order follows ranking, not symbol order.
	bbbIdx := strings.Index(msg, "BBB")
	d05Idx := strings.Index(msg, "D05")
	if bbbIdx < 0 || d05Idx < 0 || bbbIdx > d05Idx {
		t.Errorf("expected BBB row before D05 row:\n%s", msg)
	}

	if !strings.Contains(msg, "BBB     9.0%   $2.20    Beta Holdings I") {
		t.Errorf("unexpected BBB row formatting:\n%s", msg)
	}
	if !strings.Contains(msg, "D05     6.5%   $15.00   DBS Group") {
		t.Errorf("unexpected D05 row formatting:\n%s", msg)
	}
}
