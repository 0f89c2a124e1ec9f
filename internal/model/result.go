package model

// SkipReason indicates why a symbol was excluded from a screening run.
type SkipReason string

const (
	SkipNone           SkipReason = ""
	SkipNoData         SkipReason = "NO_DATA"
	SkipBadPrice       SkipReason = "BAD_PRICE"
	SkipBelowThreshold SkipReason = "BELOW_THRESHOLD"
)

// ScreeningResult is one qualifying symbol in a screening run.
type ScreeningResult struct {
	Symbol      string
	DisplayName string
	Price       float64
	Yield       float64 // normalized dividend yield, percent
	Series      *PriceSeries
}

// Outcome records the per-symbol decision: either a result or a skip reason.
type Outcome struct {
	Symbol string
	Result *ScreeningResult
	Skip   SkipReason
}

// RunReport is the output of one screening run. Results are sorted by
// Yield descending; ties keep the configured symbol-list order.
type RunReport struct {
	Threshold float64
	Scanned   int
	Results   []ScreeningResult
	Skipped   []Outcome
}
