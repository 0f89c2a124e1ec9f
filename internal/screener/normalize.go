package screener

// Normalizer converts a raw dividend-yield figure into a canonical percentage.
// The data source is inconsistent about scale: the same field is sometimes a
// fraction of price (0.0483) and sometimes an already-scaled percentage (4.83).
type Normalizer interface {
	Normalize(raw float64) float64
}

// scaleThreshold separates fractions from percentages. Legitimate dividend
// yields rarely exceed 30% of price, so anything above 0.3 is taken to be a
// percentage already.
const scaleThreshold = 0.3

// HeuristicNormalizer implements the scale-disambiguation rules.
type HeuristicNormalizer struct{}

func NewHeuristicNormalizer() *HeuristicNormalizer { return &HeuristicNormalizer{} }

// Normalize applies the scale heuristic: values above the threshold are kept
// as percentages, values at or below it are multiplied by 100. A result above
// 100 is treated as a double-scaling error and divided back down. Negative
// raw values are treated as no yield.
func (n *HeuristicNormalizer) Normalize(raw float64) float64 {
	if raw <= 0 {
		return 0
	}
	pct := raw
	if raw <= scaleThreshold {
		pct = raw * 100
	}
	if pct > 100 {
		pct = pct / 100
	}
	return pct
}
