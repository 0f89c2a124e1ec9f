package calculator

import "errors"

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// RollingSMA computes the moving average at every index with a full window.
// The result has the same length as prices; entries before the first full
// window repeat the first computed value so the chart overlay spans the
// whole series.
func RollingSMA(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(prices) < period {
		return nil, errors.New("not enough data for rolling SMA")
	}
	out := make([]float64, len(prices))
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	first := sum / float64(period)
	for i := 0; i < period; i++ {
		out[i] = first
	}
	for i := period; i < len(prices); i++ {
		sum += prices[i] - prices[i-period]
		out[i] = sum / float64(period)
	}
	return out, nil
}
