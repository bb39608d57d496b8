package calculator

import "github.com/guregu/null/v6"

// StochasticResult holds %K and %D.
type StochasticResult struct {
	K []null.Float
	D []null.Float
}

// CalculateStochastic computes %K over kWindow bars and %D as the dWindow SMA of %K.
// %K is missing while the window fills and wherever the highest high equals the lowest low.
func CalculateStochastic(highs, lows, closes []float64, kWindow, dWindow int) StochasticResult {
	n := len(closes)
	res := StochasticResult{K: make([]null.Float, n)}
	if kWindow <= 0 {
		res.D = make([]null.Float, n)
		return res
	}

	hh, ll := newMaxDeque(), newMinDeque()
	for i := 0; i < n; i++ {
		hh.push(highs, i, kWindow)
		ll.push(lows, i, kWindow)
		if i < kWindow-1 {
			continue
		}
		high, low := hh.front(highs), ll.front(lows)
		if high == low {
			continue
		}
		res.K[i] = null.FloatFrom(100 * (closes[i] - low) / (high - low))
	}
	res.D = smaOptional(res.K, dWindow)
	return res
}
