package calculator

import "github.com/guregu/null/v6"

// MACDResult holds the three aligned MACD series.
type MACDResult struct {
	MACD      []null.Float
	Signal    []null.Float
	Histogram []null.Float
}

// CalculateMACD computes EMA(fast) - EMA(slow), its signal EMA and the histogram.
//
// Both price EMAs are seeded by the first close; the MACD line is reported
// from position max(fast,slow)-1. The signal EMA is seeded by the first
// reported MACD value and reported after a further signal-1 positions.
func CalculateMACD(closes []float64, fast, slow, signal int) MACDResult {
	n := len(closes)
	res := MACDResult{
		MACD:      make([]null.Float, n),
		Signal:    make([]null.Float, n),
		Histogram: make([]null.Float, n),
	}
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return res
	}
	start := max(fast, slow) - 1
	if n <= start {
		return res
	}

	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)
	line := make([]float64, n-start)
	for i := start; i < n; i++ {
		line[i-start] = fastEMA[i] - slowEMA[i]
		res.MACD[i] = null.FloatFrom(line[i-start])
	}

	sig := EMA(line, signal)
	for j := signal - 1; j < len(line); j++ {
		i := j + start
		res.Signal[i] = null.FloatFrom(sig[j])
		res.Histogram[i] = null.FloatFrom(line[j] - sig[j])
	}
	return res
}
