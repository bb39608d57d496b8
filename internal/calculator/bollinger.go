package calculator

import (
	"math"

	"github.com/guregu/null/v6"
)

// BollingerResult holds the aligned band series.
type BollingerResult struct {
	Upper  []null.Float
	Middle []null.Float
	Lower  []null.Float
}

// CalculateBollinger computes SMA(window) ± k·σ using the population standard
// deviation of the same window.
func CalculateBollinger(closes []float64, window int, k float64) BollingerResult {
	n := len(closes)
	res := BollingerResult{
		Upper:  make([]null.Float, n),
		Middle: make([]null.Float, n),
		Lower:  make([]null.Float, n),
	}
	if window <= 0 || n == 0 {
		return res
	}
	rm := newRollingMoments(window, closes[0])
	for i, c := range closes {
		rm.push(c)
		if !rm.full() {
			continue
		}
		mid := rm.mean()
		band := k * math.Sqrt(rm.variance())
		res.Middle[i] = null.FloatFrom(mid)
		res.Upper[i] = null.FloatFrom(mid + band)
		res.Lower[i] = null.FloatFrom(mid - band)
	}
	return res
}
