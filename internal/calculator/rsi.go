package calculator

import "github.com/guregu/null/v6"

// RSI smoothing modes.
const (
	SmoothingSimple = "simple"
	SmoothingWilder = "wilder"
)

// RSI computes the relative strength index over window close-to-close deltas.
//
// With SmoothingSimple the average gain and loss are plain means of the
// trailing window; with SmoothingWilder they are seeded by the simple mean of
// the first window deltas and then Wilder-smoothed. The first window
// positions are missing. A window with no losses saturates at 100; a window
// with neither gains nor losses is missing.
func RSI(closes []float64, window int, smoothing string) []null.Float {
	out := make([]null.Float, len(closes))
	if window <= 0 || len(closes) <= window {
		return out
	}
	if smoothing == SmoothingWilder {
		return wilderRSI(closes, window, out)
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	var sumGain, sumLoss float64
	var nGain, nLoss int // non-zero entries in the window, so an empty side is exactly zero
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
			sumGain += change
			nGain++
		} else if change < 0 {
			losses[i] = -change
			sumLoss -= change
			nLoss++
		}
		if j := i - window; j >= 1 {
			if gains[j] > 0 {
				sumGain -= gains[j]
				nGain--
			}
			if losses[j] > 0 {
				sumLoss -= losses[j]
				nLoss--
			}
		}
		if i < window {
			continue
		}
		avgGain, avgLoss := sumGain/float64(window), sumLoss/float64(window)
		if nGain == 0 {
			avgGain = 0
		}
		if nLoss == 0 {
			avgLoss = 0
		}
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func wilderRSI(closes []float64, window int, out []null.Float) []null.Float {
	var avgGain, avgLoss float64
	for i := 1; i <= window; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)
	out[window] = rsiValue(avgGain, avgLoss)

	for i := window + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(window-1) + gain) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + loss) / float64(window)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) null.Float {
	if avgLoss == 0 {
		if avgGain == 0 {
			return null.Float{}
		}
		return null.FloatFrom(100)
	}
	rs := avgGain / avgLoss
	rsi := 100.0 - 100.0/(1.0+rs)
	if rsi < 0 {
		rsi = 0
	} else if rsi > 100 {
		rsi = 100
	}
	return null.FloatFrom(rsi)
}
