package calculator

import (
	"fmt"

	"github.com/guregu/null/v6"
)

// SMA computes the simple moving average of values over window.
// The first window-1 positions are missing.
func SMA(values []float64, window int) []null.Float {
	out := make([]null.Float, len(values))
	if window <= 0 || len(values) == 0 {
		return out
	}
	rm := newRollingMoments(window, values[0])
	for i, v := range values {
		rm.push(v)
		if rm.full() {
			out[i] = null.FloatFrom(rm.mean())
		}
	}
	return out
}

// EMA computes the exponential moving average with smoothing factor
// 2/(span+1), seeded by the first observation. Every position is defined.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 || span <= 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

func volumesAsFloat(volumes []int64) []float64 {
	out := make([]float64, len(volumes))
	for i, v := range volumes {
		out[i] = float64(v)
	}
	return out
}

// SMAName is the indicator key for a close-price SMA.
func SMAName(window int) string { return fmt.Sprintf("sma_%d", window) }

// VolumeSMAName is the indicator key for a volume SMA.
func VolumeSMAName(window int) string { return fmt.Sprintf("volume_sma_%d", window) }

// RSIName is the indicator key for an RSI series.
func RSIName(window int) string { return fmt.Sprintf("rsi_%d", window) }
