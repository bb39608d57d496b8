package calculator

import "github.com/guregu/null/v6"

// OBV folds the series left to right: the running total starts at the first
// volume and adds or subtracts each bar's volume according to the sign of the
// close-to-close change. It is a single sequential pass.
func OBV(closes []float64, volumes []int64) []null.Float {
	out := make([]null.Float, len(closes))
	if len(closes) == 0 {
		return out
	}
	acc := volumes[0]
	out[0] = null.FloatFrom(float64(acc))
	for i := 1; i < len(closes); i++ {
		acc = obvStep(acc, closes[i-1], closes[i], volumes[i])
		out[i] = null.FloatFrom(float64(acc))
	}
	return out
}

func obvStep(acc int64, prevClose, curClose float64, volume int64) int64 {
	switch {
	case curClose > prevClose:
		return acc + volume
	case curClose < prevClose:
		return acc - volume
	default:
		return acc
	}
}
