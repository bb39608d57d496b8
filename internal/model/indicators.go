package model

import (
	"sort"

	"github.com/guregu/null/v6"
)

// Indicator names shared by the engine, the classifier and the renderers.
const (
	MACD       = "macd"
	MACDSignal = "macd_signal"
	MACDHist   = "macd_hist"
	BBUpper    = "bb_upper"
	BBMiddle   = "bb_middle"
	BBLower    = "bb_lower"
	StochK     = "stoch_k"
	StochD     = "stoch_d"
	OBV        = "obv"
)

// IndicatorSet maps an indicator name to a series aligned with the input bars.
// Positions without enough history hold an invalid null.Float.
type IndicatorSet map[string][]null.Float

// Latest returns the value at the last position of the named series.
func (s IndicatorSet) Latest(name string) null.Float {
	vals := s[name]
	if len(vals) == 0 {
		return null.Float{}
	}
	return vals[len(vals)-1]
}

// Len returns the length of the named series, or 0 when absent.
func (s IndicatorSet) Len(name string) int { return len(s[name]) }

// Names returns the indicator names in sorted order.
func (s IndicatorSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Missing returns an all-missing series of length n.
func Missing(n int) []null.Float {
	return make([]null.Float, n)
}
