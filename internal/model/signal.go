package model

// Label is a discrete trading-signal value.
type Label string

const (
	LabelUnknown Label = "UNKNOWN"

	// RSI and stochastic
	LabelOverbought Label = "OVERBOUGHT"
	LabelOversold   Label = "OVERSOLD"
	LabelNeutral    Label = "NEUTRAL"

	// MACD
	LabelBullish Label = "BULLISH"
	LabelBearish Label = "BEARISH"

	// Trend vs moving average
	LabelAbove Label = "ABOVE"
	LabelBelow Label = "BELOW"

	// Bollinger position
	LabelAboveUpper Label = "ABOVE_UPPER"
	LabelBelowLower Label = "BELOW_LOWER"
	LabelInside     Label = "INSIDE"

	// Outlook
	LabelMixed Label = "MIXED"
)

// Signals holds one label per indicator family, taken at the last bar.
type Signals struct {
	RSI        Label `json:"rsi"`
	MACD       Label `json:"macd"`
	Trend      Label `json:"trend"`
	Bollinger  Label `json:"bollinger"`
	Stochastic Label `json:"stochastic"`
}

// Score counts bullish labels minus bearish labels. UNKNOWN and neutral labels count zero.
func (s Signals) Score() int {
	score := 0
	for _, l := range []Label{s.RSI, s.Stochastic, s.Bollinger} {
		switch l {
		case LabelOversold, LabelBelowLower:
			score++
		case LabelOverbought, LabelAboveUpper:
			score--
		}
	}
	switch s.MACD {
	case LabelBullish:
		score++
	case LabelBearish:
		score--
	}
	switch s.Trend {
	case LabelAbove:
		score++
	case LabelBelow:
		score--
	}
	return score
}

// Outlook maps Score to BULLISH, BEARISH or MIXED.
func (s Signals) Outlook() Label {
	switch score := s.Score(); {
	case score >= 2:
		return LabelBullish
	case score <= -2:
		return LabelBearish
	default:
		return LabelMixed
	}
}
