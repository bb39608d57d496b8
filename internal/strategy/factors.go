package strategy

import (
	"github.com/guregu/null/v6"

	"AerialView/internal/model"
)

// classifyRSI: above overbought → OVERBOUGHT, below oversold → OVERSOLD.
func classifyRSI(rsi null.Float, th Thresholds) model.Label {
	if !rsi.Valid {
		return model.LabelUnknown
	}
	switch {
	case rsi.Float64 > th.RSIOverbought:
		return model.LabelOverbought
	case rsi.Float64 < th.RSIOversold:
		return model.LabelOversold
	default:
		return model.LabelNeutral
	}
}

// classifyMACD: MACD line strictly above its signal line is bullish.
func classifyMACD(macd, signal null.Float) model.Label {
	if !macd.Valid || !signal.Valid {
		return model.LabelUnknown
	}
	if macd.Float64 > signal.Float64 {
		return model.LabelBullish
	}
	return model.LabelBearish
}

func classifyTrend(price, ma null.Float) model.Label {
	if !price.Valid || !ma.Valid {
		return model.LabelUnknown
	}
	if price.Float64 > ma.Float64 {
		return model.LabelAbove
	}
	return model.LabelBelow
}

func classifyBollinger(price, upper, lower null.Float) model.Label {
	if !price.Valid || !upper.Valid || !lower.Valid {
		return model.LabelUnknown
	}
	switch {
	case price.Float64 > upper.Float64:
		return model.LabelAboveUpper
	case price.Float64 < lower.Float64:
		return model.LabelBelowLower
	default:
		return model.LabelInside
	}
}

func classifyStochastic(k null.Float, th Thresholds) model.Label {
	if !k.Valid {
		return model.LabelUnknown
	}
	switch {
	case k.Float64 > th.StochOverbought:
		return model.LabelOverbought
	case k.Float64 < th.StochOversold:
		return model.LabelOversold
	default:
		return model.LabelNeutral
	}
}
