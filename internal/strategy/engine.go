package strategy

import (
	"github.com/guregu/null/v6"

	"AerialView/internal/calculator"
	"AerialView/internal/model"
)

// Thresholds configures the classifier cut-offs.
type Thresholds struct {
	RSIOverbought   float64 `yaml:"rsi_overbought"`
	RSIOversold     float64 `yaml:"rsi_oversold"`
	StochOverbought float64 `yaml:"stoch_overbought"`
	StochOversold   float64 `yaml:"stoch_oversold"`
	TrendWindow     int     `yaml:"trend_window"`
}

// DefaultThresholds returns the conventional 70/30 and 80/20 bands and a 20-bar trend reference.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RSIOverbought:   70,
		RSIOversold:     30,
		StochOverbought: 80,
		StochOversold:   20,
		TrendWindow:     20,
	}
}

// ApplyDefaults fills zero fields from DefaultThresholds.
func (t *Thresholds) ApplyDefaults() {
	d := DefaultThresholds()
	if t.RSIOverbought == 0 {
		t.RSIOverbought = d.RSIOverbought
	}
	if t.RSIOversold == 0 {
		t.RSIOversold = d.RSIOversold
	}
	if t.StochOverbought == 0 {
		t.StochOverbought = d.StochOverbought
	}
	if t.StochOversold == 0 {
		t.StochOversold = d.StochOversold
	}
	if t.TrendWindow == 0 {
		t.TrendWindow = d.TrendWindow
	}
}

// Classify labels each indicator family from the values at the last bar.
// A missing operand yields UNKNOWN for that family.
func Classify(set model.IndicatorSet, closes []float64, rsiWindow int, th Thresholds) model.Signals {
	last := null.Float{}
	if len(closes) > 0 {
		last = null.FloatFrom(closes[len(closes)-1])
	}
	return model.Signals{
		RSI:        classifyRSI(set.Latest(calculator.RSIName(rsiWindow)), th),
		MACD:       classifyMACD(set.Latest(model.MACD), set.Latest(model.MACDSignal)),
		Trend:      classifyTrend(last, set.Latest(calculator.SMAName(th.TrendWindow))),
		Bollinger:  classifyBollinger(last, set.Latest(model.BBUpper), set.Latest(model.BBLower)),
		Stochastic: classifyStochastic(set.Latest(model.StochK), th),
	}
}
