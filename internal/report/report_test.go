package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"

	"AerialView/internal/collector"
	"AerialView/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Symbol:   "AAPL",
		Interval: "1d",
		Start:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		Bars:     124,
		Indicators: model.IndicatorSet{
			"sma_200":  {null.Float{}},
			"sma_20":   {null.FloatFrom(187.456)},
			"rsi_14":   {null.FloatFrom(63.2)},
			model.MACD: {null.FloatFrom(1.23456)},
			model.OBV:  {null.FloatFrom(12345678)},
		},
		Risk: &model.RiskMetrics{
			TotalReturn:      0.1234,
			AnnualVolatility: null.FloatFrom(0.2512),
			SharpeRatio:      null.Float{},
			MaxDrawdown:      -0.0831,
			VaR95:            -0.021,
		},
		Signals: model.Signals{
			RSI:        model.LabelNeutral,
			MACD:       model.LabelBullish,
			Trend:      model.LabelAbove,
			Bollinger:  model.LabelInside,
			Stochastic: model.LabelUnknown,
		},
		Outlook: model.LabelBullish,
		Summary: model.Summary{
			CurrentPrice:   210.62,
			PriceChange:    25.01,
			PriceChangePct: 13.47,
			AverageVolume:  56789012.4,
			MaxPrice:       220.1,
			MinPrice:       165.0,
			RangePosition:  0.828,
		},
	}
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "1.24", Fixed(1.235, 2))
	assert.Equal(t, "+3.10", Signed(3.1, 2))
	assert.Equal(t, "-0.50", Signed(-0.5, 2))
	assert.Equal(t, "+0.00", Signed(0, 2))
	assert.Equal(t, "+12.34%", Percent(0.1234))
	assert.Equal(t, "-8.31%", Percent(-0.0831))
	assert.Equal(t, NotAvailable, Opt(null.Float{}, 2))
	assert.Equal(t, "0.50", Opt(null.FloatFrom(0.5), 2))
	assert.Equal(t, NotAvailable, OptPercent(null.Float{}))
}

func TestGrouped(t *testing.T) {
	tests := map[float64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		1234567.6:  "1,234,568",
		-9876543.0: "-9,876,543",
	}
	for in, want := range tests {
		assert.Equal(t, want, Grouped(in), "%v", in)
	}
}

func TestWriteSingle(t *testing.T) {
	var buf bytes.Buffer
	WriteSingle(&buf, sampleReport())
	out := buf.String()

	for _, want := range []string{
		"AERIALVIEW ANALYSIS - AAPL",
		"2024-01-02 to 2024-06-28 (124 bars, 1d)",
		"PRICE INFORMATION", "TECHNICAL ANALYSIS", "RISK METRICS", "PRICE RANGE", "TRADING SIGNALS",
		"Current Price:     $210.62",
		"Average Volume:    56,789,012",
		"SMA 20:            187.46",
		"SMA 200:           N/A",
		"RSI 14:            63.20",
		"MACD:              1.2346",
		"Stochastic %K:     N/A",
		"OBV:               12,345,678",
		"Total Return:      +12.34%",
		"Sharpe Ratio:      N/A",
		"Range Position:    82.8%",
		"Stochastic:        UNKNOWN - not enough history",
		"Outlook:           BULLISH (score +2)",
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("SMA 20:")), bytes.Index(buf.Bytes(), []byte("SMA 200:")))
}

func TestWriteSingle_NoRisk(t *testing.T) {
	rep := sampleReport()
	rep.Risk = nil
	rep.RiskError = "risk metrics: insufficient history"
	var buf bytes.Buffer
	WriteSingle(&buf, rep)
	assert.Contains(t, buf.String(), "Not available: risk metrics: insufficient history")
}

func TestWriteCompare(t *testing.T) {
	var buf bytes.Buffer
	WriteCompare(&buf, []collector.Result{
		{Symbol: "AAPL", Report: sampleReport()},
		{Symbol: "NOPE", Err: errors.New("no data")},
	})
	out := buf.String()
	assert.Contains(t, out, "COMPARING: AAPL, NOPE")
	assert.Contains(t, out, "$210.62")
	assert.Contains(t, out, "25.1%")
	assert.Contains(t, out, "-8.3%")
	assert.Contains(t, out, "NOPE     error: no data")
}

func TestWindowedNames(t *testing.T) {
	set := model.IndicatorSet{"sma_200": nil, "sma_50": nil, "sma_20": nil, "rsi_14": nil}
	assert.Equal(t, []string{"sma_20", "sma_50", "sma_200"}, WindowedNames(set, "sma_"))
	assert.Empty(t, WindowedNames(set, "ema_"))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "OVERSOLD - consider buying", Describe("rsi", model.LabelOversold))
	assert.Equal(t, "UNKNOWN - moving average not available", Describe("trend", model.LabelUnknown))
	assert.Equal(t, "INSIDE", Describe("bollinger", model.LabelInside))
}
