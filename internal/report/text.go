package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"AerialView/internal/collector"
	"AerialView/internal/model"
)

const (
	ruleWidth = 60
	dateFmt   = "2006-01-02"
)

// WriteSingle prints the full analysis of one symbol.
func WriteSingle(w io.Writer, rep *model.Report) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "AERIALVIEW ANALYSIS - %s\n", rep.Symbol)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Period:            %s to %s (%d bars, %s)\n",
		rep.Start.Format(dateFmt), rep.End.Format(dateFmt), rep.Bars, rep.Interval)

	s := rep.Summary
	section(w, "PRICE INFORMATION")
	line(w, "Current Price", "$"+Fixed(s.CurrentPrice, 2))
	line(w, "Price Change", "$"+Signed(s.PriceChange, 2))
	line(w, "Price Change %", Signed(s.PriceChangePct, 2)+"%")
	line(w, "Average Volume", Grouped(s.AverageVolume))

	set := rep.Indicators
	section(w, "TECHNICAL ANALYSIS")
	for _, name := range WindowedNames(set, "sma_") {
		line(w, "SMA "+strings.TrimPrefix(name, "sma_"), Opt(set.Latest(name), 2))
	}
	if names := WindowedNames(set, "rsi_"); len(names) > 0 {
		line(w, "RSI "+strings.TrimPrefix(names[0], "rsi_"), Opt(set.Latest(names[0]), 2))
	}
	line(w, "MACD", Opt(set.Latest(model.MACD), 4))
	line(w, "MACD Signal", Opt(set.Latest(model.MACDSignal), 4))
	line(w, "MACD Histogram", Opt(set.Latest(model.MACDHist), 4))
	line(w, "Bollinger Upper", Opt(set.Latest(model.BBUpper), 2))
	line(w, "Bollinger Middle", Opt(set.Latest(model.BBMiddle), 2))
	line(w, "Bollinger Lower", Opt(set.Latest(model.BBLower), 2))
	line(w, "Stochastic %K", Opt(set.Latest(model.StochK), 2))
	line(w, "Stochastic %D", Opt(set.Latest(model.StochD), 2))
	if obv := set.Latest(model.OBV); obv.Valid {
		line(w, "OBV", Grouped(obv.Float64))
	} else {
		line(w, "OBV", NotAvailable)
	}

	section(w, "RISK METRICS")
	if r := rep.Risk; r != nil {
		line(w, "Total Return", Percent(r.TotalReturn))
		line(w, "Volatility", OptPercent(r.AnnualVolatility))
		line(w, "Sharpe Ratio", Opt(r.SharpeRatio, 2))
		line(w, "Max Drawdown", Percent(r.MaxDrawdown))
		line(w, "VaR (95%)", Percent(r.VaR95))
	} else {
		fmt.Fprintf(w, "Not available: %s\n", rep.RiskError)
	}

	section(w, "PRICE RANGE")
	line(w, "Max Price", "$"+Fixed(s.MaxPrice, 2))
	line(w, "Min Price", "$"+Fixed(s.MinPrice, 2))
	line(w, "Current Price", "$"+Fixed(s.CurrentPrice, 2))
	line(w, "Range Position", Fixed(s.RangePosition*100, 1)+"%")

	section(w, "TRADING SIGNALS")
	sig := rep.Signals
	fmt.Fprintf(w, "RSI:               %s\n", Describe("rsi", sig.RSI))
	fmt.Fprintf(w, "MACD:              %s\n", Describe("macd", sig.MACD))
	fmt.Fprintf(w, "Trend:             %s\n", Describe("trend", sig.Trend))
	fmt.Fprintf(w, "Bollinger:         %s\n", Describe("bollinger", sig.Bollinger))
	fmt.Fprintf(w, "Stochastic:        %s\n", Describe("stochastic", sig.Stochastic))
	fmt.Fprintf(w, "Outlook:           %s (score %+d)\n", rep.Outlook, sig.Score())
	fmt.Fprintln(w, rule)
}

// WriteCompare prints one row per symbol. Failed symbols keep their row and
// show the error instead of figures.
func WriteCompare(w io.Writer, results []collector.Result) {
	symbols := make([]string, len(results))
	for i, r := range results {
		symbols[i] = r.Symbol
	}
	fmt.Fprintf(w, "COMPARING: %s\n", strings.Join(symbols, ", "))
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth+20))
	fmt.Fprintf(w, "%-8s %-11s %-10s %-7s %-11s %-8s %-9s\n",
		"Ticker", "Price", "Change %", "RSI", "Volatility", "Sharpe", "MaxDD")
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth+20))
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%-8s error: %v\n", r.Symbol, r.Err)
			continue
		}
		rep := r.Report
		rsi := NotAvailable
		if names := WindowedNames(rep.Indicators, "rsi_"); len(names) > 0 {
			rsi = Opt(rep.Indicators.Latest(names[0]), 1)
		}
		vol, sharpe, maxDD := NotAvailable, NotAvailable, NotAvailable
		if rep.Risk != nil {
			if rep.Risk.AnnualVolatility.Valid {
				vol = Fixed(rep.Risk.AnnualVolatility.Float64*100, 1) + "%"
			}
			sharpe = Opt(rep.Risk.SharpeRatio, 2)
			maxDD = Fixed(rep.Risk.MaxDrawdown*100, 1) + "%"
		}
		fmt.Fprintf(w, "%-8s %-11s %-10s %-7s %-11s %-8s %-9s\n",
			rep.Symbol,
			"$"+Fixed(rep.Summary.CurrentPrice, 2),
			Signed(rep.Summary.PriceChangePct, 2)+"%",
			rsi, vol, sharpe, maxDD)
	}
}

// WindowedNames returns the indicator names with prefix, ordered by their
// numeric window suffix (sma_20 before sma_200).
func WindowedNames(set model.IndicatorSet, prefix string) []string {
	var names []string
	for name := range set {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		a, _ := strconv.Atoi(strings.TrimPrefix(names[i], prefix))
		b, _ := strconv.Atoi(strings.TrimPrefix(names[j], prefix))
		return a < b
	})
	return names
}

// Describe pairs a label with a short reading for the given family.
func Describe(family string, l model.Label) string {
	var note string
	switch l {
	case model.LabelOverbought:
		note = "consider selling"
	case model.LabelOversold:
		note = "consider buying"
	case model.LabelBullish:
		note = "positive momentum"
	case model.LabelBearish:
		note = "negative momentum"
	case model.LabelAbove:
		note = "uptrend"
	case model.LabelBelow:
		note = "downtrend"
	case model.LabelAboveUpper:
		note = "price above upper band"
	case model.LabelBelowLower:
		note = "price below lower band"
	case model.LabelUnknown:
		note = "not enough history"
	}
	if family == "trend" && l == model.LabelUnknown {
		note = "moving average not available"
	}
	if note == "" {
		return string(l)
	}
	return string(l) + " - " + note
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", title)
}

func line(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-19s%s\n", label+":", value)
}
