package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"AerialView/internal/collector"
	"AerialView/internal/model"
	"AerialView/internal/report"
)

// FormatReport formats one symbol's analysis as a Telegram HTML message.
func FormatReport(rep *model.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s | %s\n\n",
		html.EscapeString(rep.Symbol), rep.Interval, rep.End.Format("2006-01-02")))

	s := rep.Summary
	b.WriteString(fmt.Sprintf("Price: %s (%s%%)\n", report.Fixed(s.CurrentPrice, 2), report.Signed(s.PriceChangePct, 2)))
	b.WriteString(fmt.Sprintf("Range: %s ~ %s (pos %s%%)\n\n",
		report.Fixed(s.MinPrice, 2), report.Fixed(s.MaxPrice, 2), report.Fixed(s.RangePosition*100, 0)))

	set := rep.Indicators
	b.WriteString("📈 <b>Indicators</b>\n")
	for _, name := range report.WindowedNames(set, "sma_") {
		b.WriteString(fmt.Sprintf("  %s: %s\n", strings.ToUpper(name), report.Opt(set.Latest(name), 2)))
	}
	if names := report.WindowedNames(set, "rsi_"); len(names) > 0 {
		b.WriteString(fmt.Sprintf("  %s: %s\n", strings.ToUpper(names[0]), report.Opt(set.Latest(names[0]), 1)))
	}
	b.WriteString(fmt.Sprintf("  MACD: %s / %s\n",
		report.Opt(set.Latest(model.MACD), 3), report.Opt(set.Latest(model.MACDSignal), 3)))
	b.WriteString(fmt.Sprintf("  BB: %s / %s / %s\n", report.Opt(set.Latest(model.BBLower), 2),
		report.Opt(set.Latest(model.BBMiddle), 2), report.Opt(set.Latest(model.BBUpper), 2)))
	b.WriteString(fmt.Sprintf("  %%K/%%D: %s / %s\n\n",
		report.Opt(set.Latest(model.StochK), 1), report.Opt(set.Latest(model.StochD), 1)))

	b.WriteString("⚡ <b>Risk</b>\n")
	if r := rep.Risk; r != nil {
		b.WriteString(fmt.Sprintf("  Return: %s | Vol: %s\n", report.Percent(r.TotalReturn), report.OptPercent(r.AnnualVolatility)))
		b.WriteString(fmt.Sprintf("  Sharpe: %s | MaxDD: %s | VaR95: %s\n\n",
			report.Opt(r.SharpeRatio, 2), report.Percent(r.MaxDrawdown), report.Percent(r.VaR95)))
	} else {
		b.WriteString(fmt.Sprintf("  not available: %s\n\n", html.EscapeString(rep.RiskError)))
	}

	sig := rep.Signals
	b.WriteString("🚨 <b>Signals</b>\n")
	b.WriteString(fmt.Sprintf("  RSI %s | MACD %s | Trend %s\n", sig.RSI, sig.MACD, sig.Trend))
	b.WriteString(fmt.Sprintf("  Bollinger %s | Stochastic %s\n", sig.Bollinger, sig.Stochastic))
	b.WriteString(fmt.Sprintf("\n%s <b>Outlook: %s</b> (%+d)", outlookIcon(rep.Outlook), rep.Outlook, sig.Score()))
	return b.String()
}

// FormatCompare formats a batch result as a compact HTML table.
func FormatCompare(results []collector.Result, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Watchlist</b> | %s\n\n<pre>", now.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("%-7s %10s %8s %6s %7s\n", "Ticker", "Price", "Chg%", "RSI", "Outlook"))
	for _, r := range results {
		if r.Err != nil {
			b.WriteString(fmt.Sprintf("%-7s %s\n", html.EscapeString(r.Symbol), "error"))
			continue
		}
		rep := r.Report
		rsi := report.NotAvailable
		if names := report.WindowedNames(rep.Indicators, "rsi_"); len(names) > 0 {
			rsi = report.Opt(rep.Indicators.Latest(names[0]), 1)
		}
		b.WriteString(fmt.Sprintf("%-7s %10s %8s %6s %7s\n",
			html.EscapeString(rep.Symbol),
			report.Fixed(rep.Summary.CurrentPrice, 2),
			report.Signed(rep.Summary.PriceChangePct, 2),
			rsi, rep.Outlook))
	}
	b.WriteString("</pre>")

	var failed []string
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Symbol, r.Err))
		}
	}
	if len(failed) > 0 {
		b.WriteString("\n\n⚠️ " + html.EscapeString(strings.Join(failed, "\n")))
	}
	return b.String()
}

// FormatError formats a failure reply.
func FormatError(what string, err error) string {
	return fmt.Sprintf("❌ %s: %s", html.EscapeString(what), html.EscapeString(err.Error()))
}

func outlookIcon(l model.Label) string {
	switch l {
	case model.LabelBullish:
		return "🟢"
	case model.LabelBearish:
		return "🔴"
	default:
		return "🟡"
	}
}
