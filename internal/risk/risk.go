// Package risk computes scalar risk statistics from a close-price series.
package risk

import (
	"fmt"
	"math"
	"sort"

	"github.com/guregu/null/v6"

	"AerialView/internal/model"
)

// TradingDaysPerYear annualises daily statistics. It assumes an equity
// exchange calendar; crypto or weekly series need a different factor.
const TradingDaysPerYear = 252

// DefaultRiskFreeRate is the annual rate subtracted in the Sharpe ratio.
const DefaultRiskFreeRate = 0.02

// VaRConfidence is the confidence level of the historical Value-at-Risk.
const VaRConfidence = 0.95

// Returns computes close-to-close percentage changes; the first close has no
// predecessor and yields no return.
func Returns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		out[i-1] = closes[i]/closes[i-1] - 1
	}
	return out
}

// Compute derives the risk metrics of closes.
func Compute(closes []float64, riskFreeRate float64) (model.RiskMetrics, error) {
	if len(closes) < 2 {
		return model.RiskMetrics{}, fmt.Errorf("risk metrics need 2 closes, got %d: %w",
			len(closes), model.ErrInsufficientHistory)
	}
	for i, c := range closes {
		if c <= 0 {
			return model.RiskMetrics{}, fmt.Errorf("close %d is %.4f: %w", i, c, model.ErrInvalidSeries)
		}
	}

	rets := Returns(closes)
	n := len(closes)
	m := model.RiskMetrics{
		TotalReturn:     closes[n-1]/closes[0] - 1,
		MaxDrawdown:     MaxDrawdown(closes),
		VaR95:           Quantile(rets, 1-VaRConfidence),
		LatestPrice:     closes[n-1],
		LatestChange:    closes[n-1] - closes[n-2],
		LatestChangePct: rets[len(rets)-1],
	}

	if std, ok := sampleStdDev(rets); ok {
		vol := std * math.Sqrt(TradingDaysPerYear)
		m.AnnualVolatility = null.FloatFrom(vol)
		if vol > 0 {
			annualReturn := mean(rets) * TradingDaysPerYear
			m.SharpeRatio = null.FloatFrom((annualReturn - riskFreeRate) / vol)
		}
	}
	return m, nil
}

// MaxDrawdown returns the most negative close / running-peak - 1. It is 0 for
// a non-decreasing series and never positive.
func MaxDrawdown(closes []float64) float64 {
	peak := math.Inf(-1)
	worst := 0.0
	for _, c := range closes {
		if c > peak {
			peak = c
		}
		if dd := c/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}

// Quantile returns the q-th quantile of values, interpolating linearly
// between order statistics at position q·(n-1).
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdDev uses the n-1 denominator; it is undefined for fewer than two values.
func sampleStdDev(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	mu := mean(values)
	var ss float64
	for _, v := range values {
		d := v - mu
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1)), true
}
