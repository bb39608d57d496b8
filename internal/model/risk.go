package model

import "github.com/guregu/null/v6"

// RiskMetrics summarises a close-price series. Statistics that cannot be
// computed for the given input are left invalid rather than zero.
type RiskMetrics struct {
	TotalReturn      float64    `json:"total_return"`
	AnnualVolatility null.Float `json:"annual_volatility"`
	SharpeRatio      null.Float `json:"sharpe_ratio"`
	MaxDrawdown      float64    `json:"max_drawdown"`
	VaR95            float64    `json:"var_95"`
	LatestPrice      float64    `json:"latest_price"`
	LatestChange     float64    `json:"latest_change"`
	LatestChangePct  float64    `json:"latest_change_pct"`
}

// Summary is the price/volume overview printed at the top of a report.
type Summary struct {
	CurrentPrice   float64 `json:"current_price"`
	PriceChange    float64 `json:"price_change"`
	PriceChangePct float64 `json:"price_change_pct"`
	AverageVolume  float64 `json:"average_volume"`
	MaxPrice       float64 `json:"max_price"`
	MinPrice       float64 `json:"min_price"`
	RangePosition  float64 `json:"range_position"` // 0.0 ~ 1.0
}
