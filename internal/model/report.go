package model

import "time"

// Report is the full analysis of one symbol over one date range.
type Report struct {
	ID          string       `json:"id"`
	Symbol      string       `json:"symbol"`
	Interval    string       `json:"interval"`
	Start       time.Time    `json:"start"`
	End         time.Time    `json:"end"`
	Bars        int          `json:"bars"`
	Indicators  IndicatorSet `json:"-"`
	Series      *Series      `json:"-"`
	Risk        *RiskMetrics `json:"risk,omitempty"`
	RiskError   string       `json:"risk_error,omitempty"`
	Signals     Signals      `json:"signals"`
	Outlook     Label        `json:"outlook"`
	Summary     Summary      `json:"summary"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// Request describes what to fetch for a report.
type Request struct {
	Symbol   string
	Start    time.Time
	End      time.Time
	Interval string
}
