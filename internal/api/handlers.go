// Package api serves analysis reports and indicator series as JSON for dashboards.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/guregu/null/v6"

	"AerialView/internal/collector"
	"AerialView/internal/config"
	"AerialView/internal/logger"
	"AerialView/internal/model"
)

// maxCompareSymbols bounds the fan-out of one compare request.
const maxCompareSymbols = 20

// Analyzer is the part of the collector the handlers need.
type Analyzer interface {
	Analyze(ctx context.Context, req model.Request) (*model.Report, error)
	AnalyzeBatch(ctx context.Context, reqs []model.Request) []collector.Result
}

// AnalysisHandler handles report, indicator and compare endpoints.
type AnalysisHandler struct {
	analyzer Analyzer
	defaults collector.RequestParams
	now      func() time.Time
}

// NewAnalysisHandler creates a handler; defaults fill absent query parameters.
func NewAnalysisHandler(analyzer Analyzer, defaults collector.RequestParams) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, defaults: defaults, now: time.Now}
}

// IndicatorsResponse is the chart feed: bars plus every indicator series aligned with them.
type IndicatorsResponse struct {
	Symbol     string                  `json:"symbol"`
	Interval   string                  `json:"interval"`
	Timestamps []time.Time             `json:"timestamps"`
	Bars       []model.Bar             `json:"bars"`
	Indicators map[string][]null.Float `json:"indicators"`
}

// CompareEntry is one row of a compare response.
type CompareEntry struct {
	Symbol string        `json:"symbol"`
	Report *model.Report `json:"report,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// GetReport handles GET /api/v1/symbols/{symbol}/report
func (h *AnalysisHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.analyze(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, rep)
}

// GetIndicators handles GET /api/v1/symbols/{symbol}/indicators
func (h *AnalysisHandler) GetIndicators(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.analyze(w, r)
	if !ok {
		return
	}
	resp := IndicatorsResponse{
		Symbol:     rep.Symbol,
		Interval:   rep.Interval,
		Indicators: rep.Indicators,
	}
	if rep.Series != nil {
		resp.Timestamps = rep.Series.Times()
		resp.Bars = rep.Series.Bars
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// Compare handles GET /api/v1/compare?symbols=A,B,C
func (h *AnalysisHandler) Compare(w http.ResponseWriter, r *http.Request) {
	symbols := config.SplitSymbols(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		respondWithError(w, http.StatusBadRequest, "symbols query parameter is required")
		return
	}
	if len(symbols) > maxCompareSymbols {
		respondWithError(w, http.StatusBadRequest, "too many symbols")
		return
	}
	params := h.params(r)
	now := h.now()
	reqs := make([]model.Request, 0, len(symbols))
	for _, sym := range symbols {
		req, err := collector.BuildRequest(sym, params, now)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		reqs = append(reqs, req)
	}

	results := h.analyzer.AnalyzeBatch(r.Context(), reqs)
	entries := make([]CompareEntry, len(results))
	for i, res := range results {
		entries[i] = CompareEntry{Symbol: res.Symbol, Report: res.Report}
		if res.Err != nil {
			entries[i].Error = res.Err.Error()
		}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"results": entries,
		"count":   len(entries),
	})
}

func (h *AnalysisHandler) analyze(w http.ResponseWriter, r *http.Request) (*model.Report, bool) {
	symbol := mux.Vars(r)["symbol"]
	req, err := collector.BuildRequest(symbol, h.params(r), h.now())
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	rep, err := h.analyzer.Analyze(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		logger.Warn("analysis failed",
			logger.String("symbol", req.Symbol),
			logger.Int("status", status),
			logger.ErrorField(err))
		respondWithError(w, status, err.Error())
		return nil, false
	}
	return rep, true
}

func (h *AnalysisHandler) params(r *http.Request) collector.RequestParams {
	q := r.URL.Query()
	p := h.defaults
	if v := strings.TrimSpace(q.Get("period")); v != "" {
		p.Period = v
	}
	if v := strings.TrimSpace(q.Get("interval")); v != "" {
		p.Interval = v
	}
	p.Start = strings.TrimSpace(q.Get("start"))
	p.End = strings.TrimSpace(q.Get("end"))
	return p
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrDataUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, model.ErrInvalidSeries), errors.Is(err, model.ErrInsufficientHistory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
