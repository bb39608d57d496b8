package collector

import (
	"fmt"
	"strings"
	"time"

	"AerialView/internal/model"
)

const dateLayout = "2006-01-02"

// Intervals lists the bar sizes accepted on requests.
var Intervals = []string{"1m", "5m", "15m", "30m", "1h", "1d", "1wk", "1mo"}

// ResolvePeriod turns a lookback such as "6mo", "1y", "ytd" or "max" into a
// [start, end] range ending at now.
func ResolvePeriod(period string, now time.Time) (time.Time, time.Time, error) {
	switch p := strings.ToLower(strings.TrimSpace(period)); p {
	case "1d":
		return now.AddDate(0, 0, -1), now, nil
	case "5d":
		return now.AddDate(0, 0, -5), now, nil
	case "1mo":
		return now.AddDate(0, -1, 0), now, nil
	case "3mo":
		return now.AddDate(0, -3, 0), now, nil
	case "6mo":
		return now.AddDate(0, -6, 0), now, nil
	case "1y":
		return now.AddDate(-1, 0, 0), now, nil
	case "2y":
		return now.AddDate(-2, 0, 0), now, nil
	case "5y":
		return now.AddDate(-5, 0, 0), now, nil
	case "10y":
		return now.AddDate(-10, 0, 0), now, nil
	case "ytd":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), now, nil
	case "max":
		return time.Unix(0, 0).UTC(), now, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}

// RequestParams are the user-facing knobs shared by the CLI, the API and the bot.
type RequestParams struct {
	Period   string
	Start    string // YYYY-MM-DD, overrides Period when set
	End      string // YYYY-MM-DD, defaults to now; anchors Period when Start is empty
	Interval string
}

// BuildRequest validates params and resolves the date range for symbol.
func BuildRequest(symbol string, p RequestParams, now time.Time) (model.Request, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return model.Request{}, fmt.Errorf("symbol is required")
	}
	if !validInterval(p.Interval) {
		return model.Request{}, fmt.Errorf("unsupported interval %q", p.Interval)
	}

	var start, end time.Time
	var err error
	if p.Start != "" {
		start, err = time.Parse(dateLayout, p.Start)
		if err != nil {
			return model.Request{}, fmt.Errorf("invalid start date %q: %w", p.Start, err)
		}
		end = now
		if p.End != "" {
			end, err = time.Parse(dateLayout, p.End)
			if err != nil {
				return model.Request{}, fmt.Errorf("invalid end date %q: %w", p.End, err)
			}
		}
	} else {
		// A lone end date anchors the period instead of now.
		anchor := now
		if p.End != "" {
			anchor, err = time.Parse(dateLayout, p.End)
			if err != nil {
				return model.Request{}, fmt.Errorf("invalid end date %q: %w", p.End, err)
			}
		}
		start, end, err = ResolvePeriod(p.Period, anchor)
		if err != nil {
			return model.Request{}, err
		}
	}
	if !end.After(start) {
		return model.Request{}, fmt.Errorf("end date %s must be after start date %s",
			end.Format(dateLayout), start.Format(dateLayout))
	}
	return model.Request{Symbol: symbol, Start: start, End: end, Interval: p.Interval}, nil
}

func validInterval(interval string) bool {
	for _, iv := range Intervals {
		if iv == interval {
			return true
		}
	}
	return false
}
