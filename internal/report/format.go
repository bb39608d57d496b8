// Package report renders analysis reports as plain text for the terminal.
package report

import (
	"strings"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// NotAvailable is printed wherever a value is missing.
const NotAvailable = "N/A"

// Fixed renders v rounded half away from zero to places decimals.
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Signed renders v like Fixed with an explicit sign.
func Signed(v float64, places int32) string {
	d := decimal.NewFromFloat(v).Round(places)
	if d.IsPositive() || d.IsZero() {
		return "+" + d.StringFixed(places)
	}
	return d.StringFixed(places)
}

// Percent renders a fraction (0.1234) as a signed percentage ("+12.34%").
func Percent(fraction float64) string {
	return Signed(fraction*100, 2) + "%"
}

// Opt renders an optional value, or NotAvailable.
func Opt(v null.Float, places int32) string {
	if !v.Valid {
		return NotAvailable
	}
	return Fixed(v.Float64, places)
}

// OptPercent renders an optional fraction as a percentage, or NotAvailable.
func OptPercent(v null.Float) string {
	if !v.Valid {
		return NotAvailable
	}
	return Percent(v.Float64)
}

// Grouped renders v rounded to an integer with thousands separators.
func Grouped(v float64) string {
	s := decimal.NewFromFloat(v).Round(0).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
