package render

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)

	englishPrinter = message.NewPrinter(language.English)
)

// FormatWithUnit scales value by its magnitude and appends K, M or B, always
// with two decimals: 1234567 -> "1.23M", 999 -> "999.00".
func FormatWithUnit(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "-"
	}
	d := decimal.NewFromFloat(value)
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(billion):
		return d.Div(billion).StringFixed(2) + "B"
	case abs.GreaterThanOrEqual(million):
		return d.Div(million).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return d.Div(thousand).StringFixed(2) + "K"
	default:
		return d.StringFixed(2)
	}
}

// ToLocaleString truncates value toward zero and groups the integer digits
// with commas: 1234567.89 -> "1,234,567".
func ToLocaleString(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "-"
	}
	t := math.Trunc(value)
	if t >= math.MinInt64 && t < math.MaxInt64 {
		return englishPrinter.Sprintf("%d", int64(t))
	}
	return englishPrinter.Sprintf("%.0f", t)
}
