// Package money holds the numeric helpers every layer that touches amounts
// goes through: lenient coercion of untyped input, non-negative clamping and
// locale-aware currency formatting with a plain-text fallback.
package money

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ToDecimal coerces v (string, number, json.Number or nil) into a decimal.
// NaN, ±Inf and anything that fails to parse return fallback instead of an
// error: corrupted draft fields must never abort a load.
func ToDecimal(v any, fallback decimal.Decimal) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return fallback
	case decimal.Decimal:
		return n
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return fallback
		}
		return decimal.NewFromFloat(n)
	case float32:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fallback
		}
		return decimal.NewFromFloat(f)
	case int:
		return decimal.NewFromInt(int64(n))
	case int32:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return fallback
		}
		return d
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return fallback
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fallback
		}
		return d
	default:
		return fallback
	}
}

// ClampNonNegative floors d at zero. Total function, no error path.
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Format renders amount with the locale rules of the given ISO 4217 code
// (e.g. "$1,945.00"). Unknown codes fall back to "<amount 2dp> <CODE>".
// Never returns an error to the caller.
func Format(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fallbackFormat(amount, code)
	}
	p := message.NewPrinter(language.English)
	sym := p.Sprint(currency.NarrowSymbol(unit))
	n := number.Decimal(amount.InexactFloat64(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2))
	return sym + p.Sprint(n)
}

func fallbackFormat(amount decimal.Decimal, code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return amount.StringFixed(2)
	}
	return amount.StringFixed(2) + " " + c
}
