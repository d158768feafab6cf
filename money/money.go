// Package money holds the decimal helpers shared by every screen's totals.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var hundred = decimal.NewFromInt(100)

// Sum adds the amounts picked from rows.
func Sum[T any](rows []T, pick func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(pick(r))
	}
	return total
}

// SumIf adds the amounts of rows for which keep returns true.
func SumIf[T any](rows []T, keep func(T) bool, pick func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		if keep(r) {
			total = total.Add(pick(r))
		}
	}
	return total
}

// Percent returns part/whole*100 rounded to one decimal place, or zero when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(1)
}

// Parse reads a user-entered amount. Blank means zero; grouping commas are ignored.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// Formatter renders amounts with a currency symbol and locale grouping.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter builds a Formatter; an unparseable locale falls back to English.
func NewFormatter(locale, symbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{symbol: symbol, printer: message.NewPrinter(tag)}
}

// Format renders d rounded half away from zero to two decimal places, e.g. "₹1,234.50".
// Negative values keep their sign in front.
func (f *Formatter) Format(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + f.symbol + f.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

// FormatPercent renders a percentage with one decimal place.
func (f *Formatter) FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}
