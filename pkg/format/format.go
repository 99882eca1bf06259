// Package format renders pesos and dates the way the health unit's forms print them.
package format

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DisplayDate is the MMM dd, yyyy layout.
const DisplayDate = "Jan 02, 2006"

var printer = message.NewPrinter(language.English)

// Peso formats an amount as ₱1,234.50: grouped thousands, two decimals, half-up rounding.
func Peso(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).Shift(2).IntPart()
	return sign + "₱" + printer.Sprint(number.Decimal(whole.IntPart())) + "." + twoDigits(cents)
}

// Quantity groups thousands, e.g. 12,500.
func Quantity(n int64) string {
	return printer.Sprint(number.Decimal(n))
}

// Date renders t as "Jan 02, 2006"; the zero time renders empty.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayDate)
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + printer.Sprint(n)
	}
	return printer.Sprint(n)
}
