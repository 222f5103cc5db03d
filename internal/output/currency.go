package output

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes amounts in console and TUI output
const CurrencySymbol = "₹"

// FormatCurrency formats an amount with thousands separators and exactly
// two decimals, e.g. 1234567.891 -> "1,234,567.89".
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	whole := rounded.Truncate(0)
	fraction := rounded.Sub(whole).StringFixed(2) // "0.xx"

	return sign + groupThousands(whole) + fraction[1:]
}

var maxInt64 = decimal.NewFromInt(math.MaxInt64)

// groupThousands inserts separators into a non-negative whole number. The
// printer only groups machine integers, so larger values are grouped by hand.
func groupThousands(whole decimal.Decimal) string {
	if whole.LessThanOrEqual(maxInt64) {
		return message.NewPrinter(language.English).Sprintf("%d", whole.IntPart())
	}

	digits := whole.StringFixed(0)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatRupees formats an amount with the currency symbol
func FormatRupees(amount decimal.Decimal) string {
	return CurrencySymbol + FormatCurrency(amount)
}

// FormatPercentage formats a fraction as a percentage, e.g. 0.0715 -> "7.15%"
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
