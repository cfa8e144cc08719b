package output

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// brl is resolved through the constructor so the currency is never nil.
var brl = *money.New(0, money.BRL).Currency()

// FormatCurrency formats amount as Brazilian reais, rounded to centavos,
// e.g. "R$1.234,56".
func FormatCurrency(amount decimal.Decimal) string {
	cents := amount.Shift(int32(brl.Fraction)).Round(0)
	if !cents.BigInt().IsInt64() {
		return formatLarge(amount)
	}
	return brl.Formatter().Format(cents.IntPart())
}

// formatLarge renders amounts whose centavos overflow int64, with the same
// separators go-money uses for BRL.
func formatLarge(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(int32(brl.Fraction))
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteString("-")
	}
	b.WriteString(brl.Grapheme)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(brl.Thousand)
		}
		b.WriteRune(r)
	}
	b.WriteString(brl.Decimal)
	b.WriteString(frac)
	return b.String()
}

// FormatPercentage formats a percentage value with two decimals and a comma
// separator, e.g. "15,53%".
func FormatPercentage(pct decimal.Decimal) string {
	return commaDecimal(pct.StringFixed(2)) + "%"
}

// FormatRate formats a fraction (0.075) as a percentage ("7,50%").
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Shift(2))
}

func commaDecimal(s string) string {
	out := []byte(s)
	for i := range out {
		if out[i] == '.' {
			out[i] = ','
		}
	}
	return string(out)
}
