package config

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest amount ParseAmount accepts (one quadrillion).
var MaxAmount = decimal.New(1, 15)

// ParseAmount converts user input into a non-negative decimal. It accepts
// "1234.56", "1.234,56", "1234,56", "1.234.567" and an optional "R$"
// prefix. Exponents, negatives, values above MaxAmount and anything
// unparsable yield zero; it never returns an error.
func ParseAmount(s string) decimal.Decimal {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(v, "R$")
	v = strings.ReplaceAll(v, " ", "")
	if v == "" || strings.ContainsAny(v, "eE") {
		return decimal.Zero
	}

	switch {
	case strings.Contains(v, ","):
		// pt-BR: dots group thousands, the comma is the decimal separator
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	case strings.Count(v, ".") > 1:
		// "1.234.567": dots can only be thousands separators
		groups := strings.Split(v, ".")
		for _, g := range groups[1:] {
			if len(g) != 3 {
				return decimal.Zero
			}
		}
		v = strings.Join(groups, "")
	}

	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() || d.GreaterThan(MaxAmount) {
		return decimal.Zero
	}
	return d
}

// ParsePercent is ParseAmount with an optional trailing "%".
func ParsePercent(s string) decimal.Decimal {
	return ParseAmount(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

// ParseCount converts user input into a non-negative integer, zero on
// garbage. Fractions are truncated.
func ParseCount(s string) int {
	v := strings.TrimSpace(s)
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	d := ParseAmount(v)
	if !d.IsPositive() || d.GreaterThan(decimal.NewFromInt(1<<31-1)) {
		return 0
	}
	return int(d.IntPart())
}
