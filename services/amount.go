package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	maxAmountLen      = 32
	maxAmountIntegers = 15
)

// ParseAmount parses a user-entered amount. Empty or unparsable input is
// treated as zero so a half-typed value never blocks data entry.
// Exponent notation, more than 15 integer digits and inputs longer than 32
// characters are unparsable too.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxAmountLen || strings.ContainsAny(s, "eE") {
		return decimal.Zero
	}
	integers, _, _ := strings.Cut(strings.TrimLeft(s, "+-"), ".")
	if len(strings.TrimLeft(integers, "0")) > maxAmountIntegers {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// RoundAmount rounds to 2 decimal places, halves away from zero.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatAmount renders an amount as a fixed two-decimal string ("33102.00").
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// sumAmounts parses and adds raw amount strings.
func sumAmounts(values ...string) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(ParseAmount(v))
	}
	return sum
}
