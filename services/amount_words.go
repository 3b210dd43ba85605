package services

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	crore    = 10000000
	lakh     = 100000
	thousand = 1000
)

var bigCrore = big.NewInt(crore)

// NumberToWords converts the integer part of an amount to Indian English words.
// Example: 125000 → "One Lakh Twenty Five Thousand Only".
// Zero and negative amounts yield "Zero". The integer part is not bounded.
//
// Known limitation: crore counts of 100 and above are spelled with the same
// cascade ("One Hundred Crore", "One Thousand Crore"). The mobile app this
// replaces spelled such counts with its two-digit speller and printed
// different (garbled) words; the cascade is kept rather than guessing what
// those words were meant to be.
func NumberToWords(amount decimal.Decimal) string {
	n := amount.Floor().BigInt()
	if n.Sign() <= 0 {
		return "Zero"
	}
	return convertToIndianWords(n) + " Only"
}

// convertToIndianWords renders n > 0 as space-joined magnitude groups.
func convertToIndianWords(n *big.Int) string {
	if n.Cmp(bigCrore) < 0 {
		return convertBelowCrore(n.Int64())
	}
	crores, rest := new(big.Int).QuoRem(n, bigCrore, new(big.Int))
	var parts []string
	if crores.IsInt64() && crores.Int64() < 100 {
		parts = append(parts, convertUnder100(crores.Int64())+" Crore")
	} else {
		parts = append(parts, convertToIndianWords(crores)+" Crore")
	}
	if rest.Sign() > 0 {
		parts = append(parts, convertBelowCrore(rest.Int64()))
	}
	return strings.Join(parts, " ")
}

// convertBelowCrore renders 0 < n < 1 crore.
func convertBelowCrore(n int64) string {
	var parts []string

	if n >= lakh {
		parts = append(parts, convertUnder100(n/lakh)+" Lakh")
		n %= lakh
	}

	if n >= thousand {
		parts = append(parts, convertUnder100(n/thousand)+" Thousand")
		n %= thousand
	}

	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}

	if n > 0 {
		parts = append(parts, convertUnder100(n))
	}

	return strings.Join(parts, " ")
}

func convertUnder100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
