// Package money converts between decimal currency amounts and integer
// minor units (paise). All arithmetic on bill totals happens in paise;
// decimals appear only at the API boundary.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToPaise converts a decimal rupee amount to integer paise,
// rounding half away from zero.
func ToPaise(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromPaise converts integer paise back to a decimal rupee amount.
func FromPaise(paise int64) decimal.Decimal {
	return decimal.New(paise, -2)
}

// FromFloat converts a float rupee amount (e.g. a JSON number) to paise.
func FromFloat(amount float64) int64 {
	return ToPaise(decimal.NewFromFloat(amount))
}

// Float converts paise to a float rupee amount for JSON responses.
func Float(paise int64) float64 {
	f, _ := FromPaise(paise).Float64()
	return f
}

// ParsePaise parses a raw user-typed amount into paise.
// Empty, unparseable or negative input is treated as zero.
func ParsePaise(raw string) int64 {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return 0
	}
	return ToPaise(d)
}

// Format renders paise as a fixed two-decimal string, e.g. "260.00".
func Format(paise int64) string {
	return FromPaise(paise).StringFixed(2)
}
