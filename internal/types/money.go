package types

import (
	"github.com/shopspring/decimal"
)

// RoundCurrency rounds a monetary amount to 2 decimal places.
// decimal.Round rounds half away from zero, which is the rounding rule for
// every currency amount in this system.
func RoundCurrency(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// ClampToZero returns the amount, or zero if the amount is negative.
// Intermediate discount math is clamped so a discount can never push a
// running amount below zero.
func ClampToZero(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
