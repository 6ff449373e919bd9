package money

import (
	"errors"
	"math"
)

var ErrInvalidAmount = errors.New("invalid amount")

// MaxAmount caps a single entry. Anything above this is almost certainly
// client garbage rather than a real transaction.
const MaxAmount = 1e12

// Validate rejects non-finite, non-positive and absurdly large amounts.
func Validate(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrInvalidAmount
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > MaxAmount {
		return ErrInvalidAmount
	}
	return nil
}

// Round2 normalizes an amount to two decimal places before it is stored.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
