package decimal

import (
	"math"

	"github.com/shopspring/decimal"
)

// FromFloat converts a float amount to a decimal. NaN and infinities, which
// decimal.NewFromFloat rejects with a panic, become zero.
func FromFloat(value float64) decimal.Decimal {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(value)
}

// Cents rounds a float amount to cents.
func Cents(value float64) decimal.Decimal {
	return FromFloat(value).Round(2)
}

// Dollars truncates a float amount toward zero to whole dollars.
func Dollars(value float64) decimal.Decimal {
	return FromFloat(value).Truncate(0)
}

// Percent converts a fraction to a percentage rounded to two places.
func Percent(fraction float64) decimal.Decimal {
	return FromFloat(fraction * 100).Round(2)
}
