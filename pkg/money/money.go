// Package money centralizes currency rounding so every component that touches
// dollars rounds the same way. Balances are held as shopspring decimals; the
// helpers here are the only place rounding precision is chosen.
package money

import "github.com/shopspring/decimal"

// RoundCents rounds a currency amount to the cent (2 decimal places, half-up).
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundDollars rounds a currency amount to the whole dollar. Portfolio balances
// and simulated year-end cash are kept at dollar granularity.
func RoundDollars(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// FromFloat converts a float64 amount (e.g. parsed from JSON) to a decimal.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// Percent2 expresses a ratio as a percentage rounded to 2 decimal places.
func Percent2(ratio decimal.Decimal) decimal.Decimal {
	return ratio.Mul(decimal.NewFromInt(100)).Round(2)
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// ClampNonNegative floors an amount at zero.
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return d
}
