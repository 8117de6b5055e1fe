package core

import (
	"math"

	"github.com/shopspring/decimal"
)

// PricePlaces is the number of decimals kept on bar prices.
const PricePlaces = 4

var hundred = decimal.NewFromInt(100)

// -----------------------------------------------------------------------------

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// -----------------------------------------------------------------------------

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// -----------------------------------------------------------------------------

// CalculateChange returns current-previous and, when previous is non-zero,
// the change as a percent of previous. A nil percent means undefined.
func CalculateChange(current, previous float64) (float64, *float64) {
	cur := decimal.NewFromFloat(current)
	prev := decimal.NewFromFloat(previous)

	change, _ := cur.Sub(prev).Float64()
	if prev.IsZero() {
		return change, nil
	}

	pct, _ := cur.Sub(prev).Div(prev).Mul(hundred).Float64()
	return change, &pct
}

// -----------------------------------------------------------------------------

// Ratio divides numerator by denominator, optionally as a percent.
// ok is false for a zero or non-finite operand.
func Ratio(numerator, denominator float64, asPercent bool) (float64, bool) {
	if !IsFinite(numerator) || !IsFinite(denominator) || denominator == 0 {
		return 0, false
	}

	q := decimal.NewFromFloat(numerator).Div(decimal.NewFromFloat(denominator))
	if asPercent {
		q = q.Mul(hundred)
	}
	f, _ := q.Float64()
	return f, IsFinite(f)
}

// -----------------------------------------------------------------------------

// FractionToPercent converts 0.125 to 12.5.
func FractionToPercent(v float64) (float64, bool) {
	if !IsFinite(v) {
		return 0, false
	}
	f, _ := decimal.NewFromFloat(v).Mul(hundred).Float64()
	return f, true
}
