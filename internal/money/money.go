// Package money carries currency amounts as integer minor units and does the
// few float conversions the valuation models need through decimal arithmetic,
// so rounding is half-away-from-zero and never drifts between runs.
package money

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest amount in minor units (one quadrillion major
// units) accepted on input or reported as a result
const MaxAmount int64 = 100_000_000_000_000_000

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// InRange reports whether v lies within ±MaxAmount
func InRange(v int64) bool {
	return v <= MaxAmount && v >= -MaxAmount
}

// toInt rounds d and converts it, saturating at the int64 limits
func toInt(d decimal.Decimal) int64 {
	d = d.Round(0)
	switch {
	case d.GreaterThan(maxInt64):
		return math.MaxInt64
	case d.LessThan(minInt64):
		return math.MinInt64
	}
	return d.IntPart()
}

// FromFloat rounds a float amount already expressed in minor units.
// Infinities saturate and NaN is 0.
func FromFloat(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxInt64
	case math.IsInf(v, -1):
		return math.MinInt64
	}
	return toInt(decimal.NewFromFloat(v))
}

// Scale multiplies an amount by a factor and rounds to the nearest minor unit
func Scale(amount int64, factor float64) int64 {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return FromFloat(float64(amount) * factor)
	}
	return toInt(decimal.NewFromInt(amount).Mul(decimal.NewFromFloat(factor)))
}

// Add returns a+b, saturating at the int64 limits
func Add(a, b int64) int64 {
	return toInt(decimal.NewFromInt(a).Add(decimal.NewFromInt(b)))
}

// Sub returns a-b, saturating at the int64 limits
func Sub(a, b int64) int64 {
	return toInt(decimal.NewFromInt(a).Sub(decimal.NewFromInt(b)))
}

// WeightedSum returns round(Σ weights[i] × amounts[i]). The sum is accumulated
// exactly before the single final rounding.
func WeightedSum(amounts []int64, weights []float64) int64 {
	total := decimal.Zero
	for i, a := range amounts {
		total = total.Add(decimal.NewFromInt(a).Mul(decimal.NewFromFloat(weights[i])))
	}
	return toInt(total)
}

// Ratio returns num/den as a float, or 0 when den is zero
func Ratio(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	f, _ := decimal.NewFromInt(num).Div(decimal.NewFromInt(den)).Float64()
	return f
}

// Format renders minor units as a major-unit decimal string ("1234.56")
func Format(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}

// FormatFloat renders a float losslessly for assumption trails
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatInt renders an integer for assumption trails
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
