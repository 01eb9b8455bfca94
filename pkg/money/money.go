// Package money implements the rounding and formatting policy for monetary
// figures.
//
// Every derived summary figure (subtotal, tax, total) passes through Round
// before it is displayed. Individual line amounts are shown as supplied and
// are never rounded here.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/billforge/billforge/pkg/errors"
)

// DefaultStep is the default rounding precision: one hundredth of a unit.
var DefaultStep = decimal.New(1, -2)

// Round returns v rounded to the nearest multiple of step.
// Ties round away from zero (round-half-up), never half-even.
// Round is idempotent: Round(Round(v, s), s) == Round(v, s).
//
// The step is a decimal quantity rather than a digit count, so any
// denomination granularity works: 0.01 for cents, 0.25 for quarters, 5 for
// cash rounding.
func Round(v, step decimal.Decimal) decimal.Decimal {
	if step.IsZero() {
		return v
	}
	// Scale into step units, round half away from zero, scale back.
	q := v.DivRound(step, 18)
	return q.Round(0).Mul(step)
}

// Format2 renders d with exactly two decimal places, the display format for
// all monetary cells.
func Format2(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Parse converts a string to a decimal. A value that is not representable as
// a decimal is a caller error and is surfaced immediately with
// ErrCodeInvalidAmount rather than producing a wrong number downstream.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrap(errors.ErrCodeInvalidAmount, err, "not a decimal: %q", s)
	}
	return d, nil
}
