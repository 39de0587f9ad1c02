package domain

import (
	"fmt"

	"github.com/govalues/decimal"
	"github.com/govalues/money"
)

// DisplayScale is the number of decimal places a cost is shown with.
const DisplayScale = 2

// ParseCurrency resolves an ISO 4217 code such as "PLN".
func ParseCurrency(code string) (money.Currency, error) {
	curr, err := money.ParseCurr(code)
	if err != nil {
		return curr, fmt.Errorf("unknown currency %q: %w", code, err)
	}
	return curr, nil
}

// NewCost rounds d half away from zero to DisplayScale places and
// denominates it in curr. The unrounded value is left untouched.
func NewCost(curr money.Currency, d decimal.Decimal) (money.Amount, error) {
	rounded, err := RoundHalfUp(d, DisplayScale)
	if err != nil {
		return money.Amount{}, err
	}
	amt, err := money.NewAmountFromDecimal(curr, rounded)
	if err != nil {
		return money.Amount{}, fmt.Errorf("%w: %v", ErrOverflow, err)
	}
	return amt, nil
}

// FormatCost renders an amount as "<value> <code>" with exactly
// DisplayScale fractional digits, e.g. "48.75 PLN".
func FormatCost(a money.Amount) string {
	return a.Decimal().Rescale(DisplayScale).String() + " " + a.Curr().Code()
}

// RoundHalfUp rounds d to scale places, resolving ties away from zero.
// The result is padded with trailing zeros up to scale.
func RoundHalfUp(d decimal.Decimal, scale int) (decimal.Decimal, error) {
	if d.Scale() <= scale {
		return d.Rescale(scale), nil
	}
	half := decimal.MustNew(5, scale+1)
	if d.IsNeg() {
		half = half.Neg()
	}
	sum, err := d.Add(half)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrOverflow, err)
	}
	return sum.Trunc(scale).Rescale(scale), nil
}
