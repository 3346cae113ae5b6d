package salesbook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// The derived-field calculator. Pure functions, no rounding: two-decimal
// rounding is a display concern and never alters stored values.

// TotalCost computes weight × unitCost. Both operands must be ≥ 0 (zero is
// legal and yields a zero cost); a negative operand is ErrInvalidInput.
func TotalCost(weight, unitCost decimal.Decimal) (decimal.Decimal, error) {
	if weight.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: weight %s is negative", ErrInvalidInput, weight)
	}
	if unitCost.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: unit cost %s is negative", ErrInvalidInput, unitCost)
	}
	return weight.Mul(unitCost), nil
}

// ProfitBeforeRefund computes sellPrice − totalCost. The result may be
// negative: a loss is representable and reported as-is.
func ProfitBeforeRefund(sellPrice, totalCost decimal.Decimal) decimal.Decimal {
	return sellPrice.Sub(totalCost)
}

// ProfitAfterRefund computes the refund-adjusted profit.
//
// With no refund applied it is max(0, profitBefore); with a refund r it is
// max(0, profitBefore − r). A refund can only reduce realized profit to
// zero, never below.
func ProfitAfterRefund(profitBefore, refund decimal.Decimal, refunded bool) decimal.Decimal {
	p := profitBefore
	if refunded {
		p = p.Sub(refund)
	}
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}
