package booking

import "github.com/shopspring/decimal"

// DiscountType selects how a booking's discount value is interpreted
type DiscountType string

const (
	DiscountTypeFixed      DiscountType = "fixed"
	DiscountTypePercentage DiscountType = "percentage"
)

// IsValid reports whether the discount type is known
func (d DiscountType) IsValid() bool {
	return d == DiscountTypeFixed || d == DiscountTypePercentage
}

var oneHundred = decimal.NewFromInt(100)

// ComputeDiscount returns the absolute discount amount for a booking.
// A percentage discount is taken from the total; a fixed discount is the
// value itself. An unknown discount type yields zero.
func ComputeDiscount(total decimal.Decimal, discountType DiscountType, discountValue decimal.Decimal) decimal.Decimal {
	switch discountType {
	case DiscountTypePercentage:
		return total.Mul(discountValue).Div(oneHundred)
	case DiscountTypeFixed:
		return discountValue
	}
	return decimal.Zero
}

// ComputeDue returns the amount still owed on a booking, floored at zero.
// Over-discounting or over-paying in advance never produces a negative
// due amount.
func ComputeDue(total decimal.Decimal, discountType DiscountType, discountValue, advancePaid decimal.Decimal) decimal.Decimal {
	due := total.Sub(ComputeDiscount(total, discountType, discountValue)).Sub(advancePaid)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}
