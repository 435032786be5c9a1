package booking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestComputeDiscount(t *testing.T) {
	t.Run("percentage discount is taken from the total", func(t *testing.T) {
		got := ComputeDiscount(d("200"), DiscountTypePercentage, d("15"))
		assert.True(t, got.Equal(d("30")), "got %s", got)
	})

	t.Run("fixed discount is the value itself", func(t *testing.T) {
		got := ComputeDiscount(d("200"), DiscountTypeFixed, d("15"))
		assert.True(t, got.Equal(d("15")), "got %s", got)
	})

	t.Run("unknown discount type yields zero", func(t *testing.T) {
		got := ComputeDiscount(d("200"), DiscountType("bulk"), d("15"))
		assert.True(t, got.IsZero())
	})
}

func TestComputeDue(t *testing.T) {
	cases := []struct {
		name          string
		total         string
		discountType  DiscountType
		discountValue string
		advancePaid   string
		want          string
	}{
		{"fixed discount with partial advance", "100", DiscountTypeFixed, "20", "30", "50"},
		{"fixed discount fully covered", "100", DiscountTypeFixed, "20", "80", "0"},
		{"percentage discount", "100", DiscountTypePercentage, "10", "0", "90"},
		{"over-100 percent clamps to zero", "100", DiscountTypePercentage, "150", "0", "0"},
		{"fixed discount above total clamps to zero", "100", DiscountTypeFixed, "120", "0", "0"},
		{"overpaid advance clamps to zero", "100", DiscountTypeFixed, "0", "150", "0"},
		{"no discount no advance", "250.50", DiscountTypeFixed, "0", "0", "250.50"},
		{"all zero", "0", DiscountTypeFixed, "0", "0", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeDue(d(tc.total), tc.discountType, d(tc.discountValue), d(tc.advancePaid))
			assert.True(t, got.Equal(d(tc.want)), "got %s, want %s", got, tc.want)
			assert.False(t, got.IsNegative())
		})
	}

	t.Run("is a pure function", func(t *testing.T) {
		first := ComputeDue(d("100"), DiscountTypePercentage, d("12.5"), d("40"))
		second := ComputeDue(d("100"), DiscountTypePercentage, d("12.5"), d("40"))
		assert.True(t, first.Equal(second))
	})
}
