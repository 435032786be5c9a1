package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for date-only query parameters
const dateLayout = "2006-01-02"

// toDecimal converts a float64 to a decimal.Decimal
func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// parseDateParam parses an optional date-only query parameter
func parseDateParam(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, value)
}
