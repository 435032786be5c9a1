package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyStat is a read model of booking activity for one calendar day
type DailyStat struct {
	Date         time.Time       `json:"date"`
	Bookings     int64           `json:"bookings"`
	Revenue      decimal.Decimal `json:"revenue"`
	NewCustomers int64           `json:"new_customers"`
}

// RoomStat is a read model of booking activity for one room over a period
type RoomStat struct {
	RoomID        uuid.UUID       `json:"room_id"`
	RoomName      string          `json:"room_name"`
	TotalBookings int64           `json:"total_bookings"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// FinancialSummary is a read model of the money flow over a period
type FinancialSummary struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalDiscount  decimal.Decimal `json:"total_discount"`
	TotalAdvance   decimal.Decimal `json:"total_advance"`
	TotalDue       decimal.Decimal `json:"total_due"`
	PaidBookings   int64           `json:"paid_bookings"`
	UnpaidBookings int64           `json:"unpaid_bookings"`
}

// DiscountBucket is a read model of discount usage by discount type
type DiscountBucket struct {
	DiscountType  string          `json:"discount_type"`
	Bookings      int64           `json:"bookings"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
}

// OccupancyDay is a read model of room occupancy for one calendar day.
// The rate is pre-aggregated by the query, callers never recompute it.
type OccupancyDay struct {
	Date        time.Time       `json:"date"`
	RoomsBooked int64           `json:"rooms_booked"`
	TotalRooms  int64           `json:"total_rooms"`
	Rate        decimal.Decimal `json:"rate"`
}

// LifetimeTotals is a read model of a tenant's all-time booking volume
type LifetimeTotals struct {
	TotalBookings int64           `json:"total_bookings"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// BookingReportRepository defines the aggregation queries behind the
// reporting screens. Each query is independent and read-only, callers
// may issue them concurrently.
type BookingReportRepository interface {
	// GetDailyStats returns per-day booking counts, revenue and new
	// customer counts for the period
	GetDailyStats(ctx context.Context, filter Filter) ([]DailyStat, error)

	// GetRoomStats returns per-room booking counts and revenue for the
	// period, one row per room that had at least one booking
	GetRoomStats(ctx context.Context, filter Filter) ([]RoomStat, error)

	// GetFinancialSummary returns the aggregated money flow for the period
	GetFinancialSummary(ctx context.Context, filter Filter) (*FinancialSummary, error)

	// GetDiscountReport returns discount usage grouped by discount type
	GetDiscountReport(ctx context.Context, filter Filter) ([]DiscountBucket, error)

	// GetOccupancyReport returns the per-day occupancy rate for the period
	GetOccupancyReport(ctx context.Context, filter Filter) ([]OccupancyDay, error)

	// GetLifetimeTotals returns the tenant's booking count and revenue
	// across all time, unbounded by any period
	GetLifetimeTotals(ctx context.Context, tenantID uuid.UUID) (*LifetimeTotals, error)
}

// ConsoleReportRepository defines the aggregations behind the super
// admin console. Unlike BookingReportRepository these queries may cross
// tenant boundaries.
type ConsoleReportRepository interface {
	// GetLifetimeTotals returns one tenant's all-time booking volume
	GetLifetimeTotals(ctx context.Context, tenantID uuid.UUID) (*LifetimeTotals, error)

	// GetPlatformTotals returns the booking count and revenue across
	// every tenant on the platform
	GetPlatformTotals(ctx context.Context) (*LifetimeTotals, error)
}
