package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// ReportInput selects the period and filters for a report build. Custom
// presets require both dates; the named presets recompute the range from
// the current day.
type ReportInput struct {
	Preset     report.Preset
	StartDate  time.Time
	EndDate    time.Time
	RoomID     *uuid.UUID
	IsPaid     *bool
	Discounted *bool
}

// ReportSummary is the headline reduction over the report series.
// TotalRoomsBooked counts distinct rooms with activity, not booking
// volume.
type ReportSummary struct {
	TotalBookings    int64
	TotalRevenue     decimal.Decimal
	NewCustomers     int64
	TotalRoomsBooked int
}

// ReportResponse is a fully built report. Generation increases with
// every build so callers can drop responses that were overtaken by a
// newer request.
type ReportResponse struct {
	Generation uint64
	Preset     report.Preset
	StartDate  time.Time
	EndDate    time.Time
	Summary    ReportSummary
	Daily      []report.DailyStat
	Rooms      []report.RoomStat
	Financial  report.FinancialSummary
	Discounts  []report.DiscountBucket
	Occupancy  []report.OccupancyDay
}

// UpcomingBooking is one row of the dashboard's arrival list
type UpcomingBooking struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	RoomName  string
	GuestName string
	CheckIn   time.Time
	CheckOut  time.Time
	IsPaid    bool
}

// DashboardResponse is the operational snapshot for today, paired with
// the tenant's all-time booking count and revenue
type DashboardResponse struct {
	Date          time.Time
	TodayBookings int64
	TodayRevenue  decimal.Decimal
	TotalBookings int64
	TotalRevenue  decimal.Decimal
	RoomsBooked   int64
	TotalRooms    int64
	OccupancyRate decimal.Decimal
	Upcoming      []UpcomingBooking
}
