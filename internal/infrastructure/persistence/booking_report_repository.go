package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// discountExpr computes the effective discount of a booking row.
// Percentage discounts apply to the total, fixed discounts are taken
// as-is.
const discountExpr = `CASE WHEN b.discount_type = 'percentage'
	THEN b.total_amount * b.discount_value / 100
	ELSE b.discount_value END`

// dueExpr computes the outstanding amount of a booking row, floored at
// zero so overpayments never show as negative dues.
const dueExpr = `GREATEST(b.total_amount - (` + discountExpr + `) - b.advance_paid, 0)`

// GormBookingReportRepository implements BookingReportRepository using GORM
type GormBookingReportRepository struct {
	db *gorm.DB
}

// NewGormBookingReportRepository creates a new GormBookingReportRepository
func NewGormBookingReportRepository(db *gorm.DB) *GormBookingReportRepository {
	return &GormBookingReportRepository{db: db}
}

// GetDailyStats returns per-day booking counts, revenue and new customer
// counts for the period. A customer is new on the day of their first
// booking with the tenant.
func (r *GormBookingReportRepository) GetDailyStats(ctx context.Context, filter report.Filter) ([]report.DailyStat, error) {
	type dailyResult struct {
		Date         time.Time
		Bookings     int64
		Revenue      decimal.Decimal
		NewCustomers int64
	}

	var results []dailyResult

	err := r.scoped(ctx, filter).
		Select(`
			DATE(b.check_in) as date,
			COUNT(b.id) as bookings,
			COALESCE(SUM(b.total_amount), 0) as revenue,
			COUNT(b.id) FILTER (WHERE NOT EXISTS (
				SELECT 1 FROM bookings prev
				WHERE prev.tenant_id = b.tenant_id
				AND prev.guest_name = b.guest_name
				AND prev.check_in < b.check_in
			)) as new_customers
		`).
		Group("DATE(b.check_in)").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	stats := make([]report.DailyStat, len(results))
	for i, row := range results {
		stats[i] = report.DailyStat{
			Date:         row.Date,
			Bookings:     row.Bookings,
			Revenue:      row.Revenue,
			NewCustomers: row.NewCustomers,
		}
	}
	return stats, nil
}

// GetRoomStats returns per-room booking counts and revenue for the
// period, one row per room that had at least one booking
func (r *GormBookingReportRepository) GetRoomStats(ctx context.Context, filter report.Filter) ([]report.RoomStat, error) {
	type roomResult struct {
		RoomID        uuid.UUID
		RoomName      string
		TotalBookings int64
		TotalRevenue  decimal.Decimal
	}

	var results []roomResult

	err := r.scoped(ctx, filter).
		Select(`
			b.room_id,
			COALESCE(rm.name, '') as room_name,
			COUNT(b.id) as total_bookings,
			COALESCE(SUM(b.total_amount), 0) as total_revenue
		`).
		Joins("LEFT JOIN rooms rm ON rm.id = b.room_id").
		Group("b.room_id, rm.name").
		Order("total_revenue DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	stats := make([]report.RoomStat, len(results))
	for i, row := range results {
		stats[i] = report.RoomStat{
			RoomID:        row.RoomID,
			RoomName:      row.RoomName,
			TotalBookings: row.TotalBookings,
			TotalRevenue:  row.TotalRevenue,
		}
	}
	return stats, nil
}

// GetFinancialSummary returns the aggregated money flow for the period
func (r *GormBookingReportRepository) GetFinancialSummary(ctx context.Context, filter report.Filter) (*report.FinancialSummary, error) {
	type summaryResult struct {
		TotalRevenue   decimal.Decimal
		TotalDiscount  decimal.Decimal
		TotalAdvance   decimal.Decimal
		TotalDue       decimal.Decimal
		PaidBookings   int64
		UnpaidBookings int64
	}

	var result summaryResult

	err := r.scoped(ctx, filter).
		Select(`
			COALESCE(SUM(b.total_amount), 0) as total_revenue,
			COALESCE(SUM(` + discountExpr + `), 0) as total_discount,
			COALESCE(SUM(b.advance_paid), 0) as total_advance,
			COALESCE(SUM(` + dueExpr + `), 0) as total_due,
			COUNT(b.id) FILTER (WHERE b.is_paid) as paid_bookings,
			COUNT(b.id) FILTER (WHERE NOT b.is_paid) as unpaid_bookings
		`).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &report.FinancialSummary{
		TotalRevenue:   result.TotalRevenue,
		TotalDiscount:  result.TotalDiscount,
		TotalAdvance:   result.TotalAdvance,
		TotalDue:       result.TotalDue,
		PaidBookings:   result.PaidBookings,
		UnpaidBookings: result.UnpaidBookings,
	}, nil
}

// GetDiscountReport returns discount usage grouped by discount type.
// Bookings without a discount are excluded.
func (r *GormBookingReportRepository) GetDiscountReport(ctx context.Context, filter report.Filter) ([]report.DiscountBucket, error) {
	type bucketResult struct {
		DiscountType  string
		Bookings      int64
		TotalDiscount decimal.Decimal
	}

	var results []bucketResult

	err := r.scoped(ctx, filter).
		Select(`
			b.discount_type,
			COUNT(b.id) as bookings,
			COALESCE(SUM(`+discountExpr+`), 0) as total_discount
		`).
		Where("b.discount_value > 0").
		Group("b.discount_type").
		Order("total_discount DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	buckets := make([]report.DiscountBucket, len(results))
	for i, row := range results {
		buckets[i] = report.DiscountBucket{
			DiscountType:  row.DiscountType,
			Bookings:      row.Bookings,
			TotalDiscount: row.TotalDiscount,
		}
	}
	return buckets, nil
}

// GetOccupancyReport returns the per-day occupancy rate for the period.
// A room counts as booked on every night of a stay, not just the
// check-in day; the rate is computed in SQL against the tenant's
// current room count.
func (r *GormBookingReportRepository) GetOccupancyReport(ctx context.Context, filter report.Filter) ([]report.OccupancyDay, error) {
	type occupancyResult struct {
		Date        time.Time
		RoomsBooked int64
		TotalRooms  int64
		Rate        decimal.Decimal
	}

	var results []occupancyResult

	query := r.db.WithContext(ctx).
		Table("generate_series(?::date, ?::date, '1 day') as day", filter.StartDate, filter.EndDate).
		Select(`
			day::date as date,
			COUNT(DISTINCT b.room_id) as rooms_booked,
			(SELECT COUNT(*) FROM rooms WHERE tenant_id = ?) as total_rooms,
			CASE WHEN (SELECT COUNT(*) FROM rooms WHERE tenant_id = ?) > 0
				THEN ROUND(COUNT(DISTINCT b.room_id) * 100.0 / (SELECT COUNT(*) FROM rooms WHERE tenant_id = ?), 2)
				ELSE 0 END as rate
		`, filter.TenantID, filter.TenantID, filter.TenantID).
		Joins("LEFT JOIN bookings b ON b.tenant_id = ? AND b.check_in <= day AND b.check_out > day", filter.TenantID).
		Group("day").
		Order("day ASC")

	if err := query.Scan(&results).Error; err != nil {
		return nil, err
	}

	days := make([]report.OccupancyDay, len(results))
	for i, row := range results {
		days[i] = report.OccupancyDay{
			Date:        row.Date,
			RoomsBooked: row.RoomsBooked,
			TotalRooms:  row.TotalRooms,
			Rate:        row.Rate,
		}
	}
	return days, nil
}

// GetLifetimeTotals returns the tenant's booking count and revenue
// across all time
func (r *GormBookingReportRepository) GetLifetimeTotals(ctx context.Context, tenantID uuid.UUID) (*report.LifetimeTotals, error) {
	type totalsResult struct {
		TotalBookings int64
		TotalRevenue  decimal.Decimal
	}

	var result totalsResult

	err := r.db.WithContext(ctx).
		Table("bookings b").
		Where("b.tenant_id = ?", tenantID).
		Select(`
			COUNT(b.id) as total_bookings,
			COALESCE(SUM(b.total_amount), 0) as total_revenue
		`).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &report.LifetimeTotals{
		TotalBookings: result.TotalBookings,
		TotalRevenue:  result.TotalRevenue,
	}, nil
}

// GetPlatformTotals returns the booking count and revenue across every
// tenant
func (r *GormBookingReportRepository) GetPlatformTotals(ctx context.Context) (*report.LifetimeTotals, error) {
	type totalsResult struct {
		TotalBookings int64
		TotalRevenue  decimal.Decimal
	}

	var result totalsResult

	err := r.db.WithContext(ctx).
		Table("bookings b").
		Select(`
			COUNT(b.id) as total_bookings,
			COALESCE(SUM(b.total_amount), 0) as total_revenue
		`).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &report.LifetimeTotals{
		TotalBookings: result.TotalBookings,
		TotalRevenue:  result.TotalRevenue,
	}, nil
}

// scoped builds the base bookings query with the filter's tenant, date
// range and optional attributes applied. The range matches on check-in
// and the end date is inclusive.
func (r *GormBookingReportRepository) scoped(ctx context.Context, filter report.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Table("bookings b").
		Where("b.tenant_id = ?", filter.TenantID).
		Where("b.check_in >= ? AND b.check_in < ?", filter.StartDate, filter.EndDate.AddDate(0, 0, 1))

	if filter.RoomID != nil {
		query = query.Where("b.room_id = ?", *filter.RoomID)
	}
	if filter.IsPaid != nil {
		query = query.Where("b.is_paid = ?", *filter.IsPaid)
	}
	if filter.Discounted != nil {
		if *filter.Discounted {
			query = query.Where("b.discount_value > 0")
		} else {
			query = query.Where("b.discount_value = 0")
		}
	}

	return query
}

// Ensure GormBookingReportRepository implements BookingReportRepository
// and the console's ConsoleReportRepository
var _ report.BookingReportRepository = (*GormBookingReportRepository)(nil)
var _ report.ConsoleReportRepository = (*GormBookingReportRepository)(nil)
