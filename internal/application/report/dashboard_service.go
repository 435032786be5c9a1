package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/booking"
	"github.com/harborstay/backend/internal/domain/report"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// upcomingWindowDays is how far ahead the dashboard's arrival list looks
const upcomingWindowDays = 7

// upcomingLimit caps the dashboard's arrival list
const upcomingLimit = 5

// DashboardService assembles the operational snapshot shown after
// sign-in: today's activity, all-time totals, occupancy and the next
// arrivals
type DashboardService struct {
	reportRepo  report.BookingReportRepository
	bookingRepo booking.BookingRepository
	roomRepo    booking.RoomRepository
	logger      *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	reportRepo report.BookingReportRepository,
	bookingRepo booking.BookingRepository,
	roomRepo booking.RoomRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		reportRepo:  reportRepo,
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		logger:      logger,
	}
}

// GetDashboard builds the dashboard for the current day. The underlying
// fetches run concurrently and any failure fails the snapshot.
func (s *DashboardService) GetDashboard(ctx context.Context, tenantID uuid.UUID) (*DashboardResponse, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	filter := report.Filter{
		TenantID:  tenantID,
		StartDate: today,
		EndDate:   today,
	}

	var (
		daily      []report.DailyStat
		occupancy  []report.OccupancyDay
		upcoming   []booking.Booking
		totals     *report.LifetimeTotals
		totalRooms int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		daily, err = s.reportRepo.GetDailyStats(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		occupancy, err = s.reportRepo.GetOccupancyReport(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		upcoming, err = s.bookingRepo.FindUpcoming(gctx, tenantID, today, today.AddDate(0, 0, upcomingWindowDays), upcomingLimit)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.reportRepo.GetLifetimeTotals(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		totalRooms, err = s.roomRepo.CountByTenant(gctx, tenantID)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Dashboard build failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("DASHBOARD_FAILED", "Failed to build dashboard")
	}

	response := &DashboardResponse{
		Date:          today,
		TodayRevenue:  decimal.Zero,
		TotalBookings: totals.TotalBookings,
		TotalRevenue:  totals.TotalRevenue,
		TotalRooms:    totalRooms,
		Upcoming:      s.toUpcoming(ctx, tenantID, upcoming),
	}

	if len(daily) > 0 {
		response.TodayBookings = daily[0].Bookings
		response.TodayRevenue = daily[0].Revenue
	}

	if len(occupancy) > 0 {
		response.RoomsBooked = occupancy[0].RoomsBooked
		response.OccupancyRate = occupancy[0].Rate
	} else if totalRooms > 0 {
		response.OccupancyRate = decimal.Zero
	}

	return response, nil
}

func (s *DashboardService) toUpcoming(ctx context.Context, tenantID uuid.UUID, bookings []booking.Booking) []UpcomingBooking {
	names := make(map[uuid.UUID]string)
	rows := make([]UpcomingBooking, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		name, ok := names[b.RoomID]
		if !ok {
			if room, err := s.roomRepo.FindByID(ctx, tenantID, b.RoomID); err == nil {
				name = room.Name
			}
			names[b.RoomID] = name
		}
		rows[i] = UpcomingBooking{
			ID:        b.ID,
			RoomID:    b.RoomID,
			RoomName:  name,
			GuestName: b.GuestName,
			CheckIn:   b.CheckIn,
			CheckOut:  b.CheckOut,
			IsPaid:    b.IsPaid,
		}
	}
	return rows
}
