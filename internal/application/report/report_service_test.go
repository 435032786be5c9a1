package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/report"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockBookingReportRepository is a mock implementation of report.BookingReportRepository
type MockBookingReportRepository struct {
	mock.Mock
}

func (m *MockBookingReportRepository) GetDailyStats(ctx context.Context, filter report.Filter) ([]report.DailyStat, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.DailyStat), args.Error(1)
}

func (m *MockBookingReportRepository) GetRoomStats(ctx context.Context, filter report.Filter) ([]report.RoomStat, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.RoomStat), args.Error(1)
}

func (m *MockBookingReportRepository) GetFinancialSummary(ctx context.Context, filter report.Filter) (*report.FinancialSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.FinancialSummary), args.Error(1)
}

func (m *MockBookingReportRepository) GetDiscountReport(ctx context.Context, filter report.Filter) ([]report.DiscountBucket, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.DiscountBucket), args.Error(1)
}

func (m *MockBookingReportRepository) GetOccupancyReport(ctx context.Context, filter report.Filter) ([]report.OccupancyDay, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.OccupancyDay), args.Error(1)
}

func (m *MockBookingReportRepository) GetLifetimeTotals(ctx context.Context, tenantID uuid.UUID) (*report.LifetimeTotals, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.LifetimeTotals), args.Error(1)
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func day(offset int) time.Time {
	base := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestReportService_BuildReport(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	anyFilter := mock.AnythingOfType("report.Filter")

	t.Run("reduces the series into headline numbers", func(t *testing.T) {
		repo := new(MockBookingReportRepository)
		service := NewReportService(repo, zap.NewNop())

		daily := []report.DailyStat{
			{Date: day(-1), Bookings: 3, Revenue: d("300"), NewCustomers: 2},
			{Date: day(0), Bookings: 2, Revenue: d("150"), NewCustomers: 1},
		}
		rooms := []report.RoomStat{
			{RoomID: uuid.New(), RoomName: "Cabin A", TotalBookings: 4, TotalRevenue: d("350")},
			{RoomID: uuid.New(), RoomName: "Cabin B", TotalBookings: 1, TotalRevenue: d("100")},
		}
		financial := &report.FinancialSummary{
			TotalRevenue: d("450"),
			PaidBookings: 3,
		}

		repo.On("GetDailyStats", mock.Anything, anyFilter).Return(daily, nil)
		repo.On("GetRoomStats", mock.Anything, anyFilter).Return(rooms, nil)
		repo.On("GetFinancialSummary", mock.Anything, anyFilter).Return(financial, nil)
		repo.On("GetDiscountReport", mock.Anything, anyFilter).Return([]report.DiscountBucket{}, nil)
		repo.On("GetOccupancyReport", mock.Anything, anyFilter).Return([]report.OccupancyDay{}, nil)

		result, err := service.BuildReport(ctx, tenantID, ReportInput{Preset: report.PresetWeek})
		require.NoError(t, err)

		assert.Equal(t, int64(5), result.Summary.TotalBookings)
		assert.True(t, result.Summary.TotalRevenue.Equal(d("450")))
		assert.Equal(t, int64(3), result.Summary.NewCustomers)
		// Rooms booked counts rooms with activity, not booking volume
		assert.Equal(t, 2, result.Summary.TotalRoomsBooked)
		assert.Equal(t, int64(3), result.Financial.PaidBookings)
	})

	t.Run("one failing query fails the whole build", func(t *testing.T) {
		repo := new(MockBookingReportRepository)
		service := NewReportService(repo, zap.NewNop())

		repo.On("GetDailyStats", mock.Anything, anyFilter).Return([]report.DailyStat{}, nil)
		repo.On("GetRoomStats", mock.Anything, anyFilter).Return(nil, assert.AnError)
		repo.On("GetFinancialSummary", mock.Anything, anyFilter).Return(&report.FinancialSummary{}, nil)
		repo.On("GetDiscountReport", mock.Anything, anyFilter).Return([]report.DiscountBucket{}, nil)
		repo.On("GetOccupancyReport", mock.Anything, anyFilter).Return([]report.OccupancyDay{}, nil)

		_, err := service.BuildReport(ctx, tenantID, ReportInput{Preset: report.PresetToday})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "REPORT_FAILED", domainErr.Code)
	})

	t.Run("generation increases per build", func(t *testing.T) {
		repo := new(MockBookingReportRepository)
		service := NewReportService(repo, zap.NewNop())

		repo.On("GetDailyStats", mock.Anything, anyFilter).Return([]report.DailyStat{}, nil)
		repo.On("GetRoomStats", mock.Anything, anyFilter).Return([]report.RoomStat{}, nil)
		repo.On("GetFinancialSummary", mock.Anything, anyFilter).Return(&report.FinancialSummary{}, nil)
		repo.On("GetDiscountReport", mock.Anything, anyFilter).Return([]report.DiscountBucket{}, nil)
		repo.On("GetOccupancyReport", mock.Anything, anyFilter).Return([]report.OccupancyDay{}, nil)

		first, err := service.BuildReport(ctx, tenantID, ReportInput{Preset: report.PresetToday})
		require.NoError(t, err)
		second, err := service.BuildReport(ctx, tenantID, ReportInput{Preset: report.PresetToday})
		require.NoError(t, err)

		assert.Less(t, first.Generation, second.Generation)
		assert.Equal(t, second.Generation, service.Generation())
	})

	t.Run("named preset recomputes the range from today", func(t *testing.T) {
		repo := new(MockBookingReportRepository)
		service := NewReportService(repo, zap.NewNop())

		var captured report.Filter
		repo.On("GetDailyStats", mock.Anything, mock.MatchedBy(func(f report.Filter) bool {
			captured = f
			return true
		})).Return([]report.DailyStat{}, nil)
		repo.On("GetRoomStats", mock.Anything, anyFilter).Return([]report.RoomStat{}, nil)
		repo.On("GetFinancialSummary", mock.Anything, anyFilter).Return(&report.FinancialSummary{}, nil)
		repo.On("GetDiscountReport", mock.Anything, anyFilter).Return([]report.DiscountBucket{}, nil)
		repo.On("GetOccupancyReport", mock.Anything, anyFilter).Return([]report.OccupancyDay{}, nil)

		// Stale explicit dates are overwritten by the preset
		_, err := service.BuildReport(ctx, tenantID, ReportInput{
			Preset:    report.PresetWeek,
			StartDate: day(-90),
			EndDate:   day(-60),
		})
		require.NoError(t, err)

		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		assert.Equal(t, today, captured.EndDate)
		assert.Equal(t, today.AddDate(0, 0, -7), captured.StartDate)
	})

	t.Run("custom preset requires both dates", func(t *testing.T) {
		repo := new(MockBookingReportRepository)
		service := NewReportService(repo, zap.NewNop())

		_, err := service.BuildReport(ctx, tenantID, ReportInput{
			Preset:    report.PresetCustom,
			StartDate: day(-7),
		})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_DATES", domainErr.Code)
		repo.AssertNotCalled(t, "GetDailyStats", mock.Anything, mock.Anything)
	})

	t.Run("custom preset keeps the explicit dates", func(t *testing.T) {
		repo := new(MockBookingReportRepository)
		service := NewReportService(repo, zap.NewNop())

		var captured report.Filter
		repo.On("GetDailyStats", mock.Anything, mock.MatchedBy(func(f report.Filter) bool {
			captured = f
			return true
		})).Return([]report.DailyStat{}, nil)
		repo.On("GetRoomStats", mock.Anything, anyFilter).Return([]report.RoomStat{}, nil)
		repo.On("GetFinancialSummary", mock.Anything, anyFilter).Return(&report.FinancialSummary{}, nil)
		repo.On("GetDiscountReport", mock.Anything, anyFilter).Return([]report.DiscountBucket{}, nil)
		repo.On("GetOccupancyReport", mock.Anything, anyFilter).Return([]report.OccupancyDay{}, nil)

		_, err := service.BuildReport(ctx, tenantID, ReportInput{
			Preset:    report.PresetCustom,
			StartDate: day(-30),
			EndDate:   day(-14),
		})
		require.NoError(t, err)
		assert.Equal(t, day(-30), captured.StartDate)
		assert.Equal(t, day(-14), captured.EndDate)
	})
}
