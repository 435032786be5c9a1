package report

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/report"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReportService builds booking reports by fanning out the five
// aggregation queries concurrently. One failing query fails the whole
// build; a partial report would silently misreport revenue.
type ReportService struct {
	reportRepo report.BookingReportRepository
	logger     *zap.Logger
	generation atomic.Uint64
}

// NewReportService creates a new report service
func NewReportService(reportRepo report.BookingReportRepository, logger *zap.Logger) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		logger:     logger,
	}
}

// BuildReport runs all aggregation queries for the period and reduces
// them into one response
func (s *ReportService) BuildReport(ctx context.Context, tenantID uuid.UUID, input ReportInput) (*ReportResponse, error) {
	filter, err := s.buildFilter(tenantID, input)
	if err != nil {
		return nil, err
	}

	generation := s.generation.Add(1)
	started := time.Now()

	var (
		daily     []report.DailyStat
		rooms     []report.RoomStat
		financial *report.FinancialSummary
		discounts []report.DiscountBucket
		occupancy []report.OccupancyDay
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		daily, err = s.reportRepo.GetDailyStats(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		rooms, err = s.reportRepo.GetRoomStats(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		financial, err = s.reportRepo.GetFinancialSummary(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		discounts, err = s.reportRepo.GetDiscountReport(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		occupancy, err = s.reportRepo.GetOccupancyReport(gctx, filter)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Report build failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("REPORT_FAILED", "Failed to build report")
	}

	response := &ReportResponse{
		Generation: generation,
		Preset:     input.Preset,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Summary:    summarize(daily, rooms),
		Daily:      daily,
		Rooms:      rooms,
		Discounts:  discounts,
		Occupancy:  occupancy,
	}
	if financial != nil {
		response.Financial = *financial
	}

	s.logger.Info("Report built",
		zap.String("tenant_id", tenantID.String()),
		zap.String("preset", string(input.Preset)),
		zap.Duration("elapsed", time.Since(started)))

	return response, nil
}

// Generation returns the number of report builds issued so far. Callers
// compare it against a response's Generation to detect overtaken
// results.
func (s *ReportService) Generation() uint64 {
	return s.generation.Load()
}

func (s *ReportService) buildFilter(tenantID uuid.UUID, input ReportInput) (report.Filter, error) {
	preset := input.Preset
	if preset == "" {
		preset = report.PresetToday
	}
	if !preset.IsValid() {
		return report.Filter{}, shared.NewDomainError("INVALID_PRESET", "Unknown report preset: "+string(preset))
	}

	filter := report.Filter{
		TenantID:   tenantID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		RoomID:     input.RoomID,
		IsPaid:     input.IsPaid,
		Discounted: input.Discounted,
	}
	filter.ApplyPreset(preset, time.Now())

	if preset == report.PresetCustom {
		if filter.StartDate.IsZero() || filter.EndDate.IsZero() {
			return report.Filter{}, shared.NewDomainError("INVALID_DATES", "Custom reports require both dates")
		}
		if filter.EndDate.Before(filter.StartDate) {
			return report.Filter{}, shared.NewDomainError("INVALID_DATES", "End date cannot be before start date")
		}
	}

	return filter, nil
}

// summarize reduces the daily series into headline numbers. Rooms booked
// counts rooms that appear in the per-room stats, one per room no matter
// how many bookings it took.
func summarize(daily []report.DailyStat, rooms []report.RoomStat) ReportSummary {
	summary := ReportSummary{
		TotalRevenue:     decimal.Zero,
		TotalRoomsBooked: len(rooms),
	}
	for _, day := range daily {
		summary.TotalBookings += day.Bookings
		summary.TotalRevenue = summary.TotalRevenue.Add(day.Revenue)
		summary.NewCustomers += day.NewCustomers
	}
	return summary
}
