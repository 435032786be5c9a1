// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the booking backend.
// It tracks booking creation, payment activity, and room occupancy health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	bookingCreatedTotal *Counter
	bookingAmountTotal  *Counter
	paymentMarkedTotal  *Counter

	// Gauge metrics (point-in-time values)
	roomActiveBookings *Gauge
	unpaidBookingCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	occupancyProvider OccupancyMetricsProvider
}

// OccupancyMetricsProvider provides booking data for periodic metrics collection.
// This interface allows the telemetry layer to query booking state without
// depending on the booking domain directly.
type OccupancyMetricsProvider interface {
	// GetActiveBookingsByRoom returns the count of bookings currently in house per room for a company
	GetActiveBookingsByRoom(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]int64, error)

	// GetUnpaidBookingCount returns the count of bookings with an outstanding balance for a company
	GetUnpaidBookingCount(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	CollectInterval   time.Duration // Default: 5 minutes
	OccupancyProvider OccupancyMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:             cfg.Meter,
		logger:            logger,
		stopChan:          make(chan struct{}),
		occupancyProvider: cfg.OccupancyProvider,
	}

	var err error

	// Booking metrics
	bm.bookingCreatedTotal, err = NewCounter(
		cfg.Meter,
		"harborstay_booking_created_total",
		"Total number of bookings created",
		"{bookings}",
	)
	if err != nil {
		return nil, err
	}

	bm.bookingAmountTotal, err = NewCounter(
		cfg.Meter,
		"harborstay_booking_amount_total",
		"Total booked amount in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	// Payment metrics
	bm.paymentMarkedTotal, err = NewCounter(
		cfg.Meter,
		"harborstay_booking_payment_total",
		"Total number of payment status changes",
		"{changes}",
	)
	if err != nil {
		return nil, err
	}

	// Occupancy gauge metrics
	bm.roomActiveBookings, err = NewGauge(
		cfg.Meter,
		"harborstay_room_active_bookings",
		"Current number of in-house bookings per room",
		"{bookings}",
	)
	if err != nil {
		return nil, err
	}

	bm.unpaidBookingCount, err = NewGauge(
		cfg.Meter,
		"harborstay_unpaid_booking_count",
		"Number of bookings with an outstanding balance",
		"{bookings}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Booking Metrics
// =============================================================================

// BookingKind represents the booking type for metrics labeling.
type BookingKind string

const (
	BookingKindIndividual BookingKind = "individual"
	BookingKindFullBoat   BookingKind = "full_boat"
)

// RecordBookingCreated records a booking creation event.
// This should be called from the application layer when a booking is created.
func (bm *BusinessMetrics) RecordBookingCreated(ctx context.Context, tenantID uuid.UUID, kind BookingKind) {
	bm.bookingCreatedTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrBookingType.String(string(kind)),
	)
}

// RecordBookingAmount records the booked amount.
// Amount should be in the smallest currency unit (cents).
func (bm *BusinessMetrics) RecordBookingAmount(ctx context.Context, tenantID uuid.UUID, kind BookingKind, amountCents int64) {
	bm.bookingAmountTotal.Add(ctx, amountCents,
		AttrTenantID.String(tenantID.String()),
		AttrBookingType.String(string(kind)),
	)
}

// RecordBookingWithAmount is a convenience method that records both booking count and amount.
func (bm *BusinessMetrics) RecordBookingWithAmount(ctx context.Context, tenantID uuid.UUID, kind BookingKind, amount decimal.Decimal) {
	bm.RecordBookingCreated(ctx, tenantID, kind)

	amountCents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	bm.RecordBookingAmount(ctx, tenantID, kind, amountCents)
}

// =============================================================================
// Payment Metrics
// =============================================================================

// PaymentState represents the resulting payment state for metrics labeling.
type PaymentState string

const (
	PaymentStatePaid   PaymentState = "paid"
	PaymentStateUnpaid PaymentState = "unpaid"
)

// RecordPaymentMarked records a payment status change on a booking.
func (bm *BusinessMetrics) RecordPaymentMarked(ctx context.Context, tenantID uuid.UUID, state PaymentState) {
	bm.paymentMarkedTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrPaymentState.String(string(state)),
	)
}

// =============================================================================
// Occupancy Metrics
// =============================================================================

// RecordRoomActiveBookings records the current in-house booking count for a room.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordRoomActiveBookings(ctx context.Context, tenantID, roomID uuid.UUID, count int64) {
	bm.roomActiveBookings.Record(ctx, count,
		AttrTenantID.String(tenantID.String()),
		AttrRoomID.String(roomID.String()),
	)
}

// RecordUnpaidBookingCount records the number of bookings with an outstanding balance.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordUnpaidBookingCount(ctx context.Context, tenantID uuid.UUID, count int64) {
	bm.unpaidBookingCount.Record(ctx, count,
		AttrTenantID.String(tenantID.String()),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// TenantProvider provides tenant IDs for periodic metrics collection.
type TenantProvider interface {
	GetActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects occupancy metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, tenantProvider TenantProvider, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, tenantProvider, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, tenantProvider TenantProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectOccupancyMetrics(ctx, tenantProvider)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectOccupancyMetrics(ctx, tenantProvider)
		}
	}
}

// collectOccupancyMetrics collects occupancy gauge metrics for all tenants.
func (bm *BusinessMetrics) collectOccupancyMetrics(ctx context.Context, tenantProvider TenantProvider) {
	if bm.occupancyProvider == nil {
		bm.logger.Debug("No occupancy provider configured, skipping occupancy metrics collection")
		return
	}

	tenantIDs, err := tenantProvider.GetActiveTenantIDs(ctx)
	if err != nil {
		bm.logger.Error("Failed to get tenant IDs for metrics collection", zap.Error(err))
		return
	}

	for _, tenantID := range tenantIDs {
		bm.collectTenantOccupancyMetrics(ctx, tenantID)
	}
}

// collectTenantOccupancyMetrics collects occupancy metrics for a single tenant.
func (bm *BusinessMetrics) collectTenantOccupancyMetrics(ctx context.Context, tenantID uuid.UUID) {
	activeByRoom, err := bm.occupancyProvider.GetActiveBookingsByRoom(ctx, tenantID)
	if err != nil {
		bm.logger.Warn("Failed to get active bookings for tenant",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	} else {
		for roomID, count := range activeByRoom {
			bm.RecordRoomActiveBookings(ctx, tenantID, roomID, count)
		}
	}

	unpaidCount, err := bm.occupancyProvider.GetUnpaidBookingCount(ctx, tenantID)
	if err != nil {
		bm.logger.Warn("Failed to get unpaid booking count for tenant",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	} else {
		bm.RecordUnpaidBookingCount(ctx, tenantID, unpaidCount)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
