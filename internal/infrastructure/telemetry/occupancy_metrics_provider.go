// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOccupancyMetricsProvider implements OccupancyMetricsProvider using GORM.
// It queries the bookings table directly for aggregated metrics.
type GormOccupancyMetricsProvider struct {
	db *gorm.DB
}

// NewGormOccupancyMetricsProvider creates a new GormOccupancyMetricsProvider.
func NewGormOccupancyMetricsProvider(db *gorm.DB) *GormOccupancyMetricsProvider {
	return &GormOccupancyMetricsProvider{db: db}
}

// GetActiveBookingsByRoom returns the count of bookings currently in house per room for a company.
func (p *GormOccupancyMetricsProvider) GetActiveBookingsByRoom(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]int64, error) {
	type result struct {
		RoomID       uuid.UUID `gorm:"column:room_id"`
		BookingCount int64     `gorm:"column:booking_count"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("bookings").
		Select("room_id, COUNT(*) as booking_count").
		Where("tenant_id = ?", tenantID).
		Where("check_in <= NOW() AND check_out > NOW()").
		Group("room_id").
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	m := make(map[uuid.UUID]int64, len(results))
	for _, r := range results {
		m[r.RoomID] = r.BookingCount
	}

	return m, nil
}

// GetUnpaidBookingCount returns the count of bookings with an outstanding balance for a company.
func (p *GormOccupancyMetricsProvider) GetUnpaidBookingCount(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("bookings").
		Where("tenant_id = ?", tenantID).
		Where("is_paid = FALSE").
		Count(&count).Error

	return count, err
}

// GormTenantProvider implements TenantProvider using GORM.
type GormTenantProvider struct {
	db *gorm.DB
}

// NewGormTenantProvider creates a new GormTenantProvider.
func NewGormTenantProvider(db *gorm.DB) *GormTenantProvider {
	return &GormTenantProvider{db: db}
}

// GetActiveTenantIDs returns all active company IDs.
func (p *GormTenantProvider) GetActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.db.WithContext(ctx).
		Table("companies").
		Select("id").
		Where("status = ?", "active").
		Find(&ids).Error

	return ids, err
}
