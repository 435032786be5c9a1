package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/booking"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/harborstay/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBookingRepository implements BookingRepository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID finds a booking by ID within a tenant
func (r *GormBookingRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*booking.Booking, error) {
	var model models.BookingModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenant finds all bookings of a tenant matching the filter,
// newest check-in first
func (r *GormBookingRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter booking.BookingFilter) ([]booking.Booking, error) {
	var bookingModels []models.BookingModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.BookingModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Order("check_in DESC, created_at DESC").Find(&bookingModels).Error; err != nil {
		return nil, err
	}

	bookings := make([]booking.Booking, len(bookingModels))
	for i, model := range bookingModels {
		bookings[i] = *model.ToDomain()
	}
	return bookings, nil
}

// CountByTenant counts bookings of a tenant matching the filter
func (r *GormBookingRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID, filter booking.BookingFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.BookingModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindUpcoming finds bookings checking in within (after, until],
// soonest first, capped at limit
func (r *GormBookingRepository) FindUpcoming(ctx context.Context, tenantID uuid.UUID, after, until time.Time, limit int) ([]booking.Booking, error) {
	var bookingModels []models.BookingModel
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND check_in > ? AND check_in <= ?", tenantID, after, until).
		Order("check_in ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&bookingModels).Error; err != nil {
		return nil, err
	}

	bookings := make([]booking.Booking, len(bookingModels))
	for i, model := range bookingModels {
		bookings[i] = *model.ToDomain()
	}
	return bookings, nil
}

// Save creates or updates a booking
func (r *GormBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	model := models.BookingModelFromDomain(b)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a booking within a tenant
func (r *GormBookingRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BookingModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindAll lists bookings across all tenants matching the filter, newest
// first
func (r *GormBookingRepository) FindAll(ctx context.Context, filter booking.DirectoryFilter) ([]booking.Booking, error) {
	var bookingModels []models.BookingModel
	query := r.applyDirectoryFilter(
		r.db.WithContext(ctx).Model(&models.BookingModel{}),
		filter,
	)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("created_at DESC").Find(&bookingModels).Error; err != nil {
		return nil, err
	}

	bookings := make([]booking.Booking, len(bookingModels))
	for i, model := range bookingModels {
		bookings[i] = *model.ToDomain()
	}
	return bookings, nil
}

// CountAll counts bookings across all tenants matching the filter
func (r *GormBookingRepository) CountAll(ctx context.Context, filter booking.DirectoryFilter) (int64, error) {
	var count int64
	query := r.applyDirectoryFilter(
		r.db.WithContext(ctx).Model(&models.BookingModel{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormBookingRepository) applyDirectoryFilter(query *gorm.DB, filter booking.DirectoryFilter) *gorm.DB {
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.GuestName != "" {
		query = query.Where("guest_name ILIKE ?", "%"+filter.GuestName+"%")
	}
	return query
}

// applyFilter applies filter options to the query
func (r *GormBookingRepository) applyFilter(query *gorm.DB, filter booking.BookingFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination.
// The date range matches on check-in, the same axis the reports use.
func (r *GormBookingRepository) applyFilterWithoutPagination(query *gorm.DB, filter booking.BookingFilter) *gorm.DB {
	if filter.RoomID != nil {
		query = query.Where("room_id = ?", *filter.RoomID)
	}
	if filter.IsPaid != nil {
		query = query.Where("is_paid = ?", *filter.IsPaid)
	}
	if !filter.StartDate.IsZero() {
		query = query.Where("check_in >= ?", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query = query.Where("check_in < ?", filter.EndDate.AddDate(0, 0, 1))
	}

	return query
}

// Ensure GormBookingRepository implements BookingRepository and the
// console's BookingDirectory
var _ booking.BookingRepository = (*GormBookingRepository)(nil)
var _ booking.BookingDirectory = (*GormBookingRepository)(nil)
