package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/booking"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/harborstay/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRoomRepository implements RoomRepository using GORM
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID finds a room by ID within a tenant
func (r *GormRoomRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*booking.Room, error) {
	var model models.RoomModel
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

// FindByTenant finds all rooms of a tenant matching the filter
func (r *GormRoomRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]booking.Room, error) {
	var roomModels []models.RoomModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.RoomModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&roomModels).Error; err != nil {
		return nil, err
	}

	rooms := make([]booking.Room, len(roomModels))
	for i, model := range roomModels {
		rooms[i] = *model.ToDomain()
	}
	return rooms, nil
}

// CountByTenant counts all rooms of a tenant
func (r *GormRoomRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RoomModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a room
func (r *GormRoomRepository) Save(ctx context.Context, room *booking.Room) error {
	model := models.RoomModelFromDomain(room)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a room within a tenant
func (r *GormRoomRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RoomModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormRoomRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, RoomSortFields, "name")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// Ensure GormRoomRepository implements RoomRepository
var _ booking.RoomRepository = (*GormRoomRepository)(nil)
