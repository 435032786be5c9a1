package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/company"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/harborstay/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByID finds a subscription by its ID
func (r *GormSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCompanyID finds the subscription of a company
func (r *GormSubscriptionRepository) FindByCompanyID(ctx context.Context, companyID uuid.UUID) (*company.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCompanyIDs finds the subscriptions of multiple companies in one query
func (r *GormSubscriptionRepository) FindByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID) ([]company.Subscription, error) {
	if len(companyIDs) == 0 {
		return []company.Subscription{}, nil
	}

	var subscriptionModels []models.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("company_id IN ?", companyIDs).
		Find(&subscriptionModels).Error; err != nil {
		return nil, err
	}

	subscriptions := make([]company.Subscription, len(subscriptionModels))
	for i, model := range subscriptionModels {
		subscriptions[i] = *model.ToDomain()
	}
	return subscriptions, nil
}

// CountByStatus counts subscriptions in the given stored status. Expiry
// is not applied here; callers needing the effective status must read
// the rows.
func (r *GormSubscriptionRepository) CountByStatus(ctx context.Context, status company.SubscriptionStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a subscription
func (r *GormSubscriptionRepository) Save(ctx context.Context, subscription *company.Subscription) error {
	model := models.SubscriptionModelFromDomain(subscription)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormSubscriptionRepository implements SubscriptionRepository
var _ company.SubscriptionRepository = (*GormSubscriptionRepository)(nil)
