package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/identity"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/harborstay/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMembershipRepository implements MembershipRepository using GORM
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new GormMembershipRepository
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// FindByID finds a membership by its ID
func (r *GormMembershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Membership, error) {
	var model models.MembershipModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserID finds the single active membership of a user. Pending
// invites carry the nil user ID and never match here.
func (r *GormMembershipRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Membership, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrNotFound
	}
	var model models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, identity.MembershipStatusActive).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCompany finds all memberships of a company, invites included
func (r *GormMembershipRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]identity.Membership, error) {
	var membershipModels []models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&membershipModels).Error; err != nil {
		return nil, err
	}

	memberships := make([]identity.Membership, len(membershipModels))
	for i, model := range membershipModels {
		memberships[i] = *model.ToDomain()
	}
	return memberships, nil
}

// FindInviteByEmail finds a pending invite for an email within a company
func (r *GormMembershipRepository) FindInviteByEmail(ctx context.Context, companyID uuid.UUID, email string) (*identity.Membership, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND email = ? AND status = ?",
			companyID, strings.ToLower(strings.TrimSpace(email)), identity.MembershipStatusInvited).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountByCompany counts all memberships of a company
func (r *GormMembershipRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MembershipModel{}).
		Where("company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a membership
func (r *GormMembershipRepository) Save(ctx context.Context, membership *identity.Membership) error {
	model := models.MembershipModelFromDomain(membership)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a membership
func (r *GormMembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MembershipModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormMembershipRepository implements MembershipRepository
var _ identity.MembershipRepository = (*GormMembershipRepository)(nil)
