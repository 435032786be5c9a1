package identity

import (
	"context"

	"github.com/google/uuid"
)

// MembershipRepository defines persistence operations for Membership aggregates
type MembershipRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Membership, error)
	// FindByUserID returns the single active membership of a user, or
	// shared.ErrNotFound when the user belongs to no company.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Membership, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]Membership, error)
	FindInviteByEmail(ctx context.Context, companyID uuid.UUID, email string) (*Membership, error)
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
	Save(ctx context.Context, membership *Membership) error
	Delete(ctx context.Context, id uuid.UUID) error
}
