package company

import (
	"context"

	"github.com/google/uuid"
)

// SubscriptionRepository defines persistence operations for Subscription aggregates
type SubscriptionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)
	FindByCompanyID(ctx context.Context, companyID uuid.UUID) (*Subscription, error)
	FindByCompanyIDs(ctx context.Context, companyIDs []uuid.UUID) ([]Subscription, error)
	CountByStatus(ctx context.Context, status SubscriptionStatus) (int64, error)
	Save(ctx context.Context, subscription *Subscription) error
}
