package company

import (
	"context"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/shared"
)

// CompanyRepository defines persistence operations for Company aggregates
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Company, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}
