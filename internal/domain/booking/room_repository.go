package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/shared"
)

// RoomRepository defines persistence operations for Room aggregates
type RoomRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Room, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Room, error)
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	Save(ctx context.Context, room *Room) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
