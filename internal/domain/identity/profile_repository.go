package identity

import (
	"context"

	"github.com/google/uuid"
)

// ProfileRepository defines persistence operations for Profile aggregates
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, profile *Profile) error
}
