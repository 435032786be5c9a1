package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingFilter narrows booking list queries. Zero values mean "no
// constraint" for their field.
type BookingFilter struct {
	RoomID    *uuid.UUID
	IsPaid    *bool
	StartDate time.Time
	EndDate   time.Time
	Page      int
	PageSize  int
}

// BookingRepository defines persistence operations for Booking aggregates
type BookingRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Booking, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter BookingFilter) ([]Booking, error)
	CountByTenant(ctx context.Context, tenantID uuid.UUID, filter BookingFilter) (int64, error)
	FindUpcoming(ctx context.Context, tenantID uuid.UUID, after, until time.Time, limit int) ([]Booking, error)
	Save(ctx context.Context, booking *Booking) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// DirectoryFilter narrows the cross-tenant booking listing of the super
// admin console. Zero values mean "no constraint" for their field.
type DirectoryFilter struct {
	TenantID  *uuid.UUID
	GuestName string
	Page      int
	PageSize  int
}

// BookingDirectory lists bookings across every tenant. Reserved for the
// super admin console; tenant-facing code goes through BookingRepository.
type BookingDirectory interface {
	FindAll(ctx context.Context, filter DirectoryFilter) ([]Booking, error)
	CountAll(ctx context.Context, filter DirectoryFilter) (int64, error)
}
