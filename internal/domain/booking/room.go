package booking

import (
	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Room represents a bookable unit owned by a company. Its price is the
// base rate used to prefill a new booking's total amount.
type Room struct {
	shared.TenantAggregateRoot
	Name        string
	Description string
	Price       decimal.Decimal
	Capacity    int
}

// NewRoom creates a new room for a company
func NewRoom(tenantID uuid.UUID, name string, price decimal.Decimal, capacity int) (*Room, error) {
	if err := validateRoomName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Room price cannot be negative")
	}
	if capacity < 1 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Room capacity must be at least 1")
	}

	room := &Room{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Price:               price,
		Capacity:            capacity,
	}

	room.AddDomainEvent(NewRoomCreatedEvent(room))

	return room, nil
}

// Update updates the room's details
func (r *Room) Update(name, description string, price decimal.Decimal, capacity int) error {
	if err := validateRoomName(name); err != nil {
		return err
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Room price cannot be negative")
	}
	if capacity < 1 {
		return shared.NewDomainError("INVALID_CAPACITY", "Room capacity must be at least 1")
	}

	r.Name = name
	r.Description = description
	r.Price = price
	r.Capacity = capacity
	r.Touch()
	r.IncrementVersion()

	return nil
}

func validateRoomName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Room name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Room name cannot exceed 200 characters")
	}
	return nil
}
