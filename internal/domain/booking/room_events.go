package booking

import (
	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeRoom = "Room"

// Event type constants
const (
	EventTypeRoomCreated = "RoomCreated"
)

// RoomCreatedEvent is published when a new room is created
type RoomCreatedEvent struct {
	shared.BaseDomainEvent
	RoomID   uuid.UUID       `json:"room_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Capacity int             `json:"capacity"`
}

// NewRoomCreatedEvent creates a new RoomCreatedEvent
func NewRoomCreatedEvent(room *Room) *RoomCreatedEvent {
	return &RoomCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomCreated, AggregateTypeRoom, room.ID, room.TenantID),
		RoomID:          room.ID,
		Name:            room.Name,
		Price:           room.Price,
		Capacity:        room.Capacity,
	}
}
