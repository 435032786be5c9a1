package booking

import (
	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeBooking = "Booking"

// Event type constants
const (
	EventTypeBookingCreated              = "BookingCreated"
	EventTypeBookingUpdated              = "BookingUpdated"
	EventTypeBookingPaymentStatusChanged = "BookingPaymentStatusChanged"
)

// BookingCreatedEvent is published when a new booking is created
type BookingCreatedEvent struct {
	shared.BaseDomainEvent
	BookingID uuid.UUID   `json:"booking_id"`
	RoomID    uuid.UUID   `json:"room_id"`
	GuestName string      `json:"guest_name"`
	Type      BookingType `json:"type"`
}

// NewBookingCreatedEvent creates a new BookingCreatedEvent
func NewBookingCreatedEvent(b *Booking) *BookingCreatedEvent {
	return &BookingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingCreated, AggregateTypeBooking, b.ID, b.TenantID),
		BookingID:       b.ID,
		RoomID:          b.RoomID,
		GuestName:       b.GuestName,
		Type:            b.Type,
	}
}

// BookingUpdatedEvent is published when a booking's stay or charges change
type BookingUpdatedEvent struct {
	shared.BaseDomainEvent
	BookingID   uuid.UUID       `json:"booking_id"`
	RoomID      uuid.UUID       `json:"room_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	DueAmount   decimal.Decimal `json:"due_amount"`
	IsPaid      bool            `json:"is_paid"`
}

// NewBookingUpdatedEvent creates a new BookingUpdatedEvent
func NewBookingUpdatedEvent(b *Booking) *BookingUpdatedEvent {
	return &BookingUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingUpdated, AggregateTypeBooking, b.ID, b.TenantID),
		BookingID:       b.ID,
		RoomID:          b.RoomID,
		TotalAmount:     b.TotalAmount,
		DueAmount:       b.DueAmount(),
		IsPaid:          b.IsPaid,
	}
}

// BookingPaymentStatusChangedEvent is published when staff override the
// derived payment flag
type BookingPaymentStatusChangedEvent struct {
	shared.BaseDomainEvent
	BookingID uuid.UUID `json:"booking_id"`
	IsPaid    bool      `json:"is_paid"`
}

// NewBookingPaymentStatusChangedEvent creates a new BookingPaymentStatusChangedEvent
func NewBookingPaymentStatusChangedEvent(b *Booking) *BookingPaymentStatusChangedEvent {
	return &BookingPaymentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookingPaymentStatusChanged, AggregateTypeBooking, b.ID, b.TenantID),
		BookingID:       b.ID,
		IsPaid:          b.IsPaid,
	}
}
