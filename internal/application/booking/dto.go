package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/booking"
	"github.com/shopspring/decimal"
)

// CreateRoomInput contains the input for room creation
type CreateRoomInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Capacity    int
}

// UpdateRoomInput contains the editable room fields
type UpdateRoomInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Capacity    int
}

// RoomResponse is the room detail returned to callers
type RoomResponse struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Capacity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListRoomsInput contains the paging input for room listings
type ListRoomsInput struct {
	Page     int
	PageSize int
	Search   string
}

// ListRoomsResult is the paginated room listing
type ListRoomsResult struct {
	Rooms      []RoomResponse
	TotalCount int64
	Page       int
	PageSize   int
}

// CreateBookingInput contains the input for booking creation. A zero
// TotalAmount is prefilled from the room's base price.
type CreateBookingInput struct {
	RoomID        uuid.UUID
	GuestName     string
	GuestPhone    string
	GuestEmail    string
	GuestCount    int
	Type          booking.BookingType
	CheckIn       time.Time
	CheckOut      time.Time
	TotalAmount   decimal.Decimal
	DiscountType  booking.DiscountType
	DiscountValue decimal.Decimal
	AdvancePaid   decimal.Decimal
	Referral      string
	Notes         string

	// IdempotencyKey deduplicates retried submissions when set
	IdempotencyKey string
}

// UpdateBookingInput contains the editable booking fields. All fields
// are written; callers send the full booking state.
type UpdateBookingInput struct {
	GuestName     string
	GuestPhone    string
	GuestEmail    string
	GuestCount    int
	CheckIn       time.Time
	CheckOut      time.Time
	TotalAmount   decimal.Decimal
	DiscountType  booking.DiscountType
	DiscountValue decimal.Decimal
	AdvancePaid   decimal.Decimal
	Referral      string
	Notes         string
}

// BookingResponse is the booking detail returned to callers. Discount
// and Due carry the derived ledger amounts.
type BookingResponse struct {
	ID             uuid.UUID
	RoomID         uuid.UUID
	RoomName       string
	GuestName      string
	GuestPhone     string
	GuestEmail     string
	GuestCount     int
	Type           booking.BookingType
	CheckIn        time.Time
	CheckOut       time.Time
	TotalAmount    decimal.Decimal
	DiscountType   booking.DiscountType
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal
	AdvancePaid    decimal.Decimal
	DueAmount      decimal.Decimal
	IsPaid         bool
	Referral       string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ListBookingsInput contains the filter and paging input for booking
// listings
type ListBookingsInput struct {
	RoomID    *uuid.UUID
	IsPaid    *bool
	StartDate time.Time
	EndDate   time.Time
	Page      int
	PageSize  int
}

// ListBookingsResult is the paginated booking listing
type ListBookingsResult struct {
	Bookings   []BookingResponse
	TotalCount int64
	Page       int
	PageSize   int
}

// SetPaymentStatusInput contains the input for a manual payment status
// override
type SetPaymentStatusInput struct {
	BookingID uuid.UUID
	IsPaid    bool
}

// ToRoomResponse converts a room aggregate to its response form
func ToRoomResponse(r *booking.Room) RoomResponse {
	return RoomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Capacity:    r.Capacity,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ToBookingResponse converts a booking aggregate to its response form
func ToBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		RoomID:         b.RoomID,
		GuestName:      b.GuestName,
		GuestPhone:     b.GuestPhone,
		GuestEmail:     b.GuestEmail,
		GuestCount:     b.GuestCount,
		Type:           b.Type,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		TotalAmount:    b.TotalAmount,
		DiscountType:   b.DiscountType,
		DiscountValue:  b.DiscountValue,
		DiscountAmount: b.DiscountAmount(),
		AdvancePaid:    b.AdvancePaid,
		DueAmount:      b.DueAmount(),
		IsPaid:         b.IsPaid,
		Referral:       b.Referral,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
