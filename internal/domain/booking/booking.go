package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BookingType tags whether a booking covers a single party or the whole
// property for the stay
type BookingType string

const (
	BookingTypeIndividual BookingType = "individual"
	BookingTypeFullBoat   BookingType = "full_boat"
)

// IsValid reports whether the booking type is known
func (b BookingType) IsValid() bool {
	return b == BookingTypeIndividual || b == BookingTypeFullBoat
}

// Booking represents a guest stay in a room. Its monetary fields form a
// small ledger: IsPaid is recomputed from the due amount on every charge
// change, and may additionally be overridden by staff through
// SetPaymentStatus for out-of-band payments.
type Booking struct {
	shared.TenantAggregateRoot
	RoomID        uuid.UUID
	GuestName     string
	GuestPhone    string
	GuestEmail    string
	GuestCount    int
	Type          BookingType
	CheckIn       time.Time
	CheckOut      time.Time
	TotalAmount   decimal.Decimal
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	AdvancePaid   decimal.Decimal
	IsPaid        bool
	Referral      string
	Notes         string
}

// NewBooking creates a booking. A zero checkOut defaults to one calendar
// day after checkIn; the default applies at creation only, stored dates
// are never rewritten afterwards.
func NewBooking(
	tenantID, roomID uuid.UUID,
	guestName string,
	guestCount int,
	bookingType BookingType,
	checkIn, checkOut time.Time,
) (*Booking, error) {
	if roomID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROOM_ID", "Room ID cannot be empty")
	}
	if err := validateGuestName(guestName); err != nil {
		return nil, err
	}
	if guestCount < 1 {
		return nil, shared.NewDomainError("INVALID_GUEST_COUNT", "Guest count must be at least 1")
	}
	if !bookingType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BOOKING_TYPE", "Unknown booking type: "+string(bookingType))
	}
	if checkIn.IsZero() {
		return nil, shared.NewDomainError("INVALID_CHECK_IN", "Check-in date is required")
	}
	if checkOut.IsZero() {
		checkOut = checkIn.AddDate(0, 0, 1)
	}
	if checkOut.Before(checkIn) {
		return nil, shared.NewDomainError("INVALID_CHECK_OUT", "Check-out cannot be before check-in")
	}

	booking := &Booking{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		RoomID:              roomID,
		GuestName:           guestName,
		GuestCount:          guestCount,
		Type:                bookingType,
		CheckIn:             checkIn,
		CheckOut:            checkOut,
		TotalAmount:         decimal.Zero,
		DiscountType:        DiscountTypeFixed,
		DiscountValue:       decimal.Zero,
		AdvancePaid:         decimal.Zero,
	}
	booking.RecomputePaymentStatus()

	booking.AddDomainEvent(NewBookingCreatedEvent(booking))

	return booking, nil
}

// SetCharges replaces the booking's monetary fields and recomputes the
// payment status from the due amount
func (b *Booking) SetCharges(total decimal.Decimal, discountType DiscountType, discountValue, advancePaid decimal.Decimal) error {
	if total.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Total amount cannot be negative")
	}
	if !discountType.IsValid() {
		return shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Unknown discount type: "+string(discountType))
	}
	if discountValue.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Discount value cannot be negative")
	}
	if advancePaid.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Advance paid cannot be negative")
	}

	b.TotalAmount = total
	b.DiscountType = discountType
	b.DiscountValue = discountValue
	b.AdvancePaid = advancePaid
	b.RecomputePaymentStatus()
	b.Touch()
	b.IncrementVersion()

	b.AddDomainEvent(NewBookingUpdatedEvent(b))

	return nil
}

// Reschedule changes the stay dates of an existing booking. Both dates
// must be given explicitly, the creation-time check-out default never
// applies here.
func (b *Booking) Reschedule(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return shared.NewDomainError("INVALID_DATES", "Check-in and check-out dates are required")
	}
	if checkOut.Before(checkIn) {
		return shared.NewDomainError("INVALID_CHECK_OUT", "Check-out cannot be before check-in")
	}

	b.CheckIn = checkIn
	b.CheckOut = checkOut
	b.Touch()
	b.IncrementVersion()

	b.AddDomainEvent(NewBookingUpdatedEvent(b))

	return nil
}

// UpdateGuest updates the guest contact details
func (b *Booking) UpdateGuest(name, phone, email string, count int) error {
	if err := validateGuestName(name); err != nil {
		return err
	}
	if count < 1 {
		return shared.NewDomainError("INVALID_GUEST_COUNT", "Guest count must be at least 1")
	}

	b.GuestName = name
	b.GuestPhone = phone
	b.GuestEmail = strings.ToLower(strings.TrimSpace(email))
	b.GuestCount = count
	b.Touch()
	b.IncrementVersion()

	return nil
}

// SetNotes updates the referral and notes text
func (b *Booking) SetNotes(referral, notes string) {
	b.Referral = referral
	b.Notes = notes
	b.Touch()
	b.IncrementVersion()
}

// DueAmount returns the amount still owed, floored at zero
func (b *Booking) DueAmount() decimal.Decimal {
	return ComputeDue(b.TotalAmount, b.DiscountType, b.DiscountValue, b.AdvancePaid)
}

// DiscountAmount returns the absolute discount applied to the booking
func (b *Booking) DiscountAmount() decimal.Decimal {
	return ComputeDiscount(b.TotalAmount, b.DiscountType, b.DiscountValue)
}

// RecomputePaymentStatus derives IsPaid from the due amount. It runs on
// every charge change; a manual SetPaymentStatus override lasts only
// until the next recompute.
func (b *Booking) RecomputePaymentStatus() {
	b.IsPaid = !b.DueAmount().IsPositive()
}

// SetPaymentStatus overrides the derived payment flag directly. Staff
// use this to confirm payments that never went through AdvancePaid, such
// as cash settled at check-out.
func (b *Booking) SetPaymentStatus(paid bool) {
	if b.IsPaid == paid {
		return
	}

	b.IsPaid = paid
	b.Touch()
	b.IncrementVersion()

	b.AddDomainEvent(NewBookingPaymentStatusChangedEvent(b))
}

func validateGuestName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_GUEST_NAME", "Guest name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_GUEST_NAME", "Guest name cannot exceed 200 characters")
	}
	return nil
}
