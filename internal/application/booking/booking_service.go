package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/booking"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/harborstay/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// BookingService handles the booking lifecycle within a company
type BookingService struct {
	bookingRepo booking.BookingRepository
	roomRepo    booking.RoomRepository
	idemStore   shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	metrics     *telemetry.BusinessMetrics
	logger      *zap.Logger
}

// BookingServiceOption is a functional option for configuring the service
type BookingServiceOption func(*BookingService)

// WithIdempotencyStore enables deduplication of retried booking submissions
func WithIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) BookingServiceOption {
	return func(s *BookingService) {
		s.idemStore = store
		s.idemConfig = cfg
	}
}

// WithBusinessMetrics enables booking and payment metrics emission
func WithBusinessMetrics(metrics *telemetry.BusinessMetrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = metrics
	}
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo booking.BookingRepository,
	roomRepo booking.RoomRepository,
	logger *zap.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	s := &BookingService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		idemConfig:  shared.DefaultIdempotencyConfig(),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBooking creates a booking in the given room. A zero total amount
// is prefilled from the room's base price before the ledger runs.
func (s *BookingService) CreateBooking(ctx context.Context, tenantID uuid.UUID, input CreateBookingInput) (*BookingResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "booking", "create",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID),
		telemetry.WithAttribute(telemetry.SpanAttrRoomID, input.RoomID),
	)
	defer span.End()

	if err := s.claimIdempotencyKey(ctx, tenantID, input.IdempotencyKey); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	room, err := s.roomRepo.FindByID(ctx, tenantID, input.RoomID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ROOM_NOT_FOUND", "Room not found")
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	b, err := booking.NewBooking(tenantID, room.ID, input.GuestName, input.GuestCount, input.Type, input.CheckIn, input.CheckOut)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	total := input.TotalAmount
	if total.IsZero() {
		total = room.Price
	}

	discountType := input.DiscountType
	if discountType == "" {
		discountType = booking.DiscountTypeFixed
	}

	if err := b.SetCharges(total, discountType, input.DiscountValue, input.AdvancePaid); err != nil {
		return nil, err
	}
	if input.GuestPhone != "" || input.GuestEmail != "" {
		if err := b.UpdateGuest(input.GuestName, input.GuestPhone, input.GuestEmail, input.GuestCount); err != nil {
			return nil, err
		}
	}
	if input.Referral != "" || input.Notes != "" {
		b.SetNotes(input.Referral, input.Notes)
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrBookingID, b.ID,
		telemetry.SpanAttrBookingType, string(b.Type),
	)

	s.logger.Info("Booking created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("booking_id", b.ID.String()),
		zap.String("room_id", room.ID.String()),
		zap.String("due", b.DueAmount().String()))

	if s.metrics != nil {
		s.metrics.RecordBookingWithAmount(ctx, tenantID, telemetry.BookingKind(b.Type), b.TotalAmount)
	}

	response := ToBookingResponse(b)
	response.RoomName = room.Name
	return &response, nil
}

// claimIdempotencyKey rejects a submission whose key was already seen.
// Keys are scoped per company. A store failure does not block the write.
func (s *BookingService) claimIdempotencyKey(ctx context.Context, tenantID uuid.UUID, key string) error {
	if key == "" || s.idemStore == nil || !s.idemConfig.Enabled {
		return nil
	}

	isNew, err := s.idemStore.MarkProcessed(ctx, tenantID.String()+":"+key, s.idemConfig.TTL)
	if err != nil {
		s.logger.Warn("Idempotency check failed, continuing",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		return nil
	}
	if !isNew {
		return shared.NewDomainError("DUPLICATE_REQUEST", "This booking was already submitted")
	}
	return nil
}

// GetBooking returns one booking of the company
func (s *BookingService) GetBooking(ctx context.Context, tenantID, bookingID uuid.UUID) (*BookingResponse, error) {
	b, err := s.findBooking(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	response := ToBookingResponse(b)
	s.enrichRoomName(ctx, tenantID, &response)
	return &response, nil
}

// ListBookings returns a filtered page of the company's bookings
func (s *BookingService) ListBookings(ctx context.Context, tenantID uuid.UUID, input ListBookingsInput) (*ListBookingsResult, error) {
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.PageSize <= 0 {
		input.PageSize = 20
	}

	filter := booking.BookingFilter{
		RoomID:    input.RoomID,
		IsPaid:    input.IsPaid,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Page:      input.Page,
		PageSize:  input.PageSize,
	}

	bookings, err := s.bookingRepo.FindByTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.bookingRepo.CountByTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = ToBookingResponse(&bookings[i])
	}
	s.enrichRoomNames(ctx, tenantID, responses)

	return &ListBookingsResult{
		Bookings:   responses,
		TotalCount: total,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}, nil
}

// UpdateBooking rewrites a booking's guest details, stay dates and
// charges. The payment status is recomputed from the new ledger state.
func (s *BookingService) UpdateBooking(ctx context.Context, tenantID, bookingID uuid.UUID, input UpdateBookingInput) (*BookingResponse, error) {
	b, err := s.findBooking(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := b.UpdateGuest(input.GuestName, input.GuestPhone, input.GuestEmail, input.GuestCount); err != nil {
		return nil, err
	}
	if err := b.Reschedule(input.CheckIn, input.CheckOut); err != nil {
		return nil, err
	}
	if err := b.SetCharges(input.TotalAmount, input.DiscountType, input.DiscountValue, input.AdvancePaid); err != nil {
		return nil, err
	}
	b.SetNotes(input.Referral, input.Notes)

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	response := ToBookingResponse(b)
	s.enrichRoomName(ctx, tenantID, &response)
	return &response, nil
}

// SetPaymentStatus overrides the derived payment flag for out-of-band
// payments. The override lasts until the next charge change recomputes
// the flag.
func (s *BookingService) SetPaymentStatus(ctx context.Context, tenantID uuid.UUID, input SetPaymentStatusInput) (*BookingResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "booking", "set_payment_status",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID),
		telemetry.WithAttribute(telemetry.SpanAttrBookingID, input.BookingID),
	)
	defer span.End()

	b, err := s.findBooking(ctx, tenantID, input.BookingID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	b.SetPaymentStatus(input.IsPaid)

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Booking payment status set",
		zap.String("tenant_id", tenantID.String()),
		zap.String("booking_id", b.ID.String()),
		zap.Bool("is_paid", input.IsPaid))

	if s.metrics != nil {
		state := telemetry.PaymentStateUnpaid
		if input.IsPaid {
			state = telemetry.PaymentStatePaid
		}
		s.metrics.RecordPaymentMarked(ctx, tenantID, state)
	}

	response := ToBookingResponse(b)
	s.enrichRoomName(ctx, tenantID, &response)
	return &response, nil
}

// DeleteBooking deletes a booking
func (s *BookingService) DeleteBooking(ctx context.Context, tenantID, bookingID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "booking", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID),
		telemetry.WithAttribute(telemetry.SpanAttrBookingID, bookingID),
	)
	defer span.End()

	if _, err := s.findBooking(ctx, tenantID, bookingID); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, tenantID, bookingID); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.logger.Info("Booking deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("booking_id", bookingID.String()))

	return nil
}

func (s *BookingService) findBooking(ctx context.Context, tenantID, bookingID uuid.UUID) (*booking.Booking, error) {
	b, err := s.bookingRepo.FindByID(ctx, tenantID, bookingID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("BOOKING_NOT_FOUND", "Booking not found")
		}
		return nil, err
	}
	return b, nil
}

func (s *BookingService) enrichRoomName(ctx context.Context, tenantID uuid.UUID, response *BookingResponse) {
	room, err := s.roomRepo.FindByID(ctx, tenantID, response.RoomID)
	if err != nil {
		// Listing still works without the room name
		s.logger.Warn("Failed to load room for booking",
			zap.String("room_id", response.RoomID.String()),
			zap.Error(err))
		return
	}
	response.RoomName = room.Name
}

func (s *BookingService) enrichRoomNames(ctx context.Context, tenantID uuid.UUID, responses []BookingResponse) {
	names := make(map[uuid.UUID]string)
	for i := range responses {
		name, ok := names[responses[i].RoomID]
		if !ok {
			room, err := s.roomRepo.FindByID(ctx, tenantID, responses[i].RoomID)
			if err != nil {
				names[responses[i].RoomID] = ""
				continue
			}
			name = room.Name
			names[responses[i].RoomID] = name
		}
		responses[i].RoomName = name
	}
}
