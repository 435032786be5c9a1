package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/booking"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRoomRepository is a mock implementation of booking.RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*booking.Room, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]booking.Room, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Room), args.Error(1)
}

func (m *MockRoomRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoomRepository) Save(ctx context.Context, room *booking.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockBookingRepository is a mock implementation of booking.BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter booking.BookingFilter) ([]booking.Booking, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID, filter booking.BookingFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) FindUpcoming(ctx context.Context, tenantID uuid.UUID, after, until time.Time, limit int) ([]booking.Booking, error) {
	args := m.Called(ctx, tenantID, after, until, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type bookingServiceFixture struct {
	service  *BookingService
	bookings *MockBookingRepository
	rooms    *MockRoomRepository
}

func newBookingServiceFixture() *bookingServiceFixture {
	bookings := new(MockBookingRepository)
	rooms := new(MockRoomRepository)
	return &bookingServiceFixture{
		service:  NewBookingService(bookings, rooms, zap.NewNop()),
		bookings: bookings,
		rooms:    rooms,
	}
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func mustRoom(t *testing.T, tenantID uuid.UUID, price string) *booking.Room {
	room, err := booking.NewRoom(tenantID, "Cabin A", d(price), 4)
	require.NoError(t, err)
	return room
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	checkIn := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	t.Run("zero total is prefilled from the room price", func(t *testing.T) {
		f := newBookingServiceFixture()
		room := mustRoom(t, tenantID, "150")
		f.rooms.On("FindByID", ctx, tenantID, room.ID).Return(room, nil)
		f.bookings.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil)

		result, err := f.service.CreateBooking(ctx, tenantID, CreateBookingInput{
			RoomID:     room.ID,
			GuestName:  "Ada Deck",
			GuestCount: 2,
			Type:       booking.BookingTypeIndividual,
			CheckIn:    checkIn,
		})
		require.NoError(t, err)
		assert.True(t, result.TotalAmount.Equal(d("150")))
		assert.True(t, result.DueAmount.Equal(d("150")))
		assert.False(t, result.IsPaid)
		assert.Equal(t, "Cabin A", result.RoomName)
		// Missing check-out defaults to one day after check-in
		assert.Equal(t, checkIn.AddDate(0, 0, 1), result.CheckOut)
	})

	t.Run("explicit total wins over the room price", func(t *testing.T) {
		f := newBookingServiceFixture()
		room := mustRoom(t, tenantID, "150")
		f.rooms.On("FindByID", ctx, tenantID, room.ID).Return(room, nil)
		f.bookings.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil)

		result, err := f.service.CreateBooking(ctx, tenantID, CreateBookingInput{
			RoomID:        room.ID,
			GuestName:     "Ada Deck",
			GuestCount:    2,
			Type:          booking.BookingTypeFullBoat,
			CheckIn:       checkIn,
			CheckOut:      checkIn.AddDate(0, 0, 3),
			TotalAmount:   d("400"),
			DiscountType:  booking.DiscountTypePercentage,
			DiscountValue: d("10"),
			AdvancePaid:   d("100"),
		})
		require.NoError(t, err)
		assert.True(t, result.TotalAmount.Equal(d("400")))
		assert.True(t, result.DiscountAmount.Equal(d("40")))
		assert.True(t, result.DueAmount.Equal(d("260")))
	})

	t.Run("unknown room is rejected", func(t *testing.T) {
		f := newBookingServiceFixture()
		roomID := uuid.New()
		f.rooms.On("FindByID", ctx, tenantID, roomID).Return(nil, shared.ErrNotFound)

		_, err := f.service.CreateBooking(ctx, tenantID, CreateBookingInput{
			RoomID:     roomID,
			GuestName:  "Ada Deck",
			GuestCount: 1,
			Type:       booking.BookingTypeIndividual,
			CheckIn:    checkIn,
		})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "ROOM_NOT_FOUND", domainErr.Code)
		f.bookings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("guest contact details are carried through", func(t *testing.T) {
		f := newBookingServiceFixture()
		room := mustRoom(t, tenantID, "150")
		f.rooms.On("FindByID", ctx, tenantID, room.ID).Return(room, nil)
		f.bookings.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil)

		result, err := f.service.CreateBooking(ctx, tenantID, CreateBookingInput{
			RoomID:     room.ID,
			GuestName:  "Ada Deck",
			GuestPhone: "+1 555 0100",
			GuestEmail: "Ada@Example.com",
			GuestCount: 2,
			Type:       booking.BookingTypeIndividual,
			CheckIn:    checkIn,
			Referral:   "harbor office",
		})
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", result.GuestEmail)
		assert.Equal(t, "+1 555 0100", result.GuestPhone)
		assert.Equal(t, "harbor office", result.Referral)
	})
}

type fakeIdempotencyStore struct {
	seen map[string]bool
	err  error
}

func (f *fakeIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

func (f *fakeIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	return f.seen[key], f.err
}

func (f *fakeIdempotencyStore) Close() error { return nil }

func TestBookingService_CreateBooking_Idempotency(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	checkIn := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	newFixtureWithStore := func(store shared.IdempotencyStore) *bookingServiceFixture {
		bookings := new(MockBookingRepository)
		rooms := new(MockRoomRepository)
		return &bookingServiceFixture{
			service: NewBookingService(bookings, rooms, zap.NewNop(),
				WithIdempotencyStore(store, shared.DefaultIdempotencyConfig())),
			bookings: bookings,
			rooms:    rooms,
		}
	}

	input := func(roomID uuid.UUID) CreateBookingInput {
		return CreateBookingInput{
			RoomID:         roomID,
			GuestName:      "Ada Deck",
			GuestCount:     2,
			Type:           booking.BookingTypeIndividual,
			CheckIn:        checkIn,
			IdempotencyKey: "req-42",
		}
	}

	t.Run("second submission with the same key is rejected", func(t *testing.T) {
		store := &fakeIdempotencyStore{seen: map[string]bool{}}
		f := newFixtureWithStore(store)
		room := mustRoom(t, tenantID, "150")
		f.rooms.On("FindByID", ctx, tenantID, room.ID).Return(room, nil)
		f.bookings.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil)

		_, err := f.service.CreateBooking(ctx, tenantID, input(room.ID))
		require.NoError(t, err)

		_, err = f.service.CreateBooking(ctx, tenantID, input(room.ID))
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "DUPLICATE_REQUEST", domainErr.Code)
		f.bookings.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("store failure does not block the write", func(t *testing.T) {
		store := &fakeIdempotencyStore{err: assert.AnError}
		f := newFixtureWithStore(store)
		room := mustRoom(t, tenantID, "150")
		f.rooms.On("FindByID", ctx, tenantID, room.ID).Return(room, nil)
		f.bookings.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil)

		_, err := f.service.CreateBooking(ctx, tenantID, input(room.ID))
		require.NoError(t, err)
	})

	t.Run("missing key skips the check", func(t *testing.T) {
		store := &fakeIdempotencyStore{seen: map[string]bool{}}
		f := newFixtureWithStore(store)
		room := mustRoom(t, tenantID, "150")
		f.rooms.On("FindByID", ctx, tenantID, room.ID).Return(room, nil)
		f.bookings.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil)

		in := input(room.ID)
		in.IdempotencyKey = ""
		_, err := f.service.CreateBooking(ctx, tenantID, in)
		require.NoError(t, err)
		_, err = f.service.CreateBooking(ctx, tenantID, in)
		require.NoError(t, err)
	})
}

func TestBookingService_UpdateBooking(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	checkIn := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	newStoredBooking := func(t *testing.T, room *booking.Room) *booking.Booking {
		b, err := booking.NewBooking(tenantID, room.ID, "Ada Deck", 2, booking.BookingTypeIndividual, checkIn, time.Time{})
		require.NoError(t, err)
		require.NoError(t, b.SetCharges(d("200"), booking.DiscountTypeFixed, decimal.Zero, decimal.Zero))
		return b
	}

	t.Run("charge change recomputes a manual paid override", func(t *testing.T) {
		f := newBookingServiceFixture()
		room := mustRoom(t, tenantID, "150")
		b := newStoredBooking(t, room)
		b.SetPaymentStatus(true)
		require.True(t, b.IsPaid)

		f.bookings.On("FindByID", ctx, tenantID, b.ID).Return(b, nil)
		f.bookings.On("Save", ctx, b).Return(nil)
		f.rooms.On("FindByID", ctx, tenantID, room.ID).Return(room, nil)

		result, err := f.service.UpdateBooking(ctx, tenantID, b.ID, UpdateBookingInput{
			GuestName:    "Ada Deck",
			GuestCount:   2,
			CheckIn:      checkIn,
			CheckOut:     checkIn.AddDate(0, 0, 2),
			TotalAmount:  d("250"),
			DiscountType: booking.DiscountTypeFixed,
			AdvancePaid:  d("50"),
		})
		require.NoError(t, err)
		assert.True(t, result.DueAmount.Equal(d("200")))
		assert.False(t, result.IsPaid)
	})

	t.Run("missing dates are rejected on update", func(t *testing.T) {
		f := newBookingServiceFixture()
		room := mustRoom(t, tenantID, "150")
		b := newStoredBooking(t, room)
		f.bookings.On("FindByID", ctx, tenantID, b.ID).Return(b, nil)

		_, err := f.service.UpdateBooking(ctx, tenantID, b.ID, UpdateBookingInput{
			GuestName:    "Ada Deck",
			GuestCount:   2,
			CheckIn:      checkIn,
			TotalAmount:  d("250"),
			DiscountType: booking.DiscountTypeFixed,
		})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_DATES", domainErr.Code)
	})
}

func TestBookingService_SetPaymentStatus(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	checkIn := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	t.Run("marks an unpaid booking paid without touching the ledger", func(t *testing.T) {
		f := newBookingServiceFixture()
		room := mustRoom(t, tenantID, "150")
		b, err := booking.NewBooking(tenantID, room.ID, "Ada Deck", 2, booking.BookingTypeIndividual, checkIn, time.Time{})
		require.NoError(t, err)
		require.NoError(t, b.SetCharges(d("200"), booking.DiscountTypeFixed, decimal.Zero, d("50")))
		require.False(t, b.IsPaid)

		f.bookings.On("FindByID", ctx, tenantID, b.ID).Return(b, nil)
		f.bookings.On("Save", ctx, b).Return(nil)
		f.rooms.On("FindByID", ctx, tenantID, room.ID).Return(room, nil)

		result, err := f.service.SetPaymentStatus(ctx, tenantID, SetPaymentStatusInput{
			BookingID: b.ID,
			IsPaid:    true,
		})
		require.NoError(t, err)
		assert.True(t, result.IsPaid)
		// Ledger amounts are untouched, only the flag changes
		assert.True(t, result.DueAmount.Equal(d("150")))
	})

	t.Run("unknown booking is rejected", func(t *testing.T) {
		f := newBookingServiceFixture()
		bookingID := uuid.New()
		f.bookings.On("FindByID", ctx, tenantID, bookingID).Return(nil, shared.ErrNotFound)

		_, err := f.service.SetPaymentStatus(ctx, tenantID, SetPaymentStatusInput{BookingID: bookingID, IsPaid: true})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "BOOKING_NOT_FOUND", domainErr.Code)
	})
}

func TestBookingService_ListBookings(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	checkIn := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	t.Run("applies paging defaults and enriches room names", func(t *testing.T) {
		f := newBookingServiceFixture()
		room := mustRoom(t, tenantID, "150")
		b, err := booking.NewBooking(tenantID, room.ID, "Ada Deck", 2, booking.BookingTypeIndividual, checkIn, time.Time{})
		require.NoError(t, err)

		f.bookings.On("FindByTenant", ctx, tenantID, mock.MatchedBy(func(filter booking.BookingFilter) bool {
			return filter.Page == 1 && filter.PageSize == 20
		})).Return([]booking.Booking{*b}, nil)
		f.bookings.On("CountByTenant", ctx, tenantID, mock.AnythingOfType("booking.BookingFilter")).
			Return(int64(1), nil)
		f.rooms.On("FindByID", ctx, tenantID, room.ID).Return(room, nil)

		result, err := f.service.ListBookings(ctx, tenantID, ListBookingsInput{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.TotalCount)
		require.Len(t, result.Bookings, 1)
		assert.Equal(t, "Cabin A", result.Bookings[0].RoomName)
	})
}

func TestRoomService_DeleteRoom(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("deletes a room without bookings", func(t *testing.T) {
		rooms := new(MockRoomRepository)
		bookings := new(MockBookingRepository)
		service := NewRoomService(rooms, bookings, zap.NewNop())
		room := mustRoom(t, tenantID, "150")

		rooms.On("FindByID", ctx, tenantID, room.ID).Return(room, nil)
		bookings.On("CountByTenant", ctx, tenantID, mock.AnythingOfType("booking.BookingFilter")).
			Return(int64(0), nil)
		rooms.On("Delete", ctx, tenantID, room.ID).Return(nil)

		require.NoError(t, service.DeleteRoom(ctx, tenantID, room.ID))
		rooms.AssertExpectations(t)
	})

	t.Run("refuses to delete a room with bookings", func(t *testing.T) {
		rooms := new(MockRoomRepository)
		bookings := new(MockBookingRepository)
		service := NewRoomService(rooms, bookings, zap.NewNop())
		room := mustRoom(t, tenantID, "150")

		rooms.On("FindByID", ctx, tenantID, room.ID).Return(room, nil)
		bookings.On("CountByTenant", ctx, tenantID, mock.AnythingOfType("booking.BookingFilter")).
			Return(int64(3), nil)

		err := service.DeleteRoom(ctx, tenantID, room.ID)
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "ROOM_IN_USE", domainErr.Code)
		rooms.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRoomService_CreateRoom(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates a room with description", func(t *testing.T) {
		rooms := new(MockRoomRepository)
		bookings := new(MockBookingRepository)
		service := NewRoomService(rooms, bookings, zap.NewNop())

		rooms.On("Save", ctx, mock.MatchedBy(func(r *booking.Room) bool {
			return r.TenantID == tenantID && r.Name == "Cabin B" && r.Description == "Aft cabin"
		})).Return(nil)

		result, err := service.CreateRoom(ctx, tenantID, CreateRoomInput{
			Name:        "Cabin B",
			Description: "Aft cabin",
			Price:       d("95"),
			Capacity:    2,
		})
		require.NoError(t, err)
		assert.Equal(t, "Cabin B", result.Name)
		assert.True(t, result.Price.Equal(d("95")))
		rooms.AssertExpectations(t)
	})

	t.Run("rejects zero capacity", func(t *testing.T) {
		rooms := new(MockRoomRepository)
		bookings := new(MockBookingRepository)
		service := NewRoomService(rooms, bookings, zap.NewNop())

		_, err := service.CreateRoom(ctx, tenantID, CreateRoomInput{Name: "Cabin B", Price: d("95")})
		assert.Error(t, err)
	})
}
