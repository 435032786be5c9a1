package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/harborstay/backend/internal/domain/booking"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/harborstay/backend/tests/testutil"
)

// newMockBookingRepository creates a GormBookingRepository with a mocked SQL connection
func newMockBookingRepository(t *testing.T) (*GormBookingRepository, sqlmock.Sqlmock) {
	mdb := testutil.NewMockDB(t)
	return NewGormBookingRepository(mdb.DB), mdb.Mock
}

func TestGormBookingRepository_FindByID(t *testing.T) {
	t.Run("finds existing booking", func(t *testing.T) {
		repo, mock := newMockBookingRepository(t)

		bookingID := uuid.New()
		tenantID := uuid.New()
		roomID := uuid.New()
		checkIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "room_id", "guest_name", "guest_count", "type", "check_in", "check_out", "total_amount", "discount_type", "discount_value", "advance_paid", "is_paid"}).
			AddRow(bookingID, tenantID, roomID, "Ada Deck", 2, "individual", checkIn, checkIn.AddDate(0, 0, 1), decimal.RequireFromString("150"), "fixed", decimal.Zero, decimal.Zero, false)

		mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, bookingID, 1).
			WillReturnRows(rows)

		found, err := repo.FindByID(context.Background(), tenantID, bookingID)

		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, bookingID, found.ID)
		assert.Equal(t, roomID, found.RoomID)
		assert.Equal(t, "Ada Deck", found.GuestName)
		assert.True(t, found.TotalAmount.Equal(decimal.RequireFromString("150")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing booking", func(t *testing.T) {
		repo, mock := newMockBookingRepository(t)

		bookingID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, bookingID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		found, err := repo.FindByID(context.Background(), tenantID, bookingID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("does not match bookings of other tenants", func(t *testing.T) {
		repo, mock := newMockBookingRepository(t)

		bookingID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, bookingID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), tenantID, bookingID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormBookingRepository_CountByTenant(t *testing.T) {
	t.Run("counts with paid filter applied", func(t *testing.T) {
		repo, mock := newMockBookingRepository(t)

		tenantID := uuid.New()
		paid := true

		mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE tenant_id = \$1 AND is_paid = \$2`).
			WithArgs(tenantID, paid).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountByTenant(context.Background(), tenantID, booking.BookingFilter{IsPaid: &paid})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBookingRepository_Directory(t *testing.T) {
	t.Run("lists across tenants with guest search", func(t *testing.T) {
		repo, mock := newMockBookingRepository(t)

		tenantID := uuid.New()
		roomID := uuid.New()
		checkIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "room_id", "guest_name", "guest_count", "type", "check_in", "check_out", "total_amount", "discount_type", "discount_value", "advance_paid", "is_paid"}).
			AddRow(uuid.New(), tenantID, roomID, "Ada Deck", 2, "individual", checkIn, checkIn.AddDate(0, 0, 1), decimal.RequireFromString("150"), "fixed", decimal.Zero, decimal.Zero, false)

		mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE guest_name ILIKE \$1 ORDER BY created_at DESC LIMIT .*`).
			WithArgs("%ada%", 20).
			WillReturnRows(rows)

		found, err := repo.FindAll(context.Background(), booking.DirectoryFilter{
			GuestName: "ada",
			Page:      1,
			PageSize:  20,
		})

		assert.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Equal(t, tenantID, found[0].TenantID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counts with tenant filter applied", func(t *testing.T) {
		repo, mock := newMockBookingRepository(t)

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE tenant_id = \$1`).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountAll(context.Background(), booking.DirectoryFilter{TenantID: &tenantID})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBookingRepository_Delete(t *testing.T) {
	t.Run("deletes existing booking", func(t *testing.T) {
		repo, mock := newMockBookingRepository(t)

		bookingID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectExec(`DELETE FROM "bookings" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, bookingID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), tenantID, bookingID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		repo, mock := newMockBookingRepository(t)

		bookingID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectExec(`DELETE FROM "bookings" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, bookingID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), tenantID, bookingID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
