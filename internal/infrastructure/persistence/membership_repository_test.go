package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/harborstay/backend/internal/domain/identity"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/harborstay/backend/tests/testutil"
)

// newMockMembershipRepository creates a GormMembershipRepository with a mocked SQL connection
func newMockMembershipRepository(t *testing.T) (*GormMembershipRepository, sqlmock.Sqlmock) {
	mdb := testutil.NewMockDB(t)
	return NewGormMembershipRepository(mdb.DB), mdb.Mock
}

func TestGormMembershipRepository_FindByUserID(t *testing.T) {
	t.Run("finds the active membership", func(t *testing.T) {
		repo, mock := newMockMembershipRepository(t)

		membershipID := uuid.New()
		companyID := uuid.New()
		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "company_id", "user_id", "email", "role", "status"}).
			AddRow(membershipID, companyID, userID, "ada@example.com", "manager", "active")

		mock.ExpectQuery(`SELECT \* FROM "company_users" WHERE user_id = \$1 AND status = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(userID, string(identity.MembershipStatusActive), 1).
			WillReturnRows(rows)

		membership, err := repo.FindByUserID(context.Background(), userID)

		assert.NoError(t, err)
		assert.NotNil(t, membership)
		assert.Equal(t, companyID, membership.CompanyID)
		assert.Equal(t, identity.RoleManager, membership.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil user ID short-circuits without a query", func(t *testing.T) {
		repo, mock := newMockMembershipRepository(t)

		membership, err := repo.FindByUserID(context.Background(), uuid.Nil)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, membership)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("user without a company yields ErrNotFound", func(t *testing.T) {
		repo, mock := newMockMembershipRepository(t)

		userID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "company_users" WHERE user_id = \$1 AND status = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(userID, string(identity.MembershipStatusActive), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByUserID(context.Background(), userID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormMembershipRepository_FindInviteByEmail(t *testing.T) {
	t.Run("normalizes the email before matching", func(t *testing.T) {
		repo, mock := newMockMembershipRepository(t)

		membershipID := uuid.New()
		companyID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "company_id", "user_id", "email", "role", "status"}).
			AddRow(membershipID, companyID, uuid.Nil, "new.hire@example.com", "member", "invited")

		mock.ExpectQuery(`SELECT \* FROM "company_users" WHERE company_id = \$1 AND email = \$2 AND status = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(companyID, "new.hire@example.com", string(identity.MembershipStatusInvited), 1).
			WillReturnRows(rows)

		invite, err := repo.FindInviteByEmail(context.Background(), companyID, "  New.Hire@Example.COM ")

		assert.NoError(t, err)
		assert.NotNil(t, invite)
		assert.Equal(t, identity.MembershipStatusInvited, invite.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty email", func(t *testing.T) {
		repo, _ := newMockMembershipRepository(t)

		_, err := repo.FindInviteByEmail(context.Background(), uuid.New(), "")

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_EMAIL", domainErr.Code)
	})
}

func TestGormMembershipRepository_Delete(t *testing.T) {
	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		repo, mock := newMockMembershipRepository(t)

		membershipID := uuid.New()

		mock.ExpectExec(`DELETE FROM "company_users" WHERE id = \$1`).
			WithArgs(membershipID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), membershipID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
