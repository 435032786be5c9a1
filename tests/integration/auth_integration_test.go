package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	companyapp "github.com/harborstay/backend/internal/application/company"
	identityapp "github.com/harborstay/backend/internal/application/identity"
	"github.com/harborstay/backend/internal/domain/identity"
	"github.com/harborstay/backend/internal/domain/shared"
	"github.com/harborstay/backend/internal/infrastructure/auth"
	"github.com/harborstay/backend/internal/infrastructure/config"
	"github.com/harborstay/backend/internal/infrastructure/persistence"
	"github.com/harborstay/backend/internal/infrastructure/storage"
)

type authEnv struct {
	authService    *identityapp.AuthService
	companyService *companyapp.CompanyService
	blacklist      auth.TokenBlacklist
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()

	tdb := NewTestDB(t)
	log := zap.NewNop()

	userRepo := persistence.NewGormUserRepository(tdb.DB)
	profileRepo := persistence.NewGormProfileRepository(tdb.DB)
	membershipRepo := persistence.NewGormMembershipRepository(tdb.DB)
	companyRepo := persistence.NewGormCompanyRepository(tdb.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(tdb.DB)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-test-secret-0123456789abcdef",
		RefreshSecret:          "integration-test-refresh-0123456789abcdef",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "harborstay-test",
		MaxRefreshCount:        10,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	resolver := identityapp.NewSessionResolver(profileRepo, membershipRepo, log)
	authService := identityapp.NewAuthService(userRepo, profileRepo, resolver, jwtService, blacklist, log)
	companyService := companyapp.NewCompanyService(
		companyRepo, subscriptionRepo, membershipRepo, userRepo, storage.NewStubObjectStorage(), log)

	return &authEnv{
		authService:    authService,
		companyService: companyService,
		blacklist:      blacklist,
	}
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newAuthEnv(t)
	ctx := context.Background()

	registered, err := env.authService.Register(ctx, identityapp.RegisterInput{
		Email:    "skipper@example.com",
		Password: "correct-horse-battery",
		FullName: "Sam Skipper",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, identity.SessionStateAuthenticatedNoTenant, registered.Session.State)
	assert.Nil(t, registered.Session.CompanyID)

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := env.authService.Register(ctx, identityapp.RegisterInput{
			Email:    "Skipper@Example.com",
			Password: "another-password-123",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	})

	t.Run("login with correct password", func(t *testing.T) {
		result, err := env.authService.Login(ctx, identityapp.LoginInput{
			Email:    "skipper@example.com",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, registered.Session.UserID, result.Session.UserID)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := env.authService.Login(ctx, identityapp.LoginInput{
			Email:    "skipper@example.com",
			Password: "wrong-password",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuth_SessionGainsCompanyScope(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newAuthEnv(t)
	ctx := context.Background()

	registered, err := env.authService.Register(ctx, identityapp.RegisterInput{
		Email:    "owner@example.com",
		Password: "correct-horse-battery",
		FullName: "Olive Owner",
	})
	require.NoError(t, err)
	userID := registered.Session.UserID

	comp, err := env.companyService.CreateCompany(ctx, userID, "owner@example.com", companyapp.CreateCompanyInput{
		Name:     "Pier Nine",
		Currency: "USD",
	})
	require.NoError(t, err)

	session, err := env.authService.GetSession(ctx, identityapp.SessionInput{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, identity.SessionStateAuthenticatedWithTenant, session.State)
	assert.Equal(t, identity.RoleCompanyAdmin, session.Role)
	require.NotNil(t, session.CompanyID)
	assert.Equal(t, comp.ID, *session.CompanyID)
}

func TestAuth_RefreshAndLogout(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newAuthEnv(t)
	ctx := context.Background()

	registered, err := env.authService.Register(ctx, identityapp.RegisterInput{
		Email:    "deckhand@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	refreshed, err := env.authService.RefreshToken(ctx, identityapp.RefreshTokenInput{
		RefreshToken: registered.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)

	// Logout invalidates every outstanding session
	err = env.authService.Logout(ctx, identityapp.LogoutInput{
		UserID: registered.Session.UserID,
	})
	require.NoError(t, err)

	_, err = env.authService.RefreshToken(ctx, identityapp.RefreshTokenInput{
		RefreshToken: refreshed.RefreshToken,
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
}

func TestAuth_ChangePassword(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newAuthEnv(t)
	ctx := context.Background()

	registered, err := env.authService.Register(ctx, identityapp.RegisterInput{
		Email:    "purser@example.com",
		Password: "old-password-12345",
	})
	require.NoError(t, err)
	userID := registered.Session.UserID

	t.Run("wrong current password is rejected", func(t *testing.T) {
		err := env.authService.ChangePassword(ctx, identityapp.ChangePasswordInput{
			UserID:      userID,
			OldPassword: "not-the-password",
			NewPassword: "new-password-12345",
		})
		require.Error(t, err)
	})

	require.NoError(t, env.authService.ChangePassword(ctx, identityapp.ChangePasswordInput{
		UserID:      userID,
		OldPassword: "old-password-12345",
		NewPassword: "new-password-12345",
	}))

	_, err = env.authService.Login(ctx, identityapp.LoginInput{
		Email:    "purser@example.com",
		Password: "old-password-12345",
	})
	require.Error(t, err, "old password must stop working")

	_, err = env.authService.Login(ctx, identityapp.LoginInput{
		Email:    "purser@example.com",
		Password: "new-password-12345",
	})
	require.NoError(t, err)

	// Outstanding refresh tokens were issued before the change
	_, err = env.authService.RefreshToken(ctx, identityapp.RefreshTokenInput{
		RefreshToken: registered.RefreshToken,
	})
	require.Error(t, err, "pre-change refresh tokens must be revoked")
}
