package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/identity"
	"github.com/harborstay/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SessionResolver turns an authenticated user identity into a resolved
// session: profile, role and company scope. Resolution always
// terminates in one of the Authenticated* states; only an unrecoverable
// credential failure maps back to Unauthenticated, and that path is
// handled before resolution by the auth service.
type SessionResolver struct {
	profileRepo    identity.ProfileRepository
	membershipRepo identity.MembershipRepository
	logger         *zap.Logger
}

// NewSessionResolver creates a new session resolver
func NewSessionResolver(
	profileRepo identity.ProfileRepository,
	membershipRepo identity.MembershipRepository,
	logger *zap.Logger,
) *SessionResolver {
	return &SessionResolver{
		profileRepo:    profileRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

// Resolve resolves the session for an authenticated user.
//
// A missing profile is not an error: one is created with the member
// role. Profile and membership fetch failures are logged and degrade
// the session instead of failing it, so sign-in never blocks on them.
// Super admins skip the membership lookup entirely and never carry a
// company scope.
func (r *SessionResolver) Resolve(ctx context.Context, userID uuid.UUID, email string) identity.Session {
	session := identity.Session{
		State:      identity.SessionStateResolvingProfile,
		UserID:     userID,
		Email:      email,
		ResolvedAt: time.Now(),
	}

	profile := r.resolveProfile(ctx, userID, email)
	session.Profile = profile
	if profile != nil {
		session.Role = profile.Role
	}

	if profile != nil && profile.Role.IsSuperAdmin() {
		session.State = identity.SessionStateAuthenticatedSuperAdmin
		return session
	}

	membership, err := r.membershipRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			r.logger.Warn("Membership lookup failed, resolving without company scope",
				zap.String("user_id", userID.String()),
				zap.Error(err))
		}
		session.State = identity.SessionStateAuthenticatedNoTenant
		return session
	}

	companyID := membership.CompanyID
	session.CompanyID = &companyID
	session.State = identity.SessionStateAuthenticatedWithTenant
	return session
}

// resolveProfile loads the user's profile, creating a default one when
// none exists. Returns nil only when the lookup fails for another
// reason.
func (r *SessionResolver) resolveProfile(ctx context.Context, userID uuid.UUID, email string) *identity.Profile {
	profile, err := r.profileRepo.FindByUserID(ctx, userID)
	if err == nil {
		return profile
	}

	if !errors.Is(err, shared.ErrNotFound) {
		r.logger.Warn("Profile lookup failed, resolving with null profile",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil
	}

	created, err := identity.NewDefaultProfile(userID, email)
	if err != nil {
		r.logger.Error("Failed to build default profile",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil
	}

	if err := r.profileRepo.Save(ctx, created); err != nil {
		r.logger.Error("Failed to save default profile",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil
	}

	r.logger.Info("Created default profile for user",
		zap.String("user_id", userID.String()))

	return created
}
