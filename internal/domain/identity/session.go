package identity

import (
	"time"

	"github.com/google/uuid"
)

// SessionState describes how far authorization resolution has progressed
// for a request. Every resolution terminates in one of the Authenticated*
// states or Unauthenticated; ResolvingProfile is only observable while a
// resolution is in flight.
type SessionState string

const (
	SessionStateUnauthenticated         SessionState = "unauthenticated"
	SessionStateResolvingProfile        SessionState = "resolving_profile"
	SessionStateAuthenticatedNoTenant   SessionState = "authenticated_no_tenant"
	SessionStateAuthenticatedWithTenant SessionState = "authenticated_with_tenant"
	SessionStateAuthenticatedSuperAdmin SessionState = "authenticated_super_admin"
)

// Session is the resolved authorization context of an authenticated user.
type Session struct {
	State      SessionState
	UserID     uuid.UUID
	Email      string
	Profile    *Profile
	CompanyID  *uuid.UUID
	Role       Role
	ResolvedAt time.Time
}

// Unauthenticated returns the zero session
func Unauthenticated() Session {
	return Session{State: SessionStateUnauthenticated, ResolvedAt: time.Now()}
}

// Permissions holds the per-access authorization flags. They are derived
// from the session on every call and never stored.
type Permissions struct {
	IsSuperAdmin      bool `json:"is_super_admin"`
	IsCompanyAdmin    bool `json:"is_company_admin"`
	IsManager         bool `json:"is_manager"`
	CanManageCompany  bool `json:"can_manage_company"`
	CanCreateBookings bool `json:"can_create_bookings"`
}

// Permissions computes the authorization flags for the session
func (s *Session) Permissions() Permissions {
	if !s.IsAuthenticated() {
		return Permissions{}
	}
	return Permissions{
		IsSuperAdmin:      s.Role.IsSuperAdmin(),
		IsCompanyAdmin:    s.Role.IsCompanyAdmin(),
		IsManager:         s.Role.IsManager(),
		CanManageCompany:  s.Role.CanManageCompany(),
		CanCreateBookings: s.Role.CanCreateBookings(),
	}
}

// IsAuthenticated reports whether the session belongs to a signed-in user
func (s *Session) IsAuthenticated() bool {
	switch s.State {
	case SessionStateAuthenticatedNoTenant,
		SessionStateAuthenticatedWithTenant,
		SessionStateAuthenticatedSuperAdmin:
		return true
	}
	return false
}

// HasTenant reports whether the session is scoped to a company
func (s *Session) HasTenant() bool {
	return s.State == SessionStateAuthenticatedWithTenant && s.CompanyID != nil
}

// TenantID returns the company the session is scoped to, or uuid.Nil.
// Super admin sessions never carry a tenant.
func (s *Session) TenantID() uuid.UUID {
	if s.CompanyID == nil {
		return uuid.Nil
	}
	return *s.CompanyID
}
