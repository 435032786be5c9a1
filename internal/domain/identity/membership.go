package identity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/shared"
)

// MembershipStatus represents the state of a company membership
type MembershipStatus string

const (
	MembershipStatusActive  MembershipStatus = "active"
	MembershipStatusInvited MembershipStatus = "invited"
)

// Membership binds a user to a company with a role. Each user holds at
// most one membership; the persistence layer enforces this with a unique
// index on user_id.
type Membership struct {
	shared.BaseAggregateRoot
	CompanyID uuid.UUID
	UserID    uuid.UUID
	Email     string // denormalized for member listings and invites
	Role      Role
	Status    MembershipStatus
}

// NewMembership creates an active membership for an existing user
func NewMembership(companyID, userID uuid.UUID, email string, role Role) (*Membership, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY_ID", "Company ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}
	if role.IsSuperAdmin() {
		// Super admins operate platform-wide and never hold a company binding
		return nil, shared.NewDomainError("INVALID_ROLE", "Super admin cannot be a company member")
	}

	return &Membership{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyID:         companyID,
		UserID:            userID,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Role:              role,
		Status:            MembershipStatusActive,
	}, nil
}

// NewInvitedMembership records a pending invite by email. The user ID is
// filled in when the invite is accepted.
func NewInvitedMembership(companyID uuid.UUID, email string, role Role) (*Membership, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY_ID", "Company ID cannot be empty")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if !role.IsValid() || role.IsSuperAdmin() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}

	return &Membership{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyID:         companyID,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Role:              role,
		Status:            MembershipStatusInvited,
	}, nil
}

// Accept binds a pending invite to the accepting user
func (m *Membership) Accept(userID uuid.UUID) error {
	if m.Status != MembershipStatusInvited {
		return shared.NewDomainError("INVALID_STATE", "Membership is not a pending invite")
	}
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}

	m.UserID = userID
	m.Status = MembershipStatusActive
	m.Touch()
	m.IncrementVersion()

	return nil
}

// ChangeRole changes the member's role within the company
func (m *Membership) ChangeRole(role Role) error {
	if !role.IsValid() || role.IsSuperAdmin() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}

	m.Role = role
	m.Touch()
	m.IncrementVersion()

	return nil
}

// IsActive reports whether the membership grants tenant access
func (m *Membership) IsActive() bool {
	return m.Status == MembershipStatusActive
}
