package identity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/shared"
)

// Profile holds the display identity and global role of a user.
// A profile is expected to exist for every user; the session resolver
// creates a default one when it is missing.
type Profile struct {
	shared.BaseAggregateRoot
	UserID   uuid.UUID
	Email    string
	FullName string
	Role     Role
}

// NewProfile creates a profile for a user with an explicit role
func NewProfile(userID uuid.UUID, email, fullName string, role Role) (*Profile, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}
	if fullName != "" && len(fullName) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Full name cannot exceed 200 characters")
	}

	return &Profile{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		FullName:          strings.TrimSpace(fullName),
		Role:              role,
	}, nil
}

// NewDefaultProfile creates the self-healing fallback profile with the
// member role. Used when a user authenticates without a profile row.
func NewDefaultProfile(userID uuid.UUID, email string) (*Profile, error) {
	return NewProfile(userID, email, "", RoleMember)
}

// ChangeRole changes the global role of the profile
func (p *Profile) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}

	p.Role = role
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetFullName updates the display name
func (p *Profile) SetFullName(fullName string) error {
	if len(fullName) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot exceed 200 characters")
	}

	p.FullName = strings.TrimSpace(fullName)
	p.Touch()
	p.IncrementVersion()

	return nil
}
