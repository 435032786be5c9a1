package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Email        string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string              `gorm:"type:varchar(255);not null"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time          `gorm:"index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Status:       m.Status,
		LastLoginAt:  m.LastLoginAt,
	}
	m.PopulateAggregateRoot(&user.BaseAggregateRoot)
	return user
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Status = u.Status
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// ProfileModel is the persistence model for the Profile domain entity.
type ProfileModel struct {
	AggregateModel
	UserID   uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex"`
	Email    string        `gorm:"type:varchar(200);not null"`
	FullName string        `gorm:"type:varchar(200)"`
	Role     identity.Role `gorm:"type:varchar(20);not null;default:'member'"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts the persistence model to a domain Profile entity.
func (m *ProfileModel) ToDomain() *identity.Profile {
	profile := &identity.Profile{
		UserID:   m.UserID,
		Email:    m.Email,
		FullName: m.FullName,
		Role:     m.Role,
	}
	m.PopulateAggregateRoot(&profile.BaseAggregateRoot)
	return profile
}

// FromDomain populates the persistence model from a domain Profile entity.
func (m *ProfileModel) FromDomain(p *identity.Profile) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.UserID = p.UserID
	m.Email = p.Email
	m.FullName = p.FullName
	m.Role = p.Role
}

// ProfileModelFromDomain creates a new persistence model from a domain Profile entity.
func ProfileModelFromDomain(p *identity.Profile) *ProfileModel {
	m := &ProfileModel{}
	m.FromDomain(p)
	return m
}

// MembershipModel is the persistence model for the Membership domain
// entity. The partial unique index on user_id enforces the one
// membership per user invariant while leaving invited rows (user_id is
// the nil UUID) unconstrained.
type MembershipModel struct {
	AggregateModel
	CompanyID uuid.UUID                 `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID                 `gorm:"type:uuid;index"`
	Email     string                    `gorm:"type:varchar(200);not null;index"`
	Role      identity.Role             `gorm:"type:varchar(20);not null"`
	Status    identity.MembershipStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (MembershipModel) TableName() string {
	return "company_users"
}

// ToDomain converts the persistence model to a domain Membership entity.
func (m *MembershipModel) ToDomain() *identity.Membership {
	membership := &identity.Membership{
		CompanyID: m.CompanyID,
		UserID:    m.UserID,
		Email:     m.Email,
		Role:      m.Role,
		Status:    m.Status,
	}
	m.PopulateAggregateRoot(&membership.BaseAggregateRoot)
	return membership
}

// FromDomain populates the persistence model from a domain Membership entity.
func (m *MembershipModel) FromDomain(membership *identity.Membership) {
	m.FromDomainAggregateRoot(membership.BaseAggregateRoot)
	m.CompanyID = membership.CompanyID
	m.UserID = membership.UserID
	m.Email = membership.Email
	m.Role = membership.Role
	m.Status = membership.Status
}

// MembershipModelFromDomain creates a new persistence model from a domain Membership entity.
func MembershipModelFromDomain(membership *identity.Membership) *MembershipModel {
	m := &MembershipModel{}
	m.FromDomain(membership)
	return m
}
