package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/company"
)

// CompanyModel is the persistence model for the Company domain entity.
type CompanyModel struct {
	AggregateModel
	Name     string                `gorm:"type:varchar(200);not null"`
	LogoURL  string                `gorm:"type:varchar(500)"`
	Address  string                `gorm:"type:text"`
	Currency string                `gorm:"type:varchar(10);not null;default:'USD'"`
	Status   company.CompanyStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *company.Company {
	c := &company.Company{
		Name:     m.Name,
		LogoURL:  m.LogoURL,
		Address:  m.Address,
		Currency: m.Currency,
		Status:   m.Status,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Company entity.
func (m *CompanyModel) FromDomain(c *company.Company) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.LogoURL = c.LogoURL
	m.Address = c.Address
	m.Currency = c.Currency
	m.Status = c.Status
}

// CompanyModelFromDomain creates a new persistence model from a domain Company entity.
func CompanyModelFromDomain(c *company.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}

// SubscriptionModel is the persistence model for the Subscription domain entity.
type SubscriptionModel struct {
	AggregateModel
	CompanyID uuid.UUID                  `gorm:"type:uuid;not null;uniqueIndex"`
	Plan      company.Plan               `gorm:"type:varchar(20);not null;default:'free'"`
	Status    company.SubscriptionStatus `gorm:"type:varchar(20);not null;default:'active'"`
	StartedAt time.Time                  `gorm:"not null"`
	ExpiresAt *time.Time                 `gorm:"index"`
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToDomain converts the persistence model to a domain Subscription entity.
func (m *SubscriptionModel) ToDomain() *company.Subscription {
	s := &company.Subscription{
		CompanyID: m.CompanyID,
		Plan:      m.Plan,
		Status:    m.Status,
		StartedAt: m.StartedAt,
		ExpiresAt: m.ExpiresAt,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)
	return s
}

// FromDomain populates the persistence model from a domain Subscription entity.
func (m *SubscriptionModel) FromDomain(s *company.Subscription) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.CompanyID = s.CompanyID
	m.Plan = s.Plan
	m.Status = s.Status
	m.StartedAt = s.StartedAt
	m.ExpiresAt = s.ExpiresAt
}

// SubscriptionModelFromDomain creates a new persistence model from a domain Subscription entity.
func SubscriptionModelFromDomain(s *company.Subscription) *SubscriptionModel {
	m := &SubscriptionModel{}
	m.FromDomain(s)
	return m
}
