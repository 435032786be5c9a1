package company

import (
	"strings"

	"github.com/harborstay/backend/internal/domain/shared"
)

// CompanyStatus represents the operational status of a company
type CompanyStatus string

const (
	CompanyStatusActive CompanyStatus = "active"
	CompanyStatusPaused CompanyStatus = "paused"
)

// Company is a tenant: a rental business that owns rooms and bookings.
type Company struct {
	shared.BaseAggregateRoot
	Name     string
	LogoURL  string
	Address  string
	Currency string // display label only, e.g. "USD"
	Status   CompanyStatus
}

// NewCompany creates a new active company
func NewCompany(name, address, currency string) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}
	if currency == "" {
		currency = "USD"
	}
	if len(currency) > 10 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency label cannot exceed 10 characters")
	}

	company := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           strings.TrimSpace(address),
		Currency:          currency,
		Status:            CompanyStatusActive,
	}

	company.AddDomainEvent(NewCompanyCreatedEvent(company))

	return company, nil
}

// UpdateSettings updates the company's editable settings
func (c *Company) UpdateSettings(name, address, currency string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}
	if currency != "" && len(currency) > 10 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency label cannot exceed 10 characters")
	}

	c.Name = name
	c.Address = strings.TrimSpace(address)
	if currency != "" {
		c.Currency = currency
	}
	c.Touch()
	c.IncrementVersion()

	return nil
}

// SetLogoURL records the public URL of the uploaded logo
func (c *Company) SetLogoURL(logoURL string) error {
	if len(logoURL) > 500 {
		return shared.NewDomainError("INVALID_LOGO_URL", "Logo URL cannot exceed 500 characters")
	}

	c.LogoURL = logoURL
	c.Touch()
	c.IncrementVersion()

	return nil
}

// Pause suspends the company. Paused companies keep their data but staff
// cannot sign in to them.
func (c *Company) Pause() error {
	if c.Status == CompanyStatusPaused {
		return shared.NewDomainError("INVALID_STATE", "Company is already paused")
	}

	c.Status = CompanyStatusPaused
	c.Touch()
	c.IncrementVersion()

	return nil
}

// Resume re-activates a paused company
func (c *Company) Resume() error {
	if c.Status == CompanyStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Company is already active")
	}

	c.Status = CompanyStatusActive
	c.Touch()
	c.IncrementVersion()

	return nil
}

// IsActive reports whether the company accepts logins and bookings
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}
