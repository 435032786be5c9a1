package company

import (
	"github.com/harborstay/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeCompany      = "Company"
	AggregateTypeSubscription = "Subscription"
)

// Company domain event types
const (
	EventTypeCompanyCreated      = "CompanyCreated"
	EventTypeSubscriptionChanged = "SubscriptionChanged"
)

// CompanyCreatedEvent is published when a company is created
type CompanyCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewCompanyCreatedEvent creates a new CompanyCreatedEvent
func NewCompanyCreatedEvent(c *Company) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyCreated, AggregateTypeCompany, c.ID, c.ID),
		Name:            c.Name,
	}
}

// SubscriptionChangedEvent is published when a subscription's plan or
// status changes
type SubscriptionChangedEvent struct {
	shared.BaseDomainEvent
	Plan   Plan               `json:"plan"`
	Status SubscriptionStatus `json:"status"`
}

// NewSubscriptionChangedEvent creates a new SubscriptionChangedEvent
func NewSubscriptionChangedEvent(s *Subscription) *SubscriptionChangedEvent {
	return &SubscriptionChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubscriptionChanged, AggregateTypeSubscription, s.ID, s.CompanyID),
		Plan:            s.Plan,
		Status:          s.Status,
	}
}
