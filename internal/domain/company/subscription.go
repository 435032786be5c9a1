package company

import (
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/shared"
)

// Plan represents a subscription plan tier
type Plan string

const (
	PlanFree  Plan = "free"
	PlanBasic Plan = "basic"
	PlanPro   Plan = "pro"
)

// IsValid reports whether the plan is a known tier
func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanBasic, PlanPro:
		return true
	}
	return false
}

// SubscriptionStatus represents the lifecycle state of a subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPaused   SubscriptionStatus = "paused"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusExpired  SubscriptionStatus = "expired"
)

// IsValid reports whether the status is a known state
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusPaused,
		SubscriptionStatusCanceled, SubscriptionStatusExpired:
		return true
	}
	return false
}

// Subscription is the plan record of a company. There is exactly one
// subscription per company; plan changes mutate it in place.
type Subscription struct {
	shared.BaseAggregateRoot
	CompanyID uuid.UUID
	Plan      Plan
	Status    SubscriptionStatus
	StartedAt time.Time
	ExpiresAt *time.Time
}

// NewFreeSubscription creates the default subscription every company
// receives at creation
func NewFreeSubscription(companyID uuid.UUID) (*Subscription, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY_ID", "Company ID cannot be empty")
	}

	return &Subscription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyID:         companyID,
		Plan:              PlanFree,
		Status:            SubscriptionStatusActive,
		StartedAt:         time.Now(),
	}, nil
}

// ChangePlan switches the subscription to a new plan and restarts the
// term. A nil expiresAt means the plan does not expire.
func (s *Subscription) ChangePlan(plan Plan, expiresAt *time.Time) error {
	if !plan.IsValid() {
		return shared.NewDomainError("INVALID_PLAN", "Unknown plan: "+string(plan))
	}
	if expiresAt != nil && !expiresAt.After(time.Now()) {
		return shared.NewDomainError("INVALID_EXPIRY", "Expiry must be in the future")
	}

	s.Plan = plan
	s.Status = SubscriptionStatusActive
	s.StartedAt = time.Now()
	s.ExpiresAt = expiresAt
	s.Touch()
	s.IncrementVersion()

	s.AddDomainEvent(NewSubscriptionChangedEvent(s))

	return nil
}

// ChangeStatus sets the subscription status directly (super admin console)
func (s *Subscription) ChangeStatus(status SubscriptionStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown status: "+string(status))
	}
	if s.Status == status {
		return shared.NewDomainError("INVALID_STATE", "Subscription already has status "+string(status))
	}

	s.Status = status
	s.Touch()
	s.IncrementVersion()

	s.AddDomainEvent(NewSubscriptionChangedEvent(s))

	return nil
}

// EffectiveStatus returns the status with expiry applied: a subscription
// whose term has lapsed reads as expired regardless of the stored status.
func (s *Subscription) EffectiveStatus(now time.Time) SubscriptionStatus {
	if s.ExpiresAt != nil && !now.Before(*s.ExpiresAt) && s.Status == SubscriptionStatusActive {
		return SubscriptionStatusExpired
	}
	return s.Status
}

// IsActive reports whether the subscription currently grants access
func (s *Subscription) IsActive(now time.Time) bool {
	return s.EffectiveStatus(now) == SubscriptionStatusActive
}
