package company

import (
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/company"
	"github.com/harborstay/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// CreateCompanyInput contains the input for company creation
type CreateCompanyInput struct {
	Name     string
	Address  string
	Currency string
}

// UpdateSettingsInput contains the editable company settings
type UpdateSettingsInput struct {
	Name     string
	Address  string
	Currency string
}

// SubscriptionInfo is the subscription summary attached to company reads.
// Status carries the effective status, with expiry already applied.
type SubscriptionInfo struct {
	ID        uuid.UUID
	Plan      company.Plan
	Status    company.SubscriptionStatus
	StartedAt time.Time
	ExpiresAt *time.Time
}

// CompanyResponse is the company detail returned to callers
type CompanyResponse struct {
	ID           uuid.UUID
	Name         string
	LogoURL      string
	Address      string
	Currency     string
	Status       company.CompanyStatus
	Subscription *SubscriptionInfo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MemberResponse is one row of a company's member listing
type MemberResponse struct {
	MembershipID uuid.UUID
	UserID       uuid.UUID
	Email        string
	Role         identity.Role
	Status       identity.MembershipStatus
	JoinedAt     time.Time
}

// InviteMemberInput contains the input for inviting a member
type InviteMemberInput struct {
	Email string
	Role  identity.Role
}

// ChangeMemberRoleInput contains the input for a member role change
type ChangeMemberRoleInput struct {
	MembershipID uuid.UUID
	Role         identity.Role
}

// AdminCompanyResponse is one row of the super admin company listing,
// carrying the company's all-time booking volume alongside its detail
type AdminCompanyResponse struct {
	CompanyResponse
	MemberCount   int64
	TotalBookings int64
	TotalRevenue  decimal.Decimal
}

// ListCompaniesInput contains the paging input for the admin listing
type ListCompaniesInput struct {
	Page     int
	PageSize int
	Search   string
}

// ListCompaniesResult is the paginated admin company listing
type ListCompaniesResult struct {
	Companies  []AdminCompanyResponse
	TotalCount int64
	Page       int
	PageSize   int
}

// PlatformStatsResponse is the platform-wide headline for the super
// admin console
type PlatformStatsResponse struct {
	TotalCompanies      int64
	TotalUsers          int64
	TotalBookings       int64
	TotalRevenue        decimal.Decimal
	ActiveSubscriptions int64
}

// ListBookingsInput contains the paging and filter input for the
// cross-tenant booking listing
type ListBookingsInput struct {
	Page      int
	PageSize  int
	CompanyID *uuid.UUID
	Search    string
}

// AdminBookingResponse is one row of the cross-tenant booking listing.
// Company and room names are resolved so the console never joins.
type AdminBookingResponse struct {
	ID          uuid.UUID
	CompanyID   uuid.UUID
	CompanyName string
	Currency    string
	RoomID      uuid.UUID
	RoomName    string
	GuestName   string
	GuestCount  int
	CheckIn     time.Time
	CheckOut    time.Time
	TotalAmount decimal.Decimal
	IsPaid      bool
	CreatedAt   time.Time
}

// ListBookingsResult is the paginated cross-tenant booking listing
type ListBookingsResult struct {
	Bookings   []AdminBookingResponse
	TotalCount int64
	Page       int
	PageSize   int
}

// UpdateSubscriptionInput contains the input for a subscription change
type UpdateSubscriptionInput struct {
	Plan      company.Plan
	ExpiresAt *time.Time
}

// InitiateLogoUploadInput contains the input for a logo upload request
type InitiateLogoUploadInput struct {
	FileName    string
	ContentType string
}

// InitiateLogoUploadResponse carries the presigned upload target
type InitiateLogoUploadResponse struct {
	StorageKey string
	UploadURL  string
	ExpiresAt  time.Time
}

// ToCompanyResponse converts a company aggregate to its response form
func ToCompanyResponse(c *company.Company, sub *company.Subscription, now time.Time) CompanyResponse {
	resp := CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		LogoURL:   c.LogoURL,
		Address:   c.Address,
		Currency:  c.Currency,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if sub != nil {
		resp.Subscription = &SubscriptionInfo{
			ID:        sub.ID,
			Plan:      sub.Plan,
			Status:    sub.EffectiveStatus(now),
			StartedAt: sub.StartedAt,
			ExpiresAt: sub.ExpiresAt,
		}
	}
	return resp
}

// ToMemberResponses converts memberships to their listing form
func ToMemberResponses(memberships []identity.Membership) []MemberResponse {
	responses := make([]MemberResponse, len(memberships))
	for i, m := range memberships {
		responses[i] = MemberResponse{
			MembershipID: m.ID,
			UserID:       m.UserID,
			Email:        m.Email,
			Role:         m.Role,
			Status:       m.Status,
			JoinedAt:     m.CreatedAt,
		}
	}
	return responses
}
