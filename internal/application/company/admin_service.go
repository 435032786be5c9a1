package company

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harborstay/backend/internal/domain/booking"
	"github.com/harborstay/backend/internal/domain/company"
	"github.com/harborstay/backend/internal/domain/identity"
	"github.com/harborstay/backend/internal/domain/report"
	"github.com/harborstay/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AdminService is the super admin console: platform-wide company,
// subscription and booking oversight. Callers are gated to the super
// admin role at the transport layer.
type AdminService struct {
	companyRepo      company.CompanyRepository
	subscriptionRepo company.SubscriptionRepository
	membershipRepo   identity.MembershipRepository
	profileRepo      identity.ProfileRepository
	reportRepo       report.ConsoleReportRepository
	bookingDir       booking.BookingDirectory
	roomRepo         booking.RoomRepository
	logger           *zap.Logger
}

// NewAdminService creates a new super admin service
func NewAdminService(
	companyRepo company.CompanyRepository,
	subscriptionRepo company.SubscriptionRepository,
	membershipRepo identity.MembershipRepository,
	profileRepo identity.ProfileRepository,
	reportRepo report.ConsoleReportRepository,
	bookingDir booking.BookingDirectory,
	roomRepo booking.RoomRepository,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		companyRepo:      companyRepo,
		subscriptionRepo: subscriptionRepo,
		membershipRepo:   membershipRepo,
		profileRepo:      profileRepo,
		reportRepo:       reportRepo,
		bookingDir:       bookingDir,
		roomRepo:         roomRepo,
		logger:           logger,
	}
}

// ListCompanies returns a page of companies with member counts, booking
// totals and subscription summaries. Subscriptions are fetched in one
// batch for the page.
func (s *AdminService) ListCompanies(ctx context.Context, input ListCompaniesInput) (*ListCompaniesResult, error) {
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.PageSize <= 0 {
		input.PageSize = 20
	}

	filter := shared.Filter{
		Page:     input.Page,
		PageSize: input.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Search:   input.Search,
	}

	companies, err := s.companyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.companyRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	companyIDs := make([]uuid.UUID, len(companies))
	for i, c := range companies {
		companyIDs[i] = c.ID
	}

	subsByCompany := make(map[uuid.UUID]*company.Subscription, len(companyIDs))
	if len(companyIDs) > 0 {
		subs, err := s.subscriptionRepo.FindByCompanyIDs(ctx, companyIDs)
		if err != nil {
			return nil, err
		}
		for i := range subs {
			subsByCompany[subs[i].CompanyID] = &subs[i]
		}
	}

	now := time.Now()
	rows := make([]AdminCompanyResponse, len(companies))
	for i := range companies {
		c := &companies[i]
		count, err := s.membershipRepo.CountByCompany(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		totals, err := s.reportRepo.GetLifetimeTotals(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		rows[i] = AdminCompanyResponse{
			CompanyResponse: ToCompanyResponse(c, subsByCompany[c.ID], now),
			MemberCount:     count,
			TotalBookings:   totals.TotalBookings,
			TotalRevenue:    totals.TotalRevenue,
		}
	}

	return &ListCompaniesResult{
		Companies:  rows,
		TotalCount: total,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}, nil
}

// GetPlatformStats returns the platform-wide headline numbers. The
// underlying counts run concurrently and any failure fails the read.
func (s *AdminService) GetPlatformStats(ctx context.Context) (*PlatformStatsResponse, error) {
	var (
		companies  int64
		users      int64
		totals     *report.LifetimeTotals
		activeSubs int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		companies, err = s.companyRepo.Count(gctx, shared.Filter{})
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.profileRepo.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		totals, err = s.reportRepo.GetPlatformTotals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		activeSubs, err = s.subscriptionRepo.CountByStatus(gctx, company.SubscriptionStatusActive)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Platform stats build failed", zap.Error(err))
		return nil, shared.NewDomainError("PLATFORM_STATS_FAILED", "Failed to build platform stats")
	}

	return &PlatformStatsResponse{
		TotalCompanies:      companies,
		TotalUsers:          users,
		TotalBookings:       totals.TotalBookings,
		TotalRevenue:        totals.TotalRevenue,
		ActiveSubscriptions: activeSubs,
	}, nil
}

// ListBookings returns a page of bookings across every tenant, newest
// first. Company and room names are resolved per page.
func (s *AdminService) ListBookings(ctx context.Context, input ListBookingsInput) (*ListBookingsResult, error) {
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.PageSize <= 0 {
		input.PageSize = 20
	}

	filter := booking.DirectoryFilter{
		TenantID:  input.CompanyID,
		GuestName: input.Search,
		Page:      input.Page,
		PageSize:  input.PageSize,
	}

	bookings, err := s.bookingDir.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.bookingDir.CountAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	companiesByID := make(map[uuid.UUID]*company.Company)
	roomNames := make(map[uuid.UUID]string)

	rows := make([]AdminBookingResponse, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		comp, ok := companiesByID[b.TenantID]
		if !ok {
			if comp, err = s.companyRepo.FindByID(ctx, b.TenantID); err != nil {
				if !errors.Is(err, shared.ErrNotFound) {
					return nil, err
				}
				comp = nil
			}
			companiesByID[b.TenantID] = comp
		}
		roomName, ok := roomNames[b.RoomID]
		if !ok {
			if room, err := s.roomRepo.FindByID(ctx, b.TenantID, b.RoomID); err == nil {
				roomName = room.Name
			}
			roomNames[b.RoomID] = roomName
		}

		row := AdminBookingResponse{
			ID:          b.ID,
			CompanyID:   b.TenantID,
			RoomID:      b.RoomID,
			RoomName:    roomName,
			GuestName:   b.GuestName,
			GuestCount:  b.GuestCount,
			CheckIn:     b.CheckIn,
			CheckOut:    b.CheckOut,
			TotalAmount: b.TotalAmount,
			IsPaid:      b.IsPaid,
			CreatedAt:   b.CreatedAt,
		}
		if comp != nil {
			row.CompanyName = comp.Name
			row.Currency = comp.Currency
		}
		rows[i] = row
	}

	return &ListBookingsResult{
		Bookings:   rows,
		TotalCount: total,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}, nil
}

// GetCompany returns one company with its subscription summary
func (s *AdminService) GetCompany(ctx context.Context, companyID uuid.UUID) (*CompanyResponse, error) {
	comp, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
		}
		return nil, err
	}

	sub, err := s.subscriptionRepo.FindByCompanyID(ctx, companyID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	response := ToCompanyResponse(comp, sub, time.Now())
	return &response, nil
}

// CreateCompany creates a company from the console, without an owner
// membership. Admins are attached afterwards through invites.
func (s *AdminService) CreateCompany(ctx context.Context, input CreateCompanyInput) (*CompanyResponse, error) {
	comp, err := company.NewCompany(input.Name, input.Address, input.Currency)
	if err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, comp); err != nil {
		return nil, err
	}

	sub, err := company.NewFreeSubscription(comp.ID)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("Company created from console", zap.String("company_id", comp.ID.String()))

	response := ToCompanyResponse(comp, sub, time.Now())
	return &response, nil
}

// UpdateSubscription switches a company's plan and restarts its term
func (s *AdminService) UpdateSubscription(ctx context.Context, companyID uuid.UUID, input UpdateSubscriptionInput) (*SubscriptionInfo, error) {
	sub, err := s.findSubscription(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if err := sub.ChangePlan(input.Plan, input.ExpiresAt); err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("Subscription plan changed",
		zap.String("company_id", companyID.String()),
		zap.String("plan", string(input.Plan)))

	return subscriptionInfo(sub), nil
}

// ChangeSubscriptionStatus sets the subscription status directly
func (s *AdminService) ChangeSubscriptionStatus(ctx context.Context, companyID uuid.UUID, status company.SubscriptionStatus) (*SubscriptionInfo, error) {
	sub, err := s.findSubscription(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if err := sub.ChangeStatus(status); err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("Subscription status changed",
		zap.String("company_id", companyID.String()),
		zap.String("status", string(status)))

	return subscriptionInfo(sub), nil
}

// PauseCompany suspends a company platform-wide
func (s *AdminService) PauseCompany(ctx context.Context, companyID uuid.UUID) (*CompanyResponse, error) {
	return s.changeCompanyStatus(ctx, companyID, (*company.Company).Pause)
}

// ResumeCompany re-activates a paused company
func (s *AdminService) ResumeCompany(ctx context.Context, companyID uuid.UUID) (*CompanyResponse, error) {
	return s.changeCompanyStatus(ctx, companyID, (*company.Company).Resume)
}

func (s *AdminService) changeCompanyStatus(ctx context.Context, companyID uuid.UUID, change func(*company.Company) error) (*CompanyResponse, error) {
	comp, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
		}
		return nil, err
	}

	if err := change(comp); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, comp); err != nil {
		return nil, err
	}

	s.logger.Info("Company status changed",
		zap.String("company_id", companyID.String()),
		zap.String("status", string(comp.Status)))

	sub, err := s.subscriptionRepo.FindByCompanyID(ctx, companyID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	response := ToCompanyResponse(comp, sub, time.Now())
	return &response, nil
}

func (s *AdminService) findSubscription(ctx context.Context, companyID uuid.UUID) (*company.Subscription, error) {
	sub, err := s.subscriptionRepo.FindByCompanyID(ctx, companyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SUBSCRIPTION_NOT_FOUND", "Company has no subscription")
		}
		return nil, err
	}
	return sub, nil
}

func subscriptionInfo(sub *company.Subscription) *SubscriptionInfo {
	return &SubscriptionInfo{
		ID:        sub.ID,
		Plan:      sub.Plan,
		Status:    sub.EffectiveStatus(time.Now()),
		StartedAt: sub.StartedAt,
		ExpiresAt: sub.ExpiresAt,
	}
}
