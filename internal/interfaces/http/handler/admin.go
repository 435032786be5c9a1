package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	companyapp "github.com/harborstay/backend/internal/application/company"
	"github.com/harborstay/backend/internal/domain/company"
	"github.com/harborstay/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// AdminHandler handles the super admin console endpoints. Every route is
// gated on the super admin role; none of them carry a company scope.
type AdminHandler struct {
	BaseHandler
	adminService *companyapp.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *companyapp.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// ListCompaniesRequest represents the console listing query parameters
type ListCompaniesRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
}

// AdminCreateCompanyRequest represents a console company creation
type AdminCreateCompanyRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Address  string `json:"address" binding:"max=500"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
}

// UpdateSubscriptionRequest represents a console plan change
type UpdateSubscriptionRequest struct {
	Plan      string     `json:"plan" binding:"required,oneof=free basic pro"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// ChangeSubscriptionStatusRequest represents a console status change
type ChangeSubscriptionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active paused canceled expired"`
}

// AdminCompanyResponse is one row of the console company listing
type AdminCompanyResponse struct {
	CompanyResponse
	MemberCount   int64           `json:"member_count"`
	TotalBookings int64           `json:"total_bookings"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

func toAdminCompanyResponse(resp companyapp.AdminCompanyResponse) AdminCompanyResponse {
	return AdminCompanyResponse{
		CompanyResponse: toCompanyResponse(&resp.CompanyResponse),
		MemberCount:     resp.MemberCount,
		TotalBookings:   resp.TotalBookings,
		TotalRevenue:    resp.TotalRevenue,
	}
}

// PlatformStatsResponse is the platform-wide headline for the console
type PlatformStatsResponse struct {
	TotalCompanies      int64           `json:"total_companies"`
	TotalUsers          int64           `json:"total_users"`
	TotalBookings       int64           `json:"total_bookings"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	ActiveSubscriptions int64           `json:"active_subscriptions"`
}

// ListAdminBookingsRequest represents the cross-tenant booking listing
// query parameters
type ListAdminBookingsRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	CompanyID string `form:"company_id" binding:"omitempty,uuid"`
	Search    string `form:"search"`
}

// AdminBookingResponse is one row of the cross-tenant booking listing
type AdminBookingResponse struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	CompanyName string          `json:"company_name,omitempty"`
	Currency    string          `json:"currency,omitempty"`
	RoomID      uuid.UUID       `json:"room_id"`
	RoomName    string          `json:"room_name,omitempty"`
	GuestName   string          `json:"guest_name"`
	GuestCount  int             `json:"guest_count"`
	CheckIn     time.Time       `json:"check_in"`
	CheckOut    time.Time       `json:"check_out"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	IsPaid      bool            `json:"is_paid"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ListCompanies godoc
// @Summary      List all companies
// @Tags         admin
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Match against company name"
// @Success      200 {object} dto.Response{data=[]AdminCompanyResponse}
// @Security     BearerAuth
// @Router       /admin/companies [get]
func (h *AdminHandler) ListCompanies(c *gin.Context) {
	var req ListCompaniesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.adminService.ListCompanies(c.Request.Context(), companyapp.ListCompaniesInput{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]AdminCompanyResponse, len(result.Companies))
	for i, comp := range result.Companies {
		responses[i] = toAdminCompanyResponse(comp)
	}
	h.SuccessWithMeta(c, responses, result.TotalCount, result.Page, result.PageSize)
}

// GetPlatformStats godoc
// @Summary      Get platform-wide statistics
// @Description  Total companies, users, bookings, revenue and active
// @Description  subscriptions across every tenant
// @Tags         admin
// @Produce      json
// @Success      200 {object} dto.Response{data=PlatformStatsResponse}
// @Security     BearerAuth
// @Router       /admin/stats [get]
func (h *AdminHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.adminService.GetPlatformStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, PlatformStatsResponse{
		TotalCompanies:      stats.TotalCompanies,
		TotalUsers:          stats.TotalUsers,
		TotalBookings:       stats.TotalBookings,
		TotalRevenue:        stats.TotalRevenue,
		ActiveSubscriptions: stats.ActiveSubscriptions,
	})
}

// ListBookings godoc
// @Summary      List bookings across all companies
// @Tags         admin
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        company_id query string false "Filter by company"
// @Param        search query string false "Match against guest name"
// @Success      200 {object} dto.Response{data=[]AdminBookingResponse}
// @Security     BearerAuth
// @Router       /admin/bookings [get]
func (h *AdminHandler) ListBookings(c *gin.Context) {
	var req ListAdminBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := companyapp.ListBookingsInput{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
	}
	if req.CompanyID != "" {
		companyID, err := uuid.Parse(req.CompanyID)
		if err != nil {
			h.BadRequest(c, "Invalid company ID")
			return
		}
		input.CompanyID = &companyID
	}

	result, err := h.adminService.ListBookings(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]AdminBookingResponse, len(result.Bookings))
	for i, b := range result.Bookings {
		responses[i] = AdminBookingResponse{
			ID:          b.ID,
			CompanyID:   b.CompanyID,
			CompanyName: b.CompanyName,
			Currency:    b.Currency,
			RoomID:      b.RoomID,
			RoomName:    b.RoomName,
			GuestName:   b.GuestName,
			GuestCount:  b.GuestCount,
			CheckIn:     b.CheckIn,
			CheckOut:    b.CheckOut,
			TotalAmount: b.TotalAmount,
			IsPaid:      b.IsPaid,
			CreatedAt:   b.CreatedAt,
		}
	}
	h.SuccessWithMeta(c, responses, result.TotalCount, result.Page, result.PageSize)
}

// GetCompany godoc
// @Summary      Get a company
// @Tags         admin
// @Produce      json
// @Param        id path string true "Company ID"
// @Success      200 {object} dto.Response{data=CompanyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/companies/{id} [get]
func (h *AdminHandler) GetCompany(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	resp, err := h.adminService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCompanyResponse(resp))
}

// CreateCompany godoc
// @Summary      Create a company from the console
// @Description  The company starts without members; admins are attached
// @Description  afterwards through invites
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body AdminCreateCompanyRequest true "Company data"
// @Success      201 {object} dto.Response{data=CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/companies [post]
func (h *AdminHandler) CreateCompany(c *gin.Context) {
	var req AdminCreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.adminService.CreateCompany(c.Request.Context(), companyapp.CreateCompanyInput{
		Name:     req.Name,
		Address:  req.Address,
		Currency: req.Currency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toCompanyResponse(resp))
}

// UpdateSubscription godoc
// @Summary      Change a company's plan
// @Description  Switches the plan and restarts the subscription term
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Company ID"
// @Param        request body UpdateSubscriptionRequest true "Plan change"
// @Success      200 {object} dto.Response{data=SubscriptionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/companies/{id}/subscription [put]
func (h *AdminHandler) UpdateSubscription(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.adminService.UpdateSubscription(c.Request.Context(), companyID, companyapp.UpdateSubscriptionInput{
		Plan:      company.Plan(req.Plan),
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, SubscriptionResponse{
		ID:        info.ID,
		Plan:      info.Plan,
		Status:    info.Status,
		StartedAt: info.StartedAt,
		ExpiresAt: info.ExpiresAt,
	})
}

// ChangeSubscriptionStatus godoc
// @Summary      Change a company's subscription status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Company ID"
// @Param        request body ChangeSubscriptionStatusRequest true "Status change"
// @Success      200 {object} dto.Response{data=SubscriptionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/companies/{id}/subscription/status [put]
func (h *AdminHandler) ChangeSubscriptionStatus(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req ChangeSubscriptionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.adminService.ChangeSubscriptionStatus(c.Request.Context(), companyID, company.SubscriptionStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, SubscriptionResponse{
		ID:        info.ID,
		Plan:      info.Plan,
		Status:    info.Status,
		StartedAt: info.StartedAt,
		ExpiresAt: info.ExpiresAt,
	})
}

// PauseCompany godoc
// @Summary      Pause a company
// @Description  Members of a paused company can sign in but their
// @Description  company-scoped calls are rejected
// @Tags         admin
// @Produce      json
// @Param        id path string true "Company ID"
// @Success      200 {object} dto.Response{data=CompanyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/companies/{id}/pause [post]
func (h *AdminHandler) PauseCompany(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	resp, err := h.adminService.PauseCompany(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCompanyResponse(resp))
}

// ResumeCompany godoc
// @Summary      Resume a paused company
// @Tags         admin
// @Produce      json
// @Param        id path string true "Company ID"
// @Success      200 {object} dto.Response{data=CompanyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/companies/{id}/resume [post]
func (h *AdminHandler) ResumeCompany(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	resp, err := h.adminService.ResumeCompany(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCompanyResponse(resp))
}

// RegisterRoutes registers the super admin console routes
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", middleware.RequireSuperAdmin())
	{
		admin.GET("/stats", h.GetPlatformStats)
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/companies", h.ListCompanies)
		admin.POST("/companies", h.CreateCompany)
		admin.GET("/companies/:id", h.GetCompany)
		admin.PUT("/companies/:id/subscription", h.UpdateSubscription)
		admin.PUT("/companies/:id/subscription/status", h.ChangeSubscriptionStatus)
		admin.POST("/companies/:id/pause", h.PauseCompany)
		admin.POST("/companies/:id/resume", h.ResumeCompany)
	}
}
