package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	companyapp "github.com/harborstay/backend/internal/application/company"
	"github.com/harborstay/backend/internal/domain/company"
	"github.com/harborstay/backend/internal/domain/identity"
	"github.com/harborstay/backend/internal/interfaces/http/middleware"
)

// CompanyHandler handles the company-scoped settings and member endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *companyapp.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *companyapp.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// CreateCompanyRequest represents a company creation request
type CreateCompanyRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200" example:"Harborview Guest House"`
	Address  string `json:"address" binding:"max=500" example:"12 Quay Street"`
	Currency string `json:"currency" binding:"omitempty,len=3" example:"USD"`
}

// UpdateSettingsRequest represents a company settings update
type UpdateSettingsRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200" example:"Harborview Guest House"`
	Address  string `json:"address" binding:"max=500" example:"12 Quay Street"`
	Currency string `json:"currency" binding:"omitempty,len=3" example:"USD"`
}

// InitiateLogoUploadRequest represents a logo upload request
type InitiateLogoUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255" example:"logo.png"`
	ContentType string `json:"content_type" binding:"required" example:"image/png"`
}

// ConfirmLogoUploadRequest represents a logo upload confirmation
type ConfirmLogoUploadRequest struct {
	StorageKey string `json:"storage_key" binding:"required" example:"companies/3f9.../logo.png"`
}

// InviteMemberRequest represents a member invitation
type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email,max=200" example:"staff@harborview.example"`
	Role  string `json:"role" binding:"required,oneof=member manager company_admin" example:"manager"`
}

// ChangeMemberRoleRequest represents a member role change
type ChangeMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=member manager company_admin" example:"manager"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	LogoURL      string                `json:"logo_url,omitempty"`
	Address      string                `json:"address,omitempty"`
	Currency     string                `json:"currency"`
	Status       company.CompanyStatus `json:"status"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// SubscriptionResponse represents a subscription in API responses
type SubscriptionResponse struct {
	ID        uuid.UUID                  `json:"id"`
	Plan      company.Plan               `json:"plan"`
	Status    company.SubscriptionStatus `json:"status"`
	StartedAt time.Time                  `json:"started_at"`
	ExpiresAt *time.Time                 `json:"expires_at,omitempty"`
}

// MemberResponse represents a company member in API responses
type MemberResponse struct {
	MembershipID uuid.UUID                 `json:"membership_id"`
	UserID       *uuid.UUID                `json:"user_id,omitempty"`
	Email        string                    `json:"email"`
	Role         identity.Role             `json:"role"`
	Status       identity.MembershipStatus `json:"status"`
	JoinedAt     time.Time                 `json:"joined_at"`
}

// LogoUploadResponse represents the presigned logo upload target
type LogoUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func toCompanyResponse(resp *companyapp.CompanyResponse) CompanyResponse {
	out := CompanyResponse{
		ID:        resp.ID,
		Name:      resp.Name,
		LogoURL:   resp.LogoURL,
		Address:   resp.Address,
		Currency:  resp.Currency,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt,
		UpdatedAt: resp.UpdatedAt,
	}
	if resp.Subscription != nil {
		out.Subscription = &SubscriptionResponse{
			ID:        resp.Subscription.ID,
			Plan:      resp.Subscription.Plan,
			Status:    resp.Subscription.Status,
			StartedAt: resp.Subscription.StartedAt,
			ExpiresAt: resp.Subscription.ExpiresAt,
		}
	}
	return out
}

func toMemberResponse(m companyapp.MemberResponse) MemberResponse {
	out := MemberResponse{
		MembershipID: m.MembershipID,
		Email:        m.Email,
		Role:         m.Role,
		Status:       m.Status,
		JoinedAt:     m.JoinedAt,
	}
	// Pending invites carry no user yet
	if m.UserID != uuid.Nil {
		id := m.UserID
		out.UserID = &id
	}
	return out
}

// Create godoc
// @Summary      Create a company
// @Description  Create a company owned by the caller. The caller becomes
// @Description  its company admin and must sign in again (or refresh) to
// @Description  pick up the new scope.
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        request body CreateCompanyRequest true "Company data"
// @Success      201 {object} dto.Response{data=CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /company [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.companyService.CreateCompany(c.Request.Context(), userID, middleware.GetJWTEmail(c), companyapp.CreateCompanyInput{
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

// Get godoc
// @Summary      Get the caller's company
// @Tags         company
// @Produce      json
// @Success      200 {object} dto.Response{data=CompanyResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /company [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	companyID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	resp, err := h.companyService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCompanyResponse(resp))
}

// UpdateSettings godoc
// @Summary      Update company settings
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        request body UpdateSettingsRequest true "Settings"
// @Success      200 {object} dto.Response{data=CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /company/settings [put]
func (h *CompanyHandler) UpdateSettings(c *gin.Context) {
	companyID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.companyService.UpdateSettings(c.Request.Context(), companyID, companyapp.UpdateSettingsInput{
		Name:     req.Name,
		Address:  req.Address,
		Currency: req.Currency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCompanyResponse(resp))
}

// InitiateLogoUpload godoc
// @Summary      Start a logo upload
// @Description  Returns a presigned URL the client uploads the logo to.
// @Description  The upload is confirmed in a second call.
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        request body InitiateLogoUploadRequest true "File metadata"
// @Success      200 {object} dto.Response{data=LogoUploadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /company/logo [post]
func (h *CompanyHandler) InitiateLogoUpload(c *gin.Context) {
	companyID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	var req InitiateLogoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.companyService.InitiateLogoUpload(c.Request.Context(), companyID, companyapp.InitiateLogoUploadInput{
		FileName:    req.FileName,
		ContentType: req.ContentType,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LogoUploadResponse{
		StorageKey: resp.StorageKey,
		UploadURL:  resp.UploadURL,
		ExpiresAt:  resp.ExpiresAt,
	})
}

// ConfirmLogoUpload godoc
// @Summary      Confirm a logo upload
// @Description  Verifies the object exists and swaps it in as the
// @Description  company logo, deleting the previous one
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        request body ConfirmLogoUploadRequest true "Storage key"
// @Success      200 {object} dto.Response{data=CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /company/logo/confirm [post]
func (h *CompanyHandler) ConfirmLogoUpload(c *gin.Context) {
	companyID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	var req ConfirmLogoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.companyService.ConfirmLogoUpload(c.Request.Context(), companyID, req.StorageKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCompanyResponse(resp))
}

// ListMembers godoc
// @Summary      List company members
// @Description  Returns active members and pending invites
// @Tags         company
// @Produce      json
// @Success      200 {object} dto.Response{data=[]MemberResponse}
// @Security     BearerAuth
// @Router       /company/members [get]
func (h *CompanyHandler) ListMembers(c *gin.Context) {
	companyID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	members, err := h.companyService.ListMembers(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]MemberResponse, len(members))
	for i, m := range members {
		responses[i] = toMemberResponse(m)
	}
	h.Success(c, responses)
}

// InviteMember godoc
// @Summary      Invite a member
// @Description  Create a pending invite, or attach an existing account
// @Description  with the given email directly as an active member
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        request body InviteMemberRequest true "Invitation"
// @Success      201 {object} dto.Response{data=MemberResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /company/members [post]
func (h *CompanyHandler) InviteMember(c *gin.Context) {
	companyID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	member, err := h.companyService.InviteMember(c.Request.Context(), companyID, companyapp.InviteMemberInput{
		Email: req.Email,
		Role:  identity.Role(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toMemberResponse(*member))
}

// RemoveMember godoc
// @Summary      Remove a member or revoke an invite
// @Description  The company's last admin cannot be removed
// @Tags         company
// @Produce      json
// @Param        id path string true "Membership ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /company/members/{id} [delete]
func (h *CompanyHandler) RemoveMember(c *gin.Context) {
	companyID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	membershipID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid membership ID")
		return
	}

	if err := h.companyService.RemoveMember(c.Request.Context(), companyID, membershipID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ChangeMemberRole godoc
// @Summary      Change a member's role
// @Description  The company's last admin cannot be demoted
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        id path string true "Membership ID"
// @Param        request body ChangeMemberRoleRequest true "New role"
// @Success      200 {object} dto.Response{data=MemberResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /company/members/{id}/role [put]
func (h *CompanyHandler) ChangeMemberRole(c *gin.Context) {
	companyID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	membershipID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid membership ID")
		return
	}

	var req ChangeMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	member, err := h.companyService.ChangeMemberRole(c.Request.Context(), companyID, companyapp.ChangeMemberRoleInput{
		MembershipID: membershipID,
		Role:         identity.Role(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMemberResponse(*member))
}

// RegisterRoutes registers the company routes. Creation is open to any
// signed-in user; everything else needs a company scope, and writes
// need a company admin.
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	co := rg.Group("/company")
	{
		co.POST("", h.Create)
		co.GET("", middleware.RequireCompanyScope(), h.Get)
	}

	admin := rg.Group("/company", middleware.RequireCompanyScope(), middleware.RequireCompanyAdmin())
	{
		admin.PUT("/settings", h.UpdateSettings)
		admin.POST("/logo", h.InitiateLogoUpload)
		admin.POST("/logo/confirm", h.ConfirmLogoUpload)
		admin.GET("/members", h.ListMembers)
		admin.POST("/members", h.InviteMember)
		admin.DELETE("/members/:id", h.RemoveMember)
		admin.PUT("/members/:id/role", h.ChangeMemberRole)
	}
}
