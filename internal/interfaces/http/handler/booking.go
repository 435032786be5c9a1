package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	bookingapp "github.com/harborstay/backend/internal/application/booking"
	"github.com/harborstay/backend/internal/domain/booking"
	"github.com/harborstay/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// BookingHandler handles booking-related API endpoints
type BookingHandler struct {
	BaseHandler
	bookingService *bookingapp.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *bookingapp.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CreateBookingRequest represents a booking creation request. A zero
// total_amount is prefilled from the room's base price.
type CreateBookingRequest struct {
	RoomID        string    `json:"room_id" binding:"required,uuid"`
	GuestName     string    `json:"guest_name" binding:"required,min=1,max=200" example:"Jordan Blake"`
	GuestPhone    string    `json:"guest_phone" binding:"max=50" example:"+15550101"`
	GuestEmail    string    `json:"guest_email" binding:"omitempty,email,max=200"`
	GuestCount    int       `json:"guest_count" binding:"omitempty,min=1,max=500" example:"2"`
	Type          string    `json:"type" binding:"omitempty,oneof=individual full_boat" example:"individual"`
	CheckIn       time.Time `json:"check_in" binding:"required"`
	CheckOut      time.Time `json:"check_out" binding:"required"`
	TotalAmount   float64   `json:"total_amount" binding:"omitempty,gte=0" example:"240.00"`
	DiscountType  string    `json:"discount_type" binding:"omitempty,oneof=fixed percentage" example:"fixed"`
	DiscountValue float64   `json:"discount_value" binding:"omitempty,gte=0" example:"20.00"`
	AdvancePaid   float64   `json:"advance_paid" binding:"omitempty,gte=0" example:"100.00"`
	Referral      string    `json:"referral" binding:"max=200"`
	Notes         string    `json:"notes" binding:"max=2000"`
}

// UpdateBookingRequest represents a booking update request. Callers send
// the full booking state.
type UpdateBookingRequest struct {
	GuestName     string    `json:"guest_name" binding:"required,min=1,max=200"`
	GuestPhone    string    `json:"guest_phone" binding:"max=50"`
	GuestEmail    string    `json:"guest_email" binding:"omitempty,email,max=200"`
	GuestCount    int       `json:"guest_count" binding:"omitempty,min=1,max=500"`
	CheckIn       time.Time `json:"check_in" binding:"required"`
	CheckOut      time.Time `json:"check_out" binding:"required"`
	TotalAmount   float64   `json:"total_amount" binding:"omitempty,gte=0"`
	DiscountType  string    `json:"discount_type" binding:"omitempty,oneof=fixed percentage"`
	DiscountValue float64   `json:"discount_value" binding:"omitempty,gte=0"`
	AdvancePaid   float64   `json:"advance_paid" binding:"omitempty,gte=0"`
	Referral      string    `json:"referral" binding:"max=200"`
	Notes         string    `json:"notes" binding:"max=2000"`
}

// SetPaymentStatusRequest represents a manual payment status override
type SetPaymentStatusRequest struct {
	IsPaid bool `json:"is_paid"`
}

// ListBookingsRequest represents the booking listing query parameters
type ListBookingsRequest struct {
	RoomID    string `form:"room_id" binding:"omitempty,uuid"`
	IsPaid    *bool  `form:"is_paid"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// BookingResponse represents a booking in API responses. The discount
// and due amounts are derived server side and never stored.
type BookingResponse struct {
	ID             uuid.UUID           `json:"id"`
	RoomID         uuid.UUID           `json:"room_id"`
	RoomName       string              `json:"room_name,omitempty"`
	GuestName      string              `json:"guest_name"`
	GuestPhone     string              `json:"guest_phone,omitempty"`
	GuestEmail     string              `json:"guest_email,omitempty"`
	GuestCount     int                 `json:"guest_count"`
	Type           booking.BookingType `json:"type"`
	CheckIn        time.Time           `json:"check_in"`
	CheckOut       time.Time           `json:"check_out"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	DiscountType   booking.DiscountType `json:"discount_type"`
	DiscountValue  decimal.Decimal     `json:"discount_value"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	AdvancePaid    decimal.Decimal     `json:"advance_paid"`
	DueAmount      decimal.Decimal     `json:"due_amount"`
	IsPaid         bool                `json:"is_paid"`
	Referral       string              `json:"referral,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func toBookingResponse(b bookingapp.BookingResponse) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		RoomID:         b.RoomID,
		RoomName:       b.RoomName,
		GuestName:      b.GuestName,
		GuestPhone:     b.GuestPhone,
		GuestEmail:     b.GuestEmail,
		GuestCount:     b.GuestCount,
		Type:           b.Type,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		TotalAmount:    b.TotalAmount,
		DiscountType:   b.DiscountType,
		DiscountValue:  b.DiscountValue,
		DiscountAmount: b.DiscountAmount,
		AdvancePaid:    b.AdvancePaid,
		DueAmount:      b.DueAmount,
		IsPaid:         b.IsPaid,
		Referral:       b.Referral,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// Create godoc
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body CreateBookingRequest true "Booking data"
// @Success      201 {object} dto.Response{data=BookingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		h.BadRequest(c, "Invalid room ID")
		return
	}

	resp, err := h.bookingService.CreateBooking(c.Request.Context(), tenantID, bookingapp.CreateBookingInput{
		RoomID:         roomID,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
		GuestName:      req.GuestName,
		GuestPhone:     req.GuestPhone,
		GuestEmail:     req.GuestEmail,
		GuestCount:     req.GuestCount,
		Type:           booking.BookingType(req.Type),
		CheckIn:        req.CheckIn,
		CheckOut:       req.CheckOut,
		TotalAmount:    toDecimal(req.TotalAmount),
		DiscountType:   booking.DiscountType(req.DiscountType),
		DiscountValue:  toDecimal(req.DiscountValue),
		AdvancePaid:    toDecimal(req.AdvancePaid),
		Referral:       req.Referral,
		Notes:          req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toBookingResponse(*resp))
}

// Get godoc
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      200 {object} dto.Response{data=BookingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	resp, err := h.bookingService.GetBooking(c.Request.Context(), tenantID, bookingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBookingResponse(*resp))
}

// List godoc
// @Summary      List bookings
// @Description  Newest check-ins first. The date range filters on the
// @Description  check-in date with an inclusive end.
// @Tags         bookings
// @Produce      json
// @Param        room_id query string false "Filter by room"
// @Param        is_paid query bool false "Filter by payment status"
// @Param        start_date query string false "Check-in range start (YYYY-MM-DD)"
// @Param        end_date query string false "Check-in range end (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]BookingResponse}
// @Security     BearerAuth
// @Router       /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := bookingapp.ListBookingsInput{
		IsPaid:   req.IsPaid,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.RoomID != "" {
		roomID, err := uuid.Parse(req.RoomID)
		if err != nil {
			h.BadRequest(c, "Invalid room ID")
			return
		}
		input.RoomID = &roomID
	}
	if input.StartDate, err = parseDateParam(req.StartDate); err != nil {
		h.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	if input.EndDate, err = parseDateParam(req.EndDate); err != nil {
		h.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	result, err := h.bookingService.ListBookings(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]BookingResponse, len(result.Bookings))
	for i, b := range result.Bookings {
		responses[i] = toBookingResponse(b)
	}
	h.SuccessWithMeta(c, responses, result.TotalCount, result.Page, result.PageSize)
}

// Update godoc
// @Summary      Update a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id path string true "Booking ID"
// @Param        request body UpdateBookingRequest true "Booking data"
// @Success      200 {object} dto.Response{data=BookingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.bookingService.UpdateBooking(c.Request.Context(), tenantID, bookingID, bookingapp.UpdateBookingInput{
		GuestName:     req.GuestName,
		GuestPhone:    req.GuestPhone,
		GuestEmail:    req.GuestEmail,
		GuestCount:    req.GuestCount,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		TotalAmount:   toDecimal(req.TotalAmount),
		DiscountType:  booking.DiscountType(req.DiscountType),
		DiscountValue: toDecimal(req.DiscountValue),
		AdvancePaid:   toDecimal(req.AdvancePaid),
		Referral:      req.Referral,
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBookingResponse(*resp))
}

// SetPaymentStatus godoc
// @Summary      Override a booking's payment status
// @Description  Marks the booking paid or unpaid regardless of the
// @Description  amounts on record
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id path string true "Booking ID"
// @Param        request body SetPaymentStatusRequest true "Payment status"
// @Success      200 {object} dto.Response{data=BookingResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bookings/{id}/payment [put]
func (h *BookingHandler) SetPaymentStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req SetPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.bookingService.SetPaymentStatus(c.Request.Context(), tenantID, bookingapp.SetPaymentStatusInput{
		BookingID: bookingID,
		IsPaid:    req.IsPaid,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBookingResponse(*resp))
}

// Delete godoc
// @Summary      Delete a booking
// @Tags         bookings
// @Produce      json
// @Param        id path string true "Booking ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	if err := h.bookingService.DeleteBooking(c.Request.Context(), tenantID, bookingID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers the booking routes. Reads are open to every
// member; writes need the manager role or above.
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings", middleware.RequireCompanyScope())
	{
		bookings.GET("", h.List)
		bookings.GET("/:id", h.Get)
	}

	writes := rg.Group("/bookings", middleware.RequireCompanyScope(), middleware.RequireBookingWriter())
	{
		writes.POST("", h.Create)
		writes.PUT("/:id", h.Update)
		writes.PUT("/:id/payment", h.SetPaymentStatus)
		writes.DELETE("/:id", h.Delete)
	}
}
