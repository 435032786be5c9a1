package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	bookingapp "github.com/harborstay/backend/internal/application/booking"
	"github.com/harborstay/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// RoomHandler handles room-related API endpoints
type RoomHandler struct {
	BaseHandler
	roomService *bookingapp.RoomService
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(roomService *bookingapp.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

// CreateRoomRequest represents a room creation request
type CreateRoomRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200" example:"Seaview Double"`
	Description string  `json:"description" binding:"max=1000" example:"Second floor, balcony"`
	Price       float64 `json:"price" binding:"required,gt=0" example:"120.00"`
	Capacity    int     `json:"capacity" binding:"omitempty,min=1,max=100" example:"2"`
}

// UpdateRoomRequest represents a room update request
type UpdateRoomRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200" example:"Seaview Double"`
	Description string  `json:"description" binding:"max=1000" example:"Second floor, balcony"`
	Price       float64 `json:"price" binding:"required,gt=0" example:"135.00"`
	Capacity    int     `json:"capacity" binding:"omitempty,min=1,max=100" example:"2"`
}

// ListRoomsRequest represents the room listing query parameters
type ListRoomsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
}

// RoomResponse represents a room in API responses
type RoomResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Capacity    int             `json:"capacity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toRoomResponse(r bookingapp.RoomResponse) RoomResponse {
	return RoomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Capacity:    r.Capacity,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Create godoc
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request body CreateRoomRequest true "Room data"
// @Success      201 {object} dto.Response{data=RoomResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.roomService.CreateRoom(c.Request.Context(), tenantID, bookingapp.CreateRoomInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       toDecimal(req.Price),
		Capacity:    req.Capacity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toRoomResponse(*resp))
}

// Get godoc
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} dto.Response{data=RoomResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID")
		return
	}

	resp, err := h.roomService.GetRoom(c.Request.Context(), tenantID, roomID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRoomResponse(*resp))
}

// List godoc
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Match against name and description"
// @Success      200 {object} dto.Response{data=[]RoomResponse}
// @Security     BearerAuth
// @Router       /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	var req ListRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.roomService.ListRooms(c.Request.Context(), tenantID, bookingapp.ListRoomsInput{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]RoomResponse, len(result.Rooms))
	for i, r := range result.Rooms {
		responses[i] = toRoomResponse(r)
	}
	h.SuccessWithMeta(c, responses, result.TotalCount, result.Page, result.PageSize)
}

// Update godoc
// @Summary      Update a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id path string true "Room ID"
// @Param        request body UpdateRoomRequest true "Room data"
// @Success      200 {object} dto.Response{data=RoomResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID")
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.roomService.UpdateRoom(c.Request.Context(), tenantID, roomID, bookingapp.UpdateRoomInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       toDecimal(req.Price),
		Capacity:    req.Capacity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRoomResponse(*resp))
}

// Delete godoc
// @Summary      Delete a room
// @Description  Rooms with bookings cannot be deleted
// @Tags         rooms
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid room ID")
		return
	}

	if err := h.roomService.DeleteRoom(c.Request.Context(), tenantID, roomID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers the room routes. Reads are open to every
// member; writes need the manager role or above.
func (h *RoomHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rooms := rg.Group("/rooms", middleware.RequireCompanyScope())
	{
		rooms.GET("", h.List)
		rooms.GET("/:id", h.Get)
	}

	writes := rg.Group("/rooms", middleware.RequireCompanyScope(), middleware.RequireBookingWriter())
	{
		writes.POST("", h.Create)
		writes.PUT("/:id", h.Update)
		writes.DELETE("/:id", h.Delete)
	}
}
