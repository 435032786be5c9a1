package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/harborstay/backend/internal/application/report"
	"github.com/harborstay/backend/internal/domain/report"
	"github.com/harborstay/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// ReportHandler handles the reporting and dashboard endpoints
type ReportHandler struct {
	BaseHandler
	reportService    *reportapp.ReportService
	dashboardService *reportapp.DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService, dashboardService *reportapp.DashboardService) *ReportHandler {
	return &ReportHandler{
		reportService:    reportService,
		dashboardService: dashboardService,
	}
}

// BuildReportRequest represents the report query parameters. Named
// presets derive the range from the current day; custom requires both
// dates.
type BuildReportRequest struct {
	Preset     string `form:"preset" binding:"omitempty,oneof=today week month custom"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	RoomID     string `form:"room_id" binding:"omitempty,uuid"`
	IsPaid     *bool  `form:"is_paid"`
	Discounted *bool  `form:"discounted"`
}

// ReportSummaryResponse is the headline reduction over the report
type ReportSummaryResponse struct {
	TotalBookings    int64           `json:"total_bookings"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	NewCustomers     int64           `json:"new_customers"`
	TotalRoomsBooked int             `json:"total_rooms_booked"`
}

// ReportResponse represents a fully built report
type ReportResponse struct {
	Generation uint64                  `json:"generation"`
	Preset     report.Preset           `json:"preset"`
	StartDate  time.Time               `json:"start_date"`
	EndDate    time.Time               `json:"end_date"`
	Summary    ReportSummaryResponse   `json:"summary"`
	Daily      []report.DailyStat      `json:"daily"`
	Rooms      []report.RoomStat       `json:"rooms"`
	Financial  report.FinancialSummary `json:"financial"`
	Discounts  []report.DiscountBucket `json:"discounts"`
	Occupancy  []report.OccupancyDay   `json:"occupancy"`
}

// UpcomingBookingResponse is one row of the dashboard's arrival list
type UpcomingBookingResponse struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	RoomName  string    `json:"room_name,omitempty"`
	GuestName string    `json:"guest_name"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	IsPaid    bool      `json:"is_paid"`
}

// DashboardResponse represents the operational snapshot for today plus
// the tenant's all-time totals
type DashboardResponse struct {
	Date          time.Time                 `json:"date"`
	TodayBookings int64                     `json:"today_bookings"`
	TodayRevenue  decimal.Decimal           `json:"today_revenue"`
	TotalBookings int64                     `json:"total_bookings"`
	TotalRevenue  decimal.Decimal           `json:"total_revenue"`
	RoomsBooked   int64                     `json:"rooms_booked"`
	TotalRooms    int64                     `json:"total_rooms"`
	OccupancyRate decimal.Decimal           `json:"occupancy_rate"`
	Upcoming      []UpcomingBookingResponse `json:"upcoming"`
}

// BuildReport godoc
// @Summary      Build a booking report
// @Description  Runs the daily, room, financial, discount and occupancy
// @Description  aggregations for the selected period and returns them in
// @Description  one response
// @Tags         reports
// @Produce      json
// @Param        preset query string false "today, week, month or custom" default(month)
// @Param        start_date query string false "Custom range start (YYYY-MM-DD)"
// @Param        end_date query string false "Custom range end (YYYY-MM-DD)"
// @Param        room_id query string false "Filter by room"
// @Param        is_paid query bool false "Filter by payment status"
// @Param        discounted query bool false "Only discounted bookings"
// @Success      200 {object} dto.Response{data=ReportResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports [get]
func (h *ReportHandler) BuildReport(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	var req BuildReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	preset := report.Preset(req.Preset)
	if req.Preset == "" {
		preset = report.PresetMonth
	}

	input := reportapp.ReportInput{
		Preset:     preset,
		IsPaid:     req.IsPaid,
		Discounted: req.Discounted,
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

	result, err := h.reportService.BuildReport(c.Request.Context(), tenantID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ReportResponse{
		Generation: result.Generation,
		Preset:     result.Preset,
		StartDate:  result.StartDate,
		EndDate:    result.EndDate,
		Summary: ReportSummaryResponse{
			TotalBookings:    result.Summary.TotalBookings,
			TotalRevenue:     result.Summary.TotalRevenue,
			NewCustomers:     result.Summary.NewCustomers,
			TotalRoomsBooked: result.Summary.TotalRoomsBooked,
		},
		Daily:     result.Daily,
		Rooms:     result.Rooms,
		Financial: result.Financial,
		Discounts: result.Discounts,
		Occupancy: result.Occupancy,
	})
}

// GetDashboard godoc
// @Summary      Get the dashboard snapshot
// @Description  Today's bookings, revenue, occupancy and the next arrivals
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=DashboardResponse}
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "This endpoint requires a company membership")
		return
	}

	result, err := h.dashboardService.GetDashboard(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	upcoming := make([]UpcomingBookingResponse, len(result.Upcoming))
	for i, u := range result.Upcoming {
		upcoming[i] = UpcomingBookingResponse{
			ID:        u.ID,
			RoomID:    u.RoomID,
			RoomName:  u.RoomName,
			GuestName: u.GuestName,
			CheckIn:   u.CheckIn,
			CheckOut:  u.CheckOut,
			IsPaid:    u.IsPaid,
		}
	}

	h.Success(c, DashboardResponse{
		Date:          result.Date,
		TodayBookings: result.TodayBookings,
		TodayRevenue:  result.TodayRevenue,
		TotalBookings: result.TotalBookings,
		TotalRevenue:  result.TotalRevenue,
		RoomsBooked:   result.RoomsBooked,
		TotalRooms:    result.TotalRooms,
		OccupancyRate: result.OccupancyRate,
		Upcoming:      upcoming,
	})
}

// RegisterRoutes registers the reporting routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	scoped := rg.Group("", middleware.RequireCompanyScope())
	{
		scoped.GET("/reports", h.BuildReport)
		scoped.GET("/dashboard", h.GetDashboard)
	}
}
