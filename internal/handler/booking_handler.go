package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shareit-market/shareit/internal/application"
	"github.com/shareit-market/shareit/internal/domain/booking"
	"github.com/shareit-market/shareit/pkg/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.GetAllBookings)
		bookings.GET("/owner", h.GetAllBookingsForAllItems)
		bookings.GET("/:bookingId", h.GetBooking)
		bookings.PATCH("/:bookingId", h.UpdateBookingStatus)
	}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateBookingStatus handles PATCH /bookings/:bookingId?approved=.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "invalid approved")
		return
	}

	result, err := h.service.UpdateBookingStatus(c.Request.Context(), userID, bookingID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBooking handles GET /bookings/:bookingId.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetAllBookings handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}
	filter, from, size, ok := bookingQuery(c)
	if !ok {
		return
	}

	result, err := h.service.GetAllBookings(c.Request.Context(), userID, filter, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetAllBookingsForAllItems handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) GetAllBookingsForAllItems(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}
	filter, from, size, ok := bookingQuery(c)
	if !ok {
		return
	}

	result, err := h.service.GetAllBookingsForAllItems(c.Request.Context(), userID, filter, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func bookingQuery(c *gin.Context) (booking.StateFilter, *int, *int, bool) {
	filter, err := booking.ParseStateFilter(c.DefaultQuery("state", "ALL"))
	if err != nil {
		response.Error(c, err)
		return "", nil, nil, false
	}
	from, ok := optionalIntQuery(c, "from")
	if !ok {
		return "", nil, nil, false
	}
	size, ok := optionalIntQuery(c, "size")
	if !ok {
		return "", nil, nil, false
	}
	return filter, from, size, true
}
