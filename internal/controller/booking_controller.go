package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/chinazagideon/alx-travel-app/internal/service"
	"github.com/gin-gonic/gin"
)

type BookingController struct {
	service *service.BookingService
}

func NewBookingController(service *service.BookingService) *BookingController {
	return &BookingController{service: service}
}

type createBookingRequest struct {
	PropertyID int64  `json:"property_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
}

// Create обрабатывает POST /bookings
func (ctrl *BookingController) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "start_date must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "end_date must be YYYY-MM-DD"})
		return
	}

	booking, err := ctrl.service.CreateBooking(c.Request.Context(), service.CreateBookingInput{
		PropertyID: req.PropertyID,
		GuestID:    actorID(c),
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// Get обрабатывает GET /bookings/:id
func (ctrl *BookingController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := ctrl.service.GetBooking(c.Request.Context(), id, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// List обрабатывает GET /bookings
func (ctrl *BookingController) List(c *gin.Context) {
	bookings, err := ctrl.service.ListBookings(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// Confirm обрабатывает POST /bookings/:id/confirm
func (ctrl *BookingController) Confirm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := ctrl.service.ConfirmBooking(c.Request.Context(), id, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// Cancel обрабатывает POST /bookings/:id/cancel
func (ctrl *BookingController) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := ctrl.service.CancelBooking(c.Request.Context(), id, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// parseID читает числовой :id из пути, сам отвечает 400 при ошибке
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}
