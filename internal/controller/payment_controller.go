package controller

import (
	"net/http"
	"time"

	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/chinazagideon/alx-travel-app/internal/service"
	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	service *service.PaymentService
}

func NewPaymentController(service *service.PaymentService) *PaymentController {
	return &PaymentController{service: service}
}

type recordPaymentRequest struct {
	BookingID   int64  `json:"booking_id" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required"`
	PaymentDate string `json:"payment_date" binding:"required"`
	Method      string `json:"payment_method" binding:"required"`
}

// Create обрабатывает POST /payments
func (ctrl *PaymentController) Create(c *gin.Context) {
	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "payment_date must be YYYY-MM-DD"})
		return
	}

	payment, err := ctrl.service.RecordPayment(c.Request.Context(), service.RecordPaymentInput{
		BookingID:   req.BookingID,
		AmountCents: req.AmountCents,
		PaymentDate: date,
		Method:      model.PaymentMethod(req.Method),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// ListByBooking обрабатывает GET /bookings/:id/payments
func (ctrl *PaymentController) ListByBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	payments, err := ctrl.service.ListPayments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}
