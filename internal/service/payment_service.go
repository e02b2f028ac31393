package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/chinazagideon/alx-travel-app/internal/repository"
	"go.uber.org/zap"
)

// PaymentService пассивный учёт оплат. Подтверждение оплаты — внешний
// бизнес-процесс, статус бронирования здесь не меняется.
type PaymentService struct {
	paymentRepo *repository.PaymentRepository
	bookingRepo *repository.BookingRepository
	logger      *zap.Logger
}

func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	bookingRepo *repository.BookingRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

type RecordPaymentInput struct {
	BookingID   int64
	AmountCents int64
	PaymentDate time.Time
	Method      model.PaymentMethod
}

// RecordPayment сохраняет запись об оплате существующего бронирования
func (s *PaymentService) RecordPayment(ctx context.Context, in RecordPaymentInput) (*model.Payment, error) {
	if in.AmountCents <= 0 {
		return nil, model.ErrInvalidAmount
	}

	booking, err := s.bookingRepo.GetByID(ctx, in.BookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, model.ErrBookingNotFound
	}

	payment := &model.Payment{
		BookingID:   in.BookingID,
		AmountCents: in.AmountCents,
		PaymentDate: in.PaymentDate,
		Method:      in.Method,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("booking_id", payment.BookingID),
		zap.Int64("amount_cents", payment.AmountCents),
	)

	return payment, nil
}

// ListPayments получает оплаты бронирования
func (s *PaymentService) ListPayments(ctx context.Context, bookingID int64) ([]*model.Payment, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, model.ErrBookingNotFound
	}

	return s.paymentRepo.GetByBookingID(ctx, bookingID)
}
