package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chinazagideon/alx-travel-app/internal/clock"
	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/chinazagideon/alx-travel-app/internal/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingStore доступ к бронированиям, нужный оркестратору
type BookingStore interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	HasOverlapping(ctx context.Context, propertyID int64, start, end time.Time) (bool, error)
	UpdateStatusIfCurrent(ctx context.Context, id int64, from, to model.BookingStatus) (bool, error)
	CancelIfActive(ctx context.Context, id int64) (bool, error)
	GetByGuestID(ctx context.Context, guestID int64) ([]*model.Booking, error)
	GetByHostID(ctx context.Context, hostID int64) ([]*model.Booking, error)
	GetConfirmedStartingOn(ctx context.Context, date time.Time) ([]*model.Booking, error)
}

// PropertyStore доступ к объектам размещения, нужный оркестратору
type PropertyStore interface {
	GetByID(ctx context.Context, id int64) (*model.Property, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Property, error)
}

type BookingService struct {
	bookings   BookingStore
	properties PropertyStore
	queue      notify.Queue
	clock      clock.Clock
	logger     *zap.Logger
}

func NewBookingService(
	bookings BookingStore,
	properties PropertyStore,
	queue notify.Queue,
	clk clock.Clock,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:   bookings,
		properties: properties,
		queue:      queue,
		clock:      clk,
		logger:     logger,
	}
}

type CreateBookingInput struct {
	PropertyID int64
	GuestID    int64
	StartDate  time.Time
	EndDate    time.Time
}

// CreateBooking проверяет заявку, фиксирует цену и создаёт бронирование
// в статусе pending. Проверка пересечений и вставка выполняются в одной
// транзакции под блокировкой строки объекта, поэтому из двух конкурирующих
// заявок на пересекающиеся даты выигрывает ровно одна.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	start := clock.Truncate(in.StartDate)
	end := clock.Truncate(in.EndDate)

	if !start.Before(end) {
		return nil, model.ErrInvalidDateRange
	}
	if start.Before(clock.Today(s.clock)) {
		return nil, model.ErrStartDateInPast
	}

	var booking *model.Booking

	err := s.bookings.WithTx(ctx, func(txCtx context.Context) error {
		property, err := s.properties.GetByIDForUpdate(txCtx, in.PropertyID)
		if err != nil {
			return fmt.Errorf("get property: %w", err)
		}
		if property == nil {
			return model.ErrPropertyNotFound
		}

		overlapping, err := s.bookings.HasOverlapping(txCtx, in.PropertyID, start, end)
		if err != nil {
			return fmt.Errorf("check availability: %w", err)
		}
		if overlapping {
			return model.ErrDatesUnavailable
		}

		booking = &model.Booking{
			PropertyID: in.PropertyID,
			GuestID:    in.GuestID,
			StartDate:  start,
			EndDate:    end,
			// Фиксируем текущую цену объекта: дальнейшие изменения цены
			// хостом не влияют на уже созданное бронирование
			LockedPriceCents: property.PricePerNightCents,
			Status:           model.BookingStatusPending,
		}

		return s.bookings.Create(txCtx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("property_id", booking.PropertyID),
		zap.Int64("guest_id", booking.GuestID),
		zap.Time("start_date", booking.StartDate),
		zap.Time("end_date", booking.EndDate),
		zap.Int64("locked_price_cents", booking.LockedPriceCents),
	)

	s.enqueue(ctx, notify.JobBookingRequested, booking.ID)

	return booking, nil
}

// ConfirmBooking подтверждает бронирование. Доступно только хосту объекта
// и только для статуса pending.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID, actorID int64) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, model.ErrBookingNotFound
	}

	property, err := s.properties.GetByID(ctx, booking.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	if property == nil {
		return nil, model.ErrPropertyNotFound
	}

	if property.HostID != actorID {
		return nil, model.ErrNotHost
	}
	if booking.Status != model.BookingStatusPending {
		return nil, model.ErrBookingNotPending
	}

	// Compare-and-set: переход выполняется только если статус всё ещё pending,
	// гонка confirm/cancel не теряет обновлений
	updated, err := s.bookings.UpdateStatusIfCurrent(ctx, bookingID, model.BookingStatusPending, model.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, model.ErrBookingNotPending
	}

	booking.Status = model.BookingStatusConfirmed

	s.logger.Info("Booking confirmed",
		zap.Int64("booking_id", bookingID),
		zap.Int64("host_id", actorID),
	)

	s.enqueue(ctx, notify.JobBookingConfirmed, bookingID)

	return booking, nil
}

// CancelBooking отменяет бронирование. Доступно гостю и хосту из любого
// активного статуса. Повторная отмена — идемпотентный no-op.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, actorID int64) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, model.ErrBookingNotFound
	}

	property, err := s.properties.GetByID(ctx, booking.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	if property == nil {
		return nil, model.ErrPropertyNotFound
	}

	if booking.GuestID != actorID && property.HostID != actorID {
		return nil, model.ErrNotParticipant
	}

	canceled, err := s.bookings.CancelIfActive(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	booking.Status = model.BookingStatusCanceled

	if canceled {
		s.logger.Info("Booking canceled",
			zap.Int64("booking_id", bookingID),
			zap.Int64("actor_id", actorID),
		)
	}

	return booking, nil
}

// GetBooking получает бронирование. Видно только гостю и хосту объекта.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, actorID int64) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, model.ErrBookingNotFound
	}

	property, err := s.properties.GetByID(ctx, booking.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	if property == nil {
		return nil, model.ErrPropertyNotFound
	}

	if booking.GuestID != actorID && property.HostID != actorID {
		return nil, model.ErrNotParticipant
	}

	return booking, nil
}

// ListBookings получает бронирования пользователя: его собственные
// плюс бронирования его объектов
func (s *BookingService) ListBookings(ctx context.Context, userID int64) ([]*model.Booking, error) {
	asGuest, err := s.bookings.GetByGuestID(ctx, userID)
	if err != nil {
		return nil, err
	}

	asHost, err := s.bookings.GetByHostID(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(asGuest))
	bookings := make([]*model.Booking, 0, len(asGuest)+len(asHost))
	for _, b := range asGuest {
		seen[b.ID] = true
		bookings = append(bookings, b)
	}
	for _, b := range asHost {
		if !seen[b.ID] {
			bookings = append(bookings, b)
		}
	}

	return bookings, nil
}

// RemindUpcoming ставит в очередь напоминания по подтверждённым
// бронированиям, начинающимся завтра. Запускается фоновым планировщиком.
func (s *BookingService) RemindUpcoming(ctx context.Context) (int, error) {
	tomorrow := clock.Today(s.clock).AddDate(0, 0, 1)

	upcoming, err := s.bookings.GetConfirmedStartingOn(ctx, tomorrow)
	if err != nil {
		return 0, fmt.Errorf("get upcoming bookings: %w", err)
	}

	sent := 0
	for _, booking := range upcoming {
		if err := s.queue.Enqueue(ctx, notify.Job{
			ID:        uuid.NewString(),
			Type:      notify.JobBookingReminder,
			BookingID: booking.ID,
			CreatedAt: s.clock.Now(),
		}); err != nil {
			s.logger.Warn("Failed to enqueue booking reminder",
				zap.Int64("booking_id", booking.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	return sent, nil
}

// enqueue ставит уведомление в очередь. Сбой очереди логируется,
// но не влияет на уже выполненное изменение состояния.
func (s *BookingService) enqueue(ctx context.Context, jobType notify.JobType, bookingID int64) {
	err := s.queue.Enqueue(ctx, notify.Job{
		ID:        uuid.NewString(),
		Type:      jobType,
		BookingID: bookingID,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		s.logger.Warn("Failed to enqueue notification",
			zap.String("type", string(jobType)),
			zap.Int64("booking_id", bookingID),
			zap.Error(err),
		)
	}
}
