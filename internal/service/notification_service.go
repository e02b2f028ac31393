package service

import (
	"context"
	"fmt"

	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/chinazagideon/alx-travel-app/internal/notify"
	"github.com/chinazagideon/alx-travel-app/internal/repository"
	"go.uber.org/zap"
)

// NotificationService собирает письма по заданиям из очереди.
// Работает на стороне воркера: ядро только ставит задания.
type NotificationService struct {
	bookingRepo  *repository.BookingRepository
	propertyRepo *repository.PropertyRepository
	userRepo     *repository.UserRepository
	messageRepo  *repository.MessageRepository
	mailer       notify.Mailer
	logger       *zap.Logger
}

func NewNotificationService(
	bookingRepo *repository.BookingRepository,
	propertyRepo *repository.PropertyRepository,
	userRepo *repository.UserRepository,
	messageRepo *repository.MessageRepository,
	mailer notify.Mailer,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		messageRepo:  messageRepo,
		mailer:       mailer,
		logger:       logger,
	}
}

// HandleJob обрабатывает одно задание из очереди. Отсутствующие к моменту
// доставки сущности не считаются ошибкой: такое задание просто пропускается,
// чтобы не зацикливать requeue.
func (s *NotificationService) HandleJob(ctx context.Context, job notify.Job) error {
	switch job.Type {
	case notify.JobBookingRequested:
		return s.handleBookingRequested(ctx, job)
	case notify.JobBookingConfirmed:
		return s.handleBookingConfirmed(ctx, job)
	case notify.JobBookingReminder:
		return s.handleBookingReminder(ctx, job)
	case notify.JobMessageReceived:
		return s.handleMessageReceived(ctx, job)
	default:
		s.logger.Warn("Unknown notification job type",
			zap.String("job_id", job.ID),
			zap.String("type", string(job.Type)),
		)
		return nil
	}
}

type bookingContext struct {
	booking  *model.Booking
	property *model.Property
	guest    *model.User
	host     *model.User
}

func (s *NotificationService) loadBooking(ctx context.Context, bookingID int64) (*bookingContext, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, nil
	}

	property, err := s.propertyRepo.GetByID(ctx, booking.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	if property == nil {
		return nil, nil
	}

	guest, err := s.userRepo.GetByID(ctx, booking.GuestID)
	if err != nil {
		return nil, fmt.Errorf("get guest: %w", err)
	}
	host, err := s.userRepo.GetByID(ctx, property.HostID)
	if err != nil {
		return nil, fmt.Errorf("get host: %w", err)
	}
	if guest == nil || host == nil {
		return nil, nil
	}

	return &bookingContext{booking: booking, property: property, guest: guest, host: host}, nil
}

func (s *NotificationService) handleBookingRequested(ctx context.Context, job notify.Job) error {
	bc, err := s.loadBooking(ctx, job.BookingID)
	if err != nil {
		return err
	}
	if bc == nil {
		s.logger.Warn("Booking gone, skipping notification", zap.Int64("booking_id", job.BookingID))
		return nil
	}

	// Письмо хосту о новой заявке
	hostEmail := notify.Email{
		To:      []string{bc.host.Email},
		Subject: fmt.Sprintf("New Booking Request - %s", bc.property.Name),
		Body: fmt.Sprintf(
			"Hello %s,\n\n"+
				"You have a new booking request for %s.\n\n"+
				"Guest: %s (%s)\n"+
				"Check-in: %s\n"+
				"Check-out: %s\n"+
				"Price per night: %s\n\n"+
				"Please log in to your dashboard to confirm or decline this booking.",
			bc.host.FirstName,
			bc.property.Name,
			bc.guest.FullName(), bc.guest.Email,
			bc.booking.StartDate.Format("2006-01-02"),
			bc.booking.EndDate.Format("2006-01-02"),
			formatCents(bc.booking.LockedPriceCents),
		),
	}
	if err := s.mailer.Send(hostEmail); err != nil {
		return err
	}

	// Подтверждение гостю, что заявка принята в обработку
	guestEmail := notify.Email{
		To:      []string{bc.guest.Email},
		Subject: fmt.Sprintf("Booking Request Received - %s", bc.property.Name),
		Body: fmt.Sprintf(
			"Hello %s,\n\n"+
				"We received your booking request for %s (%s to %s).\n"+
				"The host will review it shortly. Total for %d nights: %s.",
			bc.guest.FirstName,
			bc.property.Name,
			bc.booking.StartDate.Format("2006-01-02"),
			bc.booking.EndDate.Format("2006-01-02"),
			bc.booking.Nights(),
			formatCents(bc.booking.TotalCents()),
		),
	}
	return s.mailer.Send(guestEmail)
}

func (s *NotificationService) handleBookingConfirmed(ctx context.Context, job notify.Job) error {
	bc, err := s.loadBooking(ctx, job.BookingID)
	if err != nil {
		return err
	}
	if bc == nil {
		s.logger.Warn("Booking gone, skipping notification", zap.Int64("booking_id", job.BookingID))
		return nil
	}

	email := notify.Email{
		To:      []string{bc.guest.Email, bc.host.Email},
		Subject: fmt.Sprintf("Booking Confirmed - %s", bc.property.Name),
		Body: fmt.Sprintf(
			"Hello %s,\n\n"+
				"Your booking for %s has been confirmed!\n\n"+
				"Property: %s\n"+
				"Location: %s\n"+
				"Check-in: %s\n"+
				"Check-out: %s\n"+
				"Total Price: %s\n\n"+
				"Thank you for choosing our service!",
			bc.guest.FirstName,
			bc.property.Name,
			bc.property.Name,
			bc.property.Location,
			bc.booking.StartDate.Format("2006-01-02"),
			bc.booking.EndDate.Format("2006-01-02"),
			formatCents(bc.booking.TotalCents()),
		),
	}
	return s.mailer.Send(email)
}

func (s *NotificationService) handleBookingReminder(ctx context.Context, job notify.Job) error {
	bc, err := s.loadBooking(ctx, job.BookingID)
	if err != nil {
		return err
	}
	if bc == nil {
		s.logger.Warn("Booking gone, skipping reminder", zap.Int64("booking_id", job.BookingID))
		return nil
	}

	// Напоминание шлём только по всё ещё подтверждённым бронированиям
	if bc.booking.Status != model.BookingStatusConfirmed {
		return nil
	}

	email := notify.Email{
		To:      []string{bc.guest.Email},
		Subject: fmt.Sprintf("Reminder: Your stay at %s tomorrow", bc.property.Name),
		Body: fmt.Sprintf(
			"Hello %s,\n\n"+
				"This is a friendly reminder that your stay at %s begins tomorrow!\n\n"+
				"Check-in: %s\n"+
				"Property: %s\n"+
				"Location: %s\n\n"+
				"Have a great stay!",
			bc.guest.FirstName,
			bc.property.Name,
			bc.booking.StartDate.Format("2006-01-02"),
			bc.property.Name,
			bc.property.Location,
		),
	}
	return s.mailer.Send(email)
}

func (s *NotificationService) handleMessageReceived(ctx context.Context, job notify.Job) error {
	message, err := s.messageRepo.GetByID(ctx, job.MessageID)
	if err != nil {
		return fmt.Errorf("get message: %w", err)
	}
	if message == nil {
		s.logger.Warn("Message gone, skipping notification", zap.Int64("message_id", job.MessageID))
		return nil
	}

	sender, err := s.userRepo.GetByID(ctx, message.SenderID)
	if err != nil {
		return fmt.Errorf("get sender: %w", err)
	}
	recipient, err := s.userRepo.GetByID(ctx, message.RecipientID)
	if err != nil {
		return fmt.Errorf("get recipient: %w", err)
	}
	if sender == nil || recipient == nil {
		return nil
	}

	preview := message.Body
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}

	email := notify.Email{
		To:      []string{recipient.Email},
		Subject: fmt.Sprintf("New Message from %s", sender.FirstName),
		Body: fmt.Sprintf(
			"Hello %s,\n\n"+
				"You have received a new message from %s.\n\n"+
				"Message:\n%s\n\n"+
				"Log in to your account to view the full message and respond.",
			recipient.FirstName,
			sender.FullName(),
			preview,
		),
	}
	return s.mailer.Send(email)
}

// formatCents печатает сумму в центах как доллары
func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
