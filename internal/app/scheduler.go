package app

import (
	"context"
	"time"

	"github.com/chinazagideon/alx-travel-app/internal/service"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами: сверкой доступности объектов
// и напоминаниями о предстоящих заездах
type Scheduler struct {
	availability *service.AvailabilityService
	bookings     *service.BookingService
	interval     time.Duration
	logger       *zap.Logger
	stopChan     chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(
	availability *service.AvailabilityService,
	bookings *service.BookingService,
	interval time.Duration,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		availability: availability,
		bookings:     bookings,
		interval:     interval,
		logger:       logger,
		stopChan:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("interval", s.interval))

	go s.runSweep(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runSweep периодически запускает сверку доступности и напоминания.
// Первый запуск — сразу при старте.
func (s *Scheduler) runSweep(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Background sweep stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Background sweep cancelled")
			return
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	updated, err := s.availability.Reconcile(ctx)
	if err != nil {
		s.logger.Error("Availability reconciliation failed", zap.Error(err))
	} else {
		s.logger.Info("Availability reconciliation completed",
			zap.Int("updated", updated))
	}

	reminders, err := s.bookings.RemindUpcoming(ctx)
	if err != nil {
		s.logger.Error("Reminder sweep failed", zap.Error(err))
	} else {
		s.logger.Info("Reminder sweep completed",
			zap.Int("enqueued", reminders))
	}
}
