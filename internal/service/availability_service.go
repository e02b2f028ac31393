package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chinazagideon/alx-travel-app/internal/clock"
	"go.uber.org/zap"
)

// AvailabilityPropertyStore доступ к объектам, нужный сверке
type AvailabilityPropertyStore interface {
	ListIDs(ctx context.Context) ([]int64, error)
	SetAvailabilityIfChanged(ctx context.Context, id int64, available bool) (bool, error)
}

// ActiveBookingStore проверка активных бронирований на дату
type ActiveBookingStore interface {
	HasActiveOn(ctx context.Context, propertyID int64, date time.Time) (bool, error)
}

// AvailabilityService фоновая сверка кэшированного флага доступности
// с реальным состоянием бронирований
type AvailabilityService struct {
	properties AvailabilityPropertyStore
	bookings   ActiveBookingStore
	clock      clock.Clock
	logger     *zap.Logger
}

func NewAvailabilityService(
	properties AvailabilityPropertyStore,
	bookings ActiveBookingStore,
	clk clock.Clock,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		properties: properties,
		bookings:   bookings,
		clock:      clk,
		logger:     logger,
	}
}

// Reconcile пересчитывает is_available каждого объекта как
// "нет активного бронирования, покрывающего сегодняшнюю дату".
// Запись происходит только при расхождении с сохранённым значением,
// поэтому повторный запуск без изменений ничего не пишет.
// Ошибка по одному объекту не прерывает обход остальных.
func (s *AvailabilityService) Reconcile(ctx context.Context) (int, error) {
	ids, err := s.properties.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list properties: %w", err)
	}

	today := clock.Today(s.clock)
	updated := 0

	for _, id := range ids {
		occupied, err := s.bookings.HasActiveOn(ctx, id, today)
		if err != nil {
			s.logger.Error("Failed to check active bookings",
				zap.Int64("property_id", id),
				zap.Error(err),
			)
			continue
		}

		changed, err := s.properties.SetAvailabilityIfChanged(ctx, id, !occupied)
		if err != nil {
			s.logger.Error("Failed to update property availability",
				zap.Int64("property_id", id),
				zap.Error(err),
			)
			continue
		}

		if changed {
			updated++
			s.logger.Info("Property availability updated",
				zap.Int64("property_id", id),
				zap.Bool("is_available", !occupied),
			)
		}
	}

	return updated, nil
}
