package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/chinazagideon/alx-travel-app/internal/clock"
	"github.com/chinazagideon/alx-travel-app/internal/model"
	"go.uber.org/zap"
)

func TestAvailabilityService_Reconcile(t *testing.T) {
	t.Parallel()

	now := date(2024, time.June, 3)

	t.Run("flags occupied and free properties", func(t *testing.T) {
		props := &fakeAvailabilityStore{
			available: map[int64]bool{1: true, 2: false, 3: false},
		}
		bookings := &fakeActiveBookingStore{bookings: []*model.Booking{
			// покрывает сегодня: start <= today < end
			{ID: 1, PropertyID: 1, StartDate: date(2024, time.June, 1), EndDate: date(2024, time.June, 5), Status: model.BookingStatusConfirmed},
			// закончилось сегодня: день выезда свободен
			{ID: 2, PropertyID: 2, StartDate: date(2024, time.June, 1), EndDate: date(2024, time.June, 3), Status: model.BookingStatusConfirmed},
		}}
		svc := NewAvailabilityService(props, bookings, clock.NewFixed(now), zap.NewNop())

		updated, err := svc.Reconcile(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		// объект 1: true -> false; объект 2: false -> true; объект 3: false -> true
		if updated != 3 {
			t.Fatalf("expected 3 updates, got %d", updated)
		}
		if props.available[1] {
			t.Fatalf("property 1 should be unavailable")
		}
		if !props.available[2] || !props.available[3] {
			t.Fatalf("properties 2 and 3 should be available")
		}
	})

	t.Run("second run writes nothing", func(t *testing.T) {
		props := &fakeAvailabilityStore{
			available: map[int64]bool{1: true, 2: true},
		}
		bookings := &fakeActiveBookingStore{bookings: []*model.Booking{
			{ID: 1, PropertyID: 1, StartDate: date(2024, time.June, 1), EndDate: date(2024, time.June, 5), Status: model.BookingStatusConfirmed},
		}}
		svc := NewAvailabilityService(props, bookings, clock.NewFixed(now), zap.NewNop())

		if _, err := svc.Reconcile(context.Background()); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		props.writes = 0

		updated, err := svc.Reconcile(context.Background())
		if err != nil {
			t.Fatalf("second run failed: %v", err)
		}
		if updated != 0 || props.writes != 0 {
			t.Fatalf("expected idempotent second run, got %d updates and %d writes", updated, props.writes)
		}
	})

	t.Run("canceled booking frees the property", func(t *testing.T) {
		booking := &model.Booking{
			ID: 1, PropertyID: 1,
			StartDate: date(2024, time.June, 1), EndDate: date(2024, time.June, 5),
			Status: model.BookingStatusConfirmed,
		}
		props := &fakeAvailabilityStore{available: map[int64]bool{1: true}}
		bookings := &fakeActiveBookingStore{bookings: []*model.Booking{booking}}
		svc := NewAvailabilityService(props, bookings, clock.NewFixed(now), zap.NewNop())

		if _, err := svc.Reconcile(context.Background()); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if props.available[1] {
			t.Fatalf("property should be flagged unavailable while booking is active")
		}

		booking.Status = model.BookingStatusCanceled

		updated, err := svc.Reconcile(context.Background())
		if err != nil {
			t.Fatalf("second run failed: %v", err)
		}
		if updated != 1 || !props.available[1] {
			t.Fatalf("expected property to become available after cancel")
		}
	})

	t.Run("error on one property does not stop the sweep", func(t *testing.T) {
		props := &fakeAvailabilityStore{
			available: map[int64]bool{1: false, 2: false},
		}
		bookings := &fakeActiveBookingStore{failFor: 1}
		svc := NewAvailabilityService(props, bookings, clock.NewFixed(now), zap.NewNop())

		updated, err := svc.Reconcile(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated != 1 || !props.available[2] {
			t.Fatalf("expected property 2 to be updated despite property 1 failure")
		}
	})
}

type fakeAvailabilityStore struct {
	available map[int64]bool
	writes    int
}

func (f *fakeAvailabilityStore) ListIDs(_ context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(f.available))
	for id := range f.available {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeAvailabilityStore) SetAvailabilityIfChanged(_ context.Context, id int64, available bool) (bool, error) {
	if f.available[id] == available {
		return false, nil
	}
	f.available[id] = available
	f.writes++
	return true, nil
}

type fakeActiveBookingStore struct {
	bookings []*model.Booking
	failFor  int64
}

func (f *fakeActiveBookingStore) HasActiveOn(_ context.Context, propertyID int64, d time.Time) (bool, error) {
	if f.failFor != 0 && propertyID == f.failFor {
		return false, errors.New("storage down")
	}
	for _, b := range f.bookings {
		if b.PropertyID == propertyID && b.Status.IsActive() &&
			!b.StartDate.After(d) && b.EndDate.After(d) {
			return true, nil
		}
	}
	return false, nil
}
