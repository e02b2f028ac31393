package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/chinazagideon/alx-travel-app/internal/clock"
	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/chinazagideon/alx-travel-app/internal/notify"
	"go.uber.org/zap"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBookingService_CreateBooking(t *testing.T) {
	t.Parallel()

	now := date(2024, time.May, 1)

	makeSvc := func(properties []*model.Property, bookings []*model.Booking) (*BookingService, *fakeBookingStore, *fakeQueue) {
		store, props := newFakeStores(properties, bookings)
		queue := &fakeQueue{}
		svc := NewBookingService(store, props, queue, clock.NewFixed(now), zap.NewNop())
		return svc, store, queue
	}

	hostedProperty := func(priceCents int64) *model.Property {
		return &model.Property{ID: 1, HostID: 10, Name: "Loft", PricePerNightCents: priceCents, IsAvailable: true}
	}

	t.Run("creates pending booking with locked price", func(t *testing.T) {
		svc, store, queue := makeSvc([]*model.Property{hostedProperty(10000)}, nil)

		booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			PropertyID: 1,
			GuestID:    20,
			StartDate:  date(2024, time.June, 1),
			EndDate:    date(2024, time.June, 5),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if booking.Status != model.BookingStatusPending {
			t.Fatalf("expected status pending, got %s", booking.Status)
		}
		if booking.LockedPriceCents != 10000 {
			t.Fatalf("expected locked price 10000, got %d", booking.LockedPriceCents)
		}
		if len(store.bookings) != 1 {
			t.Fatalf("expected 1 booking in store, got %d", len(store.bookings))
		}
		if len(queue.jobs) != 1 || queue.jobs[0].Type != notify.JobBookingRequested {
			t.Fatalf("expected booking_requested job, got %+v", queue.jobs)
		}
	})

	t.Run("rejects start equal to end", func(t *testing.T) {
		svc, store, _ := makeSvc([]*model.Property{hostedProperty(10000)}, nil)

		_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			PropertyID: 1,
			GuestID:    20,
			StartDate:  date(2024, time.June, 1),
			EndDate:    date(2024, time.June, 1),
		})
		if !errors.Is(err, model.ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
		if len(store.bookings) != 0 {
			t.Fatalf("expected no bookings created, got %d", len(store.bookings))
		}
	})

	t.Run("rejects start after end", func(t *testing.T) {
		svc, _, _ := makeSvc([]*model.Property{hostedProperty(10000)}, nil)

		_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			PropertyID: 1,
			GuestID:    20,
			StartDate:  date(2024, time.June, 5),
			EndDate:    date(2024, time.June, 1),
		})
		if !errors.Is(err, model.ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("rejects backdated start", func(t *testing.T) {
		svc, store, _ := makeSvc([]*model.Property{hostedProperty(10000)}, nil)

		_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			PropertyID: 1,
			GuestID:    20,
			StartDate:  date(2024, time.April, 30),
			EndDate:    date(2024, time.May, 3),
		})
		if !errors.Is(err, model.ErrStartDateInPast) {
			t.Fatalf("expected ErrStartDateInPast, got %v", err)
		}
		if len(store.bookings) != 0 {
			t.Fatalf("expected no bookings created, got %d", len(store.bookings))
		}
	})

	t.Run("unknown property", func(t *testing.T) {
		svc, _, _ := makeSvc(nil, nil)

		_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			PropertyID: 99,
			GuestID:    20,
			StartDate:  date(2024, time.June, 1),
			EndDate:    date(2024, time.June, 5),
		})
		if !errors.Is(err, model.ErrPropertyNotFound) {
			t.Fatalf("expected ErrPropertyNotFound, got %v", err)
		}
	})

	t.Run("rejects overlapping interval", func(t *testing.T) {
		svc, store, queue := makeSvc(
			[]*model.Property{hostedProperty(10000)},
			[]*model.Booking{{
				ID: 1, PropertyID: 1, GuestID: 30,
				StartDate: date(2024, time.June, 1), EndDate: date(2024, time.June, 5),
				Status: model.BookingStatusConfirmed,
			}},
		)

		_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			PropertyID: 1,
			GuestID:    20,
			StartDate:  date(2024, time.June, 4),
			EndDate:    date(2024, time.June, 8),
		})
		if !errors.Is(err, model.ErrDatesUnavailable) {
			t.Fatalf("expected ErrDatesUnavailable, got %v", err)
		}
		if len(store.bookings) != 1 {
			t.Fatalf("expected no new booking, got %d", len(store.bookings))
		}
		if len(queue.jobs) != 0 {
			t.Fatalf("expected no jobs on conflict, got %d", len(queue.jobs))
		}
	})

	t.Run("adjacent interval is not an overlap", func(t *testing.T) {
		svc, _, _ := makeSvc(
			[]*model.Property{hostedProperty(10000)},
			[]*model.Booking{{
				ID: 1, PropertyID: 1, GuestID: 30,
				StartDate: date(2024, time.June, 1), EndDate: date(2024, time.June, 5),
				Status: model.BookingStatusConfirmed,
			}},
		)

		booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			PropertyID: 1,
			GuestID:    20,
			StartDate:  date(2024, time.June, 5),
			EndDate:    date(2024, time.June, 8),
		})
		if err != nil {
			t.Fatalf("expected adjacent booking to succeed, got %v", err)
		}
		if booking.ID == 0 {
			t.Fatalf("expected booking ID to be set")
		}
	})

	t.Run("canceled booking frees its dates immediately", func(t *testing.T) {
		svc, _, _ := makeSvc(
			[]*model.Property{hostedProperty(10000)},
			[]*model.Booking{{
				ID: 1, PropertyID: 1, GuestID: 30,
				StartDate: date(2024, time.June, 1), EndDate: date(2024, time.June, 5),
				Status: model.BookingStatusCanceled,
			}},
		)

		_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			PropertyID: 1,
			GuestID:    20,
			StartDate:  date(2024, time.June, 2),
			EndDate:    date(2024, time.June, 4),
		})
		if err != nil {
			t.Fatalf("expected dates of canceled booking to be free, got %v", err)
		}
	})

	t.Run("locked price survives property price edit", func(t *testing.T) {
		property := hostedProperty(10000)
		svc, store, _ := makeSvc([]*model.Property{property}, nil)

		booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			PropertyID: 1,
			GuestID:    20,
			StartDate:  date(2024, time.June, 1),
			EndDate:    date(2024, time.June, 5),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		// Хост меняет цену после создания бронирования
		property.PricePerNightCents = 25000

		stored, _ := store.GetByID(context.Background(), booking.ID)
		if stored.LockedPriceCents != 10000 {
			t.Fatalf("locked price changed after property edit: %d", stored.LockedPriceCents)
		}
	})

	t.Run("enqueue failure does not fail creation", func(t *testing.T) {
		store, props := newFakeStores([]*model.Property{hostedProperty(10000)}, nil)
		queue := &fakeQueue{failEnqueue: true}
		svc := NewBookingService(store, props, queue, clock.NewFixed(now), zap.NewNop())

		booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			PropertyID: 1,
			GuestID:    20,
			StartDate:  date(2024, time.June, 1),
			EndDate:    date(2024, time.June, 5),
		})
		if err != nil {
			t.Fatalf("expected creation to succeed despite queue failure, got %v", err)
		}
		if booking.Status != model.BookingStatusPending {
			t.Fatalf("expected pending booking, got %s", booking.Status)
		}
	})

	t.Run("concurrent overlapping requests: exactly one wins", func(t *testing.T) {
		svc, store, _ := makeSvc([]*model.Property{hostedProperty(10000)}, nil)

		const attempts = 8
		errs := make([]error, attempts)

		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.CreateBooking(context.Background(), CreateBookingInput{
					PropertyID: 1,
					GuestID:    int64(100 + i),
					StartDate:  date(2024, time.June, 1),
					EndDate:    date(2024, time.June, 5),
				})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			} else if !errors.Is(err, model.ErrDatesUnavailable) {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if succeeded != 1 {
			t.Fatalf("expected exactly one winner, got %d", succeeded)
		}

		// Инвариант: активные бронирования объекта попарно не пересекаются
		active := store.activeBookings(1)
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				if model.Overlaps(active[i].StartDate, active[i].EndDate, active[j].StartDate, active[j].EndDate) {
					t.Fatalf("overlapping active bookings %d and %d", active[i].ID, active[j].ID)
				}
			}
		}
	})
}

func TestBookingService_ConfirmBooking(t *testing.T) {
	t.Parallel()

	now := date(2024, time.May, 1)

	pending := func() *model.Booking {
		return &model.Booking{
			ID: 1, PropertyID: 1, GuestID: 20,
			StartDate: date(2024, time.June, 1), EndDate: date(2024, time.June, 5),
			Status: model.BookingStatusPending,
		}
	}
	property := &model.Property{ID: 1, HostID: 10, PricePerNightCents: 10000}

	t.Run("host confirms pending booking", func(t *testing.T) {
		store, props := newFakeStores([]*model.Property{property}, []*model.Booking{pending()})
		queue := &fakeQueue{}
		svc := NewBookingService(store, props, queue, clock.NewFixed(now), zap.NewNop())

		booking, err := svc.ConfirmBooking(context.Background(), 1, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if booking.Status != model.BookingStatusConfirmed {
			t.Fatalf("expected confirmed, got %s", booking.Status)
		}
		if len(queue.jobs) != 1 || queue.jobs[0].Type != notify.JobBookingConfirmed {
			t.Fatalf("expected booking_confirmed job, got %+v", queue.jobs)
		}
	})

	t.Run("non-host cannot confirm", func(t *testing.T) {
		store, props := newFakeStores([]*model.Property{property}, []*model.Booking{pending()})
		queue := &fakeQueue{}
		svc := NewBookingService(store, props, queue, clock.NewFixed(now), zap.NewNop())

		_, err := svc.ConfirmBooking(context.Background(), 1, 20)
		if !errors.Is(err, model.ErrNotHost) {
			t.Fatalf("expected ErrNotHost, got %v", err)
		}

		stored, _ := store.GetByID(context.Background(), 1)
		if stored.Status != model.BookingStatusPending {
			t.Fatalf("status changed on failed confirm: %s", stored.Status)
		}
		if len(queue.jobs) != 0 {
			t.Fatalf("expected no jobs, got %d", len(queue.jobs))
		}
	})

	t.Run("cannot confirm canceled booking", func(t *testing.T) {
		canceled := pending()
		canceled.Status = model.BookingStatusCanceled
		store, props := newFakeStores([]*model.Property{property}, []*model.Booking{canceled})
		svc := NewBookingService(store, props, &fakeQueue{}, clock.NewFixed(now), zap.NewNop())

		_, err := svc.ConfirmBooking(context.Background(), 1, 10)
		if !errors.Is(err, model.ErrBookingNotPending) {
			t.Fatalf("expected ErrBookingNotPending, got %v", err)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		store, props := newFakeStores([]*model.Property{property}, nil)
		svc := NewBookingService(store, props, &fakeQueue{}, clock.NewFixed(now), zap.NewNop())

		_, err := svc.ConfirmBooking(context.Background(), 42, 10)
		if !errors.Is(err, model.ErrBookingNotFound) {
			t.Fatalf("expected ErrBookingNotFound, got %v", err)
		}
	})
}

func TestBookingService_CancelBooking(t *testing.T) {
	t.Parallel()

	now := date(2024, time.May, 1)
	property := &model.Property{ID: 1, HostID: 10, PricePerNightCents: 10000}

	confirmed := func() *model.Booking {
		return &model.Booking{
			ID: 1, PropertyID: 1, GuestID: 20,
			StartDate: date(2024, time.June, 1), EndDate: date(2024, time.June, 5),
			Status: model.BookingStatusConfirmed,
		}
	}

	t.Run("guest cancels", func(t *testing.T) {
		store, props := newFakeStores([]*model.Property{property}, []*model.Booking{confirmed()})
		svc := NewBookingService(store, props, &fakeQueue{}, clock.NewFixed(now), zap.NewNop())

		booking, err := svc.CancelBooking(context.Background(), 1, 20)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if booking.Status != model.BookingStatusCanceled {
			t.Fatalf("expected canceled, got %s", booking.Status)
		}
	})

	t.Run("host cancels", func(t *testing.T) {
		store, props := newFakeStores([]*model.Property{property}, []*model.Booking{confirmed()})
		svc := NewBookingService(store, props, &fakeQueue{}, clock.NewFixed(now), zap.NewNop())

		if _, err := svc.CancelBooking(context.Background(), 1, 10); err != nil {
			t.Fatalf("expected host cancel to succeed, got %v", err)
		}
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		store, props := newFakeStores([]*model.Property{property}, []*model.Booking{confirmed()})
		svc := NewBookingService(store, props, &fakeQueue{}, clock.NewFixed(now), zap.NewNop())

		_, err := svc.CancelBooking(context.Background(), 1, 99)
		if !errors.Is(err, model.ErrNotParticipant) {
			t.Fatalf("expected ErrNotParticipant, got %v", err)
		}

		stored, _ := store.GetByID(context.Background(), 1)
		if stored.Status != model.BookingStatusConfirmed {
			t.Fatalf("status changed on failed cancel: %s", stored.Status)
		}
	})

	t.Run("canceling twice is a no-op", func(t *testing.T) {
		store, props := newFakeStores([]*model.Property{property}, []*model.Booking{confirmed()})
		svc := NewBookingService(store, props, &fakeQueue{}, clock.NewFixed(now), zap.NewNop())

		if _, err := svc.CancelBooking(context.Background(), 1, 20); err != nil {
			t.Fatalf("first cancel failed: %v", err)
		}
		booking, err := svc.CancelBooking(context.Background(), 1, 20)
		if err != nil {
			t.Fatalf("second cancel should be a no-op, got %v", err)
		}
		if booking.Status != model.BookingStatusCanceled {
			t.Fatalf("expected canceled, got %s", booking.Status)
		}
	})
}

func TestBookingService_RemindUpcoming(t *testing.T) {
	t.Parallel()

	now := date(2024, time.May, 31)
	property := &model.Property{ID: 1, HostID: 10, PricePerNightCents: 10000}

	store, props := newFakeStores([]*model.Property{property}, []*model.Booking{
		{ID: 1, PropertyID: 1, GuestID: 20, StartDate: date(2024, time.June, 1), EndDate: date(2024, time.June, 5), Status: model.BookingStatusConfirmed},
		{ID: 2, PropertyID: 1, GuestID: 21, StartDate: date(2024, time.June, 1), EndDate: date(2024, time.June, 2), Status: model.BookingStatusPending},
		{ID: 3, PropertyID: 1, GuestID: 22, StartDate: date(2024, time.June, 7), EndDate: date(2024, time.June, 9), Status: model.BookingStatusConfirmed},
	})
	queue := &fakeQueue{}
	svc := NewBookingService(store, props, queue, clock.NewFixed(now), zap.NewNop())

	sent, err := svc.RemindUpcoming(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 reminder, got %d", sent)
	}
	if len(queue.jobs) != 1 || queue.jobs[0].Type != notify.JobBookingReminder || queue.jobs[0].BookingID != 1 {
		t.Fatalf("unexpected jobs: %+v", queue.jobs)
	}
}

// fakeBookingStore in-memory реализация BookingStore.
// WithTx сериализует конкурирующие заявки, как блокировка строки объекта в БД.
type fakeBookingStore struct {
	mu         sync.Mutex
	properties map[int64]*model.Property
	bookings   []*model.Booking
	nextID     int64
}

// fakePropertyStore читает из той же карты объектов, что и fakeBookingStore
type fakePropertyStore struct {
	properties map[int64]*model.Property
}

func newFakeStores(properties []*model.Property, bookings []*model.Booking) (*fakeBookingStore, *fakePropertyStore) {
	props := make(map[int64]*model.Property, len(properties))
	for _, p := range properties {
		props[p.ID] = p
	}
	maxID := int64(0)
	for _, b := range bookings {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	store := &fakeBookingStore{
		properties: props,
		bookings:   append([]*model.Booking{}, bookings...),
		nextID:     maxID,
	}
	return store, &fakePropertyStore{properties: props}
}

func (f *fakePropertyStore) GetByID(_ context.Context, id int64) (*model.Property, error) {
	return f.properties[id], nil
}

func (f *fakePropertyStore) GetByIDForUpdate(_ context.Context, id int64) (*model.Property, error) {
	return f.properties[id], nil
}

func (f *fakeBookingStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeBookingStore) Create(_ context.Context, booking *model.Booking) error {
	for _, existing := range f.bookings {
		if existing.PropertyID == booking.PropertyID && existing.Status.IsActive() &&
			model.Overlaps(existing.StartDate, existing.EndDate, booking.StartDate, booking.EndDate) {
			return model.ErrDatesUnavailable
		}
	}
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	copied := *booking
	f.bookings = append(f.bookings, &copied)
	return nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingStore) HasOverlapping(_ context.Context, propertyID int64, start, end time.Time) (bool, error) {
	for _, b := range f.bookings {
		if b.PropertyID == propertyID && b.Status.IsActive() &&
			model.Overlaps(b.StartDate, b.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingStore) UpdateStatusIfCurrent(_ context.Context, id int64, from, to model.BookingStatus) (bool, error) {
	for _, b := range f.bookings {
		if b.ID == id && b.Status == from {
			b.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingStore) CancelIfActive(_ context.Context, id int64) (bool, error) {
	for _, b := range f.bookings {
		if b.ID == id && b.Status != model.BookingStatusCanceled {
			b.Status = model.BookingStatusCanceled
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingStore) GetByGuestID(_ context.Context, guestID int64) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range f.bookings {
		if b.GuestID == guestID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) GetByHostID(_ context.Context, hostID int64) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range f.bookings {
		p := f.properties[b.PropertyID]
		if p != nil && p.HostID == hostID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) GetConfirmedStartingOn(_ context.Context, d time.Time) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range f.bookings {
		if b.Status == model.BookingStatusConfirmed && b.StartDate.Equal(d) {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) activeBookings(propertyID int64) []*model.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Booking
	for _, b := range f.bookings {
		if b.PropertyID == propertyID && b.Status.IsActive() {
			out = append(out, b)
		}
	}
	return out
}

// fakeQueue собирает поставленные задания
type fakeQueue struct {
	mu          sync.Mutex
	jobs        []notify.Job
	failEnqueue bool
}

func (q *fakeQueue) Enqueue(_ context.Context, job notify.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.failEnqueue {
		return errors.New("queue unavailable")
	}
	q.jobs = append(q.jobs, job)
	return nil
}
