package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/chinazagideon/alx-travel-app/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

const bookingColumns = `id, property_id, guest_id, start_date, end_date, locked_price_cents, status, created_at`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID,
		&b.PropertyID,
		&b.GuestID,
		&b.StartDate,
		&b.EndDate,
		&b.LockedPriceCents,
		&b.Status,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create создаёт новое бронирование. Нарушение exclusion-ограничения на
// пересекающиеся интервалы возвращается как ErrDatesUnavailable — тот же
// результат, что и у предварительной проверки.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (property_id, guest_id, start_date, end_date, locked_price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		booking.PropertyID,
		booking.GuestID,
		booking.StartDate,
		booking.EndDate,
		booking.LockedPriceCents,
		booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		if base.IsExclusionViolation(err) || base.IsUniqueViolation(err) {
			return model.ErrDatesUnavailable
		}
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// GetByIDForUpdate получает бронирование по ID с блокировкой строки
func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	booking, err := scanBooking(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking for update: %w", err)
	}

	return booking, nil
}

// HasOverlapping проверяет, пересекается ли полуоткрытый интервал [start, end)
// с каким-либо активным бронированием объекта. Смежные интервалы не считаются
// пересечением.
func (r *BookingRepository) HasOverlapping(ctx context.Context, propertyID int64, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE property_id = $1
			  AND status IN ('pending', 'confirmed')
			  AND start_date < $3
			  AND end_date > $2
		)
	`

	var exists bool
	if err := r.QueryRow(ctx, query, propertyID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlapping bookings: %w", err)
	}

	return exists, nil
}

// UpdateStatusIfCurrent переводит бронирование из статуса from в статус to.
// Возвращает false, если статус уже изменился (проигранная гонка переходов).
func (r *BookingRepository) UpdateStatusIfCurrent(ctx context.Context, id int64, from, to model.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	affected, err := r.ExecAffected(ctx, query, to, id, from)
	if err != nil {
		return false, fmt.Errorf("update booking status: %w", err)
	}

	return affected > 0, nil
}

// CancelIfActive отменяет бронирование, если оно ещё не отменено.
// Возвращает false для уже отменённого (повторная отмена — no-op).
func (r *BookingRepository) CancelIfActive(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'canceled'
		WHERE id = $1 AND status <> 'canceled'
	`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("cancel booking: %w", err)
	}

	return affected > 0, nil
}

// GetByGuestID получает все бронирования гостя
func (r *BookingRepository) GetByGuestID(ctx context.Context, guestID int64) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE guest_id = $1
		ORDER BY created_at DESC
	`

	return r.queryBookings(ctx, query, guestID)
}

// GetByHostID получает все бронирования объектов хоста
func (r *BookingRepository) GetByHostID(ctx context.Context, hostID int64) ([]*model.Booking, error) {
	query := `
		SELECT b.id, b.property_id, b.guest_id, b.start_date, b.end_date, b.locked_price_cents, b.status, b.created_at
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE p.host_id = $1
		ORDER BY b.created_at DESC
	`

	return r.queryBookings(ctx, query, hostID)
}

// GetByPropertyID получает все бронирования объекта
func (r *BookingRepository) GetByPropertyID(ctx context.Context, propertyID int64) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE property_id = $1
		ORDER BY start_date
	`

	return r.queryBookings(ctx, query, propertyID)
}

// GetConfirmedStartingOn получает подтверждённые бронирования, начинающиеся
// в указанную дату (для напоминаний за день до заезда)
func (r *BookingRepository) GetConfirmedStartingOn(ctx context.Context, date time.Time) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'confirmed' AND start_date = $1
		ORDER BY id
	`

	return r.queryBookings(ctx, query, date)
}

// HasActiveOn проверяет, есть ли у объекта активное бронирование,
// покрывающее указанную дату (start <= date < end)
func (r *BookingRepository) HasActiveOn(ctx context.Context, propertyID int64, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE property_id = $1
			  AND status IN ('pending', 'confirmed')
			  AND start_date <= $2
			  AND end_date > $2
		)
	`

	var exists bool
	if err := r.QueryRow(ctx, query, propertyID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("check active bookings: %w", err)
	}

	return exists, nil
}

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*model.Booking, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}
