package repository

import (
	"context"
	"fmt"

	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/chinazagideon/alx-travel-app/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	*base.Repository
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт запись об оплате
func (r *PaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	query := `
		INSERT INTO payments (booking_id, amount_cents, payment_date, payment_method)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.QueryRow(
		ctx, query,
		payment.BookingID,
		payment.AmountCents,
		payment.PaymentDate,
		payment.Method,
	).Scan(&payment.ID)

	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	return nil
}

// GetByBookingID получает все оплаты бронирования
func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) ([]*model.Payment, error) {
	query := `
		SELECT id, booking_id, amount_cents, payment_date, payment_method
		FROM payments
		WHERE booking_id = $1
		ORDER BY payment_date
	`

	rows, err := r.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get payments by booking: %w", err)
	}
	defer rows.Close()

	var payments []*model.Payment
	for rows.Next() {
		var payment model.Payment
		err := rows.Scan(
			&payment.ID,
			&payment.BookingID,
			&payment.AmountCents,
			&payment.PaymentDate,
			&payment.Method,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, &payment)
	}

	return payments, nil
}
