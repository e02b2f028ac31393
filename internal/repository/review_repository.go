package repository

import (
	"context"
	"fmt"

	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/chinazagideon/alx-travel-app/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository struct {
	*base.Repository
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт отзыв. Повторный отзыв того же пользователя на тот же объект
// отбивается уникальным ограничением.
func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (property_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		review.PropertyID,
		review.UserID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return model.ErrAlreadyReviewed
		}
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

// GetByPropertyID получает все отзывы на объект
func (r *ReviewRepository) GetByPropertyID(ctx context.Context, propertyID int64) ([]*model.Review, error) {
	query := `
		SELECT id, property_id, user_id, rating, comment, created_at
		FROM reviews
		WHERE property_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("get reviews by property: %w", err)
	}
	defer rows.Close()

	var reviews []*model.Review
	for rows.Next() {
		var review model.Review
		err := rows.Scan(
			&review.ID,
			&review.PropertyID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, nil
}

// Exists проверяет, оставлял ли пользователь отзыв на объект
func (r *ReviewRepository) Exists(ctx context.Context, propertyID, userID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM reviews WHERE property_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.QueryRow(ctx, query, propertyID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check review exists: %w", err)
	}

	return exists, nil
}

// HasConfirmedBooking проверяет, было ли у пользователя подтверждённое
// бронирование объекта (условие для отзыва)
func (r *ReviewRepository) HasConfirmedBooking(ctx context.Context, propertyID, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE property_id = $1 AND guest_id = $2 AND status = 'confirmed'
		)
	`

	var exists bool
	if err := r.QueryRow(ctx, query, propertyID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check confirmed booking: %w", err)
	}

	return exists, nil
}
