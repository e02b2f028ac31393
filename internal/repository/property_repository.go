package repository

import (
	"context"
	"fmt"

	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/chinazagideon/alx-travel-app/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PropertyRepository struct {
	*base.Repository
}

func NewPropertyRepository(pool *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{Repository: base.NewRepository(pool)}
}

const propertyColumns = `id, host_id, name, description, location, price_per_night_cents,
		property_type, max_guests, bedrooms, bathrooms, is_available, created_at, updated_at`

func scanProperty(row pgx.Row) (*model.Property, error) {
	var p model.Property
	err := row.Scan(
		&p.ID,
		&p.HostID,
		&p.Name,
		&p.Description,
		&p.Location,
		&p.PricePerNightCents,
		&p.PropertyType,
		&p.MaxGuests,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.IsAvailable,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create создаёт новый объект размещения
func (r *PropertyRepository) Create(ctx context.Context, property *model.Property) error {
	query := `
		INSERT INTO properties (host_id, name, description, location, price_per_night_cents,
			property_type, max_guests, bedrooms, bathrooms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, is_available, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		property.HostID,
		property.Name,
		property.Description,
		property.Location,
		property.PricePerNightCents,
		property.PropertyType,
		property.MaxGuests,
		property.Bedrooms,
		property.Bathrooms,
	).Scan(&property.ID, &property.IsAvailable, &property.CreatedAt, &property.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}

	return nil
}

// GetByID получает объект по ID
func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*model.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	property, err := scanProperty(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get property by id: %w", err)
	}

	return property, nil
}

// GetByIDForUpdate получает объект по ID с блокировкой строки.
// Сериализует конкурирующие создания бронирований по одному объекту.
func (r *PropertyRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1 FOR UPDATE`

	property, err := scanProperty(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get property for update: %w", err)
	}

	return property, nil
}

// List получает все объекты размещения
func (r *PropertyRepository) List(ctx context.Context) ([]*model.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_at DESC`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var properties []*model.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, property)
	}

	return properties, nil
}

// ListIDs получает идентификаторы всех объектов (для фоновой сверки доступности)
func (r *PropertyRepository) ListIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT id FROM properties ORDER BY id`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list property ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan property id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// UpdatePrice изменяет текущую цену за ночь. Зафиксированные цены
// существующих бронирований не затрагиваются.
func (r *PropertyRepository) UpdatePrice(ctx context.Context, id int64, priceCents int64) error {
	query := `
		UPDATE properties
		SET price_per_night_cents = $1, updated_at = NOW()
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, priceCents, id)
	if err != nil {
		return fmt.Errorf("update property price: %w", err)
	}

	if affected == 0 {
		return model.ErrPropertyNotFound
	}

	return nil
}

// SetAvailabilityIfChanged записывает флаг доступности только если он
// отличается от сохранённого. Возвращает true, если запись произошла.
func (r *PropertyRepository) SetAvailabilityIfChanged(ctx context.Context, id int64, available bool) (bool, error) {
	query := `
		UPDATE properties
		SET is_available = $1, updated_at = NOW()
		WHERE id = $2 AND is_available <> $1
	`

	affected, err := r.ExecAffected(ctx, query, available, id)
	if err != nil {
		return false, fmt.Errorf("set property availability: %w", err)
	}

	return affected > 0, nil
}
