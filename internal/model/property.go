package model

import "time"

type Property struct {
	ID          int64  `json:"id"`
	HostID      int64  `json:"host_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	// Цена за ночь в центах (целые числа, чтобы не терять копейки на float)
	PricePerNightCents int64     `json:"price_per_night_cents"`
	PropertyType       string    `json:"property_type"`
	MaxGuests          int       `json:"max_guests"`
	Bedrooms           int       `json:"bedrooms"`
	Bathrooms          int       `json:"bathrooms"`
	// Кэшированный флаг доступности. Пересчитывается фоновой сверкой,
	// между запусками может отставать от реального состояния бронирований.
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Дополнительные поля для удобства (не из БД)
	Host *User `json:"host,omitempty"`
}
