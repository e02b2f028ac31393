package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Ожидает подтверждения хоста
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждено хостом
	BookingStatusCanceled  BookingStatus = "canceled"  // Отменено гостем или хостом
)

// IsActive активные бронирования занимают даты при проверке пересечений
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

type Booking struct {
	ID         int64         `json:"id"`
	PropertyID int64         `json:"property_id"`
	GuestID    int64         `json:"guest_id"`
	StartDate  time.Time     `json:"start_date"` // Полуоткрытый интервал [start, end)
	EndDate    time.Time     `json:"end_date"`
	// Цена за ночь, зафиксированная в момент создания. Не пересчитывается
	// при последующих изменениях цены объекта.
	LockedPriceCents int64         `json:"locked_price_cents"`
	Status           BookingStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	Property *Property `json:"property,omitempty"`
	Guest    *User     `json:"guest,omitempty"`
}

// Nights количество ночей в интервале бронирования
func (b *Booking) Nights() int {
	return int(b.EndDate.Sub(b.StartDate).Hours() / 24)
}

// TotalCents полная стоимость бронирования по зафиксированной цене
func (b *Booking) TotalCents() int64 {
	return b.LockedPriceCents * int64(b.Nights())
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов дат.
// Смежные интервалы (конец одного равен началу другого) не пересекаются.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}
