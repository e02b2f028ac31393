package model

import "time"

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodPayPal     PaymentMethod = "paypal"
	PaymentMethodStripe     PaymentMethod = "stripe"
)

// Payment пассивная запись об оплате. Создаётся только для существующего
// бронирования и никогда не меняет его статус.
type Payment struct {
	ID          int64         `json:"id"`
	BookingID   int64         `json:"booking_id"`
	AmountCents int64         `json:"amount_cents"`
	PaymentDate time.Time     `json:"payment_date"`
	Method      PaymentMethod `json:"payment_method"`
}
