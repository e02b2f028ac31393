package notify

import (
	"context"
	"time"
)

type JobType string

const (
	JobBookingRequested JobType = "booking_requested"
	JobBookingConfirmed JobType = "booking_confirmed"
	JobBookingReminder  JobType = "booking_reminder"
	JobMessageReceived  JobType = "message_received"
)

// Job задание на отправку уведомления. Ровно одно из BookingID/MessageID
// заполнено в зависимости от типа.
type Job struct {
	ID        string    `json:"id"`
	Type      JobType   `json:"type"`
	BookingID int64     `json:"booking_id,omitempty"`
	MessageID int64     `json:"message_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Queue точка передачи уведомлений в асинхронную доставку.
// Постановка в очередь — fire-and-forget: её сбой никогда не откатывает
// и не блокирует изменение состояния бронирования.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
}
