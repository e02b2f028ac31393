package model

import "errors"

// Ошибки домена. Проверяются через errors.Is, поэтому репозитории и сервисы
// оборачивают их только через %w.
var (
	// Ошибки валидации
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrStartDateInPast  = errors.New("start date cannot be in the past")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrSelfMessage      = errors.New("sender and recipient cannot be the same user")
	ErrEmptyBody        = errors.New("message body cannot be empty")

	// Не найдено
	ErrPropertyNotFound = errors.New("property not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrUserNotFound     = errors.New("user not found")

	// Конфликты
	ErrDatesUnavailable  = errors.New("property is not available for the selected dates")
	ErrBookingNotPending = errors.New("booking is not pending")
	ErrAlreadyReviewed   = errors.New("property already reviewed by this user")
	ErrNoConfirmedStay   = errors.New("review requires a confirmed booking")

	// Нет прав
	ErrNotHost        = errors.New("only the property host may perform this action")
	ErrNotParticipant = errors.New("only the guest or the property host may perform this action")
)

// IsValidation true для ошибок валидации входных данных
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrStartDateInPast) ||
		errors.Is(err, ErrInvalidRating) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrSelfMessage) ||
		errors.Is(err, ErrEmptyBody)
}

// IsNotFound true если запрошенная сущность отсутствует
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPropertyNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsConflict true для конфликтов состояния: занятые даты, недопустимый переход статуса
func IsConflict(err error) bool {
	return errors.Is(err, ErrDatesUnavailable) ||
		errors.Is(err, ErrBookingNotPending) ||
		errors.Is(err, ErrAlreadyReviewed) ||
		errors.Is(err, ErrNoConfirmedStay)
}

// IsAuthorization true если у действующего пользователя нет прав на операцию
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrNotHost) || errors.Is(err, ErrNotParticipant)
}
