package clock

import "time"

// Clock источник текущего времени. Внедряется в сервисы,
// чтобы проверки дат были детерминированными в тестах.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem возвращает часы на основе time.Now
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed возвращает часы, всегда показывающие один и тот же момент (для тестов)
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// Today усекает момент времени до даты (полночь UTC).
// Все интервалы бронирований сравниваются на уровне дат.
func Today(c Clock) time.Time {
	return Truncate(c.Now())
}

// Truncate усекает произвольный момент до даты
func Truncate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
