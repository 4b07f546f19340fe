package list_open_slots

import (
	"time"

	"github.com/barberio/scheduling-service/internal/calendar"
)

// Request модель запроса на перечисление свободных слотов
type Request struct {
	BusinessID int64
	EmployeeID int64
	ServiceID  int64
	Date       time.Time // Любой момент нужного дня; день определяется в таймзоне бизнеса
}

// Slot свободный слот, в который помещается услуга целиком
type Slot struct {
	StartsAt time.Time
	EndsAt   time.Time
}

// Response модель ответа со списком свободных слотов
type Response struct {
	EmployeeID      int64
	ServiceID       int64
	DurationMinutes int
	Slots           []Slot
}

// slotsFromIntervals конвертирует интервалы в слоты ответа
func slotsFromIntervals(intervals []calendar.Interval) []Slot {
	slots := make([]Slot, 0, len(intervals))
	for _, interval := range intervals {
		slots = append(slots, Slot{StartsAt: interval.Start, EndsAt: interval.End})
	}
	return slots
}
