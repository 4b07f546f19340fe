package create_reservation

import (
	"time"

	"github.com/barberio/scheduling-service/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	BusinessID int64     // ID бизнеса
	EmployeeID int64     // ID сотрудника
	ServiceID  int64     // ID услуги
	ClientID   int64     // ID клиента
	StartsAt   time.Time // Время начала (с явной таймзоной)
	Notes      *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	BusinessID int64
	EmployeeID int64
	ServiceID  int64
	ClientID   int64

	StartsAt        time.Time
	EndsAt          time.Time
	DurationMinutes int
	Status          string

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FromDomain конвертирует доменное бронирование в ответ use case
func FromDomain(reservation *domain.Reservation) *Response {
	return &Response{
		ID:              reservation.ID,
		BusinessID:      reservation.BusinessID,
		EmployeeID:      reservation.EmployeeID,
		ServiceID:       reservation.ServiceID,
		ClientID:        reservation.ClientID,
		StartsAt:        reservation.StartsAt,
		EndsAt:          reservation.EndsAt(),
		DurationMinutes: reservation.DurationMinutes,
		Status:          string(reservation.Status),
		ServiceName:     reservation.ServiceName,
		ServicePrice:    reservation.ServicePrice,
		Notes:           reservation.Notes,
		CreatedAt:       reservation.CreatedAt,
		UpdatedAt:       reservation.UpdatedAt,
	}
}
