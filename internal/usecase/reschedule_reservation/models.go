package reschedule_reservation

import (
	"time"

	"github.com/barberio/scheduling-service/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	ReservationID int64     // ID переносимого бронирования
	NewStart      time.Time // Новое время начала (с явной таймзоной)
}

// Response модель ответа с перенесённым бронированием
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
