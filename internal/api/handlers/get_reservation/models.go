package get_reservation

import (
	"time"

	"github.com/barberio/scheduling-service/internal/domain"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	BusinessID      int64   `json:"businessId"`
	EmployeeID      int64   `json:"employeeId"`
	ServiceID       int64   `json:"serviceId"`
	ClientID        int64   `json:"clientId"`
	StartsAt        string  `json:"startsAt"`
	EndsAt          string  `json:"endsAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	CancelledAt     *string `json:"cancelledAt,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// FromDomain конвертирует доменное бронирование в HTTP response
func FromDomain(reservation *domain.Reservation) *ReservationResponse {
	var cancelledAt *string
	if reservation.CancelledAt != nil {
		formatted := reservation.CancelledAt.Format(time.RFC3339)
		cancelledAt = &formatted
	}

	return &ReservationResponse{
		ID:              reservation.ID,
		BusinessID:      reservation.BusinessID,
		EmployeeID:      reservation.EmployeeID,
		ServiceID:       reservation.ServiceID,
		ClientID:        reservation.ClientID,
		StartsAt:        reservation.StartsAt.Format(time.RFC3339),
		EndsAt:          reservation.EndsAt().Format(time.RFC3339),
		DurationMinutes: reservation.DurationMinutes,
		Status:          string(reservation.Status),
		ServiceName:     reservation.ServiceName,
		ServicePrice:    reservation.ServicePrice,
		Notes:           reservation.Notes,
		CancelledAt:     cancelledAt,
		CreatedAt:       reservation.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       reservation.UpdatedAt.Format(time.RFC3339),
	}
}
