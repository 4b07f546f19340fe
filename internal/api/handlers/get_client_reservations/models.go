package get_client_reservations

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
	StartsAt        string  `json:"startsAt"`
	EndsAt          string  `json:"endsAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// FromDomainList конвертирует бронирования в HTTP response
func FromDomainList(reservations []*domain.Reservation) []ReservationResponse {
	result := make([]ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		result = append(result, ReservationResponse{
			ID:              reservation.ID,
			BusinessID:      reservation.BusinessID,
			EmployeeID:      reservation.EmployeeID,
			ServiceID:       reservation.ServiceID,
			StartsAt:        reservation.StartsAt.Format(time.RFC3339),
			EndsAt:          reservation.EndsAt().Format(time.RFC3339),
			DurationMinutes: reservation.DurationMinutes,
			Status:          string(reservation.Status),
			ServiceName:     reservation.ServiceName,
			ServicePrice:    reservation.ServicePrice,
			Notes:           reservation.Notes,
			CreatedAt:       reservation.CreatedAt.Format(time.RFC3339),
		})
	}
	return result
}
