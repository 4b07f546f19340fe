package reschedule_reservation

import (
	"fmt"
	"time"

	rescheduleReservation "github.com/barberio/scheduling-service/internal/usecase/reschedule_reservation"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	NewStartsAt string `json:"newStartsAt"` // RFC3339, с явной таймзоной
}

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
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(reservationID int64) (*rescheduleReservation.Request, error) {
	newStart, err := time.Parse(time.RFC3339, r.NewStartsAt)
	if err != nil {
		return nil, fmt.Errorf("parse newStartsAt: %w", err)
	}

	return &rescheduleReservation.Request{
		ReservationID: reservationID,
		NewStart:      newStart,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		BusinessID:      resp.BusinessID,
		EmployeeID:      resp.EmployeeID,
		ServiceID:       resp.ServiceID,
		ClientID:        resp.ClientID,
		StartsAt:        resp.StartsAt.Format(time.RFC3339),
		EndsAt:          resp.EndsAt.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
