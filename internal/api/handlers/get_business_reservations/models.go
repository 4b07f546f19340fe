package get_business_reservations

import (
	"fmt"
	"strconv"
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
	CreatedAt       string  `json:"createdAt"`
}

// ToFilter собирает фильтр сервиса из path и query параметров.
// date трактуется как календарный день в UTC.
func ToFilter(businessID int64, employeeIDStr, statusStr, dateStr, includeInactiveStr string) (domain.BusinessReservationsFilter, error) {
	filter := domain.BusinessReservationsFilter{BusinessID: businessID}

	if employeeIDStr != "" {
		employeeID, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("parse employeeId: %w", err)
		}
		filter.EmployeeID = &employeeID
	}

	if statusStr != "" {
		status := domain.ReservationStatus(statusStr)
		switch status {
		case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
			filter.Status = &status
		default:
			return filter, fmt.Errorf("unknown status %q", statusStr)
		}
	}

	if dateStr != "" {
		day, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return filter, fmt.Errorf("parse date: %w", err)
		}
		dayEnd := day.AddDate(0, 0, 1)
		filter.From = &day
		filter.To = &dayEnd
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return filter, fmt.Errorf("parse includeInactive: %w", err)
		}
		filter.IncludeInactive = includeInactive
	}

	return filter, nil
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
			ClientID:        reservation.ClientID,
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
