package get_employee_availability

import (
	"time"

	"github.com/barberio/scheduling-service/internal/calendar"
)

// WindowResponse одно окно доступности
type WindowResponse struct {
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	EmployeeID int64            `json:"employeeId"`
	Date       string           `json:"date"`
	Windows    []WindowResponse `json:"windows"`
}

// FromIntervals конвертирует окна доступности в HTTP response
func FromIntervals(employeeID int64, date string, windows []calendar.Interval) *AvailabilityResponse {
	result := make([]WindowResponse, 0, len(windows))
	for _, window := range windows {
		result = append(result, WindowResponse{
			StartsAt: window.Start.Format(time.RFC3339),
			EndsAt:   window.End.Format(time.RFC3339),
		})
	}

	return &AvailabilityResponse{
		EmployeeID: employeeID,
		Date:       date,
		Windows:    result,
	}
}
