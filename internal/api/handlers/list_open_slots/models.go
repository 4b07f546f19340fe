package list_open_slots

import (
	"time"

	listOpenSlots "github.com/barberio/scheduling-service/internal/usecase/list_open_slots"
)

// SlotResponse один свободный слот
type SlotResponse struct {
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
}

// OpenSlotsResponse HTTP response model
type OpenSlotsResponse struct {
	EmployeeID      int64          `json:"employeeId"`
	ServiceID       int64          `json:"serviceId"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listOpenSlots.Response) *OpenSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartsAt: slot.StartsAt.Format(time.RFC3339),
			EndsAt:   slot.EndsAt.Format(time.RFC3339),
		})
	}

	return &OpenSlotsResponse{
		EmployeeID:      resp.EmployeeID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
