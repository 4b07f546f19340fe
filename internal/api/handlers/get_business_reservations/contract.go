package get_business_reservations

import (
	"context"

	"github.com/barberio/scheduling-service/internal/domain"
)

type ReservationService interface {
	GetBusinessReservations(ctx context.Context, filter domain.BusinessReservationsFilter) ([]*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
