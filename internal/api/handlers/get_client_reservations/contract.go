package get_client_reservations

import (
	"context"

	"github.com/barberio/scheduling-service/internal/domain"
)

type ReservationService interface {
	GetClientReservations(ctx context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
