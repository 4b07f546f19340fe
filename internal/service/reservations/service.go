package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/barberio/scheduling-service/internal/domain"
	reservationRepo "github.com/barberio/scheduling-service/internal/infra/storage/reservation"
)

// Service сервис для чтения и отмены бронирований
// Создание и перенос живут в отдельных use cases, так как требуют
// сериализуемой транзакции вокруг проверки доступности.
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return reservation, nil
}

// GetClientReservations получает историю бронирований клиента
func (s *Service) GetClientReservations(ctx context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	s.logger.Info("GetClientReservations: fetching reservations for client=%d", clientID)

	if clientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByClientID(ctx, clientID, status)
	if err != nil {
		s.logger.Error("GetClientReservations: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientReservations: fetched %d reservations for client=%d", len(reservations), clientID)
	return reservations, nil
}

// GetBusinessReservations получает бронирования бизнеса с фильтрацией
// Используется панелью бронирований владельца.
func (s *Service) GetBusinessReservations(ctx context.Context, filter domain.BusinessReservationsFilter) ([]*domain.Reservation, error) {
	s.logger.Info("GetBusinessReservations: fetching reservations for business=%d", filter.BusinessID)

	if filter.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessReservations: repository error for business=%d: %v", filter.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessReservations: fetched %d reservations for business=%d", len(reservations), filter.BusinessID)
	return reservations, nil
}

// Cancel отменяет бронирование
// Идемпотентна: повторная отмена уже отменённого бронирования — успешный no-op.
// Отмена завершённого бронирования — недопустимый переход статуса.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: cancelling reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if reservation.Status == domain.StatusCancelled {
		s.logger.Info("Cancel: reservation id=%d already cancelled, no-op", id)
		return nil
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, reservation.Status)
		return ErrInvalidStateTransition
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return nil
}

// Confirm подтверждает ожидающее бронирование (внешнее событие оплаты)
func (s *Service) Confirm(ctx context.Context, id int64) error {
	s.logger.Info("Confirm: confirming reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	if reservation.Status == domain.StatusConfirmed {
		return nil
	}
	if reservation.Status != domain.StatusPending {
		s.logger.Warn("Confirm: reservation id=%d cannot be confirmed, status=%s", id, reservation.Status)
		return ErrInvalidStateTransition
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, domain.StatusConfirmed); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: successfully confirmed reservation id=%d", id)
	return nil
}
