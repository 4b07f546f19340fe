package reschedule_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barberio/scheduling-service/internal/calendar"
	"github.com/barberio/scheduling-service/internal/domain"
	businessRepo "github.com/barberio/scheduling-service/internal/infra/storage/business"
	employeeRepo "github.com/barberio/scheduling-service/internal/infra/storage/employee"
	reservationRepo "github.com/barberio/scheduling-service/internal/infra/storage/reservation"
)

// UseCase use case для переноса бронирования
// Перенос повторяет валидацию создания с excludeReservationID, указывающим на
// само бронирование: переносимый интервал не конфликтует сам с собой.
// Статус бронирования при переносе сохраняется.
type UseCase struct {
	reservationRepo ReservationRepository
	businessRepo    BusinessRepository
	employeeRepo    EmployeeRepository
	resolver        AvailabilityResolver
	detector        ConflictDetector
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	businessRepo BusinessRepository,
	employeeRepo EmployeeRepository,
	resolver AvailabilityResolver,
	detector ConflictDetector,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		businessRepo:    businessRepo,
		employeeRepo:    employeeRepo,
		resolver:        resolver,
		detector:        detector,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса бронирования
// Вся последовательность проверка-и-запись идёт в сериализуемой транзакции;
// при любой ошибке транзакция откатывается и исходное бронирование остаётся
// нетронутым.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleReservation: reservation=%d, newStart=%s",
		req.ReservationID, req.NewStart.Format(time.RFC3339))

	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.NewStart.IsZero() {
		return nil, fmt.Errorf("%w: newStart is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	if req.NewStart.Before(now) {
		uc.logger.Warn("RescheduleReservation: new start is in the past")
		return nil, fmt.Errorf("%w: start is in the past", ErrInvalidStart)
	}

	var result *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Загружаем бронирование с блокировкой строки
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("RescheduleReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: get reservation: %v", ErrInternal, err)
		}

		// 2. Терминальные статусы неизменяемы
		if !reservation.CanBeRescheduled() {
			uc.logger.Warn("RescheduleReservation: reservation id=%d in final status=%s",
				reservation.ID, reservation.Status)
			return ErrInvalidStateTransition
		}

		business, err := uc.businessRepo.GetByID(txCtx, reservation.BusinessID)
		if err != nil {
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				return fmt.Errorf("%w: business id=%d vanished", ErrInternal, reservation.BusinessID)
			}
			return fmt.Errorf("%w: get business: %v", ErrInternal, err)
		}

		employee, err := uc.employeeRepo.GetByID(txCtx, reservation.EmployeeID)
		if err != nil {
			if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
				return fmt.Errorf("%w: employee id=%d vanished", ErrInternal, reservation.EmployeeID)
			}
			return fmt.Errorf("%w: get employee: %v", ErrInternal, err)
		}

		// 3. Кандидат строится на снимке длительности, а не на текущей услуге
		candidate, err := calendar.FromStart(req.NewStart, time.Duration(reservation.DurationMinutes)*time.Minute)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidStart, err)
		}

		// 4. Та же валидация, что и при создании
		inHours, err := withinBusinessHours(business, candidate)
		if err != nil {
			return fmt.Errorf("%w: business hours check: %v", ErrInternal, err)
		}
		if !inHours {
			uc.logger.Warn("RescheduleReservation: candidate outside business hours for reservation id=%d", reservation.ID)
			return ErrOutOfBusinessHours
		}

		windows, err := uc.resolver.ResolveFor(txCtx, business, employee, req.NewStart)
		if err != nil {
			return fmt.Errorf("%w: resolve availability: %v", ErrInternal, err)
		}
		if !containedInAny(windows, candidate) {
			uc.logger.Warn("RescheduleReservation: employee id=%d unavailable for new slot", employee.ID)
			return ErrEmployeeUnavailable
		}

		// 5. Конфликты проверяются против всех бронирований, кроме переносимого
		conflict, err := uc.detector.HasConflict(txCtx, employee.ID, candidate, &reservation.ID)
		if err != nil {
			return fmt.Errorf("%w: conflict detection: %v", ErrInternal, err)
		}
		if conflict {
			return ErrSlotConflict
		}

		// 6. Атомарно обновляем время начала
		if err := uc.reservationRepo.UpdateStart(txCtx, reservation.ID, candidate.Start); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: update start: %v", ErrInternal, err)
		}

		reservation.StartsAt = candidate.Start
		result = reservation
		return nil
	})

	if err != nil {
		if isSerializationFailure(err) {
			uc.logger.Warn("RescheduleReservation: lost serialization race for reservation id=%d", req.ReservationID)
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("RescheduleReservation: successfully rescheduled reservation id=%d to %s",
		result.ID, result.StartsAt.Format(time.RFC3339))

	return FromDomain(result), nil
}
