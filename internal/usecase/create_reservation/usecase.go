package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barberio/scheduling-service/internal/calendar"
	"github.com/barberio/scheduling-service/internal/domain"
	businessRepo "github.com/barberio/scheduling-service/internal/infra/storage/business"
	employeeRepo "github.com/barberio/scheduling-service/internal/infra/storage/employee"
	serviceRepo "github.com/barberio/scheduling-service/internal/infra/storage/servicecatalog"
	clientClient "github.com/barberio/scheduling-service/internal/integrations/clientservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	businessRepo    BusinessRepository
	employeeRepo    EmployeeRepository
	serviceRepo     ServiceRepository
	clientClient    ClientServiceClient
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
	serviceRepo ServiceRepository,
	clientClient ClientServiceClient,
	resolver AvailabilityResolver,
	detector ConflictDetector,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		businessRepo:    businessRepo,
		employeeRepo:    employeeRepo,
		serviceRepo:     serviceRepo,
		clientClient:    clientClient,
		resolver:        resolver,
		detector:        detector,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности, детекция конфликтов и вставка выполняются единым
// атомарным блоком в сериализуемой транзакции: из двух конкурирующих запросов
// на пересекающиеся интервалы одного сотрудника фиксируется ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: business=%d, employee=%d, service=%d, client=%d, start=%s",
		req.BusinessID, req.EmployeeID, req.ServiceID, req.ClientID, req.StartsAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateStart(req.StartsAt, now); err != nil {
		uc.logger.Warn("CreateReservation: start validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем бизнес, услугу и сотрудника
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateReservation: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateReservation: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("CreateReservation: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("CreateReservation: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// 3. Проверяем согласованность бизнеса, услуги и сотрудника
	if err := validatePairing(business, service, employee); err != nil {
		uc.logger.Warn("CreateReservation: pairing validation failed: %v", err)
		return nil, err
	}

	// 4. Проверяем существование клиента (внешний сервис, вне транзакции)
	if _, err := uc.clientClient.GetClient(ctx, req.ClientID); err != nil {
		if errors.Is(err, clientClient.ErrClientNotFound) {
			uc.logger.Warn("CreateReservation: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateReservation: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 5. Строим интервал-кандидат: длительность снимается с услуги
	// и фиксируется на бронировании
	candidate, err := calendar.FromStart(req.StartsAt, service.Duration())
	if err != nil {
		uc.logger.Warn("CreateReservation: invalid candidate interval: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStart, err)
	}

	var result *domain.Reservation

	// 6. Check-and-commit в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Кандидат должен целиком лежать в рабочих часах бизнеса
		inHours, err := withinBusinessHours(business, candidate)
		if err != nil {
			return fmt.Errorf("%w: business hours check: %v", ErrInternal, err)
		}
		if !inHours {
			uc.logger.Warn("CreateReservation: candidate outside business hours for business id=%d", business.ID)
			return ErrOutOfBusinessHours
		}

		// 6.2. Кандидат должен целиком лежать в одном из разрешённых окон
		windows, err := uc.resolver.ResolveFor(txCtx, business, employee, req.StartsAt)
		if err != nil {
			return fmt.Errorf("%w: resolve availability: %v", ErrInternal, err)
		}
		if !containedInAny(windows, candidate) {
			uc.logger.Warn("CreateReservation: employee id=%d unavailable for candidate slot", employee.ID)
			return ErrEmployeeUnavailable
		}

		// 6.3. Детекция конфликтов с существующими бронированиями
		conflict, err := uc.detector.HasConflict(txCtx, employee.ID, candidate, nil)
		if err != nil {
			return fmt.Errorf("%w: conflict detection: %v", ErrInternal, err)
		}
		if conflict {
			return ErrSlotConflict
		}

		// 6.4. Фиксируем бронирование со снимком данных услуги
		reservation := &domain.Reservation{
			BusinessID:      req.BusinessID,
			EmployeeID:      req.EmployeeID,
			ServiceID:       req.ServiceID,
			ClientID:        req.ClientID,
			StartsAt:        candidate.Start,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			Notes:           req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			return fmt.Errorf("%w: create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигрыш сериализации после повторов означает проигранную гонку за слот
		if isSerializationFailure(err) {
			uc.logger.Warn("CreateReservation: lost serialization race for employee id=%d", req.EmployeeID)
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return FromDomain(result), nil
}
