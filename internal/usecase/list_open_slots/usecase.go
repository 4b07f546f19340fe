package list_open_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barberio/scheduling-service/internal/calendar"
	businessRepo "github.com/barberio/scheduling-service/internal/infra/storage/business"
	employeeRepo "github.com/barberio/scheduling-service/internal/infra/storage/employee"
	serviceRepo "github.com/barberio/scheduling-service/internal/infra/storage/servicecatalog"
)

// UseCase use case для перечисления свободных слотов сотрудника на день.
// Чтение без транзакции: список слотов — подсказка клиенту, право на слот
// всё равно решается при создании бронирования.
type UseCase struct {
	businessRepo BusinessRepository
	employeeRepo EmployeeRepository
	serviceRepo  ServiceRepository
	resolver     AvailabilityResolver
	detector     ConflictDetector
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	businessRepo BusinessRepository,
	employeeRepo EmployeeRepository,
	serviceRepo ServiceRepository,
	resolver AvailabilityResolver,
	detector ConflictDetector,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		employeeRepo: employeeRepo,
		serviceRepo:  serviceRepo,
		resolver:     resolver,
		detector:     detector,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case перечисления свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListOpenSlots: business=%d, employee=%d, service=%d, date=%s",
		req.BusinessID, req.EmployeeID, req.ServiceID, req.Date.Format("2006-01-02"))

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 1. Загружаем участников и проверяем их согласованность
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("ListOpenSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: get business: %v", ErrInternal, err)
	}

	employee, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("ListOpenSlots: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("%w: get employee: %v", ErrInternal, err)
	}

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("ListOpenSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: get service: %v", ErrInternal, err)
	}

	if err := validatePairing(business, service, employee); err != nil {
		return nil, err
	}

	// Календарный день запроса закрепляется в таймзоне бизнеса
	loc := business.Location()
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	// 2. Окна доступности сотрудника на запрошенный день
	windows, err := uc.resolver.ResolveFor(ctx, business, employee, dayStart)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve availability: %v", ErrInternal, err)
	}

	duration := service.Duration()

	if len(windows) == 0 {
		return &Response{
			EmployeeID:      employee.ID,
			ServiceID:       service.ID,
			DurationMinutes: service.DurationMinutes,
			Slots:           []Slot{},
		}, nil
	}

	// 3. Вычитаем блокирующие бронирования за день

	busy, err := uc.detector.BlockingIntervals(ctx, employee.ID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: load blocking reservations: %v", ErrInternal, err)
	}

	free := calendar.Subtract(windows, busy)

	// 4. Нарезаем свободное время на слоты длительности услуги.
	// Шаг равен длительности: слоты не перекрываются.
	slots := calendar.SlotsIn(free, duration, duration)

	// Слоты в прошлом не предлагаем
	now := uc.timeProvider.Now()
	upcoming := make([]calendar.Interval, 0, len(slots))
	for _, slot := range slots {
		if !slot.Start.Before(now) {
			upcoming = append(upcoming, slot)
		}
	}

	uc.logger.Info("ListOpenSlots: found %d open slots for employee id=%d", len(upcoming), employee.ID)

	return &Response{
		EmployeeID:      employee.ID,
		ServiceID:       service.ID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slotsFromIntervals(upcoming),
	}, nil
}
