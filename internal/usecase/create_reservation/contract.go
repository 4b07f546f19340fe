package create_reservation

import (
	"context"
	"time"

	"github.com/barberio/scheduling-service/internal/calendar"
	"github.com/barberio/scheduling-service/internal/domain"
	"github.com/barberio/scheduling-service/internal/integrations/clientservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ClientServiceClient интерфейс клиента для ClientService
type ClientServiceClient interface {
	GetClient(ctx context.Context, clientID int64) (*clientservice.ClientProfile, error)
}

// AvailabilityResolver интерфейс резолвера доступности
type AvailabilityResolver interface {
	ResolveFor(ctx context.Context, business *domain.Business, employee *domain.Employee, date time.Time) ([]calendar.Interval, error)
}

// ConflictDetector интерфейс детектора конфликтов
type ConflictDetector interface {
	HasConflict(ctx context.Context, employeeID int64, candidate calendar.Interval, excludeReservationID *int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
