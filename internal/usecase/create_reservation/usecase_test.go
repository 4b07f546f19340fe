package create_reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberio/scheduling-service/internal/calendar"
	"github.com/barberio/scheduling-service/internal/domain"
	businessstore "github.com/barberio/scheduling-service/internal/infra/storage/business"
	employeestore "github.com/barberio/scheduling-service/internal/infra/storage/employee"
	"github.com/barberio/scheduling-service/internal/integrations/clientservice"
	conflictsService "github.com/barberio/scheduling-service/internal/service/conflicts"
	"github.com/barberio/scheduling-service/pkg/ptr"
	"github.com/barberio/scheduling-service/pkg/types"
)

// ---- fakes ----

type fakeReservationRepo struct {
	mu      sync.Mutex
	nextID  int64
	created []*domain.Reservation
	err     error
}

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	f.nextID++
	stored := *r
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.created = append(f.created, &stored)
	return &stored, nil
}

func (f *fakeReservationRepo) GetByEmployeeWithFilter(_ context.Context, filter domain.EmployeeReservationsFilter) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*domain.Reservation, 0)
	for _, r := range f.created {
		if r.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.OnlyBlocking && !r.IsBlocking() {
			continue
		}
		if filter.From != nil && !r.EndsAt().After(*filter.From) {
			continue
		}
		if filter.To != nil && !r.StartsAt.Before(*filter.To) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

type fakeBusinessRepo struct {
	business *domain.Business
	err      error
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, _ int64) (*domain.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.business, nil
}

type fakeEmployeeRepo struct {
	employee *domain.Employee
	err      error
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, _ int64) (*domain.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.employee, nil
}

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

type fakeClientClient struct {
	err error
}

func (f *fakeClientClient) GetClient(_ context.Context, clientID int64) (*clientservice.ClientProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &clientservice.ClientProfile{ID: clientID, IsActive: true}, nil
}

type fakeResolver struct {
	windows []calendar.Interval
}

func (f *fakeResolver) ResolveFor(_ context.Context, _ *domain.Business, _ *domain.Employee, _ time.Time) ([]calendar.Interval, error) {
	return f.windows, nil
}

type fakeDetector struct {
	conflict bool
}

func (f *fakeDetector) HasConflict(_ context.Context, _ int64, _ calendar.Interval, _ *int64) (bool, error) {
	return f.conflict, nil
}

// serializingTxManager выполняет транзакции строго по одной, как SERIALIZABLE
// с блокировкой префильтра
type serializingTxManager struct {
	mu sync.Mutex
}

func (m *serializingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ---- fixtures ----

var madrid = mustLoadLocation("Europe/Madrid")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func mustTS(t *testing.T, s string) types.TimeString {
	t.Helper()
	parsed, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return parsed
}

type fixture struct {
	reservationRepo *fakeReservationRepo
	businessRepo    *fakeBusinessRepo
	employeeRepo    *fakeEmployeeRepo
	serviceRepo     *fakeServiceRepo
	clientClient    *fakeClientClient
	resolver        *fakeResolver
	detector        *fakeDetector
	now             time.Time
}

// Понедельник, часы 10:00-20:00 Madrid, услуга 30 минут
func newFixture(t *testing.T) *fixture {
	t.Helper()

	business := &domain.Business{
		ID:       1,
		Timezone: "Europe/Madrid",
		OperatingHours: []domain.OperatingHoursEntry{
			{BusinessID: 1, Weekday: time.Monday, Open: mustTS(t, "10:00"), Close: mustTS(t, "20:00")},
		},
	}
	employee := &domain.Employee{ID: 7, BusinessID: 1, ServiceIDs: []int64{3}}
	service := &domain.Service{ID: 3, BusinessID: 1, Name: "Corte clásico", DurationMinutes: 30, Price: 15}

	dayStart := time.Date(2026, 3, 9, 10, 0, 0, 0, madrid)
	dayEnd := time.Date(2026, 3, 9, 20, 0, 0, 0, madrid)

	return &fixture{
		reservationRepo: &fakeReservationRepo{},
		businessRepo:    &fakeBusinessRepo{business: business},
		employeeRepo:    &fakeEmployeeRepo{employee: employee},
		serviceRepo:     &fakeServiceRepo{service: service},
		clientClient:    &fakeClientClient{},
		resolver:        &fakeResolver{windows: []calendar.Interval{{Start: dayStart, End: dayEnd}}},
		detector:        &fakeDetector{},
		now:             time.Date(2026, 3, 9, 8, 0, 0, 0, madrid),
	}
}

func (f *fixture) useCase() *UseCase {
	uc := NewUseCase(
		f.reservationRepo,
		f.businessRepo,
		f.employeeRepo,
		f.serviceRepo,
		f.clientClient,
		f.resolver,
		f.detector,
		&serializingTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: f.now}
	return uc
}

func validRequest() *Request {
	return &Request{
		BusinessID: 1,
		EmployeeID: 7,
		ServiceID:  3,
		ClientID:   100,
		StartsAt:   time.Date(2026, 3, 9, 11, 0, 0, 0, madrid),
	}
}

// ---- tests ----

func TestExecute_Success_SnapshotsServiceData(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Notes = ptr.Ptr("окно у зеркала")

	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, "Corte clásico", resp.ServiceName)
	assert.Equal(t, float64(15), resp.ServicePrice)
	assert.True(t, resp.EndsAt.Equal(req.StartsAt.Add(30*time.Minute)))
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "окно у зеркала", *resp.Notes)

	require.Len(t, f.reservationRepo.created, 1)
	assert.Equal(t, domain.StatusPending, f.reservationRepo.created[0].Status)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero business", func(r *Request) { r.BusinessID = 0 }},
		{"negative employee", func(r *Request) { r.EmployeeID = -1 }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"zero client", func(r *Request) { r.ClientID = 0 }},
		{"zero start", func(r *Request) { r.StartsAt = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(req)

			_, err := f.useCase().Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.reservationRepo.created)
		})
	}
}

func TestExecute_StartInPast(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.StartsAt = f.now.Add(-time.Hour)

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidStart)
}

func TestExecute_NotFoundPaths(t *testing.T) {
	t.Run("business", func(t *testing.T) {
		f := newFixture(t)
		f.businessRepo.err = businessstore.ErrBusinessNotFound

		_, err := f.useCase().Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrBusinessNotFound)
	})

	t.Run("employee", func(t *testing.T) {
		f := newFixture(t)
		f.employeeRepo.err = employeestore.ErrEmployeeNotFound

		_, err := f.useCase().Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})

	t.Run("client", func(t *testing.T) {
		f := newFixture(t)
		f.clientClient.err = clientservice.ErrClientNotFound

		_, err := f.useCase().Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestExecute_PairingValidation(t *testing.T) {
	t.Run("service belongs to another business", func(t *testing.T) {
		f := newFixture(t)
		f.serviceRepo.service.BusinessID = 2

		_, err := f.useCase().Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrServiceNotOffered)
	})

	t.Run("employee belongs to another business", func(t *testing.T) {
		f := newFixture(t)
		f.employeeRepo.employee.BusinessID = 2

		_, err := f.useCase().Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrEmployeeNotInBusiness)
	})

	t.Run("employee not qualified", func(t *testing.T) {
		f := newFixture(t)
		f.employeeRepo.employee.ServiceIDs = []int64{99}

		_, err := f.useCase().Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrServiceNotQualified)
	})
}

func TestExecute_OutOfBusinessHours(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	// 19:45 + 30 минут выходит за закрытие в 20:00
	req.StartsAt = time.Date(2026, 3, 9, 19, 45, 0, 0, madrid)

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutOfBusinessHours)
	assert.Empty(t, f.reservationRepo.created)
}

func TestExecute_EmployeeUnavailable(t *testing.T) {
	f := newFixture(t)
	// Бизнес открыт, но окна сотрудника не покрывают слот
	f.resolver.windows = []calendar.Interval{{
		Start: time.Date(2026, 3, 9, 15, 0, 0, 0, madrid),
		End:   time.Date(2026, 3, 9, 20, 0, 0, 0, madrid),
	}}

	_, err := f.useCase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrEmployeeUnavailable)
	assert.Empty(t, f.reservationRepo.created)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture(t)
	f.detector.conflict = true

	_, err := f.useCase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, f.reservationRepo.created)
}

// Два конкурирующих запроса на пересекающиеся слоты одного сотрудника:
// фиксируется ровно один, второй получает конфликт.
func TestExecute_ConcurrentOverlappingCreates_ExactlyOneWins(t *testing.T) {
	f := newFixture(t)

	// Реальный детектор поверх общего хранилища видит бронирования,
	// созданные конкурентом внутри его "транзакции"
	detector := conflictsService.NewDetector(f.reservationRepo, nopLogger{})

	uc := NewUseCase(
		f.reservationRepo,
		f.businessRepo,
		f.employeeRepo,
		f.serviceRepo,
		f.clientClient,
		f.resolver,
		detector,
		&serializingTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: f.now}

	first := validRequest()
	second := validRequest()
	second.ClientID = 101
	second.StartsAt = first.StartsAt.Add(15 * time.Minute) // пересекается с первым

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = uc.Execute(context.Background(), first)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = uc.Execute(context.Background(), second)
	}()
	wg.Wait()

	successes := 0
	conflicts := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, ErrSlotConflict)
			conflicts++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, f.reservationRepo.created, 1)
}
