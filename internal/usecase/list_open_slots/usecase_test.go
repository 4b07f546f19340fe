package list_open_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberio/scheduling-service/internal/calendar"
	"github.com/barberio/scheduling-service/internal/domain"
	servicestore "github.com/barberio/scheduling-service/internal/infra/storage/servicecatalog"
)

// ---- fakes ----

type fakeBusinessRepo struct {
	business *domain.Business
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, _ int64) (*domain.Business, error) {
	return f.business, nil
}

type fakeEmployeeRepo struct {
	employee *domain.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, _ int64) (*domain.Employee, error) {
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

type fakeResolver struct {
	windows []calendar.Interval
}

func (f *fakeResolver) ResolveFor(_ context.Context, _ *domain.Business, _ *domain.Employee, _ time.Time) ([]calendar.Interval, error) {
	return f.windows, nil
}

type fakeDetector struct {
	busy []calendar.Interval
}

func (f *fakeDetector) BlockingIntervals(_ context.Context, _ int64, _, _ time.Time) ([]calendar.Interval, error) {
	return f.busy, nil
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

func local(hour, minute int) time.Time {
	return time.Date(2026, 3, 9, hour, minute, 0, 0, madrid)
}

type fixture struct {
	businessRepo *fakeBusinessRepo
	employeeRepo *fakeEmployeeRepo
	serviceRepo  *fakeServiceRepo
	resolver     *fakeResolver
	detector     *fakeDetector
	now          time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	return &fixture{
		businessRepo: &fakeBusinessRepo{business: &domain.Business{ID: 1, Timezone: "Europe/Madrid"}},
		employeeRepo: &fakeEmployeeRepo{employee: &domain.Employee{ID: 7, BusinessID: 1, ServiceIDs: []int64{3}}},
		serviceRepo:  &fakeServiceRepo{service: &domain.Service{ID: 3, BusinessID: 1, Name: "Corte clásico", DurationMinutes: 30, Price: 15}},
		resolver: &fakeResolver{windows: []calendar.Interval{
			{Start: local(10, 0), End: local(14, 0)},
			{Start: local(15, 0), End: local(18, 0)},
		}},
		detector: &fakeDetector{},
		now:      local(8, 0),
	}
}

func (f *fixture) useCase() *UseCase {
	uc := NewUseCase(
		f.businessRepo,
		f.employeeRepo,
		f.serviceRepo,
		f.resolver,
		f.detector,
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
		Date:       time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}
}

// ---- tests ----

func TestExecute_EnumeratesSlotsAcrossWindows(t *testing.T) {
	f := newFixture(t)

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Окна [10:00, 14:00) и [15:00, 18:00), шаг = длительность 30 минут:
	// 8 слотов в первом окне и 6 во втором
	require.Len(t, resp.Slots, 14)
	assert.True(t, resp.Slots[0].StartsAt.Equal(local(10, 0)))
	assert.True(t, resp.Slots[0].EndsAt.Equal(local(10, 30)))
	assert.True(t, resp.Slots[7].StartsAt.Equal(local(13, 30)))
	assert.True(t, resp.Slots[8].StartsAt.Equal(local(15, 0)))
	assert.True(t, resp.Slots[13].StartsAt.Equal(local(17, 30)))
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestExecute_SubtractsBlockingReservations(t *testing.T) {
	f := newFixture(t)
	f.detector.busy = []calendar.Interval{
		{Start: local(11, 0), End: local(11, 30)},
	}

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		blocked := calendar.Interval{Start: local(11, 0), End: local(11, 30)}
		candidate := calendar.Interval{Start: slot.StartsAt, End: slot.EndsAt}
		assert.False(t, candidate.Overlaps(blocked),
			"slot [%s, %s) overlaps a reservation", slot.StartsAt, slot.EndsAt)
	}

	// 11:00 выпал, 11:30 остался
	starts := make([]time.Time, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		starts = append(starts, slot.StartsAt)
	}
	assert.NotContains(t, formatAll(starts), "11:00")
	assert.Contains(t, formatAll(starts), "11:30")
}

func TestExecute_PastSlotsAreHidden(t *testing.T) {
	f := newFixture(t)
	f.now = local(13, 45)

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Первое окно целиком в прошлом, остаются слоты со второго окна
	require.NotEmpty(t, resp.Slots)
	for _, slot := range resp.Slots {
		assert.False(t, slot.StartsAt.Before(f.now))
	}
	assert.True(t, resp.Slots[0].StartsAt.Equal(local(15, 0)))
}

func TestExecute_EmptyWindows(t *testing.T) {
	f := newFixture(t)
	f.resolver.windows = nil

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceLongerThanWindow(t *testing.T) {
	f := newFixture(t)
	f.resolver.windows = []calendar.Interval{
		{Start: local(10, 0), End: local(10, 20)},
	}

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PairingValidation(t *testing.T) {
	t.Run("service of another business", func(t *testing.T) {
		f := newFixture(t)
		f.serviceRepo.service.BusinessID = 2

		_, err := f.useCase().Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrServiceNotOffered)
	})

	t.Run("employee not qualified", func(t *testing.T) {
		f := newFixture(t)
		f.employeeRepo.employee.ServiceIDs = []int64{99}

		_, err := f.useCase().Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrServiceNotQualified)
	})

	t.Run("service missing", func(t *testing.T) {
		f := newFixture(t)
		f.serviceRepo.err = servicestore.ErrServiceNotFound

		_, err := f.useCase().Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func formatAll(times []time.Time) []string {
	result := make([]string, 0, len(times))
	for _, t := range times {
		result = append(result, t.In(madrid).Format("15:04"))
	}
	return result
}
