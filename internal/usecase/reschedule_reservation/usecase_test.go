package reschedule_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberio/scheduling-service/internal/calendar"
	"github.com/barberio/scheduling-service/internal/domain"
	reservationstore "github.com/barberio/scheduling-service/internal/infra/storage/reservation"
	conflictsService "github.com/barberio/scheduling-service/internal/service/conflicts"
	"github.com/barberio/scheduling-service/pkg/types"
)

// ---- fakes ----

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
	startUpdates map[int64]time.Time
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeReservationRepo {
	byID := make(map[int64]*domain.Reservation)
	for _, r := range reservations {
		byID[r.ID] = r
	}
	return &fakeReservationRepo{
		reservations: byID,
		startUpdates: make(map[int64]time.Time),
	}
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationstore.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReservationRepo) UpdateStart(_ context.Context, id int64, startsAt time.Time) error {
	r, ok := f.reservations[id]
	if !ok {
		return reservationstore.ErrReservationNotFound
	}
	r.StartsAt = startsAt
	f.startUpdates[id] = startsAt
	return nil
}

func (f *fakeReservationRepo) GetByEmployeeWithFilter(_ context.Context, filter domain.EmployeeReservationsFilter) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, r := range f.reservations {
		if r.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.ExcludeID != nil && r.ID == *filter.ExcludeID {
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

type fakeResolver struct {
	windows []calendar.Interval
}

func (f *fakeResolver) ResolveFor(_ context.Context, _ *domain.Business, _ *domain.Employee, _ time.Time) ([]calendar.Interval, error) {
	return f.windows, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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
	repo     *fakeReservationRepo
	business *fakeBusinessRepo
	employee *fakeEmployeeRepo
	resolver *fakeResolver
	now      time.Time
}

func newFixture(t *testing.T, reservations ...*domain.Reservation) *fixture {
	t.Helper()

	business := &domain.Business{
		ID:       1,
		Timezone: "Europe/Madrid",
		OperatingHours: []domain.OperatingHoursEntry{
			{BusinessID: 1, Weekday: time.Monday, Open: mustTS(t, "10:00"), Close: mustTS(t, "20:00")},
		},
	}
	employee := &domain.Employee{ID: 7, BusinessID: 1, ServiceIDs: []int64{3}}

	return &fixture{
		repo:     newFakeRepo(reservations...),
		business: &fakeBusinessRepo{business: business},
		employee: &fakeEmployeeRepo{employee: employee},
		resolver: &fakeResolver{windows: []calendar.Interval{{
			Start: time.Date(2026, 3, 9, 10, 0, 0, 0, madrid),
			End:   time.Date(2026, 3, 9, 20, 0, 0, 0, madrid),
		}}},
		now: time.Date(2026, 3, 9, 8, 0, 0, 0, madrid),
	}
}

func (f *fixture) useCase() *UseCase {
	uc := NewUseCase(
		f.repo,
		f.business,
		f.employee,
		f.resolver,
		conflictsService.NewDetector(f.repo, nopLogger{}),
		passthroughTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: f.now}
	return uc
}

func reservationAt(id int64, start time.Time, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		BusinessID:      1,
		EmployeeID:      7,
		ServiceID:       3,
		ClientID:        100,
		StartsAt:        start,
		DurationMinutes: 30,
		Status:          status,
		ServiceName:     "Corte clásico",
		ServicePrice:    15,
	}
}

// ---- tests ----

func TestExecute_MovesReservation(t *testing.T) {
	original := reservationAt(1, time.Date(2026, 3, 9, 11, 0, 0, 0, madrid), domain.StatusConfirmed)
	f := newFixture(t, original)

	newStart := time.Date(2026, 3, 9, 16, 0, 0, 0, madrid)
	resp, err := f.useCase().Execute(context.Background(), &Request{ReservationID: 1, NewStart: newStart})
	require.NoError(t, err)

	assert.True(t, resp.StartsAt.Equal(newStart))
	assert.True(t, resp.EndsAt.Equal(newStart.Add(30*time.Minute)))
	// Статус при переносе сохраняется
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.True(t, f.repo.startUpdates[1].Equal(newStart))
}

func TestExecute_ReservationNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.useCase().Execute(context.Background(), &Request{
		ReservationID: 99,
		NewStart:      time.Date(2026, 3, 9, 16, 0, 0, 0, madrid),
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_FinalStatusesAreImmutable(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusCancelled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			original := reservationAt(1, time.Date(2026, 3, 9, 11, 0, 0, 0, madrid), status)
			f := newFixture(t, original)

			_, err := f.useCase().Execute(context.Background(), &Request{
				ReservationID: 1,
				NewStart:      time.Date(2026, 3, 9, 16, 0, 0, 0, madrid),
			})
			assert.ErrorIs(t, err, ErrInvalidStateTransition)
			assert.Empty(t, f.repo.startUpdates)
		})
	}
}

// Перенос внутри собственного старого интервала не конфликтует сам с собой
func TestExecute_SelfExclusionAllowsOverlapWithOwnSlot(t *testing.T) {
	original := reservationAt(1, time.Date(2026, 3, 9, 11, 0, 0, 0, madrid), domain.StatusPending)
	f := newFixture(t, original)

	// Сдвиг на 15 минут: новый интервал пересекается со старым
	newStart := time.Date(2026, 3, 9, 11, 15, 0, 0, madrid)
	resp, err := f.useCase().Execute(context.Background(), &Request{ReservationID: 1, NewStart: newStart})
	require.NoError(t, err)
	assert.True(t, resp.StartsAt.Equal(newStart))
}

func TestExecute_ConflictWithAnotherReservation(t *testing.T) {
	original := reservationAt(1, time.Date(2026, 3, 9, 11, 0, 0, 0, madrid), domain.StatusPending)
	other := reservationAt(2, time.Date(2026, 3, 9, 16, 0, 0, 0, madrid), domain.StatusConfirmed)
	f := newFixture(t, original, other)

	_, err := f.useCase().Execute(context.Background(), &Request{
		ReservationID: 1,
		NewStart:      time.Date(2026, 3, 9, 16, 15, 0, 0, madrid),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
	// Исходное бронирование не тронуто
	assert.Empty(t, f.repo.startUpdates)
	assert.True(t, f.repo.reservations[1].StartsAt.Equal(original.StartsAt))
}

func TestExecute_OutOfBusinessHoursLeavesRowUntouched(t *testing.T) {
	original := reservationAt(1, time.Date(2026, 3, 9, 11, 0, 0, 0, madrid), domain.StatusPending)
	f := newFixture(t, original)

	_, err := f.useCase().Execute(context.Background(), &Request{
		ReservationID: 1,
		NewStart:      time.Date(2026, 3, 9, 21, 0, 0, 0, madrid),
	})
	assert.ErrorIs(t, err, ErrOutOfBusinessHours)
	assert.Empty(t, f.repo.startUpdates)
}

func TestExecute_EmployeeUnavailableAtNewSlot(t *testing.T) {
	original := reservationAt(1, time.Date(2026, 3, 9, 11, 0, 0, 0, madrid), domain.StatusPending)
	f := newFixture(t, original)
	f.resolver.windows = []calendar.Interval{{
		Start: time.Date(2026, 3, 9, 10, 0, 0, 0, madrid),
		End:   time.Date(2026, 3, 9, 14, 0, 0, 0, madrid),
	}}

	_, err := f.useCase().Execute(context.Background(), &Request{
		ReservationID: 1,
		NewStart:      time.Date(2026, 3, 9, 15, 0, 0, 0, madrid),
	})
	assert.ErrorIs(t, err, ErrEmployeeUnavailable)
	assert.Empty(t, f.repo.startUpdates)
}

func TestExecute_NewStartInPast(t *testing.T) {
	original := reservationAt(1, time.Date(2026, 3, 9, 11, 0, 0, 0, madrid), domain.StatusPending)
	f := newFixture(t, original)

	_, err := f.useCase().Execute(context.Background(), &Request{
		ReservationID: 1,
		NewStart:      f.now.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidStart)
}
