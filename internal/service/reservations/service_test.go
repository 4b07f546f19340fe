package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberio/scheduling-service/internal/domain"
	reservationstore "github.com/barberio/scheduling-service/internal/infra/storage/reservation"
)

type fakeReservationRepo struct {
	byID          map[int64]*domain.Reservation
	statusUpdates map[int64]domain.ReservationStatus
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeReservationRepo {
	byID := make(map[int64]*domain.Reservation)
	for _, r := range reservations {
		byID[r.ID] = r
	}
	return &fakeReservationRepo{
		byID:          byID,
		statusUpdates: make(map[int64]domain.ReservationStatus),
	}
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, reservationstore.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetByClientID(_ context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, r := range f.byID {
		if r.ClientID != clientID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) GetByBusinessWithFilter(_ context.Context, filter domain.BusinessReservationsFilter) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, r := range f.byID {
		if r.BusinessID != filter.BusinessID {
			continue
		}
		if !filter.IncludeInactive && r.IsFinal() {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	r, ok := f.byID[id]
	if !ok {
		return reservationstore.ErrReservationNotFound
	}
	r.Status = status
	f.statusUpdates[id] = status
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testReservation(id int64, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		BusinessID:      1,
		EmployeeID:      7,
		ServiceID:       3,
		ClientID:        100,
		StartsAt:        time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          status,
	}
}

func TestService_Cancel(t *testing.T) {
	t.Run("pending is cancelled", func(t *testing.T) {
		repo := newFakeRepo(testReservation(1, domain.StatusPending))
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, repo.statusUpdates[1])
	})

	t.Run("confirmed is cancelled", func(t *testing.T) {
		repo := newFakeRepo(testReservation(1, domain.StatusConfirmed))
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, repo.statusUpdates[1])
	})

	t.Run("cancelling a cancelled reservation is a no-op", func(t *testing.T) {
		repo := newFakeRepo(testReservation(1, domain.StatusCancelled))
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1)
		require.NoError(t, err)
		// Повторная отмена не трогает хранилище
		assert.Empty(t, repo.statusUpdates)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		repo := newFakeRepo(testReservation(1, domain.StatusCompleted))
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1)
		assert.ErrorIs(t, err, ErrInvalidStateTransition)
		assert.Empty(t, repo.statusUpdates)
	})

	t.Run("missing reservation", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 99)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestService_Confirm(t *testing.T) {
	t.Run("pending is confirmed", func(t *testing.T) {
		repo := newFakeRepo(testReservation(1, domain.StatusPending))
		svc := NewService(repo, nopLogger{})

		err := svc.Confirm(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, repo.statusUpdates[1])
	})

	t.Run("confirming a confirmed reservation is a no-op", func(t *testing.T) {
		repo := newFakeRepo(testReservation(1, domain.StatusConfirmed))
		svc := NewService(repo, nopLogger{})

		err := svc.Confirm(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, repo.statusUpdates)
	})

	t.Run("cancelled cannot be confirmed", func(t *testing.T) {
		repo := newFakeRepo(testReservation(1, domain.StatusCancelled))
		svc := NewService(repo, nopLogger{})

		err := svc.Confirm(context.Background(), 1)
		assert.ErrorIs(t, err, ErrInvalidStateTransition)
	})
}

func TestService_GetByID(t *testing.T) {
	repo := newFakeRepo(testReservation(1, domain.StatusPending))
	svc := NewService(repo, nopLogger{})

	got, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, err = svc.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_GetClientReservations(t *testing.T) {
	pending := testReservation(1, domain.StatusPending)
	cancelled := testReservation(2, domain.StatusCancelled)
	repo := newFakeRepo(pending, cancelled)
	svc := NewService(repo, nopLogger{})

	all, err := svc.GetClientReservations(context.Background(), 100, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	status := domain.StatusPending
	onlyPending, err := svc.GetClientReservations(context.Background(), 100, &status)
	require.NoError(t, err)
	require.Len(t, onlyPending, 1)
	assert.Equal(t, int64(1), onlyPending[0].ID)

	_, err = svc.GetClientReservations(context.Background(), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetBusinessReservations(t *testing.T) {
	active := testReservation(1, domain.StatusConfirmed)
	finished := testReservation(2, domain.StatusCompleted)
	repo := newFakeRepo(active, finished)
	svc := NewService(repo, nopLogger{})

	visible, err := svc.GetBusinessReservations(context.Background(), domain.BusinessReservationsFilter{BusinessID: 1})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, int64(1), visible[0].ID)

	all, err := svc.GetBusinessReservations(context.Background(), domain.BusinessReservationsFilter{
		BusinessID:      1,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.GetBusinessReservations(context.Background(), domain.BusinessReservationsFilter{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
