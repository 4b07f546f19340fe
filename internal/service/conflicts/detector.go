package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/barberio/scheduling-service/internal/calendar"
	"github.com/barberio/scheduling-service/internal/domain"
)

// Detector checks a candidate reservation interval against the existing
// pending/confirmed reservations of an employee. Pure read; the write path
// gains its atomicity from the surrounding serializable transaction, not from
// the detector itself.
type Detector struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewDetector создает новый экземпляр детектора конфликтов
func NewDetector(reservationRepo ReservationRepository, logger Logger) *Detector {
	return &Detector{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// HasConflict reports whether the candidate interval overlaps any blocking
// reservation of the employee. excludeReservationID skips one reservation,
// which lets a reschedule check a moved reservation against everything except
// itself.
//
// The repository filter is a date-bounded prefilter; the exact half-open
// overlap check happens here, so touching boundaries never count as conflicts.
func (d *Detector) HasConflict(ctx context.Context, employeeID int64, candidate calendar.Interval, excludeReservationID *int64) (bool, error) {
	// Ограничиваем выборку окном кандидата: интервал с длительностью не
	// длиннее максимальной услуги не может пересечься с кандидатом, если
	// начинается за пределами этого окна.
	from := candidate.Start.Add(-time.Duration(domain.MaxServiceDurationMinutes) * time.Minute)
	to := candidate.End

	filter := domain.EmployeeReservationsFilter{
		EmployeeID:   employeeID,
		From:         &from,
		To:           &to,
		OnlyBlocking: true,
		ExcludeID:    excludeReservationID,
	}

	reservations, err := d.reservationRepo.GetByEmployeeWithFilter(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("%w: HasConflict - get reservations: %v", ErrInternal, err)
	}

	for _, reservation := range reservations {
		if !reservation.IsBlocking() {
			continue
		}

		interval := calendar.Interval{Start: reservation.StartsAt, End: reservation.EndsAt()}
		if candidate.Overlaps(interval) {
			d.logger.Info("HasConflict: employee id=%d candidate [%s, %s) overlaps reservation id=%d",
				employeeID,
				candidate.Start.Format(time.RFC3339),
				candidate.End.Format(time.RFC3339),
				reservation.ID)
			return true, nil
		}
	}

	return false, nil
}

// BlockingIntervals returns the blocking reservation intervals of an employee
// within [from, to), ordered by start. Used by the open-slots query to subtract
// busy time from resolved availability.
func (d *Detector) BlockingIntervals(ctx context.Context, employeeID int64, from, to time.Time) ([]calendar.Interval, error) {
	filter := domain.EmployeeReservationsFilter{
		EmployeeID:   employeeID,
		From:         &from,
		To:           &to,
		OnlyBlocking: true,
	}

	reservations, err := d.reservationRepo.GetByEmployeeWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: BlockingIntervals - get reservations: %v", ErrInternal, err)
	}

	intervals := make([]calendar.Interval, 0, len(reservations))
	for _, reservation := range reservations {
		if !reservation.IsBlocking() {
			continue
		}
		intervals = append(intervals, calendar.Interval{Start: reservation.StartsAt, End: reservation.EndsAt()})
	}

	return intervals, nil
}
