package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barberio/scheduling-service/internal/calendar"
	"github.com/barberio/scheduling-service/internal/domain"
	businessRepo "github.com/barberio/scheduling-service/internal/infra/storage/business"
	employeeRepo "github.com/barberio/scheduling-service/internal/infra/storage/employee"
	"github.com/barberio/scheduling-service/pkg/types"
)

// Resolver computes the bookable windows for an employee on a date by
// intersecting business operating hours with the employee's own availability.
type Resolver struct {
	businessRepo BusinessRepository
	employeeRepo EmployeeRepository
	logger       Logger
}

// NewResolver создает новый экземпляр резолвера доступности
func NewResolver(
	businessRepo BusinessRepository,
	employeeRepo EmployeeRepository,
	logger Logger,
) *Resolver {
	return &Resolver{
		businessRepo: businessRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// Resolve returns the merged, ordered bookable windows for the employee on the
// given date. The date is interpreted in the business timezone. A closed day
// (no operating hours, no employee windows, or a blackout) yields an empty
// slice, not an error. Same inputs always produce the same ordered result.
func (r *Resolver) Resolve(ctx context.Context, employeeID int64, date time.Time) ([]calendar.Interval, error) {
	employee, err := r.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("%w: Resolve - get employee: %v", ErrInternal, err)
	}

	business, err := r.businessRepo.GetByID(ctx, employee.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: Resolve - get business: %v", ErrInternal, err)
	}

	// Календарный день запроса берётся как есть и закрепляется в таймзоне
	// бизнеса: "2026-03-14" значит 14 марта по часам барбершопа, из какой бы
	// таймзоны ни пришёл запрос
	loc := business.Location()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	return r.ResolveFor(ctx, business, employee, day)
}

// ResolveFor is Resolve with the business and employee already loaded.
// Used by the scheduler, which has fetched both for validation anyway.
func (r *Resolver) ResolveFor(ctx context.Context, business *domain.Business, employee *domain.Employee, date time.Time) ([]calendar.Interval, error) {
	loc := business.Location()
	day := midnight(date, loc)
	weekday := day.Weekday()

	hours, err := hoursToIntervals(business.HoursForWeekday(weekday), day, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveFor - operating hours: %v", ErrInternal, err)
	}
	if len(hours) == 0 {
		r.logger.Info("Resolve: business id=%d closed on %s", business.ID, day.Format(domain.DateFormat))
		return []calendar.Interval{}, nil
	}

	rules, err := r.employeeRepo.GetAvailabilityRules(ctx, employee.ID, weekday, day)
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveFor - availability rules: %v", ErrInternal, err)
	}

	windows, err := ruleWindows(rules, day, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveFor - availability windows: %v", ErrInternal, err)
	}
	if len(windows) == 0 {
		r.logger.Info("Resolve: employee id=%d unavailable on %s", employee.ID, day.Format(domain.DateFormat))
		return []calendar.Interval{}, nil
	}

	// Попарное пересечение (рабочие часы × окна доступности),
	// пустые пересечения отбрасываются
	intersections := make([]calendar.Interval, 0)
	for _, h := range hours {
		for _, w := range windows {
			if overlap, ok := calendar.Intersect(h, w); ok {
				intersections = append(intersections, overlap)
			}
		}
	}

	return calendar.Merge(intersections), nil
}

// ruleWindows applies override-wins-over-recurring precedence: the presence of
// any override row for the date discards every recurring row, and a blackout
// marker yields an empty window set.
func ruleWindows(rules []*domain.AvailabilityRule, day time.Time, loc *time.Location) ([]calendar.Interval, error) {
	overrides := make([]*domain.AvailabilityRule, 0)
	recurring := make([]*domain.AvailabilityRule, 0)

	for _, rule := range rules {
		switch rule.Kind {
		case domain.RuleOverride:
			overrides = append(overrides, rule)
		case domain.RuleRecurring:
			recurring = append(recurring, rule)
		}
	}

	effective := recurring
	if len(overrides) > 0 {
		effective = overrides
	}

	windows := make([]calendar.Interval, 0, len(effective))
	for _, rule := range effective {
		if rule.IsBlackout() {
			// Блэкаут замещает все окна на дату целиком
			return []calendar.Interval{}, nil
		}
		window, err := windowOnDate(rule.Start, rule.End, day, loc)
		if err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}

	return windows, nil
}

func hoursToIntervals(entries []domain.OperatingHoursEntry, day time.Time, loc *time.Location) ([]calendar.Interval, error) {
	intervals := make([]calendar.Interval, 0, len(entries))
	for _, entry := range entries {
		interval, err := windowOnDate(entry.Open, entry.Close, day, loc)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}
	return intervals, nil
}

func windowOnDate(open, close types.TimeString, day time.Time, loc *time.Location) (calendar.Interval, error) {
	start, err := open.OnDate(day, loc)
	if err != nil {
		return calendar.Interval{}, err
	}
	end, err := close.OnDate(day, loc)
	if err != nil {
		return calendar.Interval{}, err
	}
	return calendar.New(start, end)
}

func midnight(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
