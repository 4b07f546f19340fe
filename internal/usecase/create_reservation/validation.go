package create_reservation

import (
	"fmt"
	"time"

	"github.com/barberio/scheduling-service/internal/calendar"
	"github.com/barberio/scheduling-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.StartsAt.IsZero() {
		return fmt.Errorf("%w: startsAt is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validatePairing проверяет согласованность бизнеса, услуги и сотрудника
func validatePairing(business *domain.Business, service *domain.Service, employee *domain.Employee) error {
	if !service.BelongsTo(business.ID) {
		return ErrServiceNotOffered
	}

	if employee.BusinessID != business.ID {
		return ErrEmployeeNotInBusiness
	}

	if !employee.IsQualifiedFor(service.ID) {
		return ErrServiceNotQualified
	}

	return nil
}

// validateStart проверяет, что время начала не в прошлом
func validateStart(startsAt, now time.Time) error {
	if startsAt.Before(now) {
		return fmt.Errorf("%w: start is in the past", ErrInvalidStart)
	}
	return nil
}

// containedInAny проверяет, что кандидат целиком лежит хотя бы в одном окне
func containedInAny(windows []calendar.Interval, candidate calendar.Interval) bool {
	for _, window := range windows {
		if window.Contains(candidate) {
			return true
		}
	}
	return false
}

// withinBusinessHours проверяет, что кандидат целиком лежит внутри одной из
// записей рабочих часов бизнеса на соответствующий день недели.
// Отличает OutOfBusinessHours от EmployeeUnavailable: резолвер возвращает
// только пересечение, по которому причину отказа уже не восстановить.
func withinBusinessHours(business *domain.Business, candidate calendar.Interval) (bool, error) {
	loc := business.Location()
	day := candidate.Start.In(loc)

	for _, entry := range business.HoursForWeekday(day.Weekday()) {
		open, err := entry.Open.OnDate(day, loc)
		if err != nil {
			return false, err
		}
		close, err := entry.Close.OnDate(day, loc)
		if err != nil {
			return false, err
		}

		window, err := calendar.New(open, close)
		if err != nil {
			return false, err
		}

		if window.Contains(candidate) {
			return true, nil
		}
	}

	return false, nil
}
