package reschedule_reservation

import (
	"github.com/barberio/scheduling-service/internal/calendar"
	"github.com/barberio/scheduling-service/internal/domain"
)

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
// записей рабочих часов бизнеса на соответствующий день недели
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
