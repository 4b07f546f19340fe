package get_employee_availability

import (
	"context"
	"time"

	"github.com/barberio/scheduling-service/internal/calendar"
)

type AvailabilityResolver interface {
	Resolve(ctx context.Context, employeeID int64, date time.Time) ([]calendar.Interval, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
