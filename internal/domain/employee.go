package domain

import (
	"time"

	"github.com/barberio/scheduling-service/pkg/types"
)

// AvailabilityRuleKind distinguishes recurring weekly windows from
// date-specific overrides.
type AvailabilityRuleKind string

const (
	// RuleRecurring is a weekly window keyed by weekday.
	RuleRecurring AvailabilityRuleKind = "recurring"
	// RuleOverride is a window for one exact date. The presence of any
	// override rows for a date fully replaces the recurring rules for that
	// date; an override row with no interval is a blackout marker.
	RuleOverride AvailabilityRuleKind = "override"
)

// Employee represents a bookable staff member of a business.
type Employee struct {
	ID         int64
	BusinessID int64
	Name       string

	// ServiceIDs lists the services the employee is qualified to perform.
	ServiceIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsQualifiedFor reports whether the employee may perform the given service.
func (e *Employee) IsQualifiedFor(serviceID int64) bool {
	for _, id := range e.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// AvailabilityRule is one row of an employee's availability definition,
// either Recurring(weekday, window) or Override(date, window).
type AvailabilityRule struct {
	ID         int64
	EmployeeID int64
	Kind       AvailabilityRuleKind

	// Weekday is set for recurring rules only.
	Weekday time.Weekday
	// Date is set for override rules only (midnight, business timezone).
	Date time.Time

	// Start/End bound the window. Both empty on a blackout override.
	Start types.TimeString
	End   types.TimeString
}

// IsBlackout reports whether the rule marks a whole date as unavailable.
func (r *AvailabilityRule) IsBlackout() bool {
	return r.Kind == RuleOverride && r.Start.IsZero() && r.End.IsZero()
}
