package domain

import (
	"time"

	"github.com/barberio/scheduling-service/pkg/types"
)

// Business represents a barbershop-style business with its weekly operating hours.
type Business struct {
	ID       int64
	Name     string
	Timezone string // IANA name, e.g. "Europe/Madrid"

	// OperatingHours holds every weekly entry; a weekday may appear more than
	// once for split shifts. Entries for the same weekday never overlap.
	OperatingHours []OperatingHoursEntry

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OperatingHoursEntry is one open interval on a weekday.
// Invariant: Open < Close.
type OperatingHoursEntry struct {
	ID         int64
	BusinessID int64
	Weekday    time.Weekday
	Open       types.TimeString
	Close      types.TimeString
}

// Location resolves the business timezone, falling back to UTC for
// unparseable values so interval math never silently mixes locations.
func (b *Business) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HoursForWeekday returns the operating-hours entries for one weekday.
func (b *Business) HoursForWeekday(weekday time.Weekday) []OperatingHoursEntry {
	entries := make([]OperatingHoursEntry, 0)
	for _, entry := range b.OperatingHours {
		if entry.Weekday == weekday {
			entries = append(entries, entry)
		}
	}
	return entries
}
