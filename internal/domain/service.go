package domain

import "time"

// Service represents a bookable service offered by a business.
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int
	Price           float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the service length as a time.Duration.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// BelongsTo reports whether the service is offered by the given business.
func (s *Service) BelongsTo(businessID int64) bool {
	return s.BusinessID == businessID
}
