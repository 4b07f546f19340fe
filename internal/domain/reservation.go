package domain

import "time"

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Reservation represents a client's booking of a service with an employee.
// BusinessID, EmployeeID, ServiceID and ClientID are weak references: the
// reservation keeps its denormalized data even if the referenced records change.
type Reservation struct {
	ID         int64
	BusinessID int64
	EmployeeID int64
	ServiceID  int64
	ClientID   int64

	StartsAt time.Time
	// DurationMinutes is snapshotted from the service at creation time.
	// Later edits to the service definition never move existing reservations.
	DurationMinutes int
	Status          ReservationStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EndsAt returns the exclusive end instant of the reservation interval.
func (r *Reservation) EndsAt() time.Time {
	return r.StartsAt.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// IsBlocking returns true if the reservation occupies its time slot.
// Only pending and confirmed reservations count for conflict detection.
func (r *Reservation) IsBlocking() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can transition to cancelled.
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the reservation's start can still be moved.
func (r *Reservation) CanBeRescheduled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsFinal returns true once the reservation is immutable.
func (r *Reservation) IsFinal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted
}

// EmployeeReservationsFilter фильтр для выборки бронирований сотрудника
type EmployeeReservationsFilter struct {
	EmployeeID      int64      // Обязательный параметр
	From            *time.Time // Начало периода (опционально)
	To              *time.Time // Конец периода (опционально)
	OnlyBlocking    bool       // Только pending/confirmed
	ExcludeID       *int64     // Исключить бронирование (для переноса)
	IncludeInactive bool       // Включать ли отменённые и завершённые
}

// BusinessReservationsFilter фильтр для выборки бронирований бизнеса
type BusinessReservationsFilter struct {
	BusinessID      int64
	EmployeeID      *int64
	From            *time.Time
	To              *time.Time
	Status          *ReservationStatus
	IncludeInactive bool
}
