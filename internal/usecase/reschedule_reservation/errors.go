package reschedule_reservation

import (
	"errors"

	"github.com/barberio/scheduling-service/pkg/simpletxmanager"
	"github.com/barberio/scheduling-service/pkg/txmanager"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reschedule_reservation: reservation not found")

	// ErrInvalidStateTransition возвращается при попытке перенести
	// отменённое или завершённое бронирование
	ErrInvalidStateTransition = errors.New("reschedule_reservation: reservation is final and cannot be rescheduled")

	// ErrOutOfBusinessHours возвращается, когда новый слот вне рабочих часов бизнеса
	ErrOutOfBusinessHours = errors.New("reschedule_reservation: slot is outside business hours")

	// ErrEmployeeUnavailable возвращается, когда новый слот вне окон доступности сотрудника
	ErrEmployeeUnavailable = errors.New("reschedule_reservation: employee is unavailable at this time")

	// ErrSlotConflict возвращается, когда новый слот пересекается с другим бронированием
	ErrSlotConflict = errors.New("reschedule_reservation: slot conflicts with an existing reservation")

	// ErrInvalidStart возвращается при некорректном новом времени начала
	ErrInvalidStart = errors.New("reschedule_reservation: invalid start time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_reservation: internal error")
)

// isSerializationFailure определяет, что транзакция не прошла сериализацию
// даже после повторов — перенос проиграл гонку за слот
func isSerializationFailure(err error) bool {
	return errors.Is(err, txmanager.ErrSerializationFailure) ||
		errors.Is(err, simpletxmanager.ErrSerializationFailure)
}
