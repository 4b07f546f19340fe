package create_reservation

import (
	"errors"

	"github.com/barberio/scheduling-service/pkg/simpletxmanager"
	"github.com/barberio/scheduling-service/pkg/txmanager"
)

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_reservation: business not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("create_reservation: employee not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrClientNotFound возвращается, когда профиль клиента не найден
	ErrClientNotFound = errors.New("create_reservation: client not found")

	// ErrServiceNotOffered возвращается, когда услуга не принадлежит бизнесу
	ErrServiceNotOffered = errors.New("create_reservation: service is not offered by this business")

	// ErrEmployeeNotInBusiness возвращается, когда сотрудник не работает в бизнесе
	ErrEmployeeNotInBusiness = errors.New("create_reservation: employee does not belong to this business")

	// ErrServiceNotQualified возвращается, когда сотрудник не выполняет услугу
	ErrServiceNotQualified = errors.New("create_reservation: employee is not qualified for this service")

	// ErrOutOfBusinessHours возвращается, когда слот вне рабочих часов бизнеса
	ErrOutOfBusinessHours = errors.New("create_reservation: slot is outside business hours")

	// ErrEmployeeUnavailable возвращается, когда слот вне окон доступности сотрудника
	ErrEmployeeUnavailable = errors.New("create_reservation: employee is unavailable at this time")

	// ErrSlotConflict возвращается, когда слот пересекается с существующим бронированием
	// (в том числе при проигрыше гонки за слот)
	ErrSlotConflict = errors.New("create_reservation: slot conflicts with an existing reservation")

	// ErrInvalidStart возвращается при некорректном времени начала (прошлое, нулевое)
	ErrInvalidStart = errors.New("create_reservation: invalid start time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	// Оборачивает сбои хранилища и транспорта, чтобы вызывающая сторона
	// могла отличить "слот занят" от "попробуйте ещё раз"
	ErrInternal = errors.New("create_reservation: internal error")
)

// isSerializationFailure определяет, что транзакция не прошла сериализацию
// даже после повторов — бронирование проиграло гонку за слот
func isSerializationFailure(err error) bool {
	return errors.Is(err, txmanager.ErrSerializationFailure) ||
		errors.Is(err, simpletxmanager.ErrSerializationFailure)
}
