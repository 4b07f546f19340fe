package list_open_slots

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("list_open_slots: business not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("list_open_slots: employee not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("list_open_slots: service not found")

	// ErrServiceNotOffered возвращается, когда услуга не принадлежит бизнесу
	ErrServiceNotOffered = errors.New("list_open_slots: service is not offered by this business")

	// ErrEmployeeNotInBusiness возвращается, когда сотрудник не работает в бизнесе
	ErrEmployeeNotInBusiness = errors.New("list_open_slots: employee does not belong to this business")

	// ErrServiceNotQualified возвращается, когда сотрудник не выполняет услугу
	ErrServiceNotQualified = errors.New("list_open_slots: employee is not qualified for this service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("list_open_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_open_slots: internal error")
)
