package availability

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("availability: employee not found")

	// ErrBusinessNotFound возвращается, когда бизнес сотрудника не найден
	ErrBusinessNotFound = errors.New("availability: business not found")

	// ErrInternal возвращается при внутренних ошибках резолвера
	ErrInternal = errors.New("availability: internal error")
)
