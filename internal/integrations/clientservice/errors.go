package clientservice

import "errors"

var (
	// ErrClientNotFound возвращается, когда профиль клиента не найден
	ErrClientNotFound = errors.New("client profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("clientservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("clientservice client: invalid response")
)
