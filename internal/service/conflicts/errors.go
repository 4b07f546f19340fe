package conflicts

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках детектора
	ErrInternal = errors.New("conflicts: internal error")
)
