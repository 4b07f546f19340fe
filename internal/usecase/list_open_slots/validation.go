package list_open_slots

import (
	"fmt"

	"github.com/barberio/scheduling-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validatePairing проверяет согласованность бизнеса, услуги и сотрудника
func validatePairing(business *domain.Business, service *domain.Service, employee *domain.Employee) error {
	if !service.BelongsTo(business.ID) {
		return ErrServiceNotOffered
	}

	if employee.BusinessID != business.ID {
		return ErrEmployeeNotInBusiness
	}

	if !employee.IsQualifiedFor(service.ID) {
		return ErrServiceNotQualified
	}

	return nil
}
