package list_open_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/barberio/scheduling-service/internal/api/handlers"
	"github.com/barberio/scheduling-service/internal/domain"
	listOpenSlots "github.com/barberio/scheduling-service/internal/usecase/list_open_slots"
)

const (
	msgInvalidBusinessID     = "некорректный ID бизнеса"
	msgInvalidEmployeeID     = "некорректный ID сотрудника"
	msgInvalidServiceID      = "некорректный параметр serviceId"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBusinessNotFound      = "бизнес не найден"
	msgEmployeeNotFound      = "сотрудник не найден"
	msgServiceNotFound       = "услуга не найдена"
	msgServiceNotOffered     = "услуга не принадлежит этому бизнесу"
	msgEmployeeNotInBusiness = "сотрудник не работает в этом бизнесе"
	msgServiceNotQualified   = "сотрудник не выполняет эту услугу"
	msgInvalidParams         = "некорректные параметры запроса"
)

type Handler struct {
	useCase ListOpenSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ListOpenSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/employees/{employeeId}/open-slots
// Query params: serviceId (обязательный), date (обязательный, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /open-slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /open-slots - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /open-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /open-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &listOpenSlots.Request{
		BusinessID: businessID,
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, listOpenSlots.ErrBusinessNotFound):
			h.logger.Warn("GET /open-slots - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, listOpenSlots.ErrEmployeeNotFound):
			h.logger.Warn("GET /open-slots - Employee not found: employee_id=%d", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, listOpenSlots.ErrServiceNotFound):
			h.logger.Warn("GET /open-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, listOpenSlots.ErrServiceNotOffered):
			h.logger.Warn("GET /open-slots - Service not offered: business_id=%d, service_id=%d", businessID, serviceID)
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, listOpenSlots.ErrEmployeeNotInBusiness):
			h.logger.Warn("GET /open-slots - Employee not in business: business_id=%d, employee_id=%d", businessID, employeeID)
			handlers.RespondBadRequest(w, msgEmployeeNotInBusiness)

		case errors.Is(err, listOpenSlots.ErrServiceNotQualified):
			h.logger.Warn("GET /open-slots - Employee not qualified: employee_id=%d, service_id=%d", employeeID, serviceID)
			handlers.RespondBadRequest(w, msgServiceNotQualified)

		case errors.Is(err, listOpenSlots.ErrInvalidInput):
			h.logger.Warn("GET /open-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /open-slots - Failed to list open slots: employee_id=%d, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /open-slots - Open slots retrieved: employee_id=%d, count=%d", employeeID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
