package create_reservation

import (
	"errors"
	"net/http"

	"github.com/barberio/scheduling-service/internal/api/handlers"
	"github.com/barberio/scheduling-service/internal/api/middleware"
	createReservation "github.com/barberio/scheduling-service/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidStartsAt       = "некорректный формат startsAt, ожидается RFC3339"
	msgMissingClientID       = "отсутствует ID клиента"
	msgBusinessNotFound      = "бизнес не найден"
	msgEmployeeNotFound      = "сотрудник не найден"
	msgServiceNotFound       = "услуга не найдена"
	msgClientNotFound        = "клиент не найден"
	msgServiceNotOffered     = "услуга не принадлежит этому бизнесу"
	msgEmployeeNotInBusiness = "сотрудник не работает в этом бизнесе"
	msgServiceNotQualified   = "сотрудник не выполняет эту услугу"
	msgOutOfBusinessHours    = "слот вне рабочих часов бизнеса"
	msgEmployeeUnavailable   = "сотрудник недоступен в выбранное время"
	msgSlotConflict          = "слот уже занят другим бронированием"
	msgInvalidStart          = "некорректное время начала"
	msgInvalidInput          = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем clientID из контекста (через middleware Auth)
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartsAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: client_id=%d, employee_id=%d", clientID, req.EmployeeID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createReservation.ErrBusinessNotFound):
			h.logger.Warn("POST /reservations - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createReservation.ErrEmployeeNotFound):
			h.logger.Warn("POST /reservations - Employee not found: employee_id=%d", req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, createReservation.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createReservation.ErrClientNotFound):
			h.logger.Warn("POST /reservations - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createReservation.ErrServiceNotOffered):
			h.logger.Warn("POST /reservations - Service not offered: business_id=%d, service_id=%d", req.BusinessID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, createReservation.ErrEmployeeNotInBusiness):
			h.logger.Warn("POST /reservations - Employee not in business: business_id=%d, employee_id=%d", req.BusinessID, req.EmployeeID)
			handlers.RespondBadRequest(w, msgEmployeeNotInBusiness)

		case errors.Is(err, createReservation.ErrServiceNotQualified):
			h.logger.Warn("POST /reservations - Employee not qualified: employee_id=%d, service_id=%d", req.EmployeeID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotQualified)

		case errors.Is(err, createReservation.ErrOutOfBusinessHours):
			h.logger.Warn("POST /reservations - Out of business hours: business_id=%d", req.BusinessID)
			handlers.RespondBadRequest(w, msgOutOfBusinessHours)

		case errors.Is(err, createReservation.ErrEmployeeUnavailable):
			h.logger.Warn("POST /reservations - Employee unavailable: employee_id=%d", req.EmployeeID)
			handlers.RespondBadRequest(w, msgEmployeeUnavailable)

		case errors.Is(err, createReservation.ErrInvalidStart):
			h.logger.Warn("POST /reservations - Invalid start time: client_id=%d", clientID)
			handlers.RespondBadRequest(w, msgInvalidStart)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, client_id=%d, employee_id=%d",
		result.ID, clientID, req.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
