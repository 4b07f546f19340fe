package reschedule_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberio/scheduling-service/internal/api/handlers"
	rescheduleReservation "github.com/barberio/scheduling-service/internal/usecase/reschedule_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidNewStartsAt   = "некорректный формат newStartsAt, ожидается RFC3339"
	msgNotFound             = "бронирование не найдено"
	msgCannotReschedule     = "отменённое или завершённое бронирование нельзя перенести"
	msgOutOfBusinessHours   = "новый слот вне рабочих часов бизнеса"
	msgEmployeeUnavailable  = "сотрудник недоступен в выбранное время"
	msgSlotConflict         = "новый слот уже занят другим бронированием"
	msgInvalidStart         = "некорректное новое время начала"
)

type Handler struct {
	useCase RescheduleReservationUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationIDStr := vars["reservationId"]

	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNewStartsAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleReservation.ErrInvalidStateTransition):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid state transition: reservation_id=%d", reservationID)
			handlers.RespondUnprocessableEntity(w, msgCannotReschedule)

		case errors.Is(err, rescheduleReservation.ErrSlotConflict):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Slot conflict: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, rescheduleReservation.ErrOutOfBusinessHours):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Out of business hours: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgOutOfBusinessHours)

		case errors.Is(err, rescheduleReservation.ErrEmployeeUnavailable):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Employee unavailable: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgEmployeeUnavailable)

		case errors.Is(err, rescheduleReservation.ErrInvalidStart):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid start time: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidStart)

		case errors.Is(err, rescheduleReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reservations/{id}/reschedule - Failed to reschedule: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/reschedule - Reservation rescheduled successfully: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
