package get_client_reservations

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barberio/scheduling-service/internal/api/handlers"
	"github.com/barberio/scheduling-service/internal/api/middleware"
	"github.com/barberio/scheduling-service/internal/domain"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgMissingClientID = "отсутствует ID клиента"
	msgForbidden       = "доступ запрещен"
	msgInvalidStatus   = "некорректный параметр status"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/reservations
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	clientID, err := strconv.ParseInt(vars["clientId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /clients/{id}/reservations - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	// Клиент видит только собственную историю
	authClientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/{id}/reservations - Missing client ID")
		handlers.RespondUnauthorized(w, msgMissingClientID)
		return
	}
	if authClientID != clientID {
		h.logger.Warn("GET /clients/{id}/reservations - Access denied: client_id=%d, auth_client_id=%d",
			clientID, authClientID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var status *domain.ReservationStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		parsed := domain.ReservationStatus(statusStr)
		switch parsed {
		case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
			status = &parsed
		default:
			h.logger.Warn("GET /clients/{id}/reservations - Invalid status: %s", statusStr)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
	}

	reservations, err := h.service.GetClientReservations(r.Context(), clientID, status)
	if err != nil {
		h.logger.Error("GET /clients/{id}/reservations - Failed to get reservations: client_id=%d, error=%v",
			clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clients/{id}/reservations - Reservations retrieved: client_id=%d, count=%d",
		clientID, len(reservations))
	handlers.RespondJSON(w, http.StatusOK, FromDomainList(reservations))
}
