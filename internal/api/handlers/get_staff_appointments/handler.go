package get_staff_appointments

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/BreezDev/kimq/internal/api/handlers"
	"github.com/BreezDev/kimq/internal/domain"
)

const (
	msgInvalidEmployeeID = "invalid employee id"
	msgInvalidFrom       = "invalid from date, expected YYYY-MM-DD"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{employeeId}/appointments?from=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	employeeID, err := strconv.ParseInt(vars["employeeId"], 10, 64)
	if err != nil || employeeID <= 0 {
		h.logger.Warn("GET /staff/{id}/appointments - Invalid id %q", vars["employeeId"])
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	// По умолчанию - с начала текущего дня
	from := time.Now().Truncate(24 * time.Hour)
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /staff/{id}/appointments - Invalid from %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = parsed
	}

	result, err := h.service.ListUpcomingByEmployee(r.Context(), employeeID, from)
	if err != nil {
		h.logger.Error("GET /staff/{id}/appointments - Failed: employee=%d, error=%v", employeeID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
