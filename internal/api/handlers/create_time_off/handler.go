package create_time_off

import (
	"errors"
	"net/http"

	"github.com/BreezDev/kimq/internal/api/handlers"
	scheduleService "github.com/BreezDev/kimq/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid time format, expected RFC 3339"
	msgEmployeeNotFound   = "employee not found"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedule/time-off
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateTimeOffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/time-off - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	timeOff, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /schedule/time-off - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	created, err := h.service.CreateTimeOff(r.Context(), timeOff)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrStaffNotFound):
			h.logger.Warn("POST /schedule/time-off - Employee not found: employee=%d", req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /schedule/time-off - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /schedule/time-off - Failed: employee=%d, error=%v", req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/time-off - Created time off id=%d for employee=%d",
		created.ID, created.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(created))
}
