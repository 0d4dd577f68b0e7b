package delete_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BreezDev/kimq/internal/api/handlers"
	scheduleService "github.com/BreezDev/kimq/internal/service/schedule"
)

const (
	msgInvalidBlockID = "invalid availability block id"
	msgBlockNotFound  = "availability block not found"
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

// Handle DELETE /api/v1/schedule/availability/{availabilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	blockID, err := strconv.ParseInt(vars["availabilityId"], 10, 64)
	if err != nil || blockID <= 0 {
		h.logger.Warn("DELETE /schedule/availability/{id} - Invalid id %q", vars["availabilityId"])
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.DeleteAvailability(r.Context(), blockID); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrAvailabilityNotFound):
			h.logger.Warn("DELETE /schedule/availability/{id} - Not found: id=%d", blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		default:
			h.logger.Error("DELETE /schedule/availability/{id} - Failed: id=%d, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule/availability/{id} - Deleted: id=%d", blockID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
