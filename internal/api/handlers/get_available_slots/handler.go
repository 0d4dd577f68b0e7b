package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/BreezDev/kimq/internal/api/handlers"
	"github.com/BreezDev/kimq/internal/domain"
	getAvailableSlots "github.com/BreezDev/kimq/internal/usecase/get_available_slots"
)

const (
	msgMissingDate       = "date query parameter is required"
	msgInvalidDate       = "invalid date format, expected YYYY-MM-DD"
	msgInvalidEmployeeID = "invalid employeeId"
	msgEmployeeNotFound  = "employee not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD[&employeeId=N|any]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	useCaseReq := &getAvailableSlots.Request{Date: date}

	// employeeId=any (или отсутствие параметра) - слоты по всем мастерам
	if raw := r.URL.Query().Get("employeeId"); raw != "" && raw != "any" {
		employeeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || employeeID <= 0 {
			h.logger.Warn("GET /availability - Invalid employeeId %q", raw)
			handlers.RespondBadRequest(w, msgInvalidEmployeeID)
			return
		}
		useCaseReq.EmployeeID = &employeeID
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrEmployeeNotFound):
			h.logger.Warn("GET /availability - Employee not found: %v", useCaseReq.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /availability - Failed: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
