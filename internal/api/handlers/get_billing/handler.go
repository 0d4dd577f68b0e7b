package get_billing

import (
	"errors"
	"net/http"

	"github.com/BreezDev/kimq/internal/api/handlers"
	billingService "github.com/BreezDev/kimq/internal/service/billing"
)

const msgMissingEmail = "email query parameter is required"

type Handler struct {
	service BillingService
	logger  Logger
}

func NewHandler(service BillingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/billing?email=client@example.com
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.logger.Warn("GET /billing - Missing email parameter")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	stmt, err := h.service.GetStatement(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, billingService.ErrInvalidInput):
			h.logger.Warn("GET /billing - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /billing - Failed for %s: %v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /billing - Statement for %s: %d payments, %d appointments",
		email, len(stmt.Payments), len(stmt.Appointments))
	handlers.RespondJSON(w, http.StatusOK, FromStatement(email, stmt))
}
