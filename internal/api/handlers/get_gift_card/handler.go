package get_gift_card

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/BreezDev/kimq/internal/api/handlers"
	giftcardService "github.com/BreezDev/kimq/internal/service/giftcards"
)

const (
	msgMissingCode      = "gift card code is required"
	msgGiftCardNotFound = "gift card not found"
)

type Handler struct {
	service GiftCardService
	logger  Logger
}

func NewHandler(service GiftCardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/gift-cards/{code}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if code == "" {
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	card, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, giftcardService.ErrGiftCardNotFound):
			h.logger.Warn("GET /gift-cards/{code} - Not found: code=%s", code)
			handlers.RespondNotFound(w, msgGiftCardNotFound)

		default:
			h.logger.Error("GET /gift-cards/{code} - Failed: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /gift-cards/{code} - Returned balance for code=%s", code)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(card))
}
