package purchase_gift_card

import (
	"errors"
	"net/http"

	"github.com/BreezDev/kimq/internal/api/handlers"
	giftcardService "github.com/BreezDev/kimq/internal/service/giftcards"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgPaymentFailed      = "payment could not be processed"
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

// Handle POST /api/v1/gift-cards
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PurchaseGiftCardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /gift-cards - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	card, err := h.service.Purchase(r.Context(), req.ToService())
	if err != nil {
		switch {
		case errors.Is(err, giftcardService.ErrInvalidInput):
			h.logger.Warn("POST /gift-cards - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, giftcardService.ErrPaymentFailed):
			h.logger.Warn("POST /gift-cards - Payment failed for %s: %v", req.Email, err)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentFailed)

		default:
			h.logger.Error("POST /gift-cards - Failed for %s: %v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /gift-cards - Purchased gift card id=%d for %s", card.ID, req.Email)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(card))
}
