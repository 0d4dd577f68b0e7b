package purchase_gift_card

import (
	"time"

	"github.com/BreezDev/kimq/internal/domain"
	giftcardService "github.com/BreezDev/kimq/internal/service/giftcards"
)

// PurchaseGiftCardRequest HTTP request model
type PurchaseGiftCardRequest struct {
	ToName      string  `json:"toName"`
	FromName    string  `json:"fromName"`
	AmountCents int64   `json:"amountCents"`
	Message     *string `json:"message,omitempty"`
	Email       string  `json:"email"`
}

// GiftCardResponse HTTP модель подарочной карты
type GiftCardResponse struct {
	ID           int64   `json:"id"`
	Code         string  `json:"code"`
	ToName       string  `json:"toName"`
	FromName     string  `json:"fromName"`
	AmountCents  int64   `json:"amountCents"`
	BalanceCents int64   `json:"balanceCents"`
	Message      *string `json:"message,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
}

// ToService конвертирует HTTP запрос в модель сервисного слоя
func (r *PurchaseGiftCardRequest) ToService() *giftcardService.PurchaseRequest {
	return &giftcardService.PurchaseRequest{
		ToName:      r.ToName,
		FromName:    r.FromName,
		AmountCents: r.AmountCents,
		Message:     r.Message,
		Email:       r.Email,
	}
}

// FromDomain конвертирует domain модель в HTTP response
func FromDomain(card *domain.GiftCard) *GiftCardResponse {
	return &GiftCardResponse{
		ID:           card.ID,
		Code:         card.Code,
		ToName:       card.ToName,
		FromName:     card.FromName,
		AmountCents:  card.AmountCents,
		BalanceCents: card.BalanceCents,
		Message:      card.Message,
		Status:       string(card.Status),
		CreatedAt:    card.CreatedAt.Format(time.RFC3339),
	}
}
