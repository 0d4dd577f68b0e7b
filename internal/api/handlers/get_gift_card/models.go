package get_gift_card

import "github.com/BreezDev/kimq/internal/domain"

// GiftCardBalanceResponse HTTP модель остатка карты. Получатель и
// плательщик в публичный ответ не попадают.
type GiftCardBalanceResponse struct {
	Code         string `json:"code"`
	BalanceCents int64  `json:"balanceCents"`
	Status       string `json:"status"`
}

// FromDomain конвертирует domain модель в HTTP response
func FromDomain(card *domain.GiftCard) *GiftCardBalanceResponse {
	return &GiftCardBalanceResponse{
		Code:         card.Code,
		BalanceCents: card.BalanceCents,
		Status:       string(card.Status),
	}
}
