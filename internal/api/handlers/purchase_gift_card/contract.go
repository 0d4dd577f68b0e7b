package purchase_gift_card

import (
	"context"

	"github.com/BreezDev/kimq/internal/domain"
	giftcardService "github.com/BreezDev/kimq/internal/service/giftcards"
)

type GiftCardService interface {
	Purchase(ctx context.Context, req *giftcardService.PurchaseRequest) (*domain.GiftCard, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
