package get_gift_card

import (
	"context"

	"github.com/BreezDev/kimq/internal/domain"
)

type GiftCardService interface {
	GetByCode(ctx context.Context, code string) (*domain.GiftCard, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
