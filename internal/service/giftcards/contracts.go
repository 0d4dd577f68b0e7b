package giftcards

import (
	"context"

	"github.com/BreezDev/kimq/internal/domain"
	"github.com/BreezDev/kimq/internal/integrations/payments"
)

// GiftCardRepository интерфейс репозитория подарочных карт
type GiftCardRepository interface {
	Create(ctx context.Context, card *domain.GiftCard) (*domain.GiftCard, error)
	GetByCode(ctx context.Context, code string) (*domain.GiftCard, error)
	Redeem(ctx context.Context, code string, amountCents int64) (*domain.GiftCard, error)
}

// PaymentRepository интерфейс журнала платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
}

// PaymentsClient интерфейс платежного клиента
type PaymentsClient interface {
	CreateIntent(ctx context.Context, amountCents int64, email, description string) (*payments.Intent, error)
}

// NotifyClient интерфейс клиента уведомлений
type NotifyClient interface {
	SendEmail(toEmail, toName, subject, plainText, htmlContent string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
