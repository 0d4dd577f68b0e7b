package billing

import (
	"context"

	"github.com/BreezDev/kimq/internal/domain"
)

// PaymentRepository интерфейс журнала платежей
type PaymentRepository interface {
	ListByEmail(ctx context.Context, email string) ([]*domain.Payment, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListByClientEmail(ctx context.Context, email string) ([]*domain.AppointmentDetail, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
