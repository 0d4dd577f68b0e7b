package create_appointment

import (
	"context"
	"time"

	"github.com/BreezDev/kimq/internal/domain"
	"github.com/BreezDev/kimq/internal/integrations/payments"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	SetPaymentInfo(ctx context.Context, id int64, paymentIntentID, paymentStatus string) error
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	FindOrCreate(ctx context.Context, client *domain.Client) (*domain.Client, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.StaffMember, error)
	ListByRole(ctx context.Context, role domain.StaffRole) ([]*domain.StaffMember, error)
}

// PaymentRepository интерфейс журнала платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
}

// AvailabilityEngine интерфейс движка доступности
type AvailabilityEngine interface {
	ComputeOpenSlots(ctx context.Context, employeeID int64, day time.Time, duration time.Duration) ([]time.Time, error)
	CheckSlot(ctx context.Context, employeeID int64, start time.Time, duration time.Duration) error
}

// PaymentsClient интерфейс платежного клиента
type PaymentsClient interface {
	CreateIntent(ctx context.Context, amountCents int64, email, description string) (*payments.Intent, error)
}

// NotifyClient интерфейс клиента уведомлений
type NotifyClient interface {
	SendEmail(toEmail, toName, subject, plainText, htmlContent string) error
	SendSMS(toNumber, body string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
