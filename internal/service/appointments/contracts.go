package appointments

import (
	"context"
	"time"

	"github.com/BreezDev/kimq/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetDetail(ctx context.Context, id int64) (*domain.AppointmentDetail, error)
	ListUpcomingByEmployee(ctx context.Context, employeeID int64, from time.Time) ([]*domain.AppointmentDetail, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// NotifyClient интерфейс клиента уведомлений
type NotifyClient interface {
	SendEmail(toEmail, toName, subject, plainText, htmlContent string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
