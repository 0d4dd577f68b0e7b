package update_appointment

import (
	"context"
	"time"

	"github.com/BreezDev/kimq/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, startTime time.Time, status domain.AppointmentStatus) error
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// AvailabilityEngine интерфейс движка доступности
type AvailabilityEngine interface {
	CheckSlotExcluding(ctx context.Context, employeeID int64, start time.Time, duration time.Duration, excludeID *int64) error
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
