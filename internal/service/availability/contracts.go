package availability

import (
	"context"
	"time"

	"github.com/BreezDev/kimq/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetRecurringAvailability(ctx context.Context, employeeID int64, weekday int) ([]*domain.RecurringAvailability, error)
	ListTimeOff(ctx context.Context, employeeID int64) ([]*domain.TimeOff, error)
	HasCoveringTimeOff(ctx context.Context, employeeID int64, start, end time.Time) (bool, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListActiveByEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.Appointment, error)
	HasOverlapping(ctx context.Context, employeeID int64, start time.Time, durationMinutes int, excludeID *int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
