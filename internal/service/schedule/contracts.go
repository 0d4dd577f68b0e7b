package schedule

import (
	"context"

	"github.com/BreezDev/kimq/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	CreateAvailability(ctx context.Context, block *domain.RecurringAvailability) (*domain.RecurringAvailability, error)
	GetRecurringAvailability(ctx context.Context, employeeID int64, weekday int) ([]*domain.RecurringAvailability, error)
	DeleteAvailability(ctx context.Context, id int64) error
	CreateTimeOff(ctx context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error)
	ListTimeOff(ctx context.Context, employeeID int64) ([]*domain.TimeOff, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.StaffMember, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
