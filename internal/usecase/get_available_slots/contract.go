package get_available_slots

import (
	"context"
	"time"

	"github.com/BreezDev/kimq/internal/domain"
)

// AvailabilityEngine интерфейс движка доступности
type AvailabilityEngine interface {
	ComputeOpenSlots(ctx context.Context, employeeID int64, day time.Time, duration time.Duration) ([]time.Time, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.StaffMember, error)
	ListByRole(ctx context.Context, role domain.StaffRole) ([]*domain.StaffMember, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
