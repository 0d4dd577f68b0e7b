package create_availability

import (
	"context"

	"github.com/BreezDev/kimq/internal/domain"
)

type ScheduleService interface {
	CreateAvailability(ctx context.Context, block *domain.RecurringAvailability) (*domain.RecurringAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
