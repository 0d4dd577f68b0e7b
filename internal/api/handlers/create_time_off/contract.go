package create_time_off

import (
	"context"

	"github.com/BreezDev/kimq/internal/domain"
)

type ScheduleService interface {
	CreateTimeOff(ctx context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
