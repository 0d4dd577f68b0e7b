package get_appointment

import (
	"context"

	"github.com/BreezDev/kimq/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetDetail(ctx context.Context, id int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
