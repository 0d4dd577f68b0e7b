package get_staff_appointments

import (
	"context"
	"time"

	"github.com/BreezDev/kimq/internal/service/appointments/models"
)

type AppointmentsService interface {
	ListUpcomingByEmployee(ctx context.Context, employeeID int64, from time.Time) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
