package update_appointment

import (
	"time"

	"github.com/BreezDev/kimq/internal/domain"
	updateAppointment "github.com/BreezDev/kimq/internal/usecase/update_appointment"
	"github.com/BreezDev/kimq/pkg/types"
)

// UpdateAppointmentRequest HTTP request model.
// Все поля опциональны: статус, перенос (date+startTime) или оба сразу.
type UpdateAppointmentRequest struct {
	Status    *string `json:"status,omitempty"`
	Date      *string `json:"date,omitempty"`      // "2025-10-15"
	StartTime *string `json:"startTime,omitempty"` // "10:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employeeId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	Status     string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		AppointmentID: appointmentID,
		Status:        r.Status,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         resp.ID,
		EmployeeID: resp.EmployeeID,
		Date:       resp.StartTime.Format(domain.DateFormat),
		StartTime:  resp.StartTime.Format(domain.TimeFormat),
		Status:     resp.Status,
	}
}
