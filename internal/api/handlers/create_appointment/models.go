package create_appointment

import (
	"time"

	"github.com/BreezDev/kimq/internal/domain"
	createAppointment "github.com/BreezDev/kimq/internal/usecase/create_appointment"
	"github.com/BreezDev/kimq/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID   int64   `json:"serviceId"`
	EmployeeID  *int64  `json:"employeeId,omitempty"` // nil - первый свободный мастер
	Date        string  `json:"date"`                 // "2025-10-15"
	StartTime   string  `json:"startTime"`            // "10:00"
	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ServiceID       int64   `json:"serviceId"`
	EmployeeID      int64   `json:"employeeId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	EmployeeName    string  `json:"employeeName"`
	DepositCents    int64   `json:"depositCents"`
	PaymentIntentID *string `json:"paymentIntentId,omitempty"`
	PaymentStatus   *string `json:"paymentStatus,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ServiceID:   r.ServiceID,
		EmployeeID:  r.EmployeeID,
		Date:        date,
		StartTime:   startTime,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		EmployeeID:      resp.EmployeeID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		EmployeeName:    resp.EmployeeName,
		DepositCents:    resp.DepositCents,
		PaymentIntentID: resp.PaymentIntentID,
		PaymentStatus:   resp.PaymentStatus,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
