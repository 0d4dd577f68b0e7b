package create_availability

import (
	"github.com/BreezDev/kimq/internal/domain"
	"github.com/BreezDev/kimq/pkg/types"
)

// CreateAvailabilityRequest HTTP request model
type CreateAvailabilityRequest struct {
	EmployeeID int64  `json:"employeeId"`
	Weekday    int    `json:"weekday"`   // понедельник=0 .. воскресенье=6
	StartTime  string `json:"startTime"` // "09:00"
	EndTime    string `json:"endTime"`   // "17:00"
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employeeId"`
	Weekday    int    `json:"weekday"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// ToDomain конвертирует HTTP запрос в domain модель
func (r *CreateAvailabilityRequest) ToDomain() (*domain.RecurringAvailability, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &domain.RecurringAvailability{
		EmployeeID: r.EmployeeID,
		Weekday:    r.Weekday,
		StartTime:  startTime,
		EndTime:    endTime,
	}, nil
}

// FromDomain конвертирует domain модель в HTTP response
func FromDomain(block *domain.RecurringAvailability) *AvailabilityResponse {
	return &AvailabilityResponse{
		ID:         block.ID,
		EmployeeID: block.EmployeeID,
		Weekday:    block.Weekday,
		StartTime:  block.StartTime.String(),
		EndTime:    block.EndTime.String(),
	}
}
