package create_time_off

import (
	"time"

	"github.com/BreezDev/kimq/internal/domain"
)

// CreateTimeOffRequest HTTP request model
type CreateTimeOffRequest struct {
	EmployeeID int64  `json:"employeeId"`
	StartTime  string `json:"startTime"` // RFC 3339
	EndTime    string `json:"endTime"`   // RFC 3339
	Reason     string `json:"reason,omitempty"`
}

// TimeOffResponse HTTP response model
type TimeOffResponse struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employeeId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Reason     string `json:"reason,omitempty"`
}

// ToDomain конвертирует HTTP запрос в domain модель
func (r *CreateTimeOffRequest) ToDomain() (*domain.TimeOff, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &domain.TimeOff{
		EmployeeID: r.EmployeeID,
		StartTime:  start,
		EndTime:    end,
		Reason:     r.Reason,
	}, nil
}

// FromDomain конвертирует domain модель в HTTP response
func FromDomain(timeOff *domain.TimeOff) *TimeOffResponse {
	return &TimeOffResponse{
		ID:         timeOff.ID,
		EmployeeID: timeOff.EmployeeID,
		StartTime:  timeOff.StartTime.Format(time.RFC3339),
		EndTime:    timeOff.EndTime.Format(time.RFC3339),
		Reason:     timeOff.Reason,
	}
}
