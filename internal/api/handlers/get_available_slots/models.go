package get_available_slots

import (
	"github.com/BreezDev/kimq/internal/domain"
	getAvailableSlots "github.com/BreezDev/kimq/internal/usecase/get_available_slots"
)

// StaffSlotsResponse слоты одного мастера
type StaffSlotsResponse struct {
	EmployeeID   int64    `json:"employeeId"`
	EmployeeName string   `json:"employeeName"`
	Slots        []string `json:"slots"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date  string               `json:"date"`
	Staff []StaffSlotsResponse `json:"staff"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Staff: make([]StaffSlotsResponse, 0, len(resp.Staff)),
	}

	for _, staff := range resp.Staff {
		out.Staff = append(out.Staff, StaffSlotsResponse{
			EmployeeID:   staff.EmployeeID,
			EmployeeName: staff.EmployeeName,
			Slots:        staff.Slots,
		})
	}

	return out
}
