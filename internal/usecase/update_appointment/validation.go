package update_appointment

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentId must be positive", ErrInvalidInput)
	}

	if req.Status == nil && req.Date == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	// Дата и время переноса задаются только вместе
	if (req.Date == nil) != (req.StartTime == nil) {
		return fmt.Errorf("%w: date and startTime must be provided together", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
