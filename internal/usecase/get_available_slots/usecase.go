package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BreezDev/kimq/internal/domain"
	staffRepo "github.com/BreezDev/kimq/internal/infra/storage/staff"
)

// UseCase use case получения свободных слотов на дату
type UseCase struct {
	engine    AvailabilityEngine
	staffRepo StaffRepository
	duration  time.Duration
	logger    Logger
}

// NewUseCase создает новый экземпляр use case.
// duration - длительность записи, на которую считаются слоты.
func NewUseCase(engine AvailabilityEngine, staffRepo StaffRepository, duration time.Duration, logger Logger) *UseCase {
	if duration <= 0 {
		duration = domain.DefaultAppointmentDuration
	}
	return &UseCase{
		engine:    engine,
		staffRepo: staffRepo,
		duration:  duration,
		logger:    logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Без employeeId слоты считаются для всех мастеров в порядке справочника.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, employee=%v",
		req.Date.Format(domain.DateFormat), req.EmployeeID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	employees, err := uc.resolveEmployees(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Date:  req.Date,
		Staff: make([]StaffSlots, 0, len(employees)),
	}

	for _, employee := range employees {
		slots, err := uc.engine.ComputeOpenSlots(ctx, employee.ID, req.Date, uc.duration)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: engine error for employee=%d: %v", employee.ID, err)
			return nil, fmt.Errorf("%w: compute slots for employee=%d: %v", ErrInternal, employee.ID, err)
		}

		formatted := make([]string, 0, len(slots))
		for _, slot := range slots {
			formatted = append(formatted, slot.Format(domain.TimeFormat))
		}

		resp.Staff = append(resp.Staff, StaffSlots{
			EmployeeID:   employee.ID,
			EmployeeName: employee.Name,
			Slots:        formatted,
		})
	}

	uc.logger.Info("GetAvailableSlots: computed slots for %d employees on %s",
		len(resp.Staff), req.Date.Format(domain.DateFormat))

	return resp, nil
}

// resolveEmployees определяет список мастеров: один явный или весь справочник
func (uc *UseCase) resolveEmployees(ctx context.Context, employeeID *int64) ([]*domain.StaffMember, error) {
	if employeeID != nil {
		employee, err := uc.staffRepo.GetByID(ctx, *employeeID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				uc.logger.Warn("GetAvailableSlots: employee id=%d not found", *employeeID)
				return nil, ErrEmployeeNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get employee id=%d: %v", *employeeID, err)
			return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
		}
		return []*domain.StaffMember{employee}, nil
	}

	employees, err := uc.staffRepo.ListByRole(ctx, domain.RoleEmployee)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list employees: %v", err)
		return nil, fmt.Errorf("%w: failed to list employees: %v", ErrInternal, err)
	}
	return employees, nil
}
