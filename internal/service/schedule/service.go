package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/BreezDev/kimq/internal/domain"
	scheduleRepo "github.com/BreezDev/kimq/internal/infra/storage/schedule"
	staffRepo "github.com/BreezDev/kimq/internal/infra/storage/staff"
)

// Service сервис администрирования расписаний сотрудников
type Service struct {
	scheduleRepo ScheduleRepository
	staffRepo    StaffRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, staffRepo StaffRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		staffRepo:    staffRepo,
		logger:       logger,
	}
}

// CreateAvailability добавляет блок еженедельной доступности сотрудника
func (s *Service) CreateAvailability(ctx context.Context, block *domain.RecurringAvailability) (*domain.RecurringAvailability, error) {
	s.logger.Info("CreateAvailability: employee=%d weekday=%d %s-%s",
		block.EmployeeID, block.Weekday, block.StartTime, block.EndTime)

	if block.Weekday < 0 || block.Weekday > 6 {
		s.logger.Warn("CreateAvailability: invalid weekday=%d", block.Weekday)
		return nil, fmt.Errorf("%w: weekday must be 0..6", ErrInvalidInput)
	}
	if err := block.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if err := block.EndTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
	}
	if !block.StartTime.IsBefore(block.EndTime) {
		s.logger.Warn("CreateAvailability: start %s is not before end %s", block.StartTime, block.EndTime)
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	if err := s.checkEmployee(ctx, block.EmployeeID); err != nil {
		return nil, err
	}

	created, err := s.scheduleRepo.CreateAvailability(ctx, block)
	if err != nil {
		s.logger.Error("CreateAvailability: repository error for employee=%d: %v", block.EmployeeID, err)
		return nil, fmt.Errorf("%w: CreateAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAvailability: created block id=%d for employee=%d", created.ID, created.EmployeeID)
	return created, nil
}

// DeleteAvailability удаляет блок доступности
func (s *Service) DeleteAvailability(ctx context.Context, id int64) error {
	s.logger.Info("DeleteAvailability: deleting block id=%d", id)

	if err := s.scheduleRepo.DeleteAvailability(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("DeleteAvailability: block id=%d not found", id)
			return ErrAvailabilityNotFound
		}
		s.logger.Error("DeleteAvailability: repository error for block id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteAvailability - repository error: %v", ErrInternal, err)
	}

	return nil
}

// CreateTimeOff добавляет интервал отгула сотрудника
func (s *Service) CreateTimeOff(ctx context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error) {
	s.logger.Info("CreateTimeOff: employee=%d %s - %s",
		timeOff.EmployeeID, timeOff.StartTime, timeOff.EndTime)

	if timeOff.StartTime.IsZero() || timeOff.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !timeOff.StartTime.Before(timeOff.EndTime) {
		s.logger.Warn("CreateTimeOff: start %s is not before end %s", timeOff.StartTime, timeOff.EndTime)
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	if err := s.checkEmployee(ctx, timeOff.EmployeeID); err != nil {
		return nil, err
	}

	created, err := s.scheduleRepo.CreateTimeOff(ctx, timeOff)
	if err != nil {
		s.logger.Error("CreateTimeOff: repository error for employee=%d: %v", timeOff.EmployeeID, err)
		return nil, fmt.Errorf("%w: CreateTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTimeOff: created time off id=%d for employee=%d", created.ID, created.EmployeeID)
	return created, nil
}

// ListTimeOff получает интервалы отгулов сотрудника
func (s *Service) ListTimeOff(ctx context.Context, employeeID int64) ([]*domain.TimeOff, error) {
	intervals, err := s.scheduleRepo.ListTimeOff(ctx, employeeID)
	if err != nil {
		s.logger.Error("ListTimeOff: repository error for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: ListTimeOff - repository error: %v", ErrInternal, err)
	}
	return intervals, nil
}

// checkEmployee проверяет, что сотрудник существует
func (s *Service) checkEmployee(ctx context.Context, employeeID int64) error {
	if _, err := s.staffRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("checkEmployee: employee id=%d not found", employeeID)
			return ErrStaffNotFound
		}
		s.logger.Error("checkEmployee: repository error for employee=%d: %v", employeeID, err)
		return fmt.Errorf("%w: checkEmployee - repository error: %v", ErrInternal, err)
	}
	return nil
}
