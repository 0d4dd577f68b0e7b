package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BreezDev/kimq/internal/domain"
	apptRepo "github.com/BreezDev/kimq/internal/infra/storage/appointment"
	"github.com/BreezDev/kimq/internal/service/availability"
)

// UseCase use case административного обновления записи: смена статуса
// и/или перенос на другое время
type UseCase struct {
	apptRepo  AppointmentRepository
	engine    AvailabilityEngine
	txManager TransactionManager
	duration  time.Duration
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	engine AvailabilityEngine,
	txManager TransactionManager,
	duration time.Duration,
	logger Logger,
) *UseCase {
	if duration <= 0 {
		duration = domain.DefaultAppointmentDuration
	}
	return &UseCase{
		apptRepo:  apptRepo,
		engine:    engine,
		txManager: txManager,
		duration:  duration,
		logger:    logger,
	}
}

// Execute выполняет use case обновления записи.
// Перенос идет в сериализуемой транзакции: занятость нового времени
// перепроверяется с исключением самой записи, при конфликте строка не трогается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%d status=%v reschedule=%v",
		req.AppointmentID, req.Status, req.Date != nil)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	appt, err := uc.apptRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// Целевой статус: новый либо текущий
	newStatus := appt.Status
	if req.Status != nil {
		newStatus = domain.AppointmentStatus(*req.Status)
		if !domain.IsValidStatus(newStatus) {
			uc.logger.Warn("UpdateAppointment: invalid status=%s for id=%d", *req.Status, req.AppointmentID)
			return nil, ErrInvalidStatus
		}
	}

	// Без переноса - простое обновление статуса
	if req.Date == nil {
		if err := uc.apptRepo.UpdateStatus(ctx, appt.ID, newStatus); err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return nil, ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update status for id=%d: %v", appt.ID, err)
			return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		uc.logger.Info("UpdateAppointment: id=%d status set to %s", appt.ID, newStatus)
		return &Response{
			ID:         appt.ID,
			EmployeeID: appt.EmployeeID,
			StartTime:  appt.StartTime,
			Status:     string(newStatus),
		}, nil
	}

	newStart, err := availability.CombineDateTime(*req.Date, *req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Свою запись исключаем из проверки пересечений
		err := uc.engine.CheckSlotExcluding(txCtx, appt.EmployeeID, newStart, uc.duration, &appt.ID)
		if err != nil {
			if errors.Is(err, availability.ErrSlotTaken) || errors.Is(err, availability.ErrTimeOff) {
				uc.logger.Warn("UpdateAppointment: target slot %s busy for id=%d: %v",
					newStart.Format(time.RFC3339), appt.ID, err)
				return ErrSlotTaken
			}
			uc.logger.Error("UpdateAppointment: slot recheck failed for id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: slot recheck failed: %v", ErrInternal, err)
		}

		if err := uc.apptRepo.Update(txCtx, appt.ID, newStart, newStatus); err != nil {
			if errors.Is(err, apptRepo.ErrSlotConflict) {
				return ErrSlotTaken
			}
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: id=%d rescheduled to %s status=%s",
		appt.ID, newStart.Format(time.RFC3339), newStatus)

	return &Response{
		ID:         appt.ID,
		EmployeeID: appt.EmployeeID,
		StartTime:  newStart,
		Status:     string(newStatus),
	}, nil
}
