package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BreezDev/kimq/internal/domain"
	apptRepo "github.com/BreezDev/kimq/internal/infra/storage/appointment"
	"github.com/BreezDev/kimq/internal/service/appointments/models"
)

// Service сервис для работы с записями клиентов
type Service struct {
	apptRepo AppointmentRepository
	notify   NotifyClient
	logger   Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(apptRepo AppointmentRepository, notify NotifyClient, logger Logger) *Service {
	return &Service{
		apptRepo: apptRepo,
		notify:   notify,
		logger:   logger,
	}
}

// GetDetail получает запись с данными услуги, мастера и клиента
func (s *Service) GetDetail(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetDetail: fetching appointment id=%d", id)

	detail, err := s.apptRepo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetDetail: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetDetail: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetDetail - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDetail(detail), nil
}

// Cancel отменяет запись. Отменить можно только запись в статусе Booked.
// Клиенту уходит письмо об отмене (best-effort, сбой только логируется).
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	detail, err := s.apptRepo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !detail.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, detail.Status)
		return ErrCannotCancel
	}

	if err := s.apptRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	s.sendCancellationEmail(detail)

	return nil
}

// ListUpcomingByEmployee получает предстоящие записи сотрудника для его кабинета
func (s *Service) ListUpcomingByEmployee(ctx context.Context, employeeID int64, from time.Time) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListUpcomingByEmployee: fetching appointments for employee=%d from=%s",
		employeeID, from.Format(domain.DateFormat))

	details, err := s.apptRepo.ListUpcomingByEmployee(ctx, employeeID, from)
	if err != nil {
		s.logger.Error("ListUpcomingByEmployee: repository error for employee=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: ListUpcomingByEmployee - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUpcomingByEmployee: fetched %d appointments for employee=%d", len(details), employeeID)
	return models.FromDomainDetailList(details), nil
}

// sendCancellationEmail отправляет письмо об отмене (вне критичного пути)
func (s *Service) sendCancellationEmail(detail *domain.AppointmentDetail) {
	if detail.ClientEmail == "" {
		return
	}

	subject := "Your appointment has been cancelled"
	body := fmt.Sprintf("Hi %s,\n\nYour %s appointment on %s at %s has been cancelled.\n\nIf this was a mistake, please book again or contact us.",
		detail.ClientName,
		detail.ServiceName,
		detail.StartTime.Format(domain.DateFormat),
		detail.StartTime.Format(domain.TimeFormat),
	)

	if err := s.notify.SendEmail(detail.ClientEmail, detail.ClientName, subject, body, ""); err != nil {
		s.logger.Warn("sendCancellationEmail: failed for appointment id=%d: %v", detail.ID, err)
	}
}
