package billing

import (
	"context"
	"fmt"

	"github.com/BreezDev/kimq/internal/domain"
)

// Statement выписка клиента: платежи и история записей
type Statement struct {
	Payments     []*domain.Payment
	Appointments []*domain.AppointmentDetail
}

// Service сервис биллинговой выписки клиента
type Service struct {
	paymentRepo PaymentRepository
	apptRepo    AppointmentRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса биллинга
func NewService(paymentRepo PaymentRepository, apptRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		apptRepo:    apptRepo,
		logger:      logger,
	}
}

// GetStatement собирает выписку клиента по email
func (s *Service) GetStatement(ctx context.Context, email string) (*Statement, error) {
	s.logger.Info("GetStatement: building statement for %s", email)

	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	payments, err := s.paymentRepo.ListByEmail(ctx, email)
	if err != nil {
		s.logger.Error("GetStatement: payments repository error for %s: %v", email, err)
		return nil, fmt.Errorf("%w: GetStatement - payments: %v", ErrInternal, err)
	}

	appointments, err := s.apptRepo.ListByClientEmail(ctx, email)
	if err != nil {
		s.logger.Error("GetStatement: appointments repository error for %s: %v", email, err)
		return nil, fmt.Errorf("%w: GetStatement - appointments: %v", ErrInternal, err)
	}

	s.logger.Info("GetStatement: %s has %d payments, %d appointments", email, len(payments), len(appointments))
	return &Statement{Payments: payments, Appointments: appointments}, nil
}
