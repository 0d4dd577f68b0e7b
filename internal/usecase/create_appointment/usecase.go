package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BreezDev/kimq/internal/domain"
	apptRepo "github.com/BreezDev/kimq/internal/infra/storage/appointment"
	catalogRepo "github.com/BreezDev/kimq/internal/infra/storage/catalog"
	staffRepo "github.com/BreezDev/kimq/internal/infra/storage/staff"
	"github.com/BreezDev/kimq/internal/service/availability"
)

// UseCase use case создания записи клиента
type UseCase struct {
	apptRepo    AppointmentRepository
	catalogRepo CatalogRepository
	clientRepo  ClientRepository
	staffRepo   StaffRepository
	paymentRepo PaymentRepository
	engine      AvailabilityEngine
	payments    PaymentsClient
	notify      NotifyClient
	txManager   TransactionManager
	duration    time.Duration
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	clientRepo ClientRepository,
	staffRepo StaffRepository,
	paymentRepo PaymentRepository,
	engine AvailabilityEngine,
	payments PaymentsClient,
	notify NotifyClient,
	txManager TransactionManager,
	duration time.Duration,
	logger Logger,
) *UseCase {
	if duration <= 0 {
		duration = domain.DefaultAppointmentDuration
	}
	return &UseCase{
		apptRepo:    apptRepo,
		catalogRepo: catalogRepo,
		clientRepo:  clientRepo,
		staffRepo:   staffRepo,
		paymentRepo: paymentRepo,
		engine:      engine,
		payments:    payments,
		notify:      notify,
		txManager:   txManager,
		duration:    duration,
		logger:      logger,
	}
}

// Execute выполняет use case создания записи.
// Резервирование идет в сериализуемой транзакции с повторной проверкой
// занятости; платеж и уведомления - после фиксации, их сбой запись не откатывает.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: service=%d, employee=%v, date=%s, time=%s, client=%s",
		req.ServiceID, req.EmployeeID, req.Date.Format(domain.DateFormat), req.StartTime, req.ClientEmail)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	start, err := availability.CombineDateTime(req.Date, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	// 2. Получаем услугу
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Находим или создаем клиента по email
	client, err := uc.clientRepo.FindOrCreate(ctx, &domain.Client{
		Name:  req.ClientName,
		Email: req.ClientEmail,
		Phone: req.ClientPhone,
	})
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to find or create client %s: %v", req.ClientEmail, err)
		return nil, fmt.Errorf("%w: failed to find or create client: %v", ErrInternal, err)
	}

	// 4. Выбираем мастера
	employee, err := uc.selectEmployee(ctx, req, start)
	if err != nil {
		return nil, err
	}

	// 5. Резервируем слот в сериализуемой транзакции
	var created *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Повторная проверка занятости по текущему состоянию БД
		if err := uc.engine.CheckSlot(txCtx, employee.ID, start, uc.duration); err != nil {
			if errors.Is(err, availability.ErrSlotTaken) || errors.Is(err, availability.ErrTimeOff) {
				uc.logger.Warn("CreateAppointment: slot %s no longer free for employee=%d: %v",
					start.Format(time.RFC3339), employee.ID, err)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: slot recheck failed: %v", err)
			return fmt.Errorf("%w: slot recheck failed: %v", ErrInternal, err)
		}

		appt, err := uc.apptRepo.Create(txCtx, &domain.Appointment{
			ClientID:    client.ID,
			ServiceID:   service.ID,
			EmployeeID:  employee.ID,
			StartTime:   start,
			Status:      domain.StatusBooked,
			Notes:       req.Notes,
			AmountCents: service.DepositCents,
		})
		if err != nil {
			if errors.Is(err, apptRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateAppointment: unique index lost race for employee=%d at %s",
					employee.ID, start.Format(time.RFC3339))
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		created = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d employee=%d at %s",
		created.ID, employee.ID, start.Format(time.RFC3339))

	// 6. После фиксации: депозит и уведомления (best-effort)
	intentID, intentStatus := uc.collectDeposit(ctx, created, service, client)
	uc.sendConfirmation(client, employee, service, created)

	return &Response{
		ID:              created.ID,
		ServiceID:       service.ID,
		EmployeeID:      employee.ID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		Status:          string(created.Status),
		ServiceName:     service.Name,
		EmployeeName:    employee.Name,
		DepositCents:    service.DepositCents,
		PaymentIntentID: intentID,
		PaymentStatus:   intentStatus,
		CreatedAt:       created.CreatedAt,
	}, nil
}

// selectEmployee выбирает мастера для записи.
// Явно выбранный мастер принимается без проверки принадлежности слота его
// расписанию - занятость все равно перепроверяется в транзакции. Без явного
// выбора берется первый мастер справочника, у которого слот свободен.
func (uc *UseCase) selectEmployee(ctx context.Context, req *Request, start time.Time) (*domain.StaffMember, error) {
	if req.EmployeeID != nil {
		employee, err := uc.staffRepo.GetByID(ctx, *req.EmployeeID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				uc.logger.Warn("CreateAppointment: employee id=%d not found", *req.EmployeeID)
				return nil, ErrEmployeeNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get employee id=%d: %v", *req.EmployeeID, err)
			return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
		}
		return employee, nil
	}

	employees, err := uc.staffRepo.ListByRole(ctx, domain.RoleEmployee)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to list employees: %v", err)
		return nil, fmt.Errorf("%w: failed to list employees: %v", ErrInternal, err)
	}

	for _, employee := range employees {
		slots, err := uc.engine.ComputeOpenSlots(ctx, employee.ID, req.Date, uc.duration)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to compute slots for employee=%d: %v", employee.ID, err)
			return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
		}
		for _, slot := range slots {
			if slot.Equal(start) {
				uc.logger.Info("CreateAppointment: auto-assigned employee=%d", employee.ID)
				return employee, nil
			}
		}
	}

	uc.logger.Warn("CreateAppointment: no employee available at %s", start.Format(time.RFC3339))
	return nil, ErrNoAvailability
}

// collectDeposit создает платежное намерение на депозит и проставляет его
// на запись. Нулевой депозит пропускается. Любой сбой только логируется.
func (uc *UseCase) collectDeposit(ctx context.Context, appt *domain.Appointment, service *domain.Service, client *domain.Client) (*string, *string) {
	if service.DepositCents <= 0 {
		return nil, nil
	}

	description := fmt.Sprintf("Deposit for %s on %s", service.Name, appt.StartTime.Format(domain.DateFormat))
	intent, err := uc.payments.CreateIntent(ctx, service.DepositCents, client.Email, description)
	if err != nil {
		uc.logger.Error("CreateAppointment: deposit intent failed for appointment id=%d: %v", appt.ID, err)
		return nil, nil
	}

	if _, err := uc.paymentRepo.Create(ctx, &domain.Payment{
		PaymentIntentID: intent.ID,
		AmountCents:     service.DepositCents,
		Status:          intent.Status,
		ClientEmail:     client.Email,
		Category:        domain.PaymentCategoryDeposit,
	}); err != nil {
		uc.logger.Error("CreateAppointment: failed to record payment for appointment id=%d: %v", appt.ID, err)
	}

	if err := uc.apptRepo.SetPaymentInfo(ctx, appt.ID, intent.ID, intent.Status); err != nil {
		uc.logger.Error("CreateAppointment: failed to stamp payment info on appointment id=%d: %v", appt.ID, err)
	}

	return &intent.ID, &intent.Status
}

// sendConfirmation отправляет подтверждение по email и SMS (вне критичного пути)
func (uc *UseCase) sendConfirmation(client *domain.Client, employee *domain.StaffMember, service *domain.Service, appt *domain.Appointment) {
	subject := "Your appointment is confirmed"
	body := fmt.Sprintf("Hi %s,\n\nYour %s appointment with %s is confirmed for %s at %s.\n\nSee you soon!",
		client.Name,
		service.Name,
		employee.Name,
		appt.StartTime.Format(domain.DateFormat),
		appt.StartTime.Format(domain.TimeFormat),
	)

	if err := uc.notify.SendEmail(client.Email, client.Name, subject, body, ""); err != nil {
		uc.logger.Warn("CreateAppointment: confirmation email failed for appointment id=%d: %v", appt.ID, err)
	}

	if client.Phone != nil && *client.Phone != "" {
		sms := fmt.Sprintf("Your %s appointment is confirmed for %s at %s.",
			service.Name, appt.StartTime.Format(domain.DateFormat), appt.StartTime.Format(domain.TimeFormat))
		if err := uc.notify.SendSMS(*client.Phone, sms); err != nil {
			uc.logger.Warn("CreateAppointment: confirmation SMS failed for appointment id=%d: %v", appt.ID, err)
		}
	}
}
