package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/BreezDev/kimq/internal/domain"
	"github.com/BreezDev/kimq/pkg/dbmetrics"
	"github.com/BreezDev/kimq/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

// Repository репозиторий для работы с записями клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Уникальный индекс (employee_id, start_time) превращает одновременную вставку
// на то же время в ErrSlotConflict. Индекс ловит только точные совпадения
// начала; пересечения со сдвигом в полчаса отсекает сериализуемая транзакция
// с повторной проверкой (HasOverlapping) вокруг вставки.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"client_id",
			"service_id",
			"employee_id",
			"start_time",
			"status",
			"notes",
			"payment_intent_id",
			"payment_status",
			"amount_cents",
		).
		Values(
			appt.ClientID,
			appt.ServiceID,
			appt.EmployeeID,
			appt.StartTime,
			appt.Status,
			appt.Notes,
			appt.PaymentIntentID,
			appt.PaymentStatus,
			appt.AmountCents,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&appt.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	appt.CreatedAt = createdAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetDetail получает запись вместе с данными услуги, сотрудника и клиента
func (r *Repository) GetDetail(ctx context.Context, id int64) (*domain.AppointmentDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailSelect().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetail - build select query: %v", ErrBuildQuery, err)
	}

	detail, err := scanDetail(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetail - scan appointment: %v", ErrScanRow, err)
	}

	return detail, nil
}

// ListActiveByEmployeeBetween получает активные записи сотрудника с началом в
// [from, to). Внутри транзакции строки блокируются (FOR UPDATE) - используется
// при бронировании для защиты от гонки.
func (r *Repository) ListActiveByEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings()}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByEmployeeBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByEmployeeBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// HasOverlapping проверяет, есть ли активная запись сотрудника, чье окно
// занятости строго пересекается с [start, start + durationMinutes).
// Граничные случаи (окна встык) пересечением не считаются.
// excludeID исключает запись из проверки - нужен при переносе, чтобы запись
// не блокировала собственное новое время.
func (r *Repository) HasOverlapping(ctx context.Context, employeeID int64, start time.Time, durationMinutes int, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	selectBuilder := psqlbuilder.Select("1").
		From("appointments").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings()}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Expr("start_time + make_interval(mins => ?) > ?", durationMinutes, start)).
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overlaps := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("%w: HasOverlapping - rows error: %v", ErrScanRow, err)
	}

	return overlaps, nil
}

// Update обновляет время начала и статус записи (перенос/смена статуса)
func (r *Repository) Update(ctx context.Context, id int64, startTime time.Time, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("start_time", startTime).
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotConflict
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// SetPaymentInfo проставляет данные платежа после создания платежного намерения.
// Вызывается вне транзакции бронирования: провал оплаты не откатывает запись.
func (r *Repository) SetPaymentInfo(ctx context.Context, id int64, paymentIntentID, paymentStatus string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("payment_intent_id", paymentIntentID).
		Set("payment_status", paymentStatus).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentInfo - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaymentInfo - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentInfo - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// ListUpcomingByEmployee получает предстоящие записи сотрудника начиная с from
func (r *Repository) ListUpcomingByEmployee(ctx context.Context, employeeID int64, from time.Time) ([]*domain.AppointmentDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailSelect().
		Where(squirrel.Eq{"a.employee_id": employeeID}).
		Where(squirrel.GtOrEq{"a.start_time": from}).
		OrderBy("a.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcomingByEmployee - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcomingByEmployee - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDetails(rows)
}

// ListByClientEmail получает историю записей клиента по email (новые первыми)
func (r *Repository) ListByClientEmail(ctx context.Context, email string) ([]*domain.AppointmentDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailSelect().
		Where(squirrel.Eq{"c.email": email}).
		OrderBy("a.start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClientEmail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClientEmail - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDetails(rows)
}

// --- scan helpers ---

var appointmentColumns = []string{
	"id",
	"client_id",
	"service_id",
	"employee_id",
	"start_time",
	"status",
	"notes",
	"payment_intent_id",
	"payment_status",
	"amount_cents",
	"created_at",
}

func detailSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"a.id",
		"a.client_id",
		"a.service_id",
		"a.employee_id",
		"a.start_time",
		"a.status",
		"a.notes",
		"a.payment_intent_id",
		"a.payment_status",
		"a.amount_cents",
		"a.created_at",
		"s.name",
		"s.price_cents",
		"s.deposit_cents",
		"u.name",
		"c.name",
		"c.email",
		"c.phone",
	).
		From("appointments a").
		LeftJoin("services s ON a.service_id = s.id").
		LeftJoin("staff u ON a.employee_id = u.id").
		LeftJoin("clients c ON a.client_id = c.id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.ClientID,
		&appt.ServiceID,
		&appt.EmployeeID,
		&appt.StartTime,
		&appt.Status,
		&appt.Notes,
		&appt.PaymentIntentID,
		&appt.PaymentStatus,
		&appt.AmountCents,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	appt.CreatedAt = createdAt.Time

	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}
	return appointments, nil
}

func scanDetail(row rowScanner) (*domain.AppointmentDetail, error) {
	var detail domain.AppointmentDetail
	var createdAt sql.NullTime
	var serviceName, employeeName, clientName, clientEmail sql.NullString
	var priceCents, depositCents sql.NullInt64

	err := row.Scan(
		&detail.ID,
		&detail.ClientID,
		&detail.ServiceID,
		&detail.EmployeeID,
		&detail.StartTime,
		&detail.Status,
		&detail.Notes,
		&detail.PaymentIntentID,
		&detail.PaymentStatus,
		&detail.AmountCents,
		&createdAt,
		&serviceName,
		&priceCents,
		&depositCents,
		&employeeName,
		&clientName,
		&clientEmail,
		&detail.ClientPhone,
	)
	if err != nil {
		return nil, err
	}

	detail.CreatedAt = createdAt.Time
	detail.ServiceName = serviceName.String
	detail.PriceCents = priceCents.Int64
	detail.DepositCents = depositCents.Int64
	detail.EmployeeName = employeeName.String
	detail.ClientName = clientName.String
	detail.ClientEmail = clientEmail.String

	return &detail, nil
}

func scanDetails(rows *sql.Rows) ([]*domain.AppointmentDetail, error) {
	details := make([]*domain.AppointmentDetail, 0)
	for rows.Next() {
		detail, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDetails - scan row: %v", ErrScanRow, err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDetails - rows error: %v", ErrScanRow, err)
	}
	return details, nil
}

func inactiveStatusStrings() []string {
	statuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
