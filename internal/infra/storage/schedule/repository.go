package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/BreezDev/kimq/internal/domain"
	"github.com/BreezDev/kimq/pkg/dbmetrics"
	"github.com/BreezDev/kimq/pkg/psqlbuilder"
	"github.com/BreezDev/kimq/pkg/types"
)

// Repository репозиторий для работы с расписаниями сотрудников:
// еженедельные блоки доступности и интервалы отгулов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateAvailability создает блок еженедельной доступности.
// Пересечения блоков не проверяются: перекрывающиеся блоки дают дублирующиеся
// кандидаты слотов, которые схлопываются проверкой занятости при бронировании.
func (r *Repository) CreateAvailability(ctx context.Context, block *domain.RecurringAvailability) (*domain.RecurringAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if err := block.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: CreateAvailability - start_time: %v", ErrInvalidScheduleConfig, err)
	}
	if err := block.EndTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: CreateAvailability - end_time: %v", ErrInvalidScheduleConfig, err)
	}

	query, args, err := psqlbuilder.Insert("availability").
		Columns("employee_id", "weekday", "start_time", "end_time").
		Values(block.EmployeeID, block.Weekday, block.StartTime.String(), block.EndTime.String()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateAvailability - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateAvailability - execute insert: %v", ErrExecQuery, err)
	}

	return block, nil
}

// GetRecurringAvailability получает блоки доступности сотрудника на день недели
// (weekday: понедельник=0 .. воскресенье=6)
func (r *Repository) GetRecurringAvailability(ctx context.Context, employeeID int64, weekday int) ([]*domain.RecurringAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "employee_id", "weekday", "start_time", "end_time").
		From("availability").
		Where(squirrel.Eq{"employee_id": employeeID, "weekday": weekday}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRecurringAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRecurringAvailability - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.RecurringAvailability, 0)
	for rows.Next() {
		var block domain.RecurringAvailability
		var startStr, endStr string

		if err := rows.Scan(&block.ID, &block.EmployeeID, &block.Weekday, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("%w: GetRecurringAvailability - scan row: %v", ErrScanRow, err)
		}

		// Нечитаемое время в хранимом расписании - фатальная ошибка конфигурации
		block.StartTime, err = types.NewTimeStringFromString(startStr)
		if err != nil {
			return nil, fmt.Errorf("%w: availability id=%d start_time: %v", ErrInvalidScheduleConfig, block.ID, err)
		}
		block.EndTime, err = types.NewTimeStringFromString(endStr)
		if err != nil {
			return nil, fmt.Errorf("%w: availability id=%d end_time: %v", ErrInvalidScheduleConfig, block.ID, err)
		}

		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRecurringAvailability - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// DeleteAvailability удаляет блок доступности
func (r *Repository) DeleteAvailability(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteAvailability - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteAvailability - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteAvailability - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

// CreateTimeOff создает интервал отгула
func (r *Repository) CreateTimeOff(ctx context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_off").
		Columns("employee_id", "start_time", "end_time", "reason").
		Values(timeOff.EmployeeID, timeOff.StartTime, timeOff.EndTime, timeOff.Reason).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTimeOff - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&timeOff.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateTimeOff - execute insert: %v", ErrExecQuery, err)
	}

	return timeOff, nil
}

// ListTimeOff получает все интервалы отгулов сотрудника
func (r *Repository) ListTimeOff(ctx context.Context, employeeID int64) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "employee_id", "start_time", "end_time", "reason").
		From("time_off").
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]*domain.TimeOff, 0)
	for rows.Next() {
		var timeOff domain.TimeOff
		if err := rows.Scan(&timeOff.ID, &timeOff.EmployeeID, &timeOff.StartTime, &timeOff.EndTime, &timeOff.Reason); err != nil {
			return nil, fmt.Errorf("%w: ListTimeOff - scan row: %v", ErrScanRow, err)
		}
		intervals = append(intervals, &timeOff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTimeOff - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// HasCoveringTimeOff проверяет, есть ли отгул, полностью покрывающий окно
// [start, end]. Частичное пересечение отгула с окном блокировкой НЕ считается.
func (r *Repository) HasCoveringTimeOff(ctx context.Context, employeeID int64, start, end time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("time_off").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.LtOrEq{"start_time": start}).
		Where(squirrel.GtOrEq{"end_time": end}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasCoveringTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: HasCoveringTimeOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	covered := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("%w: HasCoveringTimeOff - rows error: %v", ErrScanRow, err)
	}

	return covered, nil
}
