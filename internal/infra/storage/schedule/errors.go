package schedule

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда блок расписания не найден
	ErrAvailabilityNotFound = errors.New("schedule.repository: availability block not found")

	// ErrTimeOffNotFound возвращается, когда интервал отгула не найден
	ErrTimeOffNotFound = errors.New("schedule.repository: time off not found")

	// ErrInvalidScheduleConfig возвращается при некорректных данных расписания в БД
	// (например, нечитаемое время "HH:MM"). Это фатальная ошибка конфигурации,
	// а не ошибка конкретного запроса.
	ErrInvalidScheduleConfig = errors.New("schedule.repository: invalid schedule configuration")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
