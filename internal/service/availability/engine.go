package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BreezDev/kimq/internal/domain"
	schedulestore "github.com/BreezDev/kimq/internal/infra/storage/schedule"
	"github.com/BreezDev/kimq/pkg/types"
)

// Engine вычисляет свободные слоты и проверяет занятость окон.
// Единственный источник правды о доступности: и листинг слотов, и
// повторная проверка при бронировании проходят через него.
type Engine struct {
	scheduleRepo ScheduleRepository
	apptRepo     AppointmentRepository
	logger       Logger
}

// NewEngine создает новый экземпляр движка доступности
func NewEngine(scheduleRepo ScheduleRepository, apptRepo AppointmentRepository, logger Logger) *Engine {
	return &Engine{
		scheduleRepo: scheduleRepo,
		apptRepo:     apptRepo,
		logger:       logger,
	}
}

// CombineDateTime совмещает дату и время суток в момент времени
func CombineDateTime(day time.Time, tod types.TimeString) (time.Time, error) {
	return tod.OnDay(day)
}

// EnumerateCandidates перечисляет кандидатов начала в блоке [blockStart, blockEnd]:
// моменты t с шагом step от blockStart, для которых t+duration <= blockEnd
func EnumerateCandidates(blockStart, blockEnd time.Time, step, duration time.Duration) []time.Time {
	candidates := make([]time.Time, 0)
	for t := blockStart; !t.Add(duration).After(blockEnd); t = t.Add(step) {
		candidates = append(candidates, t)
	}
	return candidates
}

// ComputeOpenSlots вычисляет свободные слоты сотрудника на дату day для записи
// длительностью duration. Слоты идут в порядке блоков доступности, внутри
// блока по времени; блоки не сортируются и не схлопываются - порядок и
// дубликаты повторяют порядок хранения блоков. Нет блоков на день недели -
// пустой список без ошибки.
func (e *Engine) ComputeOpenSlots(ctx context.Context, employeeID int64, day time.Time, duration time.Duration) ([]time.Time, error) {
	weekday := domain.WeekdayIndex(day)

	blocks, err := e.scheduleRepo.GetRecurringAvailability(ctx, employeeID, weekday)
	if err != nil {
		// Ошибку конфигурации расписания пробрасываем как есть - это класс
		// фатальных ошибок оператора, а не рядовой сбой запроса
		if errors.Is(err, schedulestore.ErrInvalidScheduleConfig) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: ComputeOpenSlots - load availability: %v", ErrInternal, err)
	}
	if len(blocks) == 0 {
		return []time.Time{}, nil
	}

	// Записи со стартом раньше dayStart-duration не могут пересечь кандидатов дня
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	appointments, err := e.apptRepo.ListActiveByEmployeeBetween(ctx, employeeID, dayStart.Add(-duration), dayEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: ComputeOpenSlots - load appointments: %v", ErrInternal, err)
	}

	timeOff, err := e.scheduleRepo.ListTimeOff(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("%w: ComputeOpenSlots - load time off: %v", ErrInternal, err)
	}

	slots := make([]time.Time, 0)
	for _, block := range blocks {
		blockStart, err := CombineDateTime(day, block.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: ComputeOpenSlots - block id=%d start: %v", ErrInternal, block.ID, err)
		}
		blockEnd, err := CombineDateTime(day, block.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: ComputeOpenSlots - block id=%d end: %v", ErrInternal, block.ID, err)
		}

		for _, candidate := range EnumerateCandidates(blockStart, blockEnd, domain.SlotStep, duration) {
			if isFree(candidate, duration, appointments, timeOff) {
				slots = append(slots, candidate)
			}
		}
	}

	return slots, nil
}

// CheckSlot проверяет занятость окна [start, start+duration) по текущему
// состоянию БД. Вызывается внутри сериализуемой транзакции бронирования
// как повторная проверка непосредственно перед вставкой.
func (e *Engine) CheckSlot(ctx context.Context, employeeID int64, start time.Time, duration time.Duration) error {
	return e.CheckSlotExcluding(ctx, employeeID, start, duration, nil)
}

// CheckSlotExcluding как CheckSlot, но запись excludeID не учитывается в
// проверке пересечений - нужен при переносе записи на новое время.
func (e *Engine) CheckSlotExcluding(ctx context.Context, employeeID int64, start time.Time, duration time.Duration, excludeID *int64) error {
	durationMinutes := int(duration / time.Minute)

	taken, err := e.apptRepo.HasOverlapping(ctx, employeeID, start, durationMinutes, excludeID)
	if err != nil {
		return fmt.Errorf("%w: CheckSlot - overlap query: %v", ErrInternal, err)
	}
	if taken {
		return ErrSlotTaken
	}

	covered, err := e.scheduleRepo.HasCoveringTimeOff(ctx, employeeID, start, start.Add(duration))
	if err != nil {
		return fmt.Errorf("%w: CheckSlot - time off query: %v", ErrInternal, err)
	}
	if covered {
		return ErrTimeOff
	}

	return nil
}

// isFree проверяет кандидата против загруженных записей и отгулов
func isFree(candidate time.Time, duration time.Duration, appointments []*domain.Appointment, timeOff []*domain.TimeOff) bool {
	for _, appt := range appointments {
		if appt.Overlaps(candidate, duration) {
			return false
		}
	}
	for _, to := range timeOff {
		if to.Covers(candidate, duration) {
			return false
		}
	}
	return true
}
