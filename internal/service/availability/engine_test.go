package availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BreezDev/kimq/internal/domain"
	schedulestore "github.com/BreezDev/kimq/internal/infra/storage/schedule"
)

// monday фиксированный понедельник для тестов расписания
var monday = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

type fakeScheduleRepo struct {
	blocks    []*domain.RecurringAvailability
	blocksErr error
	timeOff   []*domain.TimeOff
	covered   bool
}

func (f *fakeScheduleRepo) GetRecurringAvailability(_ context.Context, _ int64, _ int) ([]*domain.RecurringAvailability, error) {
	if f.blocksErr != nil {
		return nil, f.blocksErr
	}
	return f.blocks, nil
}

func (f *fakeScheduleRepo) ListTimeOff(_ context.Context, _ int64) ([]*domain.TimeOff, error) {
	return f.timeOff, nil
}

func (f *fakeScheduleRepo) HasCoveringTimeOff(_ context.Context, _ int64, _, _ time.Time) (bool, error) {
	return f.covered, nil
}

type fakeApptRepo struct {
	appointments []*domain.Appointment
	overlapping  bool
	gotExcludeID *int64
}

func (f *fakeApptRepo) ListActiveByEmployeeBetween(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeApptRepo) HasOverlapping(_ context.Context, _ int64, _ time.Time, _ int, excludeID *int64) (bool, error) {
	f.gotExcludeID = excludeID
	return f.overlapping, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 16, hour, min, 0, 0, time.UTC)
}

func TestEnumerateCandidates(t *testing.T) {
	candidates := EnumerateCandidates(at(9, 0), at(11, 0), domain.SlotStep, time.Hour)

	require.Len(t, candidates, 3)
	assert.Equal(t, at(9, 0), candidates[0])
	assert.Equal(t, at(9, 30), candidates[1])
	assert.Equal(t, at(10, 0), candidates[2])
}

func TestEnumerateCandidatesTooShortBlock(t *testing.T) {
	candidates := EnumerateCandidates(at(9, 0), at(9, 30), domain.SlotStep, time.Hour)
	assert.Empty(t, candidates)
}

func TestComputeOpenSlotsNoBlocksForWeekday(t *testing.T) {
	engine := NewEngine(&fakeScheduleRepo{}, &fakeApptRepo{}, nopLogger{})

	slots, err := engine.ComputeOpenSlots(context.Background(), 1, monday, time.Hour)

	require.NoError(t, err)
	require.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestComputeOpenSlotsFullDay(t *testing.T) {
	schedule := &fakeScheduleRepo{
		blocks: []*domain.RecurringAvailability{
			{ID: 1, EmployeeID: 1, Weekday: 0, StartTime: "09:00", EndTime: "17:00"},
		},
	}
	engine := NewEngine(schedule, &fakeApptRepo{}, nopLogger{})

	slots, err := engine.ComputeOpenSlots(context.Background(), 1, monday, time.Hour)

	require.NoError(t, err)
	// 09:00 .. 16:00 с шагом 30 минут
	require.Len(t, slots, 15)
	assert.Equal(t, at(9, 0), slots[0])
	assert.Equal(t, at(16, 0), slots[14])
}

func TestComputeOpenSlotsExcludesBookedWindow(t *testing.T) {
	schedule := &fakeScheduleRepo{
		blocks: []*domain.RecurringAvailability{
			{ID: 1, EmployeeID: 1, Weekday: 0, StartTime: "09:00", EndTime: "17:00"},
		},
	}
	appts := &fakeApptRepo{
		appointments: []*domain.Appointment{
			{ID: 42, EmployeeID: 1, StartTime: at(10, 0), Status: domain.StatusBooked},
		},
	}
	engine := NewEngine(schedule, appts, nopLogger{})

	slots, err := engine.ComputeOpenSlots(context.Background(), 1, monday, time.Hour)

	require.NoError(t, err)
	// Часовая запись на 10:00 выбивает кандидатов 09:30, 10:00 и 10:30
	assert.Len(t, slots, 12)
	assert.NotContains(t, slots, at(9, 30))
	assert.NotContains(t, slots, at(10, 0))
	assert.NotContains(t, slots, at(10, 30))
	assert.Contains(t, slots, at(9, 0))
	assert.Contains(t, slots, at(11, 0))
}

func TestComputeOpenSlotsTimeOffCoverage(t *testing.T) {
	schedule := &fakeScheduleRepo{
		blocks: []*domain.RecurringAvailability{
			{ID: 1, EmployeeID: 1, Weekday: 0, StartTime: "09:00", EndTime: "12:00"},
		},
		timeOff: []*domain.TimeOff{
			// Полностью покрывает окно [10:00, 11:00]
			{EmployeeID: 1, StartTime: at(10, 0), EndTime: at(11, 0)},
		},
	}
	engine := NewEngine(schedule, &fakeApptRepo{}, nopLogger{})

	slots, err := engine.ComputeOpenSlots(context.Background(), 1, monday, time.Hour)

	require.NoError(t, err)
	// Отгул блокирует только полностью покрытое окно: 10:00.
	// Окна 09:30 и 10:30 покрыты лишь частично и остаются свободными.
	assert.NotContains(t, slots, at(10, 0))
	assert.Contains(t, slots, at(9, 30))
	assert.Contains(t, slots, at(10, 30))
}

func TestComputeOpenSlotsPreservesBlockOrder(t *testing.T) {
	// Блоки хранятся в порядке вставки: вечерний раньше утреннего
	schedule := &fakeScheduleRepo{
		blocks: []*domain.RecurringAvailability{
			{ID: 2, EmployeeID: 1, Weekday: 0, StartTime: "13:00", EndTime: "15:00"},
			{ID: 1, EmployeeID: 1, Weekday: 0, StartTime: "09:00", EndTime: "11:00"},
		},
	}
	engine := NewEngine(schedule, &fakeApptRepo{}, nopLogger{})

	slots, err := engine.ComputeOpenSlots(context.Background(), 1, monday, time.Hour)

	require.NoError(t, err)
	want := []time.Time{at(13, 0), at(13, 30), at(14, 0), at(9, 0), at(9, 30), at(10, 0)}
	assert.Equal(t, want, slots)
}

func TestComputeOpenSlotsIdempotent(t *testing.T) {
	schedule := &fakeScheduleRepo{
		blocks: []*domain.RecurringAvailability{
			{ID: 1, EmployeeID: 1, Weekday: 0, StartTime: "09:00", EndTime: "17:00"},
		},
	}
	engine := NewEngine(schedule, &fakeApptRepo{}, nopLogger{})

	first, err := engine.ComputeOpenSlots(context.Background(), 1, monday, time.Hour)
	require.NoError(t, err)
	second, err := engine.ComputeOpenSlots(context.Background(), 1, monday, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeOpenSlotsInvalidScheduleConfigPassthrough(t *testing.T) {
	schedule := &fakeScheduleRepo{
		blocksErr: fmt.Errorf("%w: availability id=7 start_time: bad value", schedulestore.ErrInvalidScheduleConfig),
	}
	engine := NewEngine(schedule, &fakeApptRepo{}, nopLogger{})

	_, err := engine.ComputeOpenSlots(context.Background(), 1, monday, time.Hour)

	require.Error(t, err)
	assert.ErrorIs(t, err, schedulestore.ErrInvalidScheduleConfig)
	assert.NotErrorIs(t, err, ErrInternal)
}

func TestCheckSlotTaken(t *testing.T) {
	appts := &fakeApptRepo{overlapping: true}
	engine := NewEngine(&fakeScheduleRepo{}, appts, nopLogger{})

	err := engine.CheckSlot(context.Background(), 1, at(10, 0), time.Hour)

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, appts.gotExcludeID)
}

func TestCheckSlotTimeOff(t *testing.T) {
	engine := NewEngine(&fakeScheduleRepo{covered: true}, &fakeApptRepo{}, nopLogger{})

	err := engine.CheckSlot(context.Background(), 1, at(10, 0), time.Hour)

	assert.ErrorIs(t, err, ErrTimeOff)
}

func TestCheckSlotFree(t *testing.T) {
	engine := NewEngine(&fakeScheduleRepo{}, &fakeApptRepo{}, nopLogger{})

	err := engine.CheckSlot(context.Background(), 1, at(10, 0), time.Hour)

	assert.NoError(t, err)
}

func TestCheckSlotExcludingPassesExcludeID(t *testing.T) {
	appts := &fakeApptRepo{}
	engine := NewEngine(&fakeScheduleRepo{}, appts, nopLogger{})

	excludeID := int64(99)
	err := engine.CheckSlotExcluding(context.Background(), 1, at(10, 0), time.Hour, &excludeID)

	require.NoError(t, err)
	require.NotNil(t, appts.gotExcludeID)
	assert.Equal(t, int64(99), *appts.gotExcludeID)
}
