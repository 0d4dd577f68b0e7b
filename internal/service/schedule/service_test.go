package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BreezDev/kimq/internal/domain"
	scheduleRepo "github.com/BreezDev/kimq/internal/infra/storage/schedule"
	staffRepo "github.com/BreezDev/kimq/internal/infra/storage/staff"
)

type fakeScheduleRepo struct {
	nextID    int64
	deleteErr error
	timeOff   []*domain.TimeOff
}

func (f *fakeScheduleRepo) CreateAvailability(_ context.Context, block *domain.RecurringAvailability) (*domain.RecurringAvailability, error) {
	f.nextID++
	block.ID = f.nextID
	return block, nil
}

func (f *fakeScheduleRepo) GetRecurringAvailability(_ context.Context, _ int64, _ int) ([]*domain.RecurringAvailability, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) DeleteAvailability(_ context.Context, _ int64) error {
	return f.deleteErr
}

func (f *fakeScheduleRepo) CreateTimeOff(_ context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error) {
	f.nextID++
	timeOff.ID = f.nextID
	return timeOff, nil
}

func (f *fakeScheduleRepo) ListTimeOff(_ context.Context, _ int64) ([]*domain.TimeOff, error) {
	return f.timeOff, nil
}

type fakeStaffRepo struct {
	members map[int64]*domain.StaffMember
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id int64) (*domain.StaffMember, error) {
	if m, ok := f.members[id]; ok {
		return m, nil
	}
	return nil, staffRepo.ErrStaffNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func knownStaff() *fakeStaffRepo {
	return &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		2: {ID: 2, Name: "Linh Tran", Role: domain.RoleEmployee},
	}}
}

func validBlock() *domain.RecurringAvailability {
	return &domain.RecurringAvailability{
		EmployeeID: 2,
		Weekday:    0,
		StartTime:  "09:00",
		EndTime:    "17:00",
	}
}

func TestCreateAvailability(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, knownStaff(), nopLogger{})

	created, err := svc.CreateAvailability(context.Background(), validBlock())

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestCreateAvailabilityValidation(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, knownStaff(), nopLogger{})

	tests := []struct {
		name   string
		mutate func(*domain.RecurringAvailability)
	}{
		{"weekday below range", func(b *domain.RecurringAvailability) { b.Weekday = -1 }},
		{"weekday above range", func(b *domain.RecurringAvailability) { b.Weekday = 7 }},
		{"bad start format", func(b *domain.RecurringAvailability) { b.StartTime = "9am" }},
		{"bad end format", func(b *domain.RecurringAvailability) { b.EndTime = "25:00" }},
		{"start equals end", func(b *domain.RecurringAvailability) { b.EndTime = b.StartTime }},
		{"start after end", func(b *domain.RecurringAvailability) { b.StartTime = "18:00" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := validBlock()
			tt.mutate(block)

			_, err := svc.CreateAvailability(context.Background(), block)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateAvailabilityUnknownEmployee(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, knownStaff(), nopLogger{})

	block := validBlock()
	block.EmployeeID = 404

	_, err := svc.CreateAvailability(context.Background(), block)

	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestDeleteAvailabilityNotFound(t *testing.T) {
	repo := &fakeScheduleRepo{deleteErr: scheduleRepo.ErrAvailabilityNotFound}
	svc := NewService(repo, knownStaff(), nopLogger{})

	err := svc.DeleteAvailability(context.Background(), 99)

	assert.ErrorIs(t, err, ErrAvailabilityNotFound)
}

func TestCreateTimeOff(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, knownStaff(), nopLogger{})

	created, err := svc.CreateTimeOff(context.Background(), &domain.TimeOff{
		EmployeeID: 2,
		StartTime:  time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC),
		Reason:     "dentist",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestCreateTimeOffValidation(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, knownStaff(), nopLogger{})

	start := time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)

	// Незаданные границы
	_, err := svc.CreateTimeOff(context.Background(), &domain.TimeOff{EmployeeID: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Начало не раньше конца
	_, err = svc.CreateTimeOff(context.Background(), &domain.TimeOff{
		EmployeeID: 2,
		StartTime:  start,
		EndTime:    start.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
