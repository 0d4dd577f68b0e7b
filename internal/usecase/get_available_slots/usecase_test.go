package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BreezDev/kimq/internal/domain"
	staffRepo "github.com/BreezDev/kimq/internal/infra/storage/staff"
	"github.com/BreezDev/kimq/pkg/ptr"
)

var testDay = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

type fakeEngine struct {
	slots map[int64][]time.Time
}

func (f *fakeEngine) ComputeOpenSlots(_ context.Context, employeeID int64, _ time.Time, _ time.Duration) ([]time.Time, error) {
	return f.slots[employeeID], nil
}

type fakeStaffRepo struct {
	members map[int64]*domain.StaffMember
	byRole  []*domain.StaffMember
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id int64) (*domain.StaffMember, error) {
	if m, ok := f.members[id]; ok {
		return m, nil
	}
	return nil, staffRepo.ErrStaffNotFound
}

func (f *fakeStaffRepo) ListByRole(_ context.Context, _ domain.StaffRole) ([]*domain.StaffMember, error) {
	return f.byRole, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 16, hour, min, 0, 0, time.UTC)
}

func TestExecuteAllStaff(t *testing.T) {
	staff := &fakeStaffRepo{byRole: []*domain.StaffMember{
		{ID: 2, Name: "Linh Tran", Role: domain.RoleEmployee},
		{ID: 3, Name: "Mai Pham", Role: domain.RoleEmployee},
	}}
	engine := &fakeEngine{slots: map[int64][]time.Time{
		2: {at(9, 0), at(9, 30)},
		3: {},
	}}
	uc := NewUseCase(engine, staff, time.Hour, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDay})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 2)
	assert.Equal(t, int64(2), resp.Staff[0].EmployeeID)
	assert.Equal(t, []string{"09:00", "09:30"}, resp.Staff[0].Slots)
	// Мастер без слотов присутствует в ответе с пустым списком
	assert.Equal(t, int64(3), resp.Staff[1].EmployeeID)
	assert.Empty(t, resp.Staff[1].Slots)
}

func TestExecuteSingleEmployee(t *testing.T) {
	staff := &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		2: {ID: 2, Name: "Linh Tran", Role: domain.RoleEmployee},
	}}
	engine := &fakeEngine{slots: map[int64][]time.Time{
		2: {at(14, 0)},
	}}
	uc := NewUseCase(engine, staff, time.Hour, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDay, EmployeeID: ptr.Ptr(int64(2))})

	require.NoError(t, err)
	require.Len(t, resp.Staff, 1)
	assert.Equal(t, "Linh Tran", resp.Staff[0].EmployeeName)
	assert.Equal(t, []string{"14:00"}, resp.Staff[0].Slots)
}

func TestExecuteEmployeeNotFound(t *testing.T) {
	uc := NewUseCase(&fakeEngine{}, &fakeStaffRepo{}, time.Hour, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Date: testDay, EmployeeID: ptr.Ptr(int64(404))})

	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestExecuteValidation(t *testing.T) {
	uc := NewUseCase(&fakeEngine{}, &fakeStaffRepo{}, time.Hour, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: testDay, EmployeeID: ptr.Ptr(int64(0))})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
