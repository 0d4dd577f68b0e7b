package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BreezDev/kimq/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ClientID:    500,
		ServiceID:   3,
		EmployeeID:  2,
		StartTime:   time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
		Status:      domain.StatusBooked,
		AmountCents: 3000,
	}
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO appointments`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), now))

	created, err := repo.Create(context.Background(), testAppointment())

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUniqueViolationMapsToSlotConflict(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO appointments`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_appointments_employee_start"})

	_, err := repo.Create(context.Background(), testAppointment())

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasOverlapping(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	// employee_id, статусы NOT IN, start_time < конец окна,
	// make_interval(длительность) > начало окна
	mock.ExpectQuery(`SELECT 1 FROM appointments`).
		WithArgs(int64(2), "Cancelled", "NoShow", end, 60, start).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	overlaps, err := repo.HasOverlapping(context.Background(), 2, start, 60, nil)

	require.NoError(t, err)
	assert.True(t, overlaps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasOverlappingFree(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT 1 FROM appointments`).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	overlaps, err := repo.HasOverlapping(context.Background(), 2, start, 60, nil)

	require.NoError(t, err)
	assert.False(t, overlaps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasOverlappingExcludesAppointment(t *testing.T) {
	repo, mock := newMock(t)
	start := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	excludeID := int64(11)

	// Исключенная запись добавляется последним условием id != $7
	mock.ExpectQuery(`SELECT 1 FROM appointments`).
		WithArgs(int64(2), "Cancelled", "NoShow", end, 60, start, excludeID).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	overlaps, err := repo.HasOverlapping(context.Background(), 2, start, 60, &excludeID)

	require.NoError(t, err)
	assert.False(t, overlaps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUniqueViolationMapsToSlotConflict(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE appointments`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Update(context.Background(), 11, time.Date(2026, 3, 17, 14, 30, 0, 0, time.UTC), domain.StatusBooked)

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE appointments`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), 11, time.Date(2026, 3, 17, 14, 30, 0, 0, time.UTC), domain.StatusBooked)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE appointments`).
		WithArgs("Cancelled", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 11, domain.StatusCancelled)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
